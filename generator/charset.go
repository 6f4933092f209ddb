package generator

import "strings"

const (
	upperAlphabet   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerAlphabet   = "abcdefghijklmnopqrstuvwxyz"
	digitAlphabet   = "0123456789"
	specialAlphabet = "!@#$%^&*()_+-=[]{}|;:,.<>?"

	// SimilarCharacters are removed when Policy.ExcludeSimilar is set.
	SimilarCharacters = "il1Lo0O"
	// AmbiguousCharacters are removed when Policy.ExcludeAmbiguous is set.
	AmbiguousCharacters = "{}[]()/\\'\"`~,;.<>"
)

// class is one selectable alphabet, already filtered by the policy exclusions.
type class struct {
	name     string
	alphabet string
}

// classes returns the selected alphabets in the fixed order upper, lower,
// digits, special, each filtered by the policy exclusions.
func (p Policy) classes() []class {
	exclude := p.excluded()
	out := make([]class, 0, 4)
	if p.UseUpper {
		out = append(out, class{name: "upper", alphabet: filter(upperAlphabet, exclude)})
	}
	if p.UseLower {
		out = append(out, class{name: "lower", alphabet: filter(lowerAlphabet, exclude)})
	}
	if p.UseDigits {
		out = append(out, class{name: "digits", alphabet: filter(digitAlphabet, exclude)})
	}
	if p.UseSpecial {
		out = append(out, class{name: "special", alphabet: filter(specialAlphabet, exclude)})
	}
	return out
}

func (p Policy) excluded() string {
	var b strings.Builder
	if p.ExcludeSimilar {
		b.WriteString(SimilarCharacters)
	}
	if p.ExcludeAmbiguous {
		b.WriteString(AmbiguousCharacters)
	}
	return b.String()
}

// Pool returns the concatenated filtered alphabet the policy draws from.
func (p Policy) Pool() string {
	var b strings.Builder
	for _, c := range p.classes() {
		b.WriteString(c.alphabet)
	}
	return b.String()
}

func filter(alphabet, exclude string) string {
	if exclude == "" {
		return alphabet
	}
	var b strings.Builder
	b.Grow(len(alphabet))
	for i := 0; i < len(alphabet); i++ {
		if strings.IndexByte(exclude, alphabet[i]) < 0 {
			b.WriteByte(alphabet[i])
		}
	}
	return b.String()
}
