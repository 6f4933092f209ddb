package generator

import (
	"errors"
	"fmt"
	"io"

	"github.com/MrEthical07/goCred/internal"
	"github.com/MrEthical07/goCred/strength"
)

var (
	// ErrInvalidPolicy is returned when no class is selected, the length is
	// negative, or exclusions leave a selected alphabet empty.
	ErrInvalidPolicy = errors.New("invalid generator policy")
	// ErrInvalidCount is returned by GenerateMany for a negative count.
	ErrInvalidCount = errors.New("invalid password count")
)

// Policy selects the alphabets and length of generated passwords.
type Policy struct {
	Length           int  `json:"length" toml:"length" yaml:"length"`
	UseUpper         bool `json:"use_upper" toml:"use_upper" yaml:"use_upper"`
	UseLower         bool `json:"use_lower" toml:"use_lower" yaml:"use_lower"`
	UseDigits        bool `json:"use_digits" toml:"use_digits" yaml:"use_digits"`
	UseSpecial       bool `json:"use_special" toml:"use_special" yaml:"use_special"`
	ExcludeSimilar   bool `json:"exclude_similar" toml:"exclude_similar" yaml:"exclude_similar"`
	ExcludeAmbiguous bool `json:"exclude_ambiguous" toml:"exclude_ambiguous" yaml:"exclude_ambiguous"`
}

// DefaultPolicy returns a 16-character policy using every class.
func DefaultPolicy() Policy {
	return Policy{
		Length:     16,
		UseUpper:   true,
		UseLower:   true,
		UseDigits:  true,
		UseSpecial: true,
	}
}

// Validate reports whether p can produce passwords.
func (p Policy) Validate() error {
	if p.Length < 0 {
		return fmt.Errorf("%w: negative length %d", ErrInvalidPolicy, p.Length)
	}
	classes := p.classes()
	if len(classes) == 0 {
		return fmt.Errorf("%w: no character class selected", ErrInvalidPolicy)
	}
	for _, c := range classes {
		if c.alphabet == "" {
			return fmt.Errorf("%w: %s alphabet empty after exclusions", ErrInvalidPolicy, c.name)
		}
	}
	return nil
}

// Report pairs a generated password with its strength analysis.
type Report struct {
	Password string          `json:"password"`
	Strength strength.Result `json:"strength"`
}

// Generator produces passwords from a secure random source. It holds no
// mutable state and is safe for concurrent use when its source is.
type Generator struct {
	rand io.Reader
}

// New returns a Generator reading from r. A nil r selects crypto/rand.Reader.
func New(r io.Reader) *Generator {
	return &Generator{rand: internal.Source(r)}
}

var defaultGenerator = New(nil)

// Generate produces one password with crypto/rand.
func Generate(policy Policy) (string, error) {
	return defaultGenerator.Generate(policy)
}

// GenerateMany produces count passwords with crypto/rand.
func GenerateMany(policy Policy, count int) ([]string, error) {
	return defaultGenerator.GenerateMany(policy, count)
}

// Generate produces one password satisfying policy.
//
// Each position takes pool[v mod len(pool)] for a fresh little-endian uint32 v.
// The modulo bias for pool sizes that do not divide 2^32 is kept. Afterwards one
// character per selected class is written to distinct uniformly chosen positions,
// so every class appears whenever Length is at least the number of classes.
func (g *Generator) Generate(policy Policy) (string, error) {
	if err := policy.Validate(); err != nil {
		return "", err
	}
	if policy.Length == 0 {
		return "", nil
	}

	classes := policy.classes()
	pool := policy.Pool()

	draws, err := internal.Uint32s(g.rand, policy.Length)
	if err != nil {
		return "", err
	}

	out := make([]byte, policy.Length)
	size := uint32(len(pool))
	for i, v := range draws {
		out[i] = pool[v%size]
	}

	required := make([]byte, len(classes))
	for i, c := range classes {
		ch, err := internal.Pick(g.rand, c.alphabet)
		if err != nil {
			return "", err
		}
		required[i] = ch
	}

	positions, err := internal.SamplePositions(g.rand, policy.Length, len(required))
	if err != nil {
		return "", err
	}
	for i, pos := range positions {
		out[pos] = required[i]
	}

	return string(out), nil
}

// GenerateMany produces count independent passwords.
func (g *Generator) GenerateMany(policy Policy, count int) ([]string, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, count)
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}

	out := make([]string, 0, count)
	for i := 0; i < count; i++ {
		pw, err := g.Generate(policy)
		if err != nil {
			return nil, err
		}
		out = append(out, pw)
	}
	return out, nil
}

// GenerateWithReport produces one password and scores it.
func (g *Generator) GenerateWithReport(policy Policy) (Report, error) {
	pw, err := g.Generate(policy)
	if err != nil {
		return Report{}, err
	}
	return Report{Password: pw, Strength: strength.Analyze(pw)}, nil
}
