package strength

import (
	"regexp"
	"strings"
)

const (
	lowerAlphabetSize   = 26
	upperAlphabetSize   = 26
	digitAlphabetSize   = 10
	specialAlphabetSize = 32

	// SpecialCharacters is the set counted as the special class during scoring.
	SpecialCharacters = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`

	patternPenalty    = 10
	commonPasswordCap = 10

	// MaxScore is the highest score the rules can award: 40 for length plus 25
	// for character classes.
	MaxScore = 65
)

const (
	recTooShort       = "Password too short (minimum 6 characters)"
	recAtLeastEight   = "Consider using at least 8 characters"
	recAddLower       = "Add lowercase letters"
	recAddUpper       = "Add uppercase letters"
	recAddDigits      = "Add numbers"
	recAddSpecial     = "Add special characters (!@#$%^&*)"
	recCommonPassword = "This is a commonly used password"
	recExcellent      = "Excellent password strength!"
)

// Pattern labels reported in Result.FlaggedPatterns.
const (
	PatternRepeated   = "Contains repeated characters"
	PatternSeqNumbers = "Contains sequential numbers"
	PatternSeqLetters = "Contains sequential letters"
	PatternKeyboard   = "Contains keyboard patterns"
)

var commonPasswords = map[string]struct{}{
	"password":    {},
	"123456":      {},
	"123456789":   {},
	"qwerty":      {},
	"abc123":      {},
	"password123": {},
	"admin":       {},
	"letmein":     {},
	"welcome":     {},
	"monkey":      {},
	"dragon":      {},
	"master":      {},
}

type weakPattern struct {
	label string
	match func(string) bool
}

// Evaluated in order; every match is penalised.
var weakPatterns = []weakPattern{
	{label: PatternRepeated, match: hasRepeatedRun},
	{label: PatternSeqNumbers, match: regexp.MustCompile(ascendingTriples("1234567890")).MatchString},
	{label: PatternSeqLetters, match: regexp.MustCompile("(?i)" + ascendingTriples("abcdefghijklmnopqrstuvwxyz")).MatchString},
	{label: PatternKeyboard, match: regexp.MustCompile(`(?i)qwer|asdf|zxcv|hjkl`).MatchString},
}

// ascendingTriples builds an alternation of every 3-character window of alphabet.
func ascendingTriples(alphabet string) string {
	parts := make([]string, 0, len(alphabet)-2)
	for i := 0; i+3 <= len(alphabet); i++ {
		parts = append(parts, alphabet[i:i+3])
	}
	return strings.Join(parts, "|")
}

// hasRepeatedRun reports three or more identical consecutive characters.
// Line terminators never start or continue a run.
func hasRepeatedRun(s string) bool {
	var prev rune
	run := 0
	for _, r := range s {
		if isLineTerminator(r) {
			run = 0
			continue
		}
		if run > 0 && r == prev {
			run++
		} else {
			prev = r
			run = 1
		}
		if run >= 3 {
			return true
		}
	}
	return false
}

func isLineTerminator(r rune) bool {
	return r == '\n' || r == '\r' || r == '\u2028' || r == '\u2029'
}

type classSet struct {
	lower, upper, digit, special bool
}

func detectClasses(s string) classSet {
	var c classSet
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			c.lower = true
		case r >= 'A' && r <= 'Z':
			c.upper = true
		case r >= '0' && r <= '9':
			c.digit = true
		case strings.ContainsRune(SpecialCharacters, r):
			c.special = true
		}
	}
	return c
}

func (c classSet) charsetSize() int {
	size := 0
	if c.lower {
		size += lowerAlphabetSize
	}
	if c.upper {
		size += upperAlphabetSize
	}
	if c.digit {
		size += digitAlphabetSize
	}
	if c.special {
		size += specialAlphabetSize
	}
	return size
}

// lengthRule returns the length bucket points and its advisory, if any.
func lengthRule(length int) (int, string) {
	switch {
	case length < 6:
		return 0, recTooShort
	case length < 8:
		return 10, recAtLeastEight
	case length < 12:
		return 20, ""
	case length < 16:
		return 30, ""
	default:
		return 40, ""
	}
}

// classRule returns class bonuses and one advisory per missing class.
func classRule(c classSet) (int, []string) {
	points := 0
	var recs []string

	if c.lower {
		points += 5
	} else {
		recs = append(recs, recAddLower)
	}
	if c.upper {
		points += 5
	} else {
		recs = append(recs, recAddUpper)
	}
	if c.digit {
		points += 5
	} else {
		recs = append(recs, recAddDigits)
	}
	if c.special {
		points += 10
	} else {
		recs = append(recs, recAddSpecial)
	}

	return points, recs
}

// IsCommon reports whether password is in the built-in dictionary, ignoring case.
func IsCommon(password string) bool {
	_, ok := commonPasswords[strings.ToLower(password)]
	return ok
}

// patternRule returns the total penalty and the flagged labels in list order.
func patternRule(s string) (int, []string) {
	penalty := 0
	flagged := make([]string, 0, len(weakPatterns))
	for _, p := range weakPatterns {
		if p.match(s) {
			penalty += patternPenalty
			flagged = append(flagged, p.label)
		}
	}
	return penalty, flagged
}
