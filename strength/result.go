package strength

import (
	"fmt"
	"strings"
)

// Label is the strength bucket derived from a score.
type Label int

const (
	// VeryWeak is assigned to scores below 20.
	VeryWeak Label = iota
	// Weak is assigned to scores in [20, 40).
	Weak
	// Fair is assigned to scores in [40, 60).
	Fair
	// Good is assigned to scores in [60, 80).
	Good
	// Strong is assigned to scores in [80, 100).
	Strong
	// VeryStrong is assigned to scores of 100 and above.
	VeryStrong
)

var labelNames = [...]string{"Very Weak", "Weak", "Fair", "Good", "Strong", "Very Strong"}

func (l Label) String() string {
	if l < 0 || int(l) >= len(labelNames) {
		return fmt.Sprintf("Label(%d)", int(l))
	}
	return labelNames[l]
}

// MarshalText renders the display name, e.g. "Very Weak".
func (l Label) MarshalText() ([]byte, error) {
	if l < 0 || int(l) >= len(labelNames) {
		return nil, fmt.Errorf("strength: invalid label %d", int(l))
	}
	return []byte(labelNames[l]), nil
}

// UnmarshalText accepts the display name case-insensitively.
func (l *Label) UnmarshalText(text []byte) error {
	for i, name := range labelNames {
		if strings.EqualFold(name, string(text)) {
			*l = Label(i)
			return nil
		}
	}
	return fmt.Errorf("strength: unknown label %q", text)
}

// CrackTime is the coarse time-to-crack bucket paired with each Label.
type CrackTime int

const (
	// Instantly pairs with VeryWeak.
	Instantly CrackTime = iota
	// Minutes pairs with Weak.
	Minutes
	// Hours pairs with Fair.
	Hours
	// Days pairs with Good.
	Days
	// Years pairs with Strong.
	Years
	// Centuries pairs with VeryStrong.
	Centuries
)

var crackTimeNames = [...]string{"Instantly", "Minutes", "Hours", "Days", "Years", "Centuries"}

func (c CrackTime) String() string {
	if c < 0 || int(c) >= len(crackTimeNames) {
		return fmt.Sprintf("CrackTime(%d)", int(c))
	}
	return crackTimeNames[c]
}

// MarshalText renders the display name, e.g. "Centuries".
func (c CrackTime) MarshalText() ([]byte, error) {
	if c < 0 || int(c) >= len(crackTimeNames) {
		return nil, fmt.Errorf("strength: invalid crack time %d", int(c))
	}
	return []byte(crackTimeNames[c]), nil
}

// UnmarshalText accepts the display name case-insensitively.
func (c *CrackTime) UnmarshalText(text []byte) error {
	for i, name := range crackTimeNames {
		if strings.EqualFold(name, string(text)) {
			*c = CrackTime(i)
			return nil
		}
	}
	return fmt.Errorf("strength: unknown crack time %q", text)
}

// Result is the immutable outcome of one analysis.
type Result struct {
	Score              int       `json:"score"`
	EntropyBits        float64   `json:"entropy_bits"`
	Strength           Label     `json:"strength"`
	EstimatedCrackTime CrackTime `json:"estimated_crack_time"`
	HasLower           bool      `json:"has_lower"`
	HasUpper           bool      `json:"has_upper"`
	HasDigit           bool      `json:"has_digit"`
	HasSpecial         bool      `json:"has_special"`
	Length             int       `json:"length"`
	Recommendations    []string  `json:"recommendations"`
	FlaggedPatterns    []string  `json:"flagged_patterns"`
}

// Classify maps a raw score onto its label and crack-time bucket.
func Classify(score int) (Label, CrackTime) {
	switch {
	case score < 20:
		return VeryWeak, Instantly
	case score < 40:
		return Weak, Minutes
	case score < 60:
		return Fair, Hours
	case score < 80:
		return Good, Days
	case score < 100:
		return Strong, Years
	default:
		return VeryStrong, Centuries
	}
}
