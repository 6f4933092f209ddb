package strength

import (
	"fmt"
	"math"
	"unicode/utf8"
)

// Options adjusts a single analysis with facts established by the caller.
type Options struct {
	// Denylisted marks the password as found on an external denylist. It is
	// scored exactly like a built-in dictionary hit.
	Denylisted bool
}

// Analyze scores password with the built-in dictionary only.
func Analyze(password string) Result {
	return AnalyzeWithOptions(password, Options{})
}

// AnalyzeWithOptions scores password. It is a pure function of its inputs.
func AnalyzeWithOptions(password string, opts Options) Result {
	classes := detectClasses(password)
	length := utf8.RuneCountInString(password)

	recs := make([]string, 0, 7)

	score, lengthRec := lengthRule(length)
	if lengthRec != "" {
		recs = append(recs, lengthRec)
	}

	classPoints, classRecs := classRule(classes)
	score += classPoints
	recs = append(recs, classRecs...)

	if opts.Denylisted || IsCommon(password) {
		score = min(score, commonPasswordCap)
		recs = append(recs, recCommonPassword)
	}

	penalty, flagged := patternRule(password)
	score -= penalty

	label, crack := Classify(score)

	if len(recs) == 0 && score >= 80 {
		recs = append(recs, recExcellent)
	}

	return Result{
		Score:              score,
		EntropyBits:        entropyBits(length, classes.charsetSize()),
		Strength:           label,
		EstimatedCrackTime: crack,
		HasLower:           classes.lower,
		HasUpper:           classes.upper,
		HasDigit:           classes.digit,
		HasSpecial:         classes.special,
		Length:             length,
		Recommendations:    recs,
		FlaggedPatterns:    flagged,
	}
}

// EntropyBits returns length × log2(charsetSize), or 0 for an empty charset.
func EntropyBits(password string) float64 {
	return entropyBits(utf8.RuneCountInString(password), detectClasses(password).charsetSize())
}

func entropyBits(length, charsetSize int) float64 {
	if charsetSize == 0 {
		return 0
	}
	return float64(length) * math.Log2(float64(charsetSize))
}

const (
	guessesPerSecond = 1e9
	secondsPerMinute = 60
	secondsPerHour   = 3600
	secondsPerDay    = 86400
	secondsPerYear   = 31536000
)

// CrackTimeFromEntropy estimates the average time to brute-force a keyspace of
// 2^bits at one billion guesses per second. Results are "Instantly", "N seconds",
// "N minutes", "N hours", "N days", "N years" or "Centuries".
func CrackTimeFromEntropy(bits float64) string {
	seconds := math.Pow(2, bits) / 2 / guessesPerSecond

	switch {
	case seconds < 1:
		return "Instantly"
	case seconds < secondsPerMinute:
		return fmt.Sprintf("%.0f seconds", math.Round(seconds))
	case seconds < secondsPerHour:
		return fmt.Sprintf("%.0f minutes", math.Round(seconds/secondsPerMinute))
	case seconds < secondsPerDay:
		return fmt.Sprintf("%.0f hours", math.Round(seconds/secondsPerHour))
	case seconds < secondsPerYear:
		return fmt.Sprintf("%.0f days", math.Round(seconds/secondsPerDay))
	case seconds < secondsPerYear*1000:
		return fmt.Sprintf("%.0f years", math.Round(seconds/secondsPerYear))
	default:
		return "Centuries"
	}
}
