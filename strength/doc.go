// Package strength scores candidate passwords and reports structured diagnostics.
//
// # Scoring
//
// [Analyze] folds a fixed set of independent rules into a [Result]:
//
//   - length bucket (0/10/20/30/40 points)
//   - character-class bonuses (lower +5, upper +5, digit +5, special +10)
//   - common-password dictionary (score clamped to at most 10)
//   - weak patterns (-10 each, all evaluated)
//
// The final score is never clamped; heavily penalised inputs may go negative.
// [Label] and [CrackTime] are bucketed from the score alone.
//
// # What this package must NOT do
//
//   - Perform I/O, read ambient state, or use randomness.
//   - Return errors: every string, including "" and arbitrary Unicode, yields a Result.
package strength
