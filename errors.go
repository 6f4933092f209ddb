package goCred

import (
	"errors"

	"github.com/MrEthical07/goCred/digest"
	"github.com/MrEthical07/goCred/generator"
)

var (
	// ErrInvalidPolicy is returned when a generator policy selects no class,
	// empties an alphabet through exclusions, or exceeds Generator.MaxLength.
	ErrInvalidPolicy = generator.ErrInvalidPolicy
	// ErrInvalidCount is returned for a negative batch size or one above Generator.MaxBatch.
	ErrInvalidCount = generator.ErrInvalidCount
	// ErrUnsupportedAlgorithm is returned by DigestSum for unknown algorithm names.
	ErrUnsupportedAlgorithm = digest.ErrUnsupportedAlgorithm

	// ErrGenerationRateLimited is returned when the caller exhausted its generation budget.
	ErrGenerationRateLimited = errors.New("password generation rate limited")
	// ErrGenerationUnavailable is returned when the generation throttle backend fails.
	ErrGenerationUnavailable = errors.New("password generation backend unavailable")
	// ErrDenylistUnavailable is returned by Analyze when the denylist backend fails
	// and Denylist.FailOpen is false.
	ErrDenylistUnavailable = errors.New("denylist backend unavailable")
	// ErrDenylistReadOnly is returned by ExtendDenylist when no denylist is
	// enabled or the installed checker cannot accept new entries.
	ErrDenylistReadOnly = errors.New("denylist not writable")

	// ErrCredentialPolicy is returned by HashCredential for credentials that are
	// too short, too long, or score below Credential.MinScore.
	ErrCredentialPolicy = errors.New("credential policy violation")
	// ErrCredentialHashInvalid is returned for stored hashes that cannot be parsed.
	ErrCredentialHashInvalid = errors.New("credential hash invalid")

	// ErrEngineNotReady is returned by methods called on a nil or closed Engine.
	ErrEngineNotReady = errors.New("engine not ready")
)
