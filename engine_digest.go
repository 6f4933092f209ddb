package goCred

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/MrEthical07/goCred/digest"
)

var errDigestMismatch = errors.New("digest mismatch")

// Digest returns the MD5, SHA-256 and SHA-512 digests of input, plus the
// simulated bcrypt field when Digest.IncludeSimulated is set. Its salt comes
// from the engine's random source; if that read fails the field is left empty.
// Digest never fails; on a closed engine it still computes the set but records
// nothing.
func (e *Engine) Digest(ctx context.Context, input string) digest.Set {
	if e == nil {
		return digest.Standard(input)
	}

	set := e.digestSet(ctx, input)
	if e.ready() != nil {
		return set
	}

	e.metricInc(MetricDigestComputed)
	e.emitAudit(ctx, auditEventDigest, true, nil, func() map[string]string {
		return map[string]string{
			"simulated": strconv.FormatBool(set.SimulatedBcrypt != ""),
		}
	})

	return set
}

func (e *Engine) digestSet(ctx context.Context, input string) digest.Set {
	set := digest.Standard(input)
	if !e.config.Digest.IncludeSimulated {
		return set
	}

	simulated, err := digest.SimulatedBcryptFrom(e.random, input)
	if err != nil {
		e.logger.Warn("simulated digest skipped",
			append(logAttrs(ctx), slog.String("error", err.Error()))...)
		return set
	}
	set.SimulatedBcrypt = simulated
	return set
}

// Verify reports whether hexDigest is the named algorithm's digest of input.
// Algorithm names are case-insensitive; unknown names yield false.
func (e *Engine) Verify(ctx context.Context, input, hexDigest, algorithm string) bool {
	ok := digest.Verify(input, hexDigest, algorithm)
	if e.ready() != nil {
		return ok
	}

	alg := "unsupported"
	var err error
	if parsed, perr := digest.ParseAlgorithm(algorithm); perr == nil {
		alg = string(parsed)
		if !ok {
			err = errDigestMismatch
		}
	} else {
		err = perr
	}

	if ok {
		e.metricInc(MetricDigestVerifySuccess)
	} else {
		e.metricInc(MetricDigestVerifyFailure)
	}
	e.emitAudit(ctx, auditEventDigestVerify, ok, err, func() map[string]string {
		return map[string]string{"algorithm": alg}
	})

	return ok
}

// DigestSum returns the lower-case hex digest of input under algorithm, or
// ErrUnsupportedAlgorithm.
func (e *Engine) DigestSum(_ context.Context, algorithm, input string) (string, error) {
	return digest.Sum(algorithm, input)
}
