package goCred

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/MrEthical07/goCred/password"
	"github.com/MrEthical07/goCred/strength"
)

var errCredentialMismatch = errors.New("credential mismatch")

// HashCredential derives an Argon2id PHC string for secret. Secrets shorter than
// 10 bytes, longer than Credential.MaxPasswordBytes, or scoring below
// Credential.MinScore return ErrCredentialPolicy. When MinScore is set the
// denylist is consulted like Analyze does.
func (e *Engine) HashCredential(ctx context.Context, secret string) (string, error) {
	if err := e.ready(); err != nil {
		return "", err
	}

	if err := e.admitCredential(ctx, secret); err != nil {
		if errors.Is(err, ErrCredentialPolicy) {
			e.metricInc(MetricCredentialPolicyRejected)
		}
		e.emitAudit(ctx, auditEventCredentialHash, false, err, nil)
		return "", err
	}

	encoded, err := e.hasher.Hash(secret)
	if err != nil {
		err = mapPasswordError(err)
		if errors.Is(err, ErrCredentialPolicy) {
			e.metricInc(MetricCredentialPolicyRejected)
		}
		e.emitAudit(ctx, auditEventCredentialHash, false, err, nil)
		return "", err
	}

	e.metricInc(MetricCredentialHashed)
	e.emitAudit(ctx, auditEventCredentialHash, true, nil, func() map[string]string {
		return map[string]string{
			"memory_kib":  strconv.FormatUint(uint64(e.config.Credential.Memory), 10),
			"time":        strconv.FormatUint(uint64(e.config.Credential.Time), 10),
			"parallelism": strconv.FormatUint(uint64(e.config.Credential.Parallelism), 10),
		}
	})

	return encoded, nil
}

func (e *Engine) admitCredential(ctx context.Context, secret string) error {
	minScore := e.config.Credential.MinScore
	if minScore <= 0 {
		return nil
	}

	denylisted, err := e.checkDenylist(ctx, secret)
	if err != nil {
		return err
	}

	res := strength.AnalyzeWithOptions(secret, strength.Options{Denylisted: denylisted})
	if res.Score < minScore {
		return fmt.Errorf("%w: score %d below minimum %d", ErrCredentialPolicy, res.Score, minScore)
	}
	return nil
}

// VerifyCredential checks secret against a PHC string produced by
// HashCredential. A mismatch is (false, nil). Unparseable hashes return
// ErrCredentialHashInvalid and oversized secrets ErrCredentialPolicy.
func (e *Engine) VerifyCredential(ctx context.Context, secret, encodedHash string) (bool, error) {
	if err := e.ready(); err != nil {
		return false, err
	}

	ok, err := e.hasher.Verify(secret, encodedHash)
	if err != nil {
		err = mapPasswordError(err)
		e.metricInc(MetricCredentialVerifyFailure)
		e.emitAudit(ctx, auditEventCredentialVerify, false, err, nil)
		return false, err
	}

	if !ok {
		e.metricInc(MetricCredentialVerifyFailure)
		e.emitAudit(ctx, auditEventCredentialVerify, false, errCredentialMismatch, nil)
		return false, nil
	}

	e.metricInc(MetricCredentialVerifySuccess)
	e.emitAudit(ctx, auditEventCredentialVerify, true, nil, nil)
	return true, nil
}

// CredentialNeedsUpgrade reports whether encodedHash was derived with weaker
// parameters than the current Credential config and should be rehashed after
// the next successful VerifyCredential.
func (e *Engine) CredentialNeedsUpgrade(_ context.Context, encodedHash string) (bool, error) {
	if err := e.ready(); err != nil {
		return false, err
	}

	upgrade, err := e.hasher.NeedsUpgrade(encodedHash)
	if err != nil {
		return false, mapPasswordError(err)
	}
	if upgrade {
		e.metricInc(MetricCredentialUpgradeNeeded)
	}
	return upgrade, nil
}

func mapPasswordError(err error) error {
	switch {
	case errors.Is(err, password.ErrPasswordTooShort),
		errors.Is(err, password.ErrPasswordTooLong):
		return fmt.Errorf("%w: %v", ErrCredentialPolicy, err)
	case errors.Is(err, password.ErrMalformedHash):
		return fmt.Errorf("%w: %v", ErrCredentialHashInvalid, err)
	default:
		return err
	}
}
