package main

import (
	"fmt"

	goCred "github.com/MrEthical07/goCred"
	"github.com/MrEthical07/goCred/generator"
	"github.com/MrEthical07/goCred/strength"
	"github.com/spf13/cobra"
)

func newAnalyzeCmd(env *cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <password>",
		Short: "Score a password",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, err := env.secretArg(args[0])
			if err != nil {
				return err
			}

			engine, ctx, err := env.engine(cmd.Context(), nil)
			if err != nil {
				return err
			}

			result, err := engine.Analyze(ctx, secret)
			if err != nil {
				return err
			}
			return env.writeJSON(result)
		},
	}
}

type policyFlags struct {
	length           int
	upper            bool
	lower            bool
	digits           bool
	special          bool
	excludeSimilar   bool
	excludeAmbiguous bool
}

func (p *policyFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntVar(&p.length, "length", 0, "password length (default from config)")
	f.BoolVar(&p.upper, "upper", false, "include upper-case letters")
	f.BoolVar(&p.lower, "lower", false, "include lower-case letters")
	f.BoolVar(&p.digits, "digits", false, "include digits")
	f.BoolVar(&p.special, "special", false, "include special characters")
	f.BoolVar(&p.excludeSimilar, "exclude-similar", false, "drop look-alike characters (il1Lo0O)")
	f.BoolVar(&p.excludeAmbiguous, "exclude-ambiguous", false, "drop ambiguous punctuation")
}

// apply overrides base with the policy flags set on cmd's command line.
func (p *policyFlags) apply(cmd *cobra.Command, base generator.Policy) generator.Policy {
	f := cmd.Flags()
	if f.Changed("length") {
		base.Length = p.length
	}
	if f.Changed("upper") {
		base.UseUpper = p.upper
	}
	if f.Changed("lower") {
		base.UseLower = p.lower
	}
	if f.Changed("digits") {
		base.UseDigits = p.digits
	}
	if f.Changed("special") {
		base.UseSpecial = p.special
	}
	if f.Changed("exclude-similar") {
		base.ExcludeSimilar = p.excludeSimilar
	}
	if f.Changed("exclude-ambiguous") {
		base.ExcludeAmbiguous = p.excludeAmbiguous
	}
	return base
}

type generateOutput struct {
	Passwords []string           `json:"passwords,omitempty"`
	Reports   []generator.Report `json:"reports,omitempty"`
	Remaining *int               `json:"remaining,omitempty"`
}

func newGenerateCmd(env *cliEnv) *cobra.Command {
	var (
		policy policyFlags
		count  int
		report bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate passwords",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, ctx, err := env.engine(cmd.Context(), nil)
			if err != nil {
				return err
			}
			p := policy.apply(cmd, engine.Config().Generator.DefaultPolicy)

			var out generateOutput
			if report {
				if count < 0 {
					return fmt.Errorf("%w: count must be >= 0", errUsage)
				}
				for i := 0; i < count; i++ {
					r, err := engine.GenerateWithReport(ctx, p)
					if err != nil {
						return err
					}
					out.Reports = append(out.Reports, r)
				}
			} else {
				out.Passwords, err = engine.GenerateMany(ctx, p, count)
				if err != nil {
					return err
				}
			}

			if engine.Config().Throttle.Enabled {
				remaining, err := engine.GenerationRemaining(ctx)
				if err != nil {
					return err
				}
				out.Remaining = &remaining
			}
			return env.writeJSON(out)
		},
	}
	policy.register(cmd)
	cmd.Flags().IntVar(&count, "count", 1, "number of passwords")
	cmd.Flags().BoolVar(&report, "report", false, "score every generated password")
	return cmd
}

func newDigestCmd(env *cliEnv) *cobra.Command {
	var simulated bool
	cmd := &cobra.Command{
		Use:   "digest <input>",
		Short: "Compute MD5, SHA-256 and SHA-512 digests",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := env.secretArg(args[0])
			if err != nil {
				return err
			}

			engine, ctx, err := env.engine(cmd.Context(), func(cfg *goCred.Config) {
				cfg.Digest.IncludeSimulated = simulated
			})
			if err != nil {
				return err
			}
			return env.writeJSON(engine.Digest(ctx, input))
		},
	}
	cmd.Flags().BoolVar(&simulated, "simulated", false, "include the simulated bcrypt field")
	return cmd
}

type hashOutput struct {
	Hash     string          `json:"hash"`
	Strength strength.Result `json:"strength"`
}

func newHashCmd(env *cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "hash <secret>",
		Short: "Hash a credential with Argon2id",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, err := env.secretArg(args[0])
			if err != nil {
				return err
			}

			engine, ctx, err := env.engine(cmd.Context(), nil)
			if err != nil {
				return err
			}

			encoded, err := engine.HashCredential(ctx, secret)
			if err != nil {
				return err
			}
			return env.writeJSON(hashOutput{
				Hash:     encoded,
				Strength: strength.Analyze(secret),
			})
		},
	}
}

type verifyOutput struct {
	Match        bool   `json:"match"`
	Algorithm    string `json:"algorithm"`
	NeedsUpgrade *bool  `json:"needs_upgrade,omitempty"`
}

func newVerifyCmd(env *cliEnv) *cobra.Command {
	var (
		algorithm string
		hexDigest string
		encoded   string
	)
	cmd := &cobra.Command{
		Use:   "verify <input>",
		Short: "Verify a digest or an Argon2id hash",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (hexDigest == "") == (encoded == "") {
				return fmt.Errorf("%w: exactly one of --digest or --hash is required", errUsage)
			}
			input, err := env.secretArg(args[0])
			if err != nil {
				return err
			}

			engine, ctx, err := env.engine(cmd.Context(), nil)
			if err != nil {
				return err
			}

			if hexDigest != "" {
				return env.writeJSON(verifyOutput{
					Match:     engine.Verify(ctx, input, hexDigest, algorithm),
					Algorithm: algorithm,
				})
			}

			ok, err := engine.VerifyCredential(ctx, input, encoded)
			if err != nil {
				return err
			}
			out := verifyOutput{Match: ok, Algorithm: "argon2id"}
			if ok {
				upgrade, err := engine.CredentialNeedsUpgrade(ctx, encoded)
				if err != nil {
					return err
				}
				out.NeedsUpgrade = &upgrade
			}
			return env.writeJSON(out)
		},
	}
	cmd.Flags().StringVar(&algorithm, "algorithm", "sha256", "digest algorithm (md5, sha256, sha512)")
	cmd.Flags().StringVar(&hexDigest, "digest", "", "hex digest to compare against")
	cmd.Flags().StringVar(&encoded, "hash", "", "Argon2id PHC hash to verify against")
	return cmd
}

type reportOutput struct {
	Report goCred.SecurityReport `json:"report"`
	Lint   []lintEntry           `json:"lint"`
}

type lintEntry struct {
	Code     string `json:"code"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

func newReportCmd(env *cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Print the security posture of the loaded config",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, _, err := env.engine(cmd.Context(), nil)
			if err != nil {
				return err
			}

			cfg := engine.Config()
			out := reportOutput{Report: engine.SecurityReport(), Lint: []lintEntry{}}
			for _, w := range cfg.Lint() {
				out.Lint = append(out.Lint, lintEntry{Code: w.Code, Severity: w.Severity.String(), Message: w.Message})
			}
			return env.writeJSON(out)
		},
	}
}
