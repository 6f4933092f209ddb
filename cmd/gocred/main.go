// Command gocred analyzes, generates, digests and hashes passwords from the
// command line. Every subcommand writes one JSON document to stdout.
//
//	gocred analyze [flags] <password>
//	gocred generate [flags]
//	gocred digest [flags] <input>
//	gocred hash [flags] <secret>
//	gocred verify [flags] <input>
//	gocred bench [flags]
//	gocred report [flags]
//
// A password argument of "-" is read from the first line of stdin.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// errUsage marks argument errors; run exits 2 for them.
var errUsage = errors.New("usage error")

// run executes the root command with args and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	env := &cliEnv{stdin: stdin, stdout: stdout, stderr: stderr}
	defer env.close()

	root := newRootCmd(env)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	cmd, err := root.ExecuteContextC(ctx)
	if err == nil {
		return 0
	}

	name := "gocred"
	if cmd != nil {
		name = cmd.CommandPath()
	}
	fmt.Fprintf(stderr, "%s: %v\n", name, err)
	if errors.Is(err, errUsage) {
		return 2
	}
	return 1
}

func newRootCmd(env *cliEnv) *cobra.Command {
	root := &cobra.Command{
		Use:   "gocred",
		Short: "Score, generate, digest and hash passwords",
		Long: `gocred runs the goCred engine from the command line.

Configuration comes from --config (.toml, .json, .yaml) or from GOCRED_*
environment variables, after an optional dotenv file is loaded.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
			if len(args) > 0 {
				return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
			}
			return fmt.Errorf("%w: missing command", errUsage)
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", errUsage, err)
	})

	pf := root.PersistentFlags()
	pf.StringVar(&env.common.configPath, "config", "", "config file (.toml, .json, .yaml)")
	pf.StringVar(&env.common.envFile, "env-file", "", "dotenv file to load before GOCRED_* overrides (default .env if present)")
	pf.StringVar(&env.common.redisAddr, "redis-addr", "", "redis address; if empty, REDIS_ADDR env is used, or miniredis when the throttle needs one")
	pf.StringVar(&env.common.denylistPath, "denylist", "", "file of compromised passwords, one per line")
	pf.StringVar(&env.common.clientID, "client-id", "", "client id charged by the generation throttle")
	pf.StringVar(&env.common.logLevel, "log-level", "", "override logging level (debug, info, warn, error)")

	root.AddCommand(
		newAnalyzeCmd(env),
		newGenerateCmd(env),
		newDigestCmd(env),
		newHashCmd(env),
		newVerifyCmd(env),
		newBenchCmd(env),
		newReportCmd(env),
	)
	return root
}

// usageArgs marks positional argument errors from v as usage errors.
func usageArgs(v cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := v(cmd, args); err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}
		return nil
	}
}
