package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	goCred "github.com/MrEthical07/goCred"
	"github.com/MrEthical07/goCred/denylist"
	"github.com/alicebob/miniredis/v2"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// cliEnv carries the process streams and the resources opened by a subcommand.
type cliEnv struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	common  commonFlags
	closers []func()
}

func (e *cliEnv) close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i]()
	}
	e.closers = nil
}

// commonFlags are the persistent flags of the root command.
type commonFlags struct {
	configPath   string
	envFile      string
	redisAddr    string
	denylistPath string
	clientID     string
	logLevel     string
}

func loadConfig(common *commonFlags) (goCred.Config, error) {
	if common.envFile != "" {
		if err := godotenv.Load(common.envFile); err != nil {
			return goCred.Config{}, fmt.Errorf("load env file: %w", err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return goCred.Config{}, fmt.Errorf("load .env: %w", err)
	}

	var (
		cfg goCred.Config
		err error
	)
	if common.configPath != "" {
		cfg, err = goCred.LoadConfigFile(common.configPath)
		if err != nil {
			return goCred.Config{}, err
		}
	} else {
		cfg = goCred.DefaultConfig()
		if err := cfg.ApplyEnvOverrides(os.LookupEnv); err != nil {
			return goCred.Config{}, err
		}
	}

	if common.logLevel != "" {
		cfg.Logging.Level = common.logLevel
	}
	if common.denylistPath != "" {
		cfg.Denylist.Enabled = true
	}

	if err := cfg.Validate(); err != nil {
		return goCred.Config{}, fmt.Errorf("%w: %v", errUsage, err)
	}
	return cfg, nil
}

func newLogger(cfg goCred.LoggingConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if strings.EqualFold(cfg.Format, "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// redisClient connects to addr, or REDIS_ADDR when addr is empty. Without an
// address it starts miniredis only when required; otherwise it returns nil.
func (e *cliEnv) redisClient(addr string, required bool, logger *slog.Logger) (redis.UniversalClient, error) {
	if addr == "" {
		addr = os.Getenv("REDIS_ADDR")
	}

	if addr != "" {
		client := redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs: []string{addr},
		})
		e.closers = append(e.closers, func() { _ = client.Close() })
		logger.Debug("using redis", slog.String("addr", addr))
		return client, nil
	}

	if !required {
		return nil, nil
	}

	mr, err := miniredis.Run()
	if err != nil {
		return nil, fmt.Errorf("start miniredis: %w", err)
	}
	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs: []string{mr.Addr()},
	})
	e.closers = append(e.closers, func() {
		_ = client.Close()
		mr.Close()
	})
	logger.Info("using miniredis", slog.String("addr", mr.Addr()))
	return client, nil
}

// engine builds an Engine from the persistent flags. The returned context
// carries the --client-id value.
func (e *cliEnv) engine(ctx context.Context, mutate func(*goCred.Config)) (*goCred.Engine, context.Context, error) {
	common := &e.common
	cfg, err := loadConfig(common)
	if err != nil {
		return nil, ctx, err
	}
	if mutate != nil {
		mutate(&cfg)
	}

	logger := newLogger(cfg.Logging, e.stderr)

	client, err := e.redisClient(common.redisAddr, cfg.Throttle.Enabled, logger)
	if err != nil {
		return nil, ctx, err
	}

	builder := goCred.New().
		WithConfig(cfg).
		WithLogger(logger)
	if client != nil {
		builder = builder.WithRedis(client)
	}
	if cfg.Audit.Enabled {
		builder = builder.WithAuditSink(goCred.NewSlogSink(logger))
	}

	engine, err := builder.Build()
	if err != nil {
		return nil, ctx, err
	}
	e.closers = append(e.closers, engine.Close)

	if common.denylistPath != "" {
		if err := e.loadDenylist(ctx, engine, common.denylistPath); err != nil {
			return nil, ctx, err
		}
	}

	if common.clientID != "" {
		ctx = goCred.WithClientID(ctx, common.clientID)
	}
	return engine, ctx, nil
}

func (e *cliEnv) loadDenylist(ctx context.Context, engine *goCred.Engine, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open denylist: %w", err)
	}
	defer f.Close()

	words, err := denylist.ReadWords(f)
	if err != nil {
		return fmt.Errorf("read denylist: %w", err)
	}
	return engine.ExtendDenylist(ctx, words...)
}

// secretArg returns arg, or the first line of stdin when arg is "-".
func (e *cliEnv) secretArg(arg string) (string, error) {
	if arg != "-" {
		return arg, nil
	}

	sc := bufio.NewScanner(e.stdin)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return "", nil
	}
	return strings.TrimRight(sc.Text(), "\r"), nil
}

func (e *cliEnv) writeJSON(v any) error {
	enc := json.NewEncoder(e.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
