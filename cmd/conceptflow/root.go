package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/viant/conceptflow"
	"github.com/viant/conceptflow/service/llm"
)

// settings holds state shared by the sub commands
type settings struct {
	cfgFile  string
	logLevel string
	v        *viper.Viper
	config   conceptflow.Config
}

func newRootCmd(version string) *cobra.Command {
	s := &settings{v: viper.New()}
	rootCmd := &cobra.Command{
		Use:           "conceptflow",
		Short:         "Run concept workflows",
		Long:          `Load declarative concept workflows (YAML) from any afs URL, validate their concept dependencies and run them.`,
		Version:       version,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.load()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&s.cfgFile, "config", "c", "", "config file (default: ./.conceptflow.yaml when present)")
	flags.StringVar(&s.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	flags.Int("concurrency", 1, "maximum number of threads children running at once")
	flags.Bool("validate", true, "check concept dependencies before running")
	flags.Bool("cache", false, "cache model responses by prompt")
	flags.Bool("trace", false, "emit OpenTelemetry spans")
	flags.String("trace-output", "", "trace output file (default: stdout)")
	_ = s.v.BindPFlag("threads.concurrency", flags.Lookup("concurrency"))
	_ = s.v.BindPFlag("validation.enabled", flags.Lookup("validate"))
	_ = s.v.BindPFlag("cache.enabled", flags.Lookup("cache"))
	_ = s.v.BindPFlag("tracing.enabled", flags.Lookup("trace"))
	_ = s.v.BindPFlag("tracing.output", flags.Lookup("trace-output"))

	rootCmd.AddCommand(newRunCmd(s), newValidateCmd(s))
	return rootCmd
}

// load merges defaults, the config file, CONCEPTFLOW_* variables and flags
func (s *settings) load() error {
	defaults := conceptflow.DefaultConfig()
	s.v.SetDefault("threads.concurrency", defaults.Threads.Concurrency)
	s.v.SetDefault("validation.enabled", defaults.Validation.Enabled)
	s.v.SetDefault("overwrite.diff", defaults.Overwrite.Diff)
	s.v.SetDefault("overwrite.context", defaults.Overwrite.Context)
	s.v.SetDefault("cache.enabled", defaults.Cache.Enabled)
	s.v.SetDefault("cache.ttl", defaults.Cache.TTL)
	s.v.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	s.v.SetDefault("tracing.serviceName", defaults.Tracing.ServiceName)
	s.v.SetDefault("tracing.version", defaults.Tracing.Version)
	s.v.SetDefault("tracing.output", defaults.Tracing.Output)

	s.v.SetEnvPrefix("conceptflow")
	s.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	s.v.AutomaticEnv()

	if s.cfgFile != "" {
		s.v.SetConfigFile(s.cfgFile)
	} else {
		s.v.AddConfigPath(".")
		s.v.SetConfigName(".conceptflow")
		s.v.SetConfigType("yaml")
	}
	if err := s.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if s.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	if err := s.v.Unmarshal(&s.config); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}
	return s.config.Validate()
}

// newService creates the engine with the built-in echo model as default
func (s *settings) newService(cmd *cobra.Command) (*conceptflow.Service, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s.logLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", s.logLevel, err)
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	config := s.config
	srv := conceptflow.New(
		conceptflow.WithConfig(&config),
		conceptflow.WithLogger(logger),
		conceptflow.WithModel("echo", llm.NewEcho("echo")),
		conceptflow.WithDefaultModel("echo"),
	)
	if err := srv.Err(); err != nil {
		_ = srv.Shutdown(cmd.Context())
		return nil, err
	}
	return srv, nil
}

// shutdown flushes traces before the command exits
func (s *settings) shutdown(cmd *cobra.Command, srv *conceptflow.Service) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "tracing shutdown: %v\n", err)
	}
}
