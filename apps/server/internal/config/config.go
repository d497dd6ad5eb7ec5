package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const releaseVersion = "0.1.0"

// Config carries every flag/env-settable knob the server needs, following
// Seednode-partybox's Config/newCmd shape: fields are plain, exported,
// set via pflag and mirrored from SUPEREGO_-prefixed env vars.
type Config struct {
	Bind            string
	Port            int
	IdleSessionTTL  time.Duration
	StoreBackend    string
	SQLitePath      string
	Verbose         bool
	Version         bool
}

func (c *Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.Port)
	}
	if c.StoreBackend != "memory" && c.StoreBackend != "sqlite" {
		return errors.New("--store must be one of: memory, sqlite")
	}
	return nil
}

// Addr returns the host:port the server listens on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Bind, c.Port)
}

// NewCommand builds the root cobra.Command, wiring flags to viper-bound
// SUPEREGO_* environment variables exactly as newCmd does in the teacher
// pack's party-game CLI.
func NewCommand(cfg *Config, run func(*cobra.Command, *Config) error) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("SUPEREGO")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "superego-server",
		Short:         "Server for the SuperEgo real-time trivia/betting game.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return run(cmd, cfg)
		},
	}

	fs := cmd.Flags()
	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.Bind, "bind", "b", "0.0.0.0", "address to bind to (env: SUPEREGO_BIND)")
	fs.IntVarP(&cfg.Port, "port", "p", 18080, "port to listen on (env: SUPEREGO_PORT)")
	fs.DurationVar(&cfg.IdleSessionTTL, "idle-session-timeout", 30*time.Minute, "idle session timeout; parsed but not applied, the session registry reaps idle sessions after a fixed 30m (env: SUPEREGO_IDLE_SESSION_TIMEOUT)")
	fs.StringVar(&cfg.StoreBackend, "store", "memory", "person/deck store backend: memory or sqlite (env: SUPEREGO_STORE)")
	fs.StringVar(&cfg.SQLitePath, "sqlite-path", "superego.db", "path to the sqlite database when --store=sqlite (env: SUPEREGO_SQLITE_PATH)")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "verbose mode; parsed but not read, output is the same either way (env: SUPEREGO_VERBOSE)")
	fs.BoolVarP(&cfg.Version, "version", "V", false, "display version and exit (env: SUPEREGO_VERSION)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("superego-server v{{.Version}}\n")
	cmd.SilenceUsage = true

	return cmd
}
