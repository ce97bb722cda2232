// Package cli implements the ninox command line client.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ninoxdb/ninox-go"
	"github.com/ninoxdb/ninox-go/internal/config"
)

// app carries state shared by all subcommands of one root command.
type app struct {
	v       *viper.Viper
	opts    []ninox.Option
	cfgFile string

	cfg    *config.Config
	client *ninox.Client
}

// NewRootCommand builds the command tree. opts are appended to the client
// options derived from configuration, so tests can inject a transport.
func NewRootCommand(opts ...ninox.Option) *cobra.Command {
	a := &app{v: config.New(), opts: opts}

	cmd := &cobra.Command{
		Use:   "ninox",
		Short: "Command line client for the Ninox REST API",
		Long: `ninox reads and writes records of a Ninox database.

Credentials and the target team and database are taken from flags,
NINOX_* environment variables, .env files or a .ninox.yaml config file.

Examples:
  # List the teams visible to the key
  ninox teams --auth-key $KEY --team Acme --database CRM

  # List customers named Ada, keeping only two fields
  ninox records list Customers --filter name=Ada --fields name,email

  # Run a query expression
  ninox query 'count(select Customers)'`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.client != nil {
				return a.client.Close()
			}
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default is .ninox.yaml in ., $HOME or $HOME/.config/ninox)")
	pf.String("uri", ninox.DefaultBaseURL, "API base URL")
	pf.String("api-version", ninox.DefaultVersion, "API version")
	pf.String("auth-key", "", "API key")
	pf.String("team", "", "Team name")
	pf.String("database", "", "Database name")
	pf.String("log-level", "warn", "Log level (debug, info, warn, error)")
	pf.Duration("timeout", 30*time.Second, "Request timeout")

	for key, flag := range map[string]string{
		config.KeyURI:      "uri",
		config.KeyVersion:  "api-version",
		config.KeyAuthKey:  "auth-key",
		config.KeyTeam:     "team",
		config.KeyDatabase: "database",
		config.KeyLogLevel: "log-level",
		config.KeyTimeout:  "timeout",
	} {
		_ = a.v.BindPFlag(key, pf.Lookup(flag))
	}

	cmd.AddCommand(
		newTeamsCommand(a),
		newDatabasesCommand(a),
		newRecordsCommand(a),
		newQueryCommand(a),
		newExecCommand(a),
		newFileCommand(a),
	)
	return cmd
}

// Execute runs the root command until it finishes or the process is
// interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return NewRootCommand().ExecuteContext(ctx)
}

// PrintError writes err to w in red.
func PrintError(w io.Writer, err error) {
	red := color.New(color.FgRed, color.Bold)
	red.Fprint(w, "Error: ")
	fmt.Fprintln(w, err)
}

// loadConfig reads configuration once per invocation.
func (a *app) loadConfig() (*config.Config, error) {
	if a.cfg != nil {
		return a.cfg, nil
	}
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return nil, err
	}
	a.cfg = cfg
	return cfg, nil
}

// newClient creates an unresolved client from configuration.
func (a *app) newClient(cmd *cobra.Command) (*ninox.Client, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", cfg.LogLevel)
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	opts := append([]ninox.Option{
		ninox.WithLogger(logger),
		ninox.WithTimeout(cfg.Timeout),
	}, a.opts...)

	client, err := ninox.New(opts...)
	if err != nil {
		return nil, err
	}
	a.client = client
	return client, nil
}

// connect returns a client resolved against the configured team and
// database.
func (a *app) connect(cmd *cobra.Command) (*ninox.Client, error) {
	client, err := a.newClient(cmd)
	if err != nil {
		return nil, err
	}
	if err := client.Auth(cmd.Context(), a.cfg.AuthOptions()); err != nil {
		return nil, err
	}
	return client, nil
}

// tableArg returns the table named on the command line, falling back to the
// configured default table.
func (a *app) tableArg(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	cfg, err := a.loadConfig()
	if err != nil {
		return "", err
	}
	if cfg.Table == "" {
		return "", fmt.Errorf("table is required (argument or %s_TABLE)", config.EnvPrefix)
	}
	return cfg.Table, nil
}

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// projection turns --fields and --exclude values into request options.
func projection(include, exclude []string) []ninox.RequestOption {
	var opts []ninox.RequestOption
	if names := nonEmpty(include); len(names) > 0 {
		opts = append(opts, ninox.WithFields(names...))
	}
	if names := nonEmpty(exclude); len(names) > 0 {
		opts = append(opts, ninox.WithoutFields(names...))
	}
	return opts
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
