package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/ninoxdb/ninox-go"
	"github.com/ninoxdb/ninox-go/internal/config"
)

func newQueryCommand(a *app) *cobra.Command {
	var text bool
	cmd := &cobra.Command{
		Use:   "query <expression>",
		Short: "Evaluate a query expression",
		Example: `  ninox query 'count(select Customers)'
  ninox query --text 'first(select Customers).Name'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.connect(cmd)
			if err != nil {
				return err
			}
			result, err := client.Query(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), result, text)
		},
	}
	cmd.Flags().BoolVar(&text, "text", false, "Print strings unquoted instead of as JSON")
	return cmd
}

func newExecCommand(a *app) *cobra.Command {
	var (
		file string
		text bool
	)
	cmd := &cobra.Command{
		Use:   "exec [script]",
		Short: "Run a script against the database",
		Long: `Run a script against the database.

The script is taken from the arguments, or from --file ("-" for stdin).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			script := strings.Join(args, " ")
			if file != "" {
				if len(args) > 0 {
					return fmt.Errorf("give a script or --file, not both")
				}
				data, err := readInput(cmd, file)
				if err != nil {
					return err
				}
				script = string(data)
			}
			if strings.TrimSpace(script) == "" {
				return fmt.Errorf("script is required")
			}

			client, err := a.connect(cmd)
			if err != nil {
				return err
			}
			result, err := client.Exec(cmd.Context(), script)
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), result, text)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", `Script file ("-" for stdin)`)
	cmd.Flags().BoolVar(&text, "text", false, "Print strings unquoted instead of as JSON")
	return cmd
}

func newFileCommand(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "file <table> <record> <name>",
		Short: "Download a file attached to a record",
		Long: `Download a file attached to a record.

The file is written to --output, or to stdout when not given.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.connect(cmd)
			if err != nil {
				return err
			}
			data, err := client.File(cmd.Context(), args[0], ninox.RecordID(args[1]), args[2])
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := afero.WriteFile(config.AppFs, out, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "Output file")
	return cmd
}

func writeResult(w io.Writer, result *ninox.Result, text bool) error {
	if text {
		_, err := fmt.Fprintln(w, result.String())
		return err
	}
	return writeJSON(w, json.RawMessage(result.Raw()))
}
