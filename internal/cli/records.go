package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/ninoxdb/ninox-go"
	"github.com/ninoxdb/ninox-go/internal/config"
)

func newRecordsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "records",
		Aliases: []string{"record", "rec"},
		Short:   "Read and write table records",
	}
	cmd.AddCommand(
		newRecordsListCommand(a),
		newRecordsGetCommand(a),
		newRecordsSaveCommand(a),
		newRecordsDeleteCommand(a),
	)
	return cmd
}

func newRecordsListCommand(a *app) *cobra.Command {
	var (
		filters []string
		include []string
		exclude []string
	)
	cmd := &cobra.Command{
		Use:   "list [table]",
		Short: "List records of a table",
		Long: `List records of a table.

Filters are given as name=value; values that parse as JSON (numbers,
booleans, quoted strings) are sent typed, anything else as a string.

Examples:
  ninox records list Customers
  ninox records list Customers --filter city=Berlin --filter active=true
  ninox records list Customers --fields name,email --exclude email`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := a.tableArg(args)
			if err != nil {
				return err
			}
			filter, err := parseFilter(filters)
			if err != nil {
				return err
			}
			client, err := a.connect(cmd)
			if err != nil {
				return err
			}
			records, err := client.ListRecords(cmd.Context(), table, filter, projection(include, exclude)...)
			if err != nil {
				return err
			}
			if records == nil {
				records = []ninox.Record{}
			}
			return writeJSON(cmd.OutOrStdout(), records)
		},
	}
	cmd.Flags().StringArrayVar(&filters, "filter", nil, "Field filter as name=value (repeatable)")
	cmd.Flags().StringSliceVar(&include, "fields", nil, "Keep only these fields")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "Drop these fields")
	return cmd
}

func newRecordsGetCommand(a *app) *cobra.Command {
	var include, exclude []string
	cmd := &cobra.Command{
		Use:   "get <table> <id>",
		Short: "Get one record by id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.connect(cmd)
			if err != nil {
				return err
			}
			record, err := client.GetRecord(cmd.Context(), args[0], ninox.RecordID(args[1]), projection(include, exclude)...)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), record)
		},
	}
	cmd.Flags().StringSliceVar(&include, "fields", nil, "Keep only these fields")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "Drop these fields")
	return cmd
}

func newRecordsSaveCommand(a *app) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "save [table]",
		Short: "Create or update records",
		Long: `Create or update records from a JSON document.

The document is a record object or an array of them. Records without an
id are created, records with an id are updated. It is read from --file,
or from stdin when --file is "-" or not given.

Example:
  echo '[{"fields":{"name":"Ada"}},{"id":5,"fields":{"name":"Grace"}}]' | ninox records save Customers`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := a.tableArg(args)
			if err != nil {
				return err
			}
			data, err := readInput(cmd, file)
			if err != nil {
				return err
			}
			records, err := parseRecords(data)
			if err != nil {
				return err
			}
			client, err := a.connect(cmd)
			if err != nil {
				return err
			}
			result, err := client.SaveRecords(cmd.Context(), table, records)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", `JSON file with records ("-" for stdin)`)
	return cmd
}

func newRecordsDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <table> <id>...",
		Short: "Delete records by id",
		Long: `Delete records by id.

Every id is attempted even when an earlier delete fails. The command
fails if any delete did not succeed.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.connect(cmd)
			if err != nil {
				return err
			}
			ids := make([]ninox.RecordID, 0, len(args)-1)
			for _, arg := range args[1:] {
				ids = append(ids, ninox.RecordID(arg))
			}

			ok, err := client.DeleteRecords(cmd.Context(), args[0], ids)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("not all of %d records were deleted", len(ids))
			}
			color.New(color.FgGreen).Fprintf(cmd.ErrOrStderr(), "Deleted %d record(s)\n", len(ids))
			return nil
		},
	}
}

// parseFilter converts name=value pairs into a filter.
func parseFilter(pairs []string) (ninox.Filter, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	filter := ninox.Filter{}
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid filter %q, expected name=value", pair)
		}
		var value any
		if err := json.Unmarshal([]byte(raw), &value); err != nil {
			value = raw
		}
		filter[name] = value
	}
	return filter, nil
}

// readInput reads file, or stdin when file is empty or "-".
func readInput(cmd *cobra.Command, file string) ([]byte, error) {
	if file == "" || file == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := afero.ReadFile(config.AppFs, file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file, err)
	}
	return data, nil
}

// parseRecords accepts a single record object or an array of records.
func parseRecords(data []byte) ([]ninox.Record, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("no records given")
	}
	if data[0] == '[' {
		var records []ninox.Record
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("parse records: %w", err)
		}
		return records, nil
	}
	var record ninox.Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("parse record: %w", err)
	}
	return []ninox.Record{record}, nil
}
