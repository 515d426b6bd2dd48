package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/labtools/labledger/internal/cli"
	"github.com/labtools/labledger/internal/common"
	"github.com/labtools/labledger/internal/csvimport"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import a component list from CSV",
		Long: `Import components from an ITEM/PRICE/DESCRIPTION CSV file. The field
delimiter (comma or semicolon) is detected automatically. Known identifiers
go through duplicate resolution: the higher price wins, and on equal prices
a description only fills in a missing one. Bad rows are counted, never
fatal.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read import file: %w", err)
			}
			common.LogDebug("read import file", common.Fields{"path": args[0], "bytes": len(data)})

			store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			opts := []csvimport.Option{}
			if !quiet {
				// The row count gives the bar a total; the importer itself
				// streams and never needs it.
				total := bytes.Count(data, []byte("\n"))
				bar := progressbar.NewOptions(total,
					progressbar.OptionSetDescription("Importing components"),
					progressbar.OptionShowCount(),
					progressbar.OptionSetWidth(40),
					progressbar.OptionClearOnFinish(),
				)
				opts = append(opts, csvimport.WithProgress(func(int) {
					_ = bar.Add(1)
				}))
			}

			result, err := csvimport.New(store, opts...).Import(cmd.Context(), bytes.NewReader(data))
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf(
				"Import complete: %d imported, %d updated, %d skipped, %d errors",
				result.Imported, result.Updated, result.Skipped, result.Errors)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress the progress bar")

	return cmd
}
