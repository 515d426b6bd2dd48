package main

import (
	"fmt"
	"os"

	"github.com/labtools/labledger/internal/cli"
	"github.com/labtools/labledger/internal/common"
	"github.com/labtools/labledger/internal/report"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export fixed-layout CSV reports",
	}

	cmd.AddCommand(exportStudentCmd())
	cmd.AddCommand(exportAllCmd())
	cmd.AddCommand(exportStatementCmd())

	return cmd
}

// openOutput returns the report destination: the named file, or stdout when
// path is empty.
func openOutput(path string) (*os.File, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func exportStudentCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "student <id>",
		Short: "Export one student's purchase receipt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			out, closeOut, err := openOutput(output)
			if err != nil {
				return err
			}
			defer closeOut()

			l := newLedgers(store)
			gen := report.NewGenerator(l.students, l.purchases)
			if err := gen.WriteStudentDetail(cmd.Context(), out, id); err != nil {
				return err
			}

			if output != "" {
				common.LogInfo("wrote student report", common.Fields{"student": id, "path": output})
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("Wrote %s", output)))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

func exportAllCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "all",
		Short: "Export every student's detail block in one file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			out, closeOut, err := openOutput(output)
			if err != nil {
				return err
			}
			defer closeOut()

			l := newLedgers(store)
			gen := report.NewGenerator(l.students, l.purchases)
			if err := gen.WriteAllStudents(cmd.Context(), out); err != nil {
				return err
			}

			if output != "" {
				common.LogInfo("wrote batch report", common.Fields{"path": output})
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("Wrote %s", output)))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

func exportStatementCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "statement",
		Short: "Export the final balance statement",
		Long: `Export a statement with one row per student. A positive balance is due
to the student; a negative balance is due to the institution.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			out, closeOut, err := openOutput(output)
			if err != nil {
				return err
			}
			defer closeOut()

			l := newLedgers(store)
			gen := report.NewGenerator(l.students, l.purchases)
			if err := gen.WriteFinalStatement(cmd.Context(), out); err != nil {
				return err
			}

			if output != "" {
				common.LogInfo("wrote final statement", common.Fields{"path": output})
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("Wrote %s", output)))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}
