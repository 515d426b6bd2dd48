package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/labtools/labledger/internal/cli"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// emailDomain is appended to the student number when no email is supplied,
// matching the institution's address scheme.
const emailDomain = "nust.na"

func studentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "students",
		Short: "Manage student accounts",
	}

	cmd.AddCommand(studentsListCmd())
	cmd.AddCommand(studentsAddCmd())
	cmd.AddCommand(studentsUpdateCmd())
	cmd.AddCommand(studentsBalanceCmd())
	cmd.AddCommand(studentsDeleteCmd())

	return cmd
}

func studentsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all students with their balances",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			l := newLedgers(store)
			students, err := l.students.Students(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tNUMBER\tEMAIL\tPAID\tBALANCE")
			for _, st := range students {
				final, balErr := l.students.FinalBalance(cmd.Context(), st.ID)
				if balErr != nil {
					return balErr
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
					st.ID, st.Name, st.Number, st.Email,
					cli.FormatMoney(st.InitialBalance), cli.FormatMoney(final))
			}
			return w.Flush()
		},
	}
}

func studentsAddCmd() *cobra.Command {
	var (
		number  string
		email   string
		phone   string
		balance string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a student",
		Long: `Add a student account. When --email is not given the address is derived
from the student number.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			initial, err := parseMoney(balance, "balance")
			if err != nil {
				return err
			}

			if email == "" && number != "" {
				email = fmt.Sprintf("%s@%s", number, emailDomain)
			}

			store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			id, err := newLedgers(store).students.CreateStudent(cmd.Context(), name, number, email, phone, initial)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added student %s (id %d)", name, id)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&number, "number", "n", "", "student number")
	cmd.Flags().StringVarP(&email, "email", "e", "", "email (default: derived from number)")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number")
	cmd.Flags().StringVarP(&balance, "balance", "b", "0", "initial balance (money deposited)")
	_ = cmd.MarkFlagRequired("number")

	return cmd
}

func studentsUpdateCmd() *cobra.Command {
	var (
		name           string
		number         string
		email          string
		phone          string
		initialBalance string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a student",
		Long: `Update a student account. The current derived balance is preserved in
the legacy balance field; --initial-balance changes only the deposit amount.`,
		Args: cobra.ExactArgs(1),
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

			l := newLedgers(store)

			var initialPtr *decimal.Decimal
			if cmd.Flags().Changed("initial-balance") {
				initial, parseErr := parseMoney(initialBalance, "initial-balance")
				if parseErr != nil {
					return parseErr
				}
				initialPtr = &initial
			}

			// Snapshot the derived balance into the legacy field, the way
			// the original edit flow did.
			final, err := l.students.FinalBalance(cmd.Context(), id)
			if err != nil {
				return err
			}

			if err := l.students.UpdateStudent(cmd.Context(), id, name, number, email, phone, final, initialPtr); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated student %d", id)))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "student name")
	cmd.Flags().StringVarP(&number, "number", "n", "", "student number")
	cmd.Flags().StringVarP(&email, "email", "e", "", "email")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number")
	cmd.Flags().StringVarP(&initialBalance, "initial-balance", "b", "", "initial balance (money deposited)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("number")

	return cmd
}

func studentsBalanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance <id>",
		Short: "Show a student's derived final balance",
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

			l := newLedgers(store)
			student, err := l.students.Student(cmd.Context(), id)
			if err != nil {
				return err
			}
			final, err := l.students.FinalBalance(cmd.Context(), id)
			if err != nil {
				return err
			}
			count, err := l.students.TransactionCount(cmd.Context(), id)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatTitle(fmt.Sprintf("%s (%s)", student.Name, student.Number)))
			fmt.Printf("Paid:         %s\n", cli.FormatMoney(student.InitialBalance))
			fmt.Printf("Used:         %s\n", cli.FormatMoney(final.Sub(student.InitialBalance).Abs()))
			fmt.Printf("Balance:      %s\n", cli.FormatMoney(final))
			fmt.Printf("Transactions: %d\n", count)
			return nil
		},
	}
}

func studentsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a student and all their transactions",
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

			if err := newLedgers(store).students.DeleteStudent(cmd.Context(), id); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted student %d and their transactions", id)))
			return nil
		},
	}
}
