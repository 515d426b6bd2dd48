package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/labtools/labledger/internal/cli"
	"github.com/labtools/labledger/internal/settings"
	"github.com/spf13/cobra"
)

func purchasesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "purchases",
		Short: "Record and reverse component purchases",
	}

	cmd.AddCommand(purchasesAddCmd())
	cmd.AddCommand(purchasesReverseCmd())
	cmd.AddCommand(purchasesListCmd())

	return cmd
}

func purchasesAddCmd() *cobra.Command {
	var (
		studentID   string
		componentID string
		quantity    string
		price       string
		notes       string
		yes         bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a purchase",
		Long: `Record a purchase for a student. Stock is decreased by the purchased
quantity in the same database transaction as the insert. Omitting --price
snapshots the component's current price. A negative quantity records a
return and increases stock.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sid, err := parseID(studentID)
			if err != nil {
				return err
			}
			cid, err := parseID(componentID)
			if err != nil {
				return err
			}
			qty, err := parseMoney(quantity, "quantity")
			if err != nil {
				return err
			}

			store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			l := newLedgers(store)

			unitPrice, err := parseMoney(price, "price")
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("price") {
				component, compErr := l.inventory.Component(cmd.Context(), cid)
				if compErr != nil {
					return compErr
				}
				unitPrice = component.Price
			}

			if !yes {
				confirm, confErr := settings.NewService(store).Bool(cmd.Context(), settings.KeyConfirmPurchases)
				if confErr != nil {
					return confErr
				}
				if confirm && !promptYesNo(fmt.Sprintf("Record purchase of %s × %s for student %d?",
					qty.String(), cli.FormatMoney(unitPrice), sid)) {
					fmt.Println("Aborted.")
					return nil
				}
			}

			id, err := l.purchases.Purchase(cmd.Context(), sid, cid, qty, unitPrice, notes)
			if err != nil {
				return err
			}

			total := qty.Mul(unitPrice)
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded transaction %d (total %s)", id, cli.FormatMoney(total))))

			component, err := l.inventory.Component(cmd.Context(), cid)
			if err != nil {
				return err
			}
			if component.Quantity < 0 {
				fmt.Println(cli.FormatWarning(fmt.Sprintf("%s is oversold: stock is now %d", component.Identifier, component.Quantity)))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&studentID, "student", "s", "", "student id")
	cmd.Flags().StringVarP(&componentID, "component", "c", "", "component id")
	cmd.Flags().StringVarP(&quantity, "quantity", "q", "1", "quantity purchased")
	cmd.Flags().StringVarP(&price, "price", "p", "", "unit price (default: component's current price)")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	_ = cmd.MarkFlagRequired("student")
	_ = cmd.MarkFlagRequired("component")

	return cmd
}

func purchasesReverseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reverse <transaction-id>",
		Short: "Reverse a purchase",
		Long: `Delete a transaction and credit its total cost back to the student.
Component stock is not restored.`,
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

			if err := newLedgers(store).purchases.Reverse(cmd.Context(), id); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Reversed transaction %d", id)))
			return nil
		},
	}
}

func purchasesListCmd() *cobra.Command {
	var studentID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			l := newLedgers(store)

			txns, err := l.purchases.AllTransactions(cmd.Context())
			if studentID != "" {
				sid, idErr := parseID(studentID)
				if idErr != nil {
					return idErr
				}
				txns, err = l.purchases.Transactions(cmd.Context(), sid)
			}
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDATE\tSTUDENT\tCOMPONENT\tQTY\tPRICE\tTOTAL")
			for _, txn := range txns {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
					txn.ID,
					txn.Date.Format("2006-01-02"),
					txn.StudentName,
					txn.ComponentCode,
					txn.Quantity.String(),
					cli.FormatMoney(txn.UnitPrice),
					cli.FormatMoney(txn.TotalCost))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&studentID, "student", "s", "", "only this student's transactions")

	return cmd
}

// promptYesNo asks on stdin and returns true only for an explicit yes.
func promptYesNo(question string) bool {
	fmt.Printf("%s [y/N]: ", question)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
