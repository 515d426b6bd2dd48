package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/labtools/labledger/internal/classification"
	"github.com/labtools/labledger/internal/cli"
	"github.com/labtools/labledger/internal/model"
	"github.com/labtools/labledger/internal/settings"
	"github.com/spf13/cobra"
)

func componentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "components",
		Short: "Manage component stock",
	}

	cmd.AddCommand(componentsListCmd())
	cmd.AddCommand(componentsAddCmd())
	cmd.AddCommand(componentsUpdateCmd())
	cmd.AddCommand(componentsAdjustCmd())
	cmd.AddCommand(componentsDeleteCmd())

	return cmd
}

func componentsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all components",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			components, err := newLedgers(store).inventory.Components(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tIDENTIFIER\tDESCRIPTION\tPRICE\tSTOCK\tCATEGORY")
			for _, c := range components {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
					c.ID, c.Identifier, c.Description, cli.FormatMoney(c.Price), cli.FormatStock(c.Quantity), c.Category)
			}
			return w.Flush()
		},
	}
}

func componentsAddCmd() *cobra.Command {
	var (
		description string
		price       string
		quantity    int64
		category    string
	)

	cmd := &cobra.Command{
		Use:   "add <identifier>",
		Short: "Add a component",
		Long: `Add a component to the inventory. When --category is not given the
component is categorized automatically from its identifier and description.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			identifier := args[0]

			priceValue, err := parseMoney(price, "price")
			if err != nil {
				return err
			}

			cat := model.Category(category)
			if category == "" {
				cat = classification.Categorize(identifier, description)
			}

			store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			id, err := newLedgers(store).inventory.CreateComponent(cmd.Context(), identifier, description, priceValue, quantity, cat)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added component %s (id %d, category %s)", identifier, id, cat)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "component description")
	cmd.Flags().StringVarP(&price, "price", "p", "0", "unit price")
	cmd.Flags().Int64VarP(&quantity, "quantity", "q", 0, "initial stock quantity")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category (default: auto-categorized)")

	return cmd
}

func componentsUpdateCmd() *cobra.Command {
	var (
		identifier  string
		description string
		price       string
		quantity    int64
		category    string
		yes         bool
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a component",
		Long: `Update a component. Identifier, description and price are always
overwritten; stock quantity and category are only changed when their flags
are set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			priceValue, err := parseMoney(price, "price")
			if err != nil {
				return err
			}

			var quantityPtr *int64
			if cmd.Flags().Changed("quantity") {
				quantityPtr = &quantity
			}
			var categoryPtr *model.Category
			if cmd.Flags().Changed("category") {
				cat := model.Category(category)
				categoryPtr = &cat
			}

			store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if categoryPtr != nil && !yes {
				confirm, confErr := settings.NewService(store).Bool(cmd.Context(), settings.KeyConfirmCategoryChanges)
				if confErr != nil {
					return confErr
				}
				if confirm && !promptYesNo(fmt.Sprintf("Change category of component %d to %s?", id, *categoryPtr)) {
					fmt.Println("Aborted.")
					return nil
				}
			}

			if err := newLedgers(store).inventory.UpdateComponent(cmd.Context(), id, identifier, description, priceValue, quantityPtr, categoryPtr); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated component %d", id)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&identifier, "identifier", "i", "", "component identifier")
	cmd.Flags().StringVarP(&description, "description", "d", "", "component description")
	cmd.Flags().StringVarP(&price, "price", "p", "0", "unit price")
	cmd.Flags().Int64VarP(&quantity, "quantity", "q", 0, "stock quantity")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the category change prompt")
	_ = cmd.MarkFlagRequired("identifier")

	return cmd
}

func componentsAdjustCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "adjust <id> <delta>",
		Short: "Adjust a component's stock quantity",
		Long: `Add a signed delta to a component's stock. The quantity may go
negative; a negative count flags oversold or backordered stock.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			delta, err := parseInt(args[1])
			if err != nil {
				return err
			}

			store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			l := newLedgers(store)
			if err := l.inventory.AdjustStock(cmd.Context(), id, delta); err != nil {
				return err
			}

			component, err := l.inventory.Component(cmd.Context(), id)
			if err != nil {
				return err
			}

			fmt.Printf("%s stock is now %s\n", component.Identifier, cli.FormatStock(component.Quantity))
			return nil
		},
	}
}

func componentsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a component",
		Long: `Delete a component record. Transactions referencing the component are
kept; component deletion never cascades.`,
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

			if err := newLedgers(store).inventory.DeleteComponent(cmd.Context(), id); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted component %d", id)))
			return nil
		},
	}
}
