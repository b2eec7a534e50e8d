package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Manage listing categories",
}

var categoriesAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a new category",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		category, err := services.Auctions.CreateCategory(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return fmt.Errorf("failed to create category: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Category '%s' created with id %s\n", category.Title, category.CategoryID)
		return nil
	},
}

var categoriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		categories, err := services.Auctions.Categories(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list categories: %w", err)
		}

		if len(categories) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No categories found")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tLISTINGS")
		for _, c := range categories {
			fmt.Fprintf(w, "%s\t%s\t%d\n", c.CategoryID, c.Title, c.ListingCount)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
	categoriesCmd.AddCommand(categoriesAddCmd)
	categoriesCmd.AddCommand(categoriesListCmd)
}
