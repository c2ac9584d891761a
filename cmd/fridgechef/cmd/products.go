package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/korjavin/fridgechef/pkg/messages"
	"github.com/spf13/cobra"
)

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <ingredient>",
		Short: "Add one ingredient to your list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, changed, err := a.finder.AddProduct(a.scope, strings.Join(args, " "))
			if err != nil {
				return err
			}
			if !changed {
				fmt.Fprintln(cmd.OutOrStdout(), "It's already on your list.")
			}
			fmt.Fprintln(cmd.OutOrStdout(), messages.Products(st))
			return nil
		},
	}
}

func newBulkCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "bulk [text]",
		Short: "Add several ingredients separated by commas, semicolons or new lines (reads stdin without arguments)",
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				text = string(data)
			}

			_, added, err := a.finder.AddBulk(a.scope, text)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), messages.Added(added))
			return nil
		},
	}
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <number>",
		Short: "Remove an ingredient by its number in the list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("not a number: %q", args[0])
			}
			st, err := a.finder.RemoveProduct(a.scope, n-1)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), messages.Products(st))
			return nil
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show your ingredients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.finder.Products(a.scope)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), messages.Products(st))
			return nil
		},
	}
}

func newClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty your ingredient list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.finder.ClearProducts(a.scope); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Your ingredient list is empty now.")
			return nil
		},
	}
}

func newSuggestCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <text>",
		Short: "Suggest catalog ingredient names containing the text",
		RunE: func(cmd *cobra.Command, args []string) error {
			if out := messages.Suggestions(a.finder.Suggest(strings.Join(args, " "))); out != "" {
				fmt.Fprintln(cmd.OutOrStdout(), out)
			}
			return nil
		},
	}
}
