package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/korjavin/fridgechef/pkg/match"
	"github.com/korjavin/fridgechef/pkg/messages"
	"github.com/korjavin/fridgechef/pkg/models"
	"github.com/spf13/cobra"
)

func newSearchCmd(a *app) *cobra.Command {
	var maxTime int
	var difficulty string

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Rank recipes by how many of your ingredients they use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if maxTime < 0 {
				return fmt.Errorf("--max-time must be a positive number of minutes, got %d", maxTime)
			}
			d, ok := models.ParseDifficulty(difficulty)
			if !ok {
				return fmt.Errorf("unknown difficulty %q (want easy, medium or hard)", difficulty)
			}
			filter := match.Filter{MaxTime: maxTime, Difficulty: d}

			if _, err := a.finder.Search(a.scope); err != nil {
				if errors.Is(err, match.ErrTooFewProducts) {
					return fmt.Errorf("add at least %d ingredients before searching", match.MinProducts)
				}
				return err
			}
			results := a.finder.Refine(a.scope, filter)

			st, err := a.finder.Products(a.scope)
			if err != nil {
				return err
			}
			if !filter.IsZero() {
				fmt.Fprintln(cmd.OutOrStdout(), messages.Filter(filter))
			}
			fmt.Fprintln(cmd.OutOrStdout(), messages.Results(results, st.Len()))
			return nil
		},
	}

	cmd.Flags().IntVar(&maxTime, "max-time", 0, "only recipes that take at most this many minutes (0 means any)")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "only recipes of this difficulty (easy, medium, hard)")
	return cmd
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("not a recipe id: %q", s)
	}
	return id, nil
}

func newRecipeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "recipe <id>",
		Short: "Show a recipe with the ingredients you have and the steps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			view, err := a.finder.Recipe(a.scope, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), messages.Recipe(view))
			return nil
		},
	}
}

func newFavCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fav <id>",
		Short: "Add a recipe to favorites, or remove it if it is already there",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			id, on, err := a.finder.ToggleFavorite(a.scope, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recipe #%d: %s\n", id, messages.FavoriteLabel(on))
			return nil
		},
	}
}

func newFavoritesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "favorites",
		Short: "List your favorite recipes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			favs, err := a.finder.Favorites(a.scope)
			if err != nil {
				return err
			}
			if len(favs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "You have no favorite recipes yet.")
				return nil
			}
			st, err := a.finder.Products(a.scope)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), messages.Results(favs, st.Len()))
			return nil
		},
	}
}
