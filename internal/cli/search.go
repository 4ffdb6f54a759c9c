package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/studycards/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search cards by term or definition",
		Args:  cobra.MinimumNArgs(1),
		Run:   runSearch,
	}

	cmd.Flags().StringP("set", "s", "", "Only search this set")
	cmd.Flags().IntP("limit", "l", 20, "Max results")

	RootCmd.AddCommand(cmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	setID, _ := cmd.Flags().GetString("set")
	limit, _ := cmd.Flags().GetInt("limit")

	svc, s, _ := openService()
	defer s.Close()

	cards, err := svc.SearchCards(cmd.Context(), store.SearchParams{
		SetID: setID,
		Query: strings.Join(args, " "),
		Limit: limit,
	})
	if err != nil {
		exitErr("search", err)
	}

	if textFormat() {
		for _, c := range cards {
			fmt.Printf("%s  %s = %s\n", c.ID, c.Term, c.Definition)
		}
		return
	}
	printJSON(cards)
}
