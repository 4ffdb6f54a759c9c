package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/studycards/internal/store"
)

func init() {
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Manage study sets",
	}

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a study set",
		Long: `Create a study set. Cards are given with repeated --card "term=definition" flags,
or the whole set is read as JSON from stdin when no --title is given.`,
		Run: runSetCreate,
	}
	addSetFlags(create)

	list := &cobra.Command{
		Use:   "list",
		Short: "List study sets",
		Run:   runSetList,
	}

	get := &cobra.Command{
		Use:   "get <set-id>",
		Short: "Show a set with its cards",
		Args:  cobra.ExactArgs(1),
		Run:   runSetGet,
	}

	update := &cobra.Command{
		Use:   "update <set-id>",
		Short: "Replace a set's title, description and cards",
		Long:  "Replace a set's title, description and cards. Progress of the replaced cards is lost.",
		Args:  cobra.ExactArgs(1),
		Run:   runSetUpdate,
	}
	addSetFlags(update)

	rm := &cobra.Command{
		Use:   "rm <set-id>",
		Short: "Delete a set with its cards and progress",
		Args:  cobra.ExactArgs(1),
		Run:   runSetRm,
	}

	setCmd.AddCommand(create, list, get, update, rm)
	RootCmd.AddCommand(setCmd)
}

func addSetFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("title", "t", "", "Set title")
	cmd.Flags().String("description", "", "Set description")
	cmd.Flags().StringArrayP("card", "c", nil, `Card as "term=definition" (repeatable)`)
}

// setParamsFromFlags builds a set from flags, or from JSON on stdin when no title is given.
func setParamsFromFlags(cmd *cobra.Command) (store.SetParams, error) {
	title, _ := cmd.Flags().GetString("title")
	desc, _ := cmd.Flags().GetString("description")
	cards, _ := cmd.Flags().GetStringArray("card")

	if title == "" {
		var p store.SetParams
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return p, fmt.Errorf("read stdin: %w", err)
		}
		if err := json.Unmarshal(data, &p); err != nil {
			return p, fmt.Errorf("parse json: %w", err)
		}
		return p, nil
	}

	p := store.SetParams{Title: title, Description: desc}
	for i, c := range cards {
		term, def, ok := strings.Cut(c, "=")
		if !ok {
			return p, fmt.Errorf("card %q: expected term=definition", c)
		}
		p.Cards = append(p.Cards, store.CardParams{Term: term, Definition: def, Order: i})
	}
	return p, nil
}

func runSetCreate(cmd *cobra.Command, args []string) {
	p, err := setParamsFromFlags(cmd)
	if err != nil {
		exitErr("create", err)
	}

	svc, s, _ := openService()
	defer s.Close()

	set, err := svc.CreateSet(cmd.Context(), p)
	if err != nil {
		exitErr("create", err)
	}
	printJSON(set)
}

func runSetList(cmd *cobra.Command, args []string) {
	svc, s, _ := openService()
	defer s.Close()

	sets, err := svc.ListSets(cmd.Context())
	if err != nil {
		exitErr("list", err)
	}

	if textFormat() {
		for _, set := range sets {
			fmt.Printf("%s  %-30s %3d cards  %s\n", set.ID, set.Title, set.CardCount, set.CreatedAt.Format("2006-01-02"))
		}
		return
	}
	printJSON(sets)
}

func runSetGet(cmd *cobra.Command, args []string) {
	svc, s, _ := openService()
	defer s.Close()

	set, err := svc.GetSet(cmd.Context(), args[0])
	if err != nil {
		exitErr("get", err)
	}

	if textFormat() {
		fmt.Printf("# %s\n", set.Title)
		if set.Description != "" {
			fmt.Println(set.Description)
		}
		for _, c := range set.Cards {
			fmt.Printf("%s  %s = %s\n", c.ID, c.Term, c.Definition)
		}
		return
	}
	printJSON(set)
}

func runSetUpdate(cmd *cobra.Command, args []string) {
	p, err := setParamsFromFlags(cmd)
	if err != nil {
		exitErr("update", err)
	}

	svc, s, _ := openService()
	defer s.Close()

	set, err := svc.UpdateSet(cmd.Context(), args[0], p)
	if err != nil {
		exitErr("update", err)
	}
	printJSON(set)
}

func runSetRm(cmd *cobra.Command, args []string) {
	svc, s, _ := openService()
	defer s.Close()

	if err := svc.DeleteSet(cmd.Context(), args[0]); err != nil {
		exitErr("rm", err)
	}
	fmt.Printf(`{"ok":true,"deleted":%q}`+"\n", args[0])
}
