package main

import (
	"fmt"
	"strings"

	"github.com/npillmayer/lrtables/lr"
	"github.com/npillmayer/lrtables/lr/notation"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:     "first <grammar>",
		Short:   "Print the FIRST sets of all non-terminals",
		Example: `  lrtab first expr.grammar`,
		Args:    cobra.ExactArgs(1),
		RunE:    runFirst,
	})
	rootCmd.AddCommand(&cobra.Command{
		Use:     "follow <grammar>",
		Short:   "Print the FOLLOW sets of all non-terminals",
		Example: `  lrtab follow expr.grammar`,
		Args:    cobra.ExactArgs(1),
		RunE:    runFollow,
	})
	rootCmd.AddCommand(&cobra.Command{
		Use:     "states <grammar>",
		Short:   "Print the states of the LR(0) automaton",
		Example: `  lrtab states expr.grammar`,
		Args:    cobra.ExactArgs(1),
		RunE:    runStates,
	})
}

func runFirst(cmd *cobra.Command, args []string) error {
	g, err := readGrammar(args[0])
	if err != nil {
		return err
	}
	return pterm.DefaultTable.WithHasHeader().WithData(firstData(g)).Render()
}

func runFollow(cmd *cobra.Command, args []string) error {
	g, err := readGrammar(args[0])
	if err != nil {
		return err
	}
	return pterm.DefaultTable.WithHasHeader().WithData(followData(g)).Render()
}

func runStates(cmd *cobra.Command, args []string) error {
	g, err := readGrammar(args[0])
	if err != nil {
		return err
	}
	return pterm.DefaultTable.WithHasHeader().WithData(statesData(g, g.LR0Automaton())).Render()
}

func firstData(g *notation.Grammar) pterm.TableData {
	first := g.FirstSets()
	data := pterm.TableData{{"Non-terminal", "FIRST", "ε"}}
	for _, n := range g.Nonterminals() {
		e, _ := first.Of(n)
		data = append(data, []string{n, e.Terminals.String(), yesno(e.Epsilon)})
	}
	return data
}

func followData(g *notation.Grammar) pterm.TableData {
	follow := g.FollowSets(nil)
	data := pterm.TableData{{"Non-terminal", "FOLLOW", "#eof"}}
	for _, n := range g.Nonterminals() {
		e, _ := follow.Of(n)
		data = append(data, []string{n, e.Terminals.String(), yesno(e.EndMarker)})
	}
	return data
}

func statesData(g *notation.Grammar, A0 *lr.LR0Automaton[string, string]) pterm.TableData {
	data := pterm.TableData{{"State", "Items", "Transitions"}}
	for _, s := range A0.States {
		items := make([]string, 0, s.Items.Size())
		for _, i := range s.Items.Items() {
			items = append(items, g.ItemString(i))
		}
		edges := make([]string, 0, len(s.Edges))
		for _, e := range s.Edges {
			edges = append(edges, fmt.Sprintf("%v ➞ %d", e.Label, e.To))
		}
		id := fmt.Sprintf("%d", s.ID)
		if s.Accept {
			id += " (acc)"
		}
		data = append(data, []string{id, strings.Join(items, "\n"), strings.Join(edges, "\n")})
	}
	return data
}

func yesno(b bool) string {
	if b {
		return "yes"
	}
	return ""
}
