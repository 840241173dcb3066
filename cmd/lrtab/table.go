package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/npillmayer/lrtables/lr"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var tableFlags = struct {
	html *string
}{}

var dotFlags = struct {
	output *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "table <grammar>",
		Short: "Construct a parse table and print it",
		Example: `  lrtab table expr.grammar
  lrtab table --method lalr --html table.html expr.grammar`,
		Args: cobra.ExactArgs(1),
		RunE: runTable,
	}
	tableFlags.html = cmd.Flags().String("html", "", "additionally export the table to an HTML file")
	rootCmd.AddCommand(cmd)
	cmd = &cobra.Command{
		Use:     "dot <grammar>",
		Short:   "Export the LR(0) automaton in Graphviz Dot format",
		Example: `  lrtab dot -o cfsm.dot expr.grammar`,
		Args:    cobra.ExactArgs(1),
		RunE:    runDot,
	}
	dotFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	rootCmd.AddCommand(cmd)
}

func runTable(cmd *cobra.Command, args []string) error {
	g, err := readGrammar(args[0])
	if err != nil {
		return err
	}
	t, err := buildTable(g, *rootFlags.method, *rootFlags.resolve)
	if err != nil {
		reportConflict(err)
		return err
	}
	pterm.Success.Printfln("%s table with %d states", *rootFlags.method, len(t.States))
	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData(t)).Render(); err != nil {
		return err
	}
	if *tableFlags.html == "" {
		return nil
	}
	f, err := os.Create(*tableFlags.html)
	if err != nil {
		return err
	}
	defer f.Close()
	return lr.TableAsHTML(t, f)
}

// reportConflict prints details of a conflict.
func reportConflict(err error) {
	var c *lr.Conflict[string, string]
	if !errors.As(err, &c) {
		return
	}
	pterm.Warning.Printfln("%v conflict in state %d on lookahead %v", c.Kind, c.State, c.Lookahead)
	if c.Kind == lr.ShiftReduce {
		pterm.Warning.Printfln("   shift %d  vs.  reduce %v", c.Shift, c.Reduce)
	} else {
		pterm.Warning.Printfln("   reduce %v  vs.  reduce %v", c.Reduce, c.Reduce2)
	}
}

func tableData(t *table) pterm.TableData {
	terms := t.G.Terminals()
	nonterms := t.G.Nonterminals()
	header := []string{"State"}
	header = append(header, terms...)
	header = append(header, "#eof")
	header = append(header, nonterms...)
	data := pterm.TableData{header}
	for i, s := range t.States {
		row := []string{fmt.Sprintf("%d", i)}
		for _, a := range terms {
			row = append(row, s.Actions[a].String())
		}
		row = append(row, s.EndMarker.String())
		for _, n := range nonterms {
			cell := ""
			if to, ok := s.Goto[n]; ok {
				cell = fmt.Sprintf("%d", to)
			}
			row = append(row, cell)
		}
		data = append(data, row)
	}
	return data
}

func runDot(cmd *cobra.Command, args []string) error {
	g, err := readGrammar(args[0])
	if err != nil {
		return err
	}
	A0 := g.LR0Automaton()
	if *dotFlags.output == "" {
		return A0.ToGraphViz(os.Stdout)
	}
	f, err := os.Create(*dotFlags.output)
	if err != nil {
		return err
	}
	defer f.Close()
	return A0.ToGraphViz(f)
}
