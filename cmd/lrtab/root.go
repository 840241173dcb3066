package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/lrtables/lr"
	"github.com/npillmayer/lrtables/lr/notation"
	"github.com/npillmayer/schuko/tracing"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// Table, grammar and option types for grammars read from text.
type (
	table  = lr.Table[string, string, notation.Decl]
	option = lr.Option[string, string, notation.Decl]
)

var rootFlags = struct {
	trace   *string
	method  *string
	resolve *bool
}{}

var rootCmd = &cobra.Command{
	Use:   "lrtab",
	Short: "Analyse grammars and construct LR parse tables",
	Long: `lrtab reads a context-free grammar and
- prints FIRST and FOLLOW sets,
- prints the states of the LR(0) automaton or exports it for Graphviz,
- constructs SLR(1), LR(1) or LALR(1) parse tables and reports conflicts,
- parses sequences of terminals with such a table.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initDisplay()
		setTraceLevel(*rootFlags.trace)
	},
}

func init() {
	rootFlags.trace = rootCmd.PersistentFlags().StringP("trace", "t", "Error", "trace level [Debug|Info|Error]")
	rootFlags.method = rootCmd.PersistentFlags().StringP("method", "m", "slr", "table construction [slr|lr1|lalr]")
	rootFlags.resolve = rootCmd.PersistentFlags().Bool("resolve", false,
		"resolve conflicts by order of declaration (shift wins over reduce)")
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		pterm.Error.Println(err.Error())
		return err
	}
	return nil
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func setTraceLevel(l string) {
	level := tracing.TraceLevelFromString(l)
	for _, key := range []string{"lrtables.lr", "lrtables.notation", "lrtables.slr", "lrtables.cli"} {
		tracing.Select(key).SetTraceLevel(level)
	}
}

// readGrammar reads a grammar from a file, or from stdin for path "-".
func readGrammar(path string) (*notation.Grammar, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("cannot open grammar %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}
	g, err := notation.Read(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	tracer().Infof("grammar %s has %d rules", path, g.RuleCount())
	g.Dump()
	return g, nil
}

func bySerial(rhs lr.Rhs[string, string, notation.Decl]) int {
	return rhs.Payload.Serial
}

// buildTable constructs a parse table with the given method.
func buildTable(g *notation.Grammar, method string, resolve bool) (*table, error) {
	var opts []option
	if resolve {
		opts = append(opts, lr.WithResolver(lr.ResolveByPriority(bySerial)))
	}
	switch strings.ToLower(method) {
	case "slr", "slr1":
		return g.SLR1Table(opts...)
	case "lr1", "lr":
		return g.LR1Table(opts...)
	case "lalr", "lalr1":
		return g.LALR1Table(opts...)
	}
	return nil, fmt.Errorf("unknown table construction method %q", method)
}
