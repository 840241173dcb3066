package main

import (
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/lrtables/lr"
	"github.com/npillmayer/lrtables/lr/notation"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "repl <grammar>",
		Short: "Interactively parse sequences of terminals",
		Long: `repl reads lines of terminals, separated by spaces, and parses them.
Lines starting with ':' are commands: :first, :follow, :states, :table,
:method <slr|lr1|lalr> and :quit.`,
		Example: `  lrtab repl expr.grammar`,
		Args:    cobra.ExactArgs(1),
		RunE:    runREPL,
	})
}

// Intp is our interpreter object.
type Intp struct {
	G      *notation.Grammar
	method string
	table  *lr.CompactTable[string, string, notation.Decl]
	repl   *readline.Instance
}

func runREPL(cmd *cobra.Command, args []string) error {
	g, err := readGrammar(args[0])
	if err != nil {
		return err
	}
	repl, err := readline.New("lrtab> ")
	if err != nil {
		return err
	}
	defer repl.Close()
	intp := &Intp{G: g, repl: repl}
	if err := intp.setMethod(*rootFlags.method); err != nil {
		pterm.Error.Println(err.Error())
	}
	pterm.Info.Println("Welcome to lrtab. Quit with <ctrl>D")
	intp.REPL()
	return nil
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, err := intp.Eval(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	println("Good bye!")
}

func (intp *Intp) setMethod(method string) error {
	t, err := buildTable(intp.G, method, *rootFlags.resolve)
	if err != nil {
		reportConflict(err)
		return err
	}
	intp.method = method
	intp.table = t.Compact()
	return nil
}

// Eval evaluates a line of input: either a command or terminals to parse.
func (intp *Intp) Eval(line string) (bool, error) {
	args := strings.Fields(line)
	if !strings.HasPrefix(args[0], ":") {
		if intp.table == nil {
			pterm.Warning.Println("no table available, choose another method with :method")
			return false, nil
		}
		tree, err := parseTerminals(intp.table, args)
		if err != nil {
			return false, err
		}
		return false, pterm.DefaultTree.WithRoot(tree).Render()
	}
	tracer().Debugf("command %s", args[0])
	switch args[0] {
	case ":quit", ":q":
		return true, nil
	case ":first":
		return false, pterm.DefaultTable.WithHasHeader().WithData(firstData(intp.G)).Render()
	case ":follow":
		return false, pterm.DefaultTable.WithHasHeader().WithData(followData(intp.G)).Render()
	case ":states":
		return false, pterm.DefaultTable.WithHasHeader().WithData(statesData(intp.G, intp.G.LR0Automaton())).Render()
	case ":table":
		t, err := buildTable(intp.G, intp.method, *rootFlags.resolve)
		if err != nil {
			reportConflict(err)
			return false, err
		}
		return false, pterm.DefaultTable.WithHasHeader().WithData(tableData(t)).Render()
	case ":method":
		if len(args) < 2 {
			pterm.Info.Printfln("method is %s", intp.method)
			return false, nil
		}
		return false, intp.setMethod(args[1])
	}
	pterm.Warning.Printfln("unknown command %s", args[0])
	return false, nil
}
