package main

import (
	"fmt"
	"io"

	"github.com/npillmayer/lrtables"
	"github.com/npillmayer/lrtables/lr"
	"github.com/npillmayer/lrtables/lr/notation"
	"github.com/npillmayer/lrtables/lr/slr"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "parse <grammar> <terminal>...",
		Short: "Parse a sequence of terminals and print the derivation tree",
		Example: `  lrtab parse expr.grammar id + id
  lrtab parse --method lalr assign.grammar "*" id = id`,
		Args: cobra.MinimumNArgs(1),
		RunE: runParse,
	})
}

func runParse(cmd *cobra.Command, args []string) error {
	g, err := readGrammar(args[0])
	if err != nil {
		return err
	}
	t, err := buildTable(g, *rootFlags.method, *rootFlags.resolve)
	if err != nil {
		reportConflict(err)
		return err
	}
	tree, err := parseTerminals(t.Compact(), args[1:])
	if err != nil {
		return err
	}
	pterm.Success.Println("input accepted")
	return pterm.DefaultTree.WithRoot(tree).Render()
}

// terminal is a token for a terminal given on the command line.
type terminal struct {
	kind string
	pos  uint64
}

func (t terminal) Kind() string        { return t.kind }
func (t terminal) Lexeme() string      { return t.kind }
func (t terminal) Span() lrtables.Span { return lrtables.Span{t.pos, t.pos + 1} }

// terminals is a tokenizer for a list of terminals.
type terminals struct {
	input []string
	pos   int
}

func (ts *terminals) NextToken() (lrtables.Token[string], error) {
	if ts.pos >= len(ts.input) {
		return nil, io.EOF
	}
	t := terminal{kind: ts.input[ts.pos], pos: uint64(ts.pos)}
	ts.pos++
	return t, nil
}

// parseTerminals parses a sequence of terminals and returns the derivation tree.
func parseTerminals(ct *lr.CompactTable[string, string, notation.Decl], input []string) (pterm.TreeNode, error) {
	parser := slr.NewParser(ct, buildTree)
	v, err := parser.Parse(&terminals{input: input})
	if err != nil {
		return pterm.TreeNode{}, err
	}
	return v.(pterm.TreeNode), nil
}

// buildTree creates a tree node for every reduction.
func buildTree(rule lr.Production[string, string, notation.Decl], args []interface{},
	span lrtables.Span) (interface{}, error) {
	//
	node := pterm.TreeNode{Text: fmt.Sprintf("%s  %v", rule.LHS, span)}
	for _, arg := range args {
		switch x := arg.(type) {
		case pterm.TreeNode:
			node.Children = append(node.Children, x)
		case lrtables.Token[string]:
			node.Children = append(node.Children, pterm.TreeNode{Text: x.Lexeme()})
		}
	}
	if len(args) == 0 {
		node.Children = append(node.Children, pterm.TreeNode{Text: "ε"})
	}
	return node, nil
}
