package notation

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/lrtables"
	"github.com/npillmayer/lrtables/lr"
	"github.com/npillmayer/lrtables/lr/slr"
)

// Decl is the payload of every right-hand side of a grammar read from text.
type Decl struct {
	Serial int // position of the alternative in the input, starting at 0
	Line   int // line of the rule's left-hand side
}

// Grammar is the type of grammars read from text.
type Grammar = lr.Grammar[string, string, Decl]

// Errors of the notation reader, in addition to the errors of lr.New.
var (
	ErrNoRules        = errors.New("grammar has no rules")
	ErrDuplicateStart = errors.New("duplicate start declaration")
)

// --- Meta grammar ----------------------------------------------------------

// semantic is the payload of the meta grammar: it computes the value of a
// left-hand side from the values of the right-hand side.
type semantic func(args []interface{}) (interface{}, error)

// Values of the meta grammar's non-terminals.
type (
	symbol struct {
		name    string
		literal bool
		empty   bool
	}
	alternative []symbol
	decl        struct {
		start string // for %start declarations
		lhs   string
		alts  []alternative
		line  int
	}
)

// Script ➞  Decls
// Decls  ➞  Decls Decl  |  Decl
// Decl   ➞  %start ident ;  |  ident arrow Alts ;
// Alts   ➞  Alts | Alt  |  Alt
// Alt    ➞  Alt Sym  |  ε
// Sym    ➞  ident  |  literal  |  %empty
//
func makeMetaGrammar() (*lr.Grammar[string, string, semantic], error) {
	b := lr.NewGrammarBuilder[string, string, semantic]("Script")
	b.LHS("Script").N("Decls").Payload(first).End()
	b.LHS("Decls").N("Decls").N("Decl").Payload(func(args []interface{}) (interface{}, error) {
		return append(args[0].([]decl), args[1].(decl)), nil
	}).End()
	b.LHS("Decls").N("Decl").Payload(func(args []interface{}) (interface{}, error) {
		return []decl{args[0].(decl)}, nil
	}).End()
	b.LHS("Decl").T(tokStart).T(tokIdent).T(tokSemi).Payload(func(args []interface{}) (interface{}, error) {
		t := args[1].(token)
		return decl{start: t.lexeme, line: t.line}, nil
	}).End()
	b.LHS("Decl").T(tokIdent).T(tokArrow).N("Alts").T(tokSemi).Payload(func(args []interface{}) (interface{}, error) {
		t := args[0].(token)
		return decl{lhs: t.lexeme, alts: args[2].([]alternative), line: t.line}, nil
	}).End()
	b.LHS("Alts").N("Alts").T(tokBar).N("Alt").Payload(func(args []interface{}) (interface{}, error) {
		return append(args[0].([]alternative), args[2].(alternative)), nil
	}).End()
	b.LHS("Alts").N("Alt").Payload(func(args []interface{}) (interface{}, error) {
		return []alternative{args[0].(alternative)}, nil
	}).End()
	b.LHS("Alt").N("Alt").N("Sym").Payload(func(args []interface{}) (interface{}, error) {
		alt := args[0].(alternative)
		sym := args[1].(symbol)
		if sym.empty {
			return alt, nil
		}
		return append(alt[:len(alt):len(alt)], sym), nil
	}).End()
	b.LHS("Alt").Payload(func(args []interface{}) (interface{}, error) {
		return alternative{}, nil
	}).Epsilon()
	b.LHS("Sym").T(tokIdent).Payload(func(args []interface{}) (interface{}, error) {
		return symbol{name: args[0].(token).lexeme}, nil
	}).End()
	b.LHS("Sym").T(tokLiteral).Payload(func(args []interface{}) (interface{}, error) {
		lit := args[0].(token).lexeme
		return symbol{name: lit[1 : len(lit)-1], literal: true}, nil
	}).End()
	b.LHS("Sym").T(tokEmpty).Payload(func(args []interface{}) (interface{}, error) {
		return symbol{empty: true}, nil
	}).End()
	return b.Grammar()
}

func first(args []interface{}) (interface{}, error) {
	return args[0], nil
}

var metaTable *lr.CompactTable[string, string, semantic]
var metaErr error

var startOnce sync.Once // monitors one-time creation of the meta parse table

func createParser() (*slr.Parser[string, string, semantic], error) {
	startOnce.Do(func() {
		tracer().Infof("Creating meta grammar")
		g, err := makeMetaGrammar()
		if err != nil {
			metaErr = err
			return
		}
		table, err := g.SLR1Table()
		if err != nil {
			metaErr = err
			return
		}
		metaTable = table.Compact()
	})
	if metaErr != nil {
		return nil, fmt.Errorf("cannot create parser for grammar notation: %w", metaErr)
	}
	return slr.NewParser(metaTable, reduce), nil
}

func reduce(rule lr.Production[string, string, semantic], args []interface{}, _ lrtables.Span) (interface{}, error) {
	return rule.RHS.Payload(args)
}

// --- Reading grammars ------------------------------------------------------

// Parse reads a grammar from its textual notation.
func Parse(input string) (*Grammar, error) {
	parser, err := createParser()
	if err != nil {
		return nil, err
	}
	scan, err := newScanner(input)
	if err != nil {
		return nil, err
	}
	v, err := parser.Parse(scan)
	if err != nil {
		return nil, fmt.Errorf("grammar notation: %w", err)
	}
	return build(v.([]decl))
}

// Read reads a grammar in textual notation from r.
func Read(r io.Reader) (*Grammar, error) {
	input, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(string(input))
}

// build creates a grammar from a list of declarations.
func build(decls []decl) (*Grammar, error) {
	start := ""
	nonterms := make(map[string]bool)
	for _, d := range decls {
		if d.start != "" {
			if start != "" {
				return nil, fmt.Errorf("%w in line %d", ErrDuplicateStart, d.line)
			}
			start = d.start
		} else {
			nonterms[d.lhs] = true
		}
	}
	if len(nonterms) == 0 {
		return nil, ErrNoRules
	}
	rules := make(map[string][]lr.Rhs[string, string, Decl])
	serial := 0
	for _, d := range decls {
		if d.start != "" {
			continue
		}
		if start == "" {
			start = d.lhs
		}
		if _, ok := rules[d.lhs]; !ok {
			rules[d.lhs] = nil
		}
		for _, alt := range d.alts {
			body := make([]lr.Symbol[string, string], 0, len(alt))
			for _, sym := range alt {
				switch {
				case sym.literal:
					body = append(body, lr.Term[string, string](sym.name))
				case nonterms[sym.name]:
					body = append(body, lr.NonTerm[string](sym.name))
				case isCapitalized(sym.name):
					return nil, fmt.Errorf("%w: %s is never defined (line %d)",
						lr.ErrInvalidNonterminal, sym.name, d.line)
				default:
					body = append(body, lr.Term[string, string](sym.name))
				}
			}
			rhs := lr.Rhs[string, string, Decl]{Body: body, Payload: Decl{Serial: serial, Line: d.line}}
			rules[d.lhs] = append(rules[d.lhs], rhs)
			serial++
		}
	}
	tracer().Debugf("read %d rules for %d non-terminals, start symbol is %s", serial, len(rules), start)
	return lr.New(start, rules)
}

func isCapitalized(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}

// --- Writing grammars ------------------------------------------------------

// Format renders a grammar in textual notation. Terminals are always quoted.
// Reading the result with Parse yields an equivalent grammar, with one exception:
// the notation cannot express non-terminals without any rule, they are written
// with a single empty alternative.
func Format[A any](g *lr.Grammar[string, string, A]) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%%start %s ;\n", g.Start()))
	for _, n := range g.Nonterminals() {
		b.WriteString(n)
		b.WriteString(" ->")
		for k, id := range g.Rules(n) {
			if k > 0 {
				b.WriteString(" |")
			}
			rhs := g.Rule(id).RHS
			if rhs.IsEpsilon() {
				b.WriteString(" %empty")
			}
			for _, sym := range rhs.Body {
				b.WriteString(" ")
				if sym.IsTerminal() {
					b.WriteString(quote(sym.Terminal()))
				} else {
					b.WriteString(sym.Nonterminal())
				}
			}
		}
		b.WriteString(" ;\n")
	}
	return b.String()
}

func quote(t string) string {
	if strings.Contains(t, `"`) {
		return "'" + t + "'"
	}
	return `"` + t + `"`
}
