package slr

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"testing"
	"unicode"

	"github.com/npillmayer/lrtables"
	"github.com/npillmayer/lrtables/lr"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

type token struct {
	kind   string
	lexeme string
	span   lrtables.Span
}

func (t token) Kind() string        { return t.kind }
func (t token) Lexeme() string      { return t.lexeme }
func (t token) Span() lrtables.Span { return t.span }

type tokenizer struct {
	tokens []token
	pos    int
}

func (tz *tokenizer) NextToken() (lrtables.Token[string], error) {
	if tz.pos >= len(tz.tokens) {
		return nil, io.EOF
	}
	t := tz.tokens[tz.pos]
	tz.pos++
	return t, nil
}

// tokenize splits input at spaces. Numbers are tokens of kind "id", everything
// else is its own kind.
func tokenize(input string) *tokenizer {
	tz := &tokenizer{}
	var pos uint64
	for _, f := range strings.Fields(input) {
		kind := f
		if unicode.IsDigit(rune(f[0])) {
			kind = "id"
		}
		tz.tokens = append(tz.tokens, token{kind: kind, lexeme: f, span: lrtables.Span{pos, pos + uint64(len(f))}})
		pos += uint64(len(f)) + 1
	}
	return tz
}

func makeExprParser(t *testing.T, start string) *Parser[string, string, int] {
	b := lr.NewGrammarBuilder[string, string, int](start)
	if start == "S" {
		b.LHS("S").N("E").End()
	}
	b.LHS("E").N("E").T("+").N("T").End()
	b.LHS("E").N("T").End()
	b.LHS("T").N("T").T("*").N("F").End()
	b.LHS("T").N("F").End()
	b.LHS("F").T("(").N("E").T(")").End()
	b.LHS("F").T("id").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	table, err := g.SLR1Table()
	if err != nil {
		t.Fatal(err)
	}
	return NewParser(table.Compact(), eval)
}

func eval(rule lr.Production[string, string, int], args []interface{}, span lrtables.Span) (interface{}, error) {
	switch len(args) {
	case 1:
		if t, ok := args[0].(lrtables.Token[string]); ok {
			n, err := strconv.Atoi(t.Lexeme())
			return n, err
		}
		return args[0], nil
	case 3:
		if rule.LHS == "F" {
			return args[1], nil
		}
		l, r := args[0].(int), args[2].(int)
		if rule.LHS == "E" {
			return l + r, nil
		}
		return l * r, nil
	}
	return nil, errors.New("unexpected rule")
}

func TestParseExpressions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtables.slr")
	defer teardown()
	//
	tests := []struct {
		input string
		value int
	}{
		{"7", 7},
		{"2 + 3 * 4", 14},
		{"( 2 + 3 ) * 4", 20},
		{"1 + 1 + 1 + 1", 4},
	}
	for _, start := range []string{"S", "E"} {
		p := makeExprParser(t, start)
		for _, tt := range tests {
			t.Run(start+": "+tt.input, func(t *testing.T) {
				v, err := p.Parse(tokenize(tt.input))
				if err != nil {
					t.Fatal(err)
				}
				if v != tt.value {
					t.Errorf("expected %q to evaluate to %d, have %v", tt.input, tt.value, v)
				}
			})
		}
	}
}

func TestSyntaxErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtables.slr")
	defer teardown()
	//
	p := makeExprParser(t, "S")
	_, err := p.Parse(tokenize("2 +"))
	var serr *SyntaxError[string]
	if !errors.As(err, &serr) {
		t.Fatalf("expected syntax error, have %v", err)
	}
	if serr.Token != nil {
		t.Errorf("expected error at end of input, have %v", serr.Token)
	}
	_, err = p.Parse(tokenize("2 3"))
	if !errors.As(err, &serr) {
		t.Fatalf("expected syntax error, have %v", err)
	}
	if serr.Token == nil || serr.Token.Lexeme() != "3" {
		t.Errorf("expected error at token '3', have %v", serr)
	}
	if len(serr.Expected) == 0 {
		t.Errorf("expected error to list possible lookaheads")
	}
	t.Logf("error: %v", serr)
}

func TestEpsilonSpans(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtables.slr")
	defer teardown()
	//
	b := lr.NewGrammarBuilder[string, string, int]("Var")
	b.LHS("Var").N("Sign").T("a").End()
	b.LHS("Sign").T("+").End()
	b.LHS("Sign").T("-").End()
	b.LHS("Sign").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	table, err := g.SLR1Table()
	if err != nil {
		t.Fatal(err)
	}
	var spans []lrtables.Span
	p := NewParser(table.Compact(), func(rule lr.Production[string, string, int], args []interface{},
		span lrtables.Span) (interface{}, error) {
		spans = append(spans, span)
		return rule.LHS, nil
	})
	v, err := p.Parse(tokenize("a"))
	if err != nil {
		t.Fatal(err)
	}
	if v != "Var" {
		t.Errorf("expected value of start rule, have %v", v)
	}
	if len(spans) != 2 || spans[0] != (lrtables.Span{0, 0}) || spans[1] != (lrtables.Span{0, 1}) {
		t.Errorf("unexpected spans %v", spans)
	}
}

func TestParseWithLALR1Table(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtables.slr")
	defer teardown()
	//
	b := lr.NewGrammarBuilder[string, string, int]("S")
	b.LHS("S").N("L").T("=").N("R").End()
	b.LHS("S").N("R").End()
	b.LHS("L").T("*").N("R").End()
	b.LHS("L").T("id").End()
	b.LHS("R").N("L").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	table, err := g.LALR1Table()
	if err != nil {
		t.Fatal(err)
	}
	p := NewParser(table.Compact(), nil)
	for _, input := range []string{"* 1 = 2", "1", "* * 1"} {
		if _, err := p.Parse(tokenize(input)); err != nil {
			t.Errorf("expected %q to be accepted, have %v", input, err)
		}
	}
	if _, err := p.Parse(tokenize("1 = = 2")); err == nil {
		t.Errorf("expected '1 = = 2' to be rejected")
	}
}
