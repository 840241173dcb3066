package notation

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/lrtables/lr"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

const exprGrammar = `
# expression grammar
S -> E ;
E -> E "+" T | T ;
T -> T "*" F | F ;
F -> "(" E ")" | id ;
`

func TestMetaGrammarIsSLR(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtables.notation")
	defer teardown()
	assert := assert.New(t)
	//
	g, err := makeMetaGrammar()
	assert.NoError(err)
	_, err = g.SLR1Table()
	assert.NoError(err, "meta grammar should be SLR(1)")
}

func TestParseExpressionGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtables.notation")
	defer teardown()
	assert := assert.New(t)
	//
	g, err := Parse(exprGrammar)
	if !assert.NoError(err) {
		return
	}
	assert.Equal("S", g.Start())
	assert.Equal([]string{"E", "F", "S", "T"}, g.Nonterminals())
	assert.Equal([]string{"(", ")", "*", "+", "id"}, g.Terminals())
	assert.Equal(7, g.RuleCount())
	rules := g.Rules("F")
	if assert.Len(rules, 2) {
		p := g.Rule(rules[1])
		assert.Equal("F ➞ id", p.String())
		assert.Equal(6, p.RHS.Payload.Serial)
		s := g.Rule(g.Rules("S")[0])
		assert.Less(s.RHS.Payload.Line, p.RHS.Payload.Line)
	}
	A0 := g.LR0Automaton()
	assert.Equal(12, A0.Size())
}

func TestParseVariants(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtables.notation")
	defer teardown()
	//
	tests := []struct {
		caption string
		input   string
		start   string
		rules   int
	}{
		{"start declaration", "%start B ; A -> a ; B -> A b ;", "B", 2},
		{"yacc style arrows", "A : a | B ; B ::= 'b' ;", "A", 3},
		{"empty alternatives", "A -> a | ; B -> %empty ;", "A", 3},
		{"comments", "# comment\nA -> a ; # trailing\n", "A", 1},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			assert := assert.New(t)
			g, err := Parse(tt.input)
			if assert.NoError(err) {
				assert.Equal(tt.start, g.Start())
				assert.Equal(tt.rules, g.RuleCount())
			}
		})
	}
}

func TestEmptyAlternative(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtables.notation")
	defer teardown()
	assert := assert.New(t)
	//
	g, err := Parse("A -> a B ; B -> b | %empty ;")
	if !assert.NoError(err) {
		return
	}
	rules := g.Rules("B")
	if assert.Len(rules, 2) {
		assert.True(g.Rule(rules[1]).RHS.IsEpsilon())
	}
	assert.True(g.FirstSets().Nullable("B"))
}

func TestParseErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtables.notation")
	defer teardown()
	//
	tests := []struct {
		caption string
		input   string
		err     error
	}{
		{"undefined non-terminal", "A -> a Undefined ;", lr.ErrInvalidNonterminal},
		{"undefined start symbol", "%start X ; A -> a ;", lr.ErrNoStartRule},
		{"duplicate start", "%start A ; %start A ; A -> a ;", ErrDuplicateStart},
		{"no rules", "%start A ;", ErrNoRules},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			_, err := Parse(tt.input)
			assert.True(t, errors.Is(err, tt.err), "expected %v, have %v", tt.err, err)
		})
	}
	_, err := Parse("A -> a")
	assert.Error(t, err, "missing semicolon should be a syntax error")
	_, err = Parse("A -> a $ ;")
	assert.Error(t, err, "illegal character should be reported")
}

func TestFormatRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtables.notation")
	defer teardown()
	assert := assert.New(t)
	//
	g1, err := Parse(exprGrammar + `Opt -> "x" | %empty ;`)
	if !assert.NoError(err) {
		return
	}
	text := Format(g1)
	t.Logf("\n%s", text)
	assert.True(strings.HasPrefix(text, "%start S ;\n"))
	g2, err := Read(strings.NewReader(text))
	if !assert.NoError(err) {
		return
	}
	assert.Equal(g1.RuleCount(), g2.RuleCount())
	for id := 0; id < g1.RuleCount(); id++ {
		assert.Equal(g1.RuleString(lr.RuleID(id)), g2.RuleString(lr.RuleID(id)))
	}
	assert.True(g1.FirstSets().Equals(g2.FirstSets()))
}

func TestResolveByDeclarationOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtables.notation")
	defer teardown()
	assert := assert.New(t)
	//
	g, err := Parse("S -> A | B ; A -> x ; B -> x ;")
	if !assert.NoError(err) {
		return
	}
	_, err = g.SLR1Table()
	var c *lr.Conflict[string, string]
	if assert.True(errors.As(err, &c)) {
		assert.Equal(lr.ReduceReduce, c.Kind)
	}
	prio := func(rhs lr.Rhs[string, string, Decl]) int { return rhs.Payload.Serial }
	table, err := g.SLR1Table(lr.WithResolver(lr.ResolveByPriority(prio)))
	if assert.NoError(err) {
		found := false
		for _, s := range table.States {
			if s.EndMarker.Kind == lr.Reduce {
				assert.Equal("A", table.Rule(s.EndMarker.Rule).LHS)
				found = true
			}
		}
		assert.True(found)
	}
}
