package notation

import (
	"fmt"
	"io"
	"sync"

	"github.com/npillmayer/lrtables"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// Token kinds of the notation. They are the terminals of the meta grammar.
const (
	tokIdent   = "ident"
	tokLiteral = "literal"
	tokArrow   = "arrow"
	tokBar     = "|"
	tokSemi    = ";"
	tokStart   = "%start"
	tokEmpty   = "%empty"
)

var tokenKinds = []string{tokIdent, tokLiteral, tokArrow, tokBar, tokSemi, tokStart, tokEmpty}

// token is a token of the notation.
type token struct {
	kind   string
	lexeme string
	span   lrtables.Span
	line   int
}

func (t token) Kind() string        { return t.kind }
func (t token) Lexeme() string      { return t.lexeme }
func (t token) Span() lrtables.Span { return t.span }

var lexer *lexmachine.Lexer
var lexerErr error

var initOnce sync.Once // monitors one-time creation of the lexer

func metaLexer() (*lexmachine.Lexer, error) {
	initOnce.Do(func() {
		tracer().Infof("Creating lexer")
		lx := lexmachine.NewLexer()
		lx.Add([]byte(`\#[^\n]*`), skip) // skip comments
		lx.Add([]byte(`( |\t|\n|\r)+`), skip)
		lx.Add([]byte(`\%start`), makeToken(tokStart))
		lx.Add([]byte(`\%empty`), makeToken(tokEmpty))
		lx.Add([]byte(`\-\>|\:\:\=|\:`), makeToken(tokArrow))
		lx.Add([]byte(`\|`), makeToken(tokBar))
		lx.Add([]byte(`\;`), makeToken(tokSemi))
		lx.Add([]byte(`([a-z]|[A-Z]|_)([a-z]|[A-Z]|[0-9]|_)*`), makeToken(tokIdent))
		lx.Add([]byte(`\"[^"]*\"`), makeToken(tokLiteral))
		lx.Add([]byte(`\'[^']*\'`), makeToken(tokLiteral))
		if lexerErr = lx.Compile(); lexerErr != nil {
			tracer().Errorf("Error compiling DFA: %v", lexerErr)
			return
		}
		lexer = lx
	})
	return lexer, lexerErr
}

func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

func makeToken(kind string) lexmachine.Action {
	id := -1
	for i, k := range tokenKinds {
		if k == kind {
			id = i
		}
	}
	if id < 0 {
		panic(fmt.Errorf("unknown token: %s", kind))
	}
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}

// scanner adapts a lexmachine scanner to the tokenizer interface of package slr.
type scanner struct {
	scan *lexmachine.Scanner
}

func newScanner(input string) (*scanner, error) {
	lx, err := metaLexer()
	if err != nil {
		return nil, err
	}
	s, err := lx.Scanner([]byte(input))
	if err != nil {
		return nil, err
	}
	return &scanner{scan: s}, nil
}

func (sc *scanner) NextToken() (lrtables.Token[string], error) {
	tok, err, eof := sc.scan.Next()
	if eof {
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("illegal input: %w", err)
	}
	t := tok.(*lexmachine.Token)
	tracer().Debugf("token %s %q", tokenKinds[t.Type], t.Lexeme)
	return token{
		kind:   tokenKinds[t.Type],
		lexeme: string(t.Lexeme),
		span:   lrtables.Span{uint64(t.TC), uint64(t.TC + len(t.Lexeme))},
		line:   t.StartLine,
	}, nil
}
