/*
Package notation reads context-free grammars from a small textual notation.

A grammar is a sequence of rules and an optional start declaration:

    # expression grammar
    %start S ;
    S -> E ;
    E -> E "+" T | T ;
    T -> T "*" F | F ;
    F -> "(" E ")" | id ;
    Opt -> x | %empty ;

Identifiers which appear on the left-hand side of a rule are non-terminals,
all other identifiers are terminals. Quoted strings are always terminals.
An identifier starting with an uppercase letter, which is never declared on
a left-hand side, is reported as an invalid non-terminal.  Alternatives may be
empty, %empty makes this explicit. Arrows may be written as '->', '::=' or ':'.
Without a %start declaration, the left-hand side of the first rule is the
start symbol.

The notation is parsed by an SLR(1) parser, created with the tools of package
lr and run by package slr. The payload of every right-hand side is a Decl,
recording the order of declaration. This may be used to decide conflicts:

    g, err := notation.Parse(input)
    prio := func(rhs lr.Rhs[string, string, notation.Decl]) int { return rhs.Payload.Serial }
    table, err := g.SLR1Table(lr.WithResolver(lr.ResolveByPriority(prio)))

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package notation

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrtables.notation'.
func tracer() tracing.Trace {
	return tracing.Select("lrtables.notation")
}
