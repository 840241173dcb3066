/*
Package lr implements grammar analysis and the construction of LR parser tables.

Building a Grammar

Grammars are generic over their terminals T, non-terminals N and an opaque
payload A attached to every right-hand side (semantic actions, priorities, …).
T and N may be any ordered type, e.g. interned small integers or strings.
Grammars may contain epsilon-productions. Clients either provide a map of
rules to New, or use a grammar builder object:

    b := lr.NewGrammarBuilder[string, string, int]("S")
    b.LHS("S").N("A").T("a").End()     // S  ->  A a
    b.LHS("A").N("B").N("D").End()     // A  ->  B D
    b.LHS("B").T("b").End()            // B  ->  b
    b.LHS("B").Epsilon()               // B  ->
    b.LHS("D").T("d").End()            // D  ->  d
    b.LHS("D").Epsilon()               // D  ->
    g, err := b.Grammar()

Grammars are immutable after construction. Rules are stored in an arena and
referenced by RuleID; items of the LR automata are small (rule, dot) handles into
this arena, so automata and tables are plain values, independent of any borrowed
grammar storage.

Static Grammar Analysis

FIRST and FOLLOW sets are computed by fixed-point iteration:

    first := g.FirstSets()
    follow := g.FollowSets(first)            // or g.FollowSets(nil)
    e, _ := first.Of("A")                     // e.Terminals = {b d}, e.Epsilon = true

Parser Construction

Using grammar analysis as input, a bottom-up parser table can be constructed.
First a characteristic finite state machine (CFSM) is built from the grammar,
i.e. the canonical collection of LR(0) item sets. The CFSM is then transformed
into a table with ACTION and GOTO entries for every state:

    cfsm := g.LR0Automaton()
    table, err := lr.BuildTable(g, cfsm, follow) // same as g.SLR1Table()
    var conflict *lr.Conflict[string, string]
    if errors.As(err, &conflict) {
        …                                       // grammar is not SLR(1)
    }

Conflicts are never resolved silently. Clients may plug in a resolver
(see WithResolver), which will be asked before a conflict is reported.
More powerful constructions are available with g.LR1Table() (canonical LR(1))
and g.LALR1Table().

The CFSM is not thrown away, but is made available to the client.  This is
intended for debugging purposes. It can be exported to Graphviz's Dot-format.
___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lr

import (
	"github.com/npillmayer/schuko/tracing"
)

//go:generate stringer -type=ActionKind,ConflictKind

// tracer traces with key 'lrtables.lr'.
func tracer() tracing.Trace {
	return tracing.Select("lrtables.lr")
}
