/*
Package lrtab/main provides a command line tool for grammar analysis and LR
parser table construction. Grammars are read in the notation of package
lr/notation. Sub-commands print FIRST and FOLLOW sets, the states of the CFSM,
parse tables (SLR(1), LR(1) or LALR(1)) and a Graphviz export of the CFSM.
An interactive mode allows to parse sequences of terminals with a table.

    lrtab table --method lalr expr.grammar
    lrtab parse expr.grammar id + id "*" id
    lrtab repl expr.grammar

The exit status is non-zero if a table has conflicts.


License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrtables.cli'
func tracer() tracing.Trace {
	return tracing.Select("lrtables.cli")
}
