/*
Package lrtables is a toolbox for static grammar analysis and the construction
of deterministic LR parser tables.

Given a context-free grammar, it computes FIRST and FOLLOW sets, builds the
canonical LR(0) item-set automaton and derives SLR(1), canonical LR(1) or
LALR(1) shift-reduce tables. Ambiguities are never resolved silently: they are
reported as structured conflicts. Package structure is as follows:

■ lr: Package lr implements grammars, grammar analysis and table construction.

■ lr/iteratable: Package iteratable implements a set type which may grow while
being iterated, used for fixed-point computations over item sets.

■ lr/sparse: Package sparse implements sparse integer matrices for compact
parser tables.

■ lr/slr: Package slr implements a small shift-reduce driver for compact tables.

■ lr/notation: Package notation reads grammars from a textual notation.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lrtables
