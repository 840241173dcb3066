/*
Package iteratable implements iteratable container data structures.

Set is a special purpose set type, suitable mainly for implementing algorithms
around scanners, parsers, etc. These kinds of algorihms are often more straightforward
to describe as set constructions and operations.

Unusually, a set may grow while it is being iterated: items added during an
iteration will be visited by the same iteration. This turns a set into a worklist
for fixed-point computations, e.g. the closure of an LR item set:

    C.IterateOnce()
    for C.Next() {
        item := C.Item()
        C.Add(successorsOf(item)...)   // will be visited later in this loop
    }

Sets remember the order of insertion, and iteration follows this order. Equality
of sets does not depend on it, however.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package iteratable
