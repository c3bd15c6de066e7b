/*
Package nodeid provides the two identifier forms used for model nodes.

An ID is the stable, unique identity of a node. IDs are ULIDs produced by a
Generator with monotonic entropy, so the lexical order of IDs is the order in
which the nodes were created. Every deterministic ordering in the pipeline
(discovery output, component numbering, lowering order) is derived from it.

A Ref is the human-facing address of a declared node in a model file, in the
canonical format `kind.name`, e.g. `variable.mu` or `data.y`.
*/
package nodeid
