// Package hansard models the NSW Parliament Hansard API: the table of
// contents tree for a sitting day, the clients that fetch the tree and the
// per-topic transcript fragments, and the identifier helpers shared by the
// commands. The tree is a closed tagged union decoded strictly; unknown
// node types are rejected rather than coerced.
package hansard
