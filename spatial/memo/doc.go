// Package memo provides memo tables keyed by quantized coordinates.
//
// Tables are strict memo tables: nothing is evicted until [Table2.Reset]
// or [Table3.Reset]. A table must be dedicated to one model
// configuration. Entries are never invalidated when a model's
// parameters change, so callers tie the table's lifetime to the model.
//
// Tables are not thread-safe.
package memo
