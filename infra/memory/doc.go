// Package memory provides low-level primitives for object reuse and
// safe reclamation: a typed order pool, a lock-free retire ring, and
// global epoch tracking used by the order books and their readers.
//
// The package is dependency-free and forms the foundation for
// concurrent object reuse without exposing recycled memory to
// in-flight depth snapshots.
package memory
