// Package orderbook implements the in-memory continuous double
// auction for one trading venue. It maintains two red-black trees of
// FIFO price levels for the bid and ask sides and matches incoming
// orders under price-time priority, with an optional pro-rata
// allocation mode.
//
// The book is a single-writer structure: the owning coordinator
// serializes every mutation, which is what makes time priority a
// well-defined sequential history. Removed orders are retired through
// an epoch-based ring so depth readers never observe recycled memory.
package orderbook
