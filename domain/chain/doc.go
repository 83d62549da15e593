// Package chain implements the proof-of-authority ledger side of the
// platform: signed settlement transactions, the transaction pool, the
// round-robin validator schedule, block assembly and sealing, and the
// append-only chain state with derived balances.
//
// Blocks are hashed and merkleized with blake3 and sealed with
// ed25519 validator keys. The Engine is the single writer of the
// chain state; other components observe the head through an atomic
// snapshot.
package chain
