// Package service hosts the write coordinators that tie the domain
// to the infrastructure: the TradingService owns the venue books and
// is the only component allowed to mutate them.
package service
