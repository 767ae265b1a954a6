// Package store holds the MongoDB-backed stores for orders, pending orders,
// discount codes, stock counts and reviews. Counters are mutated with $inc
// so concurrent redemptions and stock decrements never lose updates.
package store

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a referenced order, pending order or
	// discount code does not exist.
	ErrNotFound = errors.New("not found")
	// ErrOutOfStock is returned by a decrement that would take a variant
	// below zero.
	ErrOutOfStock = errors.New("out of stock")
	// ErrDuplicateCode is returned when creating a discount code that
	// already exists.
	ErrDuplicateCode = errors.New("discount code already exists")
)

const queryTimeout = 10 * time.Second
