// Package order implements the Order aggregate: the purchase of one
// merchant's products by one buyer, with an append-only status history whose
// last entry is the authoritative current state.
//
// The package contains the delivery state machine. Transitions are role-gated
// and enforced by the aggregate itself; the decision table for
// courier-requested moves lives in AllowTransition as a pure function so it
// can be tested exhaustively. Every violated precondition surfaces as the
// same coarse Forbidden error.
//
// Orders are created only by order placement and are never hard-deleted.
package order
