// Package kernel provides core domain primitives for the marketplace system.
// It implements fundamental building blocks following Domain-Driven Design
// principles that are used throughout the domain model.
//
// The package includes:
//   - UUID: a value object for unique identifiers with validation and comparison
//   - Quantity: an arbitrary-precision non-negative integer amount of a product
//
// These primitives enforce domain invariants and validation rules, ensuring that
// domain objects are always in a valid state. They are immutable and thread-safe.
package kernel
