// Package services provides domain services that orchestrate business
// operations across multiple domain entities in the marketplace. It
// implements workflows that don't naturally belong to a single aggregate.
//
// The package includes:
//   - DeliverySettlement: applies a delivery transition together with the
//     merchant balance credit it may trigger, keeping both mutations paired
//     so the application layer can commit them in one transaction
package services
