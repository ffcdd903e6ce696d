// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the freight system. It implements complex
// business workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - TransitionEngine: the parcel custody state machine, validating one
//     requested transition per volume (role, predecessor state, verification
//     gate) and the whole-shipment collection finalization gate
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
