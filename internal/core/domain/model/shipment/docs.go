// Package shipment contains the shipment aggregate and its child volume
// entities, the unit of physical custody tracking in the freight system.
//
// A Shipment is the aggregate header created exactly once when a paid order
// is materialized: totals, pickup point, requested delivery date and the
// payment reference that produced it. The physically trackable unit is the
// Volume: each volume carries its own parcel code, recipient address
// snapshot, custody status and (while claimed) an assigned actor.
//
// Volume status follows a fixed directed graph from AwaitingCollectionAccept
// to Delivered. The graph is expressed as an explicit successor table on the
// Status type; skipping states or moving backwards is rejected at the domain
// level, and the persistence layer additionally conditions every status
// write on the state that was observed (optimistic concurrency).
//
// Occurrences (failed delivery attempt, damaged product, recipient refusal
// and so on) are not states: they are audit metadata layered on top of the
// volume's current working state, so prior progress and the assigned actor
// survive a failed attempt and a retry stays possible.
package shipment
