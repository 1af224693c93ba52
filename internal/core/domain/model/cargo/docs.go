// Package cargo implements the Cargo aggregate: a shipment posted by a distributor,
// claimed by a driver and confirmed with a one-time verification code.
//
// The package includes:
//   - Cargo: the aggregate root holding ownership, driver binding, timestamps and the code
//   - Status: the lifecycle state machine
//   - Measure and SizeClass: the physical dimensions of a shipment
//   - VerificationCode and CodeGenerator: six-digit delivery confirmation codes
//
// Lifecycle:
//
//	CREATED ──> PICKED_UP ──> DELIVERED
//	   │            │
//	   ├──> CANCELLED <──┤
//	   ├──> EXPIRED      └──> FAILED
//
// DELIVERED, CANCELLED, EXPIRED and FAILED are terminal. Transitions never move a
// cargo back to an earlier state, which is also why a taken cargo can never be
// taken again.
package cargo
