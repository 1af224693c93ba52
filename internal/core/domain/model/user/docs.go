// Package user models the two kinds of participants of the cargo service.
//
// A User carries a Role tag instead of a type hierarchy; role specific data lives
// in an optional Profile variant (DriverProfile or DistributorProfile). Core
// operations receive the caller as an explicit Principal and ask it whether the
// role holds the required Capability.
package user
