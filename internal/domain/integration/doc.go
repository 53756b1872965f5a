// Package integration contains the marketplace integration bounded context.
//
// Key concepts:
//   - Store: a seller account on the marketplace with its API credentials
//   - MarketplaceClient: port for pulling orders (and claims/questions) from the marketplace
//   - RemoteStatus mapping: fixed table from marketplace statuses to internal order statuses
//   - SyncLock: advisory lock that keeps timer-driven and manual sync runs apart
//
// Design Pattern: Ports & Adapters
//   - Ports (interfaces) are defined here in the domain layer
//   - Adapters (implementations) are in the infrastructure layer
package integration
