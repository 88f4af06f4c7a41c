// Package provisioning provides shared types and orchestration for data-center provisioning.
//
// # Subpackages
//
//   - deploy/: walks a topology and creates zones, networks, pods, clusters, hosts and storage
//   - destroy/: deletes everything recorded in a ledger, in reverse type order
//
// # Core Types
//
// Context carries configuration, the ledger, the API client, the observer and metrics.
// Ledger records created resource ids by type and remembers the order types were first seen.
// Waiter polls a condition a bounded number of times with a fixed interval.
// Phase defines a provisioning step with Name() and Provision() methods.
package provisioning
