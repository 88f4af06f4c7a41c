// Package deploy provisions a data-center topology against the control-plane API.
//
// A run applies global configuration, then builds every zone in order: the
// zone itself, its physical networks with traffic types and providers, the
// guest or shared network its network type calls for, pods with their
// clusters and hosts, and finally zone-level storage. Every resource that
// comes back with an id is registered in the run's ledger. When a required
// resource fails, the Provisioner tears down whatever the ledger holds.
package deploy
