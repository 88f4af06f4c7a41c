// Package destroy tears down the resources recorded in a deployment ledger.
//
// Resource types are visited in reverse order of their first registration,
// and ids within a type in the order they were registered. Hosts and
// storage pools are put into maintenance before they are deleted. A delete
// the API rejects is recorded as a failure and the pass continues; a
// transport failure or cancelled context ends the pass.
package destroy
