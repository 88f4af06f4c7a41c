// Package state persists deployment ledgers so a later run can remove what
// an earlier one created.
//
// A ledger is written as a YAML Document. FileStore keeps documents in a
// local directory under timestamped names; S3Store keeps them in an
// S3-compatible bucket. Open picks the store matching a location.
package state
