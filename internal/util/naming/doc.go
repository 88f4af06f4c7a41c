// Package naming provides consistent names for resources the deployer creates.
//
// Guest and shared networks use fixed names so they can be recognized in the
// management UI. A zone whose name is taken is recreated as {name}_{6char};
// the random suffix comes from [RandomSuffix]. Ledger files are named after
// the run timestamp so successive runs never overwrite each other.
package naming
