// Package retry provides exponential backoff retry logic for transient failures.
//
// The [WithExponentialBackoff] function retries an operation with configurable
// max attempts, initial delay, and maximum delay. The control-plane HTTP client
// uses it for transport errors and gateway failures. Errors wrapped with [Fatal]
// stop the loop immediately.
package retry
