// Package cloudapi is the client for the data-center control-plane API.
//
// [Client] lists every operation the deployer needs, grouped into small
// manager interfaces per resource family. [HTTPClient] implements it over
// the signed query-string HTTP API, including polling of asynchronous jobs.
// The fakes subpackage provides an in-memory control plane for tests.
package cloudapi
