// Package testing provides test utilities, builders, and fixtures for unit and integration tests.
//
// This package centralizes common testing patterns to avoid duplication across test files:
//   - TopologyBuilder and ZoneBuilder: fluent builders for test topologies
//   - Fixtures: ready-made Basic, Advanced and security-group zones
//   - RecordingObserver: an Observer that keeps every line and event
//   - MockStore: a testify mock of state.Store
//
// Usage:
//
//	cfg := testing.NewTopologyBuilder().
//	    WithZone(testing.BasicZone("zone1")).
//	    Build()
//
//	ctx, obs := testing.NewContext(t, cfg, fakes.New())
package testing
