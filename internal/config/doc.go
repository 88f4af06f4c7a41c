// Package config defines the data-center topology model consumed by the
// deployer, together with its loader, defaults and validation.
//
// The [Config] struct is a read-only description of the desired zones,
// physical networks, pods, clusters, hosts and storage. It is loaded from a
// YAML or JSON document with [LoadFile]. Polling and API timeouts live in
// [Timeouts] and are read from the environment by [LoadTimeouts].
package config
