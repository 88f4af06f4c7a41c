package deploy

import "errors"

var (
	// ErrMissingID is reported when the API accepts a create but returns no id.
	ErrMissingID = errors.New("response carried no resource id")

	// ErrAllHostsFailed is returned when no host of a cluster could be added.
	ErrAllHostsFailed = errors.New("all hosts of the cluster failed")

	// ErrOfferingNotFound is returned when a network offering name does not resolve.
	ErrOfferingNotFound = errors.New("network offering not found")

	// ErrNoProviderElement is returned when an enabled-in-place provider has no element to configure.
	ErrNoProviderElement = errors.New("provider has no element")

	// ErrUnsupportedProvider is returned for a provider that declares devices the deployer cannot add.
	ErrUnsupportedProvider = errors.New("unsupported device provider")
)
