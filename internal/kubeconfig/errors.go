package kubeconfig

import "errors"

var (
	// ErrMalformedDocument marks input that cannot be parsed into a document:
	// invalid YAML, a non-mapping top level, or a named entry without a name.
	ErrMalformedDocument = errors.New("malformed kubeconfig document")

	// ErrInvalidReference marks a merge result in which a context contributed
	// by the incoming document references a cluster or user that does not
	// exist after merging.
	ErrInvalidReference = errors.New("invalid reference")

	// ErrUnsupportedResolution marks a keep-both resolution requested for a
	// namespace that does not support renaming.
	ErrUnsupportedResolution = errors.New("unsupported conflict resolution")
)
