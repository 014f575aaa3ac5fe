package bulk

import "errors"

var (
	// ErrNoMergeKeys is returned when Merge is requested on a set whose
	// merge-key set is empty.
	ErrNoMergeKeys = errors.New("merge requires merge keys")

	// ErrNotDeduplicated is returned when an operation that needs the
	// deduplication index runs on a set built without deduplication.
	ErrNotDeduplicated = errors.New("operation requires a deduplicated node set")

	// ErrMissingMergeKey is returned when a record lacks one of the set's
	// merge-key properties and the operation needs the full key tuple.
	ErrMissingMergeKey = errors.New("record is missing a merge key property")

	// ErrNoEndpointProperties is returned when a relationship write is
	// requested but one endpoint has no match properties, which would
	// produce an unconstrained endpoint match.
	ErrNoEndpointProperties = errors.New("relationship endpoints require match properties")

	// ErrUnsupportedRecord is returned when a value passed to Add is
	// neither a property map nor an adapter-exposing object.
	ErrUnsupportedRecord = errors.New("record type not supported")
)
