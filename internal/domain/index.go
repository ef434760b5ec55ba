package domain

// KeyPrefix namespaces every key this service writes to shared storage.
const KeyPrefix = "localsearch:"

// Backend is the search strategy behind an index.
type Backend string

const (
	// BackendLinearMap scans every document on each query.
	BackendLinearMap Backend = "linear_map"
	// BackendInvertedIndex is reserved; no implementation exists yet.
	BackendInvertedIndex Backend = "inverted_index"
)

// IsValid checks if the backend is one of the known values.
func (b Backend) IsValid() bool {
	return b == BackendLinearMap || b == BackendInvertedIndex
}

// IsSupported reports whether an implementation exists for the backend.
func (b Backend) IsSupported() bool {
	return b == BackendLinearMap
}
