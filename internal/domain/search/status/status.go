package status

// Status is the outcome of a Find call.
// EmptyQuery and EmptyIndex mean no scan happened; Success with zero results
// means the scan ran and nothing matched.
type Status string

// Find status constants.
const (
	Success    Status = "success"
	EmptyQuery Status = "empty_query"
	EmptyIndex Status = "empty_index"
)

// Searched reports whether the index was actually scanned.
func (s Status) Searched() bool { return s == Success }
