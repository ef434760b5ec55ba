package chi

// IndexName is the {index} path parameter.
type IndexName = string

// ErrorCode identifies an error class in ErrorResponse.
type ErrorCode string

// Error codes.
const (
	ErrorCodeBadRequest         ErrorCode = "bad_request"
	ErrorCodeValidationFailed   ErrorCode = "validation_failed"
	ErrorCodeInvalidArgument    ErrorCode = "invalid_argument"
	ErrorCodeIndexNotFound      ErrorCode = "index_not_found"
	ErrorCodeUnsupportedBackend ErrorCode = "unsupported_backend"
	ErrorCodeNotImplemented     ErrorCode = "not_implemented"
	ErrorCodeUnauthorized       ErrorCode = "unauthorized"
	ErrorCodeForbidden          ErrorCode = "forbidden"
	ErrorCodeInternalError      ErrorCode = "internal_error"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// DocumentBody is one document in a mutation request.
type DocumentBody struct {
	ID   string   `json:"id"`
	Tags []string `json:"tags" validate:"max=64,dive,max=1024"`
}

// DocumentsRequest is the body of PUT /indexes/{index}/documents and
// POST /indexes/{index}/documents/update.
type DocumentsRequest struct {
	Documents []DocumentBody `json:"documents" validate:"required,min=1,max=1000,dive"`
}

// DeleteDocumentsRequest is the body of DELETE /indexes/{index}/documents.
type DeleteDocumentsRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,max=1000"`
}

// BatchItem is the outcome of one item of a batch.
type BatchItem struct {
	ID     string  `json:"id"`
	Status string  `json:"status"`
	Error  *string `json:"error,omitempty"`
}

// BatchResponse reports per-item outcomes of a batch mutation.
type BatchResponse struct {
	Items   []BatchItem `json:"items"`
	Failed  int         `json:"failed"`
	Deleted *int        `json:"deleted,omitempty"`
	Size    int         `json:"size"`
}

// ClearResponse is the reply of DELETE /indexes/{index}.
type ClearResponse struct {
	Removed int `json:"removed"`
}

// SearchParamsBody carries scoring params. Absent fields keep their value.
type SearchParamsBody struct {
	RelevanceThreshold      *float64 `json:"relevance_threshold,omitempty" validate:"omitempty,gte=0,lte=1"`
	PartialMatchPenaltyRate *float64 `json:"partial_match_penalty_rate,omitempty" validate:"omitempty,gte=0,lte=1"`
	UsePrefixOnly           *bool    `json:"use_prefix_only,omitempty"`
	UseWeightedRatio        *bool    `json:"use_weighted_ratio,omitempty"`
	UseEditDistance         *bool    `json:"use_edit_distance,omitempty"`
	MaxLatencyMs            *int64   `json:"max_latency_ms,omitempty" validate:"omitempty,gte=0"`
}

// IndexResponse describes an index.
type IndexResponse struct {
	ID      string           `json:"id"`
	Backend string           `json:"backend"`
	Size    int              `json:"size"`
	Params  SearchParamsBody `json:"params"`
}

// IndexListResponse lists registered indexes.
type IndexListResponse struct {
	Indexes []string `json:"indexes"`
}

// HitBody is a matched [start, end) character range.
type HitBody struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// SearchResult is one matched document.
type SearchResult struct {
	ID    string    `json:"id"`
	Score float64   `json:"score"`
	Hits  []HitBody `json:"hits"`
}

// SearchResponse is the reply of GET /indexes/{index}/search.
type SearchResponse struct {
	Status  string         `json:"status"`
	Results []SearchResult `json:"results"`
}

// UsageDay is the search count of one day.
type UsageDay struct {
	Date     string `json:"date"`
	Searches int64  `json:"searches"`
}

// UsageResponse is the reply of GET /usage.
type UsageResponse struct {
	Index string     `json:"index"`
	Days  []UsageDay `json:"days"`
	Total int64      `json:"total"`
}

// HealthResponse is the reply of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// UpsertDocumentsParams are the query parameters of index-creating routes.
type UpsertDocumentsParams struct {
	// Backend used when the request creates the index.
	Backend *string `form:"backend" json:"backend,omitempty"`
}

// SearchParams are the query parameters of GET /indexes/{index}/search.
type SearchParams struct {
	Q     *string `form:"q" json:"q,omitempty"`
	Limit *uint32 `form:"limit" json:"limit,omitempty"`
}

// UsageParams are the query parameters of GET /usage.
type UsageParams struct {
	Index string `form:"index" json:"index"`
	Days  *int   `form:"days" json:"days,omitempty"`
}
