package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/localsearch/internal/domain"
	domusage "github.com/kailas-cloud/localsearch/internal/domain/usage"
	healthuc "github.com/kailas-cloud/localsearch/internal/usecase/health"
	localsearch "github.com/kailas-cloud/localsearch/pkg/sdk"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server implements ServerInterface over an index registry.
type Server struct {
	indexes       IndexRegistry
	usage         UsageReporter
	health        HealthChecker
	backend       localsearch.Backend
	defaultLimit  uint32
	logger        *zap.Logger
	validate      *validator.Validate
	errorHandlers []errorHandler
}

var _ ServerInterface = (*Server)(nil)

// NewServer creates an HTTP API server. backend is used for indexes created
// by a request that does not name one.
func NewServer(
	indexes IndexRegistry,
	usage UsageReporter,
	health HealthChecker,
	backend localsearch.Backend,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		indexes:  indexes,
		usage:    usage,
		health:   health,
		backend:  backend,
		logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrIndexNotFound, http.StatusNotFound, ErrorCodeIndexNotFound),
		// Reserved backends also match ErrUnsupportedBackend, so they go first.
		sentinelHandler(domain.ErrNotImplemented, http.StatusNotImplemented, ErrorCodeNotImplemented),
		sentinelHandler(domain.ErrUnsupportedBackend, http.StatusBadRequest, ErrorCodeUnsupportedBackend),
		sentinelHandler(domain.ErrInvalidArgument, http.StatusBadRequest, ErrorCodeInvalidArgument),
	}
	return s
}

// WithDefaultLimit caps searches that pass no limit. 0 leaves them unbounded.
func (s *Server) WithDefaultLimit(n uint32) *Server {
	s.defaultLimit = n
	return s
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}
	writeJSON(w, httpStatus, HealthResponse{Status: string(report.Status), Checks: checks})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// ListIndexes handles GET /indexes.
func (s *Server) ListIndexes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, IndexListResponse{Indexes: s.indexes.IDs()})
}

// GetIndex handles GET /indexes/{index}.
func (s *Server) GetIndex(w http.ResponseWriter, _ *http.Request, index IndexName) {
	idx, err := s.indexes.Lookup(index)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, IndexResponse{
		ID:      idx.ID(),
		Backend: string(idx.Backend()),
		Size:    idx.GetSize(),
		Params:  paramsToBody(idx.GetSearchParams()),
	})
}

// ClearIndex handles DELETE /indexes/{index}.
func (s *Server) ClearIndex(w http.ResponseWriter, r *http.Request, index IndexName) {
	idx, err := s.indexes.Lookup(index)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ClearResponse{Removed: idx.ClearIndex(r.Context())})
}

// UpsertDocuments handles PUT /indexes/{index}/documents.
func (s *Server) UpsertDocuments(w http.ResponseWriter, r *http.Request, index IndexName, params UpsertDocumentsParams) {
	var req DocumentsRequest
	if !s.decode(w, r, &req) {
		return
	}
	idx, err := s.indexes.GetIndex(r.Context(), index, s.backendParam(params))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	results, _ := idx.AddOrUpdate(r.Context(), documentsFromBody(req.Documents))
	writeBatch(w, results, nil, idx.GetSize())
}

// UpdateDocuments handles POST /indexes/{index}/documents/update.
func (s *Server) UpdateDocuments(w http.ResponseWriter, r *http.Request, index IndexName, params UpsertDocumentsParams) {
	var req DocumentsRequest
	if !s.decode(w, r, &req) {
		return
	}
	idx, err := s.indexes.GetIndex(r.Context(), index, s.backendParam(params))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	deleted, results, _ := idx.UpdateDocuments(r.Context(), documentsFromBody(req.Documents))
	writeBatch(w, results, &deleted, idx.GetSize())
}

// DeleteDocuments handles DELETE /indexes/{index}/documents.
func (s *Server) DeleteDocuments(w http.ResponseWriter, r *http.Request, index IndexName) {
	var req DeleteDocumentsRequest
	if !s.decode(w, r, &req) {
		return
	}
	idx, err := s.indexes.Lookup(index)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	deleted, results, _ := idx.Delete(r.Context(), req.IDs)
	writeBatch(w, results, &deleted, idx.GetSize())
}

// Search handles GET /indexes/{index}/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request, index IndexName, params SearchParams) {
	idx, err := s.indexes.Lookup(index)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	var query string
	if params.Q != nil {
		query = *params.Q
	}
	limit := s.defaultLimit
	if params.Limit != nil {
		limit = *params.Limit
	}

	st, results := idx.Find(r.Context(), query, limit)
	resp := SearchResponse{Status: string(st), Results: make([]SearchResult, len(results))}
	for i, res := range results {
		hits := make([]HitBody, len(res.Hits))
		for j, h := range res.Hits {
			hits[j] = HitBody{Start: h.Start, End: h.End}
		}
		resp.Results[i] = SearchResult{ID: res.ID, Score: res.Score, Hits: hits}
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetSearchParams handles GET /indexes/{index}/params.
func (s *Server) GetSearchParams(w http.ResponseWriter, _ *http.Request, index IndexName) {
	idx, err := s.indexes.Lookup(index)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, paramsToBody(idx.GetSearchParams()))
}

// SetSearchParams handles PUT /indexes/{index}/params.
func (s *Server) SetSearchParams(w http.ResponseWriter, r *http.Request, index IndexName, params UpsertDocumentsParams) {
	var req SearchParamsBody
	if !s.decode(w, r, &req) {
		return
	}
	idx, err := s.indexes.GetIndex(r.Context(), index, s.backendParam(params))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	p := applyParams(idx.GetSearchParams(), req)
	idx.SetSearchParams(p)
	writeJSON(w, http.StatusOK, paramsToBody(p))
}

// GetUsage handles GET /usage.
func (s *Server) GetUsage(w http.ResponseWriter, r *http.Request, params UsageParams) {
	days := 0
	if params.Days != nil {
		days = *params.Days
	}
	if days < 0 {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, "days must not be negative")
		return
	}

	report, err := s.usage.GetReport(r.Context(), params.Index, days)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, usageToBody(report))
}

func (s *Server) backendParam(p UpsertDocumentsParams) localsearch.Backend {
	if p.Backend != nil && *p.Backend != "" {
		return localsearch.Backend(*p.Backend)
	}
	return s.backend
}

// decode reads a JSON body into v and validates it. Writes the error reply on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	if err := s.validate.Struct(v); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// writeBatch replies 200 when every item succeeded, 207 otherwise.
func writeBatch(w http.ResponseWriter, results []localsearch.BatchResult, deleted *int, size int) {
	resp := BatchResponse{Items: make([]BatchItem, len(results)), Deleted: deleted, Size: size}
	for i, r := range results {
		item := BatchItem{ID: r.ID, Status: "ok"}
		if !r.OK {
			item.Status = "error"
			msg := safeDomainMessage(r.Err)
			item.Error = &msg
			resp.Failed++
		}
		resp.Items[i] = item
	}

	status := http.StatusOK
	if resp.Failed > 0 {
		status = http.StatusMultiStatus
	}
	writeJSON(w, status, resp)
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidArgument,
		domain.ErrIndexNotFound,
		domain.ErrNotImplemented,
		domain.ErrUnsupportedBackend,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, err.Error())
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}

func documentsFromBody(body []DocumentBody) []localsearch.Document {
	docs := make([]localsearch.Document, len(body))
	for i, d := range body {
		docs[i] = localsearch.Document{ID: d.ID, Tags: d.Tags}
	}
	return docs
}

func paramsToBody(p localsearch.Params) SearchParamsBody {
	ms := p.MaxLatency.Milliseconds()
	return SearchParamsBody{
		RelevanceThreshold:      &p.RelevanceThreshold,
		PartialMatchPenaltyRate: &p.PartialMatchPenaltyRate,
		UsePrefixOnly:           &p.UsePrefixOnly,
		UseWeightedRatio:        &p.UseWeightedRatio,
		UseEditDistance:         &p.UseEditDistance,
		MaxLatencyMs:            &ms,
	}
}

func applyParams(p localsearch.Params, b SearchParamsBody) localsearch.Params {
	if b.RelevanceThreshold != nil {
		p.RelevanceThreshold = *b.RelevanceThreshold
	}
	if b.PartialMatchPenaltyRate != nil {
		p.PartialMatchPenaltyRate = *b.PartialMatchPenaltyRate
	}
	if b.UsePrefixOnly != nil {
		p.UsePrefixOnly = *b.UsePrefixOnly
	}
	if b.UseWeightedRatio != nil {
		p.UseWeightedRatio = *b.UseWeightedRatio
	}
	if b.UseEditDistance != nil {
		p.UseEditDistance = *b.UseEditDistance
	}
	if b.MaxLatencyMs != nil {
		p.MaxLatency = time.Duration(*b.MaxLatencyMs) * time.Millisecond
	}
	return p
}

func usageToBody(r domusage.Report) UsageResponse {
	days := make([]UsageDay, len(r.Days()))
	for i, d := range r.Days() {
		days[i] = UsageDay{Date: d.Day().Format(domusage.DayFormat), Searches: d.Searches()}
	}
	return UsageResponse{Index: r.Index(), Days: days, Total: r.Total()}
}
