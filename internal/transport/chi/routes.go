package chi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface is the set of HTTP operations.
type ServerInterface interface {
	// (GET /health)
	HealthCheck(w http.ResponseWriter, r *http.Request)
	// (GET /metrics)
	Metrics(w http.ResponseWriter, r *http.Request)
	// (GET /indexes)
	ListIndexes(w http.ResponseWriter, r *http.Request)
	// (GET /indexes/{index})
	GetIndex(w http.ResponseWriter, r *http.Request, index IndexName)
	// (DELETE /indexes/{index})
	ClearIndex(w http.ResponseWriter, r *http.Request, index IndexName)
	// (PUT /indexes/{index}/documents)
	UpsertDocuments(w http.ResponseWriter, r *http.Request, index IndexName, params UpsertDocumentsParams)
	// (POST /indexes/{index}/documents/update)
	UpdateDocuments(w http.ResponseWriter, r *http.Request, index IndexName, params UpsertDocumentsParams)
	// (DELETE /indexes/{index}/documents)
	DeleteDocuments(w http.ResponseWriter, r *http.Request, index IndexName)
	// (GET /indexes/{index}/search)
	Search(w http.ResponseWriter, r *http.Request, index IndexName, params SearchParams)
	// (GET /indexes/{index}/params)
	GetSearchParams(w http.ResponseWriter, r *http.Request, index IndexName)
	// (PUT /indexes/{index}/params)
	SetSearchParams(w http.ResponseWriter, r *http.Request, index IndexName, params UpsertDocumentsParams)
	// (GET /usage)
	GetUsage(w http.ResponseWriter, r *http.Request, params UsageParams)
}

// ChiServerOptions configures HandlerWithOptions.
type ChiServerOptions struct {
	BaseRouter       chi.Router
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// InvalidParamFormatError reports a parameter that failed to bind.
type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error { return e.Err }

// wrapper binds path and query parameters before calling the ServerInterface.
type wrapper struct {
	handler ServerInterface
	onError func(w http.ResponseWriter, r *http.Request, err error)
}

// HandlerWithOptions mounts every operation of si on the base router.
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter
	if r == nil {
		r = chi.NewRouter()
	}
	onError := options.ErrorHandlerFunc
	if onError == nil {
		onError = func(w http.ResponseWriter, _ *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}
	w := &wrapper{handler: si, onError: onError}

	r.Get("/health", si.HealthCheck)
	r.Get("/metrics", si.Metrics)
	r.Get("/usage", w.getUsage)
	r.Route("/indexes", func(r chi.Router) {
		r.Get("/", si.ListIndexes)
		r.Get("/{index}", w.withIndex(si.GetIndex))
		r.Delete("/{index}", w.withIndex(si.ClearIndex))
		r.Put("/{index}/documents", w.withIndexAndBackend(si.UpsertDocuments))
		r.Post("/{index}/documents/update", w.withIndexAndBackend(si.UpdateDocuments))
		r.Delete("/{index}/documents", w.withIndex(si.DeleteDocuments))
		r.Get("/{index}/search", w.search)
		r.Get("/{index}/params", w.withIndex(si.GetSearchParams))
		r.Put("/{index}/params", w.withIndexAndBackend(si.SetSearchParams))
	})
	return r
}

func (w *wrapper) bindIndex(rw http.ResponseWriter, r *http.Request) (IndexName, bool) {
	var index IndexName
	err := runtime.BindStyledParameterWithOptions("simple", "index", chi.URLParam(r, "index"), &index,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		w.onError(rw, r, &InvalidParamFormatError{ParamName: "index", Err: err})
		return "", false
	}
	return index, true
}

func (w *wrapper) withIndex(
	fn func(http.ResponseWriter, *http.Request, IndexName),
) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		index, ok := w.bindIndex(rw, r)
		if !ok {
			return
		}
		fn(rw, r, index)
	}
}

func (w *wrapper) withIndexAndBackend(
	fn func(http.ResponseWriter, *http.Request, IndexName, UpsertDocumentsParams),
) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		index, ok := w.bindIndex(rw, r)
		if !ok {
			return
		}
		var params UpsertDocumentsParams
		if err := runtime.BindQueryParameter("form", true, false, "backend", r.URL.Query(), &params.Backend); err != nil {
			w.onError(rw, r, &InvalidParamFormatError{ParamName: "backend", Err: err})
			return
		}
		fn(rw, r, index, params)
	}
}

func (w *wrapper) search(rw http.ResponseWriter, r *http.Request) {
	index, ok := w.bindIndex(rw, r)
	if !ok {
		return
	}
	var params SearchParams
	if err := runtime.BindQueryParameter("form", true, false, "q", r.URL.Query(), &params.Q); err != nil {
		w.onError(rw, r, &InvalidParamFormatError{ParamName: "q", Err: err})
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &params.Limit); err != nil {
		w.onError(rw, r, &InvalidParamFormatError{ParamName: "limit", Err: err})
		return
	}
	w.handler.Search(rw, r, index, params)
}

func (w *wrapper) getUsage(rw http.ResponseWriter, r *http.Request) {
	var params UsageParams
	if err := runtime.BindQueryParameter("form", true, true, "index", r.URL.Query(), &params.Index); err != nil {
		w.onError(rw, r, &InvalidParamFormatError{ParamName: "index", Err: err})
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "days", r.URL.Query(), &params.Days); err != nil {
		w.onError(rw, r, &InvalidParamFormatError{ParamName: "days", Err: err})
		return
	}
	w.handler.GetUsage(rw, r, params)
}
