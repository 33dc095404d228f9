package v1handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"phishguard/internal/analyzer"
	"phishguard/internal/worker"
	"phishguard/pkg/domain"
	"phishguard/pkg/serrors"
	"phishguard/pkg/storage"
)

// Analyze handles POST /v1/analyze.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		h.fail(w, r, err)

		return
	}
	req, err := DecodeAnalyzeRequest(body)
	if err != nil {
		h.fail(w, r, err)

		return
	}

	res, err := h.deps.Analyzer.Analyze(r.Context(), analyzer.Request{
		URL:       req.URL,
		Page:      req.Page,
		EnableLLM: req.EnableLLM,
		Detectors: req.Detectors,
		Whitelist: req.Whitelist,
	})
	if err != nil {
		h.fail(w, r, err)

		return
	}

	writeJSON(w, http.StatusOK, EncodeResult(res))
}

// AnalyzePage handles POST /v1/analyze/page.
func (h *Handler) AnalyzePage(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		h.fail(w, r, err)

		return
	}
	req, err := DecodeAnalyzeRequest(body)
	if err != nil {
		h.fail(w, r, err)

		return
	}
	if req.Page == nil {
		h.fail(w, r, serrors.With(serrors.ErrBadRequest, "page is required"))

		return
	}

	res, err := h.deps.Analyzer.AnalyzePage(r.Context(), req.URL, req.Page, req.Whitelist)
	if err != nil {
		h.fail(w, r, err)

		return
	}

	writeJSON(w, http.StatusOK, EncodeResult(res))
}

// Analysis handles GET /v1/analyses/{id}.
func (h *Handler) Analysis(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, serrors.With(serrors.ErrBadRequest, "invalid analysis id"))

		return
	}

	a, err := h.deps.Analyzer.Analysis(r.Context(), domain.AnalysisID(id))
	if err != nil {
		h.fail(w, r, err)

		return
	}

	writeJSON(w, http.StatusOK, EncodeAnalysis(a))
}

// Analyses handles GET /v1/analyses?hostname=&cursor=&limit=.
func (h *Handler) Analyses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := uint(DefaultLimit)
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || n == 0 {
			h.fail(w, r, serrors.With(serrors.ErrBadRequest, "limit must be a positive integer"))

			return
		}
		limit = uint(min(n, MaxLimit))
	}

	list, next, err := h.deps.Analyzer.Analyses(r.Context(), q.Get("hostname"), q.Get("cursor"), limit)
	if err != nil {
		h.fail(w, r, err)

		return
	}

	writeJSON(w, http.StatusOK, EncodeAnalyses(list, next))
}

// ReloadCorpus handles POST /v1/corpus/reload.
func (h *Handler) ReloadCorpus(w http.ResponseWriter, r *http.Request) {
	n, err := h.deps.Analyzer.ReloadCorpus(r.Context())
	if err != nil {
		h.fail(w, r, err)

		return
	}

	writeJSON(w, http.StatusOK, encodeCount("domains", n))
}

// SyncBlacklist handles POST /v1/blacklist/sync. The sync runs as a
// background job; 202 is returned once it is queued.
func (h *Handler) SyncBlacklist(w http.ResponseWriter, r *http.Request) {
	if h.deps.Jobs == nil {
		h.fail(w, r, storage.ErrJobsUnsupported)

		return
	}

	body, err := readBody(w, r)
	if err != nil {
		h.fail(w, r, err)

		return
	}
	req, err := DecodeSyncRequest(body)
	if err != nil {
		h.fail(w, r, err)

		return
	}

	added, err := worker.Enqueue(r.Context(), h.deps.Jobs, req.Mode, h.options.SyncMaxAttempts)
	if err != nil {
		h.fail(w, r, err)

		return
	}

	enqueued := 0
	if added {
		enqueued = 1
	}
	writeJSON(w, http.StatusAccepted, encodeCount("enqueued", enqueued))
}

// InvalidateCache handles DELETE /v1/cache.
func (h *Handler) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, encodeCount("cleared", h.deps.Analyzer.InvalidateCache(r.Context())))
}
