package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	appai "github.com/repolens/repolens/internal/application/ai"
	appanalysis "github.com/repolens/repolens/internal/application/analysis"
	domai "github.com/repolens/repolens/internal/domain/ai"
	domain "github.com/repolens/repolens/internal/domain/analysis"
	"github.com/repolens/repolens/internal/middleware"
)

type Router struct {
	analysisSvc *appanalysis.Service
	aiSvc       *appai.Service
}

func NewRouter(analysisSvc *appanalysis.Service, aiSvc *appai.Service, checkers map[string]middleware.HealthChecker) http.Handler {
	r := &Router{analysisSvc: analysisSvc, aiSvc: aiSvc}
	mux := chi.NewRouter()

	if len(checkers) > 0 {
		mux.Get("/health", middleware.HealthHandler(checkers))
	} else {
		mux.Get("/health", middleware.LivenessHandler)
	}
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Route("/v1/{tenant}", func(rt chi.Router) {
		rt.Use(requireValidTenant)
		rt.Post("/analyze", r.wrap(r.handleAnalyze))
		rt.Get("/profiles", r.wrap(r.handleList))
		rt.Get("/profiles/latest", r.wrap(r.handleLatest))
		rt.Get("/profiles/{id}", r.wrap(r.handleGet))
		rt.Get("/profiles/{id}/report", r.wrap(r.handleReport))
		rt.Get("/summary", r.wrap(r.handleSummary))
		rt.Get("/errors", r.wrap(r.handleErrors))
		rt.Post("/ai/summarize", r.wrap(r.handleAISummarize))
		rt.Get("/ai/summaries", r.wrap(r.handleAISummaries))
	})

	return mux
}

// requireValidTenant rejects malformed tenant path segments before any
// handler runs.
func requireValidTenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if err := middleware.ValidateTenantID(chi.URLParam(req, "tenant")); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		next.ServeHTTP(w, req)
	})
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			switch {
			case errors.Is(err, domain.ErrInvalidLocator):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, domain.ErrRepositoryNotFound):
				http.Error(w, err.Error(), http.StatusNotFound)
			case errors.Is(err, domain.ErrAccessDenied):
				http.Error(w, err.Error(), http.StatusForbidden)
			case errors.Is(err, sql.ErrNoRows):
				http.Error(w, "not found", http.StatusNotFound)
			case errors.Is(err, domai.ErrQuotaExceeded):
				http.Error(w, "ai quota exceeded", http.StatusTooManyRequests)
			default:
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
		}
	}
}

// POST /v1/{tenant}/analyze
// Body: {"locator": "owner/repo"}
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")

	var body struct {
		Locator string `json:"locator"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrInvalidLocator)
	}
	if err := middleware.ValidateLocator(body.Locator); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidLocator, err)
	}

	middleware.IncrementAnalyses()
	profile, err := r.analysisSvc.Analyze(req.Context(), appanalysis.AnalyzeCommand{
		TenantID: tenant,
		Locator:  body.Locator,
	})
	if err != nil {
		middleware.IncrementAnalysesFailed()
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(profile)
}

// GET /v1/{tenant}/profiles?page=&page_size=&repo=&architecture=
func (r *Router) handleList(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	page, _ := strconv.Atoi(req.URL.Query().Get("page"))
	size, _ := strconv.Atoi(req.URL.Query().Get("page_size"))

	filters := map[string]interface{}{}
	if v := req.URL.Query().Get("repo"); v != "" {
		filters["repo"] = middleware.SanitizeString(v)
	}
	if v := req.URL.Query().Get("architecture"); v != "" {
		filters["architecture"] = middleware.SanitizeString(v)
	}

	list, err := r.analysisSvc.Paginate(req.Context(), tenant, page, size, filters)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(list)
}

// GET /v1/{tenant}/profiles/latest?limit=20
func (r *Router) handleLatest(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
	limit = middleware.ValidateLimit(limit)

	list, err := r.analysisSvc.Latest(req.Context(), tenant, limit)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(list)
}

// GET /v1/{tenant}/profiles/{id}
func (r *Router) handleGet(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateProfileID(id); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidLocator, err)
	}

	profile, err := r.analysisSvc.Get(req.Context(), tenant, domain.ProfileID(id))
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(profile)
}

// GET /v1/{tenant}/profiles/{id}/report
func (r *Router) handleReport(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateProfileID(id); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidLocator, err)
	}

	res, err := r.analysisSvc.Report(req.Context(), tenant, domain.ProfileID(id))
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(res)
}

// GET /v1/{tenant}/summary?days=7
func (r *Router) handleSummary(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	days, _ := strconv.Atoi(req.URL.Query().Get("days"))
	days = middleware.ValidateDays(days)

	summary, err := r.analysisSvc.Summary(req.Context(), tenant, days)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(summary)
}

// GET /v1/{tenant}/errors?locator=&limit=
func (r *Router) handleErrors(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	locator := req.URL.Query().Get("locator")
	if err := middleware.ValidateLocator(locator); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidLocator, err)
	}
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
	limit = middleware.ValidateLimit(limit)

	list, err := r.analysisSvc.Failures(req.Context(), tenant, locator, limit)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(list)
}

// POST /v1/{tenant}/ai/summarize
// Body: {"profile_id": "<id>"}
func (r *Router) handleAISummarize(w http.ResponseWriter, req *http.Request) error {
	if r.aiSvc == nil {
		http.Error(w, "ai summaries not configured", http.StatusNotImplemented)
		return nil
	}
	tenant := chi.URLParam(req, "tenant")

	var body struct {
		ProfileID string `json:"profile_id"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return err
	}
	if body.ProfileID == "" {
		return fmt.Errorf("profile_id is required")
	}

	sum, err := r.aiSvc.SummarizeAndStore(req.Context(), tenant, domain.ProfileID(body.ProfileID))
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(sum)
}

// GET /v1/{tenant}/ai/summaries?page=&page_size=
// With ?profile_id= the latest narrative for that profile is returned instead.
func (r *Router) handleAISummaries(w http.ResponseWriter, req *http.Request) error {
	if r.aiSvc == nil {
		http.Error(w, "ai summaries not configured", http.StatusNotImplemented)
		return nil
	}
	tenant := chi.URLParam(req, "tenant")

	if profileID := req.URL.Query().Get("profile_id"); profileID != "" {
		if err := middleware.ValidateProfileID(profileID); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidLocator, err)
		}
		sum, err := r.aiSvc.LatestSummary(req.Context(), tenant, domain.ProfileID(profileID))
		if err != nil {
			return err
		}
		w.Header().Set("Content-Type", "application/json")
		return json.NewEncoder(w).Encode(sum)
	}

	page, _ := strconv.Atoi(req.URL.Query().Get("page"))
	size, _ := strconv.Atoi(req.URL.Query().Get("page_size"))

	list, err := r.aiSvc.ListSummaries(req.Context(), tenant, page, size)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(list)
}
