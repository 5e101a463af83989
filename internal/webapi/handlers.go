// Package webapi exposes grading and transcript calculation as a JSON API.
package webapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/spboyer/cgpa/internal/calculator"
	"github.com/spboyer/cgpa/internal/dataset"
	"github.com/spboyer/cgpa/internal/gradetable"
	"github.com/spboyer/cgpa/internal/models"
)

// Version is set at build time or defaults to dev.
var Version = "dev"

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Options configures the handlers.
type Options struct {
	DefaultPolicy  string
	AllowOverMarks bool
	Logger         *slog.Logger
}

// Handlers holds the HTTP handler methods for the web API.
type Handlers struct {
	store PolicyStore
	opts  Options
}

// NewHandlers creates a new Handlers with the given store.
func NewHandlers(store PolicyStore, opts Options) *Handlers {
	if opts.DefaultPolicy == "" {
		opts.DefaultPolicy = gradetable.DefaultPolicy
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Handlers{store: store, opts: opts}
}

// HandleHealth returns a simple health check response.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: Version,
	})
}

// HandlePolicies lists the available grading policies.
func (h *Handlers) HandlePolicies(w http.ResponseWriter, _ *http.Request) {
	policies := h.store.Policies()
	out := make([]PolicySummary, 0, len(policies))
	for _, p := range policies {
		out = append(out, summarize(p, h.opts.DefaultPolicy))
	}
	writeJSON(w, http.StatusOK, out)
}

// HandlePolicyDetail returns one policy with its bands.
func (h *Handlers) HandlePolicyDetail(w http.ResponseWriter, r *http.Request) {
	p, err := h.store.Lookup(r.PathValue("name"))
	if err != nil {
		writeLookupError(w, err, http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, detail(p, h.opts.DefaultPolicy))
}

// HandleGrade maps one subject's marks to a grade.
func (h *Handlers) HandleGrade(w http.ResponseWriter, r *http.Request) {
	var req GradeRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	calc, err := h.calculator(req.Policy, r)
	if err != nil {
		writeLookupError(w, err, http.StatusBadRequest)
		return
	}

	credits := 1.0
	if req.Credits != nil {
		credits = *req.Credits
	}
	res, err := calc.EvaluateSubject(models.Subject{
		Name:          req.Name,
		MarksObtained: req.Marks,
		TotalMarks:    req.Total,
		CreditHours:   credits,
	})
	if err != nil {
		writeCalcError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, GradeResponse{SubjectResult: res, Policy: calc.Policy().Name()})
}

// HandleTranscript computes semester GPAs and the CGPA for a transcript
// document. Every request gets its own transcript; nothing is kept between
// requests.
func (h *Handlers) HandleTranscript(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, err.Error())
		return
	}
	if len(bytes.TrimSpace(body)) == 0 {
		writeError(w, http.StatusBadRequest, "request body is empty")
		return
	}

	doc, err := dataset.Decode(body)
	if err != nil {
		var se *dataset.SchemaError
		if errors.As(err, &se) {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{
				Error:    "transcript does not match the schema",
				Code:     http.StatusBadRequest,
				Problems: se.Problems,
			})
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	calc, err := h.calculator(doc.Policy, r)
	if err != nil {
		writeLookupError(w, err, http.StatusBadRequest)
		return
	}

	report, err := calc.Compute(*doc)
	if err != nil {
		writeCalcError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// calculator builds a Calculator for one request. The policy comes from the
// body, then the ?policy query parameter, then the server default.
func (h *Handlers) calculator(policy string, r *http.Request) (*calculator.Calculator, error) {
	if policy == "" {
		policy = r.URL.Query().Get("policy")
	}
	if policy == "" {
		policy = h.opts.DefaultPolicy
	}
	p, err := h.store.Lookup(policy)
	if err != nil {
		return nil, err
	}

	strict, _ := strconv.ParseBool(r.URL.Query().Get("strict"))
	return calculator.New(p,
		calculator.WithStrict(strict),
		calculator.WithAllowOverMarks(h.opts.AllowOverMarks),
		calculator.WithLogger(h.opts.Logger),
	), nil
}

// RegisterRoutes registers all web API routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, store PolicyStore, opts Options) {
	h := NewHandlers(store, opts)
	mux.HandleFunc("GET /api/health", h.HandleHealth)
	mux.HandleFunc("GET /api/policies", h.HandlePolicies)
	mux.HandleFunc("GET /api/policies/{name}", h.HandlePolicyDetail)
	mux.HandleFunc("POST /api/grade", h.HandleGrade)
	mux.HandleFunc("POST /api/transcript", h.HandleTranscript)
}

// CORSMiddleware wraps a handler with CORS headers.
// If allowedOrigins is empty, no CORS header is set (same-origin only).
// Otherwise, the request Origin is checked against the allowed list.
func CORSMiddleware(next http.Handler, allowedOrigins ...string) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if len(allowedOrigins) > 0 && origin != "" && allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeLookupError(w http.ResponseWriter, err error, unknownStatus int) {
	if errors.Is(err, gradetable.ErrUnknownPolicy) {
		writeError(w, unknownStatus, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

func writeCalcError(w http.ResponseWriter, err error) {
	if errors.Is(err, calculator.ErrInvalidInput) || errors.Is(err, calculator.ErrNoData) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

// writeJSON encodes v before touching the response so an encoding failure
// becomes a 500 instead of a success status with an empty body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		status = http.StatusInternalServerError
		buf.Reset()
		json.NewEncoder(&buf).Encode(ErrorResponse{Error: "encoding response: " + err.Error(), Code: status}) //nolint:errcheck
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf.Bytes()) //nolint:errcheck
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, ErrorResponse{Error: msg, Code: code})
}
