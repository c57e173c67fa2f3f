package http

import (
	"encoding/json"
	"math"
	"net/http"

	"github.com/bft-labs/keycalc/internal/adapters/local"
	"github.com/bft-labs/keycalc/internal/domain"
	"github.com/bft-labs/keycalc/internal/ports"
)

// Error texts returned by ComputeHandler.
const (
	MsgDivisionByZero = "division by zero"
	MsgInvalidResult  = "invalid result"
)

type computeResponse struct {
	Result float64 `json:"result"`
	Error  string  `json:"error,omitempty"`
}

// ComputeHandler serves the compute service: one POST endpoint per operator
// under ServicePath, each taking {"a":n,"b":n} and answering {"result":n} or
// {"result":0,"error":"..."}.
type ComputeHandler struct {
	mux    *http.ServeMux
	logger ports.Logger
}

// NewComputeHandler creates the compute service handler with CORS enabled.
func NewComputeHandler(logger ports.Logger) *ComputeHandler {
	h := &ComputeHandler{
		mux:    http.NewServeMux(),
		logger: logger,
	}
	for _, op := range []domain.Operator{domain.OpAdd, domain.OpSubtract, domain.OpMultiply, domain.OpDivide} {
		h.mux.HandleFunc(ServicePath+op.Name(), h.handle(op))
	}
	return h
}

// ServeHTTP implements http.Handler.
func (h *ComputeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	withCORS(h.mux).ServeHTTP(w, r)
}

func (h *ComputeHandler) handle(op domain.Operator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", "POST, OPTIONS")
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req calculateRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxResponseBytes)).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		h.logger.Info("compute request",
			ports.String("op", op.Name()),
			ports.Float64("a", req.A),
			ports.Float64("b", req.B))

		out := local.Evaluate(req.A, req.B, op)
		if out.Is(domain.ReasonDivisionByZero) {
			writeJSON(w, http.StatusOK, computeResponse{Error: MsgDivisionByZero})
			return
		}

		result, ok := out.Value()
		if !ok || math.IsInf(result, 0) || math.IsNaN(result) {
			h.logger.Warn("compute result invalid", ports.String("op", op.Name()))
			writeJSON(w, http.StatusInternalServerError, computeResponse{Error: MsgInvalidResult})
			return
		}

		writeJSON(w, http.StatusOK, computeResponse{Result: result})
	}
}

func writeJSON(w http.ResponseWriter, status int, v computeResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// withCORS allows browser clients on any origin and answers preflight requests.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
