package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/sequence"
	"github.com/agbru/bigcalc/internal/service"
	"github.com/agbru/bigcalc/pkg/biguint"
)

// defaultAlgorithms is used by /sequence when algo is omitted.
var defaultAlgorithms = map[sequence.Sequence]string{
	sequence.Factorial: "iterative",
	sequence.Fibonacci: "doubling",
	sequence.Catalan:   "recurrence",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", "")
		return
	}
	s.writeJSONResponse(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	})
}

// handleAlgorithms lists registered calculator names grouped by sequence.
func (s *Server) handleAlgorithms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", "")
		return
	}
	s.writeJSONResponse(w, http.StatusOK, map[string]any{
		"algorithms": s.factory.Algorithms(),
	})
}

// handleArith serves GET /arith?op=...&a=...&b=...
func (s *Server) handleArith(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", "")
		return
	}

	q := r.URL.Query()
	op, a, b := q.Get("op"), q.Get("a"), q.Get("b")
	for _, p := range []struct{ name, value string }{{"op", op}, {"a", a}, {"b", b}} {
		if p.value == "" {
			s.writeErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("Missing '%s' parameter", p.name), "")
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()

	result, err := s.service.Arithmetic(ctx, op, a, b)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, ArithResponse{
		Op:       op,
		A:        result.A,
		B:        result.B,
		Result:   result.Text(),
		Duration: result.Duration.String(),
	})
}

// handleSequence serves GET /sequence?name=...&n=...&algo=...
func (s *Server) handleSequence(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", "")
		return
	}

	seq, n, algo, err := s.parseSequenceParams(r)
	if err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, err.Error(), "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()

	start := time.Now()
	result, err := s.service.Calculate(ctx, seq, algo, n)
	duration := time.Since(start)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, SequenceResponse{
		Name:      string(seq),
		N:         n,
		Algorithm: algo,
		Result:    result,
		Duration:  duration.String(),
	})
}

func (s *Server) parseSequenceParams(r *http.Request) (sequence.Sequence, uint64, string, error) {
	q := r.URL.Query()

	name := q.Get("name")
	if name == "" {
		return "", 0, "", paramError{"Missing 'name' parameter"}
	}
	seq, err := sequence.ParseSequence(name)
	if err != nil {
		return "", 0, "", paramError{err.Error()}
	}

	nStr := q.Get("n")
	if nStr == "" {
		return "", 0, "", paramError{"Missing 'n' parameter"}
	}
	n, err := strconv.ParseUint(nStr, 10, 64)
	if err != nil {
		return "", 0, "", paramError{"Invalid 'n' parameter: must be a non-negative integer"}
	}

	algo := q.Get("algo")
	if algo == "" {
		algo = defaultAlgorithms[seq]
	}
	return seq, n, algo, nil
}

// errorStatus maps a service error to an HTTP status and, for arithmetic
// failures, the error kind.
func errorStatus(err error) (int, string) {
	if kind, ok := biguint.KindOf(err); ok {
		return http.StatusBadRequest, kind.String()
	}

	var unknown *sequence.UnknownCalculatorError
	switch {
	case errors.Is(err, service.ErrMaxValueExceeded),
		errors.Is(err, service.ErrOperandTooLong),
		errors.Is(err, service.ErrUnknownOperation),
		errors.As(err, &unknown):
		return http.StatusBadRequest, ""
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, ""
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable, ""
	default:
		return http.StatusInternalServerError, ""
	}
}

func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	status, kind := errorStatus(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", err)
	}
	s.writeErrorResponse(w, status, err.Error(), kind)
}

func (s *Server) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encoding JSON response", err, logging.Int("status", statusCode))
	}
}

func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, message, kind string) {
	s.writeJSONResponse(w, statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
		Kind:    kind,
	})
}
