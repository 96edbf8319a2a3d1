package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/spektr-org/claimlens/engine"
)

var errBadBody = errors.New("malformed request body")

type chartBody struct {
	engine.ChartRequest
	Data engine.Dataset `json:"data"`
}

type tableBody struct {
	engine.TableRequest
	Data engine.Dataset `json:"data"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req engine.Request
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := engine.Execute(req, s.renderOptions(r)...)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	var body chartBody
	if err := decodeBody(w, r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	body.Kind = engine.ChartKind(chi.URLParam(r, "kind"))

	res, err := engine.Execute(engine.Request{
		Type:  "chart",
		Chart: &body.ChartRequest,
		Data:  body.Data,
	}, s.renderOptions(r)...)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res.Chart)
}

func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	var body tableBody
	if err := decodeBody(w, r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := engine.Execute(engine.Request{
		Type:  "table",
		Table: &body.TableRequest,
		Data:  body.Data,
	}, s.renderOptions(r)...)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res.Table)
}

func (s *Server) handleColumns(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, engine.DescribeColumns(s.renderOptions(r)...))
}

// ============================================================================
// ENCODING
// ============================================================================

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errBadBody, err)
	}
	return nil
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errBadBody),
		errors.Is(err, engine.ErrInvalidRequest),
		errors.Is(err, engine.ErrUnknownKind):
		status = http.StatusBadRequest
	}
	s.log.Warn().Err(err).Str("path", r.URL.Path).Int("status", status).Msg("request failed")
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
