package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/naija-prop/intel-cli/internal/model"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("encode response", zap.Error(err))
	}
}

type errorBody struct {
	Error      string            `json:"error"`
	Candidates []model.Candidate `json:"candidates,omitempty"`
}

// writeError maps the error taxonomy onto HTTP statuses. Unresolved carries
// its ranked candidates so clients can render "did you mean".
func writeError(w http.ResponseWriter, err error) {
	body := errorBody{Error: err.Error()}

	var unresolved *model.UnresolvedError
	if errors.As(err, &unresolved) {
		body.Candidates = unresolved.Candidates
		writeJSON(w, http.StatusUnprocessableEntity, body)
		return
	}

	switch {
	case eris.Is(err, model.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, body)
	case eris.Is(err, model.ErrNotFound):
		writeJSON(w, http.StatusNotFound, body)
	case eris.Is(err, model.ErrData):
		writeJSON(w, http.StatusInternalServerError, body)
	default:
		zap.L().Error("request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return false
	}
	return true
}
