// File path: internal/api/analyze_handler.go
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/outreachready/backend/internal/common"
	"github.com/outreachready/backend/internal/outreach"
)

type analyzeRequest struct {
	URL string `json:"url"`
}

// handleAnalyzeWebsite runs the standalone extractor: unlike enrichment
// inside the generation pipeline, a fetch failure here is the caller's
// problem and maps to 400.
func (s *Server) handleAnalyzeWebsite(w http.ResponseWriter, r *http.Request) {
	if _, err := userID(r); err != nil {
		writeError(w, http.StatusUnauthorized, err)
		return
	}
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	analysis, err := s.analyzer.AnalyzeWebsite(r.Context(), req.URL)
	if err != nil {
		var verr *outreach.ValidationError
		var berr *outreach.BackendError
		switch {
		case errors.As(err, &verr):
			writeError(w, http.StatusBadRequest, err)
		case errors.As(err, &berr):
			writeError(w, http.StatusBadGateway, err)
		default:
			// Unreachable or unfetchable site.
			writeError(w, http.StatusBadRequest, err)
		}
		return
	}
	common.Logger().Info("api: website analyzed", "url", req.URL, "products", len(analysis.Products))
	writeJSON(w, http.StatusOK, map[string]interface{}{"analysis": analysis})
}
