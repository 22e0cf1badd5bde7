// File path: internal/api/generate_handler.go
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/outreachready/backend/internal/common"
	"github.com/outreachready/backend/internal/outreach"
)

type generateRequest struct {
	ContactID      string                   `json:"contact_id"`
	Contact        *outreach.ContactProfile `json:"contact"`
	Seller         outreach.SellerProfile   `json:"seller"`
	Communications string                   `json:"communications"`
	Channel        string                   `json:"channel"`
	Objective      string                   `json:"objective"`
	Product        string                   `json:"product"`
	Tone           string                   `json:"tone"`
}

const historyLimit = 20

func (s *Server) handleGenerateMessages(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	ctx := r.Context()
	user, err := userID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err)
		return
	}
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("api: generate decode failed", "error", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}

	genReq := outreach.GenerationRequest{
		UserID:         user,
		ContactID:      req.ContactID,
		Seller:         req.Seller,
		Communications: req.Communications,
		Channel:        req.Channel,
		Objective:      req.Objective,
		Tone:           req.Tone,
		Product:        req.Product,
	}
	if req.Contact != nil {
		genReq.Contact = *req.Contact
	}
	if req.ContactID != "" && req.Contact == nil {
		if err := s.loadContactContext(ctx, user, &genReq); err != nil {
			writeError(w, statusFor(err), err)
			return
		}
	}

	logger.Info("api: generation requested",
		"user", user, "contact", genReq.ContactID, "channel", genReq.Channel, "objective", genReq.Objective)
	result, err := s.service.GenerateMessages(ctx, genReq)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// loadContactContext fills the contact profile and, when the request carries
// no inline history, the recent communication blob from the store.
func (s *Server) loadContactContext(ctx context.Context, user string, genReq *outreach.GenerationRequest) error {
	contact, err := s.store.GetContact(ctx, genReq.ContactID, user)
	if err != nil {
		return err
	}
	genReq.Contact = outreach.ContactProfile{
		Name:        contact.Name,
		Title:       contact.Title,
		Company:     contact.Company,
		Website:     contact.Website,
		LinkedInURL: contact.LinkedInURL,
		Notes:       contact.Notes,
	}
	if strings.TrimSpace(genReq.Communications) != "" {
		return nil
	}
	comms, err := s.store.RecentCommunications(ctx, genReq.ContactID, user, historyLimit)
	if err != nil {
		return err
	}
	lines := make([]string, 0, len(comms))
	for _, comm := range comms {
		lines = append(lines, fmt.Sprintf("%s [%s] %s: %s",
			comm.SentAt.Format("2006-01-02"), comm.Channel, comm.Direction, comm.Content))
	}
	genReq.Communications = strings.Join(lines, "\n")
	return nil
}

func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	user, err := userID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err)
		return
	}
	messages, err := s.store.ListMessages(r.Context(), user, 50)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"messages": messages})
}
