// File path: internal/api/contacts_handler.go
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	chi "github.com/go-chi/chi/v5"

	"github.com/outreachready/backend/internal/common"
	"github.com/outreachready/backend/internal/sqlite"
)

type createContactRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Company     string `json:"company"`
	Title       string `json:"title"`
	Website     string `json:"website"`
	LinkedInURL string `json:"linkedin_url"`
	Notes       string `json:"notes"`
	FunnelStage string `json:"funnel_stage"`
}

func (s *Server) handleCreateContact(w http.ResponseWriter, r *http.Request) {
	user, err := userID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err)
		return
	}
	var req createContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("name required"))
		return
	}
	contact := &sqlite.Contact{
		UserID:      user,
		Name:        strings.TrimSpace(req.Name),
		Email:       strings.TrimSpace(req.Email),
		Company:     strings.TrimSpace(req.Company),
		Title:       strings.TrimSpace(req.Title),
		Website:     strings.TrimSpace(req.Website),
		LinkedInURL: strings.TrimSpace(req.LinkedInURL),
		Notes:       req.Notes,
		FunnelStage: strings.TrimSpace(req.FunnelStage),
	}
	if err := s.store.CreateContact(r.Context(), contact); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	common.Logger().Info("api: contact created", "user", user, "contact", contact.ID)
	writeJSON(w, http.StatusCreated, contact)
}

func (s *Server) handleListContacts(w http.ResponseWriter, r *http.Request) {
	user, err := userID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err)
		return
	}
	contacts, err := s.store.ListContacts(r.Context(), user)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"contacts": contacts})
}

type createCommunicationRequest struct {
	Channel   string `json:"channel"`
	Direction string `json:"direction"`
	Content   string `json:"content"`
}

func (s *Server) handleCreateCommunication(w http.ResponseWriter, r *http.Request) {
	user, err := userID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err)
		return
	}
	contactID := chi.URLParam(r, "id")
	if _, err := s.store.GetContact(r.Context(), contactID, user); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	var req createCommunicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("content required"))
		return
	}
	comm := &sqlite.Communication{
		ContactID: contactID,
		UserID:    user,
		Channel:   strings.TrimSpace(req.Channel),
		Direction: strings.TrimSpace(req.Direction),
		Content:   req.Content,
	}
	if err := s.store.InsertCommunication(r.Context(), comm); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusCreated, comm)
}

func (s *Server) handleListCommunications(w http.ResponseWriter, r *http.Request) {
	user, err := userID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err)
		return
	}
	contactID := chi.URLParam(r, "id")
	comms, err := s.store.RecentCommunications(r.Context(), contactID, user, 100)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"communications": comms})
}
