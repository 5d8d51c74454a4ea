package server

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/pathify/pathify-backend/internal/schemas"
	"github.com/pathify/pathify-backend/internal/types"
)

// maxTemplateBodySize bounds admin template uploads.
const maxTemplateBodySize = 1 << 20 // 1 MB

// adminLoginRequest is the body for admin authentication.
type adminLoginRequest struct {
	Password string `json:"password"`
}

// handleAdminLogin exchanges the admin password for a bearer token.
func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	if !s.admin.Enabled() || s.jwtService == nil {
		err := &ErrAdminDisabled{}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	var req adminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Password == "" {
		s.errorResponse(w, http.StatusBadRequest, "Password is required")
		return
	}

	if !s.admin.VerifyPassword(req.Password) {
		err := &ErrInvalidCredentials{}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	token, err := s.jwtService.GenerateToken(RoleAdmin)
	if err != nil {
		log.Printf("Failed to generate admin token: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{
		"token": token,
		"role":  RoleAdmin,
	})
}

// handleUpsertTemplate validates and stores a curated career template.
// The raw body is checked against the template JSON Schema before decoding,
// so malformed stage maps are rejected with field-level detail.
func (s *Server) handleUpsertTemplate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxTemplateBodySize))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	if err := schemas.ValidateCareerTemplate(body); err != nil {
		var ve *schemas.ValidationError
		if errors.As(err, &ve) {
			fields := make([]map[string]string, 0, len(ve.Errors))
			for _, fe := range ve.Errors {
				fields = append(fields, map[string]string{
					"field":   fe.Field,
					"message": fe.Message,
				})
			}
			s.jsonResponse(w, http.StatusBadRequest, map[string]any{
				"error":  "Template validation failed",
				"fields": fields,
			})
			return
		}
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var tpl types.CareerTemplate
	if err := json.Unmarshal(body, &tpl); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.store.UpsertTemplate(r.Context(), &tpl); err != nil {
		log.Printf("Failed to upsert template for %q: %v", tpl.Career, err)
		s.errorResponse(w, http.StatusServiceUnavailable, "Storage unavailable")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]bool{"ok": true})
}

// handleListTemplates returns career and summary for every stored template.
func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := s.store.ListTemplates(r.Context())
	if err != nil {
		log.Printf("Failed to list templates: %v", err)
		s.errorResponse(w, http.StatusServiceUnavailable, "Storage unavailable")
		return
	}

	s.jsonResponse(w, http.StatusOK, templates)
}
