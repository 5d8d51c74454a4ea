package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathify/pathify-backend/internal/config"
)

// newAdminTestServer returns a test server with a configured admin credential
// and JWT service.
func newAdminTestServer(t *testing.T) *testServer {
	t.Helper()
	s := newTestServer()

	admin := &config.AdminConfig{BcryptCost: 10}
	hash, err := admin.HashPassword("s3cret-pass")
	require.NoError(t, err)
	admin.PasswordHash = hash

	s.admin = admin
	s.jwtService = NewJWTService(&config.JWTConfig{
		Secret:          "test-secret",
		ExpirationHours: 1,
	})
	return s
}

const validTemplateJSON = `{
	"career": "Data Scientist",
	"summary": "Curated path",
	"required_skills": ["Statistics", "Python"],
	"roadmap": {
		"Foundations": ["Learn Python", "Statistics basics"],
		"Projects": ["Kaggle competitions"]
	},
	"default_actions": ["Build a portfolio"]
}`

func TestAdminLogin(t *testing.T) {
	s := newAdminTestServer(t)

	w := postJSON(t, s.handleAdminLogin, "/api/admin/login", `{"password": "s3cret-pass"}`)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "admin", resp["role"])

	claims, err := s.jwtService.ValidateToken(resp["token"])
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)
}

func TestAdminLogin_WrongPassword(t *testing.T) {
	s := newAdminTestServer(t)

	w := postJSON(t, s.handleAdminLogin, "/api/admin/login", `{"password": "nope"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminLogin_MissingPassword(t *testing.T) {
	s := newAdminTestServer(t)

	w := postJSON(t, s.handleAdminLogin, "/api/admin/login", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminLogin_Disabled(t *testing.T) {
	s := newTestServer()

	w := postJSON(t, s.handleAdminLogin, "/api/admin/login", `{"password": "anything"}`)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestUpsertTemplate(t *testing.T) {
	s := newAdminTestServer(t)

	w := postJSON(t, s.handleUpsertTemplate, "/api/admin/templates", validTemplateJSON)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]bool
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp["ok"])

	stored, err := s.store.FindTemplate(context.Background(), "Data Scientist")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Curated path", stored.Summary)
	require.Len(t, stored.Stages, 2)
	assert.Equal(t, "Foundations", stored.Stages[0].Label)
	assert.Equal(t, "Projects", stored.Stages[1].Label)
}

func TestUpsertTemplate_LastWriteWins(t *testing.T) {
	s := newAdminTestServer(t)

	w := postJSON(t, s.handleUpsertTemplate, "/api/admin/templates", validTemplateJSON)
	assert.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, s.handleUpsertTemplate, "/api/admin/templates", `{
		"career": "Data Scientist",
		"summary": "Revised path",
		"required_skills": ["Statistics"],
		"roadmap": {"Start": ["Read"]},
		"default_actions": []
	}`)
	assert.Equal(t, http.StatusOK, w.Code)

	stored, err := s.store.FindTemplate(context.Background(), "Data Scientist")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Revised path", stored.Summary)
	require.Len(t, stored.Stages, 1)
}

func TestUpsertTemplate_SchemaViolations(t *testing.T) {
	s := newAdminTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing career", `{"required_skills": ["A"], "roadmap": {"S": []}, "default_actions": []}`},
		{"empty roadmap", `{"career": "X", "required_skills": ["A"], "roadmap": {}, "default_actions": []}`},
		{"skills wrong type", `{"career": "X", "required_skills": "A", "roadmap": {"S": []}, "default_actions": []}`},
		{"unknown property", `{"career": "X", "required_skills": ["A"], "roadmap": {"S": []}, "default_actions": [], "extra": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, s.handleUpsertTemplate, "/api/admin/templates", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "Template validation failed", resp["error"])
			assert.NotEmpty(t, resp["fields"])
		})
	}
}

func TestUpsertTemplate_StoreDown(t *testing.T) {
	s := newAdminTestServer(t)
	s.store.failing = true

	w := postJSON(t, s.handleUpsertTemplate, "/api/admin/templates", validTemplateJSON)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestListTemplates(t *testing.T) {
	s := newAdminTestServer(t)

	w := postJSON(t, s.handleUpsertTemplate, "/api/admin/templates", validTemplateJSON)
	require.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/templates", nil)
	rec := httptest.NewRecorder()

	s.handleListTemplates(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Data Scientist", resp[0]["career"])
	assert.Equal(t, "Curated path", resp[0]["summary"])
}

// TestAdminTemplates_EndToEnd drives the admin flow through the router so the
// bearer middleware is exercised.
func TestAdminTemplates_EndToEnd(t *testing.T) {
	s := newAdminTestServer(t)
	mux := s.routes()

	// No token
	req := httptest.NewRequest(http.MethodGet, "/api/admin/templates", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Login for a token
	w = postJSON(t, s.handleAdminLogin, "/api/admin/login", `{"password": "s3cret-pass"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var login map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))

	// Authenticated listing
	req = httptest.NewRequest(http.MethodGet, "/api/admin/templates", nil)
	req.Header.Set("Authorization", "Bearer "+login["token"])
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
