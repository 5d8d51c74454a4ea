package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathify/pathify-backend/internal/types"
)

func TestSchemaEndpoint(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/schema", nil)
	w := httptest.NewRecorder()

	s.handleSchema(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string][]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{
		"user", "waitlistentry", "contactmessage", "assessmentsubmission", "careertemplate",
	}, resp["collections"])
}

func TestStudentOverview(t *testing.T) {
	s := newTestServer()
	for i := 0; i < 7; i++ {
		career := fmt.Sprintf("Career %d", i)
		s.store.templates[career] = &types.CareerTemplate{Career: career}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/student/asha@example.com/overview", nil)
	req.SetPathValue("email", "asha@example.com")
	w := httptest.NewRecorder()

	s.handleStudentOverview(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Saved   []map[string]string `json:"saved"`
		Tasks   []map[string]any    `json:"tasks"`
		Skills  []map[string]any    `json:"skills"`
		Courses []map[string]string `json:"courses"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Saved, 5) // capped
	assert.Len(t, resp.Tasks, 3)
	assert.Len(t, resp.Skills, 3)
	assert.Len(t, resp.Courses, 2)
}

func TestStudentOverview_MissingEmail(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/student//overview", nil)
	req.SetPathValue("email", "")
	w := httptest.NewRecorder()

	s.handleStudentOverview(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStudentOverview_StoreDown(t *testing.T) {
	s := newTestServer()
	s.store.failing = true

	req := httptest.NewRequest(http.MethodGet, "/api/student/asha@example.com/overview", nil)
	req.SetPathValue("email", "asha@example.com")
	w := httptest.NewRecorder()

	s.handleStudentOverview(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestParentOverview(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/parent/parent@example.com/overview", nil)
	req.SetPathValue("email", "parent@example.com")
	w := httptest.NewRecorder()

	s.handleParentOverview(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "parent@example.com", resp["student"])
	assert.Equal(t, []any{"Software Engineer", "Data Scientist"}, resp["recommended"])
	assert.NotNil(t, resp["progress"])
	assert.Len(t, resp["summaries"], 2)
}
