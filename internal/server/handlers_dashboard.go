package server

import (
	"log"
	"net/http"
)

// maxSavedCareers bounds how many saved templates the student dashboard shows.
const maxSavedCareers = 5

// handleSchema lists the collection names tools can introspect.
func (s *Server) handleSchema(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string][]string{
		"collections": {
			"user", "waitlistentry", "contactmessage", "assessmentsubmission", "careertemplate",
		},
	})
}

// handleStudentOverview returns the student dashboard: saved careers from the
// template store plus starter tasks, skill levels, and course suggestions.
// Tasks and skills are placeholder content until per-student tracking exists.
func (s *Server) handleStudentOverview(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("email")
	if email == "" {
		s.errorResponse(w, http.StatusBadRequest, "Email is required")
		return
	}

	templates, err := s.store.ListTemplates(r.Context())
	if err != nil {
		log.Printf("Failed to list templates for student overview: %v", err)
		s.errorResponse(w, http.StatusServiceUnavailable, "Storage unavailable")
		return
	}

	saved := make([]map[string]string, 0, maxSavedCareers)
	for _, t := range templates {
		if len(saved) == maxSavedCareers {
			break
		}
		saved = append(saved, map[string]string{"career": t.Career})
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"saved": saved,
		"tasks": []map[string]any{
			{"title": "Complete DSA 50", "done": false},
			{"title": "Publish 1 project", "done": true},
			{"title": "Apply to 3 internships", "done": false},
		},
		"skills": []map[string]any{
			{"name": "Python", "level": 80},
			{"name": "DSA", "level": 60},
			{"name": "System Design", "level": 30},
		},
		"courses": []map[string]string{
			{"title": "Python for Everyone", "provider": "Coursera"},
			{"title": "Algo & DS", "provider": "Stanford"},
		},
	})
}

// handleParentOverview returns the parent dashboard for a student.
func (s *Server) handleParentOverview(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("email")
	if email == "" {
		s.errorResponse(w, http.StatusBadRequest, "Email is required")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"student":     email,
		"recommended": []string{"Software Engineer", "Data Scientist"},
		"progress": map[string]any{
			"overall":   62,
			"last_week": "+6%",
		},
		"summaries": []map[string]string{
			{"career": "Software Engineer", "summary": "Strong fit with growing skills."},
			{"career": "Data Scientist", "summary": "Good analytical base; build statistics."},
		},
	})
}
