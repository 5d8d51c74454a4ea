package server

import (
	"encoding/json"
	"log"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/pathify/pathify-backend/internal/catalog"
	"github.com/pathify/pathify-backend/internal/rendering"
	"github.com/pathify/pathify-backend/internal/roadmap"
	"github.com/pathify/pathify-backend/internal/scoring"
	"github.com/pathify/pathify-backend/internal/types"
)

// Collection names in the document store.
const (
	collectionWaitlist   = "waitlistentry"
	collectionContact    = "contactmessage"
	collectionAssessment = "assessmentsubmission"
)

// recentNamesWindow bounds how many signups the stats endpoint inspects.
const recentNamesWindow = 50

// handleDiagnostics reports the state of the backend's collaborators.
func (s *Server) handleDiagnostics(w http.ResponseWriter, r *http.Request) {
	response := map[string]any{
		"backend":  "running",
		"database": "connected",
		"sheets":   "not configured",
	}

	if err := s.store.Ping(r.Context()); err != nil {
		response["database"] = "not available"
	} else if collections, err := s.store.ListCollections(r.Context()); err == nil {
		response["collections"] = collections
	}

	if s.sheet != nil && s.sheet.Enabled() {
		response["sheets"] = "enabled"
	}

	s.jsonResponse(w, http.StatusOK, response)
}

// handleAddWaitlist persists a waitlist signup and mirrors it to the
// spreadsheet. The mirror runs only after the store accepted the entry so a
// rejected signup never leaves a stray spreadsheet row; a failed mirror still
// succeeds with "sheet": false.
func (s *Server) handleAddWaitlist(w http.ResponseWriter, r *http.Request) {
	var entry types.WaitlistEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := entry.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	docID, err := s.store.CreateDocument(r.Context(), collectionWaitlist, &entry)
	if err != nil {
		log.Printf("Failed to persist waitlist entry: %v", err)
		s.errorResponse(w, http.StatusServiceUnavailable, "Storage unavailable")
		return
	}

	appended := false
	if s.sheet != nil {
		appended = s.sheet.AppendWaitlist(r.Context(), &entry)
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"id":    docID.String(),
		"sheet": appended,
	})
}

// handleWaitlistStats returns the signup total and the ten most recent names,
// newest first. The list and count queries are independent and run
// concurrently; a failed count falls back to the listed window size.
func (s *Server) handleWaitlistStats(w http.ResponseWriter, r *http.Request) {
	var (
		docs     []json.RawMessage
		total    int
		countErr error
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		docs, err = s.store.ListDocuments(ctx, collectionWaitlist, recentNamesWindow)
		return err
	})
	g.Go(func() error {
		total, countErr = s.store.CountDocuments(ctx, collectionWaitlist)
		return nil
	})
	if err := g.Wait(); err != nil {
		log.Printf("Failed to list waitlist entries: %v", err)
		s.errorResponse(w, http.StatusServiceUnavailable, "Storage unavailable")
		return
	}
	if countErr != nil {
		total = len(docs)
	}

	names := make([]string, 0, len(docs))
	for _, doc := range docs {
		var entry types.WaitlistEntry
		if err := json.Unmarshal(doc, &entry); err != nil {
			continue
		}
		names = append(names, entry.Name)
	}

	// Last ten, reversed so the newest signup comes first.
	if len(names) > 10 {
		names = names[len(names)-10:]
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"total":  total,
		"recent": names,
	})
}

// handleContact persists a contact message, with a best-effort mirror to the
// spreadsheet's Contact worksheet.
func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	var msg types.ContactMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := msg.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	docID, err := s.store.CreateDocument(r.Context(), collectionContact, &msg)
	if err != nil {
		log.Printf("Failed to persist contact message: %v", err)
		s.errorResponse(w, http.StatusServiceUnavailable, "Storage unavailable")
		return
	}

	if s.sheet != nil {
		s.sheet.AppendContact(r.Context(), &msg)
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"id": docID.String()})
}

// handleAssessment scores a submission, persists it, and returns the ranked
// matches with a preview summary.
func (s *Server) handleAssessment(w http.ResponseWriter, r *http.Request) {
	var sub types.AssessmentSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := sub.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	matches := scoring.Score(&sub)
	summary := scoring.Summarize(matches, sub.Language)

	// Optional Gemini localization of the overview. The deterministic
	// summary stands when the client is absent or errors.
	if s.llm != nil && len(matches) > 0 {
		overview, err := s.llm.GenerateOverview(r.Context(), sub.Language, matches[0].Career)
		if err != nil {
			log.Printf("Overview generation failed, using default: %v", err)
		} else if overview != "" {
			summary.Overview = overview
		}
	}

	if _, err := s.store.CreateDocument(r.Context(), collectionAssessment, &sub); err != nil {
		log.Printf("Failed to persist assessment submission: %v", err)
		s.errorResponse(w, http.StatusServiceUnavailable, "Storage unavailable")
		return
	}

	s.jsonResponse(w, http.StatusOK, types.AssessmentResult{
		Matches:        matches,
		PreviewSummary: summary,
	})
}

// roadmapRequest is the body for roadmap selection and PDF rendering.
// Roadmap/Summary are only honored by the PDF endpoint, which renders
// caller-supplied stage content when present.
type roadmapRequest struct {
	Career   string          `json:"career"`
	Language string          `json:"language"`
	Summary  string          `json:"summary"`
	Roadmap  types.StageList `json:"roadmap"`
}

// handleRoadmap returns the roadmap for the requested career.
func (s *Server) handleRoadmap(w http.ResponseWriter, r *http.Request) {
	var req roadmapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rm, err := roadmap.Generate(r.Context(), req.Career, s.store)
	if err != nil {
		log.Printf("Failed to generate roadmap: %v", err)
		s.errorResponse(w, http.StatusServiceUnavailable, "Storage unavailable")
		return
	}

	s.jsonResponse(w, http.StatusOK, rm)
}

// handleRoadmapPDF renders a roadmap as a PDF attachment. The caller may
// supply stage content directly; otherwise the stored or synthesized roadmap
// for the career is rendered.
func (s *Server) handleRoadmapPDF(w http.ResponseWriter, r *http.Request) {
	var req roadmapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	career := req.Career
	if career == "" {
		career = catalog.DefaultCareer
	}
	language := req.Language
	if language == "" {
		language = "en"
	}

	var rm *types.Roadmap
	if len(req.Roadmap) > 0 {
		rm = &types.Roadmap{
			Career:  career,
			Summary: req.Summary,
			Stages:  req.Roadmap,
		}
	} else {
		generated, err := roadmap.Generate(r.Context(), career, s.store)
		if err != nil {
			log.Printf("Failed to generate roadmap for PDF: %v", err)
			s.errorResponse(w, http.StatusServiceUnavailable, "Storage unavailable")
			return
		}
		rm = generated
	}

	pdf, err := s.renderPDF(r.Context(), rm, language)
	if err != nil {
		log.Printf("PDF rendering failed: %v", err)
		s.errorResponse(w, http.StatusServiceUnavailable, "PDF engine not available on server")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename="+rendering.AttachmentFilename(career))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		log.Printf("Failed to write PDF response: %v", err)
	}
}
