// Package types provides type definitions for structured data used throughout the pathify backend.
package types

import (
	"github.com/go-playground/validator/v10"
)

// WaitlistEntry represents a waitlist signup.
type WaitlistEntry struct {
	Name      string `json:"name" validate:"required,min=1"`
	Email     string `json:"email" validate:"required,email"`
	Instagram string `json:"instagram,omitempty"`
	Source    string `json:"source,omitempty"`
}

// ContactMessage represents a contact form submission.
type ContactMessage struct {
	Name    string `json:"name" validate:"required,min=1"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,min=1"`
}

// User represents a registered user profile.
type User struct {
	Name      string `json:"name" validate:"required,min=1"`
	Email     string `json:"email" validate:"required,email"`
	Role      string `json:"role,omitempty" validate:"omitempty,oneof=user student parent admin"`
	Instagram string `json:"instagram,omitempty"`
}

// AssessmentSubmission represents a self-assessment questionnaire.
// PersonalityAnswers are integers 1-5; the expected length is 10-15 but only
// presence is enforced here, the scoring engine tolerates any non-nil shape.
type AssessmentSubmission struct {
	AcademicPerformance string   `json:"academic_performance" validate:"required"`
	Interests           []string `json:"interests" validate:"required"`
	Skills              []string `json:"skills" validate:"required"`
	Preferences         []string `json:"preferences"`
	PersonalityAnswers  []int    `json:"personality_answers" validate:"required,dive,min=1,max=5"`
	UploadedDocs        []string `json:"uploaded_docs,omitempty"`
	Language            string   `json:"language,omitempty" validate:"omitempty,oneof=en hi"`
}

// Validate validates the WaitlistEntry using the validator.
func (e *WaitlistEntry) Validate() error {
	validate := validator.New()
	return validate.Struct(e)
}

// Validate validates the ContactMessage using the validator.
func (m *ContactMessage) Validate() error {
	validate := validator.New()
	return validate.Struct(m)
}

// Validate validates the User using the validator.
func (u *User) Validate() error {
	validate := validator.New()
	return validate.Struct(u)
}

// Validate validates the AssessmentSubmission using the validator.
func (s *AssessmentSubmission) Validate() error {
	validate := validator.New()
	return validate.Struct(s)
}
