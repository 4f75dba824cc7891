package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents the kinds of domain events this service emits
type EventType string

const (
	EventUserRegistered    EventType = "user.registered"
	EventEnrollmentCreated EventType = "enrollment.created"
	EventSubmissionCreated EventType = "submission.created"
)

const (
	eventSource  = "onlinecourse-service"
	eventVersion = "1.0"
)

// Event is the envelope for every published domain event
type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Event payloads

type UserRegisteredEvent struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
}

type EnrollmentCreatedEvent struct {
	EnrollmentID uint      `json:"enrollment_id"`
	UserID       uint      `json:"user_id"`
	CourseID     uint      `json:"course_id"`
	Mode         string    `json:"mode"`
	EnrolledAt   time.Time `json:"enrolled_at"`
}

type SubmissionCreatedEvent struct {
	SubmissionID uint   `json:"submission_id"`
	EnrollmentID uint   `json:"enrollment_id"`
	UserID       uint   `json:"user_id"`
	CourseID     uint   `json:"course_id"`
	ChoiceIDs    []uint `json:"choice_ids"`
}

// Event factory functions

func NewUserRegisteredEvent(userID uint, username string) *Event {
	return newEvent(EventUserRegistered, UserRegisteredEvent{
		UserID:   userID,
		Username: username,
	})
}

func NewEnrollmentCreatedEvent(enrollmentID, userID, courseID uint, mode string, enrolledAt time.Time) *Event {
	return newEvent(EventEnrollmentCreated, EnrollmentCreatedEvent{
		EnrollmentID: enrollmentID,
		UserID:       userID,
		CourseID:     courseID,
		Mode:         mode,
		EnrolledAt:   enrolledAt,
	})
}

func NewSubmissionCreatedEvent(submissionID, enrollmentID, userID, courseID uint, choiceIDs []uint) *Event {
	return newEvent(EventSubmissionCreated, SubmissionCreatedEvent{
		SubmissionID: submissionID,
		EnrollmentID: enrollmentID,
		UserID:       userID,
		CourseID:     courseID,
		ChoiceIDs:    choiceIDs,
	})
}

func newEvent(eventType EventType, data interface{}) *Event {
	return &Event{
		ID:        GenerateEventID(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
}

// GenerateEventID returns a random UUID string
func GenerateEventID() string {
	return uuid.NewString()
}
