package models

import (
	"encoding/json"
	"time"
)

// Participant status constants
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusCheckedIn = "checked_in"
	StatusCancelled = "cancelled"
)

// Ticket type constants. The set is open; these are the values the UI offers.
const (
	TicketGeneral = "general"
	TicketVIP     = "vip"
	TicketSpeaker = "speaker"
	TicketSponsor = "sponsor"
)

// Activity types logged by the built-in games
const (
	ActivityQuizGame    = "Quiz Game"
	ActivityConnectDots = "Connect Dots"
)

// ValidStatus reports whether s is one of the participant lifecycle states.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusCheckedIn, StatusCancelled:
		return true
	}
	return false
}

// Request types

type RegisterParticipantRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Organization string `json:"organization"`
	Phone        string `json:"phone"`
	TicketType   string `json:"ticket_type"`
}

// nil fields are left unchanged
type UpdateParticipantRequest struct {
	Status     *string `json:"status"`
	TicketType *string `json:"ticket_type"`
}

type LogEngagementRequest struct {
	ParticipantEmail string          `json:"participant_email"`
	ActivityType     string          `json:"activity_type"`
	Details          json.RawMessage `json:"details"`
	Score            *int            `json:"score"`
}

// Response types

type CreatedResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Domain types

type Participant struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Organization string    `json:"organization"`
	Phone        string    `json:"phone"`
	TicketType   string    `json:"ticket_type"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

type EngagementLog struct {
	ID               int64           `json:"id"`
	ParticipantEmail string          `json:"participant_email"`
	ActivityType     string          `json:"activity_type"`
	Details          json.RawMessage `json:"details"`
	Score            int             `json:"score"`
	Timestamp        time.Time       `json:"timestamp"`
}

// EngagementLogRow is a log joined to the participant name.
// ParticipantName is nil for logs whose email matches no participant.
type EngagementLogRow struct {
	EngagementLog
	ParticipantName *string `json:"participant_name"`
}

type LeaderboardRow struct {
	ParticipantName     string `json:"participant_name"`
	ParticipantEmail    string `json:"participant_email"`
	TotalScore          int64  `json:"total_score"`
	ActivitiesCompleted int64  `json:"activities_completed"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
