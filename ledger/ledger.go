// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/questbridge/server/models"
	"github.com/questbridge/server/store"
)

// Recorder receives ledger events. The metrics package implements it.
type Recorder interface {
	ParticipantRegistered(ticketType string)
	DuplicateRegistration()
	EngagementLogged(activityType string, score int)
}

// Service is the participant registry, engagement logger and leaderboard
// aggregator over a single Store.
type Service struct {
	store    store.Store
	recorder Recorder
	now      func() time.Time
}

// NewService returns a Service backed by st. recorder may be nil.
func NewService(st store.Store, recorder Recorder) *Service {
	return &Service{store: st, recorder: recorder, now: time.Now}
}

type RegisterInput struct {
	Name         string
	Email        string
	Organization string
	Phone        string
	TicketType   string
}

type UpdateInput struct {
	Status     *string
	TicketType *string
}

type LogInput struct {
	ParticipantEmail string
	ActivityType     string
	Details          json.RawMessage
	Score            *int
}

// Register creates a pending participant. Values are stored as given; email
// uniqueness is left to the store.
func (s *Service) Register(ctx context.Context, in RegisterInput) (models.Participant, error) {
	if strings.TrimSpace(in.Name) == "" {
		return models.Participant{}, required("name")
	}
	if strings.TrimSpace(in.Email) == "" {
		return models.Participant{}, required("email")
	}

	ticketType := strings.TrimSpace(in.TicketType)
	if ticketType == "" {
		ticketType = models.TicketGeneral
	}

	p := models.Participant{
		Name:         in.Name,
		Email:        in.Email,
		Organization: in.Organization,
		Phone:        in.Phone,
		TicketType:   ticketType,
		Status:       models.StatusPending,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.store.CreateParticipant(ctx, &p); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			if s.recorder != nil {
				s.recorder.DuplicateRegistration()
			}
			return models.Participant{}, fmt.Errorf("register %q: %w", in.Email, ErrConflict)
		}
		return models.Participant{}, fmt.Errorf("register participant: %w", err)
	}

	if s.recorder != nil {
		s.recorder.ParticipantRegistered(p.TicketType)
	}
	slog.Info("participant registered", "participant_id", p.ID, "ticket_type", p.TicketType)

	return p, nil
}

// ListParticipants returns every participant, newest first.
func (s *Service) ListParticipants(ctx context.Context) ([]models.Participant, error) {
	participants, err := s.store.ListParticipants(ctx)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	return participants, nil
}

// UpdateParticipant changes status and/or ticket type. Nil fields keep their
// stored value, so repeating the same update is a no-op.
func (s *Service) UpdateParticipant(ctx context.Context, id int64, in UpdateInput) error {
	if in.Status != nil && !models.ValidStatus(*in.Status) {
		return &ValidationError{
			Field:  "status",
			Reason: "must be one of: pending, approved, checked_in, cancelled",
		}
	}
	if in.TicketType != nil && strings.TrimSpace(*in.TicketType) == "" {
		return &ValidationError{Field: "ticket_type", Reason: "must not be empty"}
	}

	if err := s.store.UpdateParticipant(ctx, id, in.Status, in.TicketType); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("update participant %d: %w", id, ErrNotFound)
		}
		return fmt.Errorf("update participant %d: %w", id, err)
	}

	slog.Info("participant updated", "participant_id", id)
	return nil
}

// DeleteParticipant removes a participant. Its engagement logs are kept.
func (s *Service) DeleteParticipant(ctx context.Context, id int64) error {
	if err := s.store.DeleteParticipant(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("delete participant %d: %w", id, ErrNotFound)
		}
		return fmt.Errorf("delete participant %d: %w", id, err)
	}

	slog.Info("participant deleted", "participant_id", id)
	return nil
}

// LogEngagement appends a scored activity. The email is not checked against
// registered participants.
func (s *Service) LogEngagement(ctx context.Context, in LogInput) (models.EngagementLog, error) {
	if strings.TrimSpace(in.ParticipantEmail) == "" {
		return models.EngagementLog{}, required("participant_email")
	}
	if strings.TrimSpace(in.ActivityType) == "" {
		return models.EngagementLog{}, required("activity_type")
	}

	details, err := normalizeDetails(in.Details)
	if err != nil {
		return models.EngagementLog{}, err
	}

	score := 0
	if in.Score != nil {
		score = *in.Score
	}

	l := models.EngagementLog{
		ParticipantEmail: in.ParticipantEmail,
		ActivityType:     in.ActivityType,
		Details:          details,
		Score:            score,
		Timestamp:        s.now().UTC(),
	}

	if err := s.store.CreateEngagementLog(ctx, &l); err != nil {
		return models.EngagementLog{}, fmt.Errorf("log engagement: %w", err)
	}

	if s.recorder != nil {
		s.recorder.EngagementLogged(l.ActivityType, l.Score)
	}
	slog.Info("engagement logged", "log_id", l.ID, "activity_type", l.ActivityType, "score", l.Score)

	return l, nil
}

// ListEngagement returns every log with the matching participant name, if any.
func (s *Service) ListEngagement(ctx context.Context) ([]models.EngagementLogRow, error) {
	rows, err := s.store.ListEngagementLogs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list engagement: %w", err)
	}
	return rows, nil
}

// Leaderboard sums scores per registered email, highest first.
func (s *Service) Leaderboard(ctx context.Context) ([]models.LeaderboardRow, error) {
	board, err := s.store.Leaderboard(ctx)
	if err != nil {
		return nil, fmt.Errorf("compute leaderboard: %w", err)
	}
	return board, nil
}

// normalizeDetails compacts the payload; absent and JSON null are stored as nil
func normalizeDetails(raw json.RawMessage) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return nil, &ValidationError{Field: "details", Reason: "must be valid JSON"}
	}
	return json.RawMessage(buf.Bytes()), nil
}
