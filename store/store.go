// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"

	"github.com/questbridge/server/models"
)

var (
	ErrDuplicateEmail = errors.New("participant email already exists")
	ErrNotFound       = errors.New("record not found")
)

// Store is the persistence boundary for participants and engagement logs.
// Implementations must enforce email uniqueness at write time.
type Store interface {
	// CreateParticipant inserts p and sets p.ID. Returns ErrDuplicateEmail
	// without modifying the store when the email is taken.
	CreateParticipant(ctx context.Context, p *models.Participant) error
	ListParticipants(ctx context.Context) ([]models.Participant, error)
	// UpdateParticipant applies non-nil fields only.
	UpdateParticipant(ctx context.Context, id int64, status, ticketType *string) error
	DeleteParticipant(ctx context.Context, id int64) error

	CreateEngagementLog(ctx context.Context, l *models.EngagementLog) error
	ListEngagementLogs(ctx context.Context) ([]models.EngagementLogRow, error)
	Leaderboard(ctx context.Context) ([]models.LeaderboardRow, error)

	Ping(ctx context.Context) error
	Close() error
}
