// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/questbridge/server/models"
)

const (
	participantsFile = "participants.json"
	engagementFile   = "engagement_logs.json"
)

// FileStore keeps each collection in a JSON array file and rewrites the whole
// file on every change. The mutex only serializes writers inside this process;
// two processes sharing a directory will lose updates.
type FileStore struct {
	dir string
	mu  sync.Mutex
	now func() time.Time
}

// OpenFile prepares dir for use as a flat-file store.
func OpenFile(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New("data directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{dir: dir, now: time.Now}, nil
}

func (s *FileStore) Ping(ctx context.Context) error {
	_, err := os.Stat(s.dir)
	return err
}

func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) CreateParticipant(ctx context.Context, p *models.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var participants []models.Participant
	if err := s.load(participantsFile, &participants); err != nil {
		return err
	}

	var lastID int64
	for _, existing := range participants {
		if existing.Email == p.Email {
			return ErrDuplicateEmail
		}
		lastID = max(lastID, existing.ID)
	}

	p.ID = s.nextID(lastID)
	participants = append(participants, *p)

	return s.save(participantsFile, participants)
}

func (s *FileStore) ListParticipants(ctx context.Context) ([]models.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	participants := []models.Participant{}
	if err := s.load(participantsFile, &participants); err != nil {
		return nil, err
	}

	sort.SliceStable(participants, func(i, j int) bool {
		a, b := participants[i], participants[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})

	return participants, nil
}

func (s *FileStore) UpdateParticipant(ctx context.Context, id int64, status, ticketType *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var participants []models.Participant
	if err := s.load(participantsFile, &participants); err != nil {
		return err
	}

	for i := range participants {
		if participants[i].ID != id {
			continue
		}
		if status != nil {
			participants[i].Status = *status
		}
		if ticketType != nil {
			participants[i].TicketType = *ticketType
		}
		return s.save(participantsFile, participants)
	}

	return ErrNotFound
}

func (s *FileStore) DeleteParticipant(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var participants []models.Participant
	if err := s.load(participantsFile, &participants); err != nil {
		return err
	}

	for i := range participants {
		if participants[i].ID == id {
			participants = append(participants[:i], participants[i+1:]...)
			return s.save(participantsFile, participants)
		}
	}

	return ErrNotFound
}

func (s *FileStore) CreateEngagementLog(ctx context.Context, l *models.EngagementLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var logs []models.EngagementLog
	if err := s.load(engagementFile, &logs); err != nil {
		return err
	}

	var lastID int64
	for _, existing := range logs {
		lastID = max(lastID, existing.ID)
	}

	l.ID = s.nextID(lastID)
	logs = append(logs, *l)

	return s.save(engagementFile, logs)
}

func (s *FileStore) ListEngagementLogs(ctx context.Context) ([]models.EngagementLogRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	names, err := s.namesByEmail()
	if err != nil {
		return nil, err
	}

	var logs []models.EngagementLog
	if err := s.load(engagementFile, &logs); err != nil {
		return nil, err
	}

	rows := make([]models.EngagementLogRow, 0, len(logs))
	for _, l := range logs {
		row := models.EngagementLogRow{EngagementLog: l}
		if name, ok := names[l.ParticipantEmail]; ok {
			row.ParticipantName = &name
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.After(b.Timestamp)
		}
		return a.ID > b.ID
	})

	return rows, nil
}

func (s *FileStore) Leaderboard(ctx context.Context) ([]models.LeaderboardRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	names, err := s.namesByEmail()
	if err != nil {
		return nil, err
	}

	var logs []models.EngagementLog
	if err := s.load(engagementFile, &logs); err != nil {
		return nil, err
	}

	totals := map[string]*models.LeaderboardRow{}
	for _, l := range logs {
		name, ok := names[l.ParticipantEmail]
		if !ok {
			continue
		}
		row, ok := totals[l.ParticipantEmail]
		if !ok {
			row = &models.LeaderboardRow{ParticipantName: name, ParticipantEmail: l.ParticipantEmail}
			totals[l.ParticipantEmail] = row
		}
		row.TotalScore += int64(l.Score)
		row.ActivitiesCompleted++
	}

	board := make([]models.LeaderboardRow, 0, len(totals))
	for _, row := range totals {
		board = append(board, *row)
	}

	sort.Slice(board, func(i, j int) bool {
		if board[i].TotalScore != board[j].TotalScore {
			return board[i].TotalScore > board[j].TotalScore
		}
		return board[i].ParticipantEmail < board[j].ParticipantEmail
	})

	return board, nil
}

func (s *FileStore) namesByEmail() (map[string]string, error) {
	var participants []models.Participant
	if err := s.load(participantsFile, &participants); err != nil {
		return nil, err
	}

	names := make(map[string]string, len(participants))
	for _, p := range participants {
		names[p.Email] = p.Name
	}
	return names, nil
}

// nextID uses epoch milliseconds, bumped past lastID when the clock collides
func (s *FileStore) nextID(lastID int64) int64 {
	return max(s.now().UnixMilli(), lastID+1)
}

// load reads a collection. A missing file is an empty collection; a malformed
// one is logged and treated as empty.
func (s *FileStore) load(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		slog.Warn("unreadable data file treated as empty; next write replaces it",
			"file", filepath.Join(s.dir, name),
			"error", err,
		)
		return nil
	}

	if logs, ok := v.(*[]models.EngagementLog); ok {
		for i := range *logs {
			if bytes.Equal((*logs)[i].Details, []byte("null")) {
				(*logs)[i].Details = nil
			}
		}
	}

	return nil
}

// save writes a temp file and renames it over the collection
func (s *FileStore) save(name string, v any) error {
	// Marshal, not MarshalIndent: indenting would rewrite the raw details payload
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", name, err)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("replace %s: %w", name, err)
	}

	return nil
}

var _ Store = (*FileStore)(nil)
