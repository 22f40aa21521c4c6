// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package export

import "github.com/questbridge/server/models"

// Column orders of the three downloads
var (
	ParticipantFields = []string{"id", "name", "email", "organization", "phone", "ticket_type", "status", "created_at"}
	EngagementFields  = []string{"id", "participant_name", "participant_email", "activity_type", "details", "score", "timestamp"}
	LeaderboardFields = []string{"participant_name", "participant_email", "total_score", "activities_completed"}
)

func ParticipantRecords(participants []models.Participant) []Record {
	records := make([]Record, 0, len(participants))
	for _, p := range participants {
		records = append(records, Record{
			"id":           p.ID,
			"name":         p.Name,
			"email":        p.Email,
			"organization": p.Organization,
			"phone":        p.Phone,
			"ticket_type":  p.TicketType,
			"status":       p.Status,
			"created_at":   p.CreatedAt,
		})
	}
	return records
}

// EngagementRecords leaves participant_name empty for orphaned logs.
func EngagementRecords(rows []models.EngagementLogRow) []Record {
	records := make([]Record, 0, len(rows))
	for _, r := range rows {
		records = append(records, Record{
			"id":                r.ID,
			"participant_name":  r.ParticipantName,
			"participant_email": r.ParticipantEmail,
			"activity_type":     r.ActivityType,
			"details":           r.Details,
			"score":             r.Score,
			"timestamp":         r.Timestamp,
		})
	}
	return records
}

func LeaderboardRecords(board []models.LeaderboardRow) []Record {
	records := make([]Record, 0, len(board))
	for _, r := range board {
		records = append(records, Record{
			"participant_name":     r.ParticipantName,
			"participant_email":    r.ParticipantEmail,
			"total_score":          r.TotalScore,
			"activities_completed": r.ActivitiesCompleted,
		})
	}
	return records
}
