// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - RegisterParticipantRequest: name, email, organization, phone, ticket_type
  - UpdateParticipantRequest: status, ticket_type (both optional)
  - LogEngagementRequest: participant_email, activity_type, details, score

# Response Types

Types for JSON responses:

  - CreatedResponse: message, id
  - MessageResponse: message
  - StatusResponse: status, message
  - ErrorResponse: error, message

# Domain Types

  - Participant: a registered attendee, unique by email
  - EngagementLog: a scored activity event keyed by participant email
  - EngagementLogRow: a log joined to the participant name (nil when orphaned)
  - LeaderboardRow: per-email score totals, recomputed on every read

# Constants

Participant status values:

	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusCheckedIn = "checked_in"
	StatusCancelled = "cancelled"

Ticket types (open set, default general):

	TicketGeneral, TicketVIP, TicketSpeaker, TicketSponsor
*/
package models
