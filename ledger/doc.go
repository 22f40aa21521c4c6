// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ledger implements the participant and engagement ledger.

A Service is built once at startup over a store.Store and shared by all
handlers:

	svc := ledger.NewService(st, metrics)

# Errors

Operations return errors from a small taxonomy that handlers map to status codes:

  - *ValidationError: missing or malformed input (400)
  - ErrConflict: email already registered (409)
  - ErrNotFound: update or delete target absent (404)
  - anything else: storage failure (500)

Use errors.Is / IsValidation; the returned errors wrap context.

# Engagement

Logs are keyed by email and never checked against participants. The
leaderboard only counts emails that have a participant, while ListEngagement
returns every log with a nil name for the orphans.
*/
package ledger
