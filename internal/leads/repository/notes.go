package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// LeadNote is an immutable annotation on a lead. Notes are only ever
// inserted; there is no update or delete path.
type LeadNote struct {
	ID         uuid.UUID
	LeadID     uuid.UUID
	AuthorID   *uuid.UUID // nil for system-generated notes
	AuthorName string
	Body       string
	CreatedAt  time.Time
}

type CreateLeadNoteParams struct {
	LeadID     uuid.UUID
	AuthorID   *uuid.UUID
	AuthorName string
	Body       string
}

func (r *Repository) CreateLeadNote(ctx context.Context, params CreateLeadNoteParams) (LeadNote, error) {
	var note LeadNote
	err := r.pool.QueryRow(ctx, `
		INSERT INTO lead_notes (lead_id, author_id, author_name, body)
		VALUES ($1, $2, $3, $4)
		RETURNING id, lead_id, author_id, author_name, body, created_at
	`, params.LeadID, params.AuthorID, params.AuthorName, params.Body).Scan(
		&note.ID, &note.LeadID, &note.AuthorID, &note.AuthorName, &note.Body, &note.CreatedAt,
	)
	return note, err
}

// ListLeadNotes returns a lead's notes in creation order, oldest first.
func (r *Repository) ListLeadNotes(ctx context.Context, leadID uuid.UUID) ([]LeadNote, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, lead_id, author_id, author_name, body, created_at
		FROM lead_notes
		WHERE lead_id = $1
		ORDER BY created_at ASC
	`, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := make([]LeadNote, 0)
	for rows.Next() {
		var note LeadNote
		if err := rows.Scan(&note.ID, &note.LeadID, &note.AuthorID, &note.AuthorName, &note.Body, &note.CreatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}
