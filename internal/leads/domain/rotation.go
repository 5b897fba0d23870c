package domain

import "github.com/google/uuid"

// Admin is the slice of a user that assignment needs.
type Admin struct {
	ID       uuid.UUID
	FullName string
	Phone    string
}

// NextAssignee advances the rotation by one step. admins must be the
// active admins in stable order (by name); lastAssigned is the rotation
// cursor, nil when no assignment has happened yet. When the cursor does
// not point at any active admin (first assignment, or the last assignee
// was deactivated since), rotation restarts at the first admin.
//
// Returns false when admins is empty; callers treat that as a hard stop.
func NextAssignee(admins []Admin, lastAssigned *uuid.UUID) (Admin, bool) {
	if len(admins) == 0 {
		return Admin{}, false
	}

	lastIndex := -1
	if lastAssigned != nil {
		for i, admin := range admins {
			if admin.ID == *lastAssigned {
				lastIndex = i
				break
			}
		}
	}

	return admins[(lastIndex+1)%len(admins)], true
}
