package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"crm_leads_backend/internal/leads/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("lead not found")
	// ErrNoActiveAdmin is returned by CreateInquiry when the active-admin
	// set is empty at assignment time.
	ErrNoActiveAdmin = errors.New("no active admins available for lead assignment")
)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type Lead struct {
	ID              uuid.UUID
	ContactName     string
	ContactPhone    string
	Source          string
	ProductID       *uuid.UUID
	PackageID       *uuid.UUID
	Price           int64
	AssignedAdminID uuid.UUID
	Stage           string
	ClosingDate     *time.Time
	PaymentMethod   *string
	DownPayment     int64
	Status          string
	FollowUpStatus  string
	ShippingStatus  string
	NextFollowUp    *time.Time
	NextContactDate *time.Time
	ObstacleID      *uuid.UUID
	PromoID         *uuid.UUID
	InquiryText     string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

const leadColumns = `id, contact_name, contact_phone, source, product_id, package_id, price,
	assigned_admin_id, stage, closing_date, payment_method, down_payment, status,
	follow_up_status, shipping_status, next_follow_up, next_contact_date,
	obstacle_id, promo_id, inquiry_text, created_at, updated_at`

func scanLead(row pgx.Row) (Lead, error) {
	var lead Lead
	err := row.Scan(
		&lead.ID, &lead.ContactName, &lead.ContactPhone, &lead.Source,
		&lead.ProductID, &lead.PackageID, &lead.Price,
		&lead.AssignedAdminID, &lead.Stage, &lead.ClosingDate,
		&lead.PaymentMethod, &lead.DownPayment, &lead.Status,
		&lead.FollowUpStatus, &lead.ShippingStatus,
		&lead.NextFollowUp, &lead.NextContactDate,
		&lead.ObstacleID, &lead.PromoID, &lead.InquiryText,
		&lead.CreatedAt, &lead.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Lead{}, ErrNotFound
	}
	return lead, err
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Lead, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)
	return scanLead(row)
}

// ListFilter narrows List results. Zero values mean "no filter".
type ListFilter struct {
	Stage           string
	AssignedAdminID *uuid.UUID
	Search          string
}

func (r *Repository) List(ctx context.Context, filter ListFilter) ([]Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads`
	conditions := make([]string, 0, 3)
	args := make([]interface{}, 0, 3)

	if filter.Stage != "" {
		args = append(args, filter.Stage)
		conditions = append(conditions, fmt.Sprintf("stage = $%d", len(args)))
	}
	if filter.AssignedAdminID != nil {
		args = append(args, *filter.AssignedAdminID)
		conditions = append(conditions, fmt.Sprintf("assigned_admin_id = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conditions = append(conditions, fmt.Sprintf("(contact_name ILIKE $%d OR contact_phone ILIKE $%d)", len(args), len(args)))
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := make([]Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

// FindByPhoneDigits returns the oldest lead whose phone number, reduced
// to digits, equals the given digit string. Used for duplicate detection.
func (r *Repository) FindByPhoneDigits(ctx context.Context, digits string) (*Lead, error) {
	if digits == "" {
		return nil, nil
	}

	row := r.pool.QueryRow(ctx, `
		SELECT `+leadColumns+` FROM leads
		WHERE regexp_replace(contact_phone, '[^0-9]', '', 'g') = $1
		ORDER BY created_at ASC
		LIMIT 1
	`, digits)

	lead, err := scanLead(row)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

// ListActiveAdmins returns active users with the admin role in stable
// name order — the rotation order for round-robin assignment.
func (r *Repository) ListActiveAdmins(ctx context.Context) ([]domain.Admin, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, full_name, phone FROM users
		WHERE role = 'admin' AND active = TRUE
		ORDER BY full_name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAdmins(rows)
}

// AdminExists reports whether the user holds the admin role. A lead's
// assignee must always be an admin, at intake and on reassignment.
func (r *Repository) AdminExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM users WHERE id = $1 AND role = 'admin')
	`, id).Scan(&exists)
	return exists, err
}

func scanAdmins(rows pgx.Rows) ([]domain.Admin, error) {
	admins := make([]domain.Admin, 0)
	for rows.Next() {
		var admin domain.Admin
		if err := rows.Scan(&admin.ID, &admin.FullName, &admin.Phone); err != nil {
			return nil, err
		}
		admins = append(admins, admin)
	}
	return admins, rows.Err()
}

type CreateInquiryParams struct {
	ContactName  string
	ContactPhone string
	Source       string
	ProductID    *uuid.UUID
	PackageID    *uuid.UUID
	InquiryText  string
}

// CreateInquiry inserts a new lead with a round-robin assignee inside a
// single transaction: the rotation cursor row is locked FOR UPDATE, the
// next assignee is computed from the active-admin set, the lead and the
// optional system note are inserted, and the cursor is advanced. Either
// everything lands or nothing does — concurrent intakes serialize on the
// cursor row and cannot pick the same next admin.
func (r *Repository) CreateInquiry(ctx context.Context, params CreateInquiryParams, note *CreateLeadNoteParams) (Lead, domain.Admin, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Lead{}, domain.Admin{}, err
	}
	defer tx.Rollback(ctx)

	var lastAssigned *uuid.UUID
	err = tx.QueryRow(ctx, `
		SELECT last_assigned_id FROM assignment_cursor WHERE singleton FOR UPDATE
	`).Scan(&lastAssigned)
	if err != nil {
		return Lead{}, domain.Admin{}, err
	}

	adminRows, err := tx.Query(ctx, `
		SELECT id, full_name, phone FROM users
		WHERE role = 'admin' AND active = TRUE
		ORDER BY full_name ASC
	`)
	if err != nil {
		return Lead{}, domain.Admin{}, err
	}
	admins, err := scanAdmins(adminRows)
	adminRows.Close()
	if err != nil {
		return Lead{}, domain.Admin{}, err
	}

	assignee, ok := domain.NextAssignee(admins, lastAssigned)
	if !ok {
		return Lead{}, domain.Admin{}, ErrNoActiveAdmin
	}

	row := tx.QueryRow(ctx, `
		INSERT INTO leads (contact_name, contact_phone, source, product_id, package_id, assigned_admin_id, inquiry_text)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+leadColumns,
		params.ContactName, params.ContactPhone, params.Source,
		params.ProductID, params.PackageID, assignee.ID, params.InquiryText,
	)
	lead, err := scanLead(row)
	if err != nil {
		return Lead{}, domain.Admin{}, err
	}

	if note != nil {
		_, err = tx.Exec(ctx, `
			INSERT INTO lead_notes (lead_id, author_id, author_name, body)
			VALUES ($1, $2, $3, $4)
		`, lead.ID, note.AuthorID, note.AuthorName, note.Body)
		if err != nil {
			return Lead{}, domain.Admin{}, err
		}
	}

	_, err = tx.Exec(ctx, `
		UPDATE assignment_cursor SET last_assigned_id = $1, updated_at = now() WHERE singleton
	`, assignee.ID)
	if err != nil {
		return Lead{}, domain.Admin{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Lead{}, domain.Admin{}, err
	}

	return lead, assignee, nil
}

// UpdateLeadParams carries the merged field values to persist. Pointer
// fields are written only when non-nil; the paired Set flags distinguish
// "clear this nullable column" from "leave it alone".
type UpdateLeadParams struct {
	ContactName        *string
	ContactPhone       *string
	Source             *string
	ProductID          *uuid.UUID
	ProductIDSet       bool
	PackageID          *uuid.UUID
	PackageIDSet       bool
	Price              *int64
	AssignedAdminID    *uuid.UUID
	Stage              *string
	ClosingDate        *time.Time
	ClosingDateSet     bool
	PaymentMethod      *string
	PaymentMethodSet   bool
	DownPayment        *int64
	Status             *string
	FollowUpStatus     *string
	ShippingStatus     *string
	NextFollowUp       *time.Time
	NextFollowUpSet    bool
	NextContactDate    *time.Time
	NextContactDateSet bool
	ObstacleID         *uuid.UUID
	ObstacleIDSet      bool
	PromoID            *uuid.UUID
	PromoIDSet         bool
	InquiryText        *string
}

func (r *Repository) Update(ctx context.Context, id uuid.UUID, params UpdateLeadParams) (Lead, error) {
	sets := make([]string, 0, 16)
	args := make([]interface{}, 0, 16)

	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if params.ContactName != nil {
		add("contact_name", *params.ContactName)
	}
	if params.ContactPhone != nil {
		add("contact_phone", *params.ContactPhone)
	}
	if params.Source != nil {
		add("source", *params.Source)
	}
	if params.ProductIDSet {
		add("product_id", params.ProductID)
	}
	if params.PackageIDSet {
		add("package_id", params.PackageID)
	}
	if params.Price != nil {
		add("price", *params.Price)
	}
	if params.AssignedAdminID != nil {
		add("assigned_admin_id", *params.AssignedAdminID)
	}
	if params.Stage != nil {
		add("stage", *params.Stage)
	}
	if params.ClosingDateSet {
		add("closing_date", params.ClosingDate)
	}
	if params.PaymentMethodSet {
		add("payment_method", params.PaymentMethod)
	}
	if params.DownPayment != nil {
		add("down_payment", *params.DownPayment)
	}
	if params.Status != nil {
		add("status", *params.Status)
	}
	if params.FollowUpStatus != nil {
		add("follow_up_status", *params.FollowUpStatus)
	}
	if params.ShippingStatus != nil {
		add("shipping_status", *params.ShippingStatus)
	}
	if params.NextFollowUpSet {
		add("next_follow_up", params.NextFollowUp)
	}
	if params.NextContactDateSet {
		add("next_contact_date", params.NextContactDate)
	}
	if params.ObstacleIDSet {
		add("obstacle_id", params.ObstacleID)
	}
	if params.PromoIDSet {
		add("promo_id", params.PromoID)
	}
	if params.InquiryText != nil {
		add("inquiry_text", *params.InquiryText)
	}

	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	sets = append(sets, "updated_at = now()")
	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE leads SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), leadColumns,
	)

	return scanLead(r.pool.QueryRow(ctx, query, args...))
}
