// Package domain holds the pure lead pipeline rules: stage and status
// enums, the rotation step for round-robin assignment, the terminal
// predicate, and closing-details field gating. Everything here is
// side-effect free and unit tested.
package domain

import "fmt"

// Stage is the pipeline position of a lead.
type Stage string

const (
	StageOnProgress Stage = "On Progress"
	StageClosing    Stage = "Closing"
	StageLoss       Stage = "Loss"
)

// Valid reports whether the stage is one of the known pipeline stages.
// Transitions are deliberately unrestricted: any stage may move to any
// other (the board supports drag-and-drop reclassification).
func (s Stage) Valid() bool {
	switch s {
	case StageOnProgress, StageClosing, StageLoss:
		return true
	}
	return false
}

// PaymentMethod is how a closing lead pays.
type PaymentMethod string

const (
	PaymentFullTransfer PaymentMethod = "Full Transfer"
	PaymentCOD          PaymentMethod = "COD"
	PaymentDP           PaymentMethod = "DP"
)

// FinalStatus tracks whether a lead's order has been completed.
type FinalStatus string

const (
	StatusBelumSelesai FinalStatus = "Belum Selesai"
	StatusSelesai      FinalStatus = "Selesai"
)

// FollowUpStatus tracks whether the assigned admin has followed up a lead.
type FollowUpStatus string

const (
	FollowUpBelum FollowUpStatus = "Belum Follow Up"
	FollowUpSudah FollowUpStatus = "Sudah Follow Up"
)

// ShippingStatus tracks order delivery for closing leads.
type ShippingStatus string

const (
	ShippingPending ShippingStatus = "Pending"
	ShippingDikirim ShippingStatus = "Dikirim"
	ShippingSelesai ShippingStatus = "Selesai"
)

// IsTerminal is the terminal predicate: a lead is complete (and eligible
// for the handle-customer queue) once it closed with a finished order,
// or once its shipment is marked done.
func IsTerminal(stage Stage, status FinalStatus, shipping ShippingStatus) bool {
	if stage == StageClosing && status == StatusSelesai {
		return true
	}
	return shipping == ShippingSelesai
}

// ClosingDetails is the stage-specific payload for a closing lead.
// Modelling it as its own value keeps illegal combinations (a down
// payment on a COD order) out of serialized output.
type ClosingDetails struct {
	PaymentMethod PaymentMethod
	DownPayment   int64
}

// Gate returns the details as they may be materialized: the down payment
// is meaningful only for DP, and zeroed for every other method.
func (d ClosingDetails) Gate() ClosingDetails {
	if d.PaymentMethod != PaymentDP {
		d.DownPayment = 0
	}
	return d
}

// DuplicateNoteBody is the body of the system note attached to a new
// lead whose phone number matches an earlier lead.
func DuplicateNoteBody(existingName string, existingID string) string {
	return fmt.Sprintf("[SYSTEM] Potential duplicate of lead: %s (ID: %s)", existingName, existingID)
}

// SystemAuthorName is the display name for system-generated notes.
const SystemAuthorName = "System"
