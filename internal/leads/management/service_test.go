package management

import (
	"context"
	"testing"
	"time"

	"crm_leads_backend/internal/events"
	"crm_leads_backend/internal/leads/domain"
	"crm_leads_backend/internal/leads/repository"
	"crm_leads_backend/internal/leads/transport"
	"crm_leads_backend/platform/apperr"
	platformevents "crm_leads_backend/platform/events"

	"github.com/google/uuid"
)

type fakeRepo struct {
	lead             repository.Lead
	missing          bool
	updateCalls      int
	lastParams       repository.UpdateLeadParams
	notes            []repository.LeadNote
	projectionID     uuid.UUID
	hasProjection    bool
	projectCalls     int
	nonAdminAssignee bool
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (repository.Lead, error) {
	if f.missing {
		return repository.Lead{}, repository.ErrNotFound
	}
	return f.lead, nil
}

func (f *fakeRepo) List(_ context.Context, _ repository.ListFilter) ([]repository.Lead, error) {
	return []repository.Lead{f.lead}, nil
}

func (f *fakeRepo) Update(_ context.Context, _ uuid.UUID, params repository.UpdateLeadParams) (repository.Lead, error) {
	f.updateCalls++
	f.lastParams = params

	lead := f.lead
	if params.Stage != nil {
		lead.Stage = *params.Stage
	}
	if params.Status != nil {
		lead.Status = *params.Status
	}
	if params.ShippingStatus != nil {
		lead.ShippingStatus = *params.ShippingStatus
	}
	if params.PaymentMethodSet {
		lead.PaymentMethod = params.PaymentMethod
	}
	if params.DownPayment != nil {
		lead.DownPayment = *params.DownPayment
	}
	if params.AssignedAdminID != nil {
		lead.AssignedAdminID = *params.AssignedAdminID
	}
	if params.NextFollowUpSet {
		lead.NextFollowUp = params.NextFollowUp
	}
	f.lead = lead
	return lead, nil
}

func (f *fakeRepo) CreateLeadNote(_ context.Context, params repository.CreateLeadNoteParams) (repository.LeadNote, error) {
	note := repository.LeadNote{
		ID:         uuid.New(),
		LeadID:     params.LeadID,
		AuthorID:   params.AuthorID,
		AuthorName: params.AuthorName,
		Body:       params.Body,
		CreatedAt:  time.Now(),
	}
	f.notes = append(f.notes, note)
	return note, nil
}

func (f *fakeRepo) ListLeadNotes(_ context.Context, _ uuid.UUID) ([]repository.LeadNote, error) {
	return f.notes, nil
}

func (f *fakeRepo) AdminExists(_ context.Context, _ uuid.UUID) (bool, error) {
	return !f.nonAdminAssignee, nil
}

func (f *fakeRepo) CreateProjectionIfAbsent(_ context.Context, _ uuid.UUID) (uuid.UUID, bool, error) {
	f.projectCalls++
	if f.hasProjection {
		return f.projectionID, false, nil
	}
	f.hasProjection = true
	f.projectionID = uuid.New()
	return f.projectionID, true, nil
}

type recordingBus struct {
	published []events.Event
}

func (b *recordingBus) Publish(_ context.Context, event events.Event) {
	b.published = append(b.published, event)
}

func (b *recordingBus) PublishSync(_ context.Context, event events.Event) error {
	b.published = append(b.published, event)
	return nil
}

func (b *recordingBus) Subscribe(string, platformevents.Handler) {}

func baseLead() repository.Lead {
	return repository.Lead{
		ID:              uuid.New(),
		ContactName:     "Budi Santoso",
		ContactPhone:    "+6281234567890",
		Source:          "Instagram Ads",
		AssignedAdminID: uuid.New(),
		Stage:           string(domain.StageOnProgress),
		Status:          string(domain.StatusBelumSelesai),
		FollowUpStatus:  string(domain.FollowUpBelum),
		ShippingStatus:  string(domain.ShippingPending),
	}
}

func TestUpdateReturnsNotFound(t *testing.T) {
	svc := New(&fakeRepo{missing: true}, &recordingBus{})

	_, err := svc.Update(context.Background(), uuid.New(), transport.UpdateLeadRequest{}, uuid.New(), "Siti")
	if apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateZeroesDownPaymentOutsideDP(t *testing.T) {
	repo := &fakeRepo{lead: baseLead()}
	svc := New(repo, &recordingBus{})

	method := string(domain.PaymentCOD)
	dp := int64(250000)
	_, err := svc.Update(context.Background(), repo.lead.ID, transport.UpdateLeadRequest{
		PaymentMethod: &method,
		DownPayment:   &dp,
	}, uuid.New(), "Siti")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.lastParams.DownPayment == nil || *repo.lastParams.DownPayment != 0 {
		t.Fatalf("expected stored down payment forced to 0 for COD, got %v", repo.lastParams.DownPayment)
	}
}

func TestUpdateKeepsDownPaymentForDP(t *testing.T) {
	repo := &fakeRepo{lead: baseLead()}
	svc := New(repo, &recordingBus{})

	method := string(domain.PaymentDP)
	dp := int64(250000)
	_, err := svc.Update(context.Background(), repo.lead.ID, transport.UpdateLeadRequest{
		PaymentMethod: &method,
		DownPayment:   &dp,
	}, uuid.New(), "Siti")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.lastParams.DownPayment == nil || *repo.lastParams.DownPayment != dp {
		t.Fatalf("expected down payment kept for DP, got %v", repo.lastParams.DownPayment)
	}
}

func TestUpdateAppendsNoteWithActorAttribution(t *testing.T) {
	repo := &fakeRepo{lead: baseLead()}
	svc := New(repo, &recordingBus{})

	actorID := uuid.New()
	note := "Sudah dihubungi via WA"
	resp, err := svc.Update(context.Background(), repo.lead.ID, transport.UpdateLeadRequest{Note: &note}, actorID, "Siti Rahma")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.notes) != 1 {
		t.Fatalf("expected one note, got %d", len(repo.notes))
	}
	if repo.notes[0].AuthorID == nil || *repo.notes[0].AuthorID != actorID {
		t.Fatalf("note must be attributed to the actor")
	}
	if repo.notes[0].AuthorName != "Siti Rahma" {
		t.Fatalf("expected author name, got %q", repo.notes[0].AuthorName)
	}
	if len(resp.Notes) != 1 {
		t.Fatalf("response must include the new note")
	}
}

func TestUpdateRejectsNonAdminAssignee(t *testing.T) {
	repo := &fakeRepo{lead: baseLead(), nonAdminAssignee: true}
	svc := New(repo, &recordingBus{})

	outsider := uuid.New()
	_, err := svc.Update(context.Background(), repo.lead.ID, transport.UpdateLeadRequest{AssigneeID: &outsider}, uuid.New(), "Siti")
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error for non-admin assignee, got %v", err)
	}
	if repo.updateCalls != 0 {
		t.Fatalf("rejected reassignment must not write, got %d update calls", repo.updateCalls)
	}
}

func TestUpdateSkipsBlankNote(t *testing.T) {
	repo := &fakeRepo{lead: baseLead()}
	svc := New(repo, &recordingBus{})

	note := "   \n\t  "
	source := "Referral"
	_, err := svc.Update(context.Background(), repo.lead.ID, transport.UpdateLeadRequest{
		Source: &source,
		Note:   &note,
	}, uuid.New(), "Siti")
	if err != nil {
		t.Fatalf("blank note must not fail the patch: %v", err)
	}
	if repo.updateCalls != 1 {
		t.Fatalf("patch must still be applied, got %d update calls", repo.updateCalls)
	}
	if len(repo.notes) != 0 {
		t.Fatalf("blank note must not be appended, got %d notes", len(repo.notes))
	}
}

func TestUpdateProjectsTerminalLeadOnce(t *testing.T) {
	repo := &fakeRepo{lead: baseLead()}
	bus := &recordingBus{}
	svc := New(repo, bus)

	stage := string(domain.StageClosing)
	status := string(domain.StatusSelesai)
	patch := transport.UpdateLeadRequest{Stage: &stage, Status: &status}

	if _, err := svc.Update(context.Background(), repo.lead.ID, patch, uuid.New(), "Siti"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var completed int
	for _, e := range bus.published {
		if _, ok := e.(events.LeadCompleted); ok {
			completed++
		}
	}
	if completed != 1 {
		t.Fatalf("expected exactly one LeadCompleted, got %d", completed)
	}

	// Re-apply the same patch: the projection already exists, so no
	// second completion may fire.
	bus.published = nil
	if _, err := svc.Update(context.Background(), repo.lead.ID, patch, uuid.New(), "Siti"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, e := range bus.published {
		if _, ok := e.(events.LeadCompleted); ok {
			t.Fatalf("repeated terminal update must not re-complete the lead")
		}
	}
	if repo.projectCalls != 2 {
		t.Fatalf("projection must be attempted idempotently, got %d calls", repo.projectCalls)
	}
}

func TestUpdateStageNoOpWritesNothing(t *testing.T) {
	repo := &fakeRepo{lead: baseLead()}
	bus := &recordingBus{}
	svc := New(repo, bus)

	resp, err := svc.UpdateStage(context.Background(), repo.lead.ID, transport.UpdateLeadStageRequest{
		Stage: string(domain.StageOnProgress),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.updateCalls != 0 {
		t.Fatalf("same-stage move must not write, got %d update calls", repo.updateCalls)
	}
	if len(bus.published) != 0 {
		t.Fatalf("same-stage move must not publish events, got %d", len(bus.published))
	}
	if resp.Stage != string(domain.StageOnProgress) {
		t.Fatalf("expected unchanged stage, got %q", resp.Stage)
	}
}

func TestUpdateStagePublishesChange(t *testing.T) {
	repo := &fakeRepo{lead: baseLead()}
	bus := &recordingBus{}
	svc := New(repo, bus)

	resp, err := svc.UpdateStage(context.Background(), repo.lead.ID, transport.UpdateLeadStageRequest{
		Stage: string(domain.StageClosing),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Stage != string(domain.StageClosing) {
		t.Fatalf("expected stage moved to Closing, got %q", resp.Stage)
	}

	if len(bus.published) != 1 {
		t.Fatalf("expected one event, got %d", len(bus.published))
	}
	changed, ok := bus.published[0].(events.LeadStageChanged)
	if !ok {
		t.Fatalf("expected LeadStageChanged, got %T", bus.published[0])
	}
	if changed.OldStage != string(domain.StageOnProgress) || changed.NewStage != string(domain.StageClosing) {
		t.Fatalf("unexpected transition %q -> %q", changed.OldStage, changed.NewStage)
	}
}

func TestUpdateReassignmentPublishesLeadAssigned(t *testing.T) {
	repo := &fakeRepo{lead: baseLead()}
	bus := &recordingBus{}
	svc := New(repo, bus)

	newAdmin := uuid.New()
	_, err := svc.Update(context.Background(), repo.lead.ID, transport.UpdateLeadRequest{AssigneeID: &newAdmin}, uuid.New(), "Siti")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var assigned *events.LeadAssigned
	for _, e := range bus.published {
		if a, ok := e.(events.LeadAssigned); ok {
			assigned = &a
		}
	}
	if assigned == nil {
		t.Fatalf("expected LeadAssigned on reassignment")
	}
	if assigned.AdminID != newAdmin {
		t.Fatalf("expected new admin in event, got %s", assigned.AdminID)
	}
	if assigned.PreviousID == nil {
		t.Fatalf("reassignment must carry the previous admin")
	}
}

func TestClosingDetailsOnlyInClosingStage(t *testing.T) {
	lead := baseLead()
	method := string(domain.PaymentDP)
	lead.PaymentMethod = &method
	lead.DownPayment = 100000

	resp := ToLeadResponse(lead, nil)
	if resp.Closing != nil {
		t.Fatalf("closing details must be absent outside Closing")
	}

	lead.Stage = string(domain.StageClosing)
	resp = ToLeadResponse(lead, nil)
	if resp.Closing == nil {
		t.Fatalf("closing details must be present in Closing")
	}
	if resp.Closing.DownPayment != 100000 {
		t.Fatalf("expected DP down payment surfaced, got %d", resp.Closing.DownPayment)
	}
}

func TestLeadResponseNotesNewestFirst(t *testing.T) {
	lead := baseLead()
	older := repository.LeadNote{ID: uuid.New(), Body: "first", CreatedAt: time.Now().Add(-time.Hour)}
	newer := repository.LeadNote{ID: uuid.New(), Body: "second", CreatedAt: time.Now()}

	resp := ToLeadResponse(lead, []repository.LeadNote{older, newer})
	if len(resp.Notes) != 2 {
		t.Fatalf("expected two notes, got %d", len(resp.Notes))
	}
	if resp.Notes[0].Body != "second" || resp.Notes[1].Body != "first" {
		t.Fatalf("notes must be presented most recent first")
	}
}
