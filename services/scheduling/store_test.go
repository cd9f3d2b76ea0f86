package scheduling

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sort"
	"sync"
	"time"

	appointmentRepo "github.com/bcart01v/beheardqueue-server/database/repository/appointment"
	"github.com/bcart01v/beheardqueue-server/models"
)

// asError is a typed shorthand for errors.As in assertions.
func asError[T error](err error, target *T) bool {
	return errors.As(err, target)
}

// fakeStore is an in-memory stand-in for the Mongo repositories with genuine
// transactional semantics: WithTransaction serializes callers on a mutex,
// snapshots all state up front, and rolls back on error. It implements the
// appointment, stall, trailer, and subject repository interfaces.
type fakeStore struct {
	mu       sync.Mutex
	appts    map[string]models.Appointment
	history  map[string]models.HistoricalAppointment
	stalls   map[string]models.Stall
	trailers map[string]models.Trailer
	subjects map[string]models.Subject
	versions map[string]int // per-(stall, date) schedule version documents

	// failure injection
	transientTxnFailures  int             // next n transactions fail with TransientError
	transientBumpFailures int             // next n BumpScheduleVersion calls report a write conflict
	failStatusBatch       error           // UpdateStatusMany fails once with this
	failHistoryFor        map[string]bool // InsertHistory fails for these original ids
}

type txnKey struct{}

func newFakeStore() *fakeStore {
	return &fakeStore{
		appts:          make(map[string]models.Appointment),
		history:        make(map[string]models.HistoricalAppointment),
		stalls:         make(map[string]models.Stall),
		trailers:       make(map[string]models.Trailer),
		subjects:       make(map[string]models.Subject),
		versions:       make(map[string]int),
		failHistoryFor: make(map[string]bool),
	}
}

// lock acquires the store mutex unless the context is already inside a
// transaction, which holds it for the transaction's whole extent.
func (f *fakeStore) lock(ctx context.Context) func() {
	if ctx.Value(txnKey{}) != nil {
		return func() {}
	}
	f.mu.Lock()
	return f.mu.Unlock
}

func (f *fakeStore) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.transientTxnFailures > 0 {
		f.transientTxnFailures--
		return &appointmentRepo.TransientError{Err: fmt.Errorf("simulated contention")}
	}

	apptsSnap := maps.Clone(f.appts)
	historySnap := maps.Clone(f.history)
	stallsSnap := maps.Clone(f.stalls)
	versionsSnap := maps.Clone(f.versions)

	if err := fn(context.WithValue(ctx, txnKey{}, true)); err != nil {
		f.appts = apptsSnap
		f.history = historySnap
		f.stalls = stallsSnap
		f.versions = versionsSnap
		return err
	}
	return nil
}

func (f *fakeStore) BumpScheduleVersion(ctx context.Context, stallID, date string) error {
	defer f.lock(ctx)()
	if f.transientBumpFailures > 0 {
		f.transientBumpFailures--
		return &appointmentRepo.TransientError{Err: fmt.Errorf("simulated schedule write conflict")}
	}
	f.versions[stallID+"|"+date]++
	return nil
}

func (f *fakeStore) Insert(ctx context.Context, appt *models.Appointment) error {
	defer f.lock(ctx)()
	if _, exists := f.appts[appt.ID]; exists {
		return fmt.Errorf("duplicate appointment id %s", appt.ID)
	}
	f.appts[appt.ID] = *appt
	return nil
}

func (f *fakeStore) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	defer f.lock(ctx)()
	appt, ok := f.appts[id]
	if !ok {
		return nil, nil
	}
	return &appt, nil
}

func (f *fakeStore) Update(ctx context.Context, appt *models.Appointment) error {
	defer f.lock(ctx)()
	if _, ok := f.appts[appt.ID]; !ok {
		return fmt.Errorf("no appointment with id %s", appt.ID)
	}
	f.appts[appt.ID] = *appt
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, id string) error {
	defer f.lock(ctx)()
	delete(f.appts, id)
	return nil
}

func (f *fakeStore) ListByStallAndDate(ctx context.Context, stallID, date string) ([]models.Appointment, error) {
	defer f.lock(ctx)()
	var out []models.Appointment
	for _, appt := range f.appts {
		if appt.StallID == stallID && appt.Date == date && appt.Status != models.StatusCancelled {
			out = append(out, appt)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	return out, nil
}

func (f *fakeStore) ListScheduledBySubjectAndDate(ctx context.Context, subjectID, date string) ([]models.Appointment, error) {
	defer f.lock(ctx)()
	var out []models.Appointment
	for _, appt := range f.appts {
		if appt.SubjectID == subjectID && appt.Date == date && appt.Status == models.StatusScheduled {
			out = append(out, appt)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateStatusMany(ctx context.Context, ids []string, status models.AppointmentStatus, updatedAt time.Time) error {
	defer f.lock(ctx)()
	if f.failStatusBatch != nil {
		err := f.failStatusBatch
		f.failStatusBatch = nil
		// Partially apply before failing, to prove the transaction rolls back.
		if len(ids) > 0 {
			appt := f.appts[ids[0]]
			appt.Status = status
			f.appts[ids[0]] = appt
		}
		return err
	}
	for _, id := range ids {
		appt, ok := f.appts[id]
		if !ok {
			return fmt.Errorf("no appointment with id %s", id)
		}
		appt.Status = status
		appt.UpdatedAt = updatedAt
		f.appts[id] = appt
	}
	return nil
}

func (f *fakeStore) ListSweepCandidates(ctx context.Context, now time.Time) ([]models.Appointment, error) {
	defer f.lock(ctx)()
	today := now.Format("2006-01-02")
	nowHHMM := now.Format("15:04")

	var out []models.Appointment
	for _, appt := range f.appts {
		switch appt.Status {
		case models.StatusCompleted, models.StatusCancelled:
			out = append(out, appt)
		default:
			if appt.EndDate < today || (appt.EndDate == today && appt.EndTime < nowHHMM) {
				out = append(out, appt)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) InsertHistory(ctx context.Context, rec *models.HistoricalAppointment) error {
	defer f.lock(ctx)()
	if f.failHistoryFor[rec.OriginalID] {
		return fmt.Errorf("simulated history insert failure for %s", rec.OriginalID)
	}
	f.history[rec.ID] = *rec
	return nil
}

func (f *fakeStore) GetStallByID(ctx context.Context, stallID string) (*models.Stall, error) {
	defer f.lock(ctx)()
	stall, ok := f.stalls[stallID]
	if !ok {
		return nil, nil
	}
	return &stall, nil
}

func (f *fakeStore) ListByTrailer(ctx context.Context, trailerID string) ([]models.Stall, error) {
	defer f.lock(ctx)()
	var out []models.Stall
	for _, stall := range f.stalls {
		if stall.TrailerID == trailerID {
			out = append(out, stall)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateStatus(ctx context.Context, stallID string, status models.StallStatus) error {
	defer f.lock(ctx)()
	stall, ok := f.stalls[stallID]
	if !ok {
		return fmt.Errorf("no stall with id %s", stallID)
	}
	stall.Status = status
	f.stalls[stallID] = stall
	return nil
}

func (f *fakeStore) GetTrailerByID(ctx context.Context, trailerID string) (*models.Trailer, error) {
	defer f.lock(ctx)()
	trailer, ok := f.trailers[trailerID]
	if !ok {
		return nil, nil
	}
	return &trailer, nil
}

func (f *fakeStore) GetSubjectByID(ctx context.Context, subjectID string) (*models.Subject, error) {
	defer f.lock(ctx)()
	subject, ok := f.subjects[subjectID]
	if !ok {
		return nil, nil
	}
	return &subject, nil
}

// Narrow adapters so one fakeStore satisfies the four repository interfaces,
// whose method names collide on GetByID.
type fakeStallRepo struct{ *fakeStore }

func (r fakeStallRepo) GetByID(ctx context.Context, id string) (*models.Stall, error) {
	return r.GetStallByID(ctx, id)
}

type fakeTrailerRepo struct{ *fakeStore }

func (r fakeTrailerRepo) GetByID(ctx context.Context, id string) (*models.Trailer, error) {
	return r.GetTrailerByID(ctx, id)
}

type fakeSubjectRepo struct{ *fakeStore }

func (r fakeSubjectRepo) GetByID(ctx context.Context, id string) (*models.Subject, error) {
	return r.GetSubjectByID(ctx, id)
}

func newTestService(store *fakeStore) *DefaultSchedulingService {
	return &DefaultSchedulingService{
		Appointments: store,
		Stalls:       fakeStallRepo{store},
		Trailers:     fakeTrailerRepo{store},
		Subjects:     fakeSubjectRepo{store},
	}
}

// seedTrailer registers a trailer with the given operating hours.
func (f *fakeStore) seedTrailer(id, start, end string) {
	f.trailers[id] = models.Trailer{
		ID:    id,
		Name:  "Trailer " + id,
		Hours: models.OperatingHours{StartTime: start, EndTime: end},
	}
}

// seedStall registers a stall on a trailer.
func (f *fakeStore) seedStall(id, trailerID string, category models.ServiceCategory, duration, buffer int) {
	f.stalls[id] = models.Stall{
		ID:         id,
		TrailerID:  trailerID,
		Name:       "Stall " + id,
		Category:   category,
		Duration:   duration,
		BufferTime: buffer,
		Status:     models.StallAvailable,
	}
}

func (f *fakeStore) stallStatus(id string) models.StallStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stalls[id].Status
}

func (f *fakeStore) scheduleVersion(stallID, date string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.versions[stallID+"|"+date]
}

func (f *fakeStore) appointment(id string) (models.Appointment, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	appt, ok := f.appts[id]
	return appt, ok
}

func (f *fakeStore) historyByOriginal(originalID string) (models.HistoricalAppointment, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range f.history {
		if rec.OriginalID == originalID {
			return rec, true
		}
	}
	return models.HistoricalAppointment{}, false
}
