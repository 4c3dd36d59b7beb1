package booking

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/lightfieldlegal/lightfield-api/internal/audit"
	domain "github.com/lightfieldlegal/lightfield-api/internal/domain/booking"
	"github.com/lightfieldlegal/lightfield-api/internal/models"
)

// ------------------------------------------------------
// repository fake
// ------------------------------------------------------

type fakeRepo struct {
	mu sync.Mutex

	bookings   map[string]*models.ConsultationBooking
	services   map[uint]*models.ConsultationService
	associates map[uint]*models.Associate

	nextID  uint
	deleted []string

	createErr error
	saveErr   error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		bookings:   make(map[string]*models.ConsultationBooking),
		services:   make(map[uint]*models.ConsultationService),
		associates: make(map[uint]*models.Associate),
	}
}

func (r *fakeRepo) put(b *models.ConsultationBooking) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b.ID == 0 {
		r.nextID++
		b.ID = r.nextID
	}
	r.bookings[b.Reference] = b
}

func (r *fakeRepo) GetActiveService(ctx context.Context, id uint) (*models.ConsultationService, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.services[id]
	if !ok || !s.IsActive {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *fakeRepo) GetActiveAssociate(ctx context.Context, id uint) (*models.Associate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.associates[id]
	if !ok || !a.IsActive {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (r *fakeRepo) CreateBooking(ctx context.Context, b *models.ConsultationBooking) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.put(b)
	return nil
}

func (r *fakeRepo) DeleteBooking(ctx context.Context, b *models.ConsultationBooking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.bookings, b.Reference)
	r.deleted = append(r.deleted, b.Reference)
	return nil
}

func (r *fakeRepo) SaveProviderHandles(ctx context.Context, b *models.ConsultationBooking) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.bookings[b.Reference]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.ProviderReference = b.ProviderReference
	stored.ProviderAccessCode = b.ProviderAccessCode
	return nil
}

func (r *fakeRepo) GetByReference(ctx context.Context, reference string) (*models.ConsultationBooking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[reference]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id uint) (*models.ConsultationBooking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.ID == id {
			cp := *b
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) List(ctx context.Context, filter domain.ListFilter) ([]models.ConsultationBooking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.ConsultationBooking
	for _, b := range r.bookings {
		out = append(out, *b)
	}
	return out, nil
}

// MarkPaid mirrors the conditional UPDATE of the real repository: the flip
// succeeds at most once per reference, whatever the interleaving.
func (r *fakeRepo) MarkPaid(ctx context.Context, reference, channel string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[reference]
	if !ok || b.PaymentVerified {
		return false, nil
	}
	b.PaymentVerified = true
	b.PaymentVerifiedAt = &at
	b.PaymentChannel = channel
	b.Status = string(domain.StatusPaid)
	return true, nil
}

func (r *fakeRepo) UpdateBooking(ctx context.Context, b *models.ConsultationBooking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.bookings[b.Reference]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Status = b.Status
	stored.AdminNotes = b.AdminNotes
	stored.AssignedAssociateID = b.AssignedAssociateID
	return nil
}

// ------------------------------------------------------
// gateway fake
// ------------------------------------------------------

type fakeGateway struct {
	mu sync.Mutex

	initCalls   int
	verifyCalls int

	initResult *domain.InitResult
	initErr    error

	verifyTx  *domain.Transaction
	verifyErr error

	lastInitEmail    string
	lastInitAmount   int64
	lastInitRef      string
	lastInitMetadata map[string]string
}

func (g *fakeGateway) Initialize(
	ctx context.Context,
	email string,
	amountMinor int64,
	reference string,
	metadata map[string]string,
) (*domain.InitResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.initCalls++
	g.lastInitEmail = email
	g.lastInitAmount = amountMinor
	g.lastInitRef = reference
	g.lastInitMetadata = metadata
	if g.initErr != nil {
		return nil, g.initErr
	}
	if g.initResult != nil {
		return g.initResult, nil
	}
	return &domain.InitResult{
		AuthorizationURL: "https://checkout.example/" + reference,
		AccessCode:       "AC_" + reference,
		Reference:        reference,
	}, nil
}

func (g *fakeGateway) Verify(ctx context.Context, reference string) (*domain.Transaction, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.verifyCalls++
	if g.verifyErr != nil {
		return nil, g.verifyErr
	}
	return g.verifyTx, nil
}

func (g *fakeGateway) verifyCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.verifyCalls
}

// ------------------------------------------------------
// notifier / audit fakes
// ------------------------------------------------------

type fakeNotifier struct {
	mu    sync.Mutex
	calls []string
}

func (n *fakeNotifier) PaymentConfirmed(b *models.ConsultationBooking) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, b.Reference)
}

func (n *fakeNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.calls)
}

type fakeAudit struct {
	mu     sync.Mutex
	events []audit.Event
}

func (a *fakeAudit) Dispatch(ev audit.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, ev)
}
