package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	domain "github.com/lightfieldlegal/lightfield-api/internal/domain/booking"
	"github.com/lightfieldlegal/lightfield-api/internal/httperr"
	"github.com/lightfieldlegal/lightfield-api/internal/models"
)

func pendingBooking(ref string, amount float64) *models.ConsultationBooking {
	return &models.ConsultationBooking{
		Reference:   ref,
		ClientName:  "Ada Obi",
		ClientEmail: "ada@example.com",
		ClientPhone: "+2348012345678",
		Amount:      amount,
		Currency:    "NGN",
		Status:      string(domain.StatusPendingPayment),
	}
}

func newVerifyUC(repo *fakeRepo, gw *fakeGateway, n *fakeNotifier) *VerifyPayment {
	return NewVerifyPayment(repo, gw, n, zap.NewNop())
}

func TestVerifyPollMarksPaidOnce(t *testing.T) {
	repo := newFakeRepo()
	repo.put(pendingBooking("LFB-AAAA0001", 75000))

	gw := &fakeGateway{verifyTx: &domain.Transaction{Status: "success", Amount: 7500000, Channel: "card"}}
	notifier := &fakeNotifier{}
	uc := newVerifyUC(repo, gw, notifier)

	b, err := uc.ExecutePoll(context.Background(), "LFB-AAAA0001")
	if err != nil {
		t.Fatalf("ExecutePoll: %v", err)
	}

	if !b.PaymentVerified {
		t.Error("booking should be verified")
	}
	if b.Status != string(domain.StatusPaid) {
		t.Errorf("status = %q, want paid", b.Status)
	}
	if b.PaymentChannel != "card" {
		t.Errorf("channel = %q, want card", b.PaymentChannel)
	}
	if b.PaymentVerifiedAt == nil {
		t.Error("verified_at should be set")
	}
	if notifier.count() != 1 {
		t.Errorf("notifications = %d, want 1", notifier.count())
	}
}

// A booking whose major-unit amount is 75000 NGN must be matched against
// 7500000 kobo, not 75000.
func TestVerifyAmountIsComparedInMinorUnits(t *testing.T) {
	repo := newFakeRepo()
	repo.put(pendingBooking("LFB-AAAA0002", 75000))

	gw := &fakeGateway{verifyTx: &domain.Transaction{Status: "success", Amount: 75000, Channel: "card"}}
	notifier := &fakeNotifier{}
	uc := newVerifyUC(repo, gw, notifier)

	_, err := uc.ExecutePoll(context.Background(), "LFB-AAAA0002")
	if !httperr.IsBusiness(err, httperr.CodeAmountMismatch) {
		t.Fatalf("err = %v, want amount_mismatch", err)
	}

	stored, _ := repo.GetByReference(context.Background(), "LFB-AAAA0002")
	if stored.PaymentVerified {
		t.Error("mismatched payment must not verify the booking")
	}
	if stored.Status != string(domain.StatusPendingPayment) {
		t.Errorf("status = %q, want pending_payment", stored.Status)
	}
	if notifier.count() != 0 {
		t.Error("mismatch must not notify")
	}
}

func TestVerifyRejectsUnsuccessfulTransaction(t *testing.T) {
	repo := newFakeRepo()
	repo.put(pendingBooking("LFB-AAAA0003", 50000))

	gw := &fakeGateway{verifyTx: &domain.Transaction{Status: "abandoned", Amount: 5000000}}
	notifier := &fakeNotifier{}
	uc := newVerifyUC(repo, gw, notifier)

	_, err := uc.ExecutePoll(context.Background(), "LFB-AAAA0003")
	if !httperr.IsBusiness(err, httperr.CodePaymentNotSuccessful) {
		t.Fatalf("err = %v, want payment_not_successful", err)
	}

	stored, _ := repo.GetByReference(context.Background(), "LFB-AAAA0003")
	if stored.PaymentVerified || stored.Status != string(domain.StatusPendingPayment) {
		t.Error("unsuccessful transaction must leave the booking untouched")
	}
}

// Re-verifying an already-paid booking must return early: no gateway call,
// no second notification.
func TestVerifyIsIdempotent(t *testing.T) {
	repo := newFakeRepo()
	repo.put(pendingBooking("LFB-AAAA0004", 50000))

	gw := &fakeGateway{verifyTx: &domain.Transaction{Status: "success", Amount: 5000000, Channel: "bank"}}
	notifier := &fakeNotifier{}
	uc := newVerifyUC(repo, gw, notifier)

	if _, err := uc.ExecutePoll(context.Background(), "LFB-AAAA0004"); err != nil {
		t.Fatalf("first poll: %v", err)
	}
	if gw.verifyCount() != 1 {
		t.Fatalf("gateway calls after first poll = %d, want 1", gw.verifyCount())
	}

	b, err := uc.ExecutePoll(context.Background(), "LFB-AAAA0004")
	if err != nil {
		t.Fatalf("second poll: %v", err)
	}
	if !b.PaymentVerified {
		t.Error("second poll should report the booking as verified")
	}
	if gw.verifyCount() != 1 {
		t.Errorf("gateway calls = %d, want 1 (guard must run before the gateway)", gw.verifyCount())
	}
	if notifier.count() != 1 {
		t.Errorf("notifications = %d, want 1", notifier.count())
	}
}

func TestVerifyUnknownReference(t *testing.T) {
	uc := newVerifyUC(newFakeRepo(), &fakeGateway{}, &fakeNotifier{})

	_, err := uc.ExecutePoll(context.Background(), "LFB-MISSING00")
	if !httperr.IsBusiness(err, httperr.CodeNotFound) {
		t.Fatalf("err = %v, want not_found", err)
	}
}

func TestVerifyGatewayFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.put(pendingBooking("LFB-AAAA0005", 50000))

	gw := &fakeGateway{verifyErr: context.DeadlineExceeded}
	uc := newVerifyUC(repo, gw, &fakeNotifier{})

	_, err := uc.ExecutePoll(context.Background(), "LFB-AAAA0005")
	if !httperr.IsBusiness(err, httperr.CodeGatewayError) {
		t.Fatalf("err = %v, want gateway_error", err)
	}
}

// The poll and the webhook race on the same reference: both may pass the
// guards, but the conditional flip admits exactly one winner and exactly one
// round of notifications.
func TestVerifyConcurrentTriggersNotifyOnce(t *testing.T) {
	for round := 0; round < 50; round++ {
		repo := newFakeRepo()
		repo.put(pendingBooking("LFB-RACE00001", 75000))

		tx := &domain.Transaction{Status: "success", Amount: 7500000, Channel: "card"}
		gw := &fakeGateway{verifyTx: tx}
		notifier := &fakeNotifier{}
		uc := newVerifyUC(repo, gw, notifier)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			uc.ExecutePoll(context.Background(), "LFB-RACE00001")
		}()
		go func() {
			defer wg.Done()
			uc.ExecuteWebhook(context.Background(), "LFB-RACE00001", tx)
		}()
		wg.Wait()

		stored, _ := repo.GetByReference(context.Background(), "LFB-RACE00001")
		if !stored.PaymentVerified {
			t.Fatal("booking should end verified")
		}
		if got := notifier.count(); got != 1 {
			t.Fatalf("round %d: notifications = %d, want exactly 1", round, got)
		}
	}
}

func TestWebhookTriggerDoesNotCallGateway(t *testing.T) {
	repo := newFakeRepo()
	repo.put(pendingBooking("LFB-AAAA0006", 50000))

	gw := &fakeGateway{}
	notifier := &fakeNotifier{}
	uc := newVerifyUC(repo, gw, notifier)

	tx := &domain.Transaction{Status: "success", Amount: 5000000, Channel: "ussd"}
	b, err := uc.ExecuteWebhook(context.Background(), "LFB-AAAA0006", tx)
	if err != nil {
		t.Fatalf("ExecuteWebhook: %v", err)
	}
	if !b.PaymentVerified {
		t.Error("booking should be verified")
	}
	if gw.verifyCount() != 0 {
		t.Errorf("gateway calls = %d, want 0 for webhook trigger", gw.verifyCount())
	}
	if notifier.count() != 1 {
		t.Errorf("notifications = %d, want 1", notifier.count())
	}
}

func TestVerifyUsesInjectedClock(t *testing.T) {
	repo := newFakeRepo()
	repo.put(pendingBooking("LFB-AAAA0007", 50000))

	fixed := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	uc := newVerifyUC(repo, &fakeGateway{
		verifyTx: &domain.Transaction{Status: "success", Amount: 5000000, Channel: "card"},
	}, &fakeNotifier{})
	uc.now = func() time.Time { return fixed }

	b, err := uc.ExecutePoll(context.Background(), "LFB-AAAA0007")
	if err != nil {
		t.Fatalf("ExecutePoll: %v", err)
	}
	if b.PaymentVerifiedAt == nil || !b.PaymentVerifiedAt.Equal(fixed) {
		t.Errorf("verified_at = %v, want %v", b.PaymentVerifiedAt, fixed)
	}
}
