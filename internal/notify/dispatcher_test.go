package notify

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/lightfieldlegal/lightfield-api/internal/models"
)

type recordingMailer struct {
	mu   sync.Mutex
	sent []Message
	err  error
}

func (m *recordingMailer) Send(to, subject, html string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, Message{To: to, Subject: subject, HTML: html})
	return nil
}

func (m *recordingMailer) snapshot() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Message(nil), m.sent...)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestDispatcherDeliversOffRequestPath(t *testing.T) {
	mailer := &recordingMailer{}
	d := NewDispatcher(mailer, zap.NewNop())

	d.Dispatch(Message{To: "ada@example.com", Subject: "hello", HTML: "<p>hi</p>"})

	waitFor(t, func() bool { return len(mailer.snapshot()) == 1 })

	got := mailer.snapshot()[0]
	if got.To != "ada@example.com" || got.Subject != "hello" {
		t.Errorf("delivered %+v", got)
	}
}

func TestDispatchNeverBlocksOnFailure(t *testing.T) {
	mailer := &recordingMailer{err: fmt.Errorf("smtp down")}
	d := NewDispatcher(mailer, zap.NewNop())

	done := make(chan struct{})
	go func() {
		for i := 0; i < 500; i++ {
			d.Dispatch(Message{To: "x@example.com", Subject: "s"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Dispatch blocked while the mailer was failing")
	}
}

func TestPaymentConfirmedSendsClientAndAdminMail(t *testing.T) {
	mailer := &recordingMailer{}
	d := NewDispatcher(mailer, zap.NewNop())
	n := NewEmailBookingNotifier(d, "partners@lightfieldlegal.com")

	date := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)
	n.PaymentConfirmed(&models.ConsultationBooking{
		Reference:     "LFB-9F2A41C03B7D",
		ClientName:    "Ada Obi",
		ClientEmail:   "ada@example.com",
		ClientPhone:   "+2348012345678",
		PreferredDate: date,
		PreferredTime: "10:00",
		Amount:        75000,
		Currency:      "NGN",
		Service:       &models.ConsultationService{Name: "IP Strategy Session"},
	})

	waitFor(t, func() bool { return len(mailer.snapshot()) == 2 })

	byRecipient := map[string]Message{}
	for _, m := range mailer.snapshot() {
		byRecipient[m.To] = m
	}

	client, ok := byRecipient["ada@example.com"]
	if !ok {
		t.Fatal("no client confirmation sent")
	}
	if !strings.Contains(client.Subject, "LFB-9F2A41C03B7D") {
		t.Errorf("client subject = %q, missing reference", client.Subject)
	}
	for _, want := range []string{"Ada Obi", "LFB-9F2A41C03B7D", "IP Strategy Session", "NGN 75000.00"} {
		if !strings.Contains(client.HTML, want) {
			t.Errorf("client mail missing %q", want)
		}
	}

	admin, ok := byRecipient["partners@lightfieldlegal.com"]
	if !ok {
		t.Fatal("no admin alert sent")
	}
	for _, want := range []string{"ada@example.com", "+2348012345678", "2026-04-02"} {
		if !strings.Contains(admin.HTML, want) {
			t.Errorf("admin mail missing %q", want)
		}
	}
}
