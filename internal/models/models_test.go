package models

import (
	"testing"
	"time"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Blockchain Law 101", "blockchain-law-101"},
		{"  AI & The Courtroom  ", "ai-the-courtroom"},
		{"Web3: What's Next?", "web3-what-s-next"},
		{"---", ""},
		{"Énergie Légale", "énergie-légale"},
	}

	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestBookingAmountMinor(t *testing.T) {
	cases := []struct {
		amount float64
		want   int64
	}{
		{75000, 7500000},
		{50000, 5000000},
		{99.99, 9999},
		{0.1, 10},
		{1234.565, 123457}, // rounds, never truncates
	}

	for _, tc := range cases {
		b := ConsultationBooking{Amount: tc.amount}
		if got := b.AmountMinor(); got != tc.want {
			t.Errorf("AmountMinor(%v) = %d, want %d", tc.amount, got, tc.want)
		}
	}
}

func TestBookingServiceName(t *testing.T) {
	b := ConsultationBooking{}
	if got := b.ServiceName(); got != "General Consultation" {
		t.Errorf("empty booking ServiceName = %q", got)
	}

	b.CustomServiceDescription = "NFT licensing advice"
	if got := b.ServiceName(); got != "NFT licensing advice" {
		t.Errorf("custom description ServiceName = %q", got)
	}

	b.Service = &ConsultationService{Name: "IP Strategy Session"}
	if got := b.ServiceName(); got != "IP Strategy Session" {
		t.Errorf("service ServiceName = %q, service should win", got)
	}
}

func TestGrantApplicationWindow(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	deadline := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)

	g := Grant{Status: GrantStatusOpen, ApplicationDeadline: &deadline}
	if !g.IsApplicationOpen(now) {
		t.Error("grant before deadline should be open")
	}

	days := g.DaysUntilDeadline(now)
	if days == nil || *days != 8 {
		t.Errorf("days until deadline = %v, want 8", days)
	}

	past := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	g.ApplicationDeadline = &past
	if g.IsApplicationOpen(now) {
		t.Error("grant past deadline should be closed")
	}
	if d := g.DaysUntilDeadline(now); d == nil || *d != 0 {
		t.Errorf("past deadline days = %v, want 0", d)
	}

	g = Grant{Status: GrantStatusUpcoming}
	if g.IsApplicationOpen(now) {
		t.Error("upcoming grant is not open regardless of deadline")
	}

	g = Grant{Status: GrantStatusOpen}
	if !g.IsApplicationOpen(now) {
		t.Error("open grant without deadline stays open")
	}
	if g.DaysUntilDeadline(now) != nil {
		t.Error("no deadline means nil days")
	}
}
