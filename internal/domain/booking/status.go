package booking

import (
	"sort"
	"strings"

	"github.com/lightfieldlegal/lightfield-api/internal/httperr"
)

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPendingPayment Status = "pending_payment"
	StatusPaid           Status = "paid"
	StatusConfirmed      Status = "confirmed"
	StatusCompleted      Status = "completed"
	StatusCancelled      Status = "cancelled"
	StatusRefunded       Status = "refunded"
)

// transitions is the fixed admin transition table. pending_payment -> paid
// is deliberately absent: only the payment reconciler may make that move.
// completed -> cancelled is absent by business policy.
var transitions = map[Status][]Status{
	StatusPendingPayment: {StatusCancelled},
	StatusPaid:           {StatusConfirmed, StatusCancelled, StatusRefunded},
	StatusConfirmed:      {StatusCompleted, StatusCancelled, StatusRefunded},
	StatusCompleted:      {StatusRefunded},
	StatusCancelled:      {},
	StatusRefunded:       {},
}

// IsValid reports whether s is a known booking status.
func (s Status) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

// AllowedTransitions returns the admin targets reachable from s, sorted.
func AllowedTransitions(from Status) []Status {
	out := append([]Status(nil), transitions[from]...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// CanTransition validates an admin status change. A self-transition is a
// no-op and always allowed.
func CanTransition(from, to Status) error {
	if !to.IsValid() {
		return httperr.ErrBusinessf(httperr.CodeValidation, "unknown status "+string(to))
	}
	if from == to {
		return nil
	}
	for _, allowed := range transitions[from] {
		if allowed == to {
			return nil
		}
	}
	return httperr.ErrBusinessf(
		httperr.CodeInvalidTransition,
		"cannot transition from '"+string(from)+"' to '"+string(to)+"'; allowed: "+describeTargets(from),
	)
}

func describeTargets(from Status) string {
	allowed := transitions[from]
	if len(allowed) == 0 {
		return "none (terminal state)"
	}
	names := make([]string, len(allowed))
	for i, s := range allowed {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
