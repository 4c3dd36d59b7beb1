package booking

import (
	"strings"

	"github.com/google/uuid"
)

// NewReference generates an opaque, human-shareable booking reference used
// as the correlation key with the payment gateway.
func NewReference() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "LFB-" + strings.ToUpper(raw[:12])
}
