package booking

import (
	"strings"
	"testing"
)

func TestNewReferenceFormat(t *testing.T) {
	ref := NewReference()

	if !strings.HasPrefix(ref, "LFB-") {
		t.Fatalf("reference %q should start with LFB-", ref)
	}
	if len(ref) != len("LFB-")+12 {
		t.Fatalf("reference %q has length %d, want %d", ref, len(ref), len("LFB-")+12)
	}
	if ref != strings.ToUpper(ref) {
		t.Fatalf("reference %q should be uppercase", ref)
	}
}

func TestNewReferenceUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		ref := NewReference()
		if _, dup := seen[ref]; dup {
			t.Fatalf("duplicate reference %q after %d draws", ref, i)
		}
		seen[ref] = struct{}{}
	}
}
