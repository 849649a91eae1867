package pools

import (
	"strings"
	"testing"
)

func TestNewInviteCodeAlphabet(t *testing.T) {
	seen := make(map[string]struct{})
	for range 50 {
		code, err := newInviteCode()
		if err != nil {
			t.Fatalf("newInviteCode: %v", err)
		}
		if len(code) != inviteCodeLength {
			t.Fatalf("expected %d characters, got %q", inviteCodeLength, code)
		}
		for _, r := range code {
			if !strings.ContainsRune(inviteAlphabet, r) {
				t.Fatalf("code %q contains %q outside the alphabet", code, r)
			}
		}
		seen[code] = struct{}{}
	}
	if len(seen) < 2 {
		t.Fatalf("50 generated codes produced %d distinct values", len(seen))
	}
}

func TestNormalizeInviteCode(t *testing.T) {
	if got := normalizeInviteCode("  abc234 "); got != "ABC234" {
		t.Fatalf("expected ABC234, got %q", got)
	}
	if got := normalizeInviteCode("\tXYZ789\n"); got != "XYZ789" {
		t.Fatalf("expected XYZ789, got %q", got)
	}
}
