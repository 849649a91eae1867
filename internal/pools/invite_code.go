package pools

import (
	"crypto/rand"
	"strings"
)

// inviteAlphabet skips visually ambiguous characters (0/O, 1/I) so codes
// survive being read aloud or typed from a screenshot.
const inviteAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const inviteCodeLength = 6

func newInviteCode() (string, error) {
	buf := make([]byte, inviteCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i := range buf {
		buf[i] = inviteAlphabet[int(buf[i])%len(inviteAlphabet)]
	}
	return string(buf), nil
}

// normalizeInviteCode makes join-code matching forgiving: surrounding
// whitespace and case never matter.
func normalizeInviteCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
