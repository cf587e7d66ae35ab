//go:build go1.18

package domain

import (
	"testing"
)

// FuzzParseUserID checks that parsing never panics on arbitrary input and
// that the emptiness invariant holds both ways.
func FuzzParseUserID(f *testing.F) {
	f.Add("")
	f.Add("trc-001")
	f.Add("'; DROP TABLE users;--")
	f.Add(string([]byte{0x00, 0x01, 0x02}))

	f.Fuzz(func(t *testing.T, input string) {
		uid, err := ParseUserID(input)
		if err != nil {
			if uid != "" {
				t.Errorf("error with non-empty id %q", uid)
			}
			return
		}
		if uid.String() != input {
			t.Errorf("id %q does not round-trip input %q", uid, input)
		}
		if uid == "" {
			t.Error("accepted empty id")
		}
	})
}
