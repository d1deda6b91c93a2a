package auth

import (
	"strings"
	"testing"
	"time"
)

func TestTokenSignAndVerify(t *testing.T) {
	m := NewManager(nil, "test-secret", time.Hour)

	id := "b2c7a9a4-2f1e-4f7c-9a63-1d2e3f4a5b6c"
	token := id + "." + m.sign(id)

	got, err := m.verify(token)
	if err != nil {
		t.Fatalf("verify() error = %v", err)
	}
	if got != id {
		t.Errorf("verify() = %q, want %q", got, id)
	}
}

func TestTokenTampering(t *testing.T) {
	m := NewManager(nil, "test-secret", time.Hour)

	id := "b2c7a9a4-2f1e-4f7c-9a63-1d2e3f4a5b6c"
	token := id + "." + m.sign(id)

	tests := []struct {
		name  string
		token string
	}{
		{"swapped id", "other-id." + m.sign(id)},
		{"truncated signature", token[:len(token)-2]},
		{"no separator", strings.ReplaceAll(token, ".", "")},
		{"empty token", ""},
		{"empty signature", id + "."},
		{"non-hex signature", id + ".zzzz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := m.verify(tt.token); err != ErrInvalidToken {
				t.Errorf("verify(%q) error = %v, want ErrInvalidToken", tt.token, err)
			}
		})
	}
}

func TestTokenSignedWithDifferentSecret(t *testing.T) {
	m1 := NewManager(nil, "secret-one", time.Hour)
	m2 := NewManager(nil, "secret-two", time.Hour)

	id := "b2c7a9a4-2f1e-4f7c-9a63-1d2e3f4a5b6c"
	token := id + "." + m1.sign(id)

	if _, err := m2.verify(token); err != ErrInvalidToken {
		t.Errorf("verify() with wrong secret error = %v, want ErrInvalidToken", err)
	}
}
