package token

import (
	"errors"
	"testing"
	"time"
)

func TestGenerateValidate(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	tok, err := m.Generate("session-1")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := m.Validate(tok)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.SessionID != "session-1" {
		t.Errorf("SessionID = %q, want session-1", claims.SessionID)
	}
}

func TestValidateRejects(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	good, err := m.Generate("session-1")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	expiredManager := NewManager("test-secret", time.Hour)
	expiredManager.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := expiredManager.Generate("session-1")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	otherKey, err := NewManager("other-secret", time.Hour).Generate("session-1")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "empty", token: "", wantErr: ErrMissingToken},
		{name: "garbage", token: "not-a-token", wantErr: ErrInvalidToken},
		{name: "expired", token: expired, wantErr: ErrInvalidToken},
		{name: "wrong key", token: otherKey, wantErr: ErrInvalidToken},
		{name: "tampered", token: good + "x", wantErr: ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Validate(tt.token)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRandomSecret(t *testing.T) {
	a, err := RandomSecret()
	if err != nil {
		t.Fatalf("RandomSecret failed: %v", err)
	}
	b, err := RandomSecret()
	if err != nil {
		t.Fatalf("RandomSecret failed: %v", err)
	}
	if len(a) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(a))
	}
	if a == b {
		t.Error("expected distinct secrets")
	}
}
