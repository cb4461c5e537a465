package secrets

import (
	"encoding/base64"
	"testing"
)

func TestSealOpenRoundTrip(t *testing.T) {
	k, err := NewKeyring("k1", map[string][]byte{
		"k1": mustKey(t, "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA="),
	})
	if err != nil {
		t.Fatalf("new keyring: %v", err)
	}

	raw, err := k.Seal("sk-or-v1-secret")
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	out, err := k.Open(raw)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if out != "sk-or-v1-secret" {
		t.Fatalf("expected original value, got %q", out)
	}
}

func TestOpenAfterRotation(t *testing.T) {
	oldKey := mustKey(t, "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA=")
	newKey := mustKey(t, "AQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQE=")

	oldRing, err := NewKeyring("old", map[string][]byte{"old": oldKey})
	if err != nil {
		t.Fatalf("old keyring: %v", err)
	}
	sealed, err := oldRing.Seal("legacy")
	if err != nil {
		t.Fatalf("seal: %v", err)
	}

	rotated, err := NewKeyring("new", map[string][]byte{"old": oldKey, "new": newKey})
	if err != nil {
		t.Fatalf("rotated keyring: %v", err)
	}
	out, err := rotated.Open(sealed)
	if err != nil {
		t.Fatalf("open legacy value: %v", err)
	}
	if out != "legacy" {
		t.Fatalf("expected legacy value, got %q", out)
	}
}

func TestNewKeyringRejectsShortKey(t *testing.T) {
	_, err := NewKeyring("k1", map[string][]byte{"k1": []byte("short")})
	if err == nil {
		t.Fatal("expected error for short key")
	}
}

func mustKey(t *testing.T, b64 string) []byte {
	t.Helper()
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		t.Fatalf("decode key: %v", err)
	}
	return raw
}
