package session

import (
	"testing"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	s := &Store{signingKey: []byte("test-key")}

	signed, err := s.sign("doc-123")
	if err != nil {
		t.Fatal(err)
	}

	docID, err := s.verify(signed)
	if err != nil {
		t.Fatal(err)
	}
	if docID != "doc-123" {
		t.Errorf("verify returned %q, want %q", docID, "doc-123")
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	s := &Store{signingKey: []byte("test-key")}

	signed, err := s.sign("doc-123")
	if err != nil {
		t.Fatal(err)
	}

	tampered := signed[:len(signed)-2] + "xx"
	if _, err := s.verify(tampered); err == nil {
		t.Error("verify accepted a tampered token")
	}
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	signer := &Store{signingKey: []byte("key-a")}
	verifier := &Store{signingKey: []byte("key-b")}

	signed, err := signer.sign("doc-123")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := verifier.verify(signed); err == nil {
		t.Error("verify accepted a token signed with a different key")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	s := &Store{signingKey: []byte("test-key")}

	for _, bad := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := s.verify(bad); err == nil {
			t.Errorf("verify accepted %q", bad)
		}
	}
}
