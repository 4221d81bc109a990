package crypto

import "testing"

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := GenerateHash("s3cret-password")
	if err != nil {
		t.Fatalf("failed to hash: %v", err)
	}

	if !CheckPassword("s3cret-password", string(hash)) {
		t.Error("correct password rejected")
	}
	if CheckPassword("wrong-password", string(hash)) {
		t.Error("wrong password accepted")
	}
}

func TestCheckPassword_EmptyHash(t *testing.T) {
	if CheckPassword("anything", "") {
		t.Error("empty hash must never verify")
	}
}

func TestGenerateHash_Salted(t *testing.T) {
	h1, err := GenerateHash("same-password")
	if err != nil {
		t.Fatal(err)
	}
	h2, err := GenerateHash("same-password")
	if err != nil {
		t.Fatal(err)
	}
	if string(h1) == string(h2) {
		t.Error("expected distinct salted hashes for the same password")
	}
}
