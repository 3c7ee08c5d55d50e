//go:build unit

package auth

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("gizli-parola")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "gizli-parola" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !CheckPassword(hash, "gizli-parola") {
		t.Error("expected the right password to verify")
	}
	if CheckPassword(hash, "yanlis-parola") {
		t.Error("expected a wrong password to fail")
	}
	if CheckPassword("not-a-hash", "gizli-parola") {
		t.Error("expected a malformed hash to fail")
	}
}

func TestPrincipalRoles(t *testing.T) {
	var anonymous *Principal
	if anonymous.IsAdmin() || anonymous.CanWrite() || anonymous.Owns(1) {
		t.Error("a nil principal must have no capabilities")
	}

	reader := &Principal{UserID: 3, Role: "reader"}
	if reader.CanWrite() {
		t.Error("readers must not create posts")
	}
	if !reader.Owns(3) || reader.Owns(4) {
		t.Error("ownership must compare user IDs")
	}

	author := &Principal{UserID: 2, Role: "author"}
	if !author.CanWrite() || author.IsAdmin() {
		t.Error("authors write but do not administer")
	}

	admin := &Principal{UserID: 1, Role: "admin"}
	if !admin.CanWrite() || !admin.IsAdmin() {
		t.Error("admins both write and administer")
	}
}
