package utils

import "testing"

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("hash equals plaintext")
	}

	if !CheckPasswordHash("correct horse battery staple", hash) {
		t.Error("correct password should verify")
	}
	if CheckPasswordHash("wrong password", hash) {
		t.Error("wrong password should not verify")
	}
}
