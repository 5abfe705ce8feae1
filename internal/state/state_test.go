package state

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileIsAnonymous(t *testing.T) {
	t.Parallel()

	s, err := loadFrom(filepath.Join(t.TempDir(), "auth.json"))
	if err != nil {
		t.Fatalf("loadFrom returned error: %v", err)
	}
	if s.Authenticated() {
		t.Fatal("missing state reported as authenticated")
	}
	if _, ok := s.Identity(); ok {
		t.Fatal("missing state resolved an identity")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tutor", "auth.json")
	in := &State{AccessToken: "tok", UserID: "u1", Username: "student01"}
	if err := saveTo(path, in); err != nil {
		t.Fatalf("saveTo returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat state file: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("state file permissions %o, want 600", perm)
	}

	out, err := loadFrom(path)
	if err != nil {
		t.Fatalf("loadFrom returned error: %v", err)
	}
	if *out != *in {
		t.Fatalf("round trip mismatch: %+v vs %+v", out, in)
	}
	id, ok := out.Identity()
	if !ok || id != "u1" {
		t.Fatalf("identity not resolved: %q %v", id, ok)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "auth.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := loadFrom(path); err == nil {
		t.Fatal("expected error for corrupt state file")
	}
}
