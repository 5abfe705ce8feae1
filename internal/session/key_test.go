package session

import (
	"math/rand"
	"regexp"
	"testing"
	"time"
)

// keyPattern mirrors the server-side validation regex.
var keyPattern = regexp.MustCompile(`^session_\d+_[a-z0-9]+_[A-Za-z0-9+/]{8}$`)

func testGenerator(seed int64) *Generator {
	return &Generator{
		now:         func() time.Time { return time.UnixMilli(1700000000000) },
		rng:         rand.New(rand.NewSource(seed)),
		fingerprint: "host/linux/amd64/xterm-256color/80x24",
	}
}

func TestGenerateMatchesServerFormat(t *testing.T) {
	t.Parallel()

	g := testGenerator(1)
	for i := 0; i < 100; i++ {
		key := g.Generate()
		if !keyPattern.MatchString(string(key)) {
			t.Fatalf("key %q does not match server format", key)
		}
	}
}

func TestGenerateEmbedsTimestamp(t *testing.T) {
	t.Parallel()

	key := string(testGenerator(1).Generate())
	want := "session_1700000000000_"
	if len(key) < len(want) || key[:len(want)] != want {
		t.Fatalf("key %q does not start with %q", key, want)
	}
}

func TestGenerateKeysDiffer(t *testing.T) {
	t.Parallel()

	g := testGenerator(42)
	seen := make(map[Key]bool)
	for i := 0; i < 1000; i++ {
		key := g.Generate()
		if seen[key] {
			t.Fatalf("duplicate key after %d generations: %q", i, key)
		}
		seen[key] = true
	}
}

func TestHashTailIsStable(t *testing.T) {
	t.Parallel()

	a := hashTail("host/linux/amd64/xterm/80x24")
	b := hashTail("host/linux/amd64/xterm/80x24")
	if a != b {
		t.Fatalf("hash tail not stable: %q vs %q", a, b)
	}
	if c := hashTail("other/linux/amd64/xterm/80x24"); c == a {
		t.Fatalf("distinct fingerprints produced identical tails %q", a)
	}
}
