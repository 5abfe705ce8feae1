// Package session generates the client-side conversation keys the
// tutor service uses to correlate a logical conversation.
package session

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/term"
)

// Key is an opaque per-conversation correlation identifier. The server
// validates it against `session_<ms>_<base36>_<8 chars>` and a 24 hour
// freshness window, so keys are never persisted across runs.
type Key string

// Generator produces conversation keys from the current time, a weak
// random source, and a static device fingerprint. It is not a source of
// cryptographic uniqueness; collisions are accepted as negligible.
type Generator struct {
	now         func() time.Time
	rng         *rand.Rand
	fingerprint string
}

// NewGenerator creates a Generator seeded from the wall clock.
func NewGenerator() *Generator {
	return &Generator{
		now:         time.Now,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		fingerprint: deviceFingerprint(),
	}
}

// Generate returns a fresh conversation key. Call it once at startup
// and again whenever the user starts a new conversation, never
// mid-stream.
func (g *Generator) Generate() Key {
	ms := g.now().UnixMilli()
	nonce := strconv.FormatUint(g.rng.Uint64(), 36)
	return Key(fmt.Sprintf("session_%d_%s_%s", ms, nonce, hashTail(g.fingerprint)))
}

// hashTail reduces the fingerprint to the 8-character base64 tail the
// server expects ([A-Za-z0-9+/]{8}).
func hashTail(fingerprint string) string {
	sum := xxhash.Sum64String(fingerprint)
	var raw [8]byte
	binary.BigEndian.PutUint64(raw[:], sum)
	return base64.StdEncoding.EncodeToString(raw[:])[:8]
}

// deviceFingerprint approximates the browser user-agent/locale/screen
// triple with what a terminal process can observe.
func deviceFingerprint() string {
	host, _ := os.Hostname()
	cols, rows := 0, 0
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cols, rows = w, h
	}
	return fmt.Sprintf("%s/%s/%s/%s/%dx%d",
		host, runtime.GOOS, runtime.GOARCH, os.Getenv("TERM"), cols, rows)
}
