// Package id mints trade identifiers.
//
// Identifiers are ULIDs: 26 characters, lexicographically sortable by creation
// time, so a journal listed by id is also listed in the order trades were logged.
package id

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Generator mints monotonic ULIDs. It is safe for concurrent use.
type Generator struct {
	mu   sync.Mutex
	mono io.Reader
	now  func() time.Time
}

// NewGenerator returns a Generator seeded from crypto/rand. A nil clock means
// time.Now.
func NewGenerator(clock func() time.Time) *Generator {
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if clock == nil {
		clock = time.Now
	}
	return &Generator{
		// Monotonic keeps ids minted within the same millisecond increasing.
		mono: ulid.Monotonic(rand.New(rand.NewSource(seed)), 0),
		now:  clock,
	}
}

// Mint returns a fresh id together with the instant it was minted at. Journal
// code uses the instant as the record's creation time so the two never drift.
func (g *Generator) Mint() (string, time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()

	at := g.now().UTC()
	id, err := ulid.New(ulid.Timestamp(at), g.mono)
	if err != nil {
		// Only possible if the entropy source fails or the clock is before 1970.
		panic(err)
	}
	return id.String(), at
}

// New returns a fresh id string.
func (g *Generator) New() string {
	s, _ := g.Mint()
	return s
}

var std = NewGenerator(nil)

// New returns a ULID string from the package generator.
func New() string {
	return std.New()
}

// Mint returns a ULID string and its timestamp from the package generator.
func Mint() (string, time.Time) {
	return std.Mint()
}

// Time extracts the millisecond timestamp encoded in an id.
func Time(s string) (time.Time, error) {
	u, err := ulid.ParseStrict(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse id %q: %w", s, err)
	}
	return ulid.Time(u.Time()).UTC(), nil
}
