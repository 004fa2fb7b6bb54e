package save

import (
	"encoding/json"
	"log"
	"time"

	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/clock"
)

// Backend stores the raw save blob plus a logout timestamp kept apart
// from the main blob, so the offline-gap anchor survives even when a
// main save write fails.
type Backend interface {
	ReadBlob() ([]byte, bool, error)
	WriteBlob([]byte) error
	ReadLogout() (time.Time, bool, error)
	WriteLogout(time.Time) error
	Close() error
}

// Store owns the canonical in-memory document. There is exactly one
// logical writer; every mutating operation elsewhere ends by calling
// Save. Load and save failures degrade (defaults / skip) and log, they
// never propagate into the simulation.
type Store struct {
	backend Backend
	clock   clock.Clock
	log     *log.Logger
	doc     *Document
}

func Open(b Backend, clk clock.Clock, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	s := &Store{backend: b, clock: clk, log: logger}
	s.doc = s.load()
	return s
}

// Data returns the canonical document. Callers must not retain it
// across mutating calls; re-resolve every time.
func (s *Store) Data() *Document {
	return s.doc
}

// load merges the stored blob over a structurally complete default
// document: decoding into a pre-filled default gives default-then-
// override per field at every nesting level, so fields added to the
// schema after the blob was written come back with their defaults.
func (s *Store) load() *Document {
	now := s.clock.Now()
	raw, ok, err := s.backend.ReadBlob()
	if err != nil {
		s.log.Printf("save: load failed, using defaults: %v", err)
		return DefaultDocument(now)
	}
	if !ok {
		return DefaultDocument(now)
	}

	doc := DefaultDocument(now)
	if err := json.Unmarshal(raw, doc); err != nil {
		s.log.Printf("save: corrupt blob, using defaults: %v", err)
		return DefaultDocument(now)
	}
	backfill(doc, now)
	return doc
}

// backfill repairs fields json decoding can leave unusable (explicit
// nulls, zero timestamps from very old blobs).
func backfill(d *Document, now time.Time) {
	if d.Items == nil {
		d.Items = []Item{}
	}
	if d.Collected == nil {
		d.Collected = []Collected{}
	}
	if d.DailyTasks == nil {
		d.DailyTasks = []TaskProgress{}
	}
	if d.Eggs == nil {
		d.Eggs = []Egg{}
	}
	if d.Decor == nil {
		d.Decor = []PlacedDecor{}
	}
	if d.MinigamePlayed == nil {
		d.MinigamePlayed = map[string]bool{}
	}
	if d.Ledger.EnergyAt.IsZero() {
		d.Ledger.EnergyAt = now
	}
	if d.PlayerLevel < 1 {
		d.PlayerLevel = 1
	}
	if d.CafeLevel < 1 {
		d.CafeLevel = 1
	}
	if d.PlayDays < 1 {
		d.PlayDays = 1
	}
	if d.GridCols < 1 {
		d.GridCols = 5
	}
	if d.GridRows < 1 {
		d.GridRows = 5
	}
	if d.BossGoal < 1 {
		d.BossGoal = 20
	}
	if d.Guild != nil && d.Guild.CoopGoal < 1 {
		d.Guild.CoopGoal = 30
		d.Guild.CoopProgress = 0
		d.Guild.CoopClaimedDate = ""
	}
	d.Version = CurrentVersion
}

// Save writes the current document and stamps the last-save time.
// Write failures keep the in-memory state and log; there is no partial
// write rollback, last writer wins.
func (s *Store) Save() {
	s.doc.LastSave = s.clock.Now()
	b, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		s.log.Printf("save: marshal failed: %v", err)
		return
	}
	if err := s.backend.WriteBlob(b); err != nil {
		s.log.Printf("save: write failed: %v", err)
	}
}

// RecordLogout stamps the logout anchor used for offline earnings.
// It is persisted independently of the main blob.
func (s *Store) RecordLogout() {
	now := s.clock.Now()
	s.doc.Logout = now
	if err := s.backend.WriteLogout(now); err != nil {
		s.log.Printf("save: logout write failed: %v", err)
	}
	s.Save()
}

// LogoutTime returns the last recorded logout, preferring the
// independently persisted anchor, then the blob, then "now".
func (s *Store) LogoutTime() time.Time {
	if t, ok, err := s.backend.ReadLogout(); err == nil && ok {
		return t
	}
	if !s.doc.Logout.IsZero() {
		return s.doc.Logout
	}
	return s.clock.Now()
}

// Reset discards all progress. Debug and prestige-free reset path.
func (s *Store) Reset() {
	s.doc = DefaultDocument(s.clock.Now())
	s.Save()
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}
