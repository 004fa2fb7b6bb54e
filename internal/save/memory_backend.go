package save

import "time"

// MemoryBackend is for tests.
type MemoryBackend struct {
	blob      []byte
	hasBlob   bool
	logout    time.Time
	hasLogout bool

	// FailWrites simulates persistence I/O failure.
	FailWrites bool
}

func NewMemoryBackend() *MemoryBackend { return &MemoryBackend{} }

func (b *MemoryBackend) ReadBlob() ([]byte, bool, error) {
	if !b.hasBlob {
		return nil, false, nil
	}
	out := make([]byte, len(b.blob))
	copy(out, b.blob)
	return out, true, nil
}

func (b *MemoryBackend) WriteBlob(blob []byte) error {
	if b.FailWrites {
		return errWriteFailed
	}
	b.blob = make([]byte, len(blob))
	copy(b.blob, blob)
	b.hasBlob = true
	return nil
}

func (b *MemoryBackend) ReadLogout() (time.Time, bool, error) {
	return b.logout, b.hasLogout, nil
}

func (b *MemoryBackend) WriteLogout(t time.Time) error {
	if b.FailWrites {
		return errWriteFailed
	}
	b.logout = t
	b.hasLogout = true
	return nil
}

func (b *MemoryBackend) Close() error { return nil }

// SeedBlob pre-loads a raw blob, as if written by a previous session.
func (b *MemoryBackend) SeedBlob(blob []byte) {
	b.blob = blob
	b.hasBlob = true
}
