package save

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// FileBackend keeps the blob and the logout anchor in two files under
// one data directory, mirroring how the blob and logout key were stored
// under separate keys historically.
type FileBackend struct {
	dir string
}

type logoutFile struct {
	Logout time.Time `json:"logout"`
}

func NewFileBackend(dataDir string) (*FileBackend, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	return &FileBackend{dir: dataDir}, nil
}

func (b *FileBackend) blobPath() string   { return filepath.Join(b.dir, "save.json") }
func (b *FileBackend) logoutPath() string { return filepath.Join(b.dir, "logout.json") }

func (b *FileBackend) ReadBlob() ([]byte, bool, error) {
	raw, err := os.ReadFile(b.blobPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return raw, true, nil
}

func (b *FileBackend) WriteBlob(blob []byte) error {
	return os.WriteFile(b.blobPath(), blob, 0o644)
}

func (b *FileBackend) ReadLogout() (time.Time, bool, error) {
	raw, err := os.ReadFile(b.logoutPath())
	if err != nil {
		if os.IsNotExist(err) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, err
	}
	var lf logoutFile
	if err := json.Unmarshal(raw, &lf); err != nil {
		return time.Time{}, false, err
	}
	if lf.Logout.IsZero() {
		return time.Time{}, false, nil
	}
	return lf.Logout, true, nil
}

func (b *FileBackend) WriteLogout(t time.Time) error {
	raw, err := json.Marshal(logoutFile{Logout: t})
	if err != nil {
		return err
	}
	return os.WriteFile(b.logoutPath(), raw, 0o644)
}

func (b *FileBackend) Close() error { return nil }
