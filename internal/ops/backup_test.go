package ops

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestBackupRestoreSaveDir_RoundTrip(t *testing.T) {
	src := filepath.Join(t.TempDir(), "src")

	files := map[string]string{
		"save.json":           `{"version":2,"ledger":{"coins":5000,"gems":10}}`,
		"logout.json":         `{"logout":"2026-08-30T10:00:00Z"}`,
		"archive/old_v1.json": `{"version":1}`,
	}
	for rel, content := range files {
		path := filepath.Join(src, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir parent %s: %v", path, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}

	archive := filepath.Join(t.TempDir(), "backup.tar.zst")
	if err := BackupSaveDir(src, archive); err != nil {
		t.Fatalf("backup failed: %v", err)
	}
	if _, err := os.Stat(archive); err != nil {
		t.Fatalf("archive missing: %v", err)
	}

	restoreDir := filepath.Join(t.TempDir(), "restore")
	if err := RestoreSaveDir(archive, restoreDir); err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	got := map[string]string{}
	err := filepath.WalkDir(restoreDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(restoreDir, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		got[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("walk restore dir: %v", err)
	}

	if !reflect.DeepEqual(got, files) {
		t.Fatalf("restored files mismatch:\ngot  %v\nwant %v", got, files)
	}
}

func TestRestoreSaveDir_RejectsTraversal(t *testing.T) {
	if _, err := sanitizeArchiveRelPath("../evil.json"); err == nil {
		t.Fatal("expected traversal path to be rejected")
	}
	if _, err := sanitizeArchiveRelPath("/abs.json"); err == nil {
		t.Fatal("expected absolute path to be rejected")
	}
}
