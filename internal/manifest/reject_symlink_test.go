package manifest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestRejectSymlinkPath_Target(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink not permitted on Windows")
	}
	tmp := t.TempDir()
	target := filepath.Join(tmp, "target.csv")
	if err := os.WriteFile(target, []byte("a,b"), 0600); err != nil {
		t.Fatalf("write target: %v", err)
	}
	link := filepath.Join(tmp, "manifest.csv")
	if err := os.Symlink(target, link); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	if err := RejectSymlinkPath(link); err == nil {
		t.Fatalf("expected symlink rejection")
	}
}

func TestRejectSymlinkPath_ParentDir(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink not permitted on Windows")
	}
	tmp := t.TempDir()
	realDir := filepath.Join(tmp, "real")
	if err := os.MkdirAll(realDir, 0700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	linkDir := filepath.Join(tmp, "link")
	if err := os.Symlink(realDir, linkDir); err != nil {
		t.Fatalf("symlink dir: %v", err)
	}
	path := filepath.Join(linkDir, "manifest.csv")

	if err := RejectSymlinkPath(path); err == nil {
		t.Fatalf("expected symlinked directory rejection")
	}
}

func TestRejectSymlinkPath_PlainFile(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "manifest.csv")
	if err := os.WriteFile(path, []byte("a,b"), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := RejectSymlinkPath(path); err != nil {
		t.Fatalf("plain file rejected: %v", err)
	}
}

func TestRejectSymlinkPath_NonExistentIsAllowed(t *testing.T) {
	if err := RejectSymlinkPath(filepath.Join(t.TempDir(), "future.csv")); err != nil {
		t.Fatalf("non-existent path rejected: %v", err)
	}
}

func TestRejectSymlinkPath_Empty(t *testing.T) {
	if err := RejectSymlinkPath("  "); err == nil {
		t.Fatalf("expected empty path rejection")
	}
}
