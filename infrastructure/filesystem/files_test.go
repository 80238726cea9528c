package filesystem

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFiles_ExistsAndRemove(t *testing.T) {
	f := NewFiles()
	path := filepath.Join(t.TempDir(), "audio.aac")

	if f.Exists(path) {
		t.Fatal("Exists() = true before file was created")
	}
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if !f.Exists(path) {
		t.Fatal("Exists() = false after file was created")
	}
	if err := f.Remove(path); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if err := f.Remove(path); err != nil {
		t.Errorf("Remove() of missing file error = %v, want nil", err)
	}
}

func TestFiles_EnsureParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "nested", "video.mp4")

	if err := NewFiles().EnsureParentDir(path); err != nil {
		t.Fatalf("EnsureParentDir() error = %v", err)
	}
	if info, err := os.Stat(filepath.Dir(path)); err != nil || !info.IsDir() {
		t.Errorf("expected directory %s to exist", filepath.Dir(path))
	}
}

func TestFiles_MoveReplacesDestination(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "video_no_audio.mp4")
	dst := filepath.Join(dir, "output.mp4")

	if err := os.WriteFile(src, []byte("new"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dst, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := NewFiles().Move(src, dst); err != nil {
		t.Fatalf("Move() error = %v", err)
	}

	data, err := os.ReadFile(dst)
	if err != nil || string(data) != "new" {
		t.Errorf("destination = (%q, %v), want new", data, err)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("source should be gone after Move()")
	}
}

func TestFiles_MoveMissingSource(t *testing.T) {
	dir := t.TempDir()
	if err := NewFiles().Move(filepath.Join(dir, "missing"), filepath.Join(dir, "dst")); err == nil {
		t.Error("Move() expected error for missing source")
	}
}

func TestWorkspace_Lifecycle(t *testing.T) {
	root := filepath.Join(t.TempDir(), "temp_proj")
	factory := NewWorkspaceFactory(root)

	a, err := factory.Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	b, err := factory.Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if a.ID() == b.ID() {
		t.Errorf("workspaces share ID %q", a.ID())
	}

	audio := a.Path("audio.aac")
	if filepath.Dir(audio) != filepath.Join(root, a.ID()) {
		t.Errorf("Path() = %q, want inside %s", audio, filepath.Join(root, a.ID()))
	}
	if err := os.WriteFile(audio, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := a.Remove(); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, a.ID())); !os.IsNotExist(err) {
		t.Error("workspace directory should be removed")
	}
	if _, err := os.Stat(root); err != nil {
		t.Error("root should remain while another workspace uses it")
	}

	if err := b.Remove(); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if _, err := os.Stat(root); !os.IsNotExist(err) {
		t.Error("empty root should be removed with the last workspace")
	}
}
