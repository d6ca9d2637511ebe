package osfilesystem

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestFileSystem_WriteAndReadFile(t *testing.T) {
	fsys := New()
	path := filepath.Join(t.TempDir(), "a", "b", "frame.png")

	if err := fsys.WriteFile(path, []byte("hello world")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	data, err := fsys.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "hello world" {
		t.Errorf("got %q", data)
	}

	size, err := fsys.Size(path)
	if err != nil {
		t.Fatalf("Size failed: %v", err)
	}
	if size != 11 {
		t.Errorf("size %d, want 11", size)
	}
}

func TestFileSystem_ExistsAndRemove(t *testing.T) {
	fsys := New()
	dir := filepath.Join(t.TempDir(), "out")

	if err := fsys.MkdirAll(dir); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	exists, err := fsys.Exists(dir)
	if err != nil || !exists {
		t.Fatalf("expected directory to exist, got %v %v", exists, err)
	}
	if _, err := fsys.Size(dir); err == nil {
		t.Error("Size of a directory should fail")
	}

	if err := fsys.Remove(dir); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	exists, err = fsys.Exists(dir)
	if err != nil || exists {
		t.Errorf("expected directory to be removed, got %v %v", exists, err)
	}
}

func TestFileSystem_ListFiles(t *testing.T) {
	fsys := New()
	dir := t.TempDir()

	for _, name := range []string{"b.PNG", "a.png", "c.jpg", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.png"), 0755); err != nil {
		t.Fatal(err)
	}

	got, err := fsys.ListFiles(dir, ".png", ".jpg")
	if err != nil {
		t.Fatalf("ListFiles failed: %v", err)
	}
	want := []string{
		filepath.Join(dir, "a.png"),
		filepath.Join(dir, "b.PNG"),
		filepath.Join(dir, "c.jpg"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	all, err := fsys.ListFiles(dir)
	if err != nil {
		t.Fatalf("ListFiles failed: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("got %d files, want 4", len(all))
	}

	if _, err := fsys.ListFiles(filepath.Join(dir, "missing")); err == nil {
		t.Error("expected error for missing directory")
	}
}
