package filestore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteRecipeImage(t *testing.T) {
	dir := t.TempDir()
	fs := New(dir, DefaultURLPrefix)

	data := []byte("image-bytes")
	urlPath, n, err := fs.WriteRecipeImage("01ARZ3NDEKTSV4RRFFQ69G5FAV", ".png", data)
	if err != nil {
		t.Fatalf("writing image: %v", err)
	}
	if n != len(data) {
		t.Errorf("expected %d bytes written, got %d", len(data), n)
	}
	if urlPath != "/media/recipes/01ARZ3NDEKTSV4RRFFQ69G5FAV.png" {
		t.Errorf("unexpected url path %q", urlPath)
	}

	onDisk := filepath.Join(dir, "recipes", "01ARZ3NDEKTSV4RRFFQ69G5FAV.png")
	contents, err := os.ReadFile(onDisk)
	if err != nil {
		t.Fatalf("reading written file: %v", err)
	}
	if string(contents) != string(data) {
		t.Errorf("file contents mismatch: %q", contents)
	}
}

func TestDeleteURLPath(t *testing.T) {
	dir := t.TempDir()
	fs := New(dir, DefaultURLPrefix)

	urlPath, _, err := fs.WriteRecipeImage("abc", ".jpg", []byte("x"))
	if err != nil {
		t.Fatalf("writing image: %v", err)
	}

	if err := fs.DeleteURLPath(urlPath); err != nil {
		t.Fatalf("deleting by url path: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "recipes", "abc.jpg")); !os.IsNotExist(err) {
		t.Errorf("expected file to be removed, stat err: %v", err)
	}
}

func TestURLPathMapping(t *testing.T) {
	got := absPathToURLPath("/data/media/recipes/1.png", "/data/media", "/media")
	if got != "/media/recipes/1.png" {
		t.Errorf("unexpected url path %q", got)
	}

	if got := trimURLPathPrefix("/media/recipes/1.png", "/media"); got != "recipes/1.png" {
		t.Errorf("unexpected trimmed path %q", got)
	}
}
