package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestHasVideoExtension(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"clip.mp4", true},
		{"CLIP.MP4", true},
		{"movie.Mkv", true},
		{"old.avi", true},
		{"phone.MOV", true},
		{"stream.flv", true},
		{".mp4", true},
		{"archive.mp4.txt", false},
		{"notes.txt", false},
		{"clip.webm", false},
		{"clip.m4v", false},
		{"mp4", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasVideoExtension(tt.name); got != tt.want {
				t.Errorf("HasVideoExtension(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestGetExtension(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/videos/a.MP4", ".mp4"},
		{"b.mkv", ".mkv"},
		{"dir.d/noext", ""},
		{"/x/y/Z.Mov", ".mov"},
		{"/videos/.mp4", ""},
		{"/videos/..MKV", ""},
		{"/videos/.hidden.FLV", ".flv"},
		{"/videos/.", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := GetExtension(tt.path); got != tt.want {
				t.Errorf("GetExtension(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestIsRegularFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.mp4")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if !IsRegularFile(file) {
		t.Errorf("IsRegularFile(%q) = false, want true", file)
	}
	if IsRegularFile(dir) {
		t.Errorf("IsRegularFile(%q) = true, want false for a directory", dir)
	}
	if IsRegularFile(filepath.Join(dir, "missing.mp4")) {
		t.Error("IsRegularFile() = true for a missing file")
	}

	link := filepath.Join(dir, "link.mp4")
	if err := os.Symlink(file, link); err == nil && !IsRegularFile(link) {
		t.Errorf("IsRegularFile(%q) = false, want true for a symlink to a file", link)
	}
}
