package archive

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	zip "github.com/hidez8891/zip"
)

type entry struct {
	name    string
	content string
	dir     bool
}

func makeArchive(t *testing.T, entries []entry) string {
	t.Helper()
	zipPath := filepath.Join(t.TempDir(), "formulas.zip")

	zipFile, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("Failed to create zip file: %v", err)
	}
	w := zip.NewWriter(zipFile)
	for _, e := range entries {
		fh := &zip.FileHeader{Name: e.name, Method: zip.Deflate}
		if e.dir {
			fh.SetMode(os.ModeDir | 0755)
		}
		fw, err := w.CreateHeader(fh)
		if err != nil {
			t.Fatalf("Failed to create %s in zip: %v", e.name, err)
		}
		if !e.dir {
			if _, err := fw.Write([]byte(e.content)); err != nil {
				t.Fatalf("Failed to write content for %s: %v", e.name, err)
			}
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	zipFile.Close()
	return zipPath
}

func isMathML(name string) bool { return strings.HasSuffix(name, ".mml") }

func TestWalk(t *testing.T) {
	zipPath := makeArchive(t, []entry{
		{name: "algebra/", dir: true},
		{name: "algebra/quadratic.mml", content: "<math/>"},
		{name: "algebra/notes.txt", content: "notes"},
		{name: "euler.mml", content: "<math><mi>e</mi></math>"},
	})

	tests := []struct {
		name  string
		match func(string) bool
		want  []string
	}{
		{"mathml only", isMathML, []string{"algebra/quadratic.mml", "euler.mml"}},
		{"everything", nil, []string{"algebra/quadratic.mml", "algebra/notes.txt", "euler.mml"}},
		{"nothing", func(string) bool { return false }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var visited []string
			err := Walk(zipPath, tt.match, func(archive string, file *zip.File) error {
				if archive != zipPath {
					t.Errorf("archive = %s, want %s", archive, zipPath)
				}
				visited = append(visited, file.Name)
				return nil
			})
			if err != nil {
				t.Fatalf("Walk() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, visited); diff != "" {
				t.Errorf("Walk() mismatch (-want +got):\n%s", diff)
			}
		})
	}

	t.Run("walkFn returns error", func(t *testing.T) {
		expectedErr := errors.New("test error")
		err := Walk(zipPath, isMathML, func(string, *zip.File) error {
			return expectedErr
		})
		if !errors.Is(err, expectedErr) {
			t.Errorf("Walk() error = %v, want %v", err, expectedErr)
		}
	})
}

func TestWalk_InvalidArchive(t *testing.T) {
	t.Run("nonexistent file", func(t *testing.T) {
		if err := Walk("/nonexistent/file.zip", nil, func(string, *zip.File) error { return nil }); err == nil {
			t.Error("Expected error for nonexistent file")
		}
	})

	t.Run("invalid zip file", func(t *testing.T) {
		invalidZip := filepath.Join(t.TempDir(), "invalid.zip")
		if err := os.WriteFile(invalidZip, []byte("not a zip file"), 0644); err != nil {
			t.Fatalf("Failed to create invalid zip: %v", err)
		}
		if err := Walk(invalidZip, nil, func(string, *zip.File) error { return nil }); err == nil {
			t.Error("Expected error for invalid zip file")
		}
	})

	t.Run("path traversal", func(t *testing.T) {
		zipPath := makeArchive(t, []entry{{name: "../evil.mml", content: "<math/>"}})
		err := Walk(zipPath, nil, func(string, *zip.File) error { return nil })
		if err == nil || !strings.Contains(err.Error(), "unsafe path") {
			t.Errorf("Walk() error = %v, want unsafe path", err)
		}
	})
}

func TestReadFile(t *testing.T) {
	zipPath := makeArchive(t, []entry{
		{name: "a.mml", content: "<math><mn>1</mn></math>"},
		{name: "b.mml", content: "<math><mn>2</mn></math>"},
	})

	data, err := ReadFile(zipPath, "b.mml")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if got := string(data); got != "<math><mn>2</mn></math>" {
		t.Errorf("ReadFile() = %q", got)
	}

	if _, err := ReadFile(zipPath, "c.mml"); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("ReadFile() error = %v, want not found", err)
	}
}

func TestIsSafePath(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"a/b.mml", true},
		{"a..b/c.mml", true},
		{"/abs.mml", false},
		{`\abs.mml`, false},
		{"a/../b.mml", false},
		{"..", false},
	}
	for _, tt := range tests {
		if got := isSafePath(tt.path); got != tt.want {
			t.Errorf("isSafePath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
