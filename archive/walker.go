// Package archive gives access to formulas packed into zip archives.
package archive

import (
	"fmt"
	"io"
	"path"
	"strings"

	zip "github.com/hidez8891/zip"
)

// WalkFunc is called for every matching file in archive visited by Walk. If
// an error is returned, processing stops.
type WalkFunc func(archive string, file *zip.File) error

// Walk visits all regular files in the archive accepted by match in archive
// order. Entries with path traversal components ("..") or absolute paths
// make the whole archive unacceptable.
func Walk(archive string, match func(name string) bool, walkFn WalkFunc) error {

	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		name := f.FileHeader.Name
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if f.FileInfo().IsDir() || (match != nil && !match(name)) {
			continue
		}
		if err := walkFn(archive, f); err != nil {
			return err
		}
	}
	return nil
}

// ReadFile returns content of named entry.
func ReadFile(archive, name string) ([]byte, error) {
	var (
		data  []byte
		found bool
	)
	err := Walk(archive, func(n string) bool { return n == name }, func(_ string, f *zip.File) error {
		rc, err := f.Open()
		if err != nil {
			return err
		}
		defer rc.Close()
		data, err = io.ReadAll(rc)
		found = true
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("unable to read %q from %s: %w", name, archive, err)
	}
	if !found {
		return nil, fmt.Errorf("entry %q not found in %s", name, archive)
	}
	return data, nil
}

// isSafePath returns false for paths that could escape the extraction
// directory: absolute paths and those containing ".." components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) {
		return false
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
