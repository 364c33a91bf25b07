package main

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"text/template"

	"github.com/go-task/slim-sprig/v3"
	"github.com/gosimple/slug"
	zip "github.com/hidez8891/zip"
	"github.com/maruel/natural"

	"mview/archive"
	"mview/config"
)

var sourceExts = []string{".mml", ".mathml", ".xml"}

func isSource(name string) bool {
	return slices.Contains(sourceExts, strings.ToLower(filepath.Ext(name)))
}

// source is a single input file, rel is its path relative to the argument it
// was found under. Sources packed into zip archive have entry set.
type source struct {
	path  string
	entry string
	rel   string
}

func (s source) String() string {
	if s.entry == "" {
		return s.path
	}
	return s.path + "!" + s.entry
}

// name is source base name without extension.
func (s source) name() string {
	base := filepath.Base(s.path)
	if s.entry != "" {
		base = path.Base(s.entry)
	}
	return strings.TrimSuffix(base, path.Ext(base))
}

func archivedSources(arc string) ([]source, error) {
	var res []source
	err := archive.Walk(arc, isSource, func(_ string, f *zip.File) error {
		res = append(res, source{path: arc, entry: f.Name, rel: filepath.FromSlash(f.Name)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unable to read archive '%s': %w", arc, err)
	}
	return res, nil
}

// collectSources expands directories recursively and lists MathML files in
// zip archives. Results of every argument are sorted in natural order,
// duplicates are skipped.
func collectSources(args []string) ([]source, error) {
	var (
		res  []source
		seen = make(map[string]bool)
	)
	for _, arg := range args {
		fi, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("unable to access source '%s': %w", arg, err)
		}
		var found []source
		switch {
		case !fi.IsDir() && strings.EqualFold(filepath.Ext(arg), ".zip"):
			if found, err = archivedSources(arg); err != nil {
				return nil, err
			}
		case !fi.IsDir():
			found = append(found, source{path: arg, rel: filepath.Base(arg)})
		default:
			err = filepath.WalkDir(arg, func(name string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if d.IsDir() || !isSource(name) {
					return nil
				}
				rel, err := filepath.Rel(arg, name)
				if err != nil {
					return err
				}
				found = append(found, source{path: name, rel: rel})
				return nil
			})
			if err != nil {
				return nil, fmt.Errorf("unable to walk source directory '%s': %w", arg, err)
			}
		}
		slices.SortFunc(found, func(a, b source) int {
			switch {
			case natural.Less(a.String(), b.String()):
				return -1
			case natural.Less(b.String(), a.String()):
				return 1
			}
			return 0
		})
		for _, s := range found {
			abs, err := filepath.Abs(s.path)
			if err != nil {
				abs = s.path
			}
			key := source{path: abs, entry: s.entry}.String()
			if seen[key] {
				continue
			}
			seen[key] = true
			res = append(res, s)
		}
	}
	return res, nil
}

// nameValues are available to output name template.
type nameValues struct {
	Source  string
	Index   int
	Format  string
	Session string
}

func newNameTemplate(text string) (*template.Template, error) {
	funcs := sprig.FuncMap()
	funcs["slugify"] = slug.Make
	tmpl, err := template.New("output").Funcs(funcs).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("unable to parse output name template: %w", err)
	}
	return tmpl, nil
}

// outputName expands template, empty result falls back to the source name.
// Characters not allowed in file names are replaced, extension is always
// appended.
func outputName(tmpl *template.Template, vals nameValues, ext string) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, vals); err != nil {
		return "", fmt.Errorf("unable to expand output name template: %w", err)
	}
	name := strings.TrimSpace(buf.String())
	if name == "" {
		name = vals.Source
	}
	return config.CleanFileName(name) + ext, nil
}
