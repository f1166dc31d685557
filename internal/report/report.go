package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/yuya-takeyama/dupscan/pkg/comparer"
)

// Report is the presentation form of a finished duplicate search
type Report struct {
	Root    string   `json:"root"`
	Stages  []string `json:"stages"`
	Groups  []Group  `json:"groups"`
	Summary Summary  `json:"summary"`
}

type Group struct {
	Size  int64    `json:"size"`
	Files []string `json:"files"`
}

type Summary struct {
	Groups      int   `json:"groups"`
	Files       int   `json:"files"`
	Redundant   int   `json:"redundant"`
	WastedBytes int64 `json:"wasted_bytes"`
}

// Build turns groups into a Report. The size of each group is read from its
// first member and paths are reported relative to root.
func Build(fsys billy.Filesystem, root string, stages []string, groups []comparer.Group) (*Report, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("get absolute path: %w", err)
	}

	r := &Report{
		Root:   absRoot,
		Stages: append([]string{}, stages...),
		Groups: []Group{},
	}

	for _, g := range groups {
		if len(g) == 0 {
			continue
		}

		info, err := fsys.Stat(g[0])
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", g[0], err)
		}

		files := make([]string, len(g))
		for i, path := range g {
			files[i] = relativePath(absRoot, path)
		}

		r.Groups = append(r.Groups, Group{Size: info.Size(), Files: files})
		r.Summary.Groups++
		r.Summary.Files += len(g)
		r.Summary.Redundant += len(g) - 1
		r.Summary.WastedBytes += info.Size() * int64(len(g)-1)
	}

	return r, nil
}

func relativePath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path // fallback to original path
	}
	return filepath.ToSlash(rel)
}

// Marshal encodes the report as indented JSON
func Marshal(r *Report) ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return data, nil
}

// WriteJSON writes the report to path as indented JSON
func WriteJSON(path string, r *Report) error {
	data, err := Marshal(r)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// Print writes one block per group, separated by blank lines
func Print(w io.Writer, r *Report) error {
	for i, g := range r.Groups {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "# %d files, %d bytes each\n", len(g.Files), g.Size); err != nil {
			return err
		}
		for _, f := range g.Files {
			if _, err := fmt.Fprintln(w, f); err != nil {
				return err
			}
		}
	}
	return nil
}
