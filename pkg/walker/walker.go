package walker

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// ErrNotDirectory is returned when the walk root exists but is not a directory
var ErrNotDirectory = errors.New("root is not a directory")

const maxRootLinks = 40

// FileInfo represents a regular file found under the root
type FileInfo struct {
	Path    string // Root joined with RelPath
	RelPath string // Relative path from root, slash separated
	Size    int64
	Mode    os.FileMode
}

// Walker walks regular files with exclude pattern support
type Walker struct {
	fs       billy.Filesystem
	root     string // as given, reported in FileInfo.Path
	walkRoot string // root with symlinks resolved
	excludes []string
}

// NewWalker creates a new file walker
func NewWalker(fsys billy.Filesystem, root string, excludes []string) (*Walker, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("get absolute path: %w", err)
	}

	walkRoot, err := resolveRoot(fsys, absRoot)
	if err != nil {
		return nil, err
	}

	// Validate root exists and is a directory
	info, err := fsys.Stat(walkRoot)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, absRoot)
	}

	for _, pattern := range excludes {
		if !doublestar.ValidatePattern(strings.TrimSuffix(pattern, "/")) {
			return nil, fmt.Errorf("invalid exclude pattern: %q", pattern)
		}
	}

	return &Walker{
		fs:       fsys,
		root:     absRoot,
		walkRoot: walkRoot,
		excludes: excludes,
	}, nil
}

// resolveRoot follows the root while it is a symlink so the walk descends
// into the directory it points at
func resolveRoot(fsys billy.Filesystem, root string) (string, error) {
	resolved := root
	for i := 0; i < maxRootLinks; i++ {
		info, err := fsys.Lstat(resolved)
		if err != nil {
			return "", fmt.Errorf("stat root: %w", err)
		}
		if info.Mode()&os.ModeSymlink == 0 {
			return resolved, nil
		}

		target, err := fsys.Readlink(resolved)
		if err != nil {
			return "", fmt.Errorf("read root link: %w", err)
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(resolved), target)
		}
		resolved = target
	}
	return "", fmt.Errorf("resolve root %s: too many levels of symbolic links", root)
}

// Walk walks the file tree and returns regular files in lexical order.
// A symlinked root is followed, but symlinks below it are not, and special
// files are skipped. Paths are reported under the root as given.
func (w *Walker) Walk() ([]FileInfo, error) {
	files := []FileInfo{}

	err := util.Walk(w.fs, w.walkRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if path == w.walkRoot {
			return nil
		}

		relPath, err := filepath.Rel(w.walkRoot, path)
		if err != nil {
			return fmt.Errorf("get relative path: %w", err)
		}

		// Convert to forward slashes for pattern matching
		relPath = filepath.ToSlash(relPath)

		if info.IsDir() {
			if w.isExcludedDir(relPath) {
				return filepath.SkipDir
			}
			return nil
		}

		if !info.Mode().IsRegular() {
			return nil
		}

		if w.isExcluded(relPath) {
			return nil
		}

		files = append(files, FileInfo{
			Path:    filepath.Join(w.root, filepath.FromSlash(relPath)),
			RelPath: relPath,
			Size:    info.Size(),
			Mode:    info.Mode(),
		})

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}

	return files, nil
}

// Paths returns the Path of every file in order
func Paths(files []FileInfo) []string {
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}
	return paths
}

// isExcludedDir checks if a directory matches a pattern ending with /
func (w *Walker) isExcludedDir(path string) bool {
	for _, pattern := range w.excludes {
		if !strings.HasSuffix(pattern, "/") {
			continue
		}
		if matched, _ := doublestar.Match(strings.TrimSuffix(pattern, "/"), path); matched {
			return true
		}
	}
	return false
}

// isExcluded checks if a file path matches any exclude pattern
func (w *Walker) isExcluded(path string) bool {
	for _, pattern := range w.excludes {
		// Handle directory patterns (ending with /)
		if strings.HasSuffix(pattern, "/") {
			dirPattern := strings.TrimSuffix(pattern, "/")
			parts := strings.Split(path, "/")
			for i := 1; i < len(parts); i++ {
				if matched, _ := doublestar.Match(dirPattern, strings.Join(parts[:i], "/")); matched {
					return true
				}
			}
			continue
		}

		if matched, _ := doublestar.Match(pattern, path); matched {
			return true
		}
	}
	return false
}
