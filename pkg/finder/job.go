// Package finder runs a duplicate search over a directory tree.
//
// A Job walks the tree once and then applies its stages in order. Each stage
// groups the survivors of the previous one by an extracted Attribute and drops
// files that have no match. The first stage sees every regular file under the
// root. A digest stage that is not preceded by a size stage therefore hashes
// the whole tree.
//
// Execution is sequential and uncached: every call to Execute walks the tree
// again, and a file that survives N digest stages is read N times.
package finder

import (
	"fmt"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/yuya-takeyama/dupscan/pkg/comparer"
	"github.com/yuya-takeyama/dupscan/pkg/logger"
	"github.com/yuya-takeyama/dupscan/pkg/walker"
)

// Job is a configured duplicate search
type Job struct {
	root     string
	stages   []Stage
	excludes []string
	fs       billy.Filesystem
	logger   logger.Logger
}

// NewJob creates a duplicate search over root
func NewJob(root string, opts Options) *Job {
	fsys := opts.Filesystem
	if fsys == nil {
		fsys = osfs.New("/")
	}
	l := opts.Logger
	if l == nil {
		l = &logger.NullLogger{}
	}

	return &Job{
		root:     root,
		stages:   append([]Stage(nil), opts.Stages...),
		excludes: append([]string(nil), opts.Excludes...),
		fs:       fsys,
		logger:   l,
	}
}

func (j *Job) Filesystem() billy.Filesystem {
	return j.fs
}

// Execute walks the root and runs every stage, returning the groups that
// survive the last one. Errors abort the run and no groups are returned.
func (j *Job) Execute() ([]comparer.Group, error) {
	w, err := walker.NewWalker(j.fs, j.root, j.excludes)
	if err != nil {
		return nil, fmt.Errorf("traverse %s: %w", j.root, err)
	}

	files, err := w.Walk()
	if err != nil {
		return nil, fmt.Errorf("traverse %s: %w", j.root, err)
	}

	candidates := walker.Paths(files)
	groups := []comparer.Group{}

	for i, stage := range j.stages {
		if len(candidates) == 0 {
			for _, rest := range j.stages[i:] {
				j.logger.StageSkipped(rest.Name, "no candidates")
			}
			return []comparer.Group{}, nil
		}

		j.logger.StageStart(stage.Name, len(candidates))

		extract := stage.Extract
		groups, err = comparer.GroupBy(candidates, func(path string) (Attribute, error) {
			return extract(j.fs, path)
		})
		if err != nil {
			return nil, fmt.Errorf("stage %s: %w", stage.Name, err)
		}

		j.logger.StageComplete(stage.Name, len(groups))
		candidates = comparer.Flatten(groups)
	}

	return groups, nil
}
