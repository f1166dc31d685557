package finder

import (
	"strconv"

	"github.com/go-git/go-billy/v5"
	"github.com/yuya-takeyama/dupscan/pkg/logger"
)

// Attribute is the value a stage extracts from a file. Exactly one of Size or
// Digest is meaningful for a given stage; two files match at a stage when
// their Attributes are equal.
type Attribute struct {
	Size   int64
	Digest string
}

func (a Attribute) String() string {
	if a.Digest != "" {
		return a.Digest
	}
	return strconv.FormatInt(a.Size, 10)
}

// ExtractFunc computes the Attribute of the file at path
type ExtractFunc func(fsys billy.Filesystem, path string) (Attribute, error)

// Stage is one narrowing pass of a duplicate search
type Stage struct {
	Name    string
	Extract ExtractFunc
}

// Options configures a Job
type Options struct {
	// Stages run in order. An empty list performs no grouping.
	Stages   []Stage
	Excludes []string
	// Filesystem defaults to the host filesystem
	Filesystem billy.Filesystem
	Logger     logger.Logger
}
