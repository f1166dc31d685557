package finder

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/yuya-takeyama/dupscan/pkg/checksum"
)

const StageSize = "size"

var (
	ErrUnknownStage   = errors.New("unknown stage")
	ErrDuplicateStage = errors.New("duplicate stage")
)

// SizeStage groups files by their byte length
func SizeStage() Stage {
	return Stage{
		Name:    StageSize,
		Extract: extractSize,
	}
}

// HashStage groups files by the digest of their full content
func HashStage(alg checksum.Algorithm) Stage {
	return Stage{
		Name: alg.String(),
		Extract: func(fsys billy.Filesystem, path string) (Attribute, error) {
			digest, err := checksum.CalculateFile(fsys, path, alg)
			if err != nil {
				return Attribute{}, err
			}
			return Attribute{Digest: digest}, nil
		},
	}
}

func extractSize(fsys billy.Filesystem, path string) (Attribute, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		return Attribute{}, fmt.Errorf("stat file: %w", err)
	}
	return Attribute{Size: info.Size()}, nil
}

// DefaultStages compares by size and then by SHA-1
func DefaultStages() []Stage {
	return []Stage{SizeStage(), HashStage(checksum.SHA1)}
}

// DefaultStageNames returns the names of DefaultStages
func DefaultStageNames() []string {
	return []string{StageSize, checksum.SHA1.String()}
}

// ParseStages builds stages from names such as "size", "md5" or "sha1",
// keeping their order. Each stage may appear at most once.
func ParseStages(names []string) ([]Stage, error) {
	stages := make([]Stage, 0, len(names))
	seen := make(map[string]bool)

	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))

		var stage Stage
		if name == StageSize {
			stage = SizeStage()
		} else {
			alg, err := checksum.ParseAlgorithm(name)
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrUnknownStage, raw)
			}
			stage = HashStage(alg)
		}

		if seen[stage.Name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateStage, stage.Name)
		}
		seen[stage.Name] = true
		stages = append(stages, stage)
	}

	return stages, nil
}

// StageNames returns the name of each stage in order
func StageNames(stages []Stage) []string {
	names := make([]string, len(stages))
	for i, s := range stages {
		names[i] = s.Name
	}
	return names
}
