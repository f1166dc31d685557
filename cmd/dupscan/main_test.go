package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yuya-takeyama/dupscan/internal/report"
	"github.com/yuya-takeyama/dupscan/pkg/finder"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     scanConfig
		wantErr error
		fails   bool
	}{
		{name: "defaults", cfg: scanConfig{directory: ".", stages: finder.DefaultStageNames()}},
		{name: "no stages", cfg: scanConfig{directory: "."}},
		{name: "missing directory", cfg: scanConfig{}, fails: true},
		{name: "unknown stage", cfg: scanConfig{directory: ".", stages: []string{"size", "mtime"}}, wantErr: finder.ErrUnknownStage},
		{name: "repeated stage", cfg: scanConfig{directory: ".", stages: []string{"md5", "md5"}}, wantErr: finder.ErrDuplicateStage},
		{name: "bad report uri", cfg: scanConfig{directory: ".", reportS3URI: "s3://bucket"}, fails: true},
		{name: "quiet and verbose", cfg: scanConfig{directory: ".", quiet: true, verbose: true}, fails: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateConfig(&tt.cfg)
			wantFail := tt.fails || tt.wantErr != nil
			if (err != nil) != wantFail {
				t.Fatalf("validateConfig() error = %v, wantErr %v", err, wantFail)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("validateConfig() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRunWritesJSONReport(t *testing.T) {
	root := t.TempDir()
	files := map[string]string{
		"a.txt":     "X",
		"b.txt":     "X",
		"c.txt":     "Y",
		"sub/d.txt": "X",
	}
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	jsonFile := filepath.Join(t.TempDir(), "report.json")
	cfg := &scanConfig{
		directory: root,
		stages:    []string{"size", "sha1"},
		jsonFile:  jsonFile,
		quiet:     true,
	}
	if err := run(context.Background(), cfg); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	data, err := os.ReadFile(jsonFile)
	if err != nil {
		t.Fatal(err)
	}
	var rep report.Report
	if err := json.Unmarshal(data, &rep); err != nil {
		t.Fatal(err)
	}

	if len(rep.Groups) != 1 {
		t.Fatalf("groups = %+v, want 1 group", rep.Groups)
	}
	want := []string{"a.txt", "b.txt", "sub/d.txt"}
	got := rep.Groups[0].Files
	if len(got) != len(want) {
		t.Fatalf("files = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("files = %v, want %v", got, want)
			break
		}
	}
	if rep.Summary.WastedBytes != 2 {
		t.Errorf("wasted bytes = %d, want 2", rep.Summary.WastedBytes)
	}
}

func TestRunMissingDirectory(t *testing.T) {
	cfg := &scanConfig{
		directory: filepath.Join(t.TempDir(), "missing"),
		stages:    finder.DefaultStageNames(),
		quiet:     true,
	}
	if err := run(context.Background(), cfg); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("run() error = %v, want os.ErrNotExist", err)
	}
}

func TestRootCommandReturnsErrorsToCaller(t *testing.T) {
	cmd := newRootCmd()
	if !cmd.SilenceErrors {
		t.Error("SilenceErrors = false, errors would be printed twice")
	}

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--quiet", filepath.Join(t.TempDir(), "missing")})

	if err := cmd.Execute(); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Execute() error = %v, want os.ErrNotExist", err)
	}
	if out.Len() != 0 {
		t.Errorf("command printed %q, want errors left to the caller", out.String())
	}
}
