package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/yuya-takeyama/dupscan/pkg/comparer"
)

func sampleReport(t *testing.T) *Report {
	t.Helper()
	fsys := memfs.New()
	files := map[string]string{
		"/data/a.txt":     "XXXX",
		"/data/sub/b.txt": "XXXX",
		"/data/c.txt":     "XXXX",
		"/data/d":         "yy",
		"/data/e":         "yy",
	}
	for name, content := range files {
		if err := util.WriteFile(fsys, name, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	groups := []comparer.Group{
		{"/data/a.txt", "/data/sub/b.txt", "/data/c.txt"},
		{"/data/d", "/data/e"},
	}
	r, err := Build(fsys, "/data", []string{"size", "sha1"}, groups)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return r
}

func TestBuild(t *testing.T) {
	r := sampleReport(t)

	want := &Report{
		Root:   "/data",
		Stages: []string{"size", "sha1"},
		Groups: []Group{
			{Size: 4, Files: []string{"a.txt", "sub/b.txt", "c.txt"}},
			{Size: 2, Files: []string{"d", "e"}},
		},
		Summary: Summary{Groups: 2, Files: 5, Redundant: 3, WastedBytes: 10},
	}
	if !reflect.DeepEqual(r, want) {
		t.Errorf("Build() = %+v, want %+v", r, want)
	}
}

func TestBuildEmpty(t *testing.T) {
	r, err := Build(memfs.New(), "/data", nil, []comparer.Group{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if r.Groups == nil || len(r.Groups) != 0 {
		t.Errorf("Groups = %#v, want empty slice", r.Groups)
	}

	data, err := Marshal(r)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if groups, ok := decoded["groups"].([]interface{}); !ok || len(groups) != 0 {
		t.Errorf("groups = %#v, want []", decoded["groups"])
	}
}

func TestBuildMissingFile(t *testing.T) {
	_, err := Build(memfs.New(), "/data", nil, []comparer.Group{{"/data/gone", "/data/gone2"}})
	if err == nil {
		t.Error("Build() error = nil, want stat error")
	}
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	if err := Print(&buf, sampleReport(t)); err != nil {
		t.Fatalf("Print() error = %v", err)
	}

	want := "# 3 files, 4 bytes each\na.txt\nsub/b.txt\nc.txt\n\n# 2 files, 2 bytes each\nd\ne\n"
	if got := buf.String(); got != want {
		t.Errorf("Print() = %q, want %q", got, want)
	}
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	r := sampleReport(t)

	if err := WriteJSON(path, r); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got Report
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !reflect.DeepEqual(&got, r) {
		t.Errorf("decoded report = %+v, want %+v", got, r)
	}
}
