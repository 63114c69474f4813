package flatten_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"dirflat/pkg/flatten"

	"github.com/google/go-cmp/cmp"
)

func testConfig() flatten.Config {
	return flatten.Config{
		IncludeExts: []string{".py", ".xml"},
		SkipDirs:    []string{"tests"},
	}
}

// spyFS records every Open so tests can assert which paths the traversal
// actually touched.
type spyFS struct {
	inner  fs.FS
	opened []string
}

func (s *spyFS) Open(name string) (fs.File, error) {
	s.opened = append(s.opened, name)
	return s.inner.Open(name)
}

// failFS injects open errors for selected paths.
type failFS struct {
	inner fs.FS
	fail  map[string]error
}

func (f *failFS) Open(name string) (fs.File, error) {
	if err, ok := f.fail[name]; ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}
	return f.inner.Open(name)
}

func TestFlattenFS(t *testing.T) {
	fsys := fstest.MapFS{
		"a.py":       {Data: []byte("x=1")},
		"tests/b.py": {Data: []byte("skip me")},
		"sub/c.xml":  {Data: []byte("<r/>")},
		"sub/d.txt":  {Data: []byte("not matched")},
	}

	doc, err := flatten.New(testConfig(), nil).FlattenFS(fsys, "/proj")
	if err != nil {
		t.Fatalf("FlattenFS: %v", err)
	}

	want := &flatten.Document{
		Root: "/proj",
		Entries: []flatten.Entry{
			{Path: "a.py", Content: "x=1"},
			{Path: "sub/c.xml", Content: "<r/>"},
		},
	}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Errorf("document mismatch (-want +got):\n%s", diff)
	}

	if text := doc.String(); strings.Contains(text, "b.py") {
		t.Errorf("output must not mention files under skipped folders:\n%s", text)
	}
}

func TestFlattenFS_rendering(t *testing.T) {
	fsys := fstest.MapFS{
		"a.py":      {Data: []byte("x=1")},
		"sub/c.xml": {Data: []byte("<r/>")},
	}

	doc, err := flatten.New(testConfig(), nil).FlattenFS(fsys, "/proj")
	if err != nil {
		t.Fatalf("FlattenFS: %v", err)
	}

	want := "Root folder: /proj\n\n" +
		"[a.py]\nx=1\n\n" +
		"[sub/c.xml]\n<r/>\n\n"
	if diff := cmp.Diff(want, doc.String()); diff != "" {
		t.Errorf("rendered output mismatch (-want +got):\n%s", diff)
	}
}

func TestFlattenFS_prunesBeforeDescent(t *testing.T) {
	spy := &spyFS{inner: fstest.MapFS{
		"keep/a.py":       {Data: []byte("a")},
		"tests/deep/b.py": {Data: []byte("b")},
	}}

	doc, err := flatten.New(testConfig(), nil).FlattenFS(spy, "/proj")
	if err != nil {
		t.Fatalf("FlattenFS: %v", err)
	}

	if len(doc.Entries) != 1 || doc.Entries[0].Path != "keep/a.py" {
		t.Fatalf("unexpected entries: %+v", doc.Entries)
	}
	for _, name := range spy.opened {
		if name == "tests" || strings.HasPrefix(name, "tests/") {
			t.Errorf("traversal enumerated pruned directory: opened %q", name)
		}
	}
}

func TestFlattenFS_idempotent(t *testing.T) {
	fsys := fstest.MapFS{
		"b.py":      {Data: []byte("b")},
		"a.py":      {Data: []byte("a")},
		"sub/c.xml": {Data: []byte("c")},
	}
	f := flatten.New(testConfig(), nil)

	first, err := f.FlattenFS(fsys, "/proj")
	if err != nil {
		t.Fatalf("first FlattenFS: %v", err)
	}
	second, err := f.FlattenFS(fsys, "/proj")
	if err != nil {
		t.Fatalf("second FlattenFS: %v", err)
	}

	if first.String() != second.String() {
		t.Errorf("output not byte-identical across calls:\n%q\nvs\n%q", first, second)
	}
}

func TestFlattenFS_noMatches(t *testing.T) {
	fsys := fstest.MapFS{
		"README.md": {Data: []byte("docs")},
	}

	doc, err := flatten.New(testConfig(), nil).FlattenFS(fsys, "/proj")
	if err != nil {
		t.Fatalf("FlattenFS: %v", err)
	}

	if got, want := doc.String(), "Root folder: /proj\n\n"; got != want {
		t.Errorf("empty-match document = %q, want %q", got, want)
	}
}

func TestFlattenFS_readErrorContinues(t *testing.T) {
	fsys := &failFS{
		inner: fstest.MapFS{
			"bad.py":  {Data: []byte("never seen")},
			"good.py": {Data: []byte("still here")},
		},
		fail: map[string]error{"bad.py": fs.ErrPermission},
	}

	doc, err := flatten.New(testConfig(), nil).FlattenFS(fsys, "/proj")
	if err != nil {
		t.Fatalf("FlattenFS: %v", err)
	}

	if len(doc.Entries) != 2 {
		t.Fatalf("got %d entries, want 2: %+v", len(doc.Entries), doc.Entries)
	}
	if doc.Entries[0].Path != "bad.py" || !strings.HasPrefix(doc.Entries[0].Content, "Error reading file: ") {
		t.Errorf("failing file should carry inline error text, got %+v", doc.Entries[0])
	}
	if doc.Entries[1].Path != "good.py" || doc.Entries[1].Content != "still here" {
		t.Errorf("files after a read failure must still be processed, got %+v", doc.Entries[1])
	}
	if !strings.Contains(doc.String(), "[bad.py]\nError reading file: ") {
		t.Errorf("rendered output missing inline error block:\n%s", doc)
	}
}

func TestFlattenFS_invalidUTF8(t *testing.T) {
	fsys := fstest.MapFS{
		"bin.py": {Data: []byte{0xff, 0xfe, 0x01}},
	}

	doc, err := flatten.New(testConfig(), nil).FlattenFS(fsys, "/proj")
	if err != nil {
		t.Fatalf("FlattenFS: %v", err)
	}

	if len(doc.Entries) != 1 || doc.Entries[0].Content != "Error reading file: invalid UTF-8 content" {
		t.Errorf("binary content should degrade to inline error text, got %+v", doc.Entries)
	}
}

func TestFlattenDir_invalidDirectory(t *testing.T) {
	f := flatten.New(testConfig(), nil)

	if _, err := f.FlattenDir(filepath.Join(t.TempDir(), "missing")); !errors.Is(err, flatten.ErrInvalidDirectory) {
		t.Errorf("missing path: got %v, want ErrInvalidDirectory", err)
	}

	file := filepath.Join(t.TempDir(), "f.py")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := f.FlattenDir(file); !errors.Is(err, flatten.ErrInvalidDirectory) {
		t.Errorf("file path: got %v, want ErrInvalidDirectory", err)
	}
}

func TestFlatten_noExtensionsConfigured(t *testing.T) {
	f := flatten.New(flatten.Config{SkipDirs: []string{"tests"}}, nil)

	if _, err := f.FlattenDir(t.TempDir()); !errors.Is(err, flatten.ErrNoExtensions) {
		t.Errorf("FlattenDir: got %v, want ErrNoExtensions", err)
	}

	spy := &spyFS{inner: fstest.MapFS{"a.py": {Data: []byte("a")}}}
	if _, err := f.FlattenFS(spy, "/proj"); !errors.Is(err, flatten.ErrNoExtensions) {
		t.Errorf("FlattenFS: got %v, want ErrNoExtensions", err)
	}
	if len(spy.opened) != 0 {
		t.Errorf("rejection must not touch the filesystem, opened %v", spy.opened)
	}
}

func TestFlattenDir(t *testing.T) {
	root := t.TempDir()
	for dir, files := range map[string]map[string]string{
		"":      {"a.py": "x=1\n"},
		"tests": {"b.py": "skip me\n"},
		"sub":   {"c.xml": "<r/>\n"},
	} {
		if dir != "" {
			if err := os.Mkdir(filepath.Join(root, dir), 0o755); err != nil {
				t.Fatal(err)
			}
		}
		for name, content := range files {
			if err := os.WriteFile(filepath.Join(root, dir, name), []byte(content), 0o644); err != nil {
				t.Fatal(err)
			}
		}
	}

	doc, err := flatten.New(testConfig(), nil).FlattenDir(root)
	if err != nil {
		t.Fatalf("FlattenDir: %v", err)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Root != abs {
		t.Errorf("root header = %q, want absolute path %q", doc.Root, abs)
	}

	want := []flatten.Entry{
		{Path: "a.py", Content: "x=1\n"},
		{Path: "sub/c.xml", Content: "<r/>\n"},
	}
	if diff := cmp.Diff(want, doc.Entries); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
}
