package utils_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"testing/fstest"

	"github.com/KaramelBytes/aicontext-cli/internal/utils"
)

func TestExists(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "a.txt")
	if utils.Exists(p) {
		t.Fatalf("expected %s to be missing", p)
	}
	if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !utils.Exists(p) {
		t.Fatalf("expected %s to exist", p)
	}
	if !utils.Exists(dir) {
		t.Fatalf("expected directory to exist")
	}
	if utils.Exists("") || utils.Exists("   ") {
		t.Fatalf("blank path must report false")
	}
}

func TestReadWriteText(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "note.md")
	if err := utils.WriteText(p, "first"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := utils.WriteText(p, "second"); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	got, err := utils.ReadText(p)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got != "second" {
		t.Fatalf("got %q, want truncated rewrite", got)
	}
}

func TestReadTextMissingWrapsError(t *testing.T) {
	p := filepath.Join(t.TempDir(), "missing.md")
	_, err := utils.ReadText(p)
	var fe *utils.FileOpError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FileOpError, got %v", err)
	}
	if fe.Op != utils.OpRead || fe.Path != p {
		t.Fatalf("unexpected op/path: %s %s", fe.Op, fe.Path)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected wrapped ErrNotExist")
	}
}

func TestWriteTextMissingDir(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nope", "a.md")
	err := utils.WriteText(p, "x")
	var fe *utils.FileOpError
	if !errors.As(err, &fe) || fe.Op != utils.OpWrite {
		t.Fatalf("expected write FileOpError, got %v", err)
	}
}

func TestCopy(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.md")
	dest := filepath.Join(dir, "dest.md")
	if err := os.WriteFile(src, []byte("template"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := utils.Copy(src, dest); err != nil {
		t.Fatalf("copy: %v", err)
	}
	b, err := os.ReadFile(dest)
	if err != nil || string(b) != "template" {
		t.Fatalf("unexpected dest content %q (%v)", b, err)
	}

	var fe *utils.FileOpError
	if err := utils.Copy(filepath.Join(dir, "missing.md"), dest); !errors.As(err, &fe) || fe.Op != utils.OpCopy {
		t.Fatalf("missing src: expected copy FileOpError, got %v", err)
	}
	if err := utils.Copy(src, filepath.Join(dir, "absent", "dest.md")); !errors.As(err, &fe) || fe.Op != utils.OpCopy {
		t.Fatalf("absent dest dir: expected copy FileOpError, got %v", err)
	}
}

func TestCopyFrom(t *testing.T) {
	fsys := fstest.MapFS{"ai/README.md": {Data: []byte("# Readme")}}
	dest := filepath.Join(t.TempDir(), "README.md")
	if err := utils.CopyFrom(fsys, "ai/README.md", dest); err != nil {
		t.Fatalf("copy from fs: %v", err)
	}
	b, _ := os.ReadFile(dest)
	if string(b) != "# Readme" {
		t.Fatalf("unexpected content %q", b)
	}
	if err := utils.CopyFrom(fsys, "ai/missing.md", dest); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected wrapped not-exist, got %v", err)
	}
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	if err := utils.EnsureDir(dir); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if err := utils.EnsureDir(dir); err != nil {
		t.Fatalf("ensure should be idempotent: %v", err)
	}

	var fe *utils.FileOpError
	if err := utils.EnsureDir(""); !errors.As(err, &fe) || fe.Op != utils.OpCreateDir {
		t.Fatalf("empty path: expected create directory error, got %v", err)
	}
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := utils.EnsureDir(blocker); !errors.As(err, &fe) {
		t.Fatalf("blocked path: expected FileOpError, got %v", err)
	}
}

func TestListEntries(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"b.md", "a.md", "c.aicf"} {
		if err := os.WriteFile(filepath.Join(dir, n), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	got, err := utils.ListEntries(dir)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if want := []string{"a.md", "b.md", "c.aicf"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
	var fe *utils.FileOpError
	if _, err := utils.ListEntries(filepath.Join(dir, "missing")); !errors.As(err, &fe) || fe.Op != utils.OpReadDir {
		t.Fatalf("expected read directory error, got %v", err)
	}
}

func TestRemoveAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "tree")
	if err := os.MkdirAll(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := utils.RemoveAll(dir); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if utils.Exists(dir) {
		t.Fatalf("expected tree removed")
	}
	if err := utils.RemoveAll(dir); err != nil {
		t.Fatalf("removing a missing path should succeed: %v", err)
	}
}

func TestFindRoot(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, ".ai"), 0o755); err != nil {
		t.Fatal(err)
	}
	deep := filepath.Join(root, "src", "pkg")
	if err := os.MkdirAll(deep, 0o755); err != nil {
		t.Fatal(err)
	}
	got, err := utils.FindRoot(deep, ".ai")
	if err != nil {
		t.Fatalf("find root: %v", err)
	}
	if got != root {
		t.Fatalf("got %s want %s", got, root)
	}
	if _, err := utils.FindRoot(deep, ".does-not-exist"); err == nil {
		t.Fatalf("expected error for unknown marker")
	}
}
