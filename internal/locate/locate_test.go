package locate

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}

func TestLocalName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"test_add", "test_add"},
		{"tests.unit.test_calc.test_add", "test_add"},
		{"pkg.test_simple", "test_simple"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := LocalName(tc.in); got != tc.want {
			t.Errorf("LocalName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestLocate_Basic(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "unit", "test_calc.py"),
		"def test_add():\n    pass\n\ndef test_sub():\n    pass\n")
	writeFile(t, filepath.Join(root, "unit", "test_io.py"),
		"def test_read():\n    pass\n")

	l := NewLocator(root, "test_*.py")
	files, err := l.Locate([]string{"test_add"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %v", files)
	}
	if files[0] != filepath.Join(root, "unit", "test_calc.py") {
		t.Errorf("unexpected match %s", files[0])
	}
}

func TestLocate_DottedIdentifier(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "test_calc.py"),
		"def test_add():\n    pass\n")

	l := NewLocator(root, "test_*.py")
	files, err := l.Locate([]string{"tests.test_calc.test_add"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 1 {
		t.Errorf("dotted identifier should match by local name, got %v", files)
	}
}

func TestLocate_MultipleNamesSinglePass(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "test_a.py"), "def test_one():\n    pass\n")
	writeFile(t, filepath.Join(root, "test_b.py"), "def test_two():\n    pass\n")
	writeFile(t, filepath.Join(root, "test_c.py"), "def test_other():\n    pass\n")

	l := NewLocator(root, "test_*.py")
	files, err := l.Locate([]string{"test_one", "test_two"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %v", files)
	}
}

func TestLocate_IgnoresNonMatchingFileNames(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "helpers.py"), "def test_one():\n    pass\n")

	l := NewLocator(root, "test_*.py")
	files, err := l.Locate([]string{"test_one"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("files outside the naming convention must be ignored, got %v", files)
	}
}

func TestLocate_UnknownNameIsNotAnError(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "test_a.py"), "def test_one():\n    pass\n")

	l := NewLocator(root, "test_*.py")
	files, err := l.Locate([]string{"test_ghost"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("expected no matches, got %v", files)
	}
}

func TestLocate_MissingRoot(t *testing.T) {
	l := NewLocator(filepath.Join(t.TempDir(), "absent"), "test_*.py")
	files, err := l.Locate([]string{"test_one"})
	if err != nil {
		t.Fatalf("missing test root should not error: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("expected no matches, got %v", files)
	}
}

func TestLocate_EmptyInput(t *testing.T) {
	l := NewLocator(t.TempDir(), "test_*.py")
	files, err := l.Locate(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("expected no matches, got %v", files)
	}
}

func TestLocate_Dedup(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "test_a.py"),
		"def test_one():\n    pass\n\ndef test_two():\n    pass\n")

	l := NewLocator(root, "test_*.py")
	files, err := l.Locate([]string{"test_one", "test_two", "pkg.test_a.test_one"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 1 {
		t.Errorf("expected a single deduplicated match, got %v", files)
	}
}
