package selection

import (
	"os"
	"path/filepath"
	"testing"

	"ptest/internal/pterrors"
)

func TestWriteFileList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test_files_to_run.txt")

	err := WriteFileList(path, []string{"tests/test_a.py", "tests/test_b.py"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	want := "tests/test_a.py\ntests/test_b.py\n"
	if string(data) != want {
		t.Errorf("expected %q, got %q", want, string(data))
	}
}

func TestWriteFileList_EmptySelectionStillCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test_files_to_run.txt")

	if err := WriteFileList(path, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("the output file must exist even for an empty selection: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("expected empty file, got %q", string(data))
	}
}

func TestWriteFileList_BadTarget(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no", "such", "dir", "out.txt")

	err := WriteFileList(path, []string{"tests/test_a.py"})
	if err == nil {
		t.Fatal("expected error for missing target directory")
	}
	if !pterrors.HasCode(err, pterrors.OutputWriteFailed) {
		t.Errorf("expected OUTPUT_WRITE_FAILED, got %v", err)
	}
}
