package diff

import (
	"testing"
)

func TestParseUnified_Empty(t *testing.T) {
	files, err := ParseUnified("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("expected 0 files, got %d", len(files))
	}
}

func TestParseUnified_Modified(t *testing.T) {
	raw := `diff --git a/pkg/calc.py b/pkg/calc.py
index 1234567..abcdefg 100644
--- a/pkg/calc.py
+++ b/pkg/calc.py
@@ -1,3 +1,4 @@
 def add(a, b):
+    # overflow check
     return a + b
`
	files, err := ParseUnified(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}
	if files[0].Path != "pkg/calc.py" {
		t.Errorf("expected path pkg/calc.py, got %s", files[0].Path)
	}
	if files[0].Status != Modified {
		t.Errorf("expected Modified, got %s", files[0].Status)
	}
}

func TestParseUnified_Added(t *testing.T) {
	raw := `diff --git a/pkg/new.py b/pkg/new.py
new file mode 100644
index 0000000..abcdefg
--- /dev/null
+++ b/pkg/new.py
@@ -0,0 +1,2 @@
+def fresh():
+    return 1
`
	files, err := ParseUnified(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}
	if files[0].Status != Added {
		t.Errorf("expected Added, got %s", files[0].Status)
	}
	if files[0].Path != "pkg/new.py" {
		t.Errorf("expected new path, got %s", files[0].Path)
	}
}

func TestParseUnified_Deleted(t *testing.T) {
	raw := `diff --git a/pkg/old.py b/pkg/old.py
deleted file mode 100644
index abcdefg..0000000
--- a/pkg/old.py
+++ /dev/null
@@ -1,2 +0,0 @@
-def stale():
-    return 0
`
	files, err := ParseUnified(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}
	if files[0].Status != Deleted {
		t.Errorf("expected Deleted, got %s", files[0].Status)
	}
	if files[0].Path != "pkg/old.py" {
		t.Errorf("expected old path, got %s", files[0].Path)
	}
}

func TestParseUnified_Renamed(t *testing.T) {
	raw := `diff --git a/tests/unit/test_old.py b/tests/unit/test_new.py
similarity index 90%
rename from tests/unit/test_old.py
rename to tests/unit/test_new.py
index 1234567..abcdefg 100644
--- a/tests/unit/test_old.py
+++ b/tests/unit/test_new.py
@@ -1,2 +1,2 @@
-def test_old_name():
+def test_new_name():
     pass
`
	files, err := ParseUnified(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}

	f := files[0]
	if f.Status != Renamed {
		t.Errorf("expected Renamed, got %s", f.Status)
	}
	if f.Path != "tests/unit/test_old.py" {
		t.Errorf("expected old path, got %s", f.Path)
	}
	if f.RenamedTo != "tests/unit/test_new.py" {
		t.Errorf("expected new path, got %s", f.RenamedTo)
	}
}

func TestParseUnified_Garbage(t *testing.T) {
	files, err := ParseUnified("this is not a diff")
	if err == nil && len(files) != 0 {
		t.Errorf("expected no parsed files for non-diff input, got %d", len(files))
	}
}
