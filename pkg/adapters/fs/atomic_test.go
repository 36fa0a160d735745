package fs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteOutputAtomic(t *testing.T) {
	t.Run("Creates New File", func(t *testing.T) {
		tmpDir := t.TempDir()
		filename := filepath.Join(tmpDir, "out.txt")

		if err := writeOutputAtomic(filename, []byte("dlrow olleh"), 0o644); err != nil {
			t.Fatalf("writeOutputAtomic failed: %v", err)
		}

		got, err := os.ReadFile(filename)
		if err != nil {
			t.Fatalf("Failed to read file: %v", err)
		}
		if string(got) != "dlrow olleh" {
			t.Errorf("Expected content 'dlrow olleh', got '%s'", string(got))
		}
	})

	t.Run("Overwrites Existing File", func(t *testing.T) {
		tmpDir := t.TempDir()
		filename := filepath.Join(tmpDir, "out.txt")

		if err := os.WriteFile(filename, []byte("initial"), 0o644); err != nil {
			t.Fatalf("Setup failed: %v", err)
		}
		if err := writeOutputAtomic(filename, []byte("overwritten"), 0o644); err != nil {
			t.Fatalf("writeOutputAtomic failed: %v", err)
		}

		got, err := os.ReadFile(filename)
		if err != nil {
			t.Fatalf("Failed to read file: %v", err)
		}
		if string(got) != "overwritten" {
			t.Errorf("Expected content 'overwritten', got '%s'", string(got))
		}
	})

	t.Run("Creates Missing Directories", func(t *testing.T) {
		tmpDir := t.TempDir()
		filename := filepath.Join(tmpDir, "nested", "dir", "out.txt")

		if err := writeOutputAtomic(filename, []byte("x"), 0o644); err != nil {
			t.Fatalf("writeOutputAtomic failed: %v", err)
		}
		if _, err := os.Stat(filename); err != nil {
			t.Fatalf("File was not created: %v", err)
		}
	})

	t.Run("Leaves No Temp Files", func(t *testing.T) {
		tmpDir := t.TempDir()
		if err := writeOutputAtomic(filepath.Join(tmpDir, "out.txt"), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}

		entries, err := os.ReadDir(tmpDir)
		if err != nil {
			t.Fatal(err)
		}
		for _, e := range entries {
			if strings.HasPrefix(e.Name(), TempFilePrefix) {
				t.Errorf("temp file left behind: %s", e.Name())
			}
		}
	})
}
