package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/alecthomas/repr"
	"github.com/pontaoski/tawa/parser"
)

func write(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	want := Manifest{Package: "demo", MaxDepth: 64, Duplicates: "overwrite", IdentifierDigits: "0123456789"}

	if err := Save(dir, want); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %s, got %s", repr.String(want), repr.String(got))
	}
	if got.DuplicatePolicy() != parser.OverwriteDuplicates {
		t.Errorf("expected overwrite, got %s", got.DuplicatePolicy())
	}
}

func TestLoadMinimal(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, ManifestName, "Package: demo\n")

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Package != "demo" || m.DuplicatePolicy() != parser.RejectDuplicates {
		t.Errorf("unexpected manifest %s", repr.String(m))
	}
	opts, err := m.ParserOptions()
	if err != nil || len(opts) != 0 {
		t.Errorf("expected no options, got %d (%v)", len(opts), err)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing package", "MaxDepth: 3\n"},
		{"unknown field", "Package: demo\nColour: blue\n"},
		{"negative depth", "Package: demo\nMaxDepth: -1\n"},
		{"bad policy", "Package: demo\nDuplicates: merge\n"},
		{"bad digits", "Package: demo\nIdentifierDigits: abc\n"},
		{"not yaml", "Package: [demo\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			write(t, dir, ManifestName, tt.content)
			if _, err := Load(dir); err == nil {
				t.Error("expected an error")
			}
		})
	}

	if _, err := Load(t.TempDir()); err == nil {
		t.Error("expected a missing manifest to fail")
	}
}

func TestParserOptions(t *testing.T) {
	m := Manifest{Package: "demo", MaxDepth: 2, IdentifierDigits: "0123456789"}
	opts, err := m.ParserOptions()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := parser.New("x9", opts...).Expression(); err != nil {
		t.Errorf("expected x9 to parse with all digits allowed, got %v", err)
	}
	if _, err := parser.New("((x))", opts...).Expression(); err == nil {
		t.Error("expected the depth limit to apply")
	}
}

func TestSources(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "b"+SourceSuffix, "")
	write(t, dir, "a"+SourceSuffix, "")
	write(t, dir, ManifestName, "Package: demo\n")
	write(t, dir, "notes.txt", "")
	if err := os.Mkdir(filepath.Join(dir, "nested"+SourceSuffix), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := Sources(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{
		filepath.Join(dir, "a"+SourceSuffix),
		filepath.Join(dir, "b"+SourceSuffix),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
