// Package config reads and writes the project manifest and finds the source
// files of a project.
package config

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pontaoski/tawa/lexer"
	"github.com/pontaoski/tawa/parser"
	"github.com/ztrue/tracerr"
	"gopkg.in/yaml.v2"
)

const (
	ManifestName  = "Tawa Module Information"
	SourceSuffix  = ".Tawa Source File"
	LibrarySuffix = ".Dynamically Linked Tawa Module"
)

type Manifest struct {
	Package          string `yaml:"Package"`
	MaxDepth         int    `yaml:"MaxDepth,omitempty"`
	Duplicates       string `yaml:"Duplicates,omitempty"`
	IdentifierDigits string `yaml:"IdentifierDigits,omitempty"`
}

type ManifestError struct {
	Field string
	Value string
}

func (m ManifestError) Error() string {
	return "bad " + m.Field + " in " + ManifestName + ": " + m.Value
}

// Load reads the manifest in dir.
func Load(dir string) (Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		return Manifest{}, tracerr.Wrap(err)
	}

	var m Manifest
	if err := yaml.UnmarshalStrict(data, &m); err != nil {
		return Manifest{}, tracerr.Wrap(err)
	}
	if m.Package == "" {
		return Manifest{}, tracerr.Wrap(ManifestError{Field: "Package", Value: `""`})
	}
	if _, err := m.ParserOptions(); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

// Save writes m into dir, replacing any existing manifest.
func Save(dir string, m Manifest) error {
	out, err := yaml.Marshal(m)
	if err != nil {
		return tracerr.Wrap(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestName), out, 0o644); err != nil {
		return tracerr.Wrap(err)
	}
	return nil
}

// ParserOptions turns the manifest settings into parser options.
func (m Manifest) ParserOptions() ([]parser.Option, error) {
	var opts []parser.Option

	if m.MaxDepth < 0 {
		return nil, tracerr.Wrap(ManifestError{Field: "MaxDepth", Value: strconv.Itoa(m.MaxDepth)})
	}
	if m.MaxDepth > 0 {
		opts = append(opts, parser.WithMaxDepth(m.MaxDepth))
	}

	if m.Duplicates != "" {
		d, ok := parser.ParseDuplicatePolicy(m.Duplicates)
		if !ok {
			return nil, tracerr.Wrap(ManifestError{Field: "Duplicates", Value: m.Duplicates})
		}
		opts = append(opts, parser.WithDuplicates(d))
	}

	if m.IdentifierDigits != "" {
		a := lexer.DefaultAlphabet
		for _, r := range m.IdentifierDigits {
			if !strings.ContainsRune(a.Digits, r) {
				return nil, tracerr.Wrap(ManifestError{Field: "IdentifierDigits", Value: m.IdentifierDigits})
			}
		}
		a.IdentDigits = m.IdentifierDigits
		opts = append(opts, parser.WithAlphabet(a))
	}

	return opts, nil
}

// DuplicatePolicy is the policy parser options will use.
func (m Manifest) DuplicatePolicy() parser.DuplicatePolicy {
	d, _ := parser.ParseDuplicatePolicy(m.Duplicates)
	return d
}

// Sources lists the source files directly inside dir, sorted by name.
func Sources(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), SourceSuffix) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}
