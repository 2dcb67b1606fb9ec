package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/pontaoski/tawa/ast"
	"github.com/pontaoski/tawa/config"
	"github.com/pontaoski/tawa/parser"
	"github.com/pontaoski/tawa/tree"
	"github.com/ztrue/tracerr"
)

type project struct {
	dir      string
	manifest config.Manifest
	options  []parser.Option
	root     *ast.Module
}

type noSourcesError struct {
	dir string
}

func (n noSourcesError) Error() string {
	return "no *" + config.SourceSuffix + " files in " + n.dir
}

// loadProject parses every source file of the project in dir and merges them
// into one root module.
func loadProject(dir string, log *slog.Logger) (*project, error) {
	m, err := config.Load(dir)
	if err != nil {
		return nil, err
	}
	opts, err := m.ParserOptions()
	if err != nil {
		return nil, err
	}

	files, err := config.Sources(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, tracerr.Wrap(noSourcesError{dir: dir})
	}

	root := ast.NewModule()
	for _, file := range files {
		parsed, err := parseFile(file, opts)
		if err != nil {
			return nil, err
		}
		if err := parser.Merge(root, parsed, m.DuplicatePolicy()); err != nil {
			return nil, err
		}
		log.Debug("parsed source", "file", file)
	}

	return &project{dir: dir, manifest: m, options: opts, root: root}, nil
}

func parseFile(file string, opts []parser.Option) (*ast.Module, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	return parser.Parse(file, string(data), opts...)
}

type moduleNotFoundError struct {
	path string
}

func (m moduleNotFoundError) Error() string {
	return "no module " + m.path
}

// findModule follows a "::" separated module path down from the root.
func findModule(t *tree.Tree, path string) (tree.Handle, error) {
	h := t.Root()
	if path == "" {
		return h, nil
	}
	for _, seg := range strings.Split(path, "::") {
		next, ok := t.Child(h, ast.MustIdent(seg))
		if !ok {
			return tree.None, tracerr.Wrap(moduleNotFoundError{path: path})
		}
		h = next
	}
	return h, nil
}
