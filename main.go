package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/alecthomas/repr"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/pkg/profile"
	"github.com/pontaoski/tawa/ast"
	"github.com/pontaoski/tawa/config"
	"github.com/pontaoski/tawa/exports"
	"github.com/pontaoski/tawa/parser"
	"github.com/pontaoski/tawa/reader"
	"github.com/pontaoski/tawa/resolve"
	"github.com/pontaoski/tawa/tree"
	"github.com/urfave/cli/v2"
	"github.com/zeebo/xxh3"
	"github.com/ztrue/tracerr"
)

var (
	log      = slog.New(slog.NewTextHandler(io.Discard, nil))
	profiler interface{ Stop() }

	scopeStyle = lipgloss.NewStyle().Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	hintStyle  = lipgloss.NewStyle().Faint(true)
)

type usageError struct {
	msg string
}

func (u usageError) Error() string {
	return u.msg
}

type formatError struct {
	files []string
}

func (f formatError) Error() string {
	return fmt.Sprintf("%d file(s) are not formatted", len(f.files))
}

type unresolvedError struct {
	count int
}

func (u unresolvedError) Error() string {
	return fmt.Sprintf("%d unresolved path(s)", u.count)
}

func main() {
	app := &cli.App{
		Name:  "tawa",
		Usage: "tawa front end",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log debug output to stderr",
			},
			&cli.StringFlag{
				Name:  "profile",
				Usage: "write a cpu, mem or trace profile to the working directory",
			},
			&cli.StringFlag{
				Name:  "dir",
				Value: ".",
				Usage: "project directory",
			},
		},
		Before: func(c *cli.Context) error {
			level := slog.LevelInfo
			if c.Bool("verbose") {
				level = slog.LevelDebug
			}
			log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			switch c.String("profile") {
			case "":
			case "cpu":
				profiler = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet)
			case "mem":
				profiler = profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.Quiet)
			case "trace":
				profiler = profile.Start(profile.TraceProfile, profile.ProfilePath("."), profile.Quiet)
			default:
				return usageError{msg: "unknown profile " + c.String("profile")}
			}
			return nil
		},
		After: func(c *cli.Context) error {
			if profiler != nil {
				profiler.Stop()
			}
			return nil
		},
		ExitErrHandler: func(c *cli.Context, err error) {
			if err == nil {
				return
			}
			if profiler != nil {
				profiler.Stop()
			}
			tracerr.PrintSourceColor(err)
			os.Exit(1)
		},
		Commands: []*cli.Command{
			{
				Name:      "init",
				Usage:     "init a directory",
				ArgsUsage: "<package>",
				Action:    initAction,
			},
			{
				Name:      "parse",
				Usage:     "dump the tree of the project, of the given files, or of one expression",
				ArgsUsage: "[files...]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "expression",
						Aliases: []string{"e"},
						Usage:   "parse this expression instead",
					},
				},
				Action: parseAction,
			},
			{
				Name:  "fmt",
				Usage: "print source files in canonical form",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "check",
						Usage: "only report files that are not in canonical form",
					},
					&cli.BoolFlag{
						Name:  "write",
						Usage: "rewrite files in place",
					},
				},
				Action: fmtAction,
			},
			{
				Name:      "resolve",
				Usage:     "look a path up in the project",
				ArgsUsage: "<path>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "from",
						Usage: "module to resolve from, as a::b",
					},
					&cli.StringFlag{
						Name:  "kind",
						Value: "fn",
						Usage: "fn, type or mod",
					},
				},
				Action: resolveAction,
			},
			{
				Name:   "check",
				Usage:  "report paths that do not resolve",
				Action: checkAction,
			},
			{
				Name:  "build",
				Usage: "build the export library of the project",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name: "output",
					},
					&cli.BoolFlag{
						Name:  "dump",
						Usage: "print the IR instead of linking it",
					},
				},
				Action: buildAction,
			},
			{
				Name:      "exports",
				Usage:     "dump the export table of a built library",
				ArgsUsage: "<library>",
				Action: func(c *cli.Context) error {
					table, err := reader.ReadExports(c.Args().First())
					if err != nil {
						return err
					}
					repr.Println(table)
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		tracerr.PrintSourceColor(err)
		os.Exit(1)
	}
}

func initAction(c *cli.Context) error {
	name := c.Args().First()
	if name == "" {
		return usageError{msg: "no module name provided"}
	}
	return config.Save(c.String("dir"), config.Manifest{Package: name})
}

func parseAction(c *cli.Context) error {
	if e := c.String("expression"); e != "" {
		p := parser.New(e)
		expr, err := p.Expression()
		if err != nil {
			return err
		}
		repr.Println(expr)
		if rest := p.Rest(); rest != "" {
			log.Warn("expression was not fully consumed", "rest", rest)
		}
		return nil
	}

	if c.Args().Len() == 0 {
		proj, err := loadProject(c.String("dir"), log)
		if err != nil {
			return err
		}
		repr.Println(proj.root)
		return nil
	}

	for _, file := range c.Args().Slice() {
		m, err := parseFile(file, nil)
		if err != nil {
			return err
		}
		repr.Println(m)
	}
	return nil
}

func fmtAction(c *cli.Context) error {
	dir := c.String("dir")
	m, err := config.Load(dir)
	if err != nil {
		return err
	}
	opts, err := m.ParserOptions()
	if err != nil {
		return err
	}
	files, err := config.Sources(dir)
	if err != nil {
		return err
	}

	var unformatted []string
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return tracerr.Wrap(err)
		}
		parsed, err := parser.Parse(file, string(data), opts...)
		if err != nil {
			return err
		}

		canonical := xxh3.Hash(data) == ast.Fingerprint(parsed)
		log.Debug("formatted source", "file", file, "canonical", canonical)

		switch {
		case c.Bool("check"):
			if !canonical {
				fmt.Println(filepath.Base(file))
				unformatted = append(unformatted, file)
			}
		case c.Bool("write"):
			if canonical {
				continue
			}
			if err := os.WriteFile(file, []byte(ast.Format(parsed)), 0o644); err != nil {
				return tracerr.Wrap(err)
			}
			log.Info("rewrote", "file", file)
		default:
			fmt.Print(ast.Format(parsed))
		}
	}

	if len(unformatted) > 0 {
		return formatError{files: unformatted}
	}
	return nil
}

func resolveAction(c *cli.Context) error {
	proj, err := loadProject(c.String("dir"), log)
	if err != nil {
		return err
	}
	t := tree.Build(proj.root, tree.WithLogger(log))
	r := resolve.New(t, resolve.WithLogger(log))

	from, err := findModule(t, c.String("from"))
	if err != nil {
		return err
	}

	p := parser.New(c.Args().First(), proj.options...)
	path, err := p.Path()
	if err != nil {
		return err
	}
	if p.Rest() != "" {
		return usageError{msg: "unexpected text after path: " + p.Rest()}
	}

	var kind resolve.Kind
	var found interface{}
	switch c.String("kind") {
	case "fn":
		kind = resolve.FunctionKind
		if fn, ok := r.Function(from, path); ok {
			found = fn
		}
	case "type":
		kind = resolve.TypeKind
		if decl, ok := r.Type(from, path); ok {
			found = decl
		}
	case "mod":
		kind = resolve.ModuleKind
		if h, ok := r.Module(from, path); ok {
			found = t.Qualified(h)
		}
	default:
		return usageError{msg: "unknown kind " + c.String("kind")}
	}

	if found == nil && r.Builtin(kind, path) {
		fmt.Printf("%s %s is builtin\n", kind, path)
		return nil
	}
	if found == nil {
		fmt.Println(errorStyle.Render(fmt.Sprintf("%s %s not found from %s", kind, path, t.Qualified(from))))
		if s := r.Suggest(from, path, kind); len(s) > 0 {
			fmt.Println(hintStyle.Render(fmt.Sprintf("did you mean %v?", s)))
		}
		return nil
	}
	repr.Println(found)
	return nil
}

func checkAction(c *cli.Context) error {
	proj, err := loadProject(c.String("dir"), log)
	if err != nil {
		return err
	}
	t := tree.Build(proj.root, tree.WithLogger(log))
	unresolved := resolve.Check(resolve.New(t, resolve.WithLogger(log)))

	for _, u := range unresolved {
		line := scopeStyle.Render(u.Scope+": "+u.Item) + " " +
			errorStyle.Render(fmt.Sprintf("unresolved %s %s", u.Kind, u.Path))
		if len(u.Suggestions) > 0 {
			line += " " + hintStyle.Render(fmt.Sprintf("(did you mean %v?)", u.Suggestions))
		}
		fmt.Println(line)
	}
	if len(unresolved) > 0 {
		return unresolvedError{count: len(unresolved)}
	}
	log.Info("all paths resolve", "modules", t.Len())
	return nil
}

func buildAction(c *cli.Context) error {
	proj, err := loadProject(c.String("dir"), log)
	if err != nil {
		return err
	}
	t := tree.Build(proj.root, tree.WithLogger(log))
	if unresolved := resolve.Check(resolve.New(t, resolve.WithLogger(log))); len(unresolved) > 0 {
		for _, u := range unresolved {
			log.Error("unresolved path", "where", u.Scope+": "+u.Item, "path", u.Path.String())
		}
		return unresolvedError{count: len(unresolved)}
	}

	table := exports.Collect(t, proj.manifest.Package)
	table.Build = uuid.NewString()
	m, err := exports.Emit(table)
	if err != nil {
		return err
	}

	if c.Bool("dump") {
		fmt.Println(m.String())
		return nil
	}

	out := c.String("output")
	if out == "" {
		out = filepath.Join(proj.dir, proj.manifest.Package+config.LibrarySuffix)
	}

	fi, err := os.CreateTemp("", "*.ll")
	if err != nil {
		return tracerr.Wrap(err)
	}
	defer os.Remove(fi.Name())
	defer fi.Close()

	if _, err := io.WriteString(fi, m.String()); err != nil {
		return tracerr.Wrap(err)
	}

	cmd := exec.Command("clang", "-nostdlib", "-shared", "-o", out, fi.Name())
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	log.Debug("linking", "args", cmd.Args)
	if err := cmd.Run(); err != nil {
		return tracerr.Wrap(err)
	}

	log.Info("built", "output", out, "build", table.Build)
	return nil
}
