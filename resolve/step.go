package resolve

import (
	"strings"

	"github.com/pontaoski/tawa/ast"
)

var super = ast.NewIdent("super")

// Step is one move through the module tree: into the named submodule, or up
// to the parent when Ascend is set.
type Step struct {
	Ascend bool
	Name   ast.Ident
}

func Descend(name ast.Ident) Step {
	return Step{Name: name}
}

var Ascend = Step{Ascend: true}

func (s Step) String() string {
	if s.Ascend {
		return "super"
	}
	return s.Name.Snake()
}

// Normalize turns the base of a path into steps. Each super cancels the
// closest descend before it; a super with nothing left to cancel becomes a
// leading ascend.
func Normalize(base []ast.Ident) []Step {
	ascends := 0
	var descends []ast.Ident
	for _, seg := range base {
		if seg != super {
			descends = append(descends, seg)
			continue
		}
		if len(descends) > 0 {
			descends = descends[:len(descends)-1]
		} else {
			ascends++
		}
	}

	steps := make([]Step, 0, ascends+len(descends))
	for i := 0; i < ascends; i++ {
		steps = append(steps, Ascend)
	}
	for _, name := range descends {
		steps = append(steps, Descend(name))
	}
	return steps
}

func formatSteps(steps []Step) string {
	parts := make([]string, len(steps))
	for i, s := range steps {
		parts[i] = s.String()
	}
	return strings.Join(parts, "::")
}
