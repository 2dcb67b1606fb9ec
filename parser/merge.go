package parser

import (
	"github.com/pontaoski/tawa/ast"
	"github.com/pontaoski/tawa/errors"
	"github.com/ztrue/tracerr"
)

// Merge folds the items of src into dst. Modules declared in both are merged
// recursively; any other name declared in both follows policy.
func Merge(dst, src *ast.Module, policy DuplicatePolicy) error {
	if err := merge(dst, src, policy, nil); err != nil {
		return tracerr.Wrap(err)
	}
	return nil
}

func merge(dst, src *ast.Module, policy DuplicatePolicy, scope []string) error {
	duplicate := func(kind, name string) error {
		err := error(&errors.Failure{Kind: errors.KindDuplicate, Name: kind + " " + name})
		for i := len(scope) - 1; i >= 0; i-- {
			err = &errors.Failure{Kind: errors.KindModuleItem, Name: scope[i], Cause: err}
		}
		return err
	}

	for name, fn := range src.Functions {
		if _, ok := dst.Functions[name]; ok && policy == RejectDuplicates {
			return duplicate(ast.ItemKind(fn), name.Snake())
		}
		dst.Functions[name] = fn
	}
	for name, t := range src.Types {
		if _, ok := dst.Types[name]; ok && policy == RejectDuplicates {
			return duplicate("type", name.Pascal())
		}
		dst.Types[name] = t
	}
	for name, m := range src.Modules {
		existing, ok := dst.Modules[name]
		if !ok {
			dst.Modules[name] = m
			continue
		}
		if err := merge(existing, m, policy, append(scope, name.Snake())); err != nil {
			return err
		}
	}
	return nil
}
