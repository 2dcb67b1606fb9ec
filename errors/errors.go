package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/pontaoski/tawa/types"
	"github.com/ztrue/tracerr"
)

// ErrNoMatch reports that a grammar alternative does not apply at the
// current position. It selects between alternatives and is never a user
// facing error.
var ErrNoMatch = stderrors.New("no match")

type Kind int

const (
	KindUnknown Kind = iota

	KindTrailingUnderscore
	KindSegmentExpected
	KindCloseParenExpected
	KindOpenBraceExpected
	KindCloseBraceExpected
	KindNameExpected
	KindTagExpected
	KindFieldNameExpected
	KindEqualsExpected
	KindExpressionExpected
	KindTypeExpected
	KindUnexpectedTypeSuffix
	KindItemExpected
	KindPatternExpected
	KindDuplicate
	KindReserved
	KindTooDeep

	// Wrapping kinds carry the failure that stopped the inner construct.
	KindSumValue
	KindMulField
	KindFnBody
	KindArgument
	KindMatchArm
	KindModuleItem
	KindTypeField
	KindFieldPattern
)

func (k Kind) String() string {
	data := map[Kind]string{
		KindUnknown:              "unknown failure",
		KindTrailingUnderscore:   "word expected after underscore",
		KindSegmentExpected:      "path segment expected after '::'",
		KindCloseParenExpected:   "close paren expected",
		KindOpenBraceExpected:    "open brace expected",
		KindCloseBraceExpected:   "close brace expected",
		KindNameExpected:         "name expected",
		KindTagExpected:          "tag name expected",
		KindFieldNameExpected:    "field name expected",
		KindEqualsExpected:       "equals sign expected",
		KindExpressionExpected:   "expression expected",
		KindTypeExpected:         "type path expected",
		KindUnexpectedTypeSuffix: "unexpected suffix after type path",
		KindItemExpected:         "item expected",
		KindPatternExpected:      "pattern expected",
		KindDuplicate:            "declared more than once",
		KindReserved:             "reserved name",
		KindTooDeep:              "nesting too deep",
		KindSumValue:             "sum value",
		KindMulField:             "mul field",
		KindFnBody:               "in fn",
		KindArgument:             "argument",
		KindMatchArm:             "match arm",
		KindModuleItem:           "in mod",
		KindTypeField:            "type field",
		KindFieldPattern:         "field pattern",
	}
	return data[k]
}

// Wraps reports whether failures of kind k carry an inner cause.
func (k Kind) Wraps() bool {
	return k >= KindSumValue
}

// Failure is a hard grammar failure: a construct committed to a prefix and
// could not complete.
type Failure struct {
	Kind  Kind
	Pos   types.Position
	Name  string
	Cause error
}

func (f *Failure) Error() string {
	msg := f.Kind.String()
	switch {
	case f.Name == "":
	case f.Kind.Wraps():
		msg = fmt.Sprintf("%s %s", msg, f.Name)
	default:
		msg = fmt.Sprintf("%s %s", f.Name, msg)
	}
	if f.Cause != nil {
		return fmt.Sprintf("%s: %s", msg, f.Cause)
	}
	return fmt.Sprintf("%s. %s", msg, f.Pos)
}

func (f *Failure) Unwrap() error {
	return f.Cause
}

// Innermost follows the cause chain down to the failure that started it.
func (f *Failure) Innermost() *Failure {
	for {
		next, ok := f.Cause.(*Failure)
		if !ok {
			return f
		}
		f = next
	}
}

// AsFailure extracts the outermost Failure from err, looking through tracerr
// wrapping.
func AsFailure(err error) (*Failure, bool) {
	if err == nil {
		return nil, false
	}
	var f *Failure
	if stderrors.As(tracerr.Unwrap(err), &f) {
		return f, true
	}
	return nil, false
}

// Is reports whether err is a Failure of kind k anywhere in its chain.
func Is(err error, k Kind) bool {
	f, ok := AsFailure(err)
	for ok {
		if f.Kind == k {
			return true
		}
		f, ok = f.Cause.(*Failure)
	}
	return false
}
