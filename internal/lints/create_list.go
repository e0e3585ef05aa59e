package lints

import (
	"fmt"
	"strings"

	tt "github.com/speclint/speclint/internal/types"
	"github.com/speclint/speclint/pattern"
	"github.com/speclint/speclint/syntax"
)

// Method names the rule is built around. These are compile-time constants of
// the rule, not configuration.
const (
	repeatMethod = "times"
	createMethod = "create"
	bulkMethod   = "create_list"
)

// timesLoopPattern recognizes the outer shape: a block construct whose
// invoked call is an integer literal receiving `times` with no arguments,
// and whose block declares zero parameters. A block that consumes the
// iteration index (any declared parameter) must never match, because bulk
// replacement would lose the per-iteration behavior.
var timesLoopPattern = pattern.KindIs(syntax.KindBlock,
	pattern.Capture("call", pattern.KindIs(syntax.KindSend,
		pattern.Capture("count", pattern.KindIs(syntax.KindInt)),
		pattern.Atom(syntax.KindIdent, repeatMethod),
	)),
	pattern.KindIs(syntax.KindParams),
	pattern.Capture("body", pattern.Any()),
)

// createCallPattern recognizes the inner shape: an optional receiver
// invoking `create` with a symbol literal first argument and zero or more
// trailing arguments.
var createCallPattern = pattern.KindIs(syntax.KindSend,
	pattern.Capture("recv", pattern.Alt(pattern.Absent(), pattern.Any())),
	pattern.Atom(syntax.KindIdent, createMethod),
	pattern.Capture("factory", pattern.KindIs(syntax.KindSym)),
	pattern.Rest("options"),
)

// createLoop carries the bound sub-nodes of a detected idiom.
type createLoop struct {
	block   *syntax.Node   // the whole N.times { ... } expression
	call    *syntax.Node   // the N.times call
	count   *syntax.Node   // the integer literal receiver
	inner   *syntax.Node   // the create call in the block body
	recv    *syntax.Node   // optional receiver of the create call
	factory *syntax.Node   // the symbol naming the factory
	options []*syntax.Node // trailing arguments, in original order
}

// detectCreateLoop checks a single node for the factory-create-loop idiom.
// Detection is stateless and order-independent; any node shape that is not
// exactly the idiom yields ok == false, which is the expected common case.
//
// The block body must be exactly one statement. A multi-statement body is a
// KindBegin node, which can never match the inner call pattern, so a body
// whose last statement happens to be a create call is still rejected.
func detectCreateLoop(node *syntax.Node) (createLoop, bool) {
	outer, ok := pattern.Match(timesLoopPattern, node)
	if !ok {
		return createLoop{}, false
	}
	inner, ok := pattern.Match(createCallPattern, outer.Node("body"))
	if !ok {
		return createLoop{}, false
	}
	return createLoop{
		block:   node,
		call:    outer.Node("call"),
		count:   outer.Node("count"),
		inner:   outer.Node("body"),
		recv:    inner.Node("recv"),
		factory: inner.Node("factory"),
		options: inner.Seq("options"),
	}, true
}

// buildCreateList reconstructs the equivalent bulk-creation call from the
// bound sub-nodes. Arguments are copied verbatim by span, never re-printed
// from the tree, so their original formatting survives. The argument list is
// parenthesized exactly when the original create call was.
func buildCreateList(f *syntax.File, loop createLoop) string {
	var b strings.Builder
	if loop.recv != nil {
		b.WriteString(f.Text(loop.recv))
		b.WriteByte('.')
	}
	b.WriteString(bulkMethod)

	var args strings.Builder
	args.WriteString(f.Text(loop.factory))
	args.WriteString(", ")
	args.WriteString(f.Text(loop.count))
	for _, opt := range loop.options {
		args.WriteString(", ")
		args.WriteString(f.Text(opt))
	}

	if loop.inner.Parenthesized() {
		b.WriteByte('(')
		b.WriteString(args.String())
		b.WriteByte(')')
	} else {
		b.WriteByte(' ')
		b.WriteString(args.String())
	}
	return b.String()
}

// DetectFactoryCreateLoop flags N.times loops whose body is a single factory
// create call and suggests the equivalent create_list call:
//
//	3.times { create :user }           ->  create_list :user, 3
//	3.times { create(:user, admin: true) }  ->  create_list(:user, 3, admin: true)
//
// The reported span covers the offending N.times call; the attached fix
// replaces the byte span of the whole block expression.
func DetectFactoryCreateLoop(filename string, file *syntax.File, severity tt.Severity) ([]tt.Issue, error) {
	var issues []tt.Issue

	syntax.Inspect(file.Root(), func(n *syntax.Node) bool {
		loop, ok := detectCreateLoop(n)
		if !ok {
			return true
		}

		replacement := buildCreateList(file, loop)
		issues = append(issues, tt.Issue{
			Rule:     "factory-create-list",
			Category: "style",
			Filename: filename,
			Message: fmt.Sprintf("consider using %s instead of calling %s in a %s loop",
				bulkMethod, createMethod, repeatMethod),
			Suggestion: replacement,
			Severity:   severity,
			Confidence: 1.0,
			Start:      position(file, loop.call.Span().Start),
			End:        position(file, loop.call.Span().End),
			Fix: &tt.Fix{
				Start:       loop.block.Span().Start,
				End:         loop.block.Span().End,
				Replacement: replacement,
			},
		})
		return true
	})

	return issues, nil
}

func position(f *syntax.File, offset int) tt.Position {
	line, col := f.LineCol(offset)
	return tt.Position{Offset: offset, Line: line, Column: col}
}
