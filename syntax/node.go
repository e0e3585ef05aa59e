// Package syntax provides a minimal Ruby expression parser and the immutable
// syntax tree that lint rules pattern-match against. It covers the subset of
// the language that factory_bot call sites use: literals, method calls with
// parenthesized or bare arguments, keyword arguments, and blocks.
package syntax

import "fmt"

// Kind identifies the syntactic kind of a Node.
type Kind uint8

const (
	// KindInt is an integer literal atom. Value holds the literal digits.
	KindInt Kind = iota
	// KindSym is a symbol literal atom such as :user. Value holds the name
	// without the leading colon.
	KindSym
	// KindStr is a string literal atom. Value holds the unquoted content.
	KindStr
	// KindIdent is a bare identifier or method name atom.
	KindIdent
	// KindConst is a constant reference atom such as Factory.
	KindConst
	// KindSend is a method call. Children are laid out as
	// [receiver, selector, arg...] where receiver may be nil for a
	// receiverless call and selector is a KindIdent atom.
	KindSend
	// KindParams is a block parameter list. Children are KindIdent atoms,
	// one per declared parameter; an empty list has no children.
	KindParams
	// KindBlock is a method call with an attached block. Children are
	// [call, params, body] where body is nil for an empty block, a single
	// statement node for a one-statement body, and a KindBegin node
	// otherwise.
	KindBlock
	// KindPair is a keyword argument such as admin: true. Children are
	// [key, value] where key is a KindSym atom.
	KindPair
	// KindBegin is a sequence of two or more statements. A one-statement
	// body is never wrapped in a KindBegin node.
	KindBegin
)

var kindNames = [...]string{
	KindInt:    "int",
	KindSym:    "sym",
	KindStr:    "str",
	KindIdent:  "ident",
	KindConst:  "const",
	KindSend:   "send",
	KindParams: "params",
	KindBlock:  "block",
	KindPair:   "pair",
	KindBegin:  "begin",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Span is a half-open byte range [Start, End) into the original source
// buffer, including any delimiter tokens the node owns (quotes, parentheses,
// braces).
type Span struct {
	Start int
	End   int
}

// Node is an immutable node of a parsed source tree. Nodes are created by
// Parse and never mutated afterwards; rules hold non-owning references into
// the tree.
type Node struct {
	kind     Kind
	value    string
	children []*Node
	span     Span
	parens   bool
}

// Kind returns the syntactic kind of the node.
func (n *Node) Kind() Kind { return n.kind }

// Value returns the literal value of an atom node (digits, symbol name,
// identifier name, string content). It is empty for composite nodes.
func (n *Node) Value() string { return n.value }

// Span returns the byte range this node covers in the source buffer.
func (n *Node) Span() Span { return n.span }

// NumChildren returns the number of child slots, including nil slots such as
// an absent call receiver.
func (n *Node) NumChildren() int { return len(n.children) }

// Child returns the i-th child, or nil when the index is out of range or the
// slot is empty.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// Children returns the ordered child slots. The returned slice must not be
// modified.
func (n *Node) Children() []*Node { return n.children }

// Parenthesized reports whether a KindSend node wrote its argument list with
// explicit parentheses at the call site.
func (n *Node) Parenthesized() bool { return n.parens }

// CallParts decomposes a KindSend node into its receiver (possibly nil),
// selector name, and arguments. ok is false when the node is not a call or
// does not have the expected child layout.
func (n *Node) CallParts() (recv *Node, selector string, args []*Node, ok bool) {
	if n == nil || n.kind != KindSend || len(n.children) < 2 {
		return nil, "", nil, false
	}
	sel := n.children[1]
	if sel == nil || sel.kind != KindIdent {
		return nil, "", nil, false
	}
	return n.children[0], sel.value, n.children[2:], true
}

// BlockParts decomposes a KindBlock node into its invoked call, parameter
// list, and body. body is nil for an empty block. ok is false when the node
// is not a block or does not have the expected child layout.
func (n *Node) BlockParts() (call, params, body *Node, ok bool) {
	if n == nil || n.kind != KindBlock || len(n.children) != 3 {
		return nil, nil, nil, false
	}
	call, params = n.children[0], n.children[1]
	if call == nil || call.kind != KindSend || params == nil || params.kind != KindParams {
		return nil, nil, nil, false
	}
	return call, params, n.children[2], true
}

// Inspect traverses the tree rooted at n in depth-first order, calling fn for
// each non-nil node. If fn returns false, the node's children are skipped.
func Inspect(n *Node, fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		Inspect(c, fn)
	}
}

// File couples a parsed tree with the source buffer it was built from, so
// that verbatim text and line/column positions can be recovered from spans.
type File struct {
	Filename string
	Source   []byte

	root      *Node
	lineStart []int
}

// Root returns the top-level node of the file: nil for an empty file, the
// single statement for a one-statement file, a KindBegin node otherwise.
func (f *File) Root() *Node { return f.root }

// Text returns the verbatim source text covered by the node's span,
// including delimiter tokens. Formatting inside the span is preserved
// exactly as written.
func (f *File) Text(n *Node) string {
	if n == nil {
		return ""
	}
	return f.TextAt(n.span)
}

// TextAt returns the verbatim source text covered by a span.
func (f *File) TextAt(s Span) string {
	if s.Start < 0 || s.End > len(f.Source) || s.Start > s.End {
		return ""
	}
	return string(f.Source[s.Start:s.End])
}

// LineCol converts a byte offset into a 1-based line and column.
func (f *File) LineCol(offset int) (line, col int) {
	lo, hi := 0, len(f.lineStart)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if f.lineStart[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo + 1, offset - f.lineStart[lo] + 1
}

func newFile(filename string, src []byte, root *Node) *File {
	starts := []int{0}
	for i, b := range src {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &File{Filename: filename, Source: src, root: root, lineStart: starts}
}
