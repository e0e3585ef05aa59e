// Package pattern implements declarative tree patterns over syntax nodes.
// A Pattern is a plain value describing an expected tree shape with named
// capture slots; one recursive matcher interprets it against a node. The
// matcher is total: any node shape yields either bindings or a plain
// non-match, never an error.
package pattern

import "github.com/speclint/speclint/syntax"

type op uint8

const (
	opKind    op = iota // node kind plus positional children
	opAtom              // node kind plus exact literal value
	opAny               // any present node
	opAbsent            // an empty child slot
	opCapture           // bind the matched node under a name
	opRest              // capture the remaining children as a sequence
	opAlt               // first alternative that matches wins
)

// Pattern is an immutable tree shape. Build patterns with the constructor
// functions; the zero value is not a valid pattern.
type Pattern struct {
	op    op
	kind  syntax.Kind
	value string
	name  string
	sub   []*Pattern
}

// KindIs matches a node of the given kind whose children match the given
// sub-patterns positionally. The arity must match exactly unless the last
// sub-pattern is a Rest, which absorbs any remaining children. An atom kind
// with no sub-patterns matches regardless of the atom's value.
func KindIs(k syntax.Kind, children ...*Pattern) *Pattern {
	return &Pattern{op: opKind, kind: k, sub: children}
}

// Atom matches an atom node of the given kind with exactly the given
// literal value.
func Atom(k syntax.Kind, value string) *Pattern {
	return &Pattern{op: opAtom, kind: k, value: value}
}

// Any matches any present node. It fails on an empty child slot.
func Any() *Pattern { return &Pattern{op: opAny} }

// Absent matches an empty child slot, such as the receiver of a
// receiverless call.
func Absent() *Pattern { return &Pattern{op: opAbsent} }

// Capture matches sub and binds the node (possibly nil, when sub accepts an
// absent slot) under name. A nil sub captures any present node.
func Capture(name string, sub *Pattern) *Pattern {
	if sub == nil {
		sub = Any()
	}
	return &Pattern{op: opCapture, name: name, sub: []*Pattern{sub}}
}

// Rest captures the remaining children of the enclosing KindIs as an ordered
// sequence, zero or more. It is only meaningful as the last child of a
// KindIs. An empty name discards the sequence.
func Rest(name string) *Pattern { return &Pattern{op: opRest, name: name} }

// Alt matches the first alternative that matches, in declared order.
func Alt(alts ...*Pattern) *Pattern { return &Pattern{op: opAlt, sub: alts} }

// Bindings holds the named results of a successful match: single nodes for
// Capture slots and ordered sequences for Rest slots. A fresh value is
// produced per match; bindings are never merged across match attempts.
type Bindings struct {
	nodes map[string]*syntax.Node
	seqs  map[string][]*syntax.Node
}

// Node returns the node bound under name, or nil when the slot is unbound or
// was matched against an absent child.
func (b Bindings) Node(name string) *syntax.Node { return b.nodes[name] }

// Seq returns the ordered node sequence bound under name.
func (b Bindings) Seq(name string) []*syntax.Node { return b.seqs[name] }

func (b *Bindings) bindNode(name string, n *syntax.Node) {
	if b.nodes == nil {
		b.nodes = make(map[string]*syntax.Node)
	}
	b.nodes[name] = n
}

func (b *Bindings) bindSeq(name string, nodes []*syntax.Node) {
	if b.seqs == nil {
		b.seqs = make(map[string][]*syntax.Node)
	}
	b.seqs[name] = nodes
}

// Match evaluates p against n. On success it returns the bindings produced
// by the capture slots; on non-match it returns the zero Bindings and false.
// Matching never mutates the tree and never fails with an error: malformed
// or unexpected node shapes are ordinary non-matches.
func Match(p *Pattern, n *syntax.Node) (Bindings, bool) {
	var b Bindings
	if !match(p, n, &b) {
		return Bindings{}, false
	}
	return b, true
}

func match(p *Pattern, n *syntax.Node, b *Bindings) bool {
	switch p.op {
	case opAny:
		return n != nil

	case opAbsent:
		return n == nil

	case opAtom:
		return n != nil && n.Kind() == p.kind && n.Value() == p.value

	case opKind:
		if n == nil || n.Kind() != p.kind {
			return false
		}
		return matchChildren(p.sub, n.Children(), b)

	case opCapture:
		if !match(p.sub[0], n, b) {
			return false
		}
		b.bindNode(p.name, n)
		return true

	case opAlt:
		// evaluate each alternative in isolation so a failed branch cannot
		// leave partial captures behind
		for _, alt := range p.sub {
			var scratch Bindings
			if match(alt, n, &scratch) {
				for name, node := range scratch.nodes {
					b.bindNode(name, node)
				}
				for name, seq := range scratch.seqs {
					b.bindSeq(name, seq)
				}
				return true
			}
		}
		return false

	default:
		// a Rest outside a child position never matches on its own
		return false
	}
}

func matchChildren(pats []*Pattern, children []*syntax.Node, b *Bindings) bool {
	for i, sub := range pats {
		if sub.op == opRest {
			if i != len(pats)-1 {
				return false
			}
			if sub.name != "" {
				b.bindSeq(sub.name, children[i:])
			}
			return true
		}
		if i >= len(children) {
			return false
		}
		if !match(sub, children[i], b) {
			return false
		}
	}
	return len(pats) == len(children)
}
