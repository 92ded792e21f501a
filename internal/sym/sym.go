package sym

import (
	"fmt"
	"strings"
	"time"
)

const SchemaVersion = "1.0"

// Kind identifies the declaration kind of a Node.
type Kind string

const (
	KindUnit       Kind = "unit" // synthetic root of one source unit
	KindClass      Kind = "class"
	KindMethod     Kind = "method"
	KindField      Kind = "field"
	KindParameter  Kind = "parameter"
	KindLocal      Kind = "local"
	KindEnum       Kind = "enum"
	KindEnumMember Kind = "enum_member"
)

var validKinds = map[Kind]bool{
	KindUnit: true, KindClass: true, KindMethod: true, KindField: true,
	KindParameter: true, KindLocal: true, KindEnum: true, KindEnumMember: true,
}

func ValidKind(k Kind) bool { return validKinds[k] }

// Severity levels, highest first in reports.
const (
	SeverityError   = "ERROR"
	SeverityWarning = "WARNING"
	SeverityInfo    = "INFO"
)

func SeverityRank(sev string) int {
	switch strings.ToUpper(strings.TrimSpace(sev)) {
	case SeverityError:
		return 3
	case SeverityWarning:
		return 2
	default:
		return 1 // INFO or unknown
	}
}

// Node is one declaration in the symbol tree. The front end that parses
// concrete source emits these; the engine never sees raw syntax.
type Node struct {
	Kind      Kind     `json:"kind" yaml:"kind"`
	Name      string   `json:"name" yaml:"name"`
	Modifiers []string `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`
	Type      string   `json:"type,omitempty" yaml:"type,omitempty"`
	// Value is the explicit initializer literal, when one was declared.
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
	// Calls lists member invocations observed in a method body,
	// qualified as "<receiver>.<member>".
	Calls []string `json:"calls,omitempty" yaml:"calls,omitempty"`
	// NullEquality lists field names the body compares against a null
	// literal with == or !=.
	NullEquality []string `json:"null_equality,omitempty" yaml:"null_equality,omitempty"`

	File string `json:"file,omitempty" yaml:"file,omitempty"`
	Line int    `json:"line,omitempty" yaml:"line,omitempty"`

	Children []*Node `json:"children,omitempty" yaml:"members,omitempty"`

	parent *Node
}

// Parent returns the enclosing declaration, nil at the unit root.
func (n *Node) Parent() *Node { return n.parent }

func (n *Node) HasModifier(m string) bool {
	for _, mod := range n.Modifiers {
		if strings.EqualFold(mod, m) {
			return true
		}
	}
	return false
}

// Path is the dotted symbol path from the unit root, e.g. "Invoice.Total".
func (n *Node) Path() string {
	var parts []string
	for cur := n; cur != nil && cur.Kind != KindUnit; cur = cur.parent {
		parts = append(parts, cur.Name)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, ".")
}

// Link wires parent pointers for the whole tree rooted at n and verifies
// the tree invariants: every node reachable exactly once, no cycles.
func (n *Node) Link() error {
	seen := make(map[*Node]bool)
	var link func(parent, cur *Node) error
	link = func(parent, cur *Node) error {
		if cur == nil {
			return fmt.Errorf("symbol tree: nil node under %q", nameOf(parent))
		}
		if seen[cur] {
			return fmt.Errorf("symbol tree: node %q reachable more than once", cur.Name)
		}
		seen[cur] = true
		cur.parent = parent
		for _, c := range cur.Children {
			if err := link(cur, c); err != nil {
				return err
			}
		}
		return nil
	}
	return link(nil, n)
}

func nameOf(n *Node) string {
	if n == nil {
		return "<root>"
	}
	return n.Name
}

// Walk visits the tree in depth-first pre-order, children in declaration
// order.
func Walk(root *Node, visit func(*Node)) {
	if root == nil {
		return
	}
	visit(root)
	for _, c := range root.Children {
		Walk(c, visit)
	}
}

// Violation is one detected breach of one rule at one node. Created by the
// analyzer, never mutated afterwards.
type Violation struct {
	ID       string         `json:"id"`
	RuleID   string         `json:"rule_id"`
	Severity string         `json:"severity"`
	File     string         `json:"file,omitempty"`
	Line     int            `json:"line,omitempty"`
	Symbol   string         `json:"symbol,omitempty"`
	Message  string         `json:"message"`
	Evidence string         `json:"evidence,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Unit is one analyzed source unit and its symbol tree.
type Unit struct {
	File string `json:"file"`
	Root *Node  `json:"root"`
}

type Context struct {
	SeverityThreshold string   `json:"severity_threshold,omitempty"`
	DisabledRules     []string `json:"disabled_rules,omitempty"`
}

// Run captures one analysis invocation end to end.
type Run struct {
	ID            string    `json:"id"`
	StartedAt     time.Time `json:"started_at"`
	Source        string    `json:"source,omitempty"`
	SchemaVersion string    `json:"schema_version,omitempty"`

	Context    Context     `json:"context"`
	Units      []Unit      `json:"units"`
	Violations []Violation `json:"violations,omitempty"`
}

// Link relinks parent pointers of every unit tree. Required after JSON
// decoding, which cannot restore the unexported back references.
func (r *Run) Link() error {
	for i := range r.Units {
		if r.Units[i].Root == nil {
			continue
		}
		if err := r.Units[i].Root.Link(); err != nil {
			return fmt.Errorf("unit %s: %w", r.Units[i].File, err)
		}
	}
	return nil
}
