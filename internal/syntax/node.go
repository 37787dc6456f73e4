// Package syntax provides the canonical syntax tree node structure shared by
// all analyzers and the metrics calculator. Trees are produced once per file
// by a parser provider, treated as immutable for the duration of that file's
// analysis, and discarded afterwards.
package syntax

// Kind identifies the structural category of a node. The set is closed:
// parser providers map language-specific grammar productions onto these
// kinds, and anything without a sensible mapping becomes KindUnknown, which
// metrics and analyzers ignore.
type Kind string

// Node kinds relevant to metrics and issue detection.
const (
	KindFile       Kind = "File"
	KindFunction   Kind = "Function"
	KindMethod     Kind = "Method"
	KindClass      Kind = "Class"
	KindInterface  Kind = "Interface"
	KindField      Kind = "Field"
	KindParameter  Kind = "Parameter"
	KindBlock      Kind = "Block"
	KindIf         Kind = "If"
	KindTernary    Kind = "Ternary"
	KindLoop       Kind = "Loop"
	KindSwitch     Kind = "Switch"
	KindCase       Kind = "Case"
	KindTry        Kind = "Try"
	KindCatch      Kind = "Catch"
	KindFinally    Kind = "Finally"
	KindThrow      Kind = "Throw"
	KindReturn     Kind = "Return"
	KindBreak      Kind = "Break"
	KindContinue   Kind = "Continue"
	KindCall       Kind = "Call"
	KindAssignment Kind = "Assignment"
	KindBinaryOp   Kind = "BinaryOp"
	KindUnaryOp    Kind = "UnaryOp"
	KindIdentifier Kind = "Identifier"
	KindLiteral    Kind = "Literal"
	KindImport     Kind = "Import"
	KindComment    Kind = "Comment"
	KindLambda     Kind = "Lambda"
	KindVariable   Kind = "Variable"
	KindStatement  Kind = "Statement"
	KindUnknown    Kind = "Unknown"
)

// Role is a secondary semantic label attached to a node.
type Role string

// Role constants for semantic labeling.
const (
	RoleName        Role = "Name"
	RoleCondition   Role = "Condition"
	RoleBody        Role = "Body"
	RoleDeclaration Role = "Declaration"
	RoleAbstract    Role = "Abstract"
	RoleExported    Role = "Exported"
	RoleOperator    Role = "Operator"
)

// Well-known property keys set by parser providers.
const (
	PropName     = "name"
	PropOperator = "operator"
	PropAbstract = "abstract"
	PropPath     = "path"
)

// Position holds 1-based line/column positions for a node's source span.
type Position struct {
	StartLine uint32 `json:"start_line"`
	StartCol  uint32 `json:"start_col"`
	EndLine   uint32 `json:"end_line"`
	EndCol    uint32 `json:"end_col"`
}

// Node is a single syntax tree node. Children are ordered; the tree is
// ownership-rooted (each node has exactly one parent, reachable from the
// file root).
type Node struct {
	Kind     Kind              `json:"kind"`
	Token    string            `json:"token,omitempty"`
	Roles    []Role            `json:"roles,omitempty"`
	Pos      *Position         `json:"pos,omitempty"`
	Props    map[string]string `json:"props,omitempty"`
	Children []*Node           `json:"children,omitempty"`
}

// NewNode creates a node of the given kind.
func NewNode(kind Kind) *Node {
	return &Node{Kind: kind}
}

// WithToken sets the node token and returns the node for chaining in tests
// and tree builders.
func (n *Node) WithToken(token string) *Node {
	n.Token = token

	return n
}

// WithProp sets a property on the node, allocating the map lazily.
func (n *Node) WithProp(key, value string) *Node {
	if n.Props == nil {
		n.Props = make(map[string]string, 1)
	}

	n.Props[key] = value

	return n
}

// WithRoles sets the node roles.
func (n *Node) WithRoles(roles ...Role) *Node {
	n.Roles = roles

	return n
}

// AddChild appends a child node.
func (n *Node) AddChild(child *Node) *Node {
	n.Children = append(n.Children, child)

	return n
}

// HasRole reports whether the node carries the given role.
func (n *Node) HasRole(role Role) bool {
	for _, r := range n.Roles {
		if r == role {
			return true
		}
	}

	return false
}

// HasAnyKind reports whether the node's kind is one of the given kinds.
func (n *Node) HasAnyKind(kinds ...Kind) bool {
	for _, k := range kinds {
		if n.Kind == k {
			return true
		}
	}

	return false
}

// Prop returns a property value, or the empty string when unset.
func (n *Node) Prop(key string) string {
	if n.Props == nil {
		return ""
	}

	return n.Props[key]
}

// VisitPreOrder walks the subtree rooted at n in pre-order, invoking fn for
// every node including n itself. Nil children are skipped.
func (n *Node) VisitPreOrder(fn func(*Node)) {
	if n == nil {
		return
	}

	fn(n)

	for _, child := range n.Children {
		child.VisitPreOrder(fn)
	}
}

// Find returns all nodes in the subtree (including n) for which the
// predicate returns true. Traversal is pre-order; returns nil for a nil
// receiver.
func (n *Node) Find(predicate func(*Node) bool) []*Node {
	if n == nil {
		return nil
	}

	var matches []*Node

	n.VisitPreOrder(func(curr *Node) {
		if predicate(curr) {
			matches = append(matches, curr)
		}
	})

	return matches
}

// FindByKind returns all nodes in the subtree with any of the given kinds.
func (n *Node) FindByKind(kinds ...Kind) []*Node {
	return n.Find(func(curr *Node) bool {
		return curr.HasAnyKind(kinds...)
	})
}

// CountByKind returns how many nodes of the given kinds the subtree contains.
func (n *Node) CountByKind(kinds ...Kind) int {
	count := 0

	n.VisitPreOrder(func(curr *Node) {
		if curr.HasAnyKind(kinds...) {
			count++
		}
	})

	return count
}

// Name returns the node's declared name: the name property when present,
// otherwise the token of the first child carrying RoleName.
func (n *Node) Name() string {
	if name := n.Prop(PropName); name != "" {
		return name
	}

	for _, child := range n.Children {
		if child.HasRole(RoleName) && child.Token != "" {
			return child.Token
		}
	}

	return ""
}

// StartLine returns the 1-based start line, or 0 when no position is set.
func (n *Node) StartLine() int {
	if n.Pos == nil {
		return 0
	}

	return int(n.Pos.StartLine)
}

// EndLine returns the 1-based end line, or 0 when no position is set.
func (n *Node) EndLine() int {
	if n.Pos == nil {
		return 0
	}

	return int(n.Pos.EndLine)
}

// SpanLines returns the number of source lines the node spans, or 0 when
// position information is missing.
func (n *Node) SpanLines() int {
	if n.Pos == nil || n.Pos.EndLine < n.Pos.StartLine {
		return 0
	}

	return int(n.Pos.EndLine-n.Pos.StartLine) + 1
}

// IsLogicalOperator reports whether the node is a short-circuit logical
// binary expression (&&, ||, and their keyword spellings).
func (n *Node) IsLogicalOperator() bool {
	if n.Kind != KindBinaryOp {
		return false
	}

	switch n.Prop(PropOperator) {
	case "&&", "||", "and", "or":
		return true
	default:
		return false
	}
}

// IsDecisionPoint reports whether the node adds an independent execution
// path for cyclomatic complexity purposes: if, ternary, switch case, any
// loop form, catch clause, or a short-circuit logical operator.
func (n *Node) IsDecisionPoint() bool {
	switch n.Kind {
	case KindIf, KindTernary, KindCase, KindLoop, KindCatch:
		return true
	case KindBinaryOp:
		return n.IsLogicalOperator()
	default:
		return false
	}
}

// IsNesting reports whether the node structurally nests its body for
// cognitive complexity and nesting depth purposes.
func (n *Node) IsNesting() bool {
	switch n.Kind {
	case KindIf, KindTernary, KindLoop, KindSwitch, KindTry, KindCatch:
		return true
	default:
		return false
	}
}
