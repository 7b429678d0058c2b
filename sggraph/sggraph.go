// Package sggraph holds the diagram model shared by every layout pass: nodes,
// edges, nested subgraphs, and the derived bounds. Layout mutates positions,
// routes and subgraph rectangles in place; sizes are inputs and never change.
package sggraph

import (
	"fmt"
	"math"

	"github.com/slidegraph/slidegraph/lib/geo"
)

const (
	DEFAULT_FONT_SIZE       = 14.
	DEFAULT_TITLE_FONT_SIZE = 12.
	DEFAULT_PADDING         = 24.

	// title band reserved at the top of a subgraph frame, before wrapping
	MIN_TITLE_BAND = 26.

	AspectRatioWide     = 16. / 9.
	AspectRatioStandard = 4. / 3.
)

// Direction is the primary flow axis of the diagram.
type Direction string

const (
	DirectionDown  Direction = "down"
	DirectionUp    Direction = "up"
	DirectionRight Direction = "right"
	DirectionLeft  Direction = "left"
)

func (d Direction) IsHorizontal() bool {
	return d == DirectionRight || d == DirectionLeft
}

// Flow returns the unit vector along which edges should make forward progress.
func (d Direction) Flow() (dx, dy float64) {
	switch d {
	case DirectionUp:
		return 0, -1
	case DirectionRight:
		return 1, 0
	case DirectionLeft:
		return -1, 0
	default:
		return 0, 1
	}
}

// Transposed swaps the flow axis, keeping the forward sign.
func (d Direction) Transposed() Direction {
	switch d {
	case DirectionDown:
		return DirectionRight
	case DirectionRight:
		return DirectionDown
	case DirectionUp:
		return DirectionLeft
	default:
		return DirectionUp
	}
}

// Side is one of the four anchor sides of a node's rectangle.
type Side string

const (
	SideNone   Side = ""
	SideTop    Side = "top"
	SideRight  Side = "right"
	SideBottom Side = "bottom"
	SideLeft   Side = "left"
)

var Sides = []Side{SideTop, SideRight, SideBottom, SideLeft}

// Normal is the outward unit normal of the side.
func (s Side) Normal() (dx, dy float64) {
	switch s {
	case SideTop:
		return 0, -1
	case SideRight:
		return 1, 0
	case SideBottom:
		return 0, 1
	case SideLeft:
		return -1, 0
	default:
		return 0, 0
	}
}

// IsVerticalFace reports whether the side's face runs vertically
// (left/right sides), i.e. its normal points along x.
func (s Side) IsVerticalFace() bool {
	return s == SideLeft || s == SideRight
}

func (s Side) Opposite() Side {
	switch s {
	case SideTop:
		return SideBottom
	case SideBottom:
		return SideTop
	case SideLeft:
		return SideRight
	case SideRight:
		return SideLeft
	default:
		return SideNone
	}
}

// Shape is the visual kind of a node. Opaque to layout except that junctions
// and zero-size markers are excluded from text constraints.
type Shape string

const (
	ShapeRectangle     Shape = "rect"
	ShapeRoundedRect   Shape = "roundRect"
	ShapeCircle        Shape = "circle"
	ShapeDiamond       Shape = "diamond"
	ShapeCylinder      Shape = "cylinder"
	ShapeHexagon       Shape = "hexagon"
	ShapeCloud         Shape = "cloud"
	ShapeParallelogram Shape = "parallelogram"
	ShapeTrapezoid     Shape = "trapezoid"
	ShapeSubroutine    Shape = "subroutine"
)

// Style carries visual attributes the layout never interprets, except for
// fill/text colors read by the contrast scorer.
type Style map[string]any

func (s Style) GetString(key string) string {
	if s == nil {
		return ""
	}
	if v, ok := s[key].(string); ok {
		return v
	}
	return ""
}

type Node struct {
	ID    string
	Label string
	Shape Shape

	// Box.TopLeft is the primary layout output. Width/Height are inputs and
	// must survive layout untouched.
	*geo.Box

	FontSize   float64
	SubgraphID string
	IsJunction bool
	Style      Style
}

func (n *Node) Move(dx, dy float64) {
	n.TopLeft.X += dx
	n.TopLeft.Y += dy
}

// AnchorPoint is the midpoint of the given side.
func (n *Node) AnchorPoint(s Side) *geo.Point {
	return n.AnchorAt(s, 0)
}

// AnchorAt offsets the anchor along the side's face, for spreading parallel
// edges into lanes.
func (n *Node) AnchorAt(s Side, along float64) *geo.Point {
	tl := n.TopLeft
	switch s {
	case SideTop:
		return geo.NewPoint(tl.X+n.Width/2+along, tl.Y)
	case SideBottom:
		return geo.NewPoint(tl.X+n.Width/2+along, tl.Y+n.Height)
	case SideLeft:
		return geo.NewPoint(tl.X, tl.Y+n.Height/2+along)
	case SideRight:
		return geo.NewPoint(tl.X+n.Width, tl.Y+n.Height/2+along)
	default:
		return n.Center()
	}
}

type Edge struct {
	ID    string
	Src   string
	Dst   string
	Label string

	// measured upstream together with node sizes
	LabelWidth  float64
	LabelHeight float64

	Route         geo.Route
	LabelPosition *geo.Point

	// resolved by side selection
	SrcSide Side
	DstSide Side
	// author-provided preferences, honored unless clearly worse
	SrcSideHint Side
	DstSideHint Side

	Style Style
}

func (e *Edge) IsSelfLoop() bool {
	return e.Src == e.Dst
}

func (e *Edge) Move(dx, dy float64) {
	for _, p := range e.Route {
		p.X += dx
		p.Y += dy
	}
	if e.LabelPosition != nil {
		e.LabelPosition.X += dx
		e.LabelPosition.Y += dy
	}
}

type Subgraph struct {
	ID       string
	Title    string
	ParentID string
	Members  []string

	// derived from members, never authored
	Box *geo.Box

	FontSize float64
	Style    Style
}

type Diagram struct {
	Direction   Direction
	AspectRatio float64
	Padding     float64

	Nodes     []*Node
	Edges     []*Edge
	Subgraphs []*Subgraph

	// derived extent over everything, see RecomputeBounds
	Bounds *geo.Box

	nodeByID     map[string]*Node
	subgraphByID map[string]*Subgraph
}

func NewDiagram() *Diagram {
	d := &Diagram{
		Direction:   DirectionDown,
		AspectRatio: AspectRatioWide,
		Padding:     DEFAULT_PADDING,
		Bounds:      geo.NewBox(geo.NewPoint(0, 0), 0, 0),
	}
	d.Reindex()
	return d
}

// Reindex rebuilds the id lookup maps and reconciles subgraph membership.
// Call it after adding objects or unmarshalling; layout itself never adds
// or removes objects.
func (d *Diagram) Reindex() {
	d.nodeByID = make(map[string]*Node, len(d.Nodes))
	for _, n := range d.Nodes {
		d.nodeByID[n.ID] = n
	}
	d.subgraphByID = make(map[string]*Subgraph, len(d.Subgraphs))
	for _, sg := range d.Subgraphs {
		d.subgraphByID[sg.ID] = sg
	}
	d.reconcileMembership()
}

// reconcileMembership makes the two ways of authoring membership agree.
// A node listed in Subgraph.Members adopts that SubgraphID unless it claims
// another subgraph; a SubgraphID pointing at no subgraph is cleared; then
// every Members list is rebuilt from the nodes, in declaration order, so
// both views stay canonical.
func (d *Diagram) reconcileMembership() {
	for _, sg := range d.Subgraphs {
		for _, id := range sg.Members {
			if n := d.nodeByID[id]; n != nil && n.SubgraphID == "" {
				n.SubgraphID = sg.ID
			}
		}
	}
	members := make(map[string][]string, len(d.Subgraphs))
	for _, n := range d.Nodes {
		if n.SubgraphID == "" {
			continue
		}
		if d.subgraphByID[n.SubgraphID] == nil {
			n.SubgraphID = ""
			continue
		}
		members[n.SubgraphID] = append(members[n.SubgraphID], n.ID)
	}
	for _, sg := range d.Subgraphs {
		sg.Members = members[sg.ID]
	}
}

// MemberNodes resolves the nodes directly inside sg, honoring both
// Subgraph.Members and Node.SubgraphID even before reconciliation.
func (d *Diagram) MemberNodes(sg *Subgraph) []*Node {
	var nodes []*Node
	seen := make(map[string]bool, len(sg.Members))
	for _, id := range sg.Members {
		n := d.nodeByID[id]
		if n == nil || seen[id] {
			continue
		}
		seen[id] = true
		nodes = append(nodes, n)
	}
	for _, n := range d.Nodes {
		if n.SubgraphID == sg.ID && !seen[n.ID] {
			seen[n.ID] = true
			nodes = append(nodes, n)
		}
	}
	return nodes
}

func (d *Diagram) NodeByID(id string) *Node {
	return d.nodeByID[id]
}

func (d *Diagram) SubgraphByID(id string) *Subgraph {
	return d.subgraphByID[id]
}

func (d *Diagram) AddNode(n *Node) *Node {
	if n.FontSize == 0 {
		n.FontSize = DEFAULT_FONT_SIZE
	}
	if n.Box == nil {
		n.Box = geo.NewBox(geo.NewPoint(0, 0), 0, 0)
	} else if n.TopLeft == nil {
		n.TopLeft = geo.NewPoint(0, 0)
	}
	d.Nodes = append(d.Nodes, n)
	d.nodeByID[n.ID] = n
	return n
}

func (d *Diagram) AddEdge(e *Edge) *Edge {
	if e.ID == "" {
		e.ID = fmt.Sprintf("%s->%s[%d]", e.Src, e.Dst, len(d.Edges))
	}
	d.Edges = append(d.Edges, e)
	return e
}

func (d *Diagram) AddSubgraph(sg *Subgraph) *Subgraph {
	if sg.FontSize == 0 {
		sg.FontSize = DEFAULT_TITLE_FONT_SIZE
	}
	d.Subgraphs = append(d.Subgraphs, sg)
	d.subgraphByID[sg.ID] = sg
	return sg
}

// EdgeEndpoints resolves both endpoint nodes, or nil for dangling references.
func (d *Diagram) EdgeEndpoints(e *Edge) (src, dst *Node) {
	return d.nodeByID[e.Src], d.nodeByID[e.Dst]
}

// Degree counts edges touching the node, self-loops twice.
func (d *Diagram) Degree(nodeID string) int {
	degree := 0
	for _, e := range d.Edges {
		if e.Src == nodeID {
			degree++
		}
		if e.Dst == nodeID {
			degree++
		}
	}
	return degree
}

// RootSubgraphs returns subgraphs without a parent, in declaration order.
func (d *Diagram) RootSubgraphs() []*Subgraph {
	var roots []*Subgraph
	for _, sg := range d.Subgraphs {
		if sg.ParentID == "" || d.subgraphByID[sg.ParentID] == nil {
			roots = append(roots, sg)
		}
	}
	return roots
}

// ChildSubgraphs returns direct children of the given subgraph.
func (d *Diagram) ChildSubgraphs(id string) []*Subgraph {
	var children []*Subgraph
	for _, sg := range d.Subgraphs {
		if sg.ParentID == id {
			children = append(children, sg)
		}
	}
	return children
}

// DescendantNodes returns member nodes of sg and of all nested subgraphs.
func (d *Diagram) DescendantNodes(sg *Subgraph) []*Node {
	nodes := d.MemberNodes(sg)
	for _, child := range d.ChildSubgraphs(sg.ID) {
		nodes = append(nodes, d.DescendantNodes(child)...)
	}
	return nodes
}

// IsAncestor reports whether a is an ancestor of b (or a == b).
func (d *Diagram) IsAncestor(a, b *Subgraph) bool {
	for cur := b; cur != nil; {
		if cur == a {
			return true
		}
		if cur.ParentID == "" {
			return false
		}
		cur = d.subgraphByID[cur.ParentID]
	}
	return false
}

// Related reports whether two subgraphs are on the same ancestor chain.
// Unrelated subgraphs must keep a minimum gap; related ones nest.
func (d *Diagram) Related(a, b *Subgraph) bool {
	return d.IsAncestor(a, b) || d.IsAncestor(b, a)
}

// EnclosingSubgraph walks up from a node's subgraph to find whether nodeID
// is inside sg directly or through nesting.
func (d *Diagram) EnclosingSubgraph(n *Node) *Subgraph {
	if n.SubgraphID == "" {
		return nil
	}
	return d.subgraphByID[n.SubgraphID]
}

// NodeInSubgraph reports whether n belongs to sg, directly or nested.
func (d *Diagram) NodeInSubgraph(n *Node, sg *Subgraph) bool {
	cur := d.EnclosingSubgraph(n)
	for cur != nil {
		if cur == sg {
			return true
		}
		if cur.ParentID == "" {
			return false
		}
		cur = d.subgraphByID[cur.ParentID]
	}
	return false
}

// SubgraphDepth is 0 for roots, increasing with nesting.
func (d *Diagram) SubgraphDepth(sg *Subgraph) int {
	depth := 0
	for sg.ParentID != "" {
		parent := d.subgraphByID[sg.ParentID]
		if parent == nil {
			break
		}
		sg = parent
		depth++
	}
	return depth
}

// TargetRatio returns the aspect ratio to fit, defaulting to 16:9.
func (d *Diagram) TargetRatio() float64 {
	if d.AspectRatio <= 0 || math.IsNaN(d.AspectRatio) || math.IsInf(d.AspectRatio, 0) {
		return AspectRatioWide
	}
	return d.AspectRatio
}
