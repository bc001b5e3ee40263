package canvas

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/canvas/props"
)

// Group is the drawing subtree rendered into a canvas. The canvas forwards the
// property notifications it does not handle itself, and calls Update once per
// frame regardless of whether the frame is drawn.
type Group interface {
	Update(dt float64)
	HandleMouseEvent(ev *MouseEvent) bool
	ValueChanged(n *props.Node)
	ChildAdded(parent, child *props.Node)
	ChildRemoved(parent, child *props.Node)

	// CreateChild adds a property node of the given kind below the group's
	// node and returns it. The element appears once the notification is
	// routed back into the group.
	CreateChild(kind, name string) *props.Node

	Draw(dst *ebiten.Image, geo ebiten.GeoM)
	Dispose()
}

// ElementKind distinguishes element behaviour.
type ElementKind uint8

const (
	KindGroup ElementKind = iota // container offsetting its children
	KindRect                     // solid filled rectangle
	KindText                     // single or multi-line label
)

var elementKinds = map[string]ElementKind{
	"group": KindGroup,
	"rect":  KindRect,
	"text":  KindText,
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Element is a node of the default drawing tree. Its attributes mirror the
// values below its property node: x, y, width, height, fill, z-index and
// visible. Text elements also read text and font-size; fill colors the
// glyphs.
type Element struct {
	Kind ElementKind

	X, Y, Width, Height float64
	Fill                Color
	ZIndex              int
	Visible             bool

	Text     string
	FontSize float64

	// OnMouse is called for pointer events hitting the element. Returning
	// true marks the event handled and stops propagation.
	OnMouse func(ev *MouseEvent) bool

	// OnUpdate is called once per frame with the frame delta in seconds.
	OnUpdate func(dt float64)

	node           *props.Node
	parent         *Element
	children       []*Element
	sortedChildren []*Element
	childrenSorted bool
	disposed       bool
}

func newElement(kind ElementKind, node *props.Node) *Element {
	return &Element{
		Kind:           kind,
		Fill:           ColorWhite,
		Visible:        true,
		node:           node,
		childrenSorted: true,
	}
}

// Node returns the property node backing the element.
func (e *Element) Node() *props.Node { return e.node }

// Parent returns the parent element, or nil for the root.
func (e *Element) Parent() *Element { return e.parent }

// Children returns the children in insertion order. MUST NOT be mutated.
func (e *Element) Children() []*Element { return e.children }

// Bounds returns the element rectangle in its parent's coordinates. Text
// elements without an explicit size report their measured extent.
func (e *Element) Bounds() Rect {
	r := Rect{X: e.X, Y: e.Y, Width: e.Width, Height: e.Height}
	if e.Kind == KindText && (r.Width <= 0 || r.Height <= 0) {
		r.Width, r.Height = e.measureText()
	}
	return r
}

// IsDisposed reports whether the element has been removed.
func (e *Element) IsDisposed() bool { return e.disposed }

// find returns the element backed by n in the subtree rooted at e.
func (e *Element) find(n *props.Node) *Element {
	if e.node == n {
		return e
	}
	for _, c := range e.children {
		if found := c.find(n); found != nil {
			return found
		}
	}
	return nil
}

func (e *Element) addChild(child *Element) {
	child.parent = e
	e.children = append(e.children, child)
	e.childrenSorted = false
}

func (e *Element) removeChild(child *Element) {
	for i, c := range e.children {
		if c == child {
			copy(e.children[i:], e.children[i+1:])
			e.children[len(e.children)-1] = nil
			e.children = e.children[:len(e.children)-1]
			e.childrenSorted = false
			return
		}
	}
}

// setAttribute applies a property value to the element. Invalid colors keep
// the previous fill.
func (e *Element) setAttribute(n *props.Node) bool {
	switch n.Name() {
	case "x":
		e.X = n.FloatValue()
	case "y":
		e.Y = n.FloatValue()
	case "width":
		e.Width = n.FloatValue()
	case "height":
		e.Height = n.FloatValue()
	case "fill":
		if c, err := ParseColor(n.StringValue()); err == nil {
			e.Fill = c
		}
	case "z-index":
		e.ZIndex = n.IntValue()
		if e.parent != nil {
			e.parent.childrenSorted = false
		}
	case "visible":
		e.Visible = n.BoolValue()
	case "text":
		e.Text = n.StringValue()
	case "font-size":
		e.FontSize = n.FloatValue()
	default:
		return false
	}
	return true
}

// drawOrder returns the children sorted by ZIndex. Equal ZIndex values keep
// insertion order.
func (e *Element) drawOrder() []*Element {
	if !e.childrenSorted {
		e.sortedChildren = append(e.sortedChildren[:0], e.children...)
		sort.SliceStable(e.sortedChildren, func(i, j int) bool {
			return e.sortedChildren[i].ZIndex < e.sortedChildren[j].ZIndex
		})
		e.childrenSorted = true
	}
	return e.sortedChildren
}

func (e *Element) update(dt float64) {
	if e.OnUpdate != nil {
		e.OnUpdate(dt)
	}
	for _, c := range e.children {
		c.update(dt)
	}
}

func (e *Element) draw(dst *ebiten.Image, geo ebiten.GeoM) {
	if !e.Visible {
		return
	}
	switch e.Kind {
	case KindRect:
		if e.Width <= 0 || e.Height <= 0 || e.Fill.A <= 0 {
			break
		}
		var op ebiten.DrawImageOptions
		op.GeoM.Scale(e.Width, e.Height)
		op.GeoM.Translate(e.X, e.Y)
		op.GeoM.Concat(geo)
		op.ColorScale.Scale(
			float32(e.Fill.R*e.Fill.A),
			float32(e.Fill.G*e.Fill.A),
			float32(e.Fill.B*e.Fill.A),
			float32(e.Fill.A),
		)
		dst.DrawImage(ensureWhitePixel(), &op)
	case KindText:
		e.drawText(dst, geo)
	case KindGroup:
		var local ebiten.GeoM
		local.Translate(e.X, e.Y)
		local.Concat(geo)
		geo = local
	}
	for _, c := range e.drawOrder() {
		c.draw(dst, geo)
	}
}

// hit walks children in reverse draw order and offers the event to every
// element containing the point. x and y are in e's parent coordinates.
func (e *Element) hit(ev *MouseEvent, x, y float64) bool {
	if !e.Visible {
		return false
	}
	lx, ly := x, y
	if e.Kind == KindGroup {
		lx, ly = x-e.X, y-e.Y
	}
	order := e.drawOrder()
	for i := len(order) - 1; i >= 0; i-- {
		if order[i].hit(ev, lx, ly) {
			return true
		}
	}
	if e.Kind != KindGroup && !e.Bounds().Contains(x, y) {
		return false
	}
	if e.OnMouse != nil {
		return e.OnMouse(ev)
	}
	return false
}

func (e *Element) dispose() {
	e.disposed = true
	for _, c := range e.children {
		c.dispose()
	}
	e.children = nil
	e.sortedChildren = nil
	e.parent = nil
	e.OnMouse = nil
	e.OnUpdate = nil
}

// whitePixel is a lazily created 1x1 white image scaled to draw rectangles.
var whitePixel *ebiten.Image

func ensureWhitePixel() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(ColorWhite.toRGBA())
	}
	return whitePixel
}

// --- ElementGroup ---

// ElementGroup is the default Group. It maps "group", "rect" and "text"
// children of its property node (recursively) to elements.
type ElementGroup struct {
	root *Element
}

// NewElementGroup creates a group rooted at node. The group does not listen
// to node itself; its owner forwards notifications.
func NewElementGroup(node *props.Node) *ElementGroup {
	return &ElementGroup{root: newElement(KindGroup, node)}
}

// Root returns the root element.
func (g *ElementGroup) Root() *Element {
	return g.root
}

// ElementFor returns the element backed by n, or nil.
func (g *ElementGroup) ElementFor(n *props.Node) *Element {
	if g.root == nil || n == nil {
		return nil
	}
	return g.root.find(n)
}

// Update runs OnUpdate callbacks depth first.
func (g *ElementGroup) Update(dt float64) {
	if g.root != nil {
		g.root.update(dt)
	}
}

// HandleMouseEvent hit-tests the event position against the tree and reports
// whether an OnMouse callback handled it.
func (g *ElementGroup) HandleMouseEvent(ev *MouseEvent) bool {
	if g.root == nil {
		return false
	}
	return g.root.hit(ev, ev.X, ev.Y)
}

// ChildAdded creates an element for a recognised child of an element node.
func (g *ElementGroup) ChildAdded(parent, child *props.Node) {
	kind, ok := elementKinds[child.Name()]
	if !ok {
		return
	}
	p := g.ElementFor(parent)
	if p == nil || p.Kind != KindGroup || p.find(child) != nil {
		return
	}
	p.addChild(newElement(kind, child))
}

// ChildRemoved disposes the element backed by child.
func (g *ElementGroup) ChildRemoved(parent, child *props.Node) {
	e := g.ElementFor(child)
	if e == nil || e == g.root {
		return
	}
	if e.parent != nil {
		e.parent.removeChild(e)
	}
	e.dispose()
}

// ValueChanged applies attribute values to the owning element.
func (g *ElementGroup) ValueChanged(n *props.Node) {
	if e := g.ElementFor(n.Parent()); e != nil {
		e.setAttribute(n)
	}
}

// CreateChild adds a kind child below the root node, storing name as its "id".
func (g *ElementGroup) CreateChild(kind, name string) *props.Node {
	if g.root == nil {
		return nil
	}
	child := g.root.node.AddChild(kind)
	if name != "" {
		child.SetValueAt("id", name)
	}
	return child
}

// Draw draws the tree with geo applied on top of element transforms.
func (g *ElementGroup) Draw(dst *ebiten.Image, geo ebiten.GeoM) {
	if g.root != nil {
		g.root.draw(dst, geo)
	}
}

// Dispose releases the element tree.
func (g *ElementGroup) Dispose() {
	if g.root != nil {
		g.root.dispose()
		g.root = nil
	}
}
