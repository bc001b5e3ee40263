package canvas

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/canvas/props"
)

// TweenGroup animates up to 4 numeric values and writes them into property
// nodes every Update. Writing goes through the normal notification path, so a
// tween on a canvas value marks the canvas dirty like any other change. If
// the target node is detached from the tree the group stops immediately.
//
// There is no global animation manager; users call Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	values [4]float64
	apply  func(values [4]float64)
	target *props.Node
	root   *props.Node
	Done   bool
}

func newTweenGroup(target *props.Node, apply func([4]float64)) *TweenGroup {
	return &TweenGroup{target: target, root: target.Root(), apply: apply}
}

func (g *TweenGroup) add(from, to float64, duration float32, fn ease.TweenFunc) {
	g.tweens[g.count] = gween.New(float32(from), float32(to), duration, fn)
	g.values[g.count] = from
	g.count++
}

// Update advances all tweens by dt seconds and writes the values. If the
// target has been removed from its tree, Done is set and nothing is written.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target.Root() != g.root {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		g.values[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
	g.apply(g.values)
}

// TweenValue creates a TweenGroup that animates the numeric value of node to
// the given target over the specified duration using the easing function.
func TweenValue(node *props.Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := newTweenGroup(node, func(v [4]float64) { node.SetFloat(v[0]) })
	g.add(node.FloatValue(), to, duration, fn)
	return g
}

// TweenPosition creates a TweenGroup that animates the "x" and "y" children
// of node, creating them if needed.
func TweenPosition(node *props.Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	x := node.Node("x", true)
	y := node.Node("y", true)
	g := newTweenGroup(node, func(v [4]float64) {
		x.SetFloat(v[0])
		y.SetFloat(v[1])
	})
	g.add(x.FloatValue(), toX, duration, fn)
	g.add(y.FloatValue(), toY, duration, fn)
	return g
}

// TweenColor creates a TweenGroup that animates a color valued node, such as
// "background" or an element "fill", to the target color. An unset or
// invalid start color animates from opaque black.
func TweenColor(node *props.Node, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	from, err := ParseColor(node.StringValue())
	if err != nil {
		from = ColorBlack
	}
	g := newTweenGroup(node, func(v [4]float64) {
		node.SetString(Color{R: v[0], G: v[1], B: v[2], A: v[3]}.String())
	})
	g.add(from.R, to.R, duration, fn)
	g.add(from.G, to.G, duration, fn)
	g.add(from.B, to.B, duration, fn)
	g.add(from.A, to.A, duration, fn)
	return g
}
