package canvas

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// scriptStep is a single action in an input script.
type scriptStep struct {
	Action string  `yaml:"action"`
	Label  string  `yaml:"label,omitempty"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
	FromX  float64 `yaml:"fromX,omitempty"`
	FromY  float64 `yaml:"fromY,omitempty"`
	ToX    float64 `yaml:"toX,omitempty"`
	ToY    float64 `yaml:"toY,omitempty"`
	Frames int     `yaml:"frames,omitempty"`
	Path   string  `yaml:"path,omitempty"`
	Value  any     `yaml:"value,omitempty"`
	Canvas *int    `yaml:"canvas,omitempty"`
}

type scriptDoc struct {
	Steps []scriptStep `yaml:"steps"`
}

// Script sequences injected input, property writes and screenshots across
// frames for automated visual testing. Attach it to a Game.
//
// Actions:
//
//	click      x, y
//	hover      x, y
//	drag       fromX, fromY, toX, toY, frames
//	wait       frames
//	set        path, value (written below the input canvas node)
//	screenshot label, canvas (optional texture index; the screen when absent)
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a YAML or JSON script.
func LoadScript(data []byte) (*Script, error) {
	var doc scriptDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(doc.Steps) == 0 {
		return nil, errors.New("parse script: no steps")
	}
	for i, st := range doc.Steps {
		switch st.Action {
		case "click", "hover", "drag", "wait", "screenshot":
		case "set":
			if st.Path == "" {
				return nil, fmt.Errorf("parse script: step %d: set without path", i)
			}
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: doc.Steps}, nil
}

// Done reports whether every step has run and all injected input was
// consumed.
func (r *Script) Done() bool {
	return r.done
}

// step advances the script by one frame. Called from Game.Update before
// input is polled.
func (r *Script) step(g *Game) {
	if r.done {
		return
	}
	if g.Input != nil && g.Input.PendingInjected() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		if st.Canvas != nil {
			g.ScreenshotCanvas(*st.Canvas, st.Label)
		} else {
			g.Screenshot(st.Label)
		}
	case "click":
		if g.Input != nil {
			g.Input.InjectClick(st.X, st.Y)
		}
	case "hover":
		if g.Input != nil {
			g.Input.InjectHover(st.X, st.Y)
		}
	case "drag":
		if g.Input != nil {
			g.Input.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
		}
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "set":
		if g.InputCanvas == nil {
			break
		}
		if n := g.InputCanvas.Node().Node(st.Path, true); n != nil {
			n.SetValue(st.Value)
		} else {
			Logger().Warn("canvas: script set with invalid path", "path", st.Path)
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 &&
		(g.Input == nil || g.Input.PendingInjected() == 0) {
		r.done = true
	}
}
