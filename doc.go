// Package canvas provides property-driven offscreen render targets for
// [Ebitengine].
//
// A [Canvas] is configured entirely through a [props.Node]: its size,
// view, sampling, background color and placements are values below the
// node, and the canvas writes its status and the last pointer event back
// into the same tree. Changing a value marks the canvas dirty; the next
// [Canvas.Update] redraws the texture only when it is both dirty and
// visible.
//
// # Quick start
//
// A [Manager] turns every "texture" child of a node into a canvas:
//
//	root := props.NewRoot()
//	mgr := canvas.NewManager(root, canvas.Config{})
//
//	tex := root.AddChild("texture")
//	tex.SetValueAt("size[0]", 256)
//	tex.SetValueAt("size[1]", 128)
//	tex.SetValueAt("background", "#102030")
//
// Call [Manager.Update] and [Manager.Draw] once per frame from your
// [ebiten.Game], then draw [Canvas.Texture] wherever it is needed.
//
// # Status
//
// Until both size[0] and size[1] are positive the canvas reports
// "Missing size" (or "Missing size-x"/"Missing size-y") in "status-msg" and
// allocates nothing. A failed allocation reports "Creating render target
// failed" and is retried after the next size change.
//
// # Rendering on demand
//
// Placements and other consumers call [Canvas.EnableRendering] (or the
// closure returned by [Canvas.VisibilityHook]) whenever they show the
// texture. A canvas that is not shown is not redrawn unless "render-always"
// is set. Canvases reading another canvas' texture register themselves with
// [Canvas.AddDependentCanvas] and are redrawn one frame after it.
//
// # Placements
//
// Each "placement" child describes where the texture appears in the wider
// scene. Its "type" (default "object") selects a [PlacementFactory] from the
// [PlacementRegistry]; the result is reported in the placement's own
// "status-msg" as "Ok", "No match" or "Unknown placement type".
//
// # Drawing
//
// The default [Group] is an [ElementGroup]: "group", "rect" and "text"
// children of the canvas node become elements drawn in z-index order. Supply
// [Config.NewGroup] to draw something else. [TweenValue], [TweenPosition]
// and [TweenColor] animate values through the same property writes.
//
// # Input
//
// [InputSampler] converts Ebitengine mouse state into [MouseEvent] values;
// [Canvas.HandleMouseEvent] mirrors them into "mouse/*" and hit-tests the
// drawing group. Pointer events can also be forwarded into an ECS world, see
// the ecs subpackage.
//
// [Game] wires a manager, an input sampler and a canvas into an
// [ebiten.Game]. For automated visual tests attach a [Script] loaded with
// [LoadScript]; it injects clicks and drags, writes properties and queues
// screenshots of the screen or of single canvas textures frame by frame.
//
// # Logging
//
// The package is silent by default. Use [SetLogger] to receive allocation
// and placement diagnostics through [log/slog].
//
// [Ebitengine]: https://ebitengine.org
package canvas
