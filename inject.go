package canvas

// syntheticPointer is a queued pointer state in screen coordinates. It goes
// through the same mapping and state machine as real mouse input.
type syntheticPointer struct {
	x, y    float64
	pressed bool
	button  MouseButton
}

// InjectPress queues a left button press at the given screen coordinates.
// Each queued state is consumed by one Poll call instead of real input.
func (s *InputSampler) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointer{x: x, y: y, pressed: true, button: MouseButtonLeft})
}

// InjectMove queues a move with the left button held. Use it between
// InjectPress and InjectRelease to simulate a drag.
func (s *InputSampler) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointer{x: x, y: y, pressed: true, button: MouseButtonLeft})
}

// InjectHover queues a move with no buttons held.
func (s *InputSampler) InjectHover(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointer{x: x, y: y})
}

// InjectRelease queues a release at the given screen coordinates.
func (s *InputSampler) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointer{x: x, y: y, button: MouseButtonLeft})
}

// InjectClick queues a press followed by a release at the same coordinates.
// Consumes two polls.
func (s *InputSampler) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a full drag: press at (fromX, fromY), linearly
// interpolated moves and release at (toX, toY). The sequence consumes
// frames polls; the minimum is 2 (press and release).
func (s *InputSampler) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectRelease(toX, toY)
}

// PendingInjected returns the number of queued synthetic states.
func (s *InputSampler) PendingInjected() int {
	return len(s.injectQueue)
}

// pollInjected consumes one queued state. Reports false when the queue is
// empty and real input should be read.
func (s *InputSampler) pollInjected(mods KeyModifiers) ([]MouseEvent, bool) {
	if len(s.injectQueue) == 0 {
		return nil, false
	}
	p := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	var pressed [3]bool
	if p.pressed {
		pressed[p.button] = true
	}
	return s.sample(p.x, p.y, pressed, 0, mods), true
}
