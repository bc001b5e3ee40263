package canvas

// Status is the set of conditions preventing a canvas from rendering. The
// zero value means the canvas is fully configured.
type Status uint8

const (
	MissingSizeX Status = 1 << iota // size[0] unset or not positive
	MissingSizeY                    // size[1] unset or not positive
	CreateFailed                    // render target allocation failed
)

// StatusOK is the empty status set.
const StatusOK Status = 0

// Status messages published to "status-msg".
const (
	MsgMissingSize     = "Missing size"
	MsgMissingSizeX    = "Missing size-x"
	MsgMissingSizeY    = "Missing size-y"
	MsgCreateFailed    = "Creating render target failed"
	MsgCreationPending = "Creation pending..."
	MsgOK              = "Ok"
)

// Has reports whether every flag in f is set.
func (s Status) Has(f Status) bool {
	return s&f == f
}

// With returns s with the flags in f set (on) or cleared.
func (s Status) With(f Status, on bool) Status {
	if on {
		return s | f
	}
	return s &^ f
}

// Message derives the human readable status. The first matching rule wins;
// messages are never combined. serviceable reports whether the render target
// is usable.
func (s Status) Message(serviceable bool) string {
	switch {
	case s.Has(MissingSizeX | MissingSizeY):
		return MsgMissingSize
	case s.Has(MissingSizeX):
		return MsgMissingSizeX
	case s.Has(MissingSizeY):
		return MsgMissingSizeY
	case s.Has(CreateFailed):
		return MsgCreateFailed
	case s == StatusOK && !serviceable:
		return MsgCreationPending
	default:
		return MsgOK
	}
}

// setStatusFlags updates the status set, re-derives the message and
// publishes both on the canvas node. Observers of "status" and "status-msg"
// are notified; the canvas ignores its own writes.
func (c *Canvas) setStatusFlags(flags Status, on bool) {
	c.status = c.status.With(flags, on)
	c.statusMsg = c.status.Message(c.serviceable())
	c.node.GetChild("status", 0, true).SetInt(int(c.status))
	c.node.GetChild("status-msg", 0, true).SetString(c.statusMsg)
}

// Status returns the current status flags.
func (c *Canvas) Status() Status {
	return c.status
}

// StatusMessage returns the message derived from the current status.
func (c *Canvas) StatusMessage() string {
	return c.statusMsg
}
