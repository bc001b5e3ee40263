package canvas

import "testing"

func TestStatusMessagePriority(t *testing.T) {
	tests := []struct {
		status      Status
		serviceable bool
		want        string
	}{
		{MissingSizeX | MissingSizeY, false, MsgMissingSize},
		{MissingSizeX | MissingSizeY | CreateFailed, false, MsgMissingSize},
		{MissingSizeX, false, MsgMissingSizeX},
		{MissingSizeX | CreateFailed, true, MsgMissingSizeX},
		{MissingSizeY, false, MsgMissingSizeY},
		{MissingSizeY | CreateFailed, false, MsgMissingSizeY},
		{CreateFailed, false, MsgCreateFailed},
		{CreateFailed, true, MsgCreateFailed},
		{StatusOK, false, MsgCreationPending},
		{StatusOK, true, MsgOK},
	}
	for _, tt := range tests {
		if got := tt.status.Message(tt.serviceable); got != tt.want {
			t.Errorf("Status(%03b).Message(%v) = %q, want %q", tt.status, tt.serviceable, got, tt.want)
		}
	}
}

func TestStatusWith(t *testing.T) {
	s := StatusOK.With(MissingSizeX, true).With(CreateFailed, true)
	if !s.Has(MissingSizeX) || !s.Has(CreateFailed) || s.Has(MissingSizeY) {
		t.Errorf("With set = %03b", s)
	}
	s = s.With(MissingSizeX, false)
	if s != CreateFailed {
		t.Errorf("With clear = %03b, want %03b", s, CreateFailed)
	}
	if !s.Has(StatusOK) {
		t.Error("every status has the empty set")
	}
}

func TestStatusPublished(t *testing.T) {
	f := newFixture(t)
	f.node.SetValueAt("size[0]", 5)
	if got := f.node.GetInt("status", -1); got != int(MissingSizeY) {
		t.Errorf("status = %d, want %d", got, MissingSizeY)
	}
	if got := f.node.GetString("status-msg", ""); got != MsgMissingSizeY {
		t.Errorf("status-msg = %q, want %q", got, MsgMissingSizeY)
	}
}
