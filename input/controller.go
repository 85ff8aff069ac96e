package input

import "go.uber.org/zap"

// Listener names the listener set currently attached to the input source.
type Listener uint8

const (
	ListenerNone Listener = iota
	// ListenerMovement is the key-down/key-up pair feeding a KeySet.
	ListenerMovement
	// ListenerDismiss waits for ResumeKey while the game is suspended.
	ListenerDismiss
)

func (l Listener) String() string {
	switch l {
	case ListenerMovement:
		return "movement"
	case ListenerDismiss:
		return "dismiss"
	default:
		return "none"
	}
}

// Controller routes raw key events to whichever listener set is attached.
// At most one set is attached at any time; attaching one detaches the other.
type Controller struct {
	attached Listener
	keys     *KeySet
	dismiss  func()
	log      *zap.Logger
}

func NewController(log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{log: log}
}

// AttachMovement binds the movement listener pair to keys.
func (c *Controller) AttachMovement(keys *KeySet) {
	if c == nil || keys == nil {
		return
	}
	c.Detach()
	c.keys = keys
	c.attached = ListenerMovement
	c.log.Debug("input: attached", zap.Stringer("listener", c.attached))
}

// AttachDismiss binds the dismiss listener; fn runs when ResumeKey goes down.
func (c *Controller) AttachDismiss(fn func()) {
	if c == nil || fn == nil {
		return
	}
	c.Detach()
	c.dismiss = fn
	c.attached = ListenerDismiss
	c.log.Debug("input: attached", zap.Stringer("listener", c.attached))
}

// Detach removes whatever listener set is attached.
func (c *Controller) Detach() {
	if c == nil || c.attached == ListenerNone {
		return
	}
	c.log.Debug("input: detached", zap.Stringer("listener", c.attached))
	c.attached = ListenerNone
	c.keys = nil
	c.dismiss = nil
}

func (c *Controller) Attached() Listener {
	if c == nil {
		return ListenerNone
	}
	return c.attached
}

func (c *Controller) KeyDown(ev Event) {
	if c == nil {
		return
	}
	switch c.attached {
	case ListenerMovement:
		if ev.Key != KeyShift && ev.Key != KeySpace {
			c.keys.Add(ev.Key)
		}
		if ev.Shift || ev.Key == KeyShift {
			c.keys.Add(KeyShift)
		}
	case ListenerDismiss:
		if ev.Key == ResumeKey {
			c.dismiss()
		}
	}
}

func (c *Controller) KeyUp(ev Event) {
	if c == nil || c.attached != ListenerMovement {
		return
	}
	c.keys.Remove(ev.Key)
	if ev.Shift {
		c.keys.Remove(KeyShift)
	}
}
