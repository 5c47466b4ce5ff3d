package overlay

// ScrollLock is a flag that stops the view behind the overlay from scrolling.
type ScrollLock struct {
	locked bool
}

func (s *ScrollLock) Lock()   { s.locked = true }
func (s *ScrollLock) Unlock() { s.locked = false }

func (s *ScrollLock) Locked() bool { return s.locked }

// background is the process-wide lock; only controllers toggle it.
var background ScrollLock

// ScrollLocked reports whether background scrolling is suspended.
func ScrollLocked() bool { return background.Locked() }
