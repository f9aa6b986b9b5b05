package sigchan

// Chan is a non-blocking signal channel. It carries no data, only the
// fact that something happened.
type Chan struct {
	c chan struct{}
}

// New creates a signal channel with the given buffer size.
func New(bufferSize int) *Chan {
	return &Chan{
		c: make(chan struct{}, bufferSize),
	}
}

// Emit sends a signal without blocking. A full channel drops the signal;
// the receiver is already due to wake up.
func (c *Chan) Emit() {
	select {
	case c.c <- struct{}{}:
	default:
	}
}

// C exposes the channel for select.
func (c *Chan) C() <-chan struct{} {
	return c.c
}
