package motion

// FixedClock advances by the same step every frame. It drives the headless
// simulator and tests.
type FixedClock struct {
	Step float64
}

// NewFixedClock returns a clock ticking at tps frames per second.
func NewFixedClock(tps int) FixedClock {
	if tps <= 0 {
		return FixedClock{}
	}
	return FixedClock{Step: 1 / float64(tps)}
}

func (c FixedClock) DeltaTime() float64 { return c.Step }

// InputFunc adapts a function to InputProvider.
type InputFunc func() Input

func (f InputFunc) Input() Input { return f() }
