package obj

import "github.com/hajimehoshi/ebiten/v2"

// TPSClock reports the fixed tick length ebiten runs Update at.
type TPSClock struct{}

func (TPSClock) DeltaTime() float64 {
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	return 1 / float64(tps)
}
