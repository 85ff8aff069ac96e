package entity

import (
	"fmt"

	"github.com/milk9111/wizard/common"
	"github.com/milk9111/wizard/input"
)

// Update advances e by dt time units. Behaviors mutate the entity in place
// and may mark it Disposed.
func Update(e *Entity, keys input.KeySet, dt float64) {
	switch e.Kind {
	case KindPlayer:
		updatePlayer(e, keys, dt)
	case KindFireball:
		updateFireball(e, dt)
	default:
		panic(fmt.Sprintf("entity: no behavior for %s", e.Kind))
	}
}

// The player rises while Up is held, drifts down slowly otherwise and walks
// left/right. Y grows downwards, so the floor is CanvasHeight-Height.
func updatePlayer(e *Entity, keys input.KeySet, dt float64) {
	floor := common.CanvasHeight - e.Height

	if keys.Has(input.KeyUp) {
		if e.Y > 0 {
			e.Direction = e.Direction.SetVertical(DirUp)
			e.Y -= 2 * e.Speed * dt
		}
	} else if e.Y < floor {
		e.Direction = e.Direction.SetVertical(DirDown)
		e.Y += e.Speed * dt / 3
	} else {
		e.Direction &^= DirDown
	}

	if keys.Has(input.KeyLeft) {
		e.Direction = e.Direction.SetHorizontal(DirLeft)
		e.X -= e.Speed * dt
	}
	if keys.Has(input.KeyRight) {
		e.Direction = e.Direction.SetHorizontal(DirRight)
		e.X += e.Speed * dt
	}

	if e.Y < 0 || e.Y > floor {
		e.Y = common.Clamp(e.Y, 0, floor)
		e.Direction = e.Direction.SetVertical(DirNone)
	}
	e.X = common.Clamp(e.X, 0, common.CanvasWidth-e.Width)
}

func updateFireball(e *Entity, dt float64) {
	switch {
	case e.Direction.Has(DirLeft):
		e.X -= e.Speed * dt
	case e.Direction.Has(DirRight):
		e.X += e.Speed * dt
	}

	if e.X < 0 || e.X > common.CanvasWidth {
		e.Lifecycle = Disposed
	}
}
