package render

// Surface is where the engine draws. Calls are fire-and-forget.
type Surface interface {
	Clear()
	DrawSprite(sprite string, x, y, w, h float64)
	// DrawMissing marks the spot of an entity whose sprite failed to load.
	DrawMissing(x, y, w, h float64)
	DrawModal(lines []string)
}
