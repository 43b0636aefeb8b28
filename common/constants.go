package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// TileSize is the edge length of one level tile in world units.
	TileSize = 1.0
	// PixelsPerUnit converts world units to screen pixels before camera zoom.
	PixelsPerUnit = 32.0
)
