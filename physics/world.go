package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/raycontroller/levels"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeHazard
)

// boundsThickness is how far the invisible walls around a level extend
// outwards.
const boundsThickness = 1.0

// World owns the Chipmunk space holding a level's static collision shapes.
// Nothing in it moves; it only answers queries.
type World struct {
	level *levels.Level
	space *cp.Space

	shapes int
}

// NewWorld creates a world for level. A nil level yields an empty world.
func NewWorld(level *levels.Level) *World {
	w := &World{level: level, space: cp.NewSpace()}
	w.buildStaticShapes()
	return w
}

// Space returns the underlying Chipmunk space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

// Level returns the level the world was built from.
func (w *World) Level() *levels.Level {
	if w == nil {
		return nil
	}
	return w.level
}

// ShapeCount returns the number of static shapes added to the space.
func (w *World) ShapeCount() int {
	if w == nil {
		return 0
	}
	return w.shapes
}

// AddBox adds a static box in the given category.
func (w *World) AddBox(bb cp.BB, category uint) *cp.Shape {
	if w == nil || w.space == nil {
		return nil
	}
	shape := cp.NewBox2(w.space.StaticBody, bb, 0)
	shape.SetFriction(0.8)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, category, cp.ALL_CATEGORIES))
	if category&CategoryHazard != 0 {
		shape.SetCollisionType(collisionTypeHazard)
	} else {
		shape.SetCollisionType(collisionTypeSolid)
	}
	w.space.AddShape(shape)
	w.shapes++
	return shape
}

func (w *World) buildStaticShapes() {
	if w == nil || w.space == nil || w.level == nil {
		return
	}

	for layerIdx, layer := range w.level.Layers {
		if len(layer) != w.level.Width*w.level.Height || !w.level.HasPhysics(layerIdx) {
			continue
		}
		w.processLayerTiles(layer)
	}

	worldW, worldH := w.level.WorldSize()
	if worldW > 0 && worldH > 0 {
		t := boundsThickness
		walls := []cp.BB{
			{L: -t, B: worldH, R: worldW + t, T: worldH + t}, // top
			{L: -t, B: -t, R: worldW + t, T: 0},              // bottom
			{L: -t, B: 0, R: 0, T: worldH},                   // left
			{L: worldW, B: 0, R: worldW + t, T: worldH},      // right
		}
		for _, bb := range walls {
			w.AddBox(bb, CategorySolid)
		}
	}
}

// processLayerTiles merges contiguous solid tiles into as few boxes as
// possible, greedily expanding each rectangle across then down. Hazard
// tiles stay one box each.
func (w *World) processLayerTiles(layer []int) {
	width, height := w.level.Width, w.level.Height
	processed := make([]bool, width*height)

	solid := func(idx int) bool {
		return !processed[idx] && layer[idx] == levels.TileSolid
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := y*width + x
			if processed[idx] {
				continue
			}
			switch layer[idx] {
			case levels.TileEmpty:
				processed[idx] = true
				continue
			case levels.TileHazard:
				w.AddBox(w.level.TileBB(x, y, 1, 1), CategoryHazard)
				processed[idx] = true
				continue
			case levels.TileSolid:
			default:
				// unknown tile values are decoration
				processed[idx] = true
				continue
			}

			rw := 1
			for x+rw < width && solid(y*width+x+rw) {
				rw++
			}

			rh := 1
		heightLoop:
			for y+rh < height {
				for xi := x; xi < x+rw; xi++ {
					if !solid((y+rh)*width + xi) {
						break heightLoop
					}
				}
				rh++
			}

			w.AddBox(w.level.TileBB(x, y, rw, rh), CategorySolid)

			for yy := y; yy < y+rh; yy++ {
				for xx := x; xx < x+rw; xx++ {
					processed[yy*width+xx] = true
				}
			}
		}
	}
}
