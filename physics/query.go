package physics

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jakecoffman/cp"
)

// Collision categories. A shape belongs to exactly one category; queries
// pass a mask of the categories they want to see.
const (
	CategorySolid uint = 1 << iota
	CategoryHazard
)

var ErrUnknownLayer = errors.New("physics: unknown collision layer")

var categoryNames = map[string]uint{
	"solid":  CategorySolid,
	"hazard": CategoryHazard,
}

// MaskFromNames converts layer names into a category mask. An empty list
// selects solid geometry only.
func MaskFromNames(names []string) (uint, error) {
	if len(names) == 0 {
		return CategorySolid, nil
	}
	var mask uint
	for _, name := range names {
		bit, ok := categoryNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrUnknownLayer, name)
		}
		mask |= bit
	}
	return mask, nil
}

// MaskNames is the inverse of MaskFromNames.
func MaskNames(mask uint) []string {
	var names []string
	for name, bit := range categoryNames {
		if mask&bit != 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Hit describes the nearest intersection found by a raycast.
type Hit struct {
	Distance float64
	Point    cp.Vector
	Normal   cp.Vector
	Shape    *cp.Shape
}

// RaycastHit casts a ray from origin along the unit vector dir for at most
// maxDist and returns the nearest shape in mask it crosses.
func (w *World) RaycastHit(origin, dir cp.Vector, maxDist float64, mask uint) (Hit, bool) {
	if w == nil || w.space == nil || maxDist <= 0 {
		return Hit{}, false
	}
	end := origin.Add(dir.Mult(maxDist))
	filter := cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, mask)
	info := w.space.SegmentQueryFirst(origin, end, 0, filter)
	if info.Shape == nil {
		return Hit{}, false
	}
	return Hit{
		Distance: info.Alpha * maxDist,
		Point:    info.Point,
		Normal:   info.Normal,
		Shape:    info.Shape,
	}, true
}

// Raycast implements controller.Raycaster.
func (w *World) Raycast(origin, dir cp.Vector, maxDist float64, mask uint) (float64, bool) {
	hit, ok := w.RaycastHit(origin, dir, maxDist, mask)
	return hit.Distance, ok
}

// Overlaps reports whether any shape in mask has a bounding box touching bb.
func (w *World) Overlaps(bb cp.BB, mask uint) bool {
	if w == nil || w.space == nil {
		return false
	}
	found := false
	filter := cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, mask)
	w.space.BBQuery(bb, filter, func(shape *cp.Shape, data interface{}) {
		found = true
	}, nil)
	return found
}
