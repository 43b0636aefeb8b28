package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/raycontroller/levels"
)

const eps = 1e-6

func mustLevel(t *testing.T, data string) *levels.Level {
	t.Helper()
	lvl, err := levels.Parse([]byte(data))
	if err != nil {
		t.Fatalf("parse level: %v", err)
	}
	return lvl
}

func TestBuildStaticShapesMergesTiles(t *testing.T) {
	cases := []struct {
		name   string
		level  string
		shapes int
	}{
		// 4 bounds walls + one merged 4x1 floor
		{"single_row", `{"width":4,"height":2,"layers":[[0,0,0,0,1,1,1,1]]}`, 5},
		// 4 walls + one 2x2 block
		{"block", `{"width":2,"height":2,"layers":[[1,1,1,1]]}`, 5},
		// 4 walls + left solid + hazard + right solid
		{"hazard_splits_row", `{"width":3,"height":1,"layers":[[1,2,1]]}`, 7},
		// non-physics layers are skipped
		{"no_physics", `{"width":2,"height":1,"layers":[[1,1]],"layer_meta":[{"physics":false}]}`, 4},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			lvl := mustLevel(t, c.level)
			w := NewWorld(lvl)
			if got := w.ShapeCount(); got != c.shapes {
				t.Fatalf("expected %d shapes, got %d", c.shapes, got)
			}
			if w.Level() != lvl {
				t.Fatalf("world does not keep its level")
			}
		})
	}
}

func TestRaycast(t *testing.T) {
	// 4 wide, 3 high; solid floor on the bottom row, hazard on the top right.
	lvl := mustLevel(t, `{"width":4,"height":3,"layers":[[0,0,0,2,0,0,0,0,1,1,1,1]]}`)
	w := NewWorld(lvl)

	tests := []struct {
		name     string
		origin   cp.Vector
		dir      cp.Vector
		maxDist  float64
		mask     uint
		wantHit  bool
		wantDist float64
	}{
		{"floor_below", cp.Vector{X: 1.5, Y: 2}, cp.Vector{Y: -1}, 5, CategorySolid, true, 1},
		{"floor_out_of_range", cp.Vector{X: 1.5, Y: 2}, cp.Vector{Y: -1}, 0.5, CategorySolid, false, 0},
		{"right_bound_wall", cp.Vector{X: 1, Y: 1.5}, cp.Vector{X: 1}, 10, CategorySolid, true, 3},
		{"hazard_masked_out", cp.Vector{X: 2.5, Y: 2.5}, cp.Vector{X: 1}, 10, CategorySolid, true, 1.5},
		{"hazard_in_mask", cp.Vector{X: 2.5, Y: 2.5}, cp.Vector{X: 1}, 10, CategorySolid | CategoryHazard, true, 0.5},
		{"nothing_in_mask", cp.Vector{X: 1.5, Y: 2}, cp.Vector{Y: -1}, 5, 0, false, 0},
		{"zero_length", cp.Vector{X: 1.5, Y: 2}, cp.Vector{Y: -1}, 0, CategorySolid, false, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dist, ok := w.Raycast(tc.origin, tc.dir, tc.maxDist, tc.mask)
			if ok != tc.wantHit {
				t.Fatalf("hit = %v, want %v (dist %v)", ok, tc.wantHit, dist)
			}
			if ok && math.Abs(dist-tc.wantDist) > eps {
				t.Fatalf("distance = %v, want %v", dist, tc.wantDist)
			}
		})
	}
}

func TestRaycastHitDetails(t *testing.T) {
	w := NewWorld(nil)
	w.AddBox(cp.BB{L: 0, B: 0, R: 2, T: 1}, CategorySolid)

	hit, ok := w.RaycastHit(cp.Vector{X: 1, Y: 3}, cp.Vector{Y: -1}, 4, CategorySolid)
	if !ok {
		t.Fatalf("expected a hit")
	}
	if math.Abs(hit.Distance-2) > eps || math.Abs(hit.Point.Y-1) > eps {
		t.Fatalf("unexpected hit %+v", hit)
	}
	if math.Abs(hit.Normal.Y-1) > eps {
		t.Fatalf("expected upward normal, got %v", hit.Normal)
	}
}

func TestOverlaps(t *testing.T) {
	lvl := mustLevel(t, `{"width":3,"height":2,"layers":[[0,0,0,1,2,1]]}`)
	w := NewWorld(lvl)

	hazardBB := cp.BB{L: 1.2, B: 0.9, R: 1.8, T: 1.5}
	if !w.Overlaps(hazardBB, CategoryHazard) {
		t.Fatalf("expected overlap with hazard tile")
	}
	clear := cp.BB{L: 0.2, B: 1.2, R: 0.8, T: 1.8}
	if w.Overlaps(clear, CategoryHazard) {
		t.Fatalf("did not expect hazard overlap above solid tile")
	}
}

func TestMaskFromNames(t *testing.T) {
	mask, err := MaskFromNames([]string{"Solid", " hazard "})
	if err != nil {
		t.Fatal(err)
	}
	if mask != CategorySolid|CategoryHazard {
		t.Fatalf("unexpected mask %b", mask)
	}
	if diff := cmp.Diff([]string{"hazard", "solid"}, MaskNames(mask)); diff != "" {
		t.Fatalf("MaskNames mismatch (-want +got):\n%s", diff)
	}

	if def, err := MaskFromNames(nil); err != nil || def != CategorySolid {
		t.Fatalf("expected solid default, got %b %v", def, err)
	}

	if _, err := MaskFromNames([]string{"lava"}); !errors.Is(err, ErrUnknownLayer) {
		t.Fatalf("expected ErrUnknownLayer, got %v", err)
	}
}
