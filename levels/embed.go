package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/raycontroller/common"
)

//go:embed *.json
var LevelsFS embed.FS

// DefaultLevel is the embedded level used when none is requested.
const DefaultLevel = "test_room.json"

const (
	TileEmpty  = 0
	TileSolid  = 1
	TileHazard = 2
)

var (
	ErrInvalidDimensions = errors.New("levels: invalid dimensions")
	ErrLayerSize         = errors.New("levels: layer size does not match dimensions")
)

// Level is a tile map. Layers are flat row-major arrays of Width*Height
// tiles with row 0 at the top of the map.
type Level struct {
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	Layers    [][]int     `json:"layers"`
	LayerMeta []LayerMeta `json:"layer_meta,omitempty"`

	// player spawn in tile coordinates
	SpawnX int `json:"spawn_x,omitempty"`
	SpawnY int `json:"spawn_y,omitempty"`
}

type LayerMeta struct {
	Physics bool   `json:"physics"`
	Color   string `json:"color,omitempty"`
}

// LoadLevelFromFS loads a level by name from fsys. A leading "levels/" and
// a missing ".json" suffix are tolerated.
func LoadLevelFromFS(fsys fs.FS, name string) (*Level, error) {
	data, err := fs.ReadFile(fsys, cleanLevelName(name))
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", name, err)
	}
	return Parse(data)
}

// Load resolves name against the embedded levels first and falls back to
// treating it as a path on disk. An embedded level that exists but fails to
// parse is reported as is.
func Load(name string) (*Level, error) {
	return load(LevelsFS, name)
}

func load(fsys fs.FS, name string) (*Level, error) {
	if name == "" {
		name = DefaultLevel
	}
	lvl, err := LoadLevelFromFS(fsys, name)
	if err == nil || !errors.Is(err, fs.ErrNotExist) {
		return lvl, err
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", name, err)
	}
	return Parse(data)
}

// Parse decodes and validates a level. Missing layer metadata defaults to a
// physics layer.
func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal: %w", err)
	}
	if lvl.Width <= 0 || lvl.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, lvl.Width, lvl.Height)
	}
	for i, layer := range lvl.Layers {
		if len(layer) != lvl.Width*lvl.Height {
			return nil, fmt.Errorf("%w: layer %d has %d tiles, want %d", ErrLayerSize, i, len(layer), lvl.Width*lvl.Height)
		}
	}
	if len(lvl.LayerMeta) < len(lvl.Layers) {
		meta := make([]LayerMeta, len(lvl.Layers))
		copy(meta, lvl.LayerMeta)
		for i := len(lvl.LayerMeta); i < len(meta); i++ {
			meta[i] = LayerMeta{Physics: true, Color: "#3c78ff"}
		}
		lvl.LayerMeta = meta
	}
	return &lvl, nil
}

// TileAt returns the tile value at column x and row y of a layer, or
// TileEmpty when out of range.
func (l *Level) TileAt(layer, x, y int) int {
	if l == nil || layer < 0 || layer >= len(l.Layers) {
		return TileEmpty
	}
	if x < 0 || y < 0 || x >= l.Width || y >= l.Height {
		return TileEmpty
	}
	return l.Layers[layer][y*l.Width+x]
}

// HasPhysics reports whether tiles on layer collide.
func (l *Level) HasPhysics(layer int) bool {
	if l == nil || layer < 0 || layer >= len(l.LayerMeta) {
		return false
	}
	return l.LayerMeta[layer].Physics
}

// WorldSize returns the level extents in world units.
func (l *Level) WorldSize() (float64, float64) {
	if l == nil {
		return 0, 0
	}
	return float64(l.Width) * common.TileSize, float64(l.Height) * common.TileSize
}

// TileBB returns the world-space box covering w*h tiles whose top-left tile
// is (x, y). World y grows upwards, so row 0 is the top of the level.
func (l *Level) TileBB(x, y, w, h int) cp.BB {
	left := float64(x) * common.TileSize
	top := float64(l.Height-y) * common.TileSize
	return cp.BB{
		L: left,
		B: top - float64(h)*common.TileSize,
		R: left + float64(w)*common.TileSize,
		T: top,
	}
}

// SpawnPoint returns the bottom-centre of the spawn tile in world units.
func (l *Level) SpawnPoint() cp.Vector {
	if l == nil {
		return cp.Vector{}
	}
	bb := l.TileBB(l.SpawnX, l.SpawnY, 1, 1)
	return cp.Vector{X: (bb.L + bb.R) / 2, Y: bb.B}
}

func cleanLevelName(name string) string {
	s := strings.TrimPrefix(filepath.ToSlash(name), "levels/")
	if !strings.HasSuffix(s, ".json") {
		s += ".json"
	}
	return s
}
