package prefabs

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func TestLoadPlayerSpec(t *testing.T) {
	spec, err := LoadPlayerSpec()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := PlayerSpec{
		Name:                     "player",
		MoveSpeed:                6,
		JumpHeight:               3,
		TimeToJumpApex:           0.4,
		AccelerationTimeAirborne: 0.2,
		AccelerationTimeGrounded: 0.1,
		MaxJumps:                 2,
		Collider:                 ColliderSpec{Width: 0.8, Height: 1.4},
		Rays:                     RaySpec{Horizontal: 4, Vertical: 4},
		CollisionMask:            []string{"solid"},
	}
	got := *spec
	got.Color = nil
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("player spec mismatch (-want +got):\n%s", diff)
	}
	if spec.Color == nil || spec.Color.Color != (color.NRGBA{R: 0xdc, G: 0x14, B: 0x3c, A: 0xff}) {
		t.Fatalf("unexpected color %v", spec.Color)
	}
}

func TestLoadCameraSpec(t *testing.T) {
	spec, err := LoadCameraSpec()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if spec.Zoom != 1.25 || spec.Smoothness != 0.15 {
		t.Fatalf("unexpected camera spec %+v", spec)
	}
}

func TestPlayerSpecValidate(t *testing.T) {
	valid := func() PlayerSpec {
		return PlayerSpec{
			MoveSpeed:      6,
			JumpHeight:     3,
			TimeToJumpApex: 0.4,
			MaxJumps:       2,
			Collider:       ColliderSpec{Width: 1, Height: 1},
		}
	}

	tests := []struct {
		name   string
		mutate func(*PlayerSpec)
	}{
		{"negative_speed", func(s *PlayerSpec) { s.MoveSpeed = -1 }},
		{"zero_jump_height", func(s *PlayerSpec) { s.JumpHeight = 0 }},
		{"zero_apex", func(s *PlayerSpec) { s.TimeToJumpApex = 0 }},
		{"negative_smoothing", func(s *PlayerSpec) { s.AccelerationTimeGrounded = -0.1 }},
		{"no_jumps", func(s *PlayerSpec) { s.MaxJumps = 0 }},
		{"flat_collider", func(s *PlayerSpec) { s.Collider.Height = 0 }},
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("valid spec rejected: %v", err)
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := valid()
			tc.mutate(&s)
			if err := s.Validate(); !errors.Is(err, ErrInvalidSpec) {
				t.Fatalf("expected ErrInvalidSpec, got %v", err)
			}
		})
	}
}

func TestYAMLColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.Color
		wantErr bool
	}{
		{in: `"#ff0080"`, want: color.NRGBA{R: 0xff, G: 0x00, B: 0x80, A: 0xff}},
		{in: `"10203040"`, want: color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}},
		{in: `"#fff"`, wantErr: true},
		{in: `"#gggggg"`, wantErr: true},
		{in: `[1, 2]`, wantErr: true},
	}

	for _, tc := range tests {
		var c YAMLColor
		err := yaml.Unmarshal([]byte(tc.in), &c)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("%s: expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: %v", tc.in, err)
		}
		if c.Color != tc.want {
			t.Fatalf("%s: got %v, want %v", tc.in, c.Color, tc.want)
		}

		out, err := yaml.Marshal(c)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var back YAMLColor
		if err := yaml.Unmarshal(out, &back); err != nil || back.Color != tc.want {
			t.Fatalf("%s: marshal produced %q", tc.in, out)
		}
	}
}

func TestCleanScriptPath(t *testing.T) {
	for in, want := range map[string]string{
		"hop_right":                 "scripts/hop_right.tengo",
		"scripts/hop_right.tengo":   "scripts/hop_right.tengo",
		"prefabs/scripts/hop_right": "scripts/hop_right.tengo",
		"prefabs/hop_right.tengo":   "scripts/hop_right.tengo",
		"":                          "",
	} {
		if got := cleanScriptPath(in); got != want {
			t.Fatalf("cleanScriptPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestScriptNames(t *testing.T) {
	want := []string{"double_jump.tengo", "hop_right.tengo", "idle.tengo", "run_right.tengo"}
	if diff := cmp.Diff(want, ScriptNames()); diff != "" {
		t.Fatalf("script names mismatch (-want +got):\n%s", diff)
	}
}

func TestWatcherReportsSpecEdits(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(dir, "player.yaml")
	if err := os.WriteFile(target, []byte("move_speed: 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case name := <-w.Events:
			if filepath.Ext(name) == ".txt" {
				t.Fatalf("non-prefab file reported: %s", name)
			}
			if name == target {
				return
			}
		case <-deadline:
			t.Fatalf("no event for %s", target)
		}
	}
}

func TestWatcherWaitsForEditToSettle(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "player.yaml")
	if err := os.WriteFile(target, []byte("move_speed: 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	defer w.Close()

	// truncate, then write the final content shortly after
	if err := os.WriteFile(target, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(30 * time.Millisecond)
	if got := w.Poll(); len(got) != 0 {
		t.Fatalf("reported before the edit settled: %v", got)
	}
	const final = "move_speed: 7\n"
	if err := os.WriteFile(target, []byte(final), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case name := <-w.Events:
		if name != target {
			t.Fatalf("unexpected path %s", name)
		}
		data, err := os.ReadFile(name)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != final {
			t.Fatalf("event delivered before the final write: %q", data)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no event for %s", target)
	}
}

func TestWatcherIgnoresScripts(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "idle.tengo"), []byte("x := 1"), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(3 * debounce)
	if got := w.Poll(); len(got) != 0 {
		t.Fatalf("script edit reported: %v", got)
	}
}

func TestWatcherMissingDir(t *testing.T) {
	if _, err := NewWatcher(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatalf("expected an error for a missing directory")
	}
}
