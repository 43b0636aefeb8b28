// Package script drives a motion.Driver from a tengo script instead of a
// keyboard, for replays and the headless simulator.
//
// A script defines
//
//	input := func(frame, state, mem) { return {move_x: 1.0, jump: false} }
//
// frame is the zero-based frame index, state describes the player after the
// previous frame and mem is a map that survives between frames.
package script

import (
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/raycontroller/common"
	"github.com/milk9111/raycontroller/motion"
	"github.com/milk9111/raycontroller/prefabs"
)

const dispatchScript = `
__result = input(__frame, __state, __mem)
`

// State is the player information exposed to scripts. *motion.Driver
// implements it.
type State interface {
	Grounded() bool
	JumpCount() int
}

// Input is a motion.InputProvider backed by a compiled script. It is not
// safe for concurrent use.
type Input struct {
	name     string
	compiled *tengo.Compiled
	mem      *tengo.Map
	state    State
	frame    int
	err      error
}

// Load compiles a script resolved through prefabs.LoadScript.
func Load(name string) (*Input, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, err
	}
	return New(name, src)
}

// New compiles src. name is only used in errors.
func New(name string, src []byte) (*Input, error) {
	script := tengo.NewScript([]byte(string(src) + "\n" + dispatchScript))
	_ = script.Add("__frame", 0)
	_ = script.Add("__state", map[string]any{})
	_ = script.Add("__mem", map[string]any{})
	_ = script.Add("__result", map[string]any{})

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}

	return &Input{
		name:     name,
		compiled: compiled,
		mem:      &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

// Bind sets where the state passed to the script comes from.
func (in *Input) Bind(state State) {
	if in != nil {
		in.state = state
	}
}

func (in *Input) Name() string { return in.name }

// Frame returns the index the next call to Input will pass to the script.
func (in *Input) Frame() int { return in.frame }

// Err returns the runtime error that stopped the script, if any. A failed
// script keeps returning zero input.
func (in *Input) Err() error { return in.err }

// Input runs the script for one frame.
func (in *Input) Input() motion.Input {
	if in == nil || in.compiled == nil || in.err != nil {
		return motion.Input{}
	}

	frame := in.frame
	in.frame++

	state := map[string]any{"grounded": false, "jump_count": 0}
	if in.state != nil {
		state["grounded"] = in.state.Grounded()
		state["jump_count"] = in.state.JumpCount()
	}

	if err := in.run(frame, state); err != nil {
		in.err = fmt.Errorf("script: %s frame %d: %w", in.name, frame, err)
		log.Printf("%v", in.err)
		return motion.Input{}
	}

	result := in.compiled.Get("__result").Map()
	return motion.Input{
		MoveX:       common.Clamp(number(result["move_x"]), -1, 1),
		MoveY:       common.Clamp(number(result["move_y"]), -1, 1),
		JumpPressed: truthy(result["jump"]),
	}
}

// run executes one frame. tengo panics on some runtime faults, such as
// integer division by zero, so those are turned into errors here.
func (in *Input) run(frame int, state map[string]any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	if err := in.compiled.Set("__frame", frame); err != nil {
		return err
	}
	if err := in.compiled.Set("__state", state); err != nil {
		return err
	}
	if err := in.compiled.Set("__mem", in.mem); err != nil {
		return err
	}
	return in.compiled.Run()
}

func number(v any) float64 {
	switch n := v.(type) {
	case int64:
		return float64(n)
	case int:
		return float64(n)
	case float64:
		return n
	case bool:
		if n {
			return 1
		}
	}
	return 0
}

func truthy(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case int64:
		return b != 0
	}
	return false
}
