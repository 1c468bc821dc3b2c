package game

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl64"
)

type Input struct {
	prevKeys map[glfw.Key]bool
}

func NewInput() *Input {
	return &Input{
		prevKeys: make(map[glfw.Key]bool),
	}
}

func (in *Input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

// Command is one edge-triggered player action.
type Command int

const (
	CmdNone Command = iota
	CmdStartGame
	CmdStartDerby
	CmdPitch
	CmdSwing
	CmdReset
	CmdToggleView
)

var keyCommands = []struct {
	key glfw.Key
	cmd Command
}{
	{glfw.KeyEnter, CmdStartGame},
	{glfw.KeyH, CmdStartDerby},
	{glfw.KeyP, CmdPitch},
	{glfw.KeySpace, CmdSwing},
	{glfw.KeyR, CmdReset},
	{glfw.KeyV, CmdToggleView},
}

// Commands returns every action whose key went down this frame.
func (in *Input) Commands(window *glfw.Window) []Command {
	var out []Command
	for _, kc := range keyCommands {
		if in.JustPressed(window, kc.key) {
			out = append(out, kc.cmd)
		}
	}
	return out
}

// SteerVector reads arrows/WASD as a batter-cursor direction in field
// space (y grows toward the plate).
func SteerVector(window *glfw.Window) mgl64.Vec2 {
	held := func(keys ...glfw.Key) bool {
		for _, k := range keys {
			if window.GetKey(k) == glfw.Press {
				return true
			}
		}
		return false
	}
	var v mgl64.Vec2
	if held(glfw.KeyLeft, glfw.KeyA) {
		v[0]--
	}
	if held(glfw.KeyRight, glfw.KeyD) {
		v[0]++
	}
	if held(glfw.KeyUp, glfw.KeyW) {
		v[1]--
	}
	if held(glfw.KeyDown, glfw.KeyS) {
		v[1]++
	}
	return v
}
