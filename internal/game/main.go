// Package game is the desktop shell: a GLFW window, an OpenGL point-sprite
// renderer, procedural audio and the frame loop that drives a match.
package game

import (
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"baseball/internal/config"
	"baseball/internal/geom"
	"baseball/internal/match"
	"baseball/internal/scene"
)

// view is a projection plus the static layers drawn with it.
type view struct {
	kind   config.View
	proj   geom.Projector
	ground scene.Buffer
	marks  scene.Buffer
}

func newView(kind config.View, f geom.Field, t match.Tuning) view {
	var pr geom.Projector = scene.NewFlat()
	if kind == config.ViewBehind {
		pr = geom.NewBehind(f)
	}
	return view{
		kind:   kind,
		proj:   pr,
		ground: scene.Ground(f, t, pr),
		marks:  scene.Marks(f, t, pr),
	}
}

func (v view) toggled(f geom.Field, t match.Tuning) view {
	if v.kind == config.ViewBehind {
		return newView(config.ViewFlat, f, t)
	}
	return newView(config.ViewBehind, f, t)
}

// RunDesktop opens the window and plays until it is closed.
func RunDesktop(cfg config.Config, tun match.Tuning) error {
	runtime.LockOSThread()

	window, err := initWindow(cfg.Width, cfg.Height)
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	seed := cfg.EffectiveSeed()
	m := match.New(tun, match.NewRand(seed))
	if cfg.Verbose {
		m.MirrorTo(log.Default())
		log.Printf("seed=%d mode=%s view=%s", seed, cfg.Mode, cfg.View)
	}

	if !cfg.Mute {
		if err := InitAudio(); err != nil {
			fmt.Fprintf(os.Stderr, "audio init failed (continuing without sound): %v\n", err)
		} else {
			BindAudio(m.Bus())
		}
	}

	// GL state.
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	rend, err := NewRenderer()
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Destroy()
	if err := rend.InitFont(); err != nil {
		return fmt.Errorf("font: %w", err)
	}

	v := newView(cfg.View, m.Field(), tun)
	var cam scene.Camera
	m.Bus().Subscribe(match.EventHomeRun, func(match.Event) { cam.AddShake(8, 0.6) })
	fx := scene.NewParticleSystem(scene.MaxParticles, seed)
	fx.Bind(m.Bus(), func() float64 { return m.LastContact().Quality })
	var fxGlow, fxNorm scene.Buffer
	input := NewInput()

	last := glfw.GetTime()
	for !window.ShouldClose() {
		now := glfw.GetTime()
		dt := now - last
		last = now
		if dt > 0.1 {
			dt = 0.1
		}

		glfw.PollEvents()
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
			continue
		}

		fbW, fbH := window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			continue
		}

		for _, c := range input.Commands(window) {
			switch c {
			case CmdStartGame:
				if !m.NextHalf() {
					m.Start(cfg.Mode)
				}
			case CmdStartDerby:
				m.Start(match.ModeDerby)
			case CmdPitch:
				m.Pitch()
			case CmdSwing:
				m.Swing()
			case CmdReset:
				m.Reset()
				fx.Clear()
			case CmdToggleView:
				v = v.toggled(m.Field(), tun)
			}
		}
		m.Steer(SteerVector(window))
		m.Step(dt)
		fx.Update(dt)

		snap := m.Snapshot()
		lo, hi := scene.Bounds(snap.Field, v.proj)
		cam.Fit(lo, hi, fbW, fbH, 12)
		cam.UpdateShake(dt, seed^uint64(now*1000))
		rc := cam.Shaken()

		rend.BeginFrame(scene.Palette.Sky, fbW, fbH)
		rend.DrawBoxes(v.ground, rc, fbW, fbH)
		rend.DrawBoxes(v.marks, rc, fbW, fbH)
		actors := scene.Build(snap, tun, v.proj, m.ContactQuality())
		rend.DrawDiscs(actors.Discs, rc, fbW, fbH)
		fxGlow, fxNorm = fx.RenderData(v.proj, fxGlow, fxNorm)
		rend.DrawBoxes(fxNorm, rc, fbW, fbH)
		rend.DrawGlow(actors.Glow, rc, fbW, fbH)
		rend.DrawGlow(fxGlow, rc, fbW, fbH)

		// HUD uses screen space (no shake).
		RenderHUD(rend, scene.HUD(snap, m.Log().Lines(scene.LogLines), fbW, fbH), fbW, fbH)

		window.SwapBuffers()
	}
	return nil
}
