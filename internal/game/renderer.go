package game

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"baseball/internal/scene"
)

// MaxSprites caps one sprite upload.
const MaxSprites = 8192

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

// spriteProgram is one fragment shader over the shared point-sprite VAO.
type spriteProgram struct {
	id          uint32
	uCamera     int32
	uZoom       int32
	uResolution int32
}

type Renderer struct {
	spriteVAO uint32
	spriteVBO uint32

	box  spriteProgram
	disc spriteProgram
	glow spriteProgram

	// Font/text rendering.
	fontTex      uint32
	textProg     uint32
	textVAO      uint32
	textVBO      uint32
	textURes     int32
	textUFontTex int32
	textBuf      []float32
}

func newSpriteProgram(frag string) (spriteProgram, error) {
	id, err := linkProgram(spriteVertSrc, frag)
	if err != nil {
		return spriteProgram{}, err
	}
	gl.UseProgram(id)
	return spriteProgram{
		id:          id,
		uCamera:     gl.GetUniformLocation(id, gl.Str("uCamera\x00")),
		uZoom:       gl.GetUniformLocation(id, gl.Str("uZoom\x00")),
		uResolution: gl.GetUniformLocation(id, gl.Str("uResolution\x00")),
	}, nil
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{}
	var err error
	if r.box, err = newSpriteProgram(boxFragSrc); err != nil {
		return nil, fmt.Errorf("box program: %w", err)
	}
	if r.disc, err = newSpriteProgram(discFragSrc); err != nil {
		r.Destroy()
		return nil, fmt.Errorf("disc program: %w", err)
	}
	if r.glow, err = newSpriteProgram(glowFragSrc); err != nil {
		r.Destroy()
		return nil, fmt.Errorf("glow program: %w", err)
	}

	// Sprite VAO/VBO: streaming buffer for point sprites.
	// Each sprite: 8 floats (x, y, size, r, g, b, a, rotation).
	var sVAO, sVBO uint32
	gl.GenVertexArrays(1, &sVAO)
	gl.GenBuffers(1, &sVBO)
	gl.BindVertexArray(sVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, sVBO)

	stride := int32(scene.Stride * 4)
	gl.BufferData(gl.ARRAY_BUFFER, MaxSprites*int(stride), nil, gl.STREAM_DRAW)
	// aWorldPos (vec2)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, glOffset(0))
	// aSize (float)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 1, gl.FLOAT, false, stride, glOffset(2*4))
	// aColor (vec4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, stride, glOffset(3*4))
	// aRotation (float)
	gl.EnableVertexAttribArray(3)
	gl.VertexAttribPointer(3, 1, gl.FLOAT, false, stride, glOffset(7*4))
	r.spriteVAO = sVAO
	r.spriteVBO = sVBO

	gl.BindVertexArray(0)
	return r, nil
}

func (r *Renderer) Destroy() {
	for _, id := range []uint32{r.spriteVBO, r.textVBO} {
		if id != 0 {
			gl.DeleteBuffers(1, &id)
		}
	}
	for _, id := range []uint32{r.spriteVAO, r.textVAO} {
		if id != 0 {
			gl.DeleteVertexArrays(1, &id)
		}
	}
	for _, id := range []uint32{r.box.id, r.disc.id, r.glow.id, r.textProg} {
		if id != 0 {
			gl.DeleteProgram(id)
		}
	}
	if r.fontTex != 0 {
		gl.DeleteTextures(1, &r.fontTex)
	}
}

func (r *Renderer) BeginFrame(bg scene.Color, fbW, fbH int) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.ClearColor(bg.R, bg.G, bg.B, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (r *Renderer) draw(p spriteProgram, buf scene.Buffer, cam scene.Camera, fbW, fbH int, additive bool) {
	if len(buf) == 0 {
		return
	}
	count := buf.Len()
	if count > MaxSprites {
		count = MaxSprites
	}

	gl.UseProgram(p.id)
	gl.BindVertexArray(r.spriteVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.spriteVBO)

	gl.Uniform2f(p.uCamera, float32(cam.X), float32(cam.Y))
	gl.Uniform1f(p.uZoom, float32(cam.Zoom))
	gl.Uniform2f(p.uResolution, float32(fbW), float32(fbH))

	gl.Enable(gl.BLEND)
	if additive {
		gl.BlendFunc(gl.ONE, gl.ONE)
	} else {
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	}

	gl.BufferData(gl.ARRAY_BUFFER, count*scene.Stride*4, gl.Ptr([]float32(buf)), gl.STREAM_DRAW)
	gl.DrawArrays(gl.POINTS, 0, int32(count))

	gl.Disable(gl.BLEND)
}

// DrawBoxes renders square sprites, honouring each sprite's rotation.
func (r *Renderer) DrawBoxes(buf scene.Buffer, cam scene.Camera, fbW, fbH int) {
	r.draw(r.box, buf, cam, fbW, fbH, false)
}

// DrawDiscs renders round sprites in buffer order.
func (r *Renderer) DrawDiscs(buf scene.Buffer, cam scene.Camera, fbW, fbH int) {
	r.draw(r.disc, buf, cam, fbW, fbH, false)
}

// DrawGlow renders light sprites with additive blending and radial falloff.
// RGB values should be pre-multiplied by desired brightness.
func (r *Renderer) DrawGlow(buf scene.Buffer, cam scene.Camera, fbW, fbH int) {
	r.draw(r.glow, buf, cam, fbW, fbH, true)
}
