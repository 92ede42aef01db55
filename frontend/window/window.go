// Package window implements a front end that renders the LCD panel into an
// OpenGL window. All methods must be called from the main thread.
package window

import (
	"fmt"
	"image"
	"time"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"

	"github.com/OfficialPixelBrush/Pix80Emu/devices/terminal"
	"github.com/OfficialPixelBrush/Pix80Emu/frontend"
)

// Panel is a display that can render itself as an image.
type Panel interface {
	frontend.Screen
	Image() *image.RGBA
}

// FrequencyFunc yields the effective clock frequency shown in the title.
type FrequencyFunc func() float64

// Window is a glfw window showing a Panel.
type Window struct {
	// QuitOnQ makes the Q key close the window instead of being delivered.
	// Used while only a message is shown.
	QuitOnQ bool

	sink         frontend.Sink
	panel        Panel
	scale        int
	frequency    FrequencyFunc // Optional.
	window       *glfw.Window
	keyboard     frontend.Keyboard
	title        string
	titleUpdated time.Time
	shader       uint32
	vao          uint32
	vbo          uint32
	texture      uint32
}

// New creates a window showing panel, scaled by the given factor.
// frequency may be nil.
func New(sink frontend.Sink, panel Panel, scale int, frequency FrequencyFunc) *Window {
	if scale < 1 {
		scale = 1
	}

	return &Window{
		sink:      sink,
		panel:     panel,
		scale:     scale,
		frequency: frequency,
	}
}

// Start opens the window and prepares the GL resources.
func (w *Window) Start() error {
	if err := w.initGL(); err != nil {
		return err
	}

	if err := w.initPanel(); err != nil {
		w.Stop()
		return err
	}

	return nil
}

// Stop releases GL resources and closes the window.
func (w *Window) Stop() {
	if w.window == nil {
		return
	}

	gl.DeleteTextures(1, &w.texture)
	gl.DeleteBuffers(1, &w.vbo)
	gl.DeleteVertexArrays(1, &w.vao)
	gl.DeleteProgram(w.shader)

	w.window.Destroy()
	w.window = nil
	glfw.Terminate()
}

// SetTitle sets the window title. The clock frequency is appended.
func (w *Window) SetTitle(title string) {
	w.title = title
	w.titleUpdated = time.Time{}
}

// Poll handles pending window events. It returns false once the window
// was asked to close.
func (w *Window) Poll() bool {
	glfw.PollEvents()
	return !w.window.ShouldClose()
}

// Refresh uploads the current panel image and redraws the window.
func (w *Window) Refresh() {
	img := w.panel.Image()
	size := img.Bounds().Size()
	uploadTexture(w.texture, int32(size.X), int32(size.Y), img.Pix)

	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.UseProgram(w.shader)
	gl.BindVertexArray(w.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	w.window.SwapBuffers()

	// Periodically update the window title to show the current clock frequency.
	if time.Since(w.titleUpdated) >= time.Second*2 {
		w.titleUpdated = time.Now()

		title := w.title
		if w.frequency != nil {
			title = fmt.Sprintf("%s - %s", title, prettyFrequency(w.frequency()))
		}
		w.window.SetTitle(title)
	}
}

// initGL initializes GLFW and openGL.
func (w *Window) initGL() error {
	err := glfw.Init()
	if err != nil {
		return errors.Wrapf(err, "glfw.Init failed")
	}

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.Visible, glfw.True)
	glfw.WindowHint(glfw.Focused, glfw.True)
	glfw.WindowHint(glfw.Decorated, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 6)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	width, height := w.size()

	w.window, err = glfw.CreateWindow(width, height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return errors.Wrapf(err, "glfw.CreateWindow failed")
	}

	w.window.MakeContextCurrent()
	w.window.SetKeyCallback(w.keyCallback)
	w.window.SetCharCallback(w.charCallback)

	glfw.SwapInterval(0)

	err = gl.Init()
	if err != nil {
		w.window.Destroy()
		w.window = nil
		glfw.Terminate()
		return errors.Wrapf(err, "gl.Init failed")
	}

	gl.ClearColor(0, 0, 0, 1.0)
	return nil
}

// initPanel builds the textured quad the panel image is drawn onto.
func (w *Window) initPanel() error {
	var err error

	w.shader, err = compileProgram(vertex, fragment)
	if err != nil {
		return errors.Wrapf(err, "failed to compile shaders")
	}

	gl.UseProgram(w.shader)

	gl.GenVertexArrays(1, &w.vao)
	gl.BindVertexArray(w.vao)

	gl.GenBuffers(1, &w.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, w.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)

	vertAttrib := uint32(gl.GetAttribLocation(w.shader, glStr("vertPos")))
	texCoordAttrib := uint32(gl.GetAttribLocation(w.shader, glStr("vertTexCoord")))

	gl.EnableVertexAttribArray(vertAttrib)
	gl.VertexAttribPointer(vertAttrib, 3, gl.FLOAT, false, 5*4, gl.PtrOffset(0))

	gl.EnableVertexAttribArray(texCoordAttrib)
	gl.VertexAttribPointer(texCoordAttrib, 2, gl.FLOAT, false, 5*4, gl.PtrOffset(3*4))

	w.texture = makeTexture()
	return nil
}

// size returns the window size in screen coordinates.
func (w *Window) size() (int, int) {
	size := w.panel.Image().Bounds().Size()
	return size.X * w.scale, size.Y * w.scale
}

func (w *Window) keyCallback(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action == glfw.Release {
		return
	}

	if key == glfw.KeyCapsLock {
		if action == glfw.Press {
			w.keyboard.CapsLock()
		}
		return
	}

	if r := letter(key, mods); r != 0 {
		if w.QuitOnQ && key == glfw.KeyQ {
			w.window.SetShouldClose(true)
			return
		}
		w.sink.Key(w.keyboard.Char(r))
		return
	}

	value := keyCode(key)
	if value == 0 {
		return
	}

	if key == glfw.KeyEscape {
		if action != glfw.Press {
			return
		}
		w.window.SetShouldClose(true)
	}

	w.sink.Key(value)
}

// charCallback delivers printable characters other than letters. Letters
// come from the key callback so the emulated caps lock applies to them
// and the host's does not.
func (w *Window) charCallback(_ *glfw.Window, char rune) {
	if (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z') {
		return
	}

	if v := w.keyboard.Char(char); v != 0 {
		w.sink.Key(v)
	}
}

// letter returns the character typed by a letter key, honoring shift.
// Returns 0 for any other key.
func letter(key glfw.Key, mods glfw.ModifierKey) rune {
	if key < glfw.KeyA || key > glfw.KeyZ {
		return 0
	}

	r := 'a' + rune(key-glfw.KeyA)
	if mods&glfw.ModShift != 0 {
		r -= 'a' - 'A'
	}
	return r
}

// keyCode returns the terminal code for keys that produce no character
// input. Returns 0 for any other key.
func keyCode(key glfw.Key) byte {
	switch key {
	case glfw.KeyEscape:
		return terminal.KeyEscape
	case glfw.KeyEnter, glfw.KeyKPEnter:
		return terminal.KeyReturn
	case glfw.KeyBackspace:
		return terminal.KeyBackspace
	}
	return 0
}

// prettyFrequency returns a human-readable version of the given clock frequency in herz.
func prettyFrequency(v float64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("%.2f GHz", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.2f MHz", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.2f KHz", v/1e3)
	default:
		return fmt.Sprintf("%.2f Hz", v)
	}
}
