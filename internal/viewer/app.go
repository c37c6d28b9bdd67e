// Package viewer wires the window, renderer, loader, and UI into the
// interactive model viewer application.
package viewer

import (
	"fmt"
	"os"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/objview/internal/assets"
	"github.com/Faultbox/objview/internal/config"
	"github.com/Faultbox/objview/internal/engine/camera"
	"github.com/Faultbox/objview/internal/engine/framebuffer"
	"github.com/Faultbox/objview/internal/engine/renderer"
	"github.com/Faultbox/objview/internal/engine/scene"
	"github.com/Faultbox/objview/internal/logger"
	"github.com/Faultbox/objview/internal/ui"
)

const (
	windowTitle       = "ObjView"
	controlPanelWidth = 340
	statusBarHeight   = 30
)

// App is the viewer application. All fields are owned by the main
// thread; the only cross-goroutine write is pendingPath from the file
// dialog, applied at the start of the next frame.
type App struct {
	backend *ui.Backend
	cfg     *config.Config
	aliases *assets.Table

	rend *renderer.Renderer
	fb   *framebuffer.Framebuffer
	cam  *camera.OrbitCamera

	object  *scene.Object
	report  *scene.Report
	loadErr string

	pathText    string
	pendingPath string

	// Object transform driven by the UI and keyboard.
	rotation    [3]float32 // degrees
	translation [3]float32
	scale       float32

	channels renderer.Channels

	statusMsg  string
	statusTime time.Time

	screenshotRequested bool
}

// New creates the window, GL resources, and initial state.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		cfg:      cfg,
		aliases:  assets.NewTable(cfg.Assets.Aliases),
		scale:    1,
		channels: renderer.AllChannels(),
	}

	var err error
	a.backend, err = ui.NewBackend(windowTitle, cfg.Graphics.Width, cfg.Graphics.Height)
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	a.rend, err = renderer.New()
	if err != nil {
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	a.fb, err = framebuffer.New(int32(cfg.Graphics.Width), int32(cfg.Graphics.Height))
	if err != nil {
		a.rend.Close()
		return nil, fmt.Errorf("creating scene framebuffer: %w", err)
	}

	a.cam = camera.NewOrbitCamera()
	a.cam.DragSensitivity = cfg.Controls.DragSensitivity
	a.cam.ZoomSensitivity = cfg.Controls.ZoomSensitivity

	return a, nil
}

// Run drives the main loop until the window closes.
func (a *App) Run() {
	a.backend.Run(a.render)
}

// Close releases the loaded object and GL resources.
func (a *App) Close() {
	if a.object != nil {
		a.object.Release()
		a.object = nil
	}
	if a.fb != nil {
		a.fb.Destroy()
		a.fb = nil
	}
	if a.rend != nil {
		a.rend.Close()
		a.rend = nil
	}
}

// LoadModel loads a model, replacing the current object only when the
// load succeeds. A failed load keeps the previous object on screen and
// surfaces the error in the control panel.
func (a *App) LoadModel(path string) {
	obj, report, err := scene.Load(path, a.rend, a.aliases)
	a.report = report
	if err != nil {
		a.loadErr = err.Error()
		logger.Error("load failed", zap.String("path", path), zap.Error(err))
		return
	}
	a.loadErr = ""

	old := a.object
	a.object = obj
	old.Release()

	a.pathText = path
	a.resetTransform()
	a.fitCamera()
	a.backend.SetWindowTitle(windowTitle + " - " + obj.Name)
	a.notify(fmt.Sprintf("Loaded %s in %.1fms", obj.Name,
		float64(report.Duration.Microseconds())/1000))
}

func (a *App) resetTransform() {
	a.rotation = [3]float32{}
	a.translation = [3]float32{}
	a.scale = 1
}

func (a *App) fitCamera() {
	if a.object == nil {
		return
	}
	b := a.object.Mesh.Bounds
	a.cam.FitToBounds(mgl32.Vec3(b.Min), mgl32.Vec3(b.Max))
}

func (a *App) notify(msg string) {
	a.statusMsg = msg
	a.statusTime = time.Now()
}

// render draws one frame: scene into the framebuffer, then the UI.
func (a *App) render() {
	// Dialog results must be applied on the main thread.
	if a.pendingPath != "" {
		path := a.pendingPath
		a.pendingPath = ""
		a.pathText = path
		a.LoadModel(path)
	}

	a.handleKeyboard()

	if a.screenshotRequested {
		a.screenshotRequested = false
		a.captureScreenshot()
	}

	sceneTex := a.renderScene()

	workX, workY, workW, workH := a.backend.WorkArea()
	contentH := workH - statusBarHeight
	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse

	imgui.SetNextWindowPos(imgui.NewVec2(workX, workY))
	imgui.SetNextWindowSize(imgui.NewVec2(controlPanelWidth, contentH))
	if imgui.BeginV("Model", nil, flags) {
		ui.RenderControlPanel(&ui.ControlState{
			PathText:         &a.pathText,
			OnBrowse:         a.openFileDialog,
			OnLoad:           func() { a.LoadModel(a.pathText) },
			OnReload:         a.reload,
			Loaded:           a.object != nil,
			LoadError:        a.loadErr,
			Report:           a.report,
			Object:           a.object,
			Channels:         &a.channels,
			Rotation:         &a.rotation,
			Translation:      &a.translation,
			Scale:            &a.scale,
			OnResetTransform: a.resetTransform,
			OnResetCamera:    a.fitCamera,
		})
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(workX+controlPanelWidth, workY))
	imgui.SetNextWindowSize(imgui.NewVec2(workW-controlPanelWidth, contentH))
	sceneFlags := flags | imgui.WindowFlagsNoScrollbar | imgui.WindowFlagsNoScrollWithMouse
	if imgui.BeginV("Scene", nil, sceneFlags) {
		ui.RenderSceneView(&ui.SceneViewState{
			TextureID:     sceneTex,
			Empty:         a.object == nil,
			OnDrag:        a.handleDrag,
			OnOrbit:       a.cam.HandleDrag,
			OnWheel:       a.cam.HandleZoom,
			OnViewResized: a.fb.Resize,
		})
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(workX, workY+contentH))
	imgui.SetNextWindowSize(imgui.NewVec2(workW, statusBarHeight))
	statusFlags := flags | imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoScrollbar
	if imgui.BeginV("##StatusBar", nil, statusFlags) {
		a.renderStatus()
	}
	imgui.End()
}

func (a *App) renderStatus() {
	s := &ui.StatusState{}
	if a.object != nil {
		s.ObjectName = a.object.Name
		s.Path = a.object.Path
		s.Triangles = a.object.Mesh.TriangleCount()
		s.Materials = len(a.object.Materials)
	}
	if a.report != nil {
		s.Warnings = len(a.report.Warnings)
	}
	// Transient notifications fade after a few seconds.
	if a.statusMsg != "" && time.Since(a.statusTime) < 3*time.Second {
		s.Message = a.statusMsg
	}
	ui.RenderStatusBar(s)
}

// handleDrag rotates the object with the mouse. Horizontal drag spins
// around Y, vertical drag tilts around X.
func (a *App) handleDrag(dx, dy float32) {
	degPerPixel := a.cfg.Controls.DragSensitivity * 180 / 3.14159265
	a.rotation[1] += dx * degPerPixel
	a.rotation[0] += dy * degPerPixel
	for i := 0; i < 2; i++ {
		for a.rotation[i] > 180 {
			a.rotation[i] -= 360
		}
		for a.rotation[i] < -180 {
			a.rotation[i] += 360
		}
	}
}

// handleKeyboard applies the translation and scale key bindings. Keys
// are ignored while a text field has focus.
func (a *App) handleKeyboard() {
	if a.object == nil || imgui.IsAnyItemActive() {
		return
	}

	step := a.cfg.Controls.MoveStep
	if ui.IsKeyDown(imgui.KeyLeftArrow) {
		a.translation[0] -= step
	}
	if ui.IsKeyDown(imgui.KeyRightArrow) {
		a.translation[0] += step
	}
	if ui.IsKeyDown(imgui.KeyUpArrow) {
		a.translation[1] += step
	}
	if ui.IsKeyDown(imgui.KeyDownArrow) {
		a.translation[1] -= step
	}
	if ui.IsKeyDown(imgui.KeyPageUp) {
		a.translation[2] -= step
	}
	if ui.IsKeyDown(imgui.KeyPageDown) {
		a.translation[2] += step
	}

	if ui.IsKeyPressed(imgui.KeyEqual) || ui.IsKeyPressed(imgui.KeyKeypadAdd) {
		a.scale *= 1 + a.cfg.Controls.ScaleStep
	}
	if ui.IsKeyPressed(imgui.KeyMinus) || ui.IsKeyPressed(imgui.KeyKeypadSubtract) {
		a.scale *= 1 - a.cfg.Controls.ScaleStep
		if a.scale < 0.001 {
			a.scale = 0.001
		}
	}

	if ui.IsKeyPressed(imgui.KeyR) {
		a.resetTransform()
		a.fitCamera()
	}
	if ui.IsKeyPressed(imgui.KeyF5) {
		a.reload()
	}
	if ui.IsKeyPressed(imgui.KeyF12) {
		// Deferred so the frame finishes rendering first.
		a.screenshotRequested = true
	}
}

func (a *App) reload() {
	if a.object == nil {
		return
	}
	a.LoadModel(a.object.Path)
}

// modelMatrix builds the object transform: scale, then X/Y/Z rotation,
// then translation.
func (a *App) modelMatrix() mgl32.Mat4 {
	m := mgl32.Translate3D(a.translation[0], a.translation[1], a.translation[2])
	m = m.Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(a.rotation[1])))
	m = m.Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(a.rotation[0])))
	m = m.Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(a.rotation[2])))
	return m.Mul4(mgl32.Scale3D(a.scale, a.scale, a.scale))
}

// renderScene draws the object into the offscreen framebuffer and
// returns its color texture.
func (a *App) renderScene() uint32 {
	restore := a.fb.BindWithViewport()
	defer restore()

	a.fb.Clear(0.12, 0.12, 0.16, 1.0)

	if a.object != nil {
		w, h := a.fb.Size()
		aspect := float32(w) / float32(h)

		view := a.cam.ViewMatrix()
		proj := a.cam.ProjectionMatrix(aspect)
		lightDir := mgl32.Vec3{-0.4, -0.8, -0.4}.Normalize()

		a.rend.Draw(a.object, a.modelMatrix(), view, proj, a.cam.Position(), lightDir, a.channels)
	}

	return a.fb.ColorTexture()
}

// openFileDialog runs the native file picker off the main thread and
// queues the result for the next frame.
func (a *App) openFileDialog() {
	go func() {
		filename, err := dialog.File().
			Filter("Wavefront OBJ", "obj").
			Filter("All Files", "*").
			Title("Open Model").
			Load()
		if err != nil {
			if err != dialog.ErrCancelled {
				fmt.Fprintf(os.Stderr, "file dialog error: %v\n", err)
			}
			return
		}
		a.pendingPath = filename
	}()
}
