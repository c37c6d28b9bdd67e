package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/objview/internal/engine/renderer"
	"github.com/Faultbox/objview/internal/engine/scene"
)

// ControlState carries everything the control panel renders and the
// callbacks it fires. The viewer owns the state; the panel only reads
// and reports.
type ControlState struct {
	PathText *string
	OnBrowse func()
	OnLoad   func()
	OnReload func()

	Loaded    bool
	LoadError string
	Report    *scene.Report

	Object   *scene.Object
	Channels *renderer.Channels

	// Object transform, mutated by the sliders.
	Rotation    *[3]float32
	Translation *[3]float32
	Scale       *float32

	OnResetTransform func()
	OnResetCamera    func()
}

// RenderControlPanel draws the load controls, the last load's outcome,
// object info, transform sliders, and per-material toggles.
func RenderControlPanel(s *ControlState) {
	renderLoadSection(s)

	imgui.Separator()

	if s.LoadError != "" {
		imgui.TextColored(imgui.NewVec4(1, 0.3, 0.3, 1), "Load failed")
		imgui.TextWrapped(s.LoadError)
		imgui.Separator()
	}

	if s.Report != nil && len(s.Report.Warnings) > 0 {
		header := fmt.Sprintf("Warnings (%d)", len(s.Report.Warnings))
		if imgui.TreeNodeExStrV(header, imgui.TreeNodeFlagsNone) {
			for _, w := range s.Report.Warnings {
				imgui.TextColored(imgui.NewVec4(1, 0.8, 0.2, 1), w)
			}
			imgui.TreePop()
		}
		imgui.Separator()
	}

	if s.Object == nil {
		imgui.TextDisabled("No model loaded")
		return
	}

	renderObjectInfo(s)
	imgui.Separator()
	renderTransformSection(s)
	imgui.Separator()
	renderMaterialSection(s)
}

func renderLoadSection(s *ControlState) {
	imgui.Text("Model path:")
	imgui.SetNextItemWidth(-1)
	enterPressed := imgui.InputTextWithHint("##path", "path or alias", s.PathText,
		imgui.InputTextFlagsEnterReturnsTrue, nil)

	if imgui.Button("Browse...") {
		if s.OnBrowse != nil {
			s.OnBrowse()
		}
	}
	imgui.SameLine()
	if imgui.Button("Load") || enterPressed {
		if s.OnLoad != nil {
			s.OnLoad()
		}
	}
	imgui.SameLine()
	imgui.BeginDisabledV(!s.Loaded)
	if imgui.Button("Reload") {
		if s.OnReload != nil {
			s.OnReload()
		}
	}
	imgui.EndDisabled()
}

func renderObjectInfo(s *ControlState) {
	obj := s.Object

	imgui.Text("Object:")
	imgui.TextWrapped(obj.Name)

	if imgui.BeginTable("objinfo", 2) {
		addInfoRow("Vertices:", fmt.Sprintf("%d", len(obj.Vertices)))
		addInfoRow("TexCoords:", fmt.Sprintf("%d", len(obj.TexCoords)))
		addInfoRow("Normals:", fmt.Sprintf("%d", len(obj.Normals)))
		addInfoRow("Faces:", fmt.Sprintf("%d", len(obj.Faces)))
		addInfoRow("Triangles:", fmt.Sprintf("%d", obj.Mesh.TriangleCount()))
		addInfoRow("Materials:", fmt.Sprintf("%d", len(obj.Materials)))
		if s.Report != nil {
			addInfoRow("Load time:", fmt.Sprintf("%.1fms", float64(s.Report.Duration.Microseconds())/1000))
		}
		imgui.EndTable()
	}

	b := obj.Mesh.Bounds
	imgui.Text("Bounds:")
	imgui.Text(fmt.Sprintf("  Min: (%.2f, %.2f, %.2f)", b.Min[0], b.Min[1], b.Min[2]))
	imgui.Text(fmt.Sprintf("  Max: (%.2f, %.2f, %.2f)", b.Max[0], b.Max[1], b.Max[2]))
}

func renderTransformSection(s *ControlState) {
	imgui.Text("Transform:")

	imgui.SetNextItemWidth(-1)
	imgui.SliderFloat3("##rotation", s.Rotation, -180, 180)
	imgui.TextDisabled("Rotation (deg)")

	imgui.SetNextItemWidth(-1)
	imgui.DragFloat3V("##translation", s.Translation, 0.01, -1e6, 1e6, "%.2f", 0)
	imgui.TextDisabled("Translation")

	imgui.SetNextItemWidth(-1)
	imgui.DragFloatV("##scale", s.Scale, 0.01, 0.001, 1000, "%.3f", 0)
	imgui.TextDisabled("Scale")

	if imgui.Button("Reset Transform") {
		if s.OnResetTransform != nil {
			s.OnResetTransform()
		}
	}
	imgui.SameLine()
	if imgui.Button("Reset View") {
		if s.OnResetCamera != nil {
			s.OnResetCamera()
		}
	}
}

func renderMaterialSection(s *ControlState) {
	imgui.Text("Texture channels:")
	imgui.Checkbox("Diffuse", &s.Channels.Diffuse)
	imgui.SameLine()
	imgui.Checkbox("Normal", &s.Channels.Normal)
	imgui.Checkbox("Roughness", &s.Channels.Roughness)
	imgui.SameLine()
	imgui.Checkbox("Metallic", &s.Channels.Metallic)

	imgui.Separator()

	header := fmt.Sprintf("Materials (%d)", len(s.Object.Materials))
	if imgui.TreeNodeExStrV(header, imgui.TreeNodeFlagsDefaultOpen) {
		for i, mat := range s.Object.Materials {
			imgui.PushIDStr(fmt.Sprintf("mat%d", i))
			imgui.Checkbox(mat.Name, &mat.Visible)
			if imgui.IsItemHovered() {
				showMaterialTooltip(mat)
			}
			imgui.PopID()
		}
		imgui.TreePop()
	}
}

func showMaterialTooltip(mat *scene.Material) {
	imgui.BeginTooltip()
	imgui.Text(fmt.Sprintf("Kd: (%.2f, %.2f, %.2f)", mat.Diffuse[0], mat.Diffuse[1], mat.Diffuse[2]))
	imgui.Text(fmt.Sprintf("Ka: (%.2f, %.2f, %.2f)", mat.Ambient[0], mat.Ambient[1], mat.Ambient[2]))
	imgui.Text(fmt.Sprintf("Ks: (%.2f, %.2f, %.2f)", mat.Specular[0], mat.Specular[1], mat.Specular[2]))
	for _, slot := range []struct {
		name string
		tm   *scene.TextureMap
	}{
		{"map_Kd", mat.DiffuseMap},
		{"map_Bump", mat.NormalMap},
		{"map_Pr", mat.RoughnessMap},
		{"map_Pm", mat.MetallicMap},
	} {
		if slot.tm != nil {
			imgui.Text(fmt.Sprintf("%s: %s", slot.name, slot.tm.Path))
		}
	}
	imgui.EndTooltip()
}

// SceneViewState carries the rendered scene texture and the input
// callbacks for the 3D view.
type SceneViewState struct {
	TextureID     uint32
	Empty         bool                 // no model loaded yet
	OnDrag        func(dx, dy float32) // left button, rotates the object
	OnOrbit       func(dx, dy float32) // right button, orbits the camera
	OnWheel       func(delta float32)
	OnViewResized func(w, h int32)
}

var lastMousePos imgui.Vec2

// RenderSceneView displays the scene texture filling the available
// region and routes drag/wheel input to the viewer while hovered.
func RenderSceneView(s *SceneViewState) {
	avail := imgui.ContentRegionAvail()
	if avail.X < 1 || avail.Y < 1 {
		return
	}

	if s.OnViewResized != nil {
		s.OnViewResized(int32(avail.X), int32(avail.Y))
	}

	if s.Empty {
		imgui.SetCursorPosY(imgui.CursorPosY() + avail.Y/2)
		CenterText("Load a model to begin")
		return
	}

	// Flip V, GL textures have origin at bottom-left.
	texRef := imgui.NewTextureRefTextureID(imgui.TextureID(s.TextureID))
	imgui.ImageV(*texRef,
		imgui.NewVec2(avail.X, avail.Y),
		imgui.NewVec2(0, 1),
		imgui.NewVec2(1, 0))

	if imgui.IsItemHovered() {
		mousePos := imgui.MousePos()
		dx, dy := mousePos.X-lastMousePos.X, mousePos.Y-lastMousePos.Y
		if imgui.IsMouseDragging(imgui.MouseButtonLeft) && s.OnDrag != nil {
			s.OnDrag(dx, dy)
		}
		if imgui.IsMouseDragging(imgui.MouseButtonRight) && s.OnOrbit != nil {
			s.OnOrbit(dx, dy)
		}
		lastMousePos = mousePos

		wheel := imgui.CurrentIO().MouseWheel()
		if wheel != 0 && s.OnWheel != nil {
			s.OnWheel(wheel)
		}
	}
}

// StatusState carries the status bar content.
type StatusState struct {
	ObjectName string
	Path       string
	Triangles  int
	Materials  int
	Warnings   int
	Message    string
}

// RenderStatusBar draws the one-line summary at the bottom.
func RenderStatusBar(s *StatusState) {
	if s.ObjectName == "" {
		imgui.Text("No model loaded")
		return
	}
	imgui.Text(fmt.Sprintf("%s | %d triangles | %d materials | %d warnings",
		s.ObjectName, s.Triangles, s.Materials, s.Warnings))
	if s.Message != "" {
		imgui.SameLine()
		imgui.TextColored(imgui.NewVec4(0.4, 0.9, 0.4, 1), s.Message)
	}
}

// addInfoRow adds a label/value row to a two-column table.
func addInfoRow(label, value string) {
	imgui.TableNextRow()
	imgui.TableNextColumn()
	imgui.Text(label)
	imgui.TableNextColumn()
	imgui.Text(value)
}
