// Package ui wraps the Dear ImGui SDL backend and provides the
// viewer's panels.
package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Backend wraps the ImGui SDL backend. It owns the application window,
// the GL context, and the event pump.
type Backend struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
}

// NewBackend creates the window and initializes OpenGL.
func NewBackend(title string, width, height int) (*Backend, error) {
	b := &Backend{}

	var err error
	b.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	b.backend.SetBgColor(imgui.NewVec4(0.1, 0.1, 0.12, 1.0))
	b.backend.CreateWindow(title, width, height)

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init opengl: %w", err)
	}

	return b, nil
}

// Run drives the main loop, calling renderFunc each frame between
// ImGui frame begin and end.
func (b *Backend) Run(renderFunc func()) {
	b.backend.Run(renderFunc)
}

// SetWindowTitle updates the window title.
func (b *Backend) SetWindowTitle(title string) {
	b.backend.SetWindowTitle(title)
}

// WorkArea returns the main viewport work area.
func (b *Backend) WorkArea() (posX, posY, width, height float32) {
	viewport := imgui.MainViewport()
	workPos := viewport.WorkPos()
	workSize := viewport.WorkSize()
	return workPos.X, workPos.Y, workSize.X, workSize.Y
}

// IsKeyPressed reports whether a key was pressed this frame.
func IsKeyPressed(key imgui.Key) bool {
	return imgui.IsKeyChordPressed(imgui.KeyChord(key))
}

// IsKeyDown reports whether a key is currently held.
func IsKeyDown(key imgui.Key) bool {
	return imgui.IsKeyDown(key)
}

// CenterText renders text centered in the available width.
func CenterText(text string) {
	textSize := imgui.CalcTextSize(text)
	avail := imgui.ContentRegionAvail().X
	offset := (avail - textSize.X) / 2
	if offset > 0 {
		imgui.SetCursorPosX(imgui.CursorPosX() + offset)
	}
	imgui.Text(text)
}
