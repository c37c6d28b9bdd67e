package viewer

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/objview/internal/logger"
)

// captureScreenshot saves the scene framebuffer as a timestamped PNG
// next to the working directory.
func (a *App) captureScreenshot() {
	pixels := a.fb.ReadPixels()
	w, h := a.fb.Size()

	// ReadPixels returns rows bottom-first; flip while copying.
	img := image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	rowLen := int(w) * 4
	for y := 0; y < int(h); y++ {
		src := pixels[(int(h)-1-y)*rowLen : (int(h)-y)*rowLen]
		copy(img.Pix[y*img.Stride:], src)
	}

	name := fmt.Sprintf("objview-%s.png", time.Now().Format("20060102-150405"))
	path := filepath.Join(".", name)

	f, err := os.Create(path)
	if err != nil {
		logger.Error("screenshot create failed", zap.String("path", path), zap.Error(err))
		a.notify("Screenshot failed: " + err.Error())
		return
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		logger.Error("screenshot encode failed", zap.String("path", path), zap.Error(err))
		a.notify("Screenshot failed: " + err.Error())
		return
	}

	logger.Info("screenshot saved", zap.String("path", path))
	a.notify("Screenshot saved: " + name)
}
