package hal

import (
	"fmt"
	"image/png"
	"io"
	"os"
)

// WritePNG encodes the current framebuffer contents as PNG.
func WritePNG(w io.Writer, fb Framebuffer) error {
	if fb == nil {
		return fmt.Errorf("hal: no framebuffer")
	}
	if fb.Format() != PixelFormatRGB565 {
		return fmt.Errorf("hal: unsupported pixel format %d", fb.Format())
	}
	return png.Encode(w, ToRGBA(fb))
}

// SavePNG writes the framebuffer to path.
func SavePNG(path string, fb Framebuffer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("hal: snapshot: %w", err)
	}
	if err := WritePNG(f, fb); err != nil {
		f.Close()
		return fmt.Errorf("hal: snapshot %s: %w", path, err)
	}
	return f.Close()
}
