//go:build !projection

package projection

import (
	"context"
	"errors"

	"projection-video-3d/domain/projection"
)

// DefaultCodec is the fourcc used for the silent projection video
const DefaultCodec = "mp4v"

// ErrUnavailable is returned by the stub renderer
var ErrUnavailable = errors.New("projection rendering not available: build with '-tags=projection' and install OpenCV/GoCV")

// Renderer is a stub when GoCV/OpenCV is not available
type Renderer struct {
	codec string
}

// RendererOption is a functional option for configuring Renderer
type RendererOption func(*Renderer)

// WithCodec sets the fourcc of the written video
func WithCodec(codec string) RendererOption {
	return func(r *Renderer) {
		if codec != "" {
			r.codec = codec
		}
	}
}

// NewRenderer creates a stub renderer (requires building with -tags=projection)
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{codec: DefaultCodec}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Available reports whether this build can render projections
func Available() bool {
	return false
}

// Render returns ErrUnavailable
func (r *Renderer) Render(ctx context.Context, inputPath, outputPath string, dir projection.Direction) (projection.RenderResult, error) {
	return projection.RenderResult{}, ErrUnavailable
}

var _ projection.Renderer = (*Renderer)(nil)
