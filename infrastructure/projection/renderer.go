//go:build projection

package projection

import (
	"context"
	"fmt"
	"image"

	"projection-video-3d/domain/projection"
	"projection-video-3d/infrastructure/logging"

	"github.com/rs/zerolog"
	"gocv.io/x/gocv"
)

// DefaultCodec is the fourcc used for the silent projection video
const DefaultCodec = "mp4v"

// Renderer composes four transformed copies of every source frame onto a square
// black canvas and writes the result without audio
type Renderer struct {
	codec  string
	logger zerolog.Logger
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

// NewRenderer creates a new gocv-backed renderer
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{
		codec:  DefaultCodec,
		logger: logging.Logger("renderer"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Available reports whether this build can render projections
func Available() bool {
	return true
}

// Render implements projection.Renderer
func (r *Renderer) Render(ctx context.Context, inputPath, outputPath string, dir projection.Direction) (projection.RenderResult, error) {
	capture, err := gocv.VideoCaptureFile(inputPath)
	if err != nil {
		return projection.RenderResult{}, fmt.Errorf("%w: %s: %v", projection.ErrInputUnreadable, inputPath, err)
	}
	defer capture.Close()
	if !capture.IsOpened() {
		return projection.RenderResult{}, fmt.Errorf("%w: %s", projection.ErrInputUnreadable, inputPath)
	}

	fps := capture.Get(gocv.VideoCaptureFPS)
	width := int(capture.Get(gocv.VideoCaptureFrameWidth))
	height := int(capture.Get(gocv.VideoCaptureFrameHeight))

	layout, err := projection.NewLayout(width, height, dir)
	if err != nil {
		return projection.RenderResult{}, fmt.Errorf("%w: %s: %v", projection.ErrInputUnreadable, inputPath, err)
	}
	size := layout.CanvasSize()

	writer, err := gocv.VideoWriterFile(outputPath, r.codec, fps, size.X, size.Y, true)
	if err != nil {
		return projection.RenderResult{}, fmt.Errorf("failed to open video writer %s: %w", outputPath, err)
	}
	defer writer.Close()

	frame := gocv.NewMat()
	defer frame.Close()
	canvas := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), size.Y, size.X, gocv.MatTypeCV8UC3)
	defer canvas.Close()

	panels := layout.Panels()
	frames := 0
	for {
		if err := ctx.Err(); err != nil {
			return projection.RenderResult{}, err
		}
		if ok := capture.Read(&frame); !ok || frame.Empty() {
			break
		}

		for _, panel := range panels {
			if err := placePanel(frame, &canvas, panel); err != nil {
				return projection.RenderResult{}, err
			}
		}
		if err := writer.Write(canvas); err != nil {
			return projection.RenderResult{}, fmt.Errorf("failed to write frame %d: %w", frames, err)
		}

		frames++
		if frames%100 == 0 {
			r.logger.Debug().Int("frames", frames).Str("output", outputPath).Msg("rendering")
		}
	}

	r.logger.Debug().Int("frames", frames).Float64("fps", fps).Msg("render complete")
	return projection.RenderResult{Frames: frames, FPS: fps, Canvas: image.Pt(size.X, size.Y)}, nil
}

// placePanel rotates and mirrors frame, then copies it into the panel's region of canvas
func placePanel(frame gocv.Mat, canvas *gocv.Mat, panel projection.Panel) error {
	transformed := gocv.NewMat()
	defer transformed.Close()

	switch panel.Rotation {
	case projection.Rotate90Clockwise:
		gocv.Rotate(frame, &transformed, gocv.Rotate90Clockwise)
	case projection.Rotate180:
		gocv.Rotate(frame, &transformed, gocv.Rotate180Clockwise)
	case projection.Rotate90CounterClockwise:
		gocv.Rotate(frame, &transformed, gocv.Rotate90CounterClockwise)
	default:
		frame.CopyTo(&transformed)
	}

	if panel.Mirror {
		mirrored := gocv.NewMat()
		defer mirrored.Close()
		gocv.Flip(transformed, &mirrored, 1)
		mirrored.CopyTo(&transformed)
	}

	if transformed.Cols() != panel.Bounds.Dx() || transformed.Rows() != panel.Bounds.Dy() {
		return fmt.Errorf("panel %s: transformed frame is %dx%d, region is %dx%d",
			panel.Name, transformed.Cols(), transformed.Rows(), panel.Bounds.Dx(), panel.Bounds.Dy())
	}

	region := canvas.Region(panel.Bounds)
	defer region.Close()
	transformed.CopyTo(&region)
	return nil
}

var _ projection.Renderer = (*Renderer)(nil)
