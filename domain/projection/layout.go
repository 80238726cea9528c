package projection

import (
	"context"
	"errors"
	"fmt"
	"image"
)

// ErrInputUnreadable is returned by a Renderer when the source video cannot be opened
var ErrInputUnreadable = errors.New("cannot open input video")

// Rotation is the turn applied to the source frame before it is placed
type Rotation int

const (
	RotateNone Rotation = iota
	Rotate90Clockwise
	Rotate180
	Rotate90CounterClockwise
)

// Panel is one of the four copies of the source frame placed on the canvas
type Panel struct {
	Name     string
	Rotation Rotation
	// Mirror flips the panel horizontally after rotation
	Mirror bool
	Bounds image.Rectangle
}

// Layout describes how a w×h source frame is placed on the projection canvas
type Layout struct {
	FrameWidth  int
	FrameHeight int
	Direction   Direction
}

// NewLayout validates frame dimensions and direction
func NewLayout(width, height int, dir Direction) (Layout, error) {
	if width <= 0 || height <= 0 {
		return Layout{}, fmt.Errorf("invalid frame size %dx%d", width, height)
	}
	if dir != Up && dir != Down {
		return Layout{}, fmt.Errorf("invalid direction %v", dir)
	}
	return Layout{FrameWidth: width, FrameHeight: height, Direction: dir}, nil
}

// CanvasSize returns the square output size, w+2h on each side
func (l Layout) CanvasSize() image.Point {
	side := l.FrameWidth + 2*l.FrameHeight
	return image.Pt(side, side)
}

// Panels returns the top, right, bottom and left panels in that order.
// Rotated panels are h wide and w tall, so every region fits its transformed frame.
func (l Layout) Panels() []Panel {
	w, h := l.FrameWidth, l.FrameHeight

	top := image.Rect(h, 0, h+w, h)
	right := image.Rect(w+h, h, w+2*h, h+w)
	bottom := image.Rect(h, h+w, h+w, 2*h+w)
	left := image.Rect(0, h, h, h+w)

	if l.Direction == Down {
		return []Panel{
			{Name: "top", Rotation: Rotate180, Mirror: true, Bounds: top},
			{Name: "right", Rotation: Rotate90Clockwise, Mirror: true, Bounds: right},
			{Name: "bottom", Rotation: RotateNone, Mirror: true, Bounds: bottom},
			{Name: "left", Rotation: Rotate90CounterClockwise, Mirror: true, Bounds: left},
		}
	}

	return []Panel{
		{Name: "top", Rotation: RotateNone, Mirror: true, Bounds: top},
		{Name: "right", Rotation: Rotate90CounterClockwise, Mirror: true, Bounds: right},
		{Name: "bottom", Rotation: Rotate180, Mirror: true, Bounds: bottom},
		{Name: "left", Rotation: Rotate90Clockwise, Mirror: true, Bounds: left},
	}
}

// RenderResult contains the outcome of rendering a projection video
type RenderResult struct {
	Frames int
	FPS    float64
	Canvas image.Point
}

// Renderer defines the interface for rendering a projection video without audio.
// This is a port that can be implemented by different infrastructure adapters.
type Renderer interface {
	Render(ctx context.Context, inputPath, outputPath string, dir Direction) (RenderResult, error)
}
