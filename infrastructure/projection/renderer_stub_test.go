//go:build !projection

package projection

import (
	"context"
	"errors"
	"testing"

	"projection-video-3d/domain/projection"
)

func TestStubRenderer(t *testing.T) {
	r := NewRenderer(WithCodec("avc1"))
	if r.codec != "avc1" {
		t.Errorf("codec = %q, want avc1", r.codec)
	}
	if Available() {
		t.Error("Available() = true in a build without the projection tag")
	}

	_, err := r.Render(context.Background(), "in.mp4", "out.mp4", projection.Up)
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Render() error = %v, want ErrUnavailable", err)
	}
}

func TestStubRenderer_DefaultCodec(t *testing.T) {
	if r := NewRenderer(WithCodec("")); r.codec != DefaultCodec {
		t.Errorf("codec = %q, want %q", r.codec, DefaultCodec)
	}
}
