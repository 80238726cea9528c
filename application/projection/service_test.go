package projection

import (
	"bytes"
	"context"
	"errors"
	"image"
	"os/exec"
	"path"
	"strings"
	"testing"
	"time"

	"projection-video-3d/domain/media"
	"projection-video-3d/domain/projection"
)

// mockTool implements media.Tool for testing
type mockTool struct {
	present    bool
	extractOK  bool
	extractErr error
	mergeOK    bool
	mergeErr   error

	extractCalls []media.ExtractAudioRequest
	mergeCalls   []media.MergeRequest

	verifyDeadline     time.Time
	verifyHasDeadline  bool
	extractHasDeadline bool
}

func (m *mockTool) Verify(ctx context.Context, executable string) bool {
	m.verifyDeadline, m.verifyHasDeadline = ctx.Deadline()
	return m.present
}

func (m *mockTool) ExtractAudio(ctx context.Context, executable string, req media.ExtractAudioRequest) (bool, error) {
	_, m.extractHasDeadline = ctx.Deadline()
	m.extractCalls = append(m.extractCalls, req)
	return m.extractOK, m.extractErr
}

func (m *mockTool) MergeAudioVideo(ctx context.Context, executable string, req media.MergeRequest) (bool, error) {
	m.mergeCalls = append(m.mergeCalls, req)
	return m.mergeOK, m.mergeErr
}

// mockRenderer implements projection.Renderer for testing
type mockRenderer struct {
	err        error
	calls      int
	outputPath string
	direction  projection.Direction
}

func (m *mockRenderer) Render(ctx context.Context, inputPath, outputPath string, dir projection.Direction) (projection.RenderResult, error) {
	m.calls++
	m.outputPath = outputPath
	m.direction = dir
	if m.err != nil {
		return projection.RenderResult{}, m.err
	}
	return projection.RenderResult{Frames: 120, FPS: 30, Canvas: image.Pt(1360, 1360)}, nil
}

// mockFiles implements FileSystem for testing
type mockFiles struct {
	existing  map[string]bool
	removed   []string
	ensured   []string
	moves     [][2]string
	moveErr   error
	ensureErr error
}

func (m *mockFiles) Exists(p string) bool { return m.existing[p] }

func (m *mockFiles) Remove(p string) error {
	m.removed = append(m.removed, p)
	return nil
}

func (m *mockFiles) EnsureParentDir(p string) error {
	m.ensured = append(m.ensured, p)
	return m.ensureErr
}

func (m *mockFiles) Move(src, dst string) error {
	m.moves = append(m.moves, [2]string{src, dst})
	return m.moveErr
}

// mockWorkspace implements Workspace for testing
type mockWorkspace struct {
	removed bool
}

func (w *mockWorkspace) ID() string              { return "job-1" }
func (w *mockWorkspace) Path(name string) string { return path.Join("/tmp/temp_proj/job-1", name) }
func (w *mockWorkspace) Remove() error {
	w.removed = true
	return nil
}

type mockWorkspaces struct {
	ws  *mockWorkspace
	err error
}

func (m *mockWorkspaces) Create() (Workspace, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.ws, nil
}

type fixture struct {
	tool       *mockTool
	renderer   *mockRenderer
	files      *mockFiles
	workspace  *mockWorkspace
	workspaces *mockWorkspaces
	out        *bytes.Buffer
	service    *Service
}

func newFixture() *fixture {
	f := &fixture{
		tool:      &mockTool{present: true, extractOK: true, mergeOK: true},
		renderer:  &mockRenderer{},
		files:     &mockFiles{existing: map[string]bool{"in.mp4": true}},
		workspace: &mockWorkspace{},
		out:       &bytes.Buffer{},
	}
	f.workspaces = &mockWorkspaces{ws: f.workspace}
	f.service = NewService(f.tool, f.renderer, f.files, f.workspaces, f.out)
	return f
}

func validInput() Input {
	return Input{InputPath: "in.mp4", OutputPath: "out/result.mp4", FFmpegPath: "ffmpeg"}
}

const (
	audioPath  = "/tmp/temp_proj/job-1/audio.aac"
	silentPath = "/tmp/temp_proj/job-1/video_no_audio.mp4"
)

func TestService_Create_Success(t *testing.T) {
	f := newFixture()

	result, err := f.service.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if !result.HasAudio {
		t.Error("HasAudio = false, want true")
	}
	if result.Frames != 120 {
		t.Errorf("Frames = %d, want 120", result.Frames)
	}
	if result.JobID != "job-1" {
		t.Errorf("JobID = %q, want job-1", result.JobID)
	}

	if f.tool.extractCalls[0].OutputPath != audioPath {
		t.Errorf("audio extracted to %q, want %q", f.tool.extractCalls[0].OutputPath, audioPath)
	}
	if f.renderer.outputPath != silentPath {
		t.Errorf("rendered to %q, want %q", f.renderer.outputPath, silentPath)
	}
	if f.renderer.direction != projection.Up {
		t.Errorf("direction = %v, want default up", f.renderer.direction)
	}

	want := media.MergeRequest{VideoPath: silentPath, AudioPath: audioPath, OutputPath: "out/result.mp4"}
	if len(f.tool.mergeCalls) != 1 || f.tool.mergeCalls[0] != want {
		t.Errorf("merge calls = %+v, want [%+v]", f.tool.mergeCalls, want)
	}
	if len(f.files.moves) != 0 {
		t.Errorf("unexpected moves: %v", f.files.moves)
	}
	if len(f.files.ensured) != 1 || f.files.ensured[0] != "out/result.mp4" {
		t.Errorf("ensured = %v", f.files.ensured)
	}
	if !f.workspace.removed {
		t.Error("workspace was not removed")
	}
}

func TestService_Create_ToolUnavailable(t *testing.T) {
	f := newFixture()
	f.tool.present = false

	_, err := f.service.Create(context.Background(), validInput())
	if !errors.Is(err, ErrToolUnavailable) {
		t.Fatalf("Create() error = %v, want ErrToolUnavailable", err)
	}
	if len(f.tool.extractCalls) != 0 || f.renderer.calls != 0 {
		t.Error("workflow continued after failed verification")
	}
}

func TestService_Create_AudioFailures(t *testing.T) {
	tests := []struct {
		name string
		ok   bool
		err  error
	}{
		{name: "non-zero exit", ok: false},
		{name: "launch failure", err: &media.LaunchError{Executable: "ffmpeg", Err: exec.ErrNotFound}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.tool.extractOK = tt.ok
			f.tool.extractErr = tt.err

			result, err := f.service.Create(context.Background(), validInput())
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			if result.HasAudio {
				t.Error("HasAudio = true, want false")
			}
			if len(f.files.removed) != 1 || f.files.removed[0] != audioPath {
				t.Errorf("removed = %v, want partial audio removed", f.files.removed)
			}
			if len(f.tool.mergeCalls) != 0 {
				t.Error("merge should be skipped without audio")
			}
			wantMove := [2]string{silentPath, "out/result.mp4"}
			if len(f.files.moves) != 1 || f.files.moves[0] != wantMove {
				t.Errorf("moves = %v, want [%v]", f.files.moves, wantMove)
			}
		})
	}
}

func TestService_Create_MergeFailureFallsBackToSilentVideo(t *testing.T) {
	tests := []struct {
		name    string
		ok      bool
		err     error
		message string
	}{
		{name: "non-zero exit", ok: false, message: "Merge failed"},
		{name: "error", err: errors.New("boom"), message: "Merge error: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.tool.mergeOK = tt.ok
			f.tool.mergeErr = tt.err

			result, err := f.service.Create(context.Background(), validInput())
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			if result.HasAudio {
				t.Error("HasAudio = true, want false")
			}
			if len(f.files.moves) != 1 || f.files.moves[0][0] != silentPath {
				t.Errorf("moves = %v, want silent video moved", f.files.moves)
			}
			if !strings.Contains(f.out.String(), tt.message) {
				t.Errorf("output %q does not contain %q", f.out.String(), tt.message)
			}
		})
	}
}

func TestService_Create_RenderFailure(t *testing.T) {
	f := newFixture()
	f.renderer.err = projection.ErrInputUnreadable

	_, err := f.service.Create(context.Background(), validInput())
	if !errors.Is(err, projection.ErrInputUnreadable) {
		t.Fatalf("Create() error = %v, want ErrInputUnreadable", err)
	}
	if !f.workspace.removed {
		t.Error("workspace was not removed after render failure")
	}
	if len(f.files.moves) != 0 || len(f.tool.mergeCalls) != 0 {
		t.Error("output written after render failure")
	}
}

func TestService_Create_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input Input
		want  string
	}{
		{name: "missing input", input: Input{OutputPath: "out.mp4"}, want: "input video is required"},
		{name: "missing output", input: Input{InputPath: "in.mp4"}, want: "output path is required"},
		{name: "same path", input: Input{InputPath: "in.mp4", OutputPath: "in.mp4"}, want: "must differ"},
		{name: "input not found", input: Input{InputPath: "gone.mp4", OutputPath: "out.mp4"}, want: "not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			_, err := f.service.Create(context.Background(), tt.input)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Create() error = %v, want ValidationError", err)
			}
			if !strings.Contains(ve.Error(), tt.want) {
				t.Errorf("error = %q, want containing %q", ve.Error(), tt.want)
			}
		})
	}
}

func TestService_Create_WorkspaceError(t *testing.T) {
	f := newFixture()
	f.workspaces.err = errors.New("disk full")

	_, err := f.service.Create(context.Background(), validInput())
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("Create() error = %v, want workspace error", err)
	}
}

func TestService_Create_Elapsed(t *testing.T) {
	f := newFixture()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	calls := 0
	f.service.now = func() time.Time {
		calls++
		return start.Add(time.Duration(calls-1) * 3 * time.Second)
	}

	result, err := f.service.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if result.Elapsed != 3*time.Second {
		t.Errorf("Elapsed = %v, want 3s", result.Elapsed)
	}
}

func TestService_Create_VerifyTimeout(t *testing.T) {
	f := newFixture()
	f.service = NewService(f.tool, f.renderer, f.files, f.workspaces, f.out, WithVerifyTimeout(5*time.Second))

	before := time.Now()
	if _, err := f.service.Create(context.Background(), validInput()); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if !f.tool.verifyHasDeadline {
		t.Fatal("verify ran without a deadline")
	}
	if remaining := f.tool.verifyDeadline.Sub(before); remaining <= 0 || remaining > 5*time.Second {
		t.Errorf("verify deadline %v after start, want within 5s", remaining)
	}
	if f.tool.extractHasDeadline {
		t.Error("verify timeout leaked into audio extraction")
	}
}

func TestService_Create_NoVerifyTimeoutByDefault(t *testing.T) {
	f := newFixture()

	if _, err := f.service.Create(context.Background(), validInput()); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if f.tool.verifyHasDeadline {
		t.Error("verify has a deadline without WithVerifyTimeout")
	}
}

func TestValidationError_Suggestion(t *testing.T) {
	err := &ValidationError{Message: "bad", Suggestion: "do this"}
	if !strings.Contains(err.Error(), "To fix this, run:\n  do this") {
		t.Errorf("Error() = %q", err.Error())
	}
}
