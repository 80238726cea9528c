package filesystem

import (
	"fmt"
	"os"
	"path/filepath"

	"projection-video-3d/application/projection"

	"github.com/google/uuid"
)

// WorkspaceFactory creates per-job scratch directories under a root directory
type WorkspaceFactory struct {
	root string
}

// NewWorkspaceFactory creates a factory rooted at root (created on demand)
func NewWorkspaceFactory(root string) *WorkspaceFactory {
	return &WorkspaceFactory{root: root}
}

// Create makes a fresh workspace named after a new job ID
func (w *WorkspaceFactory) Create() (projection.Workspace, error) {
	id := uuid.NewString()
	dir := filepath.Join(w.root, id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}
	return &Workspace{id: id, dir: dir, root: w.root}, nil
}

// Workspace is a scratch directory owned by a single projection job
type Workspace struct {
	id   string
	dir  string
	root string
}

// ID returns the job ID the workspace is named after
func (w *Workspace) ID() string {
	return w.id
}

// Path returns the path of name inside the workspace
func (w *Workspace) Path(name string) string {
	return filepath.Join(w.dir, name)
}

// Remove deletes the workspace and, if it is now empty, its root
func (w *Workspace) Remove() error {
	if err := os.RemoveAll(w.dir); err != nil {
		return fmt.Errorf("failed to remove workspace: %w", err)
	}
	// Only succeeds when no other job is using the root
	_ = os.Remove(w.root)
	return nil
}

// Ensure implementations satisfy the projection ports
var (
	_ projection.WorkspaceFactory = (*WorkspaceFactory)(nil)
	_ projection.Workspace        = (*Workspace)(nil)
)
