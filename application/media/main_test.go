package media

import (
	"os"
	"testing"

	"projection-video-3d/infrastructure/logging"
)

func TestMain(m *testing.M) {
	logging.ConfigureTests()
	os.Exit(m.Run())
}
