package bridge

import (
	"github.com/jakecoffman/cp"

	"skyraid/levels"
	"skyraid/playtest"
)

// regionMargin expands the on-screen bounding region used by the fallback
// completion heuristic, so enemies hovering just off-frame still count as
// present.
const regionMargin = 160.0

// Session is the explicit bundle of values that crosses the editor/gameplay
// boundary for one test run. It is constructed once at launch and passed
// directly to every consumer; nothing is stashed in ambient shared state.
type Session struct {
	// Delta moves editor-camera-relative coordinates into play space.
	Delta levels.Position

	// Level is the transient, already-translated copy handed to gameplay.
	// The persisted level is never mutated.
	Level *levels.LevelData

	Flags playtest.Flags

	// Region is the expanded on-screen bounding box in play space.
	Region cp.BB
}

// ComputeDelta returns the translation between editor camera space and play
// space: the offset that puts the world point at the editor's viewport center
// exactly at the center of the play screen. Pure function of the current
// camera and viewport.
func ComputeDelta(viewportCenterScreen, cameraWorldAtViewportCenter levels.Position) levels.Position {
	return levels.Position{
		X: viewportCenterScreen.X - cameraWorldAtViewportCenter.X,
		Y: viewportCenterScreen.Y - cameraWorldAtViewportCenter.Y,
	}
}

// NewSession clones the level, applies the translation delta and packages the
// test flags for one build-mode run.
func NewSession(lvl *levels.LevelData, viewportCenterScreen, cameraWorldAtViewportCenter levels.Position, viewportW, viewportH int) *Session {
	delta := ComputeDelta(viewportCenterScreen, cameraWorldAtViewportCenter)
	translated := lvl.Clone()
	translated.Translate(delta.X, delta.Y)
	return &Session{
		Delta: delta,
		Level: translated,
		Flags: playtest.Flags{TestMode: true, BuildModeTest: true},
		Region: cp.BB{
			L: -regionMargin,
			B: -regionMargin,
			R: float64(viewportW) + regionMargin,
			T: float64(viewportH) + regionMargin,
		},
	}
}
