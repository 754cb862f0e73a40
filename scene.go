package sortable

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

// Updater is anything advanced once per frame by Scene.Update, such as a
// List and its animations.
type Updater interface {
	Update(dt float32)
}

// Scene is the top-level object that owns the node tree, input state and
// the per-frame updaters.
type Scene struct {
	root  *Node
	debug bool

	// ClearColor fills the screen before drawing. Zero alpha leaves the
	// screen untouched.
	ClearColor Color

	updaters []Updater

	// Input state
	pointer     pointerState
	hitBuf      []*Node
	injectQueue []syntheticPointerEvent
	testRunner  *TestRunner
}

// NewScene creates a new scene with a pre-created root container.
func NewScene() *Scene {
	root := NewContainer("root")
	root.Interactable = true
	return &Scene{root: root}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// AddUpdater registers u to be advanced every frame.
func (s *Scene) AddUpdater(u Updater) {
	s.updaters = append(s.updaters, u)
}

// RemoveUpdater unregisters u.
func (s *Scene) RemoveUpdater(u Updater) {
	for i, cur := range s.updaters {
		if cur == u {
			s.updaters = append(s.updaters[:i], s.updaters[i+1:]...)
			return
		}
	}
}

// Update processes input and advances every registered updater by one tick.
func (s *Scene) Update() {
	s.UpdateDelta(float32(1.0 / float64(ebiten.TPS())))
}

// UpdateDelta is Update with an explicit frame time in seconds.
func (s *Scene) UpdateDelta(dt float32) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInput()
	for _, u := range s.updaters {
		u.Update(dt)
	}

	if s.debug {
		s.debugLog(debugStats{inputTime: time.Since(t0)})
	}
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth and child count warnings are logged, and
// per-frame timings are logged at debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
	if enabled {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply.
var globalDebug bool
