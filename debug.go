package sortable

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// logger is the package logger. Listener failures are reported at warn
// level; gesture transitions and frame stats at debug level.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "sortable",
	Level:  log.WarnLevel,
})

// SetLogger replaces the package logger. A nil logger discards everything.
// Call it before any List is created.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Logger returns the package logger.
func Logger() *log.Logger {
	return logger
}

// debugStats holds per-frame timings. Only populated when Scene.debug is true.
type debugStats struct {
	inputTime time.Duration
	drawTime  time.Duration
	nodeCount int
}

// debugLog writes frame stats at debug level.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	logger.Debug("frame",
		"input", stats.inputTime,
		"draw", stats.drawTime,
		"nodes", stats.nodeCount)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("sortable debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		logger.Warn("tree depth exceeds limit", "depth", depth, "limit", debugMaxTreeDepth, "node", n.Name)
	}
}

// debugCheckChildCount warns if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		logger.Warn("child count exceeds limit", "count", len(n.children), "limit", debugMaxChildCount, "node", n.Name)
	}
}
