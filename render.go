package sortable

import (
	"fmt"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// labelPadding is the inset of a node's label from its top-left corner.
const labelPadding = 6

// Draw renders the scene tree onto screen in painter order. Nodes with a
// size and a visible color become filled rectangles; labels are drawn with
// the debug font on top of their node.
func (s *Scene) Draw(screen *ebiten.Image) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}
	count := s.drawNode(screen, s.root, 0, 0)

	if s.debug {
		s.debugLog(debugStats{drawTime: time.Since(t0), nodeCount: count})
	}
}

func (s *Scene) drawNode(screen *ebiten.Image, n *Node, px, py float64) int {
	if !n.Visible {
		return 0
	}
	x := px + n.X + n.OffsetX
	y := py + n.Y + n.OffsetY
	count := 1

	if n.Width > 0 && n.Height > 0 && n.Color.A > 0 {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(n.Width, n.Height)
		op.GeoM.Translate(x, y)
		op.ColorScale.ScaleWithColor(n.Color.toRGBA())
		screen.DrawImage(WhitePixel, op)
	}
	if n.Label != "" {
		ebitenutil.DebugPrintAt(screen, n.Label, int(x)+labelPadding, int(y)+labelPadding)
	}

	if len(n.children) == 0 {
		return count
	}
	for _, child := range paintOrder(n, nil) {
		count += s.drawNode(screen, child, x, y)
	}
	return count
}

// RenderFunc builds the node that displays one backing item.
type RenderFunc func(item any) *Node

// rowColor is the fill used by DefaultRender.
var rowColor = Color{R: 0.3, G: 0.55, B: 0.85, A: 1}

// DefaultRender shows item as a plain row labelled with its URI-escaped
// string form.
func DefaultRender(item any) *Node {
	return newRow(item, defaultRowWidth, defaultRowHeight)
}

// RowRender returns a render function like DefaultRender with a custom row size.
func RowRender(w, h float64) RenderFunc {
	return func(item any) *Node {
		return newRow(item, w, h)
	}
}

func newRow(item any, w, h float64) *Node {
	text := encodeURI(fmt.Sprint(item))
	row := NewRect("li", w, h, rowColor)
	row.Label = text
	return row
}

// uriKeep holds the ASCII bytes encodeURI leaves alone: letters, digits, the
// unreserved marks and the URI reserved set.
const uriKeep = "-_.!~*'();,/?:@&=+$#"

// encodeURI percent-encodes s the way a browser's encodeURI does. Unlike
// url.PathEscape it keeps reserved characters such as '/', '?' and '#'.
func encodeURI(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' ||
			strings.IndexByte(uriKeep, c) >= 0 {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&15])
	}
	return b.String()
}
