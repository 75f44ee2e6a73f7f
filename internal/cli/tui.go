package cli

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fsh/qplanarity/pkg/geom"
	"github.com/fsh/qplanarity/pkg/layout"
	"github.com/fsh/qplanarity/pkg/session"
	"github.com/fsh/qplanarity/pkg/tangle"
)

const (
	defaultCanvasWidth  = 64
	defaultCanvasHeight = 22

	defaultStep = 10.0
	minStep     = 1.0
	maxStep     = 160.0
)

var (
	playHelpStyle     = lipgloss.NewStyle().Foreground(colorDim)
	playCanvasStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim)
	playSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
)

var playBannerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorGreen).
	Border(lipgloss.DoubleBorder()).
	BorderForeground(colorGreen).
	Padding(0, 2)

// =============================================================================
// PlayModel - Interactive untangling
// =============================================================================

// playModel is the bubbletea model for the play command. Each nudge moves the
// selected vertex by one step and counts as a finished drag.
type playModel struct {
	ctx  context.Context
	sess *session.Session

	cursor    int
	neighbors map[int]bool
	step      float64
	width     int
	height    int

	progress tangle.Progress
	solved   bool
	err      error
}

func newPlayModel(ctx context.Context, sess *session.Session) playModel {
	m := playModel{
		ctx:      ctx,
		sess:     sess,
		step:     defaultStep,
		width:    defaultCanvasWidth,
		height:   defaultCanvasHeight,
		progress: sess.Progress(),
	}
	m.solved = m.progress.Solved()
	return m.selectVertex(0)
}

func (m playModel) Init() tea.Cmd {
	return nil
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.err = nil
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "n":
			m = m.selectVertex(m.cursor + 1)
		case "shift+tab", "p":
			m = m.selectVertex(m.cursor - 1)
		case "up", "k":
			m = m.nudge(0, -1)
		case "down", "j":
			m = m.nudge(0, 1)
		case "left", "h":
			m = m.nudge(-1, 0)
		case "right", "l":
			m = m.nudge(1, 0)
		case "+", "=":
			m.step = min(m.step*2, maxStep)
		case "-", "_":
			m.step = max(m.step/2, minStep)
		}
	case tea.WindowSizeMsg:
		m.width = max(msg.Width-2, 20)
		m.height = max(msg.Height-8, 8)
	}
	return m, nil
}

// selectVertex moves the cursor to v, wrapping around, and refreshes the
// highlighted neighbourhood.
func (m playModel) selectVertex(v int) playModel {
	n := m.sess.Vertices()
	if n == 0 {
		return m
	}
	m.cursor = ((v % n) + n) % n

	m.neighbors = make(map[int]bool)
	neighbors, err := m.sess.Neighbors(m.cursor)
	if err != nil {
		m.err = err
		return m
	}
	for _, u := range neighbors {
		m.neighbors[u] = true
	}
	return m
}

// nudge moves the selected vertex by (dx, dy) steps and releases it.
func (m playModel) nudge(dx, dy float64) playModel {
	if m.sess.Vertices() == 0 {
		return m
	}
	p, err := m.sess.Position(m.cursor)
	if err != nil {
		m.err = err
		return m
	}
	progress, err := m.sess.Move(m.ctx, m.cursor, p.Add(geom.Pt(dx*m.step, dy*m.step)))
	if err != nil {
		m.err = err
		return m
	}
	m.progress = progress
	m.solved = m.sess.Release(m.ctx)
	return m
}

func (m playModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(appName))
	b.WriteString(" ")
	b.WriteString(StyleDim.Render(shortID(m.sess.ID)))
	b.WriteString("\n")
	b.WriteString(playHelpStyle.Render("tab/n next  p prev  ←↑↓→/hjkl move  +/- step  q quit"))
	b.WriteString("\n")

	snap := m.sess.Snapshot()
	b.WriteString(playCanvasStyle.Render(renderCanvas(snap, m.cursor, m.neighbors, m.width, m.height)))
	b.WriteString("\n")

	b.WriteString(progressBar(m.progress, 20))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("vertex %d  step %g  moves %d", m.cursor, m.step, m.sess.Moves())))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(StyleTangled.Render(m.err.Error()))
		b.WriteString("\n")
	}
	if m.solved {
		b.WriteString(playBannerStyle.Render(fmt.Sprintf("Untangled in %d moves!", m.sess.Moves())))
		b.WriteString("\n")
	}
	return b.String()
}

// =============================================================================
// Canvas
// =============================================================================

type cellKind int

const (
	cellEmpty cellKind = iota
	cellLine
	cellTangled
	cellVertex
	cellNeighbor
	cellSelected
)

var cellGlyphs = [...]string{
	cellEmpty:    " ",
	cellLine:     "·",
	cellTangled:  "·",
	cellVertex:   "o",
	cellNeighbor: "+",
	cellSelected: "@",
}

func (k cellKind) style() lipgloss.Style {
	switch k {
	case cellLine:
		return StyleSuccess
	case cellTangled:
		return StyleTangled
	case cellVertex:
		return StyleValue
	case cellNeighbor:
		return StyleHighlight
	case cellSelected:
		return playSelectedStyle
	default:
		return lipgloss.NewStyle()
	}
}

// renderCanvas scales the drawing into a w×h character grid. Tangled lines
// win over untangled ones where they share a cell and vertices are drawn last.
func renderCanvas(snap session.Snapshot, selected int, neighbors map[int]bool, w, h int) string {
	cells := make([][]cellKind, h)
	for y := range cells {
		cells[y] = make([]cellKind, w)
	}
	mark := func(x, y int, k cellKind) {
		if x >= 0 && x < w && y >= 0 && y < h && cells[y][x] < k {
			cells[y][x] = k
		}
	}

	bounds := layout.Bounds(snap.Positions, 0)
	spanX := math.Max(bounds.Max.X-bounds.Min.X, 1)
	spanY := math.Max(bounds.Max.Y-bounds.Min.Y, 1)
	toCell := func(p geom.Point) (int, int) {
		x := (p.X - bounds.Min.X) / spanX * float64(w-1)
		y := (p.Y - bounds.Min.Y) / spanY * float64(h-1)
		return int(math.Round(x)), int(math.Round(y))
	}

	for _, e := range snap.Edges {
		kind := cellLine
		if snap.Tangled[e] {
			kind = cellTangled
		}
		x0, y0 := toCell(snap.Positions[e.A])
		x1, y1 := toCell(snap.Positions[e.B])
		steps := max(abs(x1-x0), abs(y1-y0), 1)
		for i := 0; i <= steps; i++ {
			t := float64(i) / float64(steps)
			mark(int(math.Round(float64(x0)+t*float64(x1-x0))), int(math.Round(float64(y0)+t*float64(y1-y0))), kind)
		}
	}

	for v, p := range snap.Positions {
		kind := cellVertex
		switch {
		case v == selected:
			kind = cellSelected
		case neighbors[v]:
			kind = cellNeighbor
		}
		x, y := toCell(p)
		mark(x, y, kind)
	}

	var b strings.Builder
	for y, row := range cells {
		if y > 0 {
			b.WriteString("\n")
		}
		for x := 0; x < len(row); {
			k := row[x]
			end := x
			for end < len(row) && row[end] == k {
				end++
			}
			b.WriteString(k.style().Render(strings.Repeat(cellGlyphs[k], end-x)))
			x = end
		}
	}
	return b.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
