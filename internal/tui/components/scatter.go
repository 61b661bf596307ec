package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/hkapoor246/rag-ai-app/internal/api"
)

// ScatterPlot renders 2-D embedding points as a terminal glyph grid, one
// colour per source document, with a legend underneath.
type ScatterPlot struct {
	width  int
	height int
}

// palette cycles across source documents.
var palette = []lipgloss.Color{
	"#89B4FA", // blue
	"#A6E3A1", // green
	"#F9E2AF", // yellow
	"#F38BA8", // red
	"#CBA6F7", // purple
	"#94E2D5", // teal
	"#FAB387", // peach
}

// NewScatterPlot creates a plot sized in terminal cells.
func NewScatterPlot(width, height int) *ScatterPlot {
	if width < 10 {
		width = 10
	}
	if height < 5 {
		height = 5
	}
	return &ScatterPlot{width: width, height: height}
}

// Render draws the points. Sources are coloured in order of first
// appearance; overlapping cells keep the first point plotted there.
func (s *ScatterPlot) Render(points []api.Point) string {
	if len(points) == 0 {
		return "No embedding data to plot."
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	spanX := maxX - minX
	spanY := maxY - minY
	if spanX == 0 {
		spanX = 1
	}
	if spanY == 0 {
		spanY = 1
	}

	colorOf := make(map[string]lipgloss.Color)
	countOf := make(map[string]int)
	var order []string
	for _, p := range points {
		if _, ok := colorOf[p.Source]; !ok {
			colorOf[p.Source] = palette[len(order)%len(palette)]
			order = append(order, p.Source)
		}
		countOf[p.Source]++
	}

	grid := make([]string, s.width*s.height)
	for _, p := range points {
		col := int(math.Round((p.X - minX) / spanX * float64(s.width-1)))
		// terminal rows grow downward; flip Y so larger values sit higher
		row := int(math.Round((maxY - p.Y) / spanY * float64(s.height-1)))
		idx := row*s.width + col
		if grid[idx] == "" {
			grid[idx] = lipgloss.NewStyle().Foreground(colorOf[p.Source]).Render("•")
		}
	}

	var b strings.Builder
	for row := 0; row < s.height; row++ {
		for col := 0; col < s.width; col++ {
			cell := grid[row*s.width+col]
			if cell == "" {
				cell = " "
			}
			b.WriteString(cell)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	for _, src := range order {
		dot := lipgloss.NewStyle().Foreground(colorOf[src]).Render("•")
		label := runewidth.Truncate(src, s.width-12, "…")
		b.WriteString(fmt.Sprintf("%s %s (%d chunks)\n", dot, label, countOf[src]))
	}

	return strings.TrimRight(b.String(), "\n")
}
