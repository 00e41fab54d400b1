package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/framecast/framecast/internal/scene"
	"github.com/framecast/framecast/internal/tui/styles"
)

// Camera describes the visible region of the canvas. Zoom is terminal
// columns per canvas unit; rows use half the zoom because terminal
// cells are roughly twice as tall as wide.
type Camera struct {
	CenterX float64
	CenterY float64
	Zoom    float64
}

// CameraForFrame returns a camera centered on the frame with the frame
// occupying the given fill fraction of the viewport.
func CameraForFrame(frame scene.Shape, width, height int, fill float64) Camera {
	if fill <= 0 || fill > 1 {
		fill = 1
	}

	zoom := 1.0
	if frame.Width > 0 && frame.Height > 0 && width > 0 && height > 0 {
		zoomX := fill * float64(width) / frame.Width
		zoomY := fill * float64(height) * 2 / frame.Height
		zoom = zoomX
		if zoomY < zoom {
			zoom = zoomY
		}
	}

	return Camera{
		CenterX: frame.X + frame.Width/2,
		CenterY: frame.Y + frame.Height/2,
		Zoom:    zoom,
	}
}

// CanvasData contains data for rendering the canvas pane.
type CanvasData struct {
	// Scene holds the shapes to draw.
	Scene *scene.Scene

	// Camera is the current viewport over the canvas.
	Camera Camera

	// HighlightID marks the frame drawn with the highlight style.
	HighlightID string

	// Presenting dims shapes outside the highlighted frame.
	Presenting bool
}

// Cell style classes, higher wins when shapes overlap.
const (
	cellBlank = iota
	cellDim
	cellShape
	cellFrame
	cellActive
)

// RenderCanvas renders the canvas pane at the given size.
func RenderCanvas(styleSet styles.Styles, data CanvasData, width, height int) string {
	if width < 2 || height < 1 {
		return ""
	}
	if data.Scene == nil || len(data.Scene.Shapes) == 0 {
		empty := EmptyCanvas()
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, empty.Render(styleSet))
	}

	grid := newCellGrid(width, height)

	camera := data.Camera
	if camera.Zoom <= 0 {
		camera = fitSceneCamera(data.Scene, width, height)
	}

	for _, shape := range data.Scene.Shapes {
		if shape.Deleted || shape.Kind == scene.ShapeKindFrame {
			continue
		}
		grid.drawFill(camera, shape, shapeClass(data, shape))
	}
	for _, shape := range data.Scene.Shapes {
		if shape.Deleted || shape.Kind != scene.ShapeKindFrame {
			continue
		}
		label := data.Scene.FrameLabel(shape.ID)
		grid.drawBox(camera, shape, label, frameClass(data, shape))
	}

	return grid.render(styleSet)
}

func shapeClass(data CanvasData, shape scene.Shape) int {
	if data.Presenting {
		return cellDim
	}
	return cellShape
}

func frameClass(data CanvasData, shape scene.Shape) int {
	if shape.ID == data.HighlightID {
		return cellActive
	}
	if data.Presenting {
		return cellDim
	}
	return cellFrame
}

// fitSceneCamera frames the whole scene, used before any navigation.
func fitSceneCamera(sc *scene.Scene, width, height int) Camera {
	minX, minY, maxX, maxY, ok := sc.Bounds()
	if !ok {
		return Camera{Zoom: 1}
	}
	return CameraForFrame(scene.Shape{
		X:      minX,
		Y:      minY,
		Width:  maxX - minX,
		Height: maxY - minY,
	}, width, height, 0.9)
}

type cellGrid struct {
	width  int
	height int
	runes  []rune
	class  []int
}

func newCellGrid(width, height int) *cellGrid {
	grid := &cellGrid{
		width:  width,
		height: height,
		runes:  make([]rune, width*height),
		class:  make([]int, width*height),
	}
	for i := range grid.runes {
		grid.runes[i] = ' '
	}
	return grid
}

func (g *cellGrid) project(camera Camera, x, y float64) (int, int) {
	col := int((x-camera.CenterX)*camera.Zoom) + g.width/2
	row := int((y-camera.CenterY)*camera.Zoom/2) + g.height/2
	return col, row
}

func (g *cellGrid) set(col, row int, r rune, class int) {
	if col < 0 || col >= g.width || row < 0 || row >= g.height {
		return
	}
	idx := row*g.width + col
	if class < g.class[idx] {
		return
	}
	g.runes[idx] = r
	g.class[idx] = class
}

func (g *cellGrid) drawFill(camera Camera, shape scene.Shape, class int) {
	left, top := g.project(camera, shape.X, shape.Y)
	right, bottom := g.project(camera, shape.X+shape.Width, shape.Y+shape.Height)
	for row := top; row <= bottom; row++ {
		for col := left; col <= right; col++ {
			g.set(col, row, '░', class)
		}
	}
}

func (g *cellGrid) drawBox(camera Camera, shape scene.Shape, label string, class int) {
	left, top := g.project(camera, shape.X, shape.Y)
	right, bottom := g.project(camera, shape.X+shape.Width, shape.Y+shape.Height)
	if right <= left {
		right = left + 1
	}
	if bottom <= top {
		bottom = top + 1
	}

	for col := left + 1; col < right; col++ {
		g.set(col, top, '─', class)
		g.set(col, bottom, '─', class)
	}
	for row := top + 1; row < bottom; row++ {
		g.set(left, row, '│', class)
		g.set(right, row, '│', class)
	}
	g.set(left, top, '┌', class)
	g.set(right, top, '┐', class)
	g.set(left, bottom, '└', class)
	g.set(right, bottom, '┘', class)

	// Label sits inside the top edge when there is room.
	if label != "" && bottom > top+1 {
		maxLen := right - left - 2
		if maxLen > 0 {
			label = truncateLabel(label, maxLen)
			for i, r := range label {
				g.set(left+1+i, top+1, r, class)
			}
		}
	}
}

func (g *cellGrid) render(styleSet styles.Styles) string {
	classStyles := map[int]lipgloss.Style{
		cellDim:    styleSet.FrameDim,
		cellShape:  styleSet.Muted,
		cellFrame:  styleSet.FrameBox,
		cellActive: styleSet.FrameActive,
	}

	rows := make([]string, g.height)
	for row := 0; row < g.height; row++ {
		var builder strings.Builder
		start := row * g.width
		col := 0
		for col < g.width {
			class := g.class[start+col]
			runStart := col
			for col < g.width && g.class[start+col] == class {
				col++
			}
			segment := string(g.runes[start+runStart : start+col])
			if style, ok := classStyles[class]; ok {
				segment = style.Render(segment)
			}
			builder.WriteString(segment)
		}
		rows[row] = builder.String()
	}
	return strings.Join(rows, "\n")
}
