package components

import (
	"strings"
	"testing"

	"github.com/framecast/framecast/internal/scene"
	"github.com/framecast/framecast/internal/tui/styles"
)

func testScene() *scene.Scene {
	return &scene.Scene{
		Name: "deck",
		Shapes: []scene.Shape{
			{ID: "f1", Kind: scene.ShapeKindFrame, X: 0, Y: 0, Width: 100, Height: 50, Label: "Intro"},
			{ID: "r1", Kind: scene.ShapeKindRectangle, X: 10, Y: 10, Width: 20, Height: 10},
		},
	}
}

func TestCameraForFrame_CentersOnFrame(t *testing.T) {
	frame := scene.Shape{X: 10, Y: 20, Width: 100, Height: 50}

	camera := CameraForFrame(frame, 80, 24, 0.7)

	if camera.CenterX != 60 || camera.CenterY != 45 {
		t.Errorf("camera center = (%v, %v), want (60, 45)", camera.CenterX, camera.CenterY)
	}
	if camera.Zoom <= 0 {
		t.Errorf("camera zoom = %v, want > 0", camera.Zoom)
	}

	// The frame must fit inside the viewport at the chosen zoom.
	if cols := frame.Width * camera.Zoom; cols > 80*0.7+1 {
		t.Errorf("frame spans %v columns, exceeds fill", cols)
	}
	if rows := frame.Height * camera.Zoom / 2; rows > 24*0.7+1 {
		t.Errorf("frame spans %v rows, exceeds fill", rows)
	}
}

func TestCameraForFrame_DegenerateFrame(t *testing.T) {
	camera := CameraForFrame(scene.Shape{X: 5, Y: 5}, 80, 24, 0.7)
	if camera.Zoom <= 0 {
		t.Errorf("zoom for zero-size frame = %v, want > 0", camera.Zoom)
	}
}

func TestRenderCanvas_DrawsFrameBoxWithLabel(t *testing.T) {
	styleSet := styles.DefaultStyles()
	sc := testScene()
	camera := CameraForFrame(sc.Shapes[0], 60, 20, 0.7)

	result := RenderCanvas(styleSet, CanvasData{Scene: sc, Camera: camera}, 60, 20)

	if !strings.Contains(result, "┌") || !strings.Contains(result, "┘") {
		t.Error("Canvas should draw frame box corners")
	}
	if !strings.Contains(result, "Intro") {
		t.Error("Canvas should draw the frame label")
	}
	if !strings.Contains(result, "░") {
		t.Error("Canvas should draw non-frame shapes")
	}
}

func TestRenderCanvas_EmptyScene(t *testing.T) {
	styleSet := styles.DefaultStyles()

	result := RenderCanvas(styleSet, CanvasData{Scene: &scene.Scene{Name: "empty"}}, 60, 20)

	if !strings.Contains(result, "canvas is empty") {
		t.Error("Empty scene should render the empty state")
	}
}

func TestRenderCanvas_NoCameraFallsBackToSceneFit(t *testing.T) {
	styleSet := styles.DefaultStyles()
	sc := testScene()

	result := RenderCanvas(styleSet, CanvasData{Scene: sc}, 60, 20)

	if !strings.Contains(result, "Intro") {
		t.Error("Scene-fit camera should still show the frame")
	}
}
