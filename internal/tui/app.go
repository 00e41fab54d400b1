// Package tui implements the framecast presenter interface.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/framecast/framecast/internal/models"
	"github.com/framecast/framecast/internal/presentation"
	"github.com/framecast/framecast/internal/scene"
	"github.com/framecast/framecast/internal/tui/components"
	"github.com/framecast/framecast/internal/tui/styles"
)

// Config assembles the collaborators for a presenter session.
type Config struct {
	DocumentID   string
	DocumentName string

	// Source holds the live scene, swapped on file reload.
	Source *scene.Source

	// Store persists the custom slide order. May be nil.
	Store presentation.OrderStore

	// Recorder appends to the event log. May be nil.
	Recorder presentation.EventRecorder

	// Watcher delivers reparsed scenes on document change. May be nil.
	Watcher *scene.Watcher

	Theme       string
	ZoomFill    float64
	AnimationMS int
	Logger      zerolog.Logger
}

const (
	listWidth = 32
	minWidth  = 60
	minHeight = 15
)

// Model is the bubbletea model hosting the sequencing controller.
type Model struct {
	cfg        config
	styles     styles.Styles
	controller *presentation.Controller
	camera     *cameraAnimator
	source     *scene.Source
	watcher    *scene.Watcher
	logger     zerolog.Logger

	width  int
	height int
	cursor int
	status string
}

type config struct {
	documentID   string
	documentName string
}

// New builds the presenter model and its controller.
func New(cfg Config) (*Model, error) {
	zoomFill := cfg.ZoomFill
	if zoomFill <= 0 || zoomFill > 1 {
		zoomFill = presentation.DefaultZoomFill
	}

	camera := newCameraAnimator(time.Duration(cfg.AnimationMS) * time.Millisecond)

	controller, err := presentation.NewController(cfg.DocumentID, cfg.Source, cfg.Store,
		presentation.WithViewport(camera),
		presentation.WithEventRecorder(cfg.Recorder),
		presentation.WithNavigateOptions(presentation.NavigateOptions{
			FitToViewport: true,
			ZoomFill:      zoomFill,
			Animate:       cfg.AnimationMS > 0,
		}),
		presentation.WithLogger(cfg.Logger),
	)
	if err != nil {
		return nil, err
	}

	return &Model{
		cfg: config{
			documentID:   cfg.DocumentID,
			documentName: cfg.DocumentName,
		},
		styles:     styles.BuildStyles(styles.ThemeByName(cfg.Theme)),
		controller: controller,
		camera:     camera,
		source:     cfg.Source,
		watcher:    cfg.Watcher,
		logger:     cfg.Logger,
	}, nil
}

// Run launches the presenter program.
func Run(cfg Config) error {
	model, err := New(cfg)
	if err != nil {
		return err
	}
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd()}
	if m.watcher != nil {
		cmds = append(cmds, waitForSceneCmd(m.watcher))
	}
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	ctx := context.Background()

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(ctx, msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.camera.SetViewport(m.canvasSize())

	case tickMsg:
		m.camera.Step(time.Time(msg))
		return m, tickCmd()

	case sceneReloadedMsg:
		m.source.Swap(msg.Scene)
		if err := m.controller.RefreshFrames(ctx); err != nil {
			m.status = fmt.Sprintf("Reload: %v", err)
		} else {
			m.status = "Document reloaded"
		}
		m.clampCursor(ctx)
		return m, waitForSceneCmd(m.watcher)

	case watcherClosedMsg:
		m.status = "File watching stopped"
	}

	return m, nil
}

func (m *Model) handleKey(ctx context.Context, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.controller.Stop(ctx)
		return m, tea.Quit

	case "esc":
		m.controller.Stop(ctx)
		m.status = ""

	case "enter":
		if err := m.controller.Start(ctx); err != nil {
			m.status = fmt.Sprintf("Start: %v", err)
		} else if !m.controller.Session().Active {
			m.status = "Nothing to present"
		} else {
			m.status = ""
		}

	case " ", "n", "right":
		m.controller.Next(ctx)

	case "p", "left":
		m.controller.Previous(ctx)

	case "j", "down":
		m.cursor++
		m.clampCursor(ctx)

	case "k", "up":
		m.cursor--
		m.clampCursor(ctx)

	case "J":
		m.moveSelected(ctx, m.cursor+1)

	case "K":
		m.moveSelected(ctx, m.cursor-1)

	case "r":
		if err := m.controller.RefreshFrames(ctx); err != nil {
			m.status = fmt.Sprintf("Refresh: %v", err)
		} else {
			m.status = "Frames refreshed"
		}
		m.clampCursor(ctx)
	}

	return m, nil
}

func (m *Model) moveSelected(ctx context.Context, to int) {
	order := m.visibleOrder(ctx)
	if to < 0 || to >= len(order) {
		return
	}
	if err := m.controller.Reorder(ctx, m.cursor, to); err != nil {
		m.status = fmt.Sprintf("Reorder: %v", err)
		return
	}
	m.cursor = to
	m.status = ""
}

// visibleOrder is the session order while presenting, the reconciled
// stored order otherwise.
func (m *Model) visibleOrder(ctx context.Context) models.Sequence {
	session := m.controller.Session()
	if session.Active {
		return session.Sequence
	}
	return m.controller.Order(ctx)
}

func (m *Model) clampCursor(ctx context.Context) {
	n := len(m.visibleOrder(ctx))
	if n == 0 {
		m.cursor = 0
		return
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= n {
		m.cursor = n - 1
	}
}

func (m *Model) canvasSize() (int, int) {
	// Header, status, and help rows plus panel borders.
	width := m.width - listWidth - 1
	height := m.height - 4
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return width, height
}

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.width < minWidth || m.height < minHeight {
		return fmt.Sprintf("%s\n%s\n",
			m.styles.Warning.Render(fmt.Sprintf("Terminal too small (%dx%d).", m.width, m.height)),
			m.styles.Muted.Render(fmt.Sprintf("Resize to at least %dx%d.", minWidth, minHeight)))
	}

	ctx := context.Background()
	session := m.controller.Session()
	order := m.visibleOrder(ctx)
	sceneRef := m.source.Scene()

	highlightID := ""
	if highlight := m.controller.Highlight(); highlight != nil {
		highlightID = highlight.ID
	}

	header := m.renderHeader(session, len(order))

	canvasW, canvasH := m.canvasSize()
	canvas := components.RenderCanvas(m.styles, components.CanvasData{
		Scene:       sceneRef,
		Camera:      m.camera.Camera(),
		HighlightID: highlightID,
		Presenting:  session.Active,
	}, canvasW, canvasH)

	labels := make(map[string]string, len(order))
	if sceneRef != nil {
		for _, frame := range order {
			labels[frame.ID] = sceneRef.FrameLabel(frame.ID)
		}
	}
	list := components.RenderFrameList(m.styles, components.FrameListData{
		Frames:     order,
		Labels:     labels,
		ActiveID:   highlightID,
		Cursor:     m.cursor,
		Presenting: session.Active,
	}, listWidth)

	main := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(canvasW).Height(canvasH).Render(canvas),
		list,
	)

	footer := components.RenderHelpBar(m.styles, session.Active)
	if m.status != "" {
		footer = m.styles.Warning.Render(m.status) + m.styles.HelpText.Render("  |  ") + footer
	}

	return strings.Join([]string{header, main, footer}, "\n") + "\n"
}

func (m *Model) renderHeader(session presentation.Session, total int) string {
	parts := []string{
		m.styles.Title.Render(m.cfg.documentName),
		components.RenderSessionBadge(m.styles, session.Active),
	}
	if session.Active {
		parts = append(parts, components.RenderSlideCounter(m.styles, session.ActiveIndex+1, session.Len()))
	} else {
		parts = append(parts, m.styles.Muted.Render(fmt.Sprintf("%d slides", total)))
	}
	return strings.Join(parts, m.styles.Muted.Render("  "))
}
