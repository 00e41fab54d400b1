package presentation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/framecast/framecast/internal/models"
)

// Controller errors.
var (
	ErrFrameSourceRequired = errors.New("frame source is required")
	ErrDocumentIDRequired  = errors.New("document id is required")
)

// FrameSource exposes the current, non-deleted frames of a document.
// It must be callable synchronously and reflect the latest committed
// scene state.
type FrameSource interface {
	Frames() []models.FrameRef
}

// Viewport receives fire-and-forget navigation requests. Implementations
// must not block; an animation still playing is simply retargeted by the
// next request.
type Viewport interface {
	NavigateTo(frame models.FrameRef, opts NavigateOptions)
}

// HighlightSink receives the currently active frame, or nil when no frame
// is highlighted.
type HighlightSink interface {
	SetHighlight(frame *models.FrameRef)
}

// OrderStore persists the custom slide order per document. Writes are
// last-write-wins.
type OrderStore interface {
	Load(ctx context.Context, documentID string) (models.Sequence, error)
	Save(ctx context.Context, documentID string, seq models.Sequence) error
}

// EventRecorder appends entries to the presentation event log.
type EventRecorder interface {
	Create(ctx context.Context, event *models.Event) error
}

// Controller owns the presentation session for a single document. All
// operations run synchronously inside the host event loop; the host is
// responsible for serializing concurrent events before they reach the
// controller.
//
// Every operation follows an issue-then-commit discipline: the viewport
// navigation and highlight side effects are issued first, and only then is
// the new Session value committed. Committing first would let the visual
// transition observe a viewport already retargeted by the new state.
// Missing collaborators or store failures degrade the visual or durable
// side only; the logical state transition always completes.
type Controller struct {
	documentID string
	source     FrameSource
	store      OrderStore
	viewport   Viewport
	highlights HighlightSink
	events     EventRecorder
	navOpts    NavigateOptions
	logger     zerolog.Logger

	session   Session
	highlight *models.FrameRef
}

// Option configures a Controller.
type Option func(*Controller)

// WithViewport sets the viewport collaborator.
func WithViewport(v Viewport) Option {
	return func(c *Controller) { c.viewport = v }
}

// WithHighlightSink sets the highlight collaborator.
func WithHighlightSink(h HighlightSink) Option {
	return func(c *Controller) { c.highlights = h }
}

// WithEventRecorder sets the event log recorder.
func WithEventRecorder(r EventRecorder) Option {
	return func(c *Controller) { c.events = r }
}

// WithNavigateOptions overrides the viewport transition options.
func WithNavigateOptions(opts NavigateOptions) Option {
	return func(c *Controller) { c.navOpts = opts }
}

// WithLogger sets the controller logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// NewController creates a session controller for a document.
func NewController(documentID string, source FrameSource, store OrderStore, opts ...Option) (*Controller, error) {
	if documentID == "" {
		return nil, ErrDocumentIDRequired
	}
	if source == nil {
		return nil, ErrFrameSourceRequired
	}

	c := &Controller{
		documentID: documentID,
		source:     source,
		store:      store,
		navOpts:    DefaultNavigateOptions(),
		logger:     zerolog.Nop(),
		session:    IdleSession(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Session returns a copy of the current session state.
func (c *Controller) Session() Session {
	return c.session.clone()
}

// Highlight returns the currently highlighted frame, or nil.
func (c *Controller) Highlight() *models.FrameRef {
	if c.highlight == nil {
		return nil
	}
	f := *c.highlight
	return &f
}

// Order returns the slide order as currently shown to the user: the live
// session sequence while presenting, otherwise the persisted order
// reconciled against the current frame set.
func (c *Controller) Order(ctx context.Context) models.Sequence {
	if c.session.Active {
		return c.session.Sequence.Clone()
	}
	return Reconcile(c.loadOrder(ctx), c.source.Frames())
}

// Start begins a presentation session. Starting with no frames is a no-op:
// the session stays idle and no error is reported. Starting while already
// active is a no-op.
func (c *Controller) Start(ctx context.Context) error {
	if c.session.Active {
		return nil
	}

	frames := c.source.Frames()
	persisted := c.loadOrder(ctx)
	seq := Reconcile(persisted, frames)
	if len(seq) == 0 {
		c.logger.Debug().Str("document_id", c.documentID).Msg("start requested with no frames")
		return nil
	}

	first := seq[0]
	c.navigate(first)
	c.setHighlight(&first)
	c.session = Session{Active: true, Sequence: seq, ActiveIndex: 0}

	c.record(ctx, models.EventTypeSessionStarted, models.SessionStartedPayload{
		FrameCount:  len(seq),
		FirstFrame:  first.ID,
		CustomOrder: len(persisted) > 0,
	})
	return nil
}

// Stop ends the presentation session, unconditionally resetting to the
// idle, empty state and clearing the highlight.
func (c *Controller) Stop(ctx context.Context) {
	wasActive := c.session.Active
	c.setHighlight(nil)
	c.session = IdleSession()

	if wasActive {
		c.record(ctx, models.EventTypeSessionStopped, nil)
	}
}

// Next advances to the following slide, wrapping around at the end.
func (c *Controller) Next(ctx context.Context) {
	c.step(ctx, models.EventTypeSlideAdvanced, NextIndex)
}

// Previous moves to the preceding slide, wrapping around at the start.
func (c *Controller) Previous(ctx context.Context) {
	c.step(ctx, models.EventTypeSlideRewound, PreviousIndex)
}

func (c *Controller) step(ctx context.Context, eventType models.EventType, advance func(current, n int) int) {
	if !c.session.Active || len(c.session.Sequence) == 0 {
		return
	}

	from := c.session.ActiveIndex
	to := advance(from, len(c.session.Sequence))
	target := c.session.Sequence[to]

	c.navigate(target)
	c.setHighlight(&target)
	next := c.session
	next.ActiveIndex = to
	c.session = next

	c.record(ctx, eventType, models.SlideChangedPayload{
		FromIndex: from,
		ToIndex:   to,
		FrameID:   target.ID,
	})
}

// Reorder moves the slide at fromIndex to toIndex and persists the result
// as the document's custom order. It applies to the live session sequence
// while presenting and to the reconciled order otherwise, so a reorder
// made outside a session still survives the next start. Invalid indices
// are a no-op.
//
// The returned error reports a durable-store failure; the in-memory
// reorder has already been committed when it is non-nil.
func (c *Controller) Reorder(ctx context.Context, fromIndex, toIndex int) error {
	seq := c.session.Sequence
	if !c.session.Active {
		seq = Reconcile(c.loadOrder(ctx), c.source.Frames())
	}

	moved, newIndex := Reorder(seq, fromIndex, toIndex, c.session.ActiveIndex)
	if moved.Equal(seq) {
		return nil
	}

	if c.session.Active {
		next := c.session
		next.Sequence = moved
		next.ActiveIndex = newIndex
		c.session = next
	}

	c.record(ctx, models.EventTypeOrderChanged, models.OrderChangedPayload{
		FromIndex: fromIndex,
		ToIndex:   toIndex,
		Order:     moved.IDs(),
	})

	return c.saveOrder(ctx, moved)
}

// RefreshFrames reconciles the session against the current frame set after
// a scene mutation. If the active frame was removed the index clamps into
// range and the highlight and viewport are refreshed; if every frame is
// gone the session stops. When a persisted custom order exists and the
// reconciled result differs, the store is updated to match.
func (c *Controller) RefreshFrames(ctx context.Context) error {
	frames := c.source.Frames()

	if !c.session.Active {
		persisted := c.loadOrder(ctx)
		if len(persisted) == 0 {
			return nil
		}
		reconciled := Reconcile(persisted, frames)
		if reconciled.Equal(persisted) {
			return nil
		}
		return c.saveOrder(ctx, reconciled)
	}

	activeFrame, _ := c.session.ActiveFrame()
	reconciled := Reconcile(c.session.Sequence, frames)
	if len(reconciled) == 0 {
		c.Stop(ctx)
		return nil
	}

	index := reconciled.IndexOf(activeFrame.ID)
	activeRemoved := index < 0
	if activeRemoved {
		index = c.session.ActiveIndex
		if index >= len(reconciled) {
			index = len(reconciled) - 1
		}
	}

	target := reconciled[index]
	if activeRemoved {
		c.navigate(target)
	}
	c.setHighlight(&target)
	c.session = Session{Active: true, Sequence: reconciled, ActiveIndex: index}

	if persisted := c.loadOrder(ctx); len(persisted) > 0 && !reconciled.Equal(persisted) {
		return c.saveOrder(ctx, reconciled)
	}
	return nil
}

// ResetOrder discards the persisted custom order so the next session falls
// back to the positional default.
func (c *Controller) ResetOrder(ctx context.Context) error {
	if !c.session.Active {
		c.record(ctx, models.EventTypeOrderReset, nil)
		return c.saveOrder(ctx, nil)
	}

	reordered := DefaultOrder(c.source.Frames())
	if len(reordered) == 0 {
		c.Stop(ctx)
		return c.saveOrder(ctx, nil)
	}

	activeFrame, _ := c.session.ActiveFrame()
	index := reordered.IndexOf(activeFrame.ID)
	if index < 0 {
		index = 0
	}
	target := reordered[index]
	c.setHighlight(&target)
	c.session = Session{Active: true, Sequence: reordered, ActiveIndex: index}

	c.record(ctx, models.EventTypeOrderReset, nil)
	return c.saveOrder(ctx, nil)
}

// navigate issues the viewport side effect for a slide transition. A
// missing viewport only skips the visual transition.
func (c *Controller) navigate(frame models.FrameRef) {
	if c.viewport == nil {
		c.logger.Warn().Str("frame_id", frame.ID).Msg("no viewport attached, skipping navigation")
		return
	}
	c.viewport.NavigateTo(frame, c.navOpts)
}

func (c *Controller) setHighlight(frame *models.FrameRef) {
	if frame == nil {
		c.highlight = nil
	} else {
		f := *frame
		c.highlight = &f
	}
	if c.highlights != nil {
		c.highlights.SetHighlight(c.Highlight())
	}
}

func (c *Controller) loadOrder(ctx context.Context) models.Sequence {
	if c.store == nil {
		return nil
	}
	seq, err := c.store.Load(ctx, c.documentID)
	if err != nil {
		c.logger.Warn().Err(err).Str("document_id", c.documentID).Msg("failed to load persisted order")
		return nil
	}
	return seq
}

func (c *Controller) saveOrder(ctx context.Context, seq models.Sequence) error {
	if c.store == nil {
		c.logger.Warn().Str("document_id", c.documentID).Msg("no order store attached, order not persisted")
		return nil
	}
	if err := c.store.Save(ctx, c.documentID, seq); err != nil {
		c.logger.Error().Err(err).Str("document_id", c.documentID).Msg("failed to persist order")
		return fmt.Errorf("persist order for %s: %w", c.documentID, err)
	}
	return nil
}

func (c *Controller) record(ctx context.Context, eventType models.EventType, payload any) {
	if c.events == nil {
		return
	}
	event := &models.Event{
		Type:       eventType,
		EntityType: models.EntityTypeSession,
		EntityID:   c.documentID,
	}
	if payload != nil {
		data, err := marshalPayload(payload)
		if err != nil {
			c.logger.Warn().Err(err).Str("event_type", string(eventType)).Msg("failed to marshal event payload")
		} else {
			event.Payload = data
		}
	}
	if err := c.events.Create(ctx, event); err != nil {
		c.logger.Warn().Err(err).Str("event_type", string(eventType)).Msg("failed to record event")
	}
}

func marshalPayload(payload any) (json.RawMessage, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}
