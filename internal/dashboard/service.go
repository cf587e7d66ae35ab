package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"workbench/internal/platform/localstore"
	"workbench/internal/platform/metrics"
	"workbench/internal/session"
	id "workbench/pkg/domain"
	dErrors "workbench/pkg/domain-errors"
	audit "workbench/pkg/platform/audit"
	"workbench/pkg/platform/sentinel"
)

// NewWidget is the command input for AddWidget; the id is assigned here.
type NewWidget struct {
	Type        WidgetType
	Title       string
	Config      map[string]any
	Position    Position
	Size        Size
	IsVisible   bool
	IsResizable bool
	IsDraggable bool
	MinSize     *Size
	MaxSize     *Size
}

// WidgetPatch carries partial widget updates; nil fields are left untouched.
type WidgetPatch struct {
	Title       *string
	Config      map[string]any
	Position    *Position
	Size        *Size
	IsVisible   *bool
	IsResizable *bool
	IsDraggable *bool
}

// NewLayout is the command input for SaveLayout.
type NewLayout struct {
	Name      string
	UserID    id.UserID
	IsDefault bool
	Widgets   []Widget
}

// Service owns the visible widget set and the active-layout selection. Every
// widget mutation is applied to both the flat view and the owning layout's
// stored copy so they never diverge, and stamps the layout's updated time.
type Service struct {
	store   Store
	local   *localstore.Store
	trail   *audit.Publisher
	metrics *metrics.Metrics
	logger  *slog.Logger

	mu       sync.RWMutex
	activeID id.LayoutID
	widgets  []Widget
	editing  bool

	now func() time.Time
}

func NewService(store Store, local *localstore.Store, trail *audit.Publisher, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		store:   store,
		local:   local,
		trail:   trail,
		metrics: m,
		logger:  logger,
		now:     time.Now,
	}
}

// Restore loads the persisted snapshot, seeding the default layout when no
// snapshot exists. The flat widget view is rebuilt from the active layout.
func (s *Service) Restore(ctx context.Context) error {
	var snap Snapshot
	err := sentinel.ErrNotFound
	if s.local != nil {
		err = s.local.Load(StorageKey, &snap)
	}
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		def := DefaultLayout(s.now())
		snap = Snapshot{Layouts: []Layout{def}, ActiveLayoutID: string(def.ID)}
	case err != nil:
		return fmt.Errorf("restore dashboard: %w", err)
	}

	if err := s.store.ReplaceAll(ctx, snap.Layouts); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeID = id.LayoutID(snap.ActiveLayoutID)
	s.widgets = nil
	for _, l := range snap.Layouts {
		if l.ID == s.activeID {
			s.widgets = cloneWidgets(l.Widgets)
			break
		}
	}
	return nil
}

// Widgets returns the visible widget set.
func (s *Service) Widgets() []Widget {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneWidgets(s.widgets)
}

// ActiveLayoutID returns the current selection; empty when every layout has
// been deleted.
func (s *Service) ActiveLayoutID() id.LayoutID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeID
}

// Layouts returns every stored layout.
func (s *Service) Layouts(ctx context.Context) ([]Layout, error) {
	return s.store.All(ctx)
}

// IsEditing reports the global edit toggle.
func (s *Service) IsEditing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.editing
}

// SetEditMode flips the global edit toggle. Widgets are draggable and
// resizable only while editing is on and their own flags allow it.
func (s *Service) SetEditMode(ctx context.Context, sess *session.Session, editing bool) error {
	if editing && !session.HasCapability(sess, session.CapabilityManageWidgets) {
		return dErrors.New(dErrors.CodeForbidden, "session cannot manage widgets")
	}
	s.mu.Lock()
	s.editing = editing
	s.mu.Unlock()
	return nil
}

// SetActiveLayout replaces the visible widget set with the target layout's
// widgets wholesale. found=false reports an unknown id; nothing changes.
func (s *Service) SetActiveLayout(ctx context.Context, sess *session.Session, layoutID id.LayoutID) (bool, error) {
	layout, err := s.store.Get(ctx, string(layoutID))
	if errors.Is(err, sentinel.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, dErrors.Wrap(dErrors.CodeInternal, "load layout", err)
	}

	s.mu.Lock()
	s.activeID = layout.ID
	s.widgets = cloneWidgets(layout.Widgets)
	s.mu.Unlock()

	s.trail.Emit(ctx, audit.Entry{
		Actor:   actorOf(sess),
		Action:  audit.ActionLayoutSwitched,
		Subject: string(layoutID),
	})
	s.persist(ctx)
	return true, nil
}

// AddWidget appends a widget to the visible set and the active layout.
func (s *Service) AddWidget(ctx context.Context, sess *session.Session, input NewWidget) (Widget, error) {
	if !session.HasCapability(sess, session.CapabilityManageWidgets) {
		return Widget{}, dErrors.New(dErrors.CodeForbidden, "session cannot manage widgets")
	}

	w := Widget{
		ID:          id.NewWidgetID(),
		Type:        input.Type,
		Title:       input.Title,
		Config:      input.Config,
		Position:    input.Position,
		Size:        input.Size,
		IsVisible:   input.IsVisible,
		IsResizable: input.IsResizable,
		IsDraggable: input.IsDraggable,
		MinSize:     input.MinSize,
		MaxSize:     input.MaxSize,
	}

	if err := s.mutateActive(ctx, func(widgets []Widget) ([]Widget, bool) {
		return append(widgets, w), true
	}); err != nil {
		return Widget{}, err
	}

	s.trail.Emit(ctx, audit.Entry{
		Actor:   sess.UserID,
		Action:  audit.ActionWidgetAdded,
		Subject: w.ID.String(),
		Detail:  map[string]string{"type": string(w.Type), "title": w.Title},
	})
	s.persist(ctx)
	return w, nil
}

// RemoveWidget drops the widget from the visible set and the active layout.
// found=false reports an unknown id.
func (s *Service) RemoveWidget(ctx context.Context, sess *session.Session, widgetID id.WidgetID) (bool, error) {
	if !session.HasCapability(sess, session.CapabilityManageWidgets) {
		return false, dErrors.New(dErrors.CodeForbidden, "session cannot manage widgets")
	}

	found := false
	if err := s.mutateActive(ctx, func(widgets []Widget) ([]Widget, bool) {
		out := widgets[:0]
		for _, w := range widgets {
			if w.ID == widgetID {
				found = true
				continue
			}
			out = append(out, w)
		}
		return out, found
	}); err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}

	s.trail.Emit(ctx, audit.Entry{
		Actor:   sess.UserID,
		Action:  audit.ActionWidgetRemoved,
		Subject: widgetID.String(),
	})
	s.persist(ctx)
	return true, nil
}

// UpdateWidget merges the patch into the widget in both the visible set and
// the active layout. Sizes are taken as given; min/max bounds are advisory
// hints for the resize surface, not store-enforced invariants.
func (s *Service) UpdateWidget(ctx context.Context, sess *session.Session, widgetID id.WidgetID, patch WidgetPatch) (Widget, bool, error) {
	if !session.HasCapability(sess, session.CapabilityManageWidgets) {
		return Widget{}, false, dErrors.New(dErrors.CodeForbidden, "session cannot manage widgets")
	}

	var updated Widget
	found := false
	if err := s.mutateActive(ctx, func(widgets []Widget) ([]Widget, bool) {
		for i, w := range widgets {
			if w.ID != widgetID {
				continue
			}
			widgets[i] = applyWidgetPatch(w, patch)
			updated = widgets[i]
			found = true
			break
		}
		return widgets, found
	}); err != nil {
		return Widget{}, false, err
	}
	if !found {
		return Widget{}, false, nil
	}

	s.trail.Emit(ctx, audit.Entry{
		Actor:   sess.UserID,
		Action:  audit.ActionWidgetUpdated,
		Subject: widgetID.String(),
	})
	s.persist(ctx)
	return updated, true, nil
}

// UpdateWidgetPosition moves the widget to an absolute grid position.
func (s *Service) UpdateWidgetPosition(ctx context.Context, sess *session.Session, widgetID id.WidgetID, pos Position) (bool, error) {
	_, found, err := s.UpdateWidget(ctx, sess, widgetID, WidgetPatch{Position: &pos})
	return found, err
}

// UpdateWidgetSize resizes the widget in grid cells.
func (s *Service) UpdateWidgetSize(ctx context.Context, sess *session.Session, widgetID id.WidgetID, size Size) (bool, error) {
	_, found, err := s.UpdateWidget(ctx, sess, widgetID, WidgetPatch{Size: &size})
	return found, err
}

// CommitDrag translates a released drag's pixel delta into a grid move.
// moved=false when the rounded delta is zero, the widget is unknown, the
// widget is not draggable, or editing is off; none of those mutate anything.
func (s *Service) CommitDrag(ctx context.Context, sess *session.Session, widgetID id.WidgetID, dx, dy float64) (Widget, bool, error) {
	if !session.HasCapability(sess, session.CapabilityManageWidgets) {
		return Widget{}, false, dErrors.New(dErrors.CodeForbidden, "session cannot manage widgets")
	}
	if !s.IsEditing() {
		return Widget{}, false, nil
	}

	s.mu.RLock()
	var target *Widget
	for i := range s.widgets {
		if s.widgets[i].ID == widgetID {
			target = &s.widgets[i]
			break
		}
	}
	if target == nil || !target.IsDraggable {
		s.mu.RUnlock()
		return Widget{}, false, nil
	}
	next, moved := CommitDelta(target.Position, dx, dy)
	s.mu.RUnlock()
	if !moved {
		return Widget{}, false, nil
	}

	updated, found, err := s.UpdateWidget(ctx, sess, widgetID, WidgetPatch{Position: &next})
	if err != nil || !found {
		return Widget{}, false, err
	}

	s.metrics.WidgetMoves.Inc()
	s.trail.Emit(ctx, audit.Entry{
		Actor:   sess.UserID,
		Action:  audit.ActionWidgetMoved,
		Subject: widgetID.String(),
		Detail: map[string]string{
			"x": strconv.Itoa(next.X),
			"y": strconv.Itoa(next.Y),
		},
	})
	return updated, true, nil
}

// SaveLayout stores a new named layout. It does not switch to it.
func (s *Service) SaveLayout(ctx context.Context, sess *session.Session, input NewLayout) (Layout, error) {
	if !session.HasCapability(sess, session.CapabilityManageWidgets) {
		return Layout{}, dErrors.New(dErrors.CodeForbidden, "session cannot manage widgets")
	}

	now := s.now()
	layout := Layout{
		ID:        id.NewLayoutID(),
		Name:      input.Name,
		UserID:    input.UserID,
		IsDefault: input.IsDefault,
		Widgets:   cloneWidgets(input.Widgets),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Upsert(ctx, layout); err != nil {
		return Layout{}, dErrors.Wrap(dErrors.CodeInternal, "save layout", err)
	}

	s.trail.Emit(ctx, audit.Entry{
		Actor:   sess.UserID,
		Action:  audit.ActionLayoutSaved,
		Subject: layout.ID.String(),
		Detail:  map[string]string{"name": layout.Name},
	})
	s.persist(ctx)
	return layout, nil
}

// DeleteLayout removes a layout. Deleting the active layout falls back to the
// first remaining one, or to an empty dashboard when none remain.
func (s *Service) DeleteLayout(ctx context.Context, sess *session.Session, layoutID id.LayoutID) (bool, error) {
	if !session.HasCapability(sess, session.CapabilityManageWidgets) {
		return false, dErrors.New(dErrors.CodeForbidden, "session cannot manage widgets")
	}

	err := s.store.Delete(ctx, string(layoutID))
	if errors.Is(err, sentinel.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, dErrors.Wrap(dErrors.CodeInternal, "delete layout", err)
	}

	s.mu.Lock()
	if s.activeID == layoutID {
		remaining, listErr := s.store.All(ctx)
		if listErr != nil {
			s.mu.Unlock()
			return false, dErrors.Wrap(dErrors.CodeInternal, "delete layout", listErr)
		}
		if len(remaining) > 0 {
			s.activeID = remaining[0].ID
			s.widgets = cloneWidgets(remaining[0].Widgets)
		} else {
			s.activeID = ""
			s.widgets = nil
		}
	}
	s.mu.Unlock()

	s.trail.Emit(ctx, audit.Entry{
		Actor:   sess.UserID,
		Action:  audit.ActionLayoutDeleted,
		Subject: string(layoutID),
	})
	s.persist(ctx)
	return true, nil
}

// ResetToDefault discards every layout and reinstates the seed state.
func (s *Service) ResetToDefault(ctx context.Context, sess *session.Session) error {
	if !session.HasCapability(sess, session.CapabilityManageWidgets) {
		return dErrors.New(dErrors.CodeForbidden, "session cannot manage widgets")
	}

	def := DefaultLayout(s.now())
	if err := s.store.ReplaceAll(ctx, []Layout{def}); err != nil {
		return dErrors.Wrap(dErrors.CodeInternal, "reset layouts", err)
	}

	s.mu.Lock()
	s.activeID = def.ID
	s.widgets = cloneWidgets(def.Widgets)
	s.editing = false
	s.mu.Unlock()

	s.trail.Emit(ctx, audit.Entry{
		Actor:  sess.UserID,
		Action: audit.ActionLayoutReset,
	})
	s.persist(ctx)
	return nil
}

// mutateActive applies fn to the visible widget slice and, when fn reports a
// change, mirrors the result into the active layout's stored copy with a
// fresh updated stamp.
func (s *Service) mutateActive(ctx context.Context, fn func([]Widget) ([]Widget, bool)) error {
	s.mu.Lock()
	next, changed := fn(cloneWidgets(s.widgets))
	if !changed {
		s.mu.Unlock()
		return nil
	}
	s.widgets = next
	activeID := s.activeID
	s.mu.Unlock()

	layout, err := s.store.Get(ctx, string(activeID))
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil
	}
	if err != nil {
		return dErrors.Wrap(dErrors.CodeInternal, "load active layout", err)
	}
	layout.Widgets = cloneWidgets(next)
	layout.UpdatedAt = s.now()
	if err := s.store.Upsert(ctx, layout); err != nil {
		return dErrors.Wrap(dErrors.CodeInternal, "update active layout", err)
	}
	return nil
}

func (s *Service) persist(ctx context.Context) {
	if s.local == nil {
		return
	}
	layouts, err := s.store.All(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "dashboard snapshot read failed", "error", err)
		return
	}
	s.mu.RLock()
	activeID := string(s.activeID)
	s.mu.RUnlock()
	if err := s.local.Save(StorageKey, Snapshot{Layouts: layouts, ActiveLayoutID: activeID}); err != nil {
		s.logger.WarnContext(ctx, "dashboard snapshot save failed", "error", err)
	}
}

func applyWidgetPatch(w Widget, p WidgetPatch) Widget {
	if p.Title != nil {
		w.Title = *p.Title
	}
	if p.Config != nil {
		w.Config = p.Config
	}
	if p.Position != nil {
		w.Position = *p.Position
	}
	if p.Size != nil {
		w.Size = clampSize(*p.Size, w.MinSize, w.MaxSize)
	}
	if p.IsVisible != nil {
		w.IsVisible = *p.IsVisible
	}
	if p.IsResizable != nil {
		w.IsResizable = *p.IsResizable
	}
	if p.IsDraggable != nil {
		w.IsDraggable = *p.IsDraggable
	}
	return w
}

// clampSize bounds a requested size by the widget's min/max when set.
func clampSize(size Size, min, max *Size) Size {
	if min != nil {
		if size.Width < min.Width {
			size.Width = min.Width
		}
		if size.Height < min.Height {
			size.Height = min.Height
		}
	}
	if max != nil {
		if size.Width > max.Width {
			size.Width = max.Width
		}
		if size.Height > max.Height {
			size.Height = max.Height
		}
	}
	return size
}

func cloneWidgets(in []Widget) []Widget {
	out := make([]Widget, len(in))
	copy(out, in)
	return out
}

func actorOf(sess *session.Session) id.UserID {
	if sess == nil {
		return ""
	}
	return sess.UserID
}
