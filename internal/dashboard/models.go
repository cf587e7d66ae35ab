// Package dashboard owns widget placement: layouts, the active widget set,
// grid geometry, and the drag commit path.
package dashboard

import (
	"time"

	"workbench/internal/calendar"
	"workbench/internal/event"
	id "workbench/pkg/domain"
)

// WidgetType tags which feature a widget hosts.
type WidgetType string

const (
	WidgetTRCCalendar  WidgetType = "trc_calendar"
	WidgetAuditHistory WidgetType = "audit_history"
)

// Position is a widget's grid coordinate, origin top-left, never negative.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size is a widget's span in grid cells.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Widget is one positioned panel. Config is the free-form map the hosted
// feature interprets; the calendar's contract lives in the calendar package.
type Widget struct {
	ID          id.WidgetID    `json:"id"`
	Type        WidgetType     `json:"type"`
	Title       string         `json:"title"`
	Config      map[string]any `json:"config,omitempty"`
	Position    Position       `json:"position"`
	Size        Size           `json:"size"`
	IsVisible   bool           `json:"isVisible"`
	IsResizable bool           `json:"isResizable"`
	IsDraggable bool           `json:"isDraggable"`
	MinSize     *Size          `json:"minSize,omitempty"`
	MaxSize     *Size          `json:"maxSize,omitempty"`
}

// Layout is a named widget set. Exactly one layout is active at a time;
// switching replaces the visible widgets wholesale.
type Layout struct {
	ID        id.LayoutID `json:"id"`
	Name      string      `json:"name"`
	UserID    id.UserID   `json:"userId"`
	IsDefault bool        `json:"isDefault"`
	Widgets   []Widget    `json:"widgets"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// DefaultLayoutID is the seed layout's fixed id so resets land on it.
const DefaultLayoutID id.LayoutID = "default-layout"

// DefaultLayout is the seed state on first run and after a reset.
func DefaultLayout(now time.Time) Layout {
	return Layout{
		ID:        DefaultLayoutID,
		Name:      "Default Layout",
		UserID:    "current-user",
		IsDefault: true,
		Widgets:   defaultWidgets(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func defaultWidgets() []Widget {
	return []Widget{
		{
			ID:    "trc-calendar-1",
			Type:  WidgetTRCCalendar,
			Title: "TRC Events Calendar",
			Config: map[string]any{
				"view": string(calendar.ViewMonth),
				"showEventTypes": []string{
					string(event.TypeInternalAudit),
					string(event.TypeRegulatoryAudit),
					string(event.TypeRecertification),
					string(event.TypeCoreIssue),
				},
				"enableAdmin": true,
			},
			Position:    Position{X: 0, Y: 0},
			Size:        Size{Width: 8, Height: 6},
			IsVisible:   true,
			IsResizable: true,
			IsDraggable: true,
			MinSize:     &Size{Width: 4, Height: 4},
			MaxSize:     &Size{Width: 12, Height: 8},
		},
	}
}
