package state

import (
	"github.com/charmbracelet/bubbles/viewport"
)

// UIState manages all UI-specific state for the dashboard.
// This includes viewport management, cursor position and the overlay
// toggles, kept apart from the order data the session owns.
type UIState struct {
	// Viewport management
	viewport viewport.Model
	width    int
	height   int

	// Cursor and navigation
	cursor int

	// Overlays
	showHelp  bool
	statsView bool
}

// NewUIState creates a new UIState instance with default values.
func NewUIState() *UIState {
	return &UIState{
		viewport: viewport.New(defaultViewportWidth, defaultViewportHeight),
		width:    defaultViewportWidth,
		height:   defaultViewportHeight,
		cursor:   0,
	}
}

// GetViewport returns the current viewport model.
func (u *UIState) GetViewport() *viewport.Model {
	return &u.viewport
}

// GetWidth returns the current width of the UI.
func (u *UIState) GetWidth() int {
	return u.width
}

// SetWidth updates the width of the UI.
func (u *UIState) SetWidth(width int) {
	u.width = width
	if width <= 0 {
		u.width = defaultViewportWidth
	}
}

// GetHeight returns the current height of the UI.
func (u *UIState) GetHeight() int {
	return u.height
}

// SetHeight updates the height of the UI.
func (u *UIState) SetHeight(height int) {
	u.height = height
	if height <= 0 {
		u.height = defaultViewportHeight
	}
}

// UpdateViewportSize resizes the viewport to the space left after chrome
// lines of surrounding content.
func (u *UIState) UpdateViewportSize(chrome int) {
	height := u.height - chrome
	if height < minViewportHeight {
		height = minViewportHeight
	}
	u.viewport.Width = u.width
	u.viewport.Height = height
}

// GetCursor returns the current cursor position.
func (u *UIState) GetCursor() int {
	return u.cursor
}

// SetCursor updates the cursor position.
func (u *UIState) SetCursor(cursor int) {
	u.cursor = cursor
	if u.cursor < 0 {
		u.cursor = 0
	}
}

// MoveCursorUp moves the cursor up one position if possible.
func (u *UIState) MoveCursorUp() {
	if u.cursor > 0 {
		u.cursor--
	}
}

// MoveCursorDown moves the cursor down one position if possible.
func (u *UIState) MoveCursorDown(listLen int) {
	if u.cursor < listLen-1 {
		u.cursor++
	}
}

// EnsureCursorVisible adjusts the viewport to ensure the cursor is visible.
func (u *UIState) EnsureCursorVisible(listLen int) {
	if listLen == 0 {
		u.viewport.SetYOffset(0)
		return
	}

	lineOffset := u.viewport.YOffset
	viewportHeight := u.viewport.Height

	if u.cursor < lineOffset {
		u.viewport.SetYOffset(u.cursor)
	}
	if u.cursor >= lineOffset+viewportHeight {
		u.viewport.SetYOffset(u.cursor - viewportHeight + 1)
	}
}

// AdjustCursorBounds ensures the cursor is within valid bounds.
func (u *UIState) AdjustCursorBounds(listLen int) {
	if listLen == 0 {
		u.cursor = 0
		return
	}
	if u.cursor >= listLen {
		u.cursor = listLen - 1
	}
	if u.cursor < 0 {
		u.cursor = 0
	}
}

// ResetCursor resets the cursor to the first item.
func (u *UIState) ResetCursor() {
	u.cursor = 0
}

// IsHelpVisible reports whether the key help overlay is shown.
func (u *UIState) IsHelpVisible() bool {
	return u.showHelp
}

// ToggleHelp shows or hides the key help overlay.
func (u *UIState) ToggleHelp() {
	u.showHelp = !u.showHelp
}

// IsStatsView reports whether the stats cards replace the order table.
func (u *UIState) IsStatsView() bool {
	return u.statsView
}

// ToggleStatsView switches between the order table and the stats cards.
func (u *UIState) ToggleStatsView() bool {
	u.statsView = !u.statsView
	return u.statsView
}
