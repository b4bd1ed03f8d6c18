// --- START OF FINAL REVISED FILE internal/cli/ui/model.go ---
package ui

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/manasrathbsw/office-doc2pdf/internal/cli/hooks" // Import hooks for message types
	"github.com/manasrathbsw/office-doc2pdf/pkg/batch"
)

// --- Constants ---

const listHeightMargin = 4 // Adjust based on header/footer/padding

// --- Model Struct ---

// Model represents the state of the TUI application.
// It holds UI components (list, spinner), layout dimensions, application status,
// aggregated summary statistics, and the list of items being converted.
type Model struct {
	// list is the bubbletea component responsible for displaying the scrollable list of items.
	list list.Model
	// spinner is the bubbletea component indicating background activity.
	spinner spinner.Model
	// width is the current terminal width, updated on WindowSizeMsg.
	width int
	// height is the current terminal height, updated on WindowSizeMsg.
	height int
	// initialized tracks if the model has received initial dimensions.
	initialized bool
	// appVersion is shown in the header.
	appVersion string
	// docItems holds the internal data for each item displayed in the list.
	// Access MUST be protected by listLock for concurrent updates.
	docItems []listItem
	// summary tracks the aggregated counts and timing for the current run.
	summary Summary
	// phaseMessage displays the current overall stage of the application (e.g., Collecting, Converting).
	phaseMessage string
	// cancelledNote is shown when the run finished early due to cancellation.
	cancelledNote string
	// quitting indicates if the user has initiated a shutdown (e.g., via 'q' or Ctrl+C).
	quitting bool
	// processTime maps item paths to their processing start time, used for calculating duration.
	processTime map[string]time.Time
	// itemMap maps item paths to their index in docItems for efficient updates.
	// Access MUST be protected by listLock.
	itemMap map[string]int
	// listLock synchronizes concurrent access to docItems and itemMap from hook messages.
	listLock sync.Mutex
	// debounceTimer manages debouncing for list updates to prevent excessive rendering.
	debounceTimer *time.Timer
}

// listItem represents a single document in the TUI list.
type listItem struct {
	path     string        // Relative path
	status   batch.Status  // Current conversion status
	message  string        // Failure message, if any
	duration time.Duration // Conversion duration for this item
}

// Summary holds the aggregated statistics displayed in the TUI footer.
type Summary struct {
	TotalItems     int
	ConvertedCount int
	CopiedCount    int
	FailedCount    int
	StartTime      time.Time
}

// --- Bubble Tea Interface Implementations ---

// Init initializes the TUI model and starts the spinner using a pointer receiver.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick // Start the spinner animation
}

// Update handles incoming messages (user input, hook events) and updates the model state using a pointer receiver.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var listCmd tea.Cmd

	switch msg := msg.(type) {
	// --- Internal Bubble Tea Messages ---
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		listHeight := m.height - listHeightMargin
		if listHeight < 1 {
			listHeight = 1 // Ensure list height is at least 1
		}
		m.list.SetSize(m.width, listHeight)
		m.initialized = true

	case tea.KeyMsg:
		// Prevent list navigation when quitting
		if m.quitting {
			return m, nil
		}
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		}
		// Pass other keys to the list component for navigation
		m.list, listCmd = m.list.Update(msg)
		cmds = append(cmds, listCmd)

	case spinner.TickMsg:
		if m.quitting {
			return m, nil
		}
		var spinnerCmd tea.Cmd
		m.spinner, spinnerCmd = m.spinner.Update(msg)
		cmds = append(cmds, spinnerCmd)

	// --- Custom Messages from Library Hooks ---
	case hooks.ItemDiscoveredMsg:
		m.listLock.Lock()
		if _, exists := m.itemMap[msg.Path]; !exists {
			newItem := listItem{path: msg.Path, status: batch.StatusPending}
			m.docItems = append(m.docItems, newItem)
			m.itemMap[msg.Path] = len(m.docItems) - 1 // Store index
			m.summary.TotalItems++
			cmds = append(cmds, m.debounceListUpdate())
		}
		m.listLock.Unlock()
		if !m.quitting && (m.phaseMessage == "" || m.phaseMessage == "Initializing...") {
			m.phaseMessage = "Collecting..."
		}

	case hooks.ItemStatusUpdateMsg:
		m.listLock.Lock()
		if idx, ok := m.itemMap[msg.Path]; ok && idx < len(m.docItems) {
			currentItem := &m.docItems[idx] // Get pointer to modify in place

			// Calculate duration if moving to a final state
			if isFinalStatus(msg.Status) && currentItem.status == batch.StatusProcessing {
				if startTime, found := m.processTime[msg.Path]; found {
					currentItem.duration = time.Since(startTime)
					delete(m.processTime, msg.Path) // Clean up start time
				}
			} else if msg.Status == batch.StatusProcessing {
				// Store start time when processing begins
				m.processTime[msg.Path] = time.Now()
				currentItem.duration = 0 // Reset duration
			}

			// Update counts only when status changes *to* a final state
			oldStatusIsFinal := isFinalStatus(currentItem.status)
			newStatusIsFinal := isFinalStatus(msg.Status)

			if newStatusIsFinal && !oldStatusIsFinal {
				m.incrementSummaryCount(msg.Status)
			} else if !newStatusIsFinal && oldStatusIsFinal {
				// If somehow reverting from final state, decrement old count
				m.decrementSummaryCount(currentItem.status)
			}

			currentItem.status = msg.Status
			currentItem.message = msg.Message

			cmds = append(cmds, m.debounceListUpdate())
		} else {
			// Status update for unknown item: add it (discovery msg missed/delayed)
			newItem := listItem{path: msg.Path, status: msg.Status, message: msg.Message, duration: msg.Duration}
			m.docItems = append(m.docItems, newItem)
			m.itemMap[msg.Path] = len(m.docItems) - 1
			m.summary.TotalItems++
			m.incrementSummaryCount(msg.Status)
			cmds = append(cmds, m.debounceListUpdate())
		}
		m.listLock.Unlock()

		if !m.quitting && m.phaseMessage != "Converting..." && msg.Status == batch.StatusProcessing {
			m.phaseMessage = "Converting..."
		}

	case hooks.RunCompleteMsg:
		m.phaseMessage = "Complete"
		// Update summary with final verified counts from the result
		m.summary.TotalItems = msg.Result.Summary.TotalItems
		m.summary.ConvertedCount = msg.Result.Summary.ConvertedCount
		m.summary.CopiedCount = msg.Result.Summary.CopiedCount
		m.summary.FailedCount = msg.Result.Summary.FailedCount
		if msg.Result.Summary.Cancelled {
			m.cancelledNote = "Run cancelled before all items were processed."
		}
		// Stop the spinner on completion; the user quits with q/Ctrl+C.

	case UpdateListMsg: // Message sent by debounceListUpdate
		m.listLock.Lock()
		items := make([]list.Item, len(m.docItems))
		for i, item := range m.docItems {
			items[i] = item // Convert internal listItem to list.Item
		}
		m.listLock.Unlock()
		cmds = append(cmds, m.list.SetItems(items))
	}

	if listCmd != nil {
		cmds = append(cmds, listCmd)
	}

	return m, tea.Batch(cmds...)
}

// View renders the current state of the TUI model to a string using a pointer receiver.
func (m *Model) View() string {
	if m.quitting {
		return "Exiting...\n"
	}
	if !m.initialized {
		return "Initializing..."
	}

	// --- Header ---
	headerLeft := fmt.Sprintf("office-doc2pdf v%s", m.appVersion)
	headerRight := m.phaseMessage
	if m.phaseMessage != "Complete" && m.phaseMessage != "Initializing..." {
		headerRight = m.spinner.View() + " " + m.phaseMessage
	}
	headerCenter := ""
	headerWidth := m.width - lipgloss.Width(headerLeft) - lipgloss.Width(headerRight)
	if headerWidth > 0 {
		headerCenter = lipgloss.PlaceHorizontal(headerWidth, lipgloss.Center, " ")
	}
	header := HeaderStyle.Width(m.width).Render(lipgloss.JoinHorizontal(lipgloss.Top, headerLeft, headerCenter, headerRight))

	// --- Footer ---
	elapsed := time.Since(m.summary.StartTime).Round(time.Millisecond)
	summaryText := fmt.Sprintf(
		"Converted: %d | Copied: %d | Failed: %d | Total: %d | Elapsed: %s",
		m.summary.ConvertedCount,
		m.summary.CopiedCount,
		m.summary.FailedCount,
		m.summary.TotalItems,
		elapsed,
	)
	footerLeft := summaryText
	footerRight := "q: quit"
	footerWidth := m.width - lipgloss.Width(footerLeft) - lipgloss.Width(footerRight)
	footerCenter := ""
	if footerWidth > 0 {
		footerCenter = lipgloss.PlaceHorizontal(footerWidth, lipgloss.Center, " ")
	}
	footer := FooterStyle.Width(m.width).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, footerLeft, footerCenter, footerRight))

	// --- Main Content (List) ---
	listView := m.list.View()

	// --- Cancellation Notice (if any) ---
	noteView := ""
	if m.cancelledNote != "" {
		noteView = StatusStyleFailed.Render(m.cancelledNote) + "\n"
	}

	// --- Assembly ---
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		listView,
		noteView, // Empty unless the run was cancelled
		footer,
	)
}

// --- Helper Methods ---

// NewModel creates the initial model for the TUI.
func NewModel(appVersion string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205")) // Pink spinner

	delegate := list.NewDefaultDelegate()
	// Customize delegate appearance
	delegate.SetSpacing(0) // Remove extra spacing between items
	delegate.ShowDescription = true
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(ColorSelectedFg).
		Background(ColorSelectedBg).
		Bold(true).
		Padding(0, 0, 0, 1) // Add left padding
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(ColorSelectedDescFg).
		Background(ColorSelectedBg).
		Padding(0, 0, 0, 1) // Add left padding
	delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.
		Foreground(ColorNormalFg).Padding(0, 0, 0, 1)
	delegate.Styles.NormalDesc = delegate.Styles.NormalDesc.
		Foreground(ColorNormalDescFg).Padding(0, 0, 0, 1)

	// Configure the list component
	l := list.New([]list.Item{}, delegate, 0, 0) // Initial size 0x0
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowTitle(false)
	l.SetShowFilter(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings() // Use our own quit logic

	return Model{
		list:         l,
		spinner:      s,
		appVersion:   appVersion,
		summary:      Summary{StartTime: time.Now()},
		phaseMessage: "Initializing...",
		docItems:     make([]listItem, 0, 256), // Preallocate slightly
		itemMap:      make(map[string]int),
		processTime:  make(map[string]time.Time),
	}
}

// isFinalStatus checks if a status represents a terminal state for an item.
func isFinalStatus(status batch.Status) bool {
	return status == batch.StatusConverted ||
		status == batch.StatusCopied ||
		status == batch.StatusFailed
}

// incrementSummaryCount updates summary counts based on the new final status.
// MUST be called with listLock held.
func (m *Model) incrementSummaryCount(status batch.Status) {
	switch status {
	case batch.StatusConverted:
		m.summary.ConvertedCount++
	case batch.StatusCopied:
		m.summary.CopiedCount++
	case batch.StatusFailed:
		m.summary.FailedCount++
	}
}

// decrementSummaryCount reverses count updates if status changes away from final.
// MUST be called with listLock held.
func (m *Model) decrementSummaryCount(status batch.Status) {
	switch status {
	case batch.StatusConverted:
		m.summary.ConvertedCount--
	case batch.StatusCopied:
		m.summary.CopiedCount--
	case batch.StatusFailed:
		m.summary.FailedCount--
	}
}

// --- List Item Interface ---

// FilterValue implements the list.Item interface.
func (i listItem) FilterValue() string { return i.path }

// Title implements the list.Item interface.
func (i listItem) Title() string { return i.path }

// Description implements the list.Item interface.
func (i listItem) Description() string {
	var statusStyle lipgloss.Style
	statusIcon := " "
	switch i.status {
	case batch.StatusConverted:
		statusStyle = StatusStyleConverted
		statusIcon = "✓"
	case batch.StatusCopied:
		statusStyle = StatusStyleCopied
		statusIcon = "="
	case batch.StatusFailed:
		statusStyle = StatusStyleFailed
		statusIcon = "✗"
	case batch.StatusProcessing:
		statusStyle = StatusStyleProcessing
		statusIcon = "…" // Spinner rendered separately
	case batch.StatusPending:
		fallthrough
	default:
		statusStyle = StatusStylePending
		statusIcon = " "
	}

	statusStr := statusStyle.Render(fmt.Sprintf("[%s]", statusIcon))
	details := ""

	if i.status == batch.StatusFailed {
		details = i.message // Show the failure message for failed items
	} else if i.status == batch.StatusConverted || i.status == batch.StatusCopied {
		if i.duration > 0 {
			details = formatDuration(i.duration)
		}
	}
	return fmt.Sprintf("%s %s", statusStr, details)
}

// formatDuration formats duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		if d == 0 {
			return "" // Consistent: Don't display 0 duration
		}
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}

// --- Update Debouncing ---

// UpdateListMsg signals that the list component should update its items.
type UpdateListMsg struct{}

const listUpdateDebounceDuration = 50 * time.Millisecond // Update list ~20 times/sec max

// debounceListUpdate sends a message to trigger a list update after a short delay.
// This prevents excessive list updates during rapid status changes.
// MUST be called with listLock held.
func (m *Model) debounceListUpdate() tea.Cmd {
	if m.debounceTimer != nil {
		m.debounceTimer.Stop()
	}
	m.debounceTimer = time.NewTimer(listUpdateDebounceDuration)
	return func() tea.Msg {
		<-m.debounceTimer.C // Block until timer fires
		return UpdateListMsg{}
	}
}

// --- Styles ---

// Define colors (ensure contrast on both dark and light terminals)
const (
	ColorHeaderFg = lipgloss.Color("252") // Light Gray
	ColorHeaderBg = lipgloss.Color("62")  // Purple

	ColorFooterFg = lipgloss.Color("252")
	ColorFooterBg = lipgloss.Color("56") // Dark Pink/Purple

	ColorNormalFg     = lipgloss.Color("250") // Off-white
	ColorNormalDescFg = lipgloss.Color("244") // Dim gray

	ColorSelectedFg     = lipgloss.Color("255") // White
	ColorSelectedBg     = lipgloss.Color("56")  // Dark Pink/Purple
	ColorSelectedDescFg = lipgloss.Color("248") // Lighter Gray

	ColorStatusConverted  = lipgloss.Color("40")  // Green
	ColorStatusFailed     = lipgloss.Color("196") // Red
	ColorStatusCopied     = lipgloss.Color("39")  // Blue
	ColorStatusPending    = lipgloss.Color("244") // Dim gray
	ColorStatusProcessing = lipgloss.Color("205") // Pink (matches spinner)
)

// Styles (defined globally for simplicity, could be part of Model)
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorHeaderFg).
			Background(ColorHeaderBg).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorFooterFg).
			Background(ColorFooterBg).
			Padding(0, 1)

	// Status Styles (used in list delegate View or Description)
	StatusStyleConverted  = lipgloss.NewStyle().Foreground(ColorStatusConverted)
	StatusStyleFailed     = lipgloss.NewStyle().Foreground(ColorStatusFailed)
	StatusStyleCopied     = lipgloss.NewStyle().Foreground(ColorStatusCopied)
	StatusStylePending    = lipgloss.NewStyle().Foreground(ColorStatusPending)
	StatusStyleProcessing = lipgloss.NewStyle().Foreground(ColorStatusProcessing)
)

// --- END OF FINAL REVISED FILE internal/cli/ui/model.go ---
