package ui

import "github.com/charmbracelet/lipgloss"

// Colors used in the application.
var (
	colorPrimary   = lipgloss.Color("62")  // Purple
	colorSecondary = lipgloss.Color("241") // Gray
	colorMuted     = lipgloss.Color("240") // Darker gray
	colorHighlight = lipgloss.Color("212") // Pink
	colorSuccess   = lipgloss.Color("78")  // Green
	colorZebra     = lipgloss.Color("235")
)

// Header is the title line with the category toggle.
var Header = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Padding(0, 1)

// CategoryActive marks the selected category on the toggle.
var CategoryActive = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

// CategoryInactive is an unselected category on the toggle.
var CategoryInactive = lipgloss.NewStyle().
	Foreground(colorSecondary).
	Padding(0, 1)

// FilterBar style for the filter row.
var FilterBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Padding(0, 1)

// FilterLabel prefixes each filter control.
var FilterLabel = lipgloss.NewStyle().
	Foreground(colorSecondary)

// FilterValue is the current value of a filter control.
var FilterValue = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// FilterHint is the "Available: a to b" range and similar hints.
var FilterHint = lipgloss.NewStyle().
	Foreground(colorMuted)

// TableHeader styles column titles.
var TableHeader = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight).
	Padding(0, 1)

// TableHeaderCursor marks the column under the cursor.
var TableHeaderCursor = TableHeader.
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary)

// TableCell styles body cells.
var TableCell = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Padding(0, 1)

// TableCellZebra styles every other body row.
var TableCellZebra = TableCell.
	Background(colorZebra)

// TableBorder colors the table lines.
var TableBorder = lipgloss.NewStyle().
	Foreground(colorMuted)

// EmptyTable is shown when no rows match.
var EmptyTable = lipgloss.NewStyle().
	Foreground(colorSecondary).
	Italic(true).
	Padding(1, 2)

// Footer style for the pagination line.
var Footer = lipgloss.NewStyle().
	Foreground(colorSecondary).
	Padding(0, 1)

// StatusBar style for the bottom status bar.
var StatusBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

// StatusBarKey style for key hints in status bar.
var StatusBarKey = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// StatusBarText style for descriptive text in status bar.
var StatusBarText = lipgloss.NewStyle().
	Foreground(colorSecondary)

// SpinnerStyle colors the loading spinner.
var SpinnerStyle = lipgloss.NewStyle().
	Foreground(colorSuccess)

// ErrorStyle for displaying errors.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("196")).
	Bold(true).
	Padding(0, 1)

// InputPrompt style for the active input prompt.
var InputPrompt = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// DebugPanel frames the debug overlay.
var DebugPanel = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorPrimary).
	Padding(1, 2)

// DebugHeaderStyle titles the overlay sections.
var DebugHeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight)
