package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/abelbrown/tabula/internal/category"
	"github.com/abelbrown/tabula/internal/controller"
	"github.com/abelbrown/tabula/internal/filter"
	"github.com/abelbrown/tabula/internal/otel"
	"github.com/abelbrown/tabula/internal/record"
)

type inputMode int

const (
	modeTable inputMode = iota
	modeSearch
	modeFrom
	modeTo
)

// ObsConfig wires observability into the UI.
type ObsConfig struct {
	Logger *otel.Logger
	Ring   *otel.RingBuffer
}

// AppConfig holds the App's dependencies. Command funcs may be nil.
type AppConfig struct {
	Controller *controller.Controller

	// Fetch runs a fetch request and replies with FetchDone.
	Fetch func(req controller.FetchRequest) tea.Cmd

	// SaveLocation writes the encoded filter back and replies with
	// LocationSaved. Commands run concurrently, so an implementation must
	// keep a later call's query from being overwritten by an earlier one.
	SaveLocation func(query string) tea.Cmd

	Obs ObsConfig
}

// App is the root Bubble Tea model.
// IMPORTANT: App performs no I/O itself. Fetches and location writes go
// through the injected command funcs.
type App struct {
	ctrl         *controller.Controller
	fetch        func(controller.FetchRequest) tea.Cmd
	saveLocation func(string) tea.Cmd
	logger       *otel.Logger
	ring         *otel.RingBuffer

	mode      inputMode
	input     textinput.Model
	inputErr  string
	prevInput string
	spinner   spinner.Model
	column    int
	notice    string

	width        int
	height       int
	ready        bool
	debugVisible bool
}

// NewAppWithConfig creates an App. A nil Controller gets a default one.
func NewAppWithConfig(cfg AppConfig) App {
	ctrl := cfg.Controller
	if ctrl == nil {
		ctrl = controller.New(controller.Options{Logger: cfg.Obs.Logger})
	}
	logger := cfg.Obs.Logger
	if logger == nil {
		logger = otel.NewNullLogger()
	}

	ti := textinput.New()
	ti.PromptStyle = InputPrompt
	ti.CharLimit = 64

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = SpinnerStyle

	return App{
		ctrl:         ctrl,
		fetch:        cfg.Fetch,
		saveLocation: cfg.SaveLocation,
		logger:       logger,
		ring:         cfg.Obs.Ring,
		input:        ti,
		spinner:      sp,
	}
}

// Init issues the first fetch and writes the starting location back.
func (a App) Init() tea.Cmd {
	req := a.ctrl.SelectCategory(a.ctrl.Category())
	return tea.Batch(a.issue(req), a.save())
}

func (a App) issue(req controller.FetchRequest) tea.Cmd {
	if a.fetch == nil {
		return nil
	}
	return tea.Batch(a.fetch(req), a.spinner.Tick)
}

func (a App) save() tea.Cmd {
	if a.saveLocation == nil {
		return nil
	}
	return a.saveLocation(a.ctrl.Location())
}

// Update handles messages and returns the updated model and any commands.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if otel.TraceEnabled() {
		a.logger.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindMsgReceived, Comp: "ui", Msg: fmt.Sprintf("%T", msg)})
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if a.mode != modeTable {
			return a.handleInputKey(msg)
		}
		return a.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		return a, nil

	case spinner.TickMsg:
		if !a.ctrl.Loading() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case FetchDone:
		if a.ctrl.ApplyFetch(msg.Result) {
			a.clampColumn()
		}
		return a, nil

	case LocationSaved:
		if msg.Superseded {
			return a, nil
		}
		if msg.Err != nil {
			a.notice = "location not saved: " + msg.Err.Error()
			a.logger.Error(otel.KindStoreError, "ui", msg.Err)
		} else {
			a.notice = ""
			a.logger.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindLocation, Comp: "ui", Location: msg.Query})
		}
		return a, nil
	}

	return a, nil
}

// handleKeyMsg processes keyboard input on the table.
func (a App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.logger.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindKeyPress, Comp: "ui", Msg: msg.String()})

	switch {
	case key.Matches(msg, keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, keys.Debug):
		a.debugVisible = !a.debugVisible
		return a, nil

	case key.Matches(msg, keys.Escape):
		a.debugVisible = false
		a.notice = ""
		return a, nil

	case key.Matches(msg, keys.Category):
		req := a.ctrl.SelectCategory(a.ctrl.Category().Next())
		a.column = 0
		return a, a.issue(req)

	case key.Matches(msg, keys.Refresh):
		return a, a.issue(a.ctrl.Refresh())

	case key.Matches(msg, keys.Search):
		cmd := a.beginInput(modeSearch, a.ctrl.Filter().Search)
		return a, cmd

	case key.Matches(msg, keys.From):
		cmd := a.beginInput(modeFrom, dateText(a.ctrl.Filter().From))
		return a, cmd

	case key.Matches(msg, keys.To):
		cmd := a.beginInput(modeTo, dateText(a.ctrl.Filter().To))
		return a, cmd

	case key.Matches(msg, keys.Status):
		next := a.ctrl.Filter().Status.Next()
		if a.ctrl.SetFilter(filter.Patch{Status: &next}) {
			return a, a.save()
		}
		return a, nil

	case key.Matches(msg, keys.ClearDates):
		if a.ctrl.ClearDates() {
			return a, a.save()
		}
		return a, nil

	case key.Matches(msg, keys.Left):
		if a.column > 0 {
			a.column--
		}
		return a, nil

	case key.Matches(msg, keys.Right):
		if a.column < len(a.ctrl.Category().Columns())-1 {
			a.column++
		}
		return a, nil

	case key.Matches(msg, keys.Sort):
		cols := a.ctrl.Category().Columns()
		if a.column < len(cols) {
			a.ctrl.RequestSort(cols[a.column].Key)
		}
		return a, nil

	case key.Matches(msg, keys.NextPage):
		a.ctrl.NextPage()
		return a, nil

	case key.Matches(msg, keys.PrevPage):
		a.ctrl.PrevPage()
		return a, nil

	case key.Matches(msg, keys.PageSize):
		a.ctrl.CyclePageSize()
		return a, nil
	}

	return a, nil
}

func (a *App) beginInput(mode inputMode, value string) tea.Cmd {
	a.mode = mode
	a.inputErr = ""
	a.prevInput = value
	switch mode {
	case modeSearch:
		a.input.Prompt = "Search: "
		a.input.Placeholder = "any field"
	case modeFrom:
		a.input.Prompt = "From: "
		a.input.Placeholder = record.DateLayout
	case modeTo:
		a.input.Prompt = "To: "
		a.input.Placeholder = record.DateLayout
	}
	a.input.SetValue(value)
	a.input.CursorEnd()
	a.input.Focus()
	return textinput.Blink
}

func (a *App) endInput() {
	a.mode = modeTable
	a.inputErr = ""
	a.input.Blur()
}

// handleInputKey processes keys while a text input has focus. Search
// filters as you type; dates apply on enter.
func (a App) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return a, tea.Quit

	case key.Matches(msg, keys.Escape):
		var cmd tea.Cmd
		if a.mode == modeSearch {
			prev := a.prevInput
			if a.ctrl.SetFilter(filter.Patch{Search: &prev}) {
				cmd = a.save()
			}
		}
		a.endInput()
		return a, cmd

	case key.Matches(msg, keys.Enter):
		return a.commitInput()
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)

	if a.mode == modeSearch {
		search := a.input.Value()
		if a.ctrl.SetFilter(filter.Patch{Search: &search}) {
			return a, tea.Batch(cmd, a.save())
		}
	}
	return a, cmd
}

func (a App) commitInput() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(a.input.Value())

	var patch filter.Patch
	switch a.mode {
	case modeSearch:
		search := a.input.Value()
		patch.Search = &search
	case modeFrom, modeTo:
		var d time.Time
		if value != "" {
			parsed, err := record.ParseDate(value)
			if err != nil {
				a.inputErr = fmt.Sprintf("invalid date %q, want %s", value, record.DateLayout)
				return a, nil
			}
			d = parsed
		}
		if a.mode == modeFrom {
			patch.From = &d
		} else {
			patch.To = &d
		}
	}

	a.endInput()
	if a.ctrl.SetFilter(patch) {
		return a, a.save()
	}
	return a, nil
}

func (a *App) clampColumn() {
	n := len(a.ctrl.Category().Columns())
	if a.column >= n {
		a.column = n - 1
	}
	if a.column < 0 {
		a.column = 0
	}
}

func dateText(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(record.DateLayout)
}

// View renders the UI.
func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}
	if a.debugVisible {
		return lipgloss.JoinVertical(lipgloss.Left,
			debugOverlay(a.ring, a.width, a.height-1),
			debugStatusBar(a.width),
		)
	}

	v := a.ctrl.View()

	parts := []string{
		a.renderHeader(v),
		a.renderFilterBar(v),
	}
	if a.mode != modeTable {
		parts = append(parts, a.renderInput())
	}
	if v.Err != "" {
		parts = append(parts, ErrorStyle.Width(a.width).Render(v.Err))
	}
	parts = append(parts,
		renderTable(v, a.column, a.width),
		renderFooter(v, a.width),
		a.renderStatusBar(v),
	)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (a App) renderHeader(v controller.View) string {
	var tabs []string
	for _, c := range category.All {
		style := CategoryInactive
		if c == v.Category {
			style = CategoryActive
		}
		tabs = append(tabs, style.Render(c.Label()))
	}
	return Header.Render("tabula") + " " + strings.Join(tabs, " ")
}

func (a App) renderFilterBar(v controller.View) string {
	search := v.Filter.Search
	if search == "" {
		search = "-"
	}

	var statuses []string
	for _, s := range filter.Statuses {
		label := s.Label()
		if s == v.Filter.Status {
			statuses = append(statuses, FilterValue.Render("["+label+"]"))
		} else {
			statuses = append(statuses, FilterLabel.Render(label))
		}
	}

	from, to := dateText(v.Filter.From), dateText(v.Filter.To)
	if from == "" {
		from = "-"
	}
	if to == "" {
		to = "-"
	}

	line := FilterLabel.Render("Search ") + FilterValue.Render(search) + "   " +
		strings.Join(statuses, " ") + "   " +
		FilterLabel.Render("From ") + FilterValue.Render(from) + " " +
		FilterLabel.Render("To ") + FilterValue.Render(to)

	if v.HasDates {
		line += "  " + FilterHint.Render(fmt.Sprintf("Available: %s to %s", dateText(v.MinDate), dateText(v.MaxDate)))
	}
	if !v.Filter.From.IsZero() || !v.Filter.To.IsZero() {
		line += "  " + FilterHint.Render("x: Clear Date")
	}
	return FilterBar.Render(line)
}

func (a App) renderInput() string {
	line := a.input.View()
	if a.inputErr != "" {
		line += "  " + ErrorStyle.Render(a.inputErr)
	}
	return FilterBar.Render(line)
}

func (a App) renderStatusBar(v controller.View) string {
	var left string
	switch {
	case v.Loading:
		left = a.spinner.View() + " Loading..."
	case a.notice != "":
		left = a.notice
	default:
		left = fmt.Sprintf("%d records", v.Loaded)
	}

	var hints []string
	for _, b := range hintKeys {
		h := b.Help()
		hints = append(hints, StatusBarKey.Render(h.Key)+StatusBarText.Render(":"+h.Desc))
	}
	keyHints := strings.Join(hints, " ")

	padding := a.width - lipgloss.Width(left) - lipgloss.Width(keyHints) - 2
	if padding < 1 {
		padding = 1
	}
	return StatusBar.Width(a.width).Render(left + strings.Repeat(" ", padding) + keyHints)
}

// Controller exposes the controller (for testing).
func (a App) Controller() *controller.Controller {
	return a.ctrl
}

// Editing reports whether a text input is focused (for testing).
func (a App) Editing() bool {
	return a.mode != modeTable
}
