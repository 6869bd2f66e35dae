package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/moodscope/internal/models"
	"github.com/desertthunder/moodscope/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	HistoryView ViewState = iota
	SummaryView
	AnalyzeView
)

// HistoryReader supplies the dashboard's data.
type HistoryReader interface {
	Entries(username string) ([]models.MoodEntry, error)
	Average(username string) (models.MoodSummary, error)
}

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	username     string
	history      HistoryReader
	engine       *tasks.AnalysisEngine
	pending      []models.Track
	width        int
	height       int
	entryList    list.Model
	summary      models.MoodSummary
	hasSummary   bool
	progressChan chan tasks.ProgressUpdate
	progress     tasks.ProgressUpdate
	batch        *tasks.BulkAnalysisResult
	err          error
	help         help.Model
	keys         keyMap
}

// keyMap defines the key bindings for the TUI.
type keyMap struct {
	up      key.Binding
	down    key.Binding
	toggle  key.Binding
	refresh key.Binding
	analyze key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		toggle: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "summary"),
		),
		refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		analyze: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "analyze"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down},
		{k.toggle, k.refresh},
		{k.analyze, k.quit},
	}
}

// entryItem wraps [models.MoodEntry] to implement list.Item.
type entryItem struct {
	index int
	entry models.MoodEntry
}

func (i entryItem) FilterValue() string { return i.entry.Emotion }
func (i entryItem) Title() string {
	return fmt.Sprintf("#%d  %d/10", i.index+1, i.entry.Score)
}
func (i entryItem) Description() string {
	desc := i.entry.CreatedAt.Format("2006-01-02 15:04")
	if i.entry.Emotion != "" {
		desc = fmt.Sprintf("%s • %s (%.2f)", desc, i.entry.Emotion, i.entry.Confidence)
	}
	return desc
}

type historyFetchedMsg struct {
	entries []models.MoodEntry
	summary models.MoodSummary
	err     error
}

type progressUpdateMsg tasks.ProgressUpdate

type batchCompleteMsg struct {
	result *tasks.BulkAnalysisResult
	err    error
}

// NewModel creates a new TUI model with the provided dependencies.
//
// The engine and pending tracks are optional; without them the analyze view
// is disabled and the dashboard is read-only.
func NewModel(ctx context.Context, username string, history HistoryReader, engine *tasks.AnalysisEngine, pending []models.Track) *Model {
	return &Model{
		ctx:      ctx,
		view:     HistoryView,
		username: username,
		history:  history,
		engine:   engine,
		pending:  pending,
		help:     help.New(),
		keys:     newKeyMap(),
	}
}

// Init initializes the TUI by fetching the user's history.
func (m *Model) Init() tea.Cmd {
	return m.fetchHistory()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.entryList.Width() == 0 {
			m.entryList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case historyFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.summary = msg.summary
		m.hasSummary = true
		items := make([]list.Item, len(msg.entries))
		for i, entry := range msg.entries {
			items[i] = entryItem{index: i, entry: entry}
		}
		m.entryList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.entryList.Title = fmt.Sprintf("Mood History: %s", m.username)
		m.entryList.SetSize(m.width-4, m.height-8)
		return m, nil

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case batchCompleteMsg:
		m.batch = msg.result
		m.err = msg.err
		m.progressChan = nil
		m.view = HistoryView
		return m, m.fetchHistory()
	}

	return m.updateList(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != AnalyzeView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress r to refresh, q to quit", m.err))
	}

	switch m.view {
	case HistoryView:
		return m.renderHistory()
	case SummaryView:
		return m.renderSummary()
	case AnalyzeView:
		return m.renderAnalyze()
	default:
		return ""
	}
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab":
		if m.view == HistoryView {
			m.view = SummaryView
		} else if m.view == SummaryView {
			m.view = HistoryView
		}
		return m, nil
	case "r":
		if m.view != AnalyzeView {
			return m, m.fetchHistory()
		}
	case "a":
		if m.view == HistoryView && m.engine != nil && len(m.pending) > 0 {
			m.view = AnalyzeView
			return m, m.startAnalysis()
		}
	}

	return m.updateList(msg)
}

func (m *Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.view != HistoryView {
		return m, nil
	}
	var cmd tea.Cmd
	m.entryList, cmd = m.entryList.Update(msg)
	return m, cmd
}

func (m *Model) fetchHistory() tea.Cmd {
	return func() tea.Msg {
		entries, err := m.history.Entries(m.username)
		if err != nil {
			return historyFetchedMsg{err: err}
		}
		summary, err := m.history.Average(m.username)
		if err != nil {
			return historyFetchedMsg{err: err}
		}
		return historyFetchedMsg{entries: entries, summary: summary}
	}
}

func (m *Model) startAnalysis() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)
	prog := m.progressChan

	go func() {
		result, err := m.engine.BulkAnalyze(m.ctx, prog, m.username, m.pending, tasks.BulkAnalyzeOpts{})
		m.batch = result
		m.err = err
		close(prog)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		if m.progressChan == nil {
			return batchCompleteMsg{result: m.batch, err: m.err}
		}

		update, ok := <-m.progressChan
		if !ok {
			return batchCompleteMsg{result: m.batch, err: m.err}
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderHistory() string {
	helpKeys := []key.Binding{m.keys.toggle, m.keys.refresh, m.keys.quit}
	if m.engine != nil && len(m.pending) > 0 {
		helpKeys = append([]key.Binding{m.keys.analyze}, helpKeys...)
	}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.entryList.View(), helpView)
}

func (m *Model) renderSummary() string {
	title := styles.title.Render(fmt.Sprintf("Mood Summary: %s", m.username))

	if !m.hasSummary {
		return fmt.Sprintf("%s\n%s", title, styles.help.Render("No data yet"))
	}

	band := bandStyle(m.summary.Interpretation).Render(m.summary.Interpretation)
	info := fmt.Sprintf(
		"\nAverage mood: %.2f/10\nInterpretation: %s\nPredictions: %d\n",
		m.summary.AverageMood, band, m.summary.TotalPredictions,
	)

	helpKeys := []key.Binding{m.keys.toggle, m.keys.refresh, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s%s\n%s", title, info, helpView)
}

func (m *Model) renderAnalyze() string {
	title := styles.title.Render("Analyzing Tracks")

	var phase string
	switch m.progress.Phase {
	case tasks.FetchLyrics:
		phase = fmt.Sprintf("Fetching lyrics (%d/%d)", m.progress.Step, m.progress.Total)
	case tasks.Analyze:
		phase = fmt.Sprintf("Scoring (%d/%d)", m.progress.Step, m.progress.Total)
	case tasks.Complete:
		phase = "Finishing up..."
	default:
		phase = "Starting..."
	}

	return fmt.Sprintf("%s\n\n%s\n%s", title, phase, m.progress.Message)
}
