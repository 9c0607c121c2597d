package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/desertwitch/protogen/internal/queue"
	"github.com/dustin/go-humanize"
)

const maxLogLines = 100

//nolint:gochecknoglobals
var (
	// titleStyle defines the style for a panel's title.
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	// borderStyle defines the style for a panel's borders.
	borderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4"))

	// infoStyle defines the style for a panel's text.
	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	// failStyle highlights failure counts.
	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F87"))

	// helpStyle defines the style for the help panel's text.
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			Padding(0, 1)
)

// ProgressMsg is a [tea.Msg] containing [queue.Progress] information.
type ProgressMsg struct {
	t    time.Time
	data queue.Progress
}

// TeaModel is the principal [tea.Model] for the command-line user interface.
type TeaModel struct {
	width  int
	height int

	cancel context.CancelFunc

	uiHandler *Handler

	fullWidthWithBorders int

	data queue.Progress

	progress     progress.Model
	logsViewport viewport.Model
	logs         []string

	ready bool
}

// NewTeaModel returns an initial new [TeaModel].
//
//nolint:mnd
func NewTeaModel(uiHandler *Handler, cancel context.CancelFunc) TeaModel {
	return TeaModel{
		uiHandler: uiHandler,
		progress: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(80),
		),
		logsViewport: viewport.New(80, 20),
		logs:         make([]string, 0, maxLogLines),
		cancel:       cancel,
	}
}

// Init initializes the model within a [tea.Program].
func (m TeaModel) Init() tea.Cmd {
	if m.uiHandler != nil {
		m.uiHandler.Initialized.Store(true)
	}

	return tea.Batch(
		tea.EnterAltScreen,
		updateProgress(m.uiHandler),
	)
}

// updateProgress produces a [tea.Cmd] for later scheduling in a
// [tea.Program]. When executed, a [ProgressMsg] with the run's
// [queue.Progress] is returned.
func updateProgress(h *Handler) tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg { //nolint:mnd
		msg := ProgressMsg{t: t}

		if h != nil && h.progressHandler != nil {
			msg.data = h.progressHandler.Progress()
		}

		return msg
	})
}

func (m *TeaModel) refreshLogs() {
	if len(m.logs) == 0 {
		return
	}

	logs := lipgloss.NewStyle().
		Width(m.logsViewport.Width).
		Render(strings.TrimSuffix(strings.Join(m.logs, ""), "\n"))

	m.logsViewport.SetContent(logs)
	m.logsViewport.GotoBottom()
}

// Update is the principal message handling method of the model.
// It sets the internal state of the model, for later rendering.
//
//nolint:mnd,ireturn
func (m TeaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()

			return m, tea.Quit
		case "q":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		m.fullWidthWithBorders = m.width - 2
		m.progress.Width = m.fullWidthWithBorders

		// The progress panel has a fixed height of title, bar and details.
		viewportHeight := max(m.height-14, 3)

		m.logsViewport.Width = m.fullWidthWithBorders
		m.logsViewport.Height = viewportHeight

		m.refreshLogs()

		m.ready = true

	case ProgressMsg:
		m.data = msg.data

		cmds = append(cmds,
			m.progress.SetPercent(m.data.ProgressPct/100),
			updateProgress(m.uiHandler),
		)

	case LogMsg:
		if len(m.logs) >= maxLogLines {
			m.logs = m.logs[1:]
		}

		line := string(msg)
		if !strings.HasSuffix(line, "\n") {
			line += "\n"
		}
		m.logs = append(m.logs, line)

		m.refreshLogs()

	case progress.FrameMsg:
		updated, cmd := m.progress.Update(msg)
		if progressModel, ok := updated.(progress.Model); ok {
			m.progress = progressModel
		}
		cmds = append(cmds, cmd)
	}

	m.logsViewport, cmd = m.logsViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// View is the principal rendering function of the model.
func (m TeaModel) View() string {
	if !m.ready {
		return "Loading the GUI..."
	}

	progressSection := borderStyle.
		Width(m.fullWidthWithBorders).
		Render(m.formatProgressView("Generation", m.progress.View(), m.data))

	logsSection := borderStyle.
		Width(m.fullWidthWithBorders).
		Render(
			lipgloss.JoinVertical(
				lipgloss.Left,
				titleStyle.Width(m.fullWidthWithBorders).Render("Compiler Output"),
				lipgloss.NewStyle().Width(m.fullWidthWithBorders).Render(m.logsViewport.View()),
			),
		)

	helpSection := helpStyle.
		Width(m.fullWidthWithBorders).
		Render("q: quit gui (run continues) • ctrl+c: cancel run")

	return lipgloss.JoinVertical(
		lipgloss.Left,
		progressSection,
		logsSection,
		helpSection,
	)
}

// formatProgressView is a helper function for rendering the progress panel.
func (m TeaModel) formatProgressView(title string, progressBar string, p queue.Progress) string {
	failed := fmt.Sprintf("Failed=%s", humanize.Comma(int64(p.FailedItems)))
	if p.FailedItems > 0 {
		failed = failStyle.Render(failed)
	}

	items := fmt.Sprintf("Files: InProgress=%d, Generated=%s, Skipped=%s, %s",
		p.InProgressItems,
		humanize.Comma(int64(p.SuccessItems)),
		humanize.Comma(int64(p.SkippedItems)),
		failed,
	)

	var timing string
	switch {
	case !p.HasStarted:
		timing = "Time: Waiting for schema files..."
	case p.HasFinished:
		timing = fmt.Sprintf("Time: Started=%v, Finished=%v (%s)",
			p.StartTime.Format("15:04:05"),
			p.FinishTime.Format("15:04:05"),
			p.FinishTime.Sub(p.StartTime).Round(time.Millisecond),
		)
	default:
		timing = fmt.Sprintf("Time: Started=%v, ETA=%v (%s left)\nSpeed: %.1f files/s",
			p.StartTime.Format("15:04:05"),
			p.ETA.Format("15:04:05"),
			p.TimeLeft.Round(time.Second),
			p.ItemsPerSec,
		)
	}

	details := fmt.Sprintf("Progress: %.2f%% (%d/%d)\n%s\n%s\n",
		p.ProgressPct,
		p.ProcessedItems,
		p.TotalItems,
		items,
		timing,
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Width(m.fullWidthWithBorders).Render(title),
		"",
		progressBar,
		"",
		infoStyle.Width(m.fullWidthWithBorders).Render(details),
	)
}
