// Package tui provides the interactive activity board built on the
// Bubbletea framework.
package tui

import (
	"fmt"
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mrtimely/timely-cli/internal/config"
	"github.com/mrtimely/timely-cli/internal/domain"
	"github.com/mrtimely/timely-cli/internal/ports"
)

// resolveTheme fills any empty string fields in the given ThemeConfig with defaults.
// If theme is nil, returns the full default theme.
func resolveTheme(theme *config.ThemeConfig) config.ThemeConfig {
	defaults := config.DefaultThemeConfig()
	if theme == nil {
		return defaults
	}
	resolved := *theme
	rv := reflect.ValueOf(&resolved).Elem()
	dv := reflect.ValueOf(defaults)
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if f.Kind() == reflect.String && f.String() == "" {
			f.SetString(dv.Field(i).String())
		}
	}
	return resolved
}

// tickMsg is sent on every board tick.
type tickMsg time.Time

// stateMsg wraps an updated state fetched asynchronously.
type stateMsg struct {
	state *domain.CurrentState
}

// Model represents the board state.
type Model struct {
	state       *domain.CurrentState
	completions *domain.CompletionSet
	progress    progress.Model
	addInput    textinput.Model

	cursor       int
	width        int
	height       int
	addMode      bool
	confirmReset bool
	lastError    error

	tickInterval time.Duration
	fetchEvery   int
	ticks        int
	now          func() time.Time

	fetchState      func() *domain.CurrentState
	commandCallback func(cmd ports.BoardCommand, arg string) error

	notificationsEnabled bool
	notificationToggle   func(bool)
	onActivityComplete   func(name string, tracked time.Duration)

	theme config.ThemeConfig
}

// NewModel creates a new board model.
func NewModel(initialState *domain.CurrentState, completion config.CompletionConfig, theme *config.ThemeConfig) Model {
	tick := time.Duration(completion.TickInterval)
	if tick <= 0 {
		tick = 30 * time.Millisecond
	}
	fetchEvery := int(time.Second / tick)
	if fetchEvery < 1 {
		fetchEvery = 1
	}

	ti := textinput.New()
	ti.Placeholder = "activity name"
	ti.CharLimit = 120
	ti.Width = 40

	return Model{
		state: initialState,
		completions: domain.NewCompletionSet(
			time.Duration(completion.Delay),
			time.Duration(completion.PromptTimeout),
		),
		progress:     progress.New(progress.WithDefaultGradient()),
		addInput:     ti,
		width:        terminalWidth(),
		tickInterval: tick,
		fetchEvery:   fetchEvery,
		now:          time.Now,
		theme:        resolveTheme(theme),
	}
}

// Init initializes the board.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.tickInterval)
}

// fetchStateCmd returns a tea.Cmd that fetches state asynchronously.
func fetchStateCmd(fetch func() *domain.CurrentState) tea.Cmd {
	return func() tea.Msg {
		return stateMsg{state: fetch()}
	}
}

// activities returns the selectable activity list.
func (m Model) activities() []*domain.Activity {
	if m.state == nil {
		return nil
	}
	return m.state.Activities
}

// cursorActivity returns the activity under the cursor, or nil.
func (m Model) cursorActivity() *domain.Activity {
	list := m.activities()
	if m.cursor < 0 || m.cursor >= len(list) {
		return nil
	}
	return list[m.cursor]
}

// isCurrent reports whether the given activity is the one being tracked.
func (m Model) isCurrent(a *domain.Activity) bool {
	return a != nil && m.state != nil && m.state.CurrentActivity != nil &&
		!m.state.OnBreak && m.state.CurrentActivity.ID == a.ID
}

// send issues a board command, remembering any error for the status line.
func (m *Model) send(cmd ports.BoardCommand, arg string) {
	if m.commandCallback == nil {
		return
	}
	m.lastError = m.commandCallback(cmd, arg)
}

// selectCallback builds the tracker callback for an activity. Finalizing a
// countdown toggles the running activity off; confirming the repeat prompt
// fires it again and toggles it back on. The closure captures only the stable
// callbacks since the model itself is copied on every update.
func (m *Model) selectCallback(activityID string) func() {
	callback := m.commandCallback
	notify := m.onActivityComplete
	fetch := m.fetchState
	return func() {
		var name string
		var tracked time.Duration
		if fetch != nil {
			if state := fetch(); state != nil {
				for _, total := range state.Report.PerActivity {
					if total.ID == activityID {
						name, tracked = total.Name, total.Duration
						break
					}
				}
			}
		}
		if callback != nil {
			_ = callback(ports.CmdSelect, activityID)
		}

		// Only the completing toggle notifies; a repeat confirmation
		// selects the activity right back and stays quiet.
		if notify != nil && name != "" && fetch != nil {
			if state := fetch(); state != nil {
				stillCurrent := state.CurrentActivity != nil && state.CurrentActivity.ID == activityID
				if !stillCurrent {
					notify(name, tracked)
				}
			}
		}
	}
}

// trackedFor returns the name and total tracked time for an activity.
func (m Model) trackedFor(activityID string) (string, time.Duration) {
	if m.state == nil {
		return "", 0
	}
	for _, total := range m.state.Report.PerActivity {
		if total.ID == activityID {
			return total.Name, total.Duration
		}
	}
	return "", 0
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.addMode {
		return m.updateAddInput(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 8

	case tickMsg:
		m.completions.Tick(time.Time(msg))

		m.ticks++
		cmds := []tea.Cmd{tickCmd(m.tickInterval)}
		if m.fetchState != nil && m.ticks%m.fetchEvery == 0 {
			cmds = append(cmds, fetchStateCmd(m.fetchState))
		}
		return m, tea.Batch(cmds...)

	case stateMsg:
		if msg.state != nil {
			m.state = msg.state
			if max := len(m.state.Activities) - 1; m.cursor > max && max >= 0 {
				m.cursor = max
			}
		}

	case *domain.CurrentState:
		m.state = msg
	}

	var cmd tea.Cmd
	newProgress, cmd := m.progress.Update(msg)
	if p, ok := newProgress.(progress.Model); ok {
		m.progress = p
	}
	return m, cmd
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// The repeat prompt captures y/n while it is showing.
	if t := m.promptTracker(); t != nil {
		switch key {
		case "y", "enter":
			t.ConfirmRepeat()
			return m, nil
		case "n", "esc":
			t.Dismiss()
			return m, nil
		}
	}

	switch key {
	case "ctrl+c", "q":
		m.completions.Teardown()
		m.send(ports.CmdQuit, "")
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		m.confirmReset = false

	case "down", "j":
		if m.cursor < len(m.activities())-1 {
			m.cursor++
		}
		m.confirmReset = false

	case "enter", " ":
		activity := m.cursorActivity()
		if activity == nil {
			return m, nil
		}
		if m.isCurrent(activity) {
			// Delayed completion: a second press within the countdown
			// window is handled by esc, not by stacking requests.
			tracker := m.completions.Tracker(activity.ID, m.selectCallback(activity.ID))
			tracker.Request(m.now())
		} else {
			m.send(ports.CmdSelect, activity.ID)
		}
		m.confirmReset = false

	case "esc":
		if activity := m.state.CurrentActivity; activity != nil {
			if t := m.completions.Get(activity.ID); t != nil && t.Cancel() {
				m.send(ports.CmdCancelComplete, activity.ID)
			}
		}
		m.confirmReset = false

	case "c":
		m.send(ports.CmdComplete, "")
		m.confirmReset = false

	case "b":
		m.send(ports.CmdBreak, "")
		m.confirmReset = false

	case "m":
		m.send(ports.CmdAddMinute, "")
		m.confirmReset = false

	case "a":
		m.addMode = true
		m.addInput.Reset()
		m.addInput.Focus()
		return m, m.addInput.Cursor.BlinkCmd()

	case "r":
		if m.confirmReset {
			m.completions.Teardown()
			m.send(ports.CmdReset, "")
			m.confirmReset = false
			m.cursor = 0
		} else {
			m.confirmReset = true
		}

	case "tab":
		m.notificationsEnabled = !m.notificationsEnabled
		if m.notificationToggle != nil {
			m.notificationToggle(m.notificationsEnabled)
		}

	default:
		m.confirmReset = false
	}

	return m, nil
}

// updateAddInput handles input while the add-activity prompt is open.
func (m Model) updateAddInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			name := m.addInput.Value()
			m.addMode = false
			m.addInput.Blur()
			if name != "" {
				m.send(ports.CmdAdd, name)
			}
			return m, nil
		case "esc", "ctrl+c":
			m.addMode = false
			m.addInput.Blur()
			return m, nil
		}
	case tickMsg:
		// Keep ticking while the prompt is open so the timer stays live.
		m.completions.Tick(time.Time(msg))
		m.ticks++
		cmds := []tea.Cmd{tickCmd(m.tickInterval)}
		if m.fetchState != nil && m.ticks%m.fetchEvery == 0 {
			cmds = append(cmds, fetchStateCmd(m.fetchState))
		}
		return m, tea.Batch(cmds...)
	case stateMsg:
		if msg.state != nil {
			m.state = msg.state
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.addInput, cmd = m.addInput.Update(msg)
	return m, cmd
}

// promptTracker returns the tracker currently showing a repeat prompt, if any.
func (m Model) promptTracker() *domain.CompletionTracker {
	if m.state == nil {
		return nil
	}
	for _, a := range m.activities() {
		if t := m.completions.Get(a.ID); t != nil {
			if t.Phase() == domain.PhaseCompleted || t.Phase() == domain.PhasePrompt {
				return t
			}
		}
	}
	return nil
}

// pendingTracker returns the tracker mid-countdown, if any.
func (m Model) pendingTracker() (*domain.Activity, *domain.CompletionTracker) {
	for _, a := range m.activities() {
		if t := m.completions.Get(a.ID); t != nil && t.Phase() == domain.PhasePending {
			return a, t
		}
	}
	return nil, nil
}

// tickCmd creates a command that sends a tick message after the interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// View renders the board.
func (m Model) View() string {
	if m.width == 0 || m.state == nil {
		return "Loading..."
	}

	now := m.now()
	var sections []string

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorTitle)).MarginBottom(1)
	sections = append(sections, titleStyle.Render(fmt.Sprintf("%s Timely", m.theme.IconApp)))

	sections = append(sections, m.viewSessionHeader(now)...)
	sections = append(sections, "")
	sections = append(sections, m.viewActivityList(now)...)
	sections = append(sections, "")
	sections = append(sections, m.viewFooter()...)

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) viewSessionHeader(now time.Time) []string {
	session := m.state.Session
	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))
	breakStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorBreak))

	var sections []string
	sections = append(sections, statusStyle.Render("Status: "+m.state.StatusLabel(now)))

	if !m.state.IsConfigured() {
		sections = append(sections, "")
		sections = append(sections, statusStyle.Render("Run `timely setup <duration>` to plan a session"))
		return sections
	}

	timerColor := lipgloss.Color(m.theme.ColorActive)
	remaining := session.Remaining(now)
	clock := domain.FormatSeconds(remaining)
	if session.TimerActive && remaining == 0 {
		timerColor = lipgloss.Color(m.theme.ColorBreak)
		clock = "+" + domain.FormatSeconds(session.Overtime(now))
	}
	sections = append(sections, "")
	sections = append(sections, renderBigTime(clock, timerColor, m.width))

	sections = append(sections, "")
	sections = append(sections, m.progress.ViewAs(session.Progress(now)))

	report := m.state.Report
	summary := fmt.Sprintf("planned %s · active %s · idle %s",
		domain.FormatSeconds(session.Duration),
		domain.FormatSeconds(report.Active),
		domain.FormatSeconds(report.Idle))
	if report.Overtime > 0 {
		summary += " · overtime " + domain.FormatSeconds(report.Overtime)
	}
	sections = append(sections, statusStyle.Render(summary))

	if strip := renderTimelineStrip(m.state.Entries, m.width-8, now); strip != "" {
		sections = append(sections, strip)
	}

	if m.state.OnBreak {
		sections = append(sections, breakStyle.Render("☕ On break"))
	}

	if session.GitBranch != "" {
		commitShort := session.GitCommit
		if len(commitShort) > 7 {
			commitShort = commitShort[:7]
		}
		gitInfo := fmt.Sprintf("%s %s (%s)", m.theme.IconGit, session.GitBranch, commitShort)
		sections = append(sections, statusStyle.Render(gitInfo))
	}

	return sections
}

func (m Model) viewActivityList(now time.Time) []string {
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))

	list := m.activities()
	if len(list) == 0 {
		return []string{helpStyle.Render("No activities yet. Press [a] to add one.")}
	}

	var sections []string
	for i, activity := range list {
		sections = append(sections, m.renderActivityRow(activity, i == m.cursor))
	}

	if activity, tracker := m.pendingTracker(); tracker != nil {
		line := fmt.Sprintf("Completing %s… %3.0f%%  (esc to cancel)", activity.Name, tracker.Progress(now))
		sections = append(sections, "")
		sections = append(sections, helpStyle.Render(line))
	}

	if t := m.promptTracker(); t != nil {
		promptStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorActive))
		secs := int(t.PromptRemaining(now).Seconds()) + 1
		sections = append(sections, "")
		sections = append(sections, promptStyle.Render(fmt.Sprintf("Start another round? [y]es [n]o (%ds)", secs)))
	}

	return sections
}

// renderActivityRow draws one activity button using its palette colors.
func (m Model) renderActivityRow(activity *domain.Activity, selected bool) string {
	colors := activity.Colors(m.theme.Dark)

	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Text)).
		Background(lipgloss.Color(colors.Background)).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colors.Border)).
		Padding(0, 2)

	_, tracked := m.trackedFor(activity.ID)
	label := activity.Name
	if tracked > 0 || m.isCurrent(activity) {
		label = fmt.Sprintf("%s  %s", activity.Name, domain.FormatSeconds(tracked))
	}
	if m.isCurrent(activity) {
		style = style.Bold(true)
		label = "▶ " + label
	}

	row := style.Render(label)
	if selected {
		arrow := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorActive)).Bold(true).Render("▸ ")
		return arrow + row
	}
	return "  " + row
}

func (m Model) viewFooter() []string {
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorBreak))

	var sections []string

	if m.addMode {
		sections = append(sections, helpStyle.Render("New activity: ")+m.addInput.View())
		sections = append(sections, helpStyle.Render("enter save · esc cancel"))
		return sections
	}

	if m.lastError != nil {
		sections = append(sections, errStyle.Render("Error: "+m.lastError.Error()))
	}

	notifLabel := "off"
	if m.notificationsEnabled {
		notifLabel = "on"
	}

	if m.confirmReset {
		sections = append(sections, helpStyle.Render("Reset session? [r] confirm  [esc] cancel"))
	} else {
		sections = append(sections, helpStyle.Render(
			"↑/↓ move · enter track/complete · [a]dd · [b]reak · [c]lose entry · [m]+1min · [r]eset · [q]uit"))
		sections = append(sections, helpStyle.Render(fmt.Sprintf("tab:notify %s", notifLabel)))
	}

	sections = append(sections, helpStyle.Render("Customize in ~/.timely/config.toml"))
	return sections
}
