// Package tui is the interactive studio dashboard. It is a thin
// bubbletea layer over pkg/studio: every keypress maps to a studio
// operation, and every slow operation runs as a tea.Cmd whose completion
// message is folded back into the model on the event loop.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Sumitkumar005/voiceclone-studio/pkg/api"
	"github.com/Sumitkumar005/voiceclone-studio/pkg/studio"
)

const (
	tickInterval      = 200 * time.Millisecond
	workingFrameCount = 4
	headerHeight      = 1
	voiceStripHeight  = 1
	statusBarHeight   = 1
	textareaHeight    = 5
	counterHeight     = 1
	// chromeHeight accounts for everything around the feed viewport
	chromeHeight = headerHeight + voiceStripHeight + statusBarHeight + textareaHeight + counterHeight + 2

	// lowCharWarning is the remaining-character count at which the
	// counter turns red.
	lowCharWarning = 100

	maxVoiceStripNames = 6
)

// workingFrames are the animation frames for the in-flight indicator
var workingFrames = [workingFrameCount]string{"⠋", "⠙", "⠹", "⠸"}

// tickMsg drives the in-flight animation
type tickMsg time.Time

// feedEntry is one line of the activity feed.
type feedEntry struct {
	kind    string // "info", "result", "error"
	content string
}

// uploadField identifies the focused input of the upload form.
type uploadField int

const (
	fieldName uploadField = iota
	fieldPath
)

// Model is the bubbletea model for the studio dashboard.
type Model struct {
	studio *studio.Studio
	email  string

	viewport viewport.Model
	textarea textarea.Model
	feed     []feedEntry

	generating bool
	uploading  bool
	workFrame  int

	showUpload bool
	nameInput  textinput.Model
	pathInput  textinput.Model
	focused    uploadField
	formErr    string

	width    int
	height   int
	ready    bool
	loaded   bool
	quitting bool
}

// NewModel creates the dashboard model wired to the given studio.
func NewModel(st *studio.Studio, email string) Model {
	ta := textarea.New()
	ta.Placeholder = "Type the text to generate... (Ctrl+G to generate)"
	ta.Prompt = "│ "
	ta.CharLimit = studio.MaxTextLength
	ta.SetHeight(textareaHeight)
	ta.ShowLineNumbers = false
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter"))
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.Focus()

	name := textinput.New()
	name.Placeholder = "Voice name"
	name.CharLimit = 80

	path := textinput.New()
	path.Placeholder = "Path to audio sample (.wav/.mp3)"

	return Model{
		studio:    st,
		email:     email,
		textarea:  ta,
		nameInput: name,
		pathInput: path,
	}
}

// Init starts the cursor blink, the animation tick, and the initial load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, tickCmd(), m.bootstrapCmd())
}

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	case tickMsg:
		return m.handleTick()

	case bootstrapDoneMsg:
		m.loaded = true
		if msg.Err != nil {
			m.appendFeed("error", fmt.Sprintf("Load failed: %v", msg.Err))
		} else {
			m.appendFeed("info", fmt.Sprintf("Loaded %d voices.", len(m.studio.Registry.Voices())))
		}
		m.updateViewport()
		return m, nil

	case refreshDoneMsg:
		if msg.Err != nil {
			m.appendFeed("error", fmt.Sprintf("Refresh failed: %v", msg.Err))
		} else {
			m.appendFeed("info", "Voice list refreshed.")
		}
		m.updateViewport()
		return m, nil

	case generateDoneMsg:
		m.generating = false
		if msg.Err != nil {
			m.appendFeed("error", fmt.Sprintf("Generation failed: %v", msg.Err))
		} else {
			m.textarea.Reset()
			m.appendFeed("result", fmt.Sprintf("Generated %s\n  download: %s\n  remaining: %d",
				msg.Result.GenerationID, msg.Result.DownloadURL, msg.Result.Remaining))
		}
		m.updateViewport()
		return m, nil

	case uploadDoneMsg:
		m.uploading = false
		if msg.Err != nil {
			// The form stays open with the name intact for the retry.
			m.formErr = msg.Err.Error()
			m.showUpload = true
			m.nameInput.SetValue(m.studio.Uploads.Label())
			return m, nil
		}
		m.showUpload = false
		m.formErr = ""
		m.nameInput.SetValue("")
		m.pathInput.SetValue("")
		m.appendFeed("info", fmt.Sprintf("Voice %q uploaded and selected.", msg.Asset.Name))
		m.updateViewport()
		return m, m.focusTextarea()
	}

	var cmd tea.Cmd
	if m.showUpload {
		m, cmd = m.updateFormInputs(msg)
	} else {
		m.textarea, cmd = m.textarea.Update(msg)
	}
	return m, cmd
}

// View renders the dashboard
func (m Model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}
	if !m.ready {
		return "Loading studio...\n"
	}

	sep := separatorStyle.Render(strings.Repeat("─", m.width))

	if m.showUpload {
		return fmt.Sprintf(
			"%s\n%s\n%s\n%s\n%s",
			m.renderHeader(),
			m.viewport.View(),
			sep,
			m.renderUploadForm(),
			m.renderStatusBar(),
		)
	}

	return fmt.Sprintf(
		"%s\n%s\n%s\n%s\n%s\n%s\n%s",
		m.renderHeader(),
		m.renderVoiceStrip(),
		m.viewport.View(),
		sep,
		m.textarea.View(),
		m.renderCounter(),
		m.renderStatusBar(),
	)
}

// handleKeyMsg processes keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyPgUp:
		m.viewport.ViewUp()
		return m, nil

	case tea.KeyPgDown:
		m.viewport.ViewDown()
		return m, nil
	}

	if m.showUpload {
		return m.handleFormKey(msg)
	}

	switch msg.Type {
	case tea.KeyCtrlG:
		return m.startGeneration()

	case tea.KeyCtrlU:
		m.showUpload = true
		m.formErr = ""
		// A label left over from a failed attempt is offered again.
		m.nameInput.SetValue(m.studio.Uploads.Label())
		m.focused = fieldName
		m.textarea.Blur()
		return m, m.focusField(fieldName)

	case tea.KeyCtrlR:
		return m, m.refreshCmd()

	case tea.KeyTab:
		m.cycleVoice(1)
		return m, nil

	case tea.KeyShiftTab:
		m.cycleVoice(-1)
		return m, nil
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

// handleFormKey processes keyboard input while the upload form is open.
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.showUpload = false
		m.formErr = ""
		return m, m.focusTextarea()

	case tea.KeyTab, tea.KeyShiftTab:
		if m.focused == fieldName {
			m.focused = fieldPath
		} else {
			m.focused = fieldName
		}
		return m, m.focusField(m.focused)

	case tea.KeyEnter:
		if m.focused == fieldName {
			m.focused = fieldPath
			return m, m.focusField(fieldPath)
		}
		return m.startUpload()
	}

	var cmd tea.Cmd
	m, cmd = m.updateFormInputs(msg)
	return m, cmd
}

func (m Model) updateFormInputs(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.focused == fieldName {
		m.nameInput, cmd = m.nameInput.Update(msg)
	} else {
		m.pathInput, cmd = m.pathInput.Update(msg)
	}
	return m, cmd
}

// startGeneration kicks off a generation unless one is already running.
func (m Model) startGeneration() (tea.Model, tea.Cmd) {
	if m.generating {
		return m, nil
	}
	text := m.textarea.Value()
	m.generating = true
	m.updateViewport()

	st := m.studio
	return m, func() tea.Msg {
		result, err := st.Generation.Generate(context.Background(), text)
		return generateDoneMsg{Result: result, Err: err}
	}
}

// startUpload validates the form and kicks off the upload.
func (m Model) startUpload() (tea.Model, tea.Cmd) {
	if m.uploading {
		return m, nil
	}
	if err := m.studio.Uploads.Begin(m.nameInput.Value()); err != nil {
		m.formErr = err.Error()
		return m, nil
	}
	path := strings.TrimSpace(m.pathInput.Value())
	if path == "" {
		m.formErr = "choose an audio file"
		return m, nil
	}
	m.uploading = true
	m.formErr = ""

	st := m.studio
	return m, func() tea.Msg {
		asset, err := st.Uploads.UploadFromFile(context.Background(), path)
		return uploadDoneMsg{Asset: asset, Err: err}
	}
}

// cycleVoice moves the active selection through the cached voice list.
func (m *Model) cycleVoice(step int) {
	voices := m.studio.Registry.Voices()
	if len(voices) == 0 {
		return
	}
	active := m.studio.Registry.ActiveID()
	idx := 0
	for i, v := range voices {
		if v.ID == active {
			idx = (i + step + len(voices)) % len(voices)
			break
		}
	}
	_ = m.studio.Registry.Select(voices[idx].ID)
}

// handleWindowSize initializes or resizes the viewport and inputs
func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	vpHeight := msg.Height - chromeHeight
	if vpHeight < 1 {
		vpHeight = 1
	}

	if !m.ready {
		m.viewport = viewport.New(msg.Width, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = msg.Width
		m.viewport.Height = vpHeight
	}

	m.textarea.SetWidth(msg.Width)
	m.nameInput.Width = msg.Width - 16
	m.pathInput.Width = msg.Width - 16

	m.updateViewport()
	return m, nil
}

// handleTick advances the in-flight animation
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.generating || m.uploading {
		m.workFrame = (m.workFrame + 1) % workingFrameCount
		m.updateViewport()
	}
	return m, tickCmd()
}

func (m Model) bootstrapCmd() tea.Cmd {
	st := m.studio
	return func() tea.Msg {
		return bootstrapDoneMsg{Err: st.Bootstrap(context.Background())}
	}
}

func (m Model) refreshCmd() tea.Cmd {
	st := m.studio
	return func() tea.Msg {
		if err := st.Registry.Refresh(context.Background()); err != nil {
			return refreshDoneMsg{Err: err}
		}
		return refreshDoneMsg{Err: st.Usage.Refresh(context.Background())}
	}
}

func (m *Model) focusField(f uploadField) tea.Cmd {
	if f == fieldName {
		m.pathInput.Blur()
		return m.nameInput.Focus()
	}
	m.nameInput.Blur()
	return m.pathInput.Focus()
}

func (m *Model) focusTextarea() tea.Cmd {
	m.nameInput.Blur()
	m.pathInput.Blur()
	return m.textarea.Focus()
}

func (m *Model) appendFeed(kind, content string) {
	m.feed = append(m.feed, feedEntry{kind: kind, content: content})
}

// updateViewport renders the activity feed into the viewport
func (m *Model) updateViewport() {
	if !m.ready {
		return
	}
	var sb strings.Builder

	for _, e := range m.feed {
		switch e.kind {
		case "result":
			sb.WriteString(successStyle.Render("✓ ") + e.content + "\n")
		case "error":
			sb.WriteString(errorStyle.Render("✗ "+e.content) + "\n")
		default:
			sb.WriteString("  " + e.content + "\n")
		}
	}

	if m.generating {
		frame := workingFrames[m.workFrame]
		sb.WriteString(workingStyle.Render(frame+" Generating...") + "\n")
	}
	if m.uploading {
		frame := workingFrames[m.workFrame]
		sb.WriteString(workingStyle.Render(frame+" Uploading...") + "\n")
	}

	m.viewport.SetContent(sb.String())
	m.viewport.GotoBottom()
}

// renderHeader returns the title line with the usage summary
func (m Model) renderHeader() string {
	title := lipgloss.NewStyle().
		Foreground(primaryColor).
		Bold(true).
		Render("VoiceClone Studio")

	right := lipgloss.NewStyle().
		Foreground(secondaryColor).
		Render(m.usageSummary())

	gap := m.width - lipgloss.Width(title) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + right
}

// usageSummary formats the quota line for the header.
func (m Model) usageSummary() string {
	snap, ok := m.studio.Usage.Snapshot()
	if !ok {
		return "usage: unknown"
	}
	s := fmt.Sprintf("%s · %d/%d generations", snap.Tier, snap.Used, snap.Limit)
	if snap.NearLimit() {
		s += " " + lowQuotaStyle.Render("LOW · consider upgrading")
	}
	return s
}

// renderVoiceStrip returns the one-line voice selector
func (m Model) renderVoiceStrip() string {
	voices := m.studio.Registry.Voices()
	if len(voices) == 0 {
		return voiceStyle.Render("No voices yet. Press Ctrl+U to upload one.")
	}
	active := m.studio.Registry.ActiveID()

	parts := make([]string, 0, len(voices))
	for i, v := range voices {
		if i >= maxVoiceStripNames {
			parts = append(parts, voiceStyle.Render(fmt.Sprintf("+%d more", len(voices)-i)))
			break
		}
		label := v.Name
		if v.Duration > 0 {
			label = fmt.Sprintf("%s (%.0fs)", v.Name, v.Duration)
		}
		if v.ID == active {
			parts = append(parts, activeVoiceStyle.Render("● "+label))
		} else {
			parts = append(parts, voiceStyle.Render("○ "+label))
		}
	}
	return strings.Join(parts, "  ")
}

// renderCounter returns the remaining-characters line under the textarea
func (m Model) renderCounter() string {
	remaining := studio.RemainingChars(m.textarea.Value())
	line := fmt.Sprintf("%d characters left", remaining)
	if remaining < lowCharWarning {
		return counterLowStyle.Render(line)
	}
	return counterStyle.Render(line)
}

// renderUploadForm returns the upload form panel
func (m Model) renderUploadForm() string {
	var sb strings.Builder
	sb.WriteString(formLabelStyle.Render("Upload a voice") + "\n")
	sb.WriteString("  Name: " + m.nameInput.View() + "\n")
	sb.WriteString("  File: " + m.pathInput.View() + "\n")
	if m.formErr != "" {
		sb.WriteString("  " + errorStyle.Render(m.formErr) + "\n")
	} else {
		sb.WriteString("  " + voiceStyle.Render("Enter to upload, Esc to cancel") + "\n")
	}
	return sb.String()
}

// renderStatusBar returns the bottom status bar
func (m Model) renderStatusBar() string {
	left := m.email
	if left == "" {
		left = "signed in"
	}

	right := "Ctrl+G generate · Ctrl+U upload · Ctrl+R refresh · Tab voice · Ctrl+C quit"
	if !m.loaded {
		right = "loading..."
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2 // padding
	if gap < 1 {
		gap = 1
	}
	return statusBarStyle.Render(left + strings.Repeat(" ", gap) + right)
}

// tickCmd returns a command that sends a tickMsg after the tick interval
func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// ResultSummary formats a finished generation for plain terminal output.
// The one-shot CLI shares it with the dashboard's feed format.
func ResultSummary(r *api.GenerationResult) string {
	return fmt.Sprintf("generation %s\n  download: %s\n  remaining: %d", r.GenerationID, r.DownloadURL, r.Remaining)
}
