package input

import (
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// ResultType indicates how an editing session ended.
type ResultType int

const (
	// ResultNone means the user is still editing.
	ResultNone ResultType = iota
	// ResultSubmit means Enter was pressed.
	ResultSubmit
	// ResultInterrupt means Ctrl+C was pressed.
	ResultInterrupt
	// ResultEOF means Ctrl+D was pressed on an empty line.
	ResultEOF
)

// Result is the outcome of an editing session.
type Result struct {
	Type  ResultType
	Value string
}

// Model is the Bubble Tea model of the line editor.
type Model struct {
	buffer  *Buffer
	keymap  *KeyMap
	focused bool
	prompt  string

	// history is ordered newest first. historyIndex 0 is the line being
	// edited, n > 0 shows history[n-1].
	history             []string
	historyIndex        int
	savedCurrentInput   string
	hasNavigatedHistory bool

	search *historySearch

	renderer *lineRenderer
	result   Result
	logger   *zap.Logger
}

// Config holds configuration for a new Model.
type Config struct {
	Prompt string

	// HistoryValues are previous lines, index 0 being the most recent.
	HistoryValues []string

	// KeyMap defaults to DefaultKeyMap.
	KeyMap *KeyMap

	// RenderConfig defaults to DefaultRenderConfig(nil).
	RenderConfig *RenderConfig

	// Highlighter defaults to one with no known names.
	Highlighter *Highlighter

	Width  int
	Logger *zap.Logger
}

// New creates a line editor model.
func New(cfg Config) Model {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	keymap := cfg.KeyMap
	if keymap == nil {
		keymap = DefaultKeyMap
	}
	renderConfig := DefaultRenderConfig(nil)
	if cfg.RenderConfig != nil {
		renderConfig = *cfg.RenderConfig
	}
	highlighter := cfg.Highlighter
	if highlighter == nil {
		highlighter = NewHighlighter(HighlighterOptions{})
	}
	width := cfg.Width
	if width <= 0 {
		width = 80
	}

	return Model{
		buffer:  NewBuffer(),
		keymap:  keymap,
		focused: true,
		prompt:  cfg.Prompt,
		history: cfg.HistoryValues,
		search:  &historySearch{},
		renderer: &lineRenderer{
			config:      renderConfig,
			highlighter: highlighter,
			width:       width,
		},
		logger: logger,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.renderer.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.search.active {
			return m.handleSearchKey(msg)
		}
		return m.handleKeyMsg(msg)

	case pasteMsg:
		return m.handleInsert([]rune(string(msg)))
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	// A finished line ends with a newline so that the line stays on screen
	// once the program releases the terminal.
	switch m.result.Type {
	case ResultNone:
	case ResultInterrupt:
		return m.renderer.renderLine(m.prompt, []rune(m.buffer.Text()+"^C"), -1, false) + "\n"
	default:
		return m.renderer.renderLine(m.prompt, m.buffer.Runes(), -1, false) + "\n"
	}

	view := m.renderer.renderLine(m.prompt, m.buffer.Runes(), m.buffer.Pos(), m.focused)
	if m.search.active {
		view += "\n" + m.renderer.renderSearch(m.search)
	}
	return view
}

func (m Model) Result() Result { return m.result }

func (m Model) Value() string { return m.buffer.Text() }

// SetValue replaces the buffer contents and moves the cursor to the end.
func (m *Model) SetValue(text string) {
	m.buffer.SetText(text)
}

func (m *Model) Focus() { m.focused = true }
func (m *Model) Blur()  { m.focused = false }

func (m Model) Focused() bool { return m.focused }

func (m Model) Buffer() *Buffer { return m.buffer }

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keymap.Lookup(msg)
	m.logger.Debug("key", zap.String("key", msg.String()), zap.Stringer("action", action))

	switch action {
	case ActionSubmit:
		m.result = Result{Type: ResultSubmit, Value: m.buffer.Text()}
		return m, tea.Quit
	case ActionInterrupt:
		m.result = Result{Type: ResultInterrupt}
		return m, tea.Quit
	case ActionEOF:
		if m.buffer.Len() == 0 {
			m.result = Result{Type: ResultEOF}
			return m, tea.Quit
		}
		m.buffer.DeleteForward()
	case ActionClearScreen:
		return m, tea.ClearScreen
	case ActionPaste:
		return m, Paste
	case ActionCancel:
		return m, nil
	case ActionCharacterForward:
		m.buffer.CursorRight()
	case ActionCharacterBackward:
		m.buffer.CursorLeft()
	case ActionWordForward:
		m.buffer.WordForward()
	case ActionWordBackward:
		m.buffer.WordBackward()
	case ActionLineStart:
		m.buffer.CursorStart()
	case ActionLineEnd:
		m.buffer.CursorEnd()
	case ActionDeleteCharacterBackward:
		m.buffer.DeleteBackward()
	case ActionDeleteCharacterForward:
		m.buffer.DeleteForward()
	case ActionDeleteWordBackward:
		m.buffer.DeleteWordBackward()
	case ActionDeleteWordForward:
		m.buffer.DeleteWordForward()
	case ActionDeleteBeforeCursor:
		m.buffer.KillToStart()
	case ActionDeleteAfterCursor:
		m.buffer.KillToEnd()
	case ActionHistoryPrevious:
		return m.handleHistoryPrevious()
	case ActionHistoryNext:
		return m.handleHistoryNext()
	case ActionHistorySearch:
		m.search.start(m.buffer.Text(), m.buffer.Pos())
		return m, nil
	case ActionNone:
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
			return m.handleInsert(msg.Runes)
		}
	}
	return m, nil
}

func (m Model) handleInsert(runes []rune) (tea.Model, tea.Cmd) {
	m.buffer.Insert(sanitizeRunes(runes))
	m.historyIndex = 0
	m.hasNavigatedHistory = false
	return m, nil
}

// handleHistoryPrevious shows the next older history entry.
func (m Model) handleHistoryPrevious() (tea.Model, tea.Cmd) {
	if len(m.history) == 0 {
		return m, nil
	}
	if !m.hasNavigatedHistory {
		m.savedCurrentInput = m.buffer.Text()
		m.hasNavigatedHistory = true
	}
	if m.historyIndex < len(m.history) {
		m.historyIndex++
		m.buffer.SetText(m.history[m.historyIndex-1])
	}
	return m, nil
}

// handleHistoryNext shows the next newer history entry, ending at the line
// that was being edited before navigation started.
func (m Model) handleHistoryNext() (tea.Model, tea.Cmd) {
	if m.historyIndex <= 0 {
		return m, nil
	}
	m.historyIndex--
	if m.historyIndex == 0 {
		m.buffer.SetText(m.savedCurrentInput)
	} else {
		m.buffer.SetText(m.history[m.historyIndex-1])
	}
	return m, nil
}

// handleSearchKey handles keys while reverse search is active. Editing keys
// change the query; anything else accepts the match and is then handled
// normally, so Enter both accepts and submits.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keymap.Lookup(msg)
	switch action {
	case ActionHistorySearch:
		m.search.next()
		m.previewMatch()
		return m, nil
	case ActionDeleteCharacterBackward:
		m.search.deleteRune(m.history)
		m.previewMatch()
		return m, nil
	case ActionCancel, ActionInterrupt:
		text, pos := m.search.savedText, m.search.savedPos
		m.search.reset()
		m.buffer.SetText(text)
		m.buffer.SetPos(pos)
		return m, nil
	case ActionNone:
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
			m.search.addRunes(sanitizeRunes(msg.Runes), m.history)
			m.previewMatch()
			return m, nil
		}
	}

	m.search.reset()
	return m.handleKeyMsg(msg)
}

// previewMatch shows the current search match in the buffer, or the text
// from before the search when nothing matches.
func (m *Model) previewMatch() {
	if match, ok := m.search.current(); ok {
		m.buffer.SetText(match.Str)
		return
	}
	m.buffer.SetText(m.search.savedText)
}

// pasteMsg carries clipboard contents.
type pasteMsg string

// Paste reads the clipboard. Errors are dropped since there is nothing to paste.
func Paste() tea.Msg {
	str, err := clipboard.ReadAll()
	if err != nil {
		return nil
	}
	return pasteMsg(str)
}

// sanitizeRunes replaces tabs and line breaks with spaces so that pasted
// text stays on one line.
func sanitizeRunes(runes []rune) []rune {
	result := make([]rune, len(runes))
	for i, r := range runes {
		switch r {
		case '\t', '\n', '\r':
			result[i] = ' '
		default:
			result[i] = r
		}
	}
	return result
}
