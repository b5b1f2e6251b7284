// Package repl implements an interactive read-eval-print loop over the
// builtin functions.
//
// Lines are evaluated with the context bindings given to [Run]. Lines
// beginning with a colon are control commands (see ":help"). Names complete
// as they are typed, and the signature of the builtin being called is shown
// below the input.
package repl

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/jsone/builtin"
	"github.com/ardnew/jsone/eval"
	"github.com/ardnew/jsone/log"
)

const (
	prompt       = "➜ "
	defaultWidth = 80
)

const helpMessage = `Commands:
  :help              Print this message
  :names             List builtins and bindings
  :let NAME = EXPR   Bind the result of EXPR to NAME
  :clear             Clear the screen
  :quit              Exit

Keys:
  Tab / Shift-Tab    Cycle completion candidates
  Enter              Accept candidate, or evaluate the line
  Up / Down          Walk the history
  Esc                Abandon completion
  Ctrl-C / Ctrl-D    Clear the line, or exit when it is empty`

//nolint:gochecknoglobals
var (
	promptStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	resultStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	matchStyle         = suggestionStyle.Bold(true).Underline(true)
	selectedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("4"))
	signatureStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	signatureNameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	currentParamStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
)

// model is the Bubble Tea model for the REPL.
type model struct {
	ctx        context.Context //nolint:containedctx
	logger     log.Logger
	opts       []eval.Option
	vars       map[string]any
	names      []string
	input      textinput.Model
	history    *History
	historyIdx int
	matches    fuzzy.Matches
	wordStart  int // byte offset of the word being completed
	wordEnd    int
	suggIdx    int
	tabActive  bool
	preTab     string // input before tab-cycling began
	width      int
	last       string // unstyled output of the latest line
	quitting   bool
}

// Run starts the REPL on the terminal and blocks until the user exits.
func Run(
	ctx context.Context,
	vars map[string]any,
	history *History,
	logger log.Logger,
	opts ...eval.Option,
) error {
	if err := history.Load(); err != nil {
		logger.WarnContext(ctx, "could not load history", slog.Any("error", err))
	}

	logger.TraceContext(ctx, "repl start",
		slog.Int("bindings", len(vars)),
		slog.Int("history", history.Len()),
	)

	_, err := tea.NewProgram(
		newModel(ctx, vars, history, logger, opts...),
		tea.WithContext(ctx),
	).Run()

	return err
}

func newModel(
	ctx context.Context,
	vars map[string]any,
	history *History,
	logger log.Logger,
	opts ...eval.Option,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(prompt)
	ti.CharLimit = 4096
	ti.Width = defaultWidth
	ti.Focus()

	vars = maps.Clone(vars)
	if vars == nil {
		vars = map[string]any{}
	}

	return model{
		ctx:        ctx,
		logger:     logger,
		opts:       append([]eval.Option{eval.WithLogger(logger)}, opts...),
		vars:       vars,
		names:      eval.Names(vars),
		input:      ti,
		history:    history,
		historyIdx: history.Len(),
		width:      defaultWidth,
		suggIdx:    -1,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-lipgloss.Width(prompt)-2, 1)

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteByte('\n')

	input := m.input.Value()
	call := detectFunctionCall(input, m.cursor())

	switch {
	case m.historyIdx < m.history.Len():
		b.WriteString(hintStyle.Render(
			fmt.Sprintf("history %d/%d", m.historyIdx+1, m.history.Len())))

	case strings.TrimSpace(input) == "":
		b.WriteString(hintStyle.Render("Type an expression, or :help"))

	case len(m.matches) > 0:
		b.WriteString(renderCandidateBar(m.matches, m.suggIdx, m.width))

	case call.inCall:
		if fn, ok := m.lookupBuiltin(call.name); ok {
			b.WriteString(renderSignatureHint(fn, call.argIndex))
		}
	}

	b.WriteByte('\n')

	return b.String()
}

// lookupBuiltin resolves name to a builtin unless a binding shadows it.
func (m model) lookupBuiltin(name string) (*builtin.Builtin, bool) {
	if _, shadowed := m.vars[name]; shadowed {
		return nil, false
	}

	return builtin.Lookup(name)
}

// cursor returns the input cursor as a byte offset.
func (m model) cursor() int {
	value := m.input.Value()
	pos := m.input.Position()

	for i := range value {
		if pos == 0 {
			return i
		}

		pos--
	}

	return len(value)
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		if msg.Type == tea.KeyCtrlC {
			m.input.SetValue("")
			m.resetCompletion()
			m.historyIdx = m.history.Len()
		}

		return m, nil

	case tea.KeyEnter:
		if m.tabActive {
			m.resetCompletion()

			return m, nil
		}

		return m.executeInput()

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.walkHistory(-1), nil

	case tea.KeyDown:
		return m.walkHistory(1), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.input.SetValue(m.preTab)
			m.input.CursorEnd()
		}

		m.resetCompletion()

		return m, nil
	}

	var cmd tea.Cmd

	m.tabActive = false
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	m.refreshMatches()

	return m, cmd
}

func (m *model) resetCompletion() {
	m.tabActive = false
	m.matches = nil
	m.suggIdx = -1
}

func (m *model) refreshMatches() {
	m.matches, m.wordStart, m.wordEnd = complete(m.input.Value(), m.cursor(), m.names)
	m.suggIdx = -1
}

// cycle moves the completion selection by step and writes the selected
// candidate into the input. A single candidate is accepted immediately.
func (m model) cycle(step int) model {
	n := len(m.matches)
	if n == 0 {
		return m
	}

	if n == 1 {
		m.replaceWord(m.matches[0].Str)
		m.resetCompletion()

		return m
	}

	if !m.tabActive {
		m.tabActive = true
		m.preTab = m.input.Value()
		m.suggIdx = 0

		if step < 0 {
			m.suggIdx = n - 1
		}
	} else {
		m.suggIdx = (m.suggIdx + step + n) % n
	}

	m.replaceWord(m.matches[m.suggIdx].Str)

	return m
}

func (m *model) replaceWord(word string) {
	value := m.input.Value()
	head := value[:m.wordStart] + word

	m.input.SetValue(head + value[m.wordEnd:])
	m.input.SetCursor(utf8.RuneCountInString(head))
	m.wordEnd = len(head)
}

func (m model) walkHistory(step int) model {
	n := m.history.Len()

	idx := m.historyIdx + step
	if idx < 0 || idx > n {
		return m
	}

	m.historyIdx = idx
	m.resetCompletion()

	line, err := m.history.At(idx)
	if err != nil {
		line = "" // past the newest entry
	}

	m.input.SetValue(line)
	m.input.CursorEnd()

	return m
}

func (m model) executeInput() (model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())

	m.input.SetValue("")
	m.resetCompletion()

	if line == "" {
		return m, nil
	}

	if err := m.history.Append(line); err != nil {
		m.logger.WarnContext(m.ctx, "could not save history", slog.Any("error", err))
	}

	m.historyIdx = m.history.Len()
	echo := promptStyle.Render(prompt) + line

	if cmd, ok := strings.CutPrefix(line, ":"); ok {
		return m.executeCommand(echo, cmd)
	}

	res, err := eval.Evaluate(m.ctx, line, m.vars, m.opts...)

	return m.print(echo, res, err)
}

func (m model) executeCommand(echo, line string) (model, tea.Cmd) {
	name, rest, _ := strings.Cut(strings.TrimSpace(line), " ")

	switch name {
	case "help":
		m.last = helpMessage

		return m, tea.Println(echo + "\n" + hintStyle.Render(helpMessage))

	case "names":
		m.last = strings.Join(m.names, " ")

		return m, tea.Println(echo + "\n" + resultStyle.Render(m.last))

	case "let":
		ident, source, ok := strings.Cut(rest, "=")
		ident = strings.TrimSpace(ident)

		if !ok || !isIdentifier(ident) {
			return m.print(echo, nil, ErrInvalidBinding)
		}

		res, err := eval.Evaluate(m.ctx, strings.TrimSpace(source), m.vars, m.opts...)
		if err == nil {
			m.vars = maps.Clone(m.vars)
			m.vars[ident] = res
			m.names = eval.Names(m.vars)
		}

		return m.print(echo, res, err)

	case "clear":
		m.last = ""

		return m, tea.ClearScreen

	case "quit", "exit":
		m.quitting = true

		return m, tea.Quit

	default:
		return m.print(echo, nil, fmt.Errorf("%w: %s", ErrUnknownCommand, strconv.Quote(name)))
	}
}

func (m model) print(echo string, res any, err error) (model, tea.Cmd) {
	if err != nil {
		m.last = "error: " + err.Error()
		m.logger.DebugContext(m.ctx, "repl error", slog.Any("error", err))

		return m, tea.Println(echo + "\n" + errorStyle.Render(m.last))
	}

	m.last = display(res)

	return m, tea.Println(echo + "\n" + resultStyle.Render(m.last))
}

// display renders a result: arrays and objects as compact JSON, anything
// else (or anything JSON cannot encode) as its text form.
func display(v any) string {
	switch builtin.KindOf(v) {
	case builtin.KindArray, builtin.KindObject:
		if buf, err := json.Marshal(v); err == nil {
			return string(buf)
		}
	case builtin.KindFunction:
		if fn, ok := v.(*builtin.Builtin); ok {
			return fn.Signature()
		}
	}

	return builtin.Text(v)
}

func isIdentifier(s string) bool {
	if s == "" || (s[0] >= '0' && s[0] <= '9') {
		return false
	}

	for i := range len(s) {
		if !isIdentByte(s[i]) {
			return false
		}
	}

	return true
}
