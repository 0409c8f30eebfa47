// Package ui provides the interactive terminal screen.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/nibzard/todo-go/internal/config"
	"github.com/nibzard/todo-go/internal/logging"
	"github.com/nibzard/todo-go/internal/todo"
)

// AlertTitle heads every status alert.
const AlertTitle = "To-Do List"

const inputPlaceholder = "Enter a new to-do item"

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

// tuiConfig holds TUI configuration.
type tuiConfig struct {
	title               string
	notifications       bool
	logger              *log.Logger
	onValidationFailure func()
}

// WithLogger sets the logger used for rejected actions.
func WithLogger(logger *log.Logger) TUIOption {
	return func(c *tuiConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithValidationHook sets a function called for every rejected add.
func WithValidationHook(fn func()) TUIOption {
	return func(c *tuiConfig) {
		c.onValidationFailure = fn
	}
}

func newTUIConfig(cfg *config.Config, opts []TUIOption) *tuiConfig {
	if cfg == nil {
		cfg = config.Default()
	}
	c := &tuiConfig{
		title:         cfg.Title,
		notifications: cfg.Notifications,
		logger:        logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RunTUI starts the interactive screen over store.
func RunTUI(ctx context.Context, cfg *config.Config, store *todo.Store, opts ...TUIOption) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := NewModel(store, cfg, opts...)
	defer model.Close()

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

// Model is the Bubble Tea model of the to-do screen.
type Model struct {
	cfg         *tuiConfig
	store       *todo.Store
	unsubscribe func()

	tasks  []todo.Task
	cursor int
	marked map[todo.ID]bool
	input  []rune
	alert  string
}

// NewModel builds a model over store and subscribes it to store changes.
// Call Close to unsubscribe.
func NewModel(store *todo.Store, cfg *config.Config, opts ...TUIOption) *Model {
	m := &Model{
		cfg:    newTUIConfig(cfg, opts),
		store:  store,
		marked: make(map[todo.ID]bool),
	}
	m.unsubscribe = store.Subscribe(func(todo.Event) {
		m.refresh()
	})
	m.refresh()
	return m
}

// Close detaches the model from its store.
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// Alert returns the message of the open alert, or "" if none is shown.
func (m *Model) Alert() string {
	return m.alert
}

// Input returns the text typed so far.
func (m *Model) Input() string {
	return string(m.input)
}

// Cursor returns the list position under the cursor.
func (m *Model) Cursor() int {
	return m.cursor
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.alert != "" {
			m.updateAlert(msg)
			return m, nil
		}
		return m.updateList(msg)
	}
	return m, nil
}

// updateAlert handles keys while an alert is open. Other keys are ignored.
func (m *Model) updateAlert(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc, tea.KeySpace:
		m.alert = ""
	}
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyEnter:
		m.add()
	case tea.KeyUp, tea.KeyCtrlP:
		if m.cursor > 0 {
			m.cursor--
		}
	case tea.KeyDown, tea.KeyCtrlN:
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
	case tea.KeyTab, tea.KeyCtrlT:
		if task, ok := m.current(); ok {
			m.store.Toggle(task.ID)
		}
	case tea.KeyCtrlX:
		if task, ok := m.current(); ok {
			if m.marked[task.ID] {
				delete(m.marked, task.ID)
			} else {
				m.marked[task.ID] = true
			}
		}
	case tea.KeyCtrlD:
		m.deleteRows()
	case tea.KeyCtrlK:
		m.show(m.store.ClearCompleted().Message)
	case tea.KeyBackspace:
		if n := len(m.input); n > 0 {
			m.input = m.input[:n-1]
		}
	case tea.KeyCtrlU:
		m.input = nil
	case tea.KeySpace:
		m.input = append(m.input, ' ')
	case tea.KeyRunes:
		m.input = append(m.input, msg.Runes...)
	}
	return m, nil
}

func (m *Model) add() {
	res, err := m.store.Add(string(m.input))
	if err != nil {
		var ve *todo.ValidationError
		if errors.As(err, &ve) && m.cfg.onValidationFailure != nil {
			m.cfg.onValidationFailure()
		}
		m.cfg.logger.Warn("Add rejected", "err", err)
	} else {
		m.input = nil
		m.cursor = 0
	}
	m.show(res.Message)
}

// deleteRows removes the marked rows, or the row under the cursor when
// nothing is marked.
func (m *Model) deleteRows() {
	positions := m.Marked()
	if len(positions) == 0 {
		if len(m.tasks) == 0 {
			return
		}
		positions = []int{m.cursor}
	}

	res, err := m.store.DeleteAt(positions...)
	if err != nil {
		m.cfg.logger.Error("Delete rejected", "positions", positions, "err", err)
		m.show(err.Error())
		return
	}
	m.show(res.Message)
}

func (m *Model) show(msg string) {
	if m.cfg.notifications && msg != "" {
		m.alert = msg
	}
}

func (m *Model) current() (todo.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return todo.Task{}, false
	}
	return m.tasks[m.cursor], true
}

// refresh re-reads the store, clamps the cursor and drops marks of
// removed tasks.
func (m *Model) refresh() {
	m.tasks = m.store.Snapshot()
	if m.cursor >= len(m.tasks) {
		m.cursor = len(m.tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	present := make(map[todo.ID]bool, len(m.tasks))
	for _, task := range m.tasks {
		present[task.ID] = true
	}
	for id := range m.marked {
		if !present[id] {
			delete(m.marked, id)
		}
	}
}

// Marked returns the list positions currently marked for deletion.
func (m *Model) Marked() []int {
	var positions []int
	for i, task := range m.tasks {
		if m.marked[task.ID] {
			positions = append(positions, i)
		}
	}
	return positions
}

func (m *Model) View() string {
	var b strings.Builder
	writeTitle(&b, m.cfg.title)
	writeList(&b, m.tasks, m.cursor, m.marked)
	writeInput(&b, m.input)
	if m.alert != "" {
		writeAlert(&b, m.alert)
	} else {
		writeHelp(&b)
	}
	return b.String()
}

func writeTitle(b *strings.Builder, title string) {
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
}

func writeList(b *strings.Builder, tasks []todo.Task, cursor int, marked map[todo.ID]bool) {
	b.WriteString(headerStyle.Render("Added items:"))
	b.WriteString("\n\n")
	if len(tasks) == 0 {
		b.WriteString(placeholderStyle.Render("  No items yet."))
		b.WriteString("\n\n")
		return
	}
	for i, task := range tasks {
		b.WriteString(formatTask(task, i == cursor, marked[task.ID]))
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func formatTask(t todo.Task, selected, marked bool) string {
	pointer := " "
	if selected {
		pointer = cursorStyle.Render(">")
	}
	mark := " "
	if marked {
		mark = "*"
	}
	box := "[ ]"
	text := t.Text
	if t.Completed {
		box = "[x]"
		text = doneStyle.Render(text)
	}
	return fmt.Sprintf("%s%s %s %s", pointer, mark, box, text)
}

func writeInput(b *strings.Builder, input []rune) {
	b.WriteString("> ")
	if len(input) == 0 {
		b.WriteString(placeholderStyle.Render(inputPlaceholder))
	} else {
		b.WriteString(string(input))
	}
	b.WriteString("\n")
}

func writeAlert(b *strings.Builder, msg string) {
	body := alertTitleStyle.Render(AlertTitle) + "\n\n" + msg + "\n\n" + placeholderStyle.Render("[ OK ]")
	b.WriteString(alertStyle.Render(body))
	b.WriteString("\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString(helpStyle.Render(
		"enter add | tab toggle | ctrl+x mark | ctrl+d delete | ctrl+k clear completed | esc quit"))
	b.WriteString("\n")
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
