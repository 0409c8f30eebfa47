package ui

import (
	"bytes"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nibzard/todo-go/internal/config"
	"github.com/nibzard/todo-go/internal/todo"
)

func TestMain(m *testing.M) {
	// plain text output keeps View assertions free of escape codes
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func newModel(t *testing.T, cfg *config.Config, opts ...TUIOption) (*Model, *todo.Store) {
	t.Helper()
	store := todo.NewStore()
	m := NewModel(store, cfg, opts...)
	t.Cleanup(m.Close)
	return m, store
}

func typeText(m *Model, text string) {
	for _, r := range text {
		if r == ' ' {
			m.Update(tea.KeyMsg{Type: tea.KeySpace})
			continue
		}
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func press(m *Model, keys ...tea.KeyType) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(tea.KeyMsg{Type: k})
	}
	return cmd
}

// addTask types text, submits it and dismisses the alert.
func addTask(t *testing.T, m *Model, text string) {
	t.Helper()
	typeText(m, text)
	press(m, tea.KeyEnter)
	require.Equal(t, todo.MsgAdded, m.Alert())
	press(m, tea.KeyEnter)
	require.Empty(t, m.Alert())
}

func TestAddFromInput(t *testing.T) {
	m, store := newModel(t, nil)

	typeText(m, "Buy milk")
	assert.Equal(t, "Buy milk", m.Input())

	press(m, tea.KeyEnter)
	assert.Equal(t, todo.MsgAdded, m.Alert())
	assert.Empty(t, m.Input())
	require.Equal(t, 1, store.Len())
	assert.Equal(t, "Buy milk", store.Snapshot()[0].Text)

	view := m.View()
	assert.Contains(t, view, AlertTitle)
	assert.Contains(t, view, todo.MsgAdded)
	assert.Contains(t, view, "[ ] Buy milk")
}

func TestAddEmptyShowsPrompt(t *testing.T) {
	var failures int
	m, store := newModel(t, nil, WithValidationHook(func() { failures++ }))

	press(m, tea.KeyEnter)
	assert.Equal(t, todo.MsgEnterTask, m.Alert())
	assert.Equal(t, 0, store.Len())
	assert.Equal(t, 1, failures)
}

func TestAlertIsModal(t *testing.T) {
	m, store := newModel(t, nil)
	press(m, tea.KeyEnter)
	require.NotEmpty(t, m.Alert())

	// typing and quitting are swallowed while the alert is open
	typeText(m, "x")
	assert.Empty(t, m.Input())
	assert.Nil(t, press(m, tea.KeyEsc))
	assert.Empty(t, m.Alert())

	for _, key := range []tea.KeyType{tea.KeyEnter, tea.KeySpace} {
		press(m, tea.KeyEnter)
		require.NotEmpty(t, m.Alert())
		press(m, key)
		assert.Empty(t, m.Alert())
	}
	assert.Equal(t, 0, store.Len())
}

func TestBackspaceAndClearInput(t *testing.T) {
	m, _ := newModel(t, nil)
	typeText(m, "abc")
	press(m, tea.KeyBackspace)
	assert.Equal(t, "ab", m.Input())
	press(m, tea.KeyCtrlU)
	assert.Empty(t, m.Input())
	press(m, tea.KeyBackspace)
	assert.Empty(t, m.Input())
}

func TestToggleUnderCursor(t *testing.T) {
	m, store := newModel(t, nil)
	addTask(t, m, "B")
	addTask(t, m, "A") // [A, B]

	press(m, tea.KeyDown)
	assert.Equal(t, 1, m.Cursor())
	press(m, tea.KeyDown)
	assert.Equal(t, 1, m.Cursor(), "cursor stops at the last row")

	press(m, tea.KeyTab)
	assert.Empty(t, m.Alert(), "toggle has no message")
	snap := store.Snapshot()
	assert.False(t, snap[0].Completed)
	assert.True(t, snap[1].Completed)
	assert.Contains(t, m.View(), "[x] B")

	press(m, tea.KeyCtrlP, tea.KeyCtrlT)
	assert.Equal(t, 0, m.Cursor())
	assert.True(t, store.Snapshot()[0].Completed)
}

func TestDeleteMarkedRows(t *testing.T) {
	m, store := newModel(t, nil)
	for _, text := range []string{"D", "C", "B", "A"} {
		addTask(t, m, text)
	}

	press(m, tea.KeyCtrlX, tea.KeyDown, tea.KeyDown, tea.KeyCtrlX)
	assert.Equal(t, []int{0, 2}, m.Marked())
	press(m, tea.KeyCtrlX, tea.KeyCtrlX)
	assert.Equal(t, []int{0, 2}, m.Marked())

	press(m, tea.KeyCtrlD)
	assert.Equal(t, todo.MsgRemoved, m.Alert())
	assert.Equal(t, []string{"B", "D"}, texts(store.Snapshot()))
	assert.Empty(t, m.Marked())
	assert.Equal(t, 1, m.Cursor(), "cursor clamps to the shorter list")
}

func TestDeleteCursorRow(t *testing.T) {
	m, store := newModel(t, nil)
	addTask(t, m, "B")
	addTask(t, m, "A")

	press(m, tea.KeyCtrlD)
	assert.Equal(t, todo.MsgRemoved, m.Alert())
	assert.Equal(t, []string{"B"}, texts(store.Snapshot()))

	press(m, tea.KeyEnter, tea.KeyCtrlD, tea.KeyEnter)
	assert.Equal(t, 0, store.Len())

	// nothing to delete on an empty list
	press(m, tea.KeyCtrlD)
	assert.Empty(t, m.Alert())
}

func TestClearCompletedKey(t *testing.T) {
	m, store := newModel(t, nil)
	addTask(t, m, "B")
	addTask(t, m, "A")
	press(m, tea.KeyTab)

	press(m, tea.KeyCtrlK)
	assert.Equal(t, todo.MsgCleared, m.Alert())
	assert.Equal(t, []string{"B"}, texts(store.Snapshot()))
}

func TestNotificationsDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.Notifications = false
	m, store := newModel(t, cfg)

	typeText(m, "A")
	press(m, tea.KeyEnter)
	assert.Empty(t, m.Alert())
	assert.Equal(t, 1, store.Len())
	press(m, tea.KeyCtrlK)
	assert.Empty(t, m.Alert())
}

func TestExternalChangesRerender(t *testing.T) {
	m, store := newModel(t, nil)
	_, err := store.Add("from elsewhere")
	require.NoError(t, err)
	assert.Contains(t, m.View(), "from elsewhere")

	m.Close()
	_, err = store.Add("after close")
	require.NoError(t, err)
	assert.NotContains(t, m.View(), "after close")
}

func TestQuitKeys(t *testing.T) {
	for _, key := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEsc} {
		m, _ := newModel(t, nil)
		cmd := press(m, key)
		require.NotNil(t, cmd)
		assert.Equal(t, tea.Quit(), cmd())
	}

	// ctrl+c also quits with an alert open
	m, _ := newModel(t, nil)
	press(m, tea.KeyEnter)
	cmd := press(m, tea.KeyCtrlC)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestViewLayout(t *testing.T) {
	cfg := config.Default()
	cfg.Title = "Groceries"
	m, _ := newModel(t, cfg)

	view := m.View()
	assert.Contains(t, view, "Groceries")
	assert.Contains(t, view, "Added items:")
	assert.Contains(t, view, inputPlaceholder)
	assert.True(t, strings.Index(view, "Added items:") < strings.Index(view, inputPlaceholder))
}

func TestIsTTY(t *testing.T) {
	assert.False(t, IsTTY(&bytes.Buffer{}))
}

func texts(tasks []todo.Task) []string {
	out := make([]string, len(tasks))
	for i, task := range tasks {
		out[i] = task.Text
	}
	return out
}
