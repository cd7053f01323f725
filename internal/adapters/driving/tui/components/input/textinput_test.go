package input

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BASILR00T/kawnhub-sub000/internal/adapters/driving/tui/styles"
)

func typeRunes(q *QueryInput, s string) {
	for _, r := range s {
		q.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestNewQueryInput(t *testing.T) {
	q := NewQueryInput(styles.DefaultStyles())

	require.NotNil(t, q)
	assert.Equal(t, "", q.Value())
	assert.True(t, q.Focused())
	assert.Equal(t, 50, q.Width())
	assert.NotNil(t, q.Init())
}

func TestNewQueryInput_NilStyles(t *testing.T) {
	q := NewQueryInput(nil)

	require.NotNil(t, q)
	assert.NotNil(t, q.styles)
}

func TestQueryInput_UpdateReportsChange(t *testing.T) {
	q := NewQueryInput(nil)

	_, changed := q.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	assert.True(t, changed)
	assert.Equal(t, "a", q.Value())

	_, changed = q.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.False(t, changed)

	_, changed = q.Update(tea.KeyMsg{Type: tea.KeyEnd})
	assert.False(t, changed)

	_, changed = q.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.True(t, changed)
	assert.Equal(t, "", q.Value())
}

func TestQueryInput_ArabicInput(t *testing.T) {
	q := NewQueryInput(nil)

	typeRunes(q, "شبكة")
	assert.Equal(t, "شبكة", q.Value())
}

func TestQueryInput_CharLimit(t *testing.T) {
	q := NewQueryInput(nil)

	typeRunes(q, strings.Repeat("x", MaxQueryLength+10))
	assert.Len(t, []rune(q.Value()), MaxQueryLength)
}

func TestQueryInput_View(t *testing.T) {
	q := NewQueryInput(nil)

	assert.Contains(t, q.View(), "Search")
}

func TestQueryInput_FocusBlur(t *testing.T) {
	q := NewQueryInput(nil)

	q.Blur()
	assert.False(t, q.Focused())

	assert.NotNil(t, q.Focus())
	assert.True(t, q.Focused())
}

func TestQueryInput_SetWidth(t *testing.T) {
	q := NewQueryInput(nil)

	q.SetWidth(100)
	assert.Equal(t, 100, q.Width())

	q.SetWidth(10)
	assert.Equal(t, 10, q.Width())
}

func TestQueryInput_SetValueAndReset(t *testing.T) {
	q := NewQueryInput(nil)
	q.SetValue("routing")
	assert.Equal(t, "routing", q.Value())

	q.Reset()
	assert.Equal(t, "", q.Value())
}
