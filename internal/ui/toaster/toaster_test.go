package toaster

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	m := New()

	assert.False(t, m.Visible())
	assert.Empty(t, m.View())
}

func TestShow(t *testing.T) {
	m, cmd := New().Show("Saved", StyleSuccess)

	assert.True(t, m.Visible())
	assert.NotNil(t, cmd)
	assert.Contains(t, m.View(), "✅ Saved")
	assert.Contains(t, m.View(), "╭")
}

func TestHide(t *testing.T) {
	m, _ := New().Show("Saved", StyleSuccess)
	m = m.Hide()

	assert.False(t, m.Visible())
	assert.Empty(t, m.View())
}

func TestView_Styles(t *testing.T) {
	m, _ := New().Show("weight is required", StyleError)
	assert.Contains(t, m.View(), "❌ weight is required")

	m, _ = m.Show("Imported", StyleInfo)
	assert.Contains(t, m.View(), "ℹ️ Imported")
	assert.NotContains(t, m.View(), "weight is required")
}

func TestUpdate_IgnoresStaleDismiss(t *testing.T) {
	m, _ := New().Show("first", StyleSuccess)
	stale := DismissMsg{seq: m.seq}
	m, _ = m.Show("second", StyleSuccess)

	m = m.Update(stale)
	assert.True(t, m.Visible(), "an older toast's timer must not hide the new one")

	m = m.Update(DismissMsg{seq: m.seq})
	assert.False(t, m.Visible())
}

func TestView_EmptyWhenMessageEmpty(t *testing.T) {
	m := Model{visible: true, message: ""}

	assert.Empty(t, m.View())
}
