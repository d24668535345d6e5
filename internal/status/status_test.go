package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReporter_Set(t *testing.T) {
	tests := []struct {
		name      string
		message   string
		kind      Kind
		wantState State
		wantClass string
		wantPlain string
	}{
		{"loading", "Refreshing index from source", KindLoading, State{KindLoading, "Refreshing index from source"}, "status status-loading", "● Refreshing index from source"},
		{"error", "Enter a query", KindError, State{KindError, "Enter a query"}, "status status-error", "● Enter a query"},
		{"idle", "Done in 12 ms", KindIdle, State{KindIdle, "Done in 12 ms"}, "status", "● Done in 12 ms"},
		{"empty clears", "", KindError, State{}, "status", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReporter(DefaultStyles())
			r.Set("previous", KindError)
			r.Set(tt.message, tt.kind)

			assert.Equal(t, tt.wantState, r.State())
			assert.Equal(t, tt.wantClass, r.Class())
			assert.Equal(t, tt.wantPlain, r.Plain())
		})
	}
}

func TestReporter_ClearIsIdempotent(t *testing.T) {
	r := NewReporter(DefaultStyles())
	r.Set("Search error in index: 500", KindError)

	r.Set("", KindLoading)
	once := r.State()
	onceView := r.View()

	r.Set("", KindError)
	assert.Equal(t, once, r.State())
	assert.Equal(t, onceView, r.View())
	assert.Equal(t, "", r.View())
	assert.Equal(t, "status", r.Class())
}

func TestReporter_RepeatDoesNotAccumulate(t *testing.T) {
	r := NewReporter(DefaultStyles())
	r.Set("Building results from index", KindLoading)
	first := r.View()
	r.Set("Building results from index", KindLoading)
	assert.Equal(t, first, r.View())
	assert.Contains(t, r.View(), Glyph)
	assert.Contains(t, r.View(), "Building results from index")
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "idle", KindIdle.String())
	assert.Equal(t, "loading", KindLoading.String())
	assert.Equal(t, "error", KindError.String())
}
