package planner

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTermListUnmarshal(t *testing.T) {
	t.Run("array form", func(t *testing.T) {
		var tl TermList
		require.NoError(t, json.Unmarshal([]byte(`[" 洋蔥 ", "青椒", "", "洋蔥"]`), &tl))
		assert.Equal(t, TermList{"洋蔥", "青椒"}, tl)
	})

	t.Run("comma separated string", func(t *testing.T) {
		var tl TermList
		require.NoError(t, json.Unmarshal([]byte(`"洋蔥, 青椒 ,,洋蔥"`), &tl))
		assert.Equal(t, TermList{"洋蔥", "青椒"}, tl)
	})

	t.Run("ideographic comma", func(t *testing.T) {
		var tl TermList
		require.NoError(t, json.Unmarshal([]byte(`"洋蔥、青椒"`), &tl))
		assert.Equal(t, TermList{"洋蔥", "青椒"}, tl)
	})

	t.Run("rejects other shapes", func(t *testing.T) {
		var tl TermList
		assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &tl))
	})
}

func TestFlexIntUnmarshal(t *testing.T) {
	var c Constraints
	require.NoError(t, json.Unmarshal([]byte(`{"days":"7","maxTime":20,"targetCal":""}`), &c))
	assert.Equal(t, 7, c.Days.Int())
	assert.Equal(t, 20, c.MaxTime.Int())
	assert.Equal(t, 0, c.TargetCal.Int())
}

func TestConstraintsDefaults(t *testing.T) {
	var c Constraints
	assert.Equal(t, DefaultDays, c.DaysOrDefault())
	assert.Equal(t, DefaultServings, c.ServingsOrDefault())

	c.Days = 3
	c.Servings = 2
	assert.Equal(t, 3, c.DaysOrDefault())
	assert.Equal(t, 2, c.ServingsOrDefault())
}
