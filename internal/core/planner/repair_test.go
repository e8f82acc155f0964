package planner

import (
	"errors"
	"testing"

	"bento-planner/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripCodeFence(t *testing.T) {
	in := "```json\n[{\"day\":\"Mon\"}]\n```"
	assert.Equal(t, `[{"day":"Mon"}]`, stripCodeFence(in))

	// 沒有圍欄時原樣輸出
	assert.Equal(t, `[{"day":"Mon"}]`, stripCodeFence(`[{"day":"Mon"}]`))
}

func TestExtractArray(t *testing.T) {
	in := "Here is your plan:\n[{\"day\":\"Mon\"}]\nEnjoy!"
	assert.Equal(t, `[{"day":"Mon"}]`, extractArray(in))

	// 找不到陣列時原樣輸出
	assert.Equal(t, "no array here", extractArray("no array here"))
	assert.Equal(t, "] backwards [", extractArray("] backwards ["))
}

func TestStripTrailingCommas(t *testing.T) {
	assert.Equal(t, `[{"a":1}]`, stripTrailingCommas(`[{"a":1,}]`))
	assert.Equal(t, `[{"a":[1,2]}]`, stripTrailingCommas(`[{"a":[1,2,]},]`))
}

func TestParsePlanRepairsNoisyOutput(t *testing.T) {
	raw := "Sure! Here is the plan:\n" +
		"```json\n" +
		`[
  {"day":"Mon","items":[{"name":"唐揚炸雞","category":"main","time":20,"ingredients":["雞腿 2支"],"steps":["炸"]},]},
]` + "\n```\nLet me know if you need changes."

	plan, err := ParsePlan(raw)
	require.NoError(t, err)
	require.Len(t, plan, 1)
	assert.Equal(t, "Mon", plan[0].Day)
	require.Len(t, plan[0].Items, 1)
	assert.Equal(t, "唐揚炸雞", plan[0].Items[0].Name)
}

func TestParsePlanCleanInput(t *testing.T) {
	plan, err := ParsePlan(`[{"day":"Tue","items":[]}]`)
	require.NoError(t, err)
	require.Len(t, plan, 1)
	assert.Equal(t, "Tue", plan[0].Day)
	assert.Empty(t, plan[0].Items)
}

func TestParsePlanUnrepairable(t *testing.T) {
	_, err := ParsePlan("I could not generate a plan today, sorry.")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrGenerationFailed))

	var ce *common.CustomError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, common.ErrCodeServer, ce.Code)
}
