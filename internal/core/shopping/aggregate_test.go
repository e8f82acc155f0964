package shopping

import (
	"errors"
	"testing"

	"bento-planner/internal/core/corpus"
	"bento-planner/internal/core/planner"
	"bento-planner/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePlan() planner.Plan {
	return planner.Plan{
		{
			Day: "Mon",
			Items: []corpus.Recipe{
				{Name: "唐揚炸雞", Category: corpus.CategoryMain, Ingredients: []string{"雞腿 2支", "醬油 1大匙"}},
				{Name: "玉子燒", Category: corpus.CategorySide, Ingredients: []string{"蛋 3顆", "砂糖 1小匙"}},
			},
		},
		{
			Day: "Tue",
			Items: []corpus.Recipe{
				{Name: "照燒雞腿", Category: corpus.CategoryMain, Ingredients: []string{"雞腿 1支", "醬油 2大匙"}},
			},
		},
	}
}

func TestAggregateTally(t *testing.T) {
	tally, err := Aggregate(samplePlan())
	require.NoError(t, err)

	// 同一食材不同份量描述合併為同一鍵
	assert.Equal(t, 2, tally["雞腿"])
	assert.Equal(t, 2, tally["醬油"])
	assert.Equal(t, 1, tally["蛋"])
	assert.Equal(t, 1, tally["砂糖"])
	assert.Len(t, tally, 4)
}

func TestAggregateOrderIndependent(t *testing.T) {
	plan := samplePlan()
	reversed := planner.Plan{plan[1], plan[0]}

	a, err := Aggregate(plan)
	require.NoError(t, err)
	b, err := Aggregate(reversed)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestAggregateEmptyPlan(t *testing.T) {
	tally, err := Aggregate(planner.Plan{})
	require.NoError(t, err)
	assert.Empty(t, tally)
}

func TestAggregateMissingItems(t *testing.T) {
	plan := planner.Plan{{Day: "Mon", Items: nil}}

	_, err := Aggregate(plan)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrPlanFormat))
}

func TestAggregateMissingIngredients(t *testing.T) {
	plan := planner.Plan{
		{
			Day: "Mon",
			Items: []corpus.Recipe{
				{Name: "謎之料理", Category: corpus.CategoryMain, Ingredients: nil},
			},
		},
	}

	_, err := Aggregate(plan)
	require.Error(t, err)

	var ce *common.CustomError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, common.ErrCodeFormat, ce.Code)
}

func TestAggregateSkipsBlankIngredient(t *testing.T) {
	plan := planner.Plan{
		{
			Day: "Mon",
			Items: []corpus.Recipe{
				{Name: "怪菜", Category: corpus.CategoryMain, Ingredients: []string{"  ", "豆腐 1塊"}},
			},
		},
	}

	tally, err := Aggregate(plan)
	require.NoError(t, err)
	assert.Equal(t, Tally{"豆腐": 1}, tally)
}

func TestNormalizeIngredientName(t *testing.T) {
	assert.Equal(t, "醬油", NormalizeIngredientName("醬油 1小匙"))
	assert.Equal(t, "雞腿", NormalizeIngredientName("雞腿 2支"))
	assert.Equal(t, "鹽", NormalizeIngredientName("鹽"))
	assert.Equal(t, "", NormalizeIngredientName("   "))
}

func TestClassify(t *testing.T) {
	tally := Tally{"雞腿": 2, "醬油": 2, "砂糖": 1, "蛋": 1, "味噌": 1}

	out := Classify(tally)
	assert.Equal(t, Tally{"醬油": 2, "砂糖": 1, "味噌": 1}, out.Seasoning)
	assert.Equal(t, Tally{"雞腿": 2, "蛋": 1}, out.Food)
}
