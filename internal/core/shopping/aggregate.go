package shopping

import (
	"fmt"
	"strings"

	"bento-planner/internal/core/planner"
	"bento-planner/internal/pkg/common"
)

// Tally 正規化食材名稱到出現次數的對照表
type Tally map[string]int

// Aggregate 走訪整份獻立，統計每項食材出現的次數
// 缺少 items 或 ingredients 欄位視為格式錯誤，不靜默跳過
func Aggregate(plan planner.Plan) (Tally, error) {
	tally := make(Tally)

	for i, day := range plan {
		if day.Items == nil {
			return nil, common.ErrPlanFormat.WithDetail(
				fmt.Errorf("day %d (%s) is missing items", i+1, day.Day))
		}
		for _, dish := range day.Items {
			if dish.Ingredients == nil {
				return nil, common.ErrPlanFormat.WithDetail(
					fmt.Errorf("dish %q on day %d is missing ingredients", dish.Name, i+1))
			}
			for _, ing := range dish.Ingredients {
				key := NormalizeIngredientName(ing)
				if key == "" {
					continue
				}
				tally[key]++
			}
		}
	}

	return tally, nil
}

// NormalizeIngredientName 食材描述正規化為統計鍵
// 目前策略：取第一個空白分隔的詞，把「醬油 1小匙」之類的
// 份量後綴去掉。策略集中在這一個函式，之後要換掉不必動統計迴圈
func NormalizeIngredientName(ingredient string) string {
	fields := strings.Fields(ingredient)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// seasoningKeywords 調味料關鍵字
// 純展示層分類策略，與統計本身無關
var seasoningKeywords = []string{
	"醬油", "味噌", "味醂", "砂糖", "鹽", "糖", "胡椒", "醋", "油", "酒", "芝麻", "高湯",
}

// Classified 調味料與食材兩類統計
type Classified struct {
	Seasoning Tally `json:"seasoning"`
	Food      Tally `json:"food"`
}

// Classify 把統計結果分成調味料與一般食材兩桶
func Classify(t Tally) Classified {
	out := Classified{
		Seasoning: make(Tally),
		Food:      make(Tally),
	}
	for name, count := range t {
		if isSeasoning(name) {
			out.Seasoning[name] = count
		} else {
			out.Food[name] = count
		}
	}
	return out
}

func isSeasoning(name string) bool {
	for _, kw := range seasoningKeywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}
