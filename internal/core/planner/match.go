package planner

import (
	"strings"

	"bento-planner/internal/core/corpus"
)

// meatSuffix 肉類詞尾
// 使用者輸入的庫存詞通常比語料庫中的食材描述更籠統（例如「雞肉」對上
// 「雞腿 2支」），詞尾去除後再比對一次即可涵蓋這類寫法
const meatSuffix = "肉"

// MatchesStock 庫存詞比對（含詞尾正規化）
// 原詞或去掉肉字詞尾後的詞，任一是食材描述的子字串即視為命中
func MatchesStock(ingredient, term string) bool {
	if strings.Contains(ingredient, term) {
		return true
	}
	if stripped, ok := stripMeatSuffix(term); ok {
		return strings.Contains(ingredient, stripped)
	}
	return false
}

// MatchesDislike 排除詞比對（純子字串）
// 排除時過度命中比漏掉更糟，所以不做詞尾正規化
func MatchesDislike(ingredient, term string) bool {
	return strings.Contains(ingredient, term)
}

// stripMeatSuffix 去除肉字詞尾，回傳是否有去除
func stripMeatSuffix(term string) (string, bool) {
	stripped := strings.TrimSuffix(term, meatSuffix)
	if stripped == term || stripped == "" {
		return "", false
	}
	return stripped, true
}

// recipeHasDislike 食譜的任一食材命中任一排除詞
func recipeHasDislike(r corpus.Recipe, dislikes TermList) bool {
	for _, ing := range r.Ingredients {
		for _, term := range dislikes {
			if MatchesDislike(ing, term) {
				return true
			}
		}
	}
	return false
}

// recipeHasStock 食譜的任一食材命中任一庫存詞
func recipeHasStock(r corpus.Recipe, stock TermList) bool {
	for _, ing := range r.Ingredients {
		for _, term := range stock {
			if MatchesStock(ing, term) {
				return true
			}
		}
	}
	return false
}
