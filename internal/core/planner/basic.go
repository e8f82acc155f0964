package planner

import (
	"math/rand"

	"bento-planner/internal/core/corpus"

	"go.uber.org/zap"

	"bento-planner/internal/pkg/common"
)

// weekdays 星期標籤，第 8 天起回繞重複
var weekdays = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// sidesPerDay 每日副菜槽位數
const sidesPerDay = 2

// BasicSelector 本地隨機抽選的獻立產生器
// 不碰網路，對語料庫只讀，所有可變池都是單次請求內的淺拷貝
type BasicSelector struct {
	corpus *corpus.Corpus
}

// NewBasicSelector 創建基本獻立產生器
func NewBasicSelector(c *corpus.Corpus) *BasicSelector {
	return &BasicSelector{corpus: c}
}

// Generate 依約束條件產生多天獻立
// 池子耗盡時當天可能不足 3 道菜，這是刻意的降級策略而非錯誤；
// 需要保底數量的呼叫端應先用 SufficientFor 檢查
func (s *BasicSelector) Generate(cons Constraints) Plan {
	days := cons.DaysOrDefault()

	pool := s.filterPool(cons)
	mains, sides := splitByCategory(pool)

	// 庫存優先池：過濾後仍可用、且食材命中庫存詞的食譜
	var stockPool []corpus.Recipe
	if len(cons.Stock) > 0 {
		for _, r := range pool {
			if recipeHasStock(r, cons.Stock) {
				stockPool = append(stockPool, r)
			}
		}
	}

	plan := make(Plan, 0, days)
	for i := 0; i < days; i++ {
		day := PlanDay{
			Day:   weekdays[i%7],
			Items: []corpus.Recipe{},
		}

		// 先嘗試從庫存優先池抽一道
		pickedMain := false
		if len(stockPool) > 0 {
			r := removeRandom(&stockPool)
			removeByName(&mains, r.Name)
			removeByName(&sides, r.Name)
			day.Items = append(day.Items, r)
			pickedMain = r.Category == corpus.CategoryMain
		}

		// 沒抽到主菜就補一道
		if !pickedMain && len(mains) > 0 {
			r := removeRandom(&mains)
			removeByName(&stockPool, r.Name)
			day.Items = append(day.Items, r)
		}

		// 補副菜到滿槽或池子耗盡
		for countSides(day.Items) < sidesPerDay && len(sides) > 0 {
			r := removeRandom(&sides)
			removeByName(&stockPool, r.Name)
			day.Items = append(day.Items, r)
		}

		plan = append(plan, day)
	}

	return plan
}

// SufficientFor 池子充足性啟發式檢查：主菜夠每天一道、副菜夠每天兩道
func (s *BasicSelector) SufficientFor(cons Constraints) bool {
	days := cons.DaysOrDefault()
	mains, sides := splitByCategory(s.filterPool(cons))
	return len(mains) >= days && len(sides) >= sidesPerDay*days
}

// filterPool 語料庫過濾：排除詞、時間上限、熱量上限皆為硬性條件
func (s *BasicSelector) filterPool(cons Constraints) []corpus.Recipe {
	var pool []corpus.Recipe
	excluded := 0
	for _, r := range s.corpus.All() {
		if recipeHasDislike(r, cons.Dislikes) {
			excluded++
			continue
		}
		if cons.MaxTime.Int() > 0 && r.Time > cons.MaxTime.Int() {
			excluded++
			continue
		}
		if cons.TargetCal.Int() > 0 && r.Calories > cons.TargetCal.Int() {
			excluded++
			continue
		}
		pool = append(pool, r)
	}

	if excluded > 0 {
		common.LogDebug("語料庫過濾完成",
			zap.Int("可用", len(pool)),
			zap.Int("排除", excluded),
		)
	}

	return pool
}

// splitByCategory 依分類拆成主菜池與副菜池
func splitByCategory(pool []corpus.Recipe) (mains, sides []corpus.Recipe) {
	for _, r := range pool {
		switch r.Category {
		case corpus.CategoryMain:
			mains = append(mains, r)
		case corpus.CategorySide:
			sides = append(sides, r)
		}
	}
	return mains, sides
}

// removeRandom 均勻隨機取出一筆並自池中移除
func removeRandom(pool *[]corpus.Recipe) corpus.Recipe {
	i := rand.Intn(len(*pool))
	r := (*pool)[i]
	(*pool)[i] = (*pool)[len(*pool)-1]
	*pool = (*pool)[:len(*pool)-1]
	return r
}

// removeByName 依名稱自池中移除，用於維持整份獻立不重複
func removeByName(pool *[]corpus.Recipe, name string) {
	for i, r := range *pool {
		if r.Name == name {
			(*pool)[i] = (*pool)[len(*pool)-1]
			*pool = (*pool)[:len(*pool)-1]
			return
		}
	}
}

// countSides 數一天中的副菜數
func countSides(items []corpus.Recipe) int {
	n := 0
	for _, r := range items {
		if r.Category == corpus.CategorySide {
			n++
		}
	}
	return n
}
