package corpus

import (
	"fmt"
	"os"
	"strings"

	"bento-planner/internal/pkg/common"

	"go.uber.org/zap"
)

// 食譜分類
const (
	CategoryMain = "main" // 主菜
	CategorySide = "side" // 副菜
)

// Recipe 單一食譜，語料庫載入後即不可變
type Recipe struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Time        int      `json:"time"`
	Calories    int      `json:"calories,omitempty"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
}

// Corpus 食譜語料庫，啟動時載入一次，之後只讀
type Corpus struct {
	recipes []Recipe
	byName  map[string]int
}

// New 由食譜切片建立語料庫
func New(recipes []Recipe) *Corpus {
	byName := make(map[string]int, len(recipes))
	for i, r := range recipes {
		byName[r.Name] = i
	}
	return &Corpus{
		recipes: recipes,
		byName:  byName,
	}
}

// Load 從 JSON 檔案載入語料庫
func Load(path string) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipes file: %w", err)
	}

	var recipes []Recipe
	if err := common.ParseJSONBytes(data, &recipes); err != nil {
		return nil, fmt.Errorf("failed to parse recipes file: %w", err)
	}

	c := New(recipes)

	common.LogInfo("食譜語料庫已載入",
		zap.String("path", path),
		zap.Int("總數", len(recipes)),
		zap.Int("主菜", len(c.Mains())),
		zap.Int("副菜", len(c.Sides())),
	)

	return c, nil
}

// Len 語料庫中的食譜數量
func (c *Corpus) Len() int {
	return len(c.recipes)
}

// All 回傳全部食譜的淺拷貝切片，呼叫端可自由重排或刪減
func (c *Corpus) All() []Recipe {
	out := make([]Recipe, len(c.recipes))
	copy(out, c.recipes)
	return out
}

// Mains 回傳所有主菜的淺拷貝切片
func (c *Corpus) Mains() []Recipe {
	return c.byCategory(CategoryMain)
}

// Sides 回傳所有副菜的淺拷貝切片
func (c *Corpus) Sides() []Recipe {
	return c.byCategory(CategorySide)
}

func (c *Corpus) byCategory(category string) []Recipe {
	var out []Recipe
	for _, r := range c.recipes {
		if r.Category == category {
			out = append(out, r)
		}
	}
	return out
}

// FindByName 以名稱精確查找食譜
// 名稱為空回傳 missing_name 錯誤，查無資料回傳 not_found 錯誤
func (c *Corpus) FindByName(name string) (Recipe, error) {
	if strings.TrimSpace(name) == "" {
		return Recipe{}, common.ErrMissingName
	}
	idx, ok := c.byName[name]
	if !ok {
		return Recipe{}, common.ErrRecipeNotFound
	}
	return c.recipes[idx], nil
}
