package planner

import (
	"regexp"
	"strings"

	"bento-planner/internal/pkg/common"

	"go.uber.org/zap"
)

// 模型回傳的是不可靠的文字而非保證合法的 JSON，
// 解析前依序套用幾個互相獨立的修復階段，最後做一次嚴格解析。
// 修復失敗不重試，直接回報該次請求失敗。

// repairStage 單一修復階段
type repairStage struct {
	name  string
	apply func(string) string
}

// repairStages 修復階段，依序執行
var repairStages = []repairStage{
	{"strip_code_fence", stripCodeFence},
	{"extract_array", extractArray},
	{"strip_trailing_commas", stripTrailingCommas},
}

var (
	fencePattern         = regexp.MustCompile("(?s)```.*?```")
	trailingCommaPattern = regexp.MustCompile(`,\s*([}\]])`)
)

// stripCodeFence 去除 ```json ... ``` 圍欄，保留圍欄內的內容
func stripCodeFence(s string) string {
	return fencePattern.ReplaceAllStringFunc(s, func(m string) string {
		m = strings.ReplaceAll(m, "```json", "")
		m = strings.ReplaceAll(m, "```", "")
		return strings.TrimSpace(m)
	})
}

// extractArray 擷取第一個 [ 到最後一個 ] 之間的內容
// 模型常在 JSON 前後附加說明文字，這一步把陣列本體撈回來
func extractArray(s string) string {
	first := strings.Index(s, "[")
	last := strings.LastIndex(s, "]")
	if first == -1 || last == -1 || last <= first {
		return s
	}
	return s[first : last+1]
}

// stripTrailingCommas 去除 ] 或 } 前多餘的逗號
func stripTrailingCommas(s string) string {
	return trailingCommaPattern.ReplaceAllString(s, "$1")
}

// RepairModelOutput 依序套用全部修復階段
func RepairModelOutput(raw string) string {
	s := strings.TrimSpace(raw)
	for _, stage := range repairStages {
		s = stage.apply(s)
		common.LogDebug("模型輸出修復階段完成",
			zap.String("階段", stage.name),
			zap.Int("長度", len(s)),
		)
	}
	return s
}

// ParsePlan 修復後嚴格解析為 Plan
func ParsePlan(raw string) (Plan, error) {
	repaired := RepairModelOutput(raw)

	var plan Plan
	if err := common.ParseJSON(repaired, &plan); err != nil {
		return nil, common.ErrGenerationFailed.WithDetail(err)
	}
	return plan, nil
}
