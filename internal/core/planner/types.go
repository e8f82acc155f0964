package planner

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"bento-planner/internal/core/corpus"
)

// 預設請求參數
const (
	DefaultDays     = 5
	DefaultServings = 1
)

// PlanDay 一天份的獻立
type PlanDay struct {
	Day   string          `json:"day"`
	Items []corpus.Recipe `json:"items"`
}

// Plan 多天獻立，長度等於請求的天數
type Plan []PlanDay

// TermList 食材詞彙清單
// 前端可能送陣列，也可能送逗號分隔字串，進入內部前統一展開成
// 去除空白、去重後的詞彙切片
type TermList []string

// UnmarshalJSON 同時接受 JSON 陣列與分隔字串兩種形式
func (t *TermList) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*t = normalizeTerms(arr)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("term list must be an array or a delimited string")
	}
	*t = SplitTerms(s)
	return nil
}

// SplitTerms 將分隔字串展開為正規化詞彙清單
// 同時支援半形逗號與頓號
func SplitTerms(s string) TermList {
	s = strings.ReplaceAll(s, "、", ",")
	return normalizeTerms(strings.Split(s, ","))
}

// normalizeTerms 去除前後空白、丟棄空詞、保序去重
func normalizeTerms(raw []string) TermList {
	seen := make(map[string]struct{}, len(raw))
	out := make(TermList, 0, len(raw))
	for _, term := range raw {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		out = append(out, term)
	}
	return out
}

// FlexInt 寬鬆整數
// 表單送出的數值欄位經 JSON.stringify 後會變成字串（"20" 而非 20），
// 解析時兩種形式都接受
type FlexInt int

// UnmarshalJSON 同時接受數字與數字字串
func (n *FlexInt) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	s = strings.Trim(s, `"`)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid integer value: %s", s)
	}
	*n = FlexInt(v)
	return nil
}

// Int 取整數值
func (n FlexInt) Int() int {
	return int(n)
}

// Constraints 單次獻立請求的約束條件
type Constraints struct {
	Days      FlexInt  `json:"days"`
	Servings  FlexInt  `json:"servings"`
	Dislikes  TermList `json:"dislikes"`
	Stock     TermList `json:"stock"`
	MaxTime   FlexInt  `json:"maxTime"`
	TargetCal FlexInt  `json:"targetCal"`
}

// DaysOrDefault 請求天數，未指定時回傳預設值
func (c Constraints) DaysOrDefault() int {
	if c.Days.Int() > 0 {
		return c.Days.Int()
	}
	return DefaultDays
}

// ServingsOrDefault 請求份量，未指定時回傳預設值
func (c Constraints) ServingsOrDefault() int {
	if c.Servings.Int() > 0 {
		return c.Servings.Int()
	}
	return DefaultServings
}
