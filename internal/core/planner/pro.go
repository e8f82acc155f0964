package planner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bento-planner/internal/core/ai/service"
	"bento-planner/internal/core/corpus"
	"bento-planner/internal/pkg/common"

	"go.uber.org/zap"
)

// AIService 模型服務介面，方便測試時替換
type AIService interface {
	ProcessRequest(ctx context.Context, instruction, payload string) (*service.Response, error)
}

// ProPlanner 委託外部模型產生獻立
// 對每次請求只做一次阻塞式模型呼叫，不重試、不串流；
// 回傳的獻立是否真的符合約束由呼叫端自行驗證
type ProPlanner struct {
	ai     AIService
	corpus *corpus.Corpus
}

// NewProPlanner 創建 Pro 獻立產生器
func NewProPlanner(ai AIService, c *corpus.Corpus) *ProPlanner {
	return &ProPlanner{
		ai:     ai,
		corpus: c,
	}
}

// Generate 呼叫外部模型產生獻立
// 供應商回報額度用盡時回傳 quota 錯誤，其餘呼叫或解析失敗一律是 server 錯誤
func (p *ProPlanner) Generate(ctx context.Context, cons Constraints) (Plan, error) {
	instruction := buildInstruction(cons)

	payload, err := common.ToJSON(p.corpus.All())
	if err != nil {
		return nil, common.ErrGenerationFailed.WithDetail(err)
	}

	resp, err := p.ai.ProcessRequest(ctx, instruction, payload)
	if err != nil {
		if errors.Is(err, common.ErrQuotaExceeded) {
			return nil, err
		}
		return nil, common.ErrGenerationFailed.WithDetail(err)
	}
	if resp == nil || resp.Content == "" {
		return nil, common.ErrGenerationFailed.WithDetail(fmt.Errorf("empty AI response"))
	}

	plan, err := ParsePlan(resp.Content)
	if err != nil {
		common.LogError("模型輸出無法修復為合法獻立",
			zap.Error(err),
			zap.Int("回應長度", len(resp.Content)),
		)
		return nil, err
	}

	common.LogInfo("Pro 獻立生成完成",
		zap.Int("天數", len(plan)),
	)

	return plan, nil
}

// buildInstruction 把全部約束編進給模型的指令
// 時間與熱量上限對模型只是軟性要求，本服務不驗證其遵從度
func buildInstruction(cons Constraints) string {
	var b strings.Builder

	b.WriteString("You are a JSON generator.\n")
	b.WriteString("Return ONLY a valid JSON array (no ``` fences, no extra text).\n")
	b.WriteString("Schema:\n")
	b.WriteString(`[
  {
    "day":"Mon",
    "items":[
      {"name":"...","category":"main","time":15,"calories":300,"ingredients":["a","b"],"steps":["s1","s2"]}
    ]
  }
]
`)
	b.WriteString("\nRules:\n")
	b.WriteString("- 1 main + 2 sides (3 dishes/day), category is \"main\" or \"side\"\n")
	fmt.Fprintf(&b, "- Portion: %d people\n", cons.ServingsOrDefault())
	if cons.MaxTime.Int() > 0 {
		fmt.Fprintf(&b, "- Each dish <= %d minutes\n", cons.MaxTime.Int())
	}
	if cons.TargetCal.Int() > 0 {
		fmt.Fprintf(&b, "- Each dish <= %d kcal\n", cons.TargetCal.Int())
	}
	if len(cons.Dislikes) > 0 {
		fmt.Fprintf(&b, "- Exclude: %s\n", strings.Join(cons.Dislikes, ", "))
	} else {
		b.WriteString("- Exclude: none\n")
	}
	if len(cons.Stock) > 0 {
		fmt.Fprintf(&b, "- Prefer using stocked ingredients: %s\n", strings.Join(cons.Stock, ", "))
	}
	fmt.Fprintf(&b, "- Provide %d distinct days, day labels cycle Mon,Tue,Wed,Thu,Fri,Sat,Sun\n", cons.DaysOrDefault())
	b.WriteString("- Do not repeat a dish across the plan\n")

	return b.String()
}
