package plan

import (
	"net/http"

	"bento-planner/internal/core/planner"
	"bento-planner/internal/core/shopping"
	"bento-planner/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HandleShopping 把整份獻立的食材統計成買物清單
// 請求體就是 Plan 本身（前端拿到獻立後原樣回傳）
// 加上 ?classify=1 時回傳調味料/食材分桶的結果
func (h *Handler) HandleShopping(c *gin.Context) {
	var p planner.Plan
	if err := common.DecodeJSON(c.Request.Body, &p); err != nil {
		respondError(c, common.ErrPlanFormat.WithDetail(err))
		return
	}

	tally, err := shopping.Aggregate(p)
	if err != nil {
		respondError(c, err)
		return
	}

	common.LogInfo("買物清單統計完成",
		zap.Int("天數", len(p)),
		zap.Int("品項數", len(tally)),
	)

	if c.Query("classify") == "1" {
		c.JSON(http.StatusOK, shopping.Classify(tally))
		return
	}

	c.JSON(http.StatusOK, tally)
}
