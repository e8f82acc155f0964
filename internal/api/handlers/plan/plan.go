package plan

import (
	"errors"
	"net/http"

	"bento-planner/internal/core/corpus"
	"bento-planner/internal/core/planner"
	"bento-planner/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 獻立相關處理器
type Handler struct {
	basic  *planner.BasicSelector
	pro    *planner.ProPlanner
	corpus *corpus.Corpus
}

// NewHandler 創建獻立處理器
func NewHandler(basic *planner.BasicSelector, pro *planner.ProPlanner, c *corpus.Corpus) *Handler {
	return &Handler{
		basic:  basic,
		pro:    pro,
		corpus: c,
	}
}

// HandleBasicPlan 本地隨機抽選獻立
func (h *Handler) HandleBasicPlan(c *gin.Context) {
	var cons planner.Constraints
	if err := common.DecodeJSON(c.Request.Body, &cons); err != nil {
		respondError(c, common.ErrInvalidRequest.WithDetail(err))
		return
	}

	// 池子不足只記 log，降級出菜是預期行為
	if !h.basic.SufficientFor(cons) {
		common.LogWarn("過濾後的食譜池不足，獻立可能缺菜",
			zap.Int("請求天數", cons.DaysOrDefault()),
			zap.Strings("排除詞", cons.Dislikes),
		)
	}

	p := h.basic.Generate(cons)

	common.LogInfo("基本獻立生成完成",
		zap.Int("天數", len(p)),
	)

	c.JSON(http.StatusOK, p)
}

// HandleProPlan 委託外部模型生成獻立
func (h *Handler) HandleProPlan(c *gin.Context) {
	var cons planner.Constraints
	if err := common.DecodeJSON(c.Request.Body, &cons); err != nil {
		respondError(c, common.ErrInvalidRequest.WithDetail(err))
		return
	}

	p, err := h.pro.Generate(c.Request.Context(), cons)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// respondError 把錯誤映射為對外的狀態碼與種類標籤
func respondError(c *gin.Context, err error) {
	var ce *common.CustomError
	if errors.As(err, &ce) {
		resp := common.ErrorResponse{
			Error:   ce.Code,
			Message: ce.Message,
		}
		if ce.Err != nil {
			resp.Detail = ce.Err.Error()
		}
		c.JSON(ce.Status, resp)
		return
	}

	c.JSON(http.StatusInternalServerError, common.ErrorResponse{
		Error:   common.ErrCodeInternalError,
		Message: "服務器內部錯誤",
		Detail:  err.Error(),
	})
}
