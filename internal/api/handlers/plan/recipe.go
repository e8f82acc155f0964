package plan

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HandleRecipeLookup 以名稱精確查找單一食譜，供詳情頁使用
func (h *Handler) HandleRecipeLookup(c *gin.Context) {
	name := c.Query("name")

	r, err := h.corpus.FindByName(name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, r)
}
