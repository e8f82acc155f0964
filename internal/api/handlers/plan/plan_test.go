package plan

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bento-planner/internal/core/ai/service"
	"bento-planner/internal/core/corpus"
	"bento-planner/internal/core/planner"
	"bento-planner/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAI 回傳固定內容或固定錯誤
type stubAI struct {
	content string
	err     error
}

func (s *stubAI) ProcessRequest(context.Context, string, string) (*service.Response, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &service.Response{Content: s.content}, nil
}

func handlerCorpus() *corpus.Corpus {
	return corpus.New([]corpus.Recipe{
		{Name: "唐揚炸雞", Category: corpus.CategoryMain, Time: 20, Ingredients: []string{"雞腿 2支", "醬油 1大匙"}, Steps: []string{"炸"}},
		{Name: "薑燒豬肉", Category: corpus.CategoryMain, Time: 15, Ingredients: []string{"豬五花 150克"}, Steps: []string{"炒"}},
		{Name: "玉子燒", Category: corpus.CategorySide, Time: 8, Ingredients: []string{"蛋 3顆"}, Steps: []string{"煎"}},
		{Name: "涼拌菠菜", Category: corpus.CategorySide, Time: 6, Ingredients: []string{"菠菜 1把"}, Steps: []string{"燙"}},
		{Name: "胡麻豆腐", Category: corpus.CategorySide, Time: 5, Ingredients: []string{"嫩豆腐 1塊"}, Steps: []string{"拌"}},
	})
}

func newTestRouter(ai planner.AIService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	c := handlerCorpus()
	h := NewHandler(
		planner.NewBasicSelector(c),
		planner.NewProPlanner(ai, c),
		c,
	)

	r := gin.New()
	v1 := r.Group("/api/v1")
	{
		v1.POST("/plan/basic", h.HandleBasicPlan)
		v1.POST("/plan/pro", h.HandleProPlan)
		v1.POST("/shopping", h.HandleShopping)
		v1.GET("/recipe", h.HandleRecipeLookup)
	}
	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBasicPlanEndpoint(t *testing.T) {
	r := newTestRouter(&stubAI{})

	w := doRequest(t, r, http.MethodPost, "/api/v1/plan/basic", `{"days":2}`)
	require.Equal(t, http.StatusOK, w.Code)

	var plan planner.Plan
	require.NoError(t, common.ParseJSON(w.Body.String(), &plan))
	require.Len(t, plan, 2)
	assert.Equal(t, "Mon", plan[0].Day)
	assert.Equal(t, "Tue", plan[1].Day)
}

func TestBasicPlanFormFieldsAsStrings(t *testing.T) {
	r := newTestRouter(&stubAI{})

	// 前端 FormData 過來的數字常是字串，排除詞是逗號串接
	w := doRequest(t, r, http.MethodPost, "/api/v1/plan/basic",
		`{"days":"2","maxTime":"30","dislikes":"醬油"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var plan planner.Plan
	require.NoError(t, common.ParseJSON(w.Body.String(), &plan))
	require.Len(t, plan, 2)
	for _, day := range plan {
		for _, item := range day.Items {
			for _, ing := range item.Ingredients {
				assert.NotContains(t, ing, "醬油")
			}
		}
	}
}

func TestBasicPlanBadBody(t *testing.T) {
	r := newTestRouter(&stubAI{})

	w := doRequest(t, r, http.MethodPost, "/api/v1/plan/basic", `{"days":`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), common.ErrCodeInvalidRequest)
}

func TestProPlanEndpoint(t *testing.T) {
	r := newTestRouter(&stubAI{content: `[{"day":"Mon","items":[{"name":"唐揚炸雞","category":"main","time":20,"ingredients":["雞腿 2支"],"steps":["炸"]}]}]`})

	w := doRequest(t, r, http.MethodPost, "/api/v1/plan/pro", `{"days":1}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "唐揚炸雞")
}

func TestProPlanQuota(t *testing.T) {
	r := newTestRouter(&stubAI{err: common.ErrQuotaExceeded.WithDetail(errors.New("insufficient_quota"))})

	w := doRequest(t, r, http.MethodPost, "/api/v1/plan/pro", `{"days":1}`)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), `"error":"quota"`)
}

func TestProPlanServerError(t *testing.T) {
	r := newTestRouter(&stubAI{content: "not json at all"})

	w := doRequest(t, r, http.MethodPost, "/api/v1/plan/pro", `{"days":1}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"error":"server"`)
}

func TestShoppingEndpoint(t *testing.T) {
	r := newTestRouter(&stubAI{})

	body := `[
  {"day":"Mon","items":[
    {"name":"唐揚炸雞","category":"main","ingredients":["雞腿 2支","醬油 1大匙"],"steps":[]},
    {"name":"照燒雞腿","category":"main","ingredients":["雞腿 1支","醬油 2大匙"],"steps":[]}
  ]}
]`
	w := doRequest(t, r, http.MethodPost, "/api/v1/shopping", body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"雞腿":2`)
	assert.Contains(t, w.Body.String(), `"醬油":2`)
}

func TestShoppingClassifyQuery(t *testing.T) {
	r := newTestRouter(&stubAI{})

	body := `[{"day":"Mon","items":[{"name":"唐揚炸雞","category":"main","ingredients":["雞腿 2支","醬油 1大匙"],"steps":[]}]}]`
	w := doRequest(t, r, http.MethodPost, "/api/v1/shopping?classify=1", body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"seasoning"`)
	assert.Contains(t, w.Body.String(), `"food"`)
}

func TestShoppingMalformedPlan(t *testing.T) {
	r := newTestRouter(&stubAI{})

	// items 欄位缺失是格式錯誤而非空清單
	w := doRequest(t, r, http.MethodPost, "/api/v1/shopping", `[{"day":"Mon"}]`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"error":"format"`)
}

func TestShoppingUnparsableBody(t *testing.T) {
	r := newTestRouter(&stubAI{})

	w := doRequest(t, r, http.MethodPost, "/api/v1/shopping", `{"not":"a plan"`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"error":"format"`)
}

func TestRecipeLookupEndpoint(t *testing.T) {
	r := newTestRouter(&stubAI{})

	w := doRequest(t, r, http.MethodGet, "/api/v1/recipe?name=唐揚炸雞", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "雞腿 2支")
}

func TestRecipeLookupMissingName(t *testing.T) {
	r := newTestRouter(&stubAI{})

	w := doRequest(t, r, http.MethodGet, "/api/v1/recipe", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"error":"missing_name"`)
}

func TestRecipeLookupNotFound(t *testing.T) {
	r := newTestRouter(&stubAI{})

	w := doRequest(t, r, http.MethodGet, "/api/v1/recipe?name=不存在", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"error":"not_found"`)
}
