package dish

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ItsYanz22/Smart-Food-Waste/internal/core/recipe"
	"github.com/ItsYanz22/Smart-Food-Waste/internal/pkg/common"
)

// SearchRequest 菜名解析請求
type SearchRequest struct {
	DishName string `json:"dish_name" binding:"required"` // 自由輸入的菜名
}

// SearchResponse 解析結果
type SearchResponse struct {
	Recipe       common.Recipe                `json:"recipe"`
	Instructions common.ProcessedInstructions `json:"instructions"`
}

// Handler 菜名解析處理程序
type Handler struct {
	resolver *recipe.Resolver
}

// NewHandler 創建處理程序
func NewHandler(resolver *recipe.Resolver) *Handler {
	return &Handler{resolver: resolver}
}

// HandleSearch 解析菜名並回傳結構化食譜。
// 解析器本身永不失敗，這裡只需要擋掉空白輸入。
func (h *Handler) HandleSearch(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("Invalid dish search request", zap.Error(err))
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrDishNameRequired.Code,
			Message: common.ErrDishNameRequired.Message,
		})
		return
	}

	if strings.TrimSpace(req.DishName) == "" {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrDishNameRequired.Code,
			Message: common.ErrDishNameRequired.Message,
		})
		return
	}

	result := h.resolver.Resolve(c.Request.Context(), req.DishName)

	c.JSON(http.StatusOK, SearchResponse{
		Recipe:       result.Recipe,
		Instructions: result.Details,
	})
}
