package grocery

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	groceryCore "github.com/ItsYanz22/Smart-Food-Waste/internal/core/grocery"
	"github.com/ItsYanz22/Smart-Food-Waste/internal/core/recipe"
	"github.com/ItsYanz22/Smart-Food-Waste/internal/pkg/common"
)

// GenerateRequest 購物清單生成請求
type GenerateRequest struct {
	DishName      string `json:"dish_name" binding:"required"`      // 菜名
	HouseholdSize int    `json:"household_size" binding:"required"` // 家庭人數
}

// GenerateResponse 購物清單生成結果
type GenerateResponse struct {
	GroceryList common.GroceryList      `json:"grocery_list"`
	Recipe      common.Recipe           `json:"recipe"`
	Nutrition   common.NutritionSummary `json:"nutrition_per_serving"`
}

// Handler 購物清單處理程序
type Handler struct {
	resolver *recipe.Resolver
}

// NewHandler 創建處理程序
func NewHandler(resolver *recipe.Resolver) *Handler {
	return &Handler{resolver: resolver}
}

// HandleGenerate 解析菜名、按家庭人數縮放食材並組購物清單
func (h *Handler) HandleGenerate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("Invalid grocery generate request", zap.Error(err))
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrInvalidRequest.Code,
			Message: common.ErrInvalidRequest.Message,
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
	if req.HouseholdSize <= 0 {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrHouseholdRequired.Code,
			Message: common.ErrHouseholdRequired.Message,
		})
		return
	}

	result := h.resolver.Resolve(c.Request.Context(), req.DishName)
	list := groceryCore.BuildList(
		result.Recipe.DishName,
		result.Recipe.Ingredients,
		result.Recipe.Servings,
		req.HouseholdSize,
	)

	common.LogInfo("購物清單已生成",
		zap.String("菜名", result.Recipe.DishName),
		zap.Int("家庭人數", req.HouseholdSize),
		zap.Int("項目數", len(list.Items)),
	)

	c.JSON(http.StatusOK, GenerateResponse{
		GroceryList: list,
		Recipe:      result.Recipe,
		Nutrition:   result.Recipe.Nutrition,
	})
}
