package handler

import (
	"edufleex-go/internal/api/dto"
	"edufleex-go/internal/api/response"
	"edufleex-go/internal/service"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	catalogService *service.CatalogService
}

func NewCategoryHandler(catalogService *service.CatalogService) *CategoryHandler {
	return &CategoryHandler{catalogService: catalogService}
}

// List GET /api/v1/categories
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.catalogService.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "获取分类列表成功", categories)
}

// Create POST /api/v1/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CategoryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	info, err := h.catalogService.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "分类创建成功", info)
}
