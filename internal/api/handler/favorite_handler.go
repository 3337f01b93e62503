package handler

import (
	"edufleex-go/internal/api/dto"
	"edufleex-go/internal/api/middleware"
	"edufleex-go/internal/api/response"
	"edufleex-go/internal/service"

	"github.com/gin-gonic/gin"
)

type FavoriteHandler struct {
	favoriteService *service.FavoriteService
}

func NewFavoriteHandler(favoriteService *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

// List 获取收藏列表
// @Summary 获取收藏列表
// @Description 获取用户的收藏记录，按收藏时间倒序，包含视频和分类
// @Tags 收藏
// @Produce json
// @Param userId query string false "用户ID（未携带令牌时生效）"
// @Success 200 {object} response.Response{data=[]dto.FavoriteInfo} "获取成功"
// @Failure 503 {object} response.ErrorResponse "存储不可用"
// @Router /favorites [get]
func (h *FavoriteHandler) List(c *gin.Context) {
	userID := middleware.ResolveUserID(c, c.Query("userId"))

	favorites, err := h.favoriteService.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "获取收藏列表成功", favorites)
}

// Add 收藏视频
// @Summary 收藏视频
// @Description 幂等收藏，重复收藏返回已有记录
// @Tags 收藏
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.FavoriteRequest true "收藏信息"
// @Success 200 {object} response.Response{data=dto.FavoriteInfo} "收藏成功"
// @Failure 400 {object} response.ErrorResponse "请求参数无效"
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Failure 429 {object} response.ErrorResponse "请求过于频繁"
// @Router /favorites [post]
func (h *FavoriteHandler) Add(c *gin.Context) {
	var req dto.FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	userID := middleware.ResolveUserID(c, req.UserID)

	info, err := h.favoriteService.AddFavorite(c.Request.Context(), userID, req.VideoID)
	if err != nil {
		response.Error(c, err, "视频不存在")
		return
	}

	response.OK(c, "收藏成功", info)
}

// Remove 取消收藏
// @Summary 取消收藏
// @Description 幂等取消收藏，未收藏时返回 removed=false
// @Tags 收藏
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.FavoriteRequest true "收藏信息"
// @Success 200 {object} response.Response{data=dto.FavoriteRemoveData} "取消收藏成功"
// @Failure 400 {object} response.ErrorResponse "请求参数无效"
// @Failure 429 {object} response.ErrorResponse "请求过于频繁"
// @Router /favorites [delete]
func (h *FavoriteHandler) Remove(c *gin.Context) {
	var req dto.FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	userID := middleware.ResolveUserID(c, req.UserID)

	removed, err := h.favoriteService.RemoveFavorite(c.Request.Context(), userID, req.VideoID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "取消收藏成功", dto.FavoriteRemoveData{Removed: removed})
}

// GetStatus 获取收藏状态
// @Summary 获取收藏状态
// @Tags 收藏
// @Produce json
// @Param videoId path string true "视频ID"
// @Param userId query string false "用户ID"
// @Success 200 {object} response.Response "查询成功"
// @Router /favorites/{videoId}/status [get]
func (h *FavoriteHandler) GetStatus(c *gin.Context) {
	videoRef := c.Param("videoId")
	if !dto.ValidVideoRef(videoRef) {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	userID := middleware.ResolveUserID(c, c.Query("userId"))

	favorited, err := h.favoriteService.IsFavorited(c.Request.Context(), userID, videoRef)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "查询收藏状态成功", gin.H{
		"videoId":     videoRef,
		"isFavorited": favorited,
	})
}

// BatchStatus 批量查询收藏状态
// @Summary 批量查询收藏状态
// @Tags 收藏
// @Accept json
// @Produce json
// @Param request body dto.BatchFavoriteStatusRequest true "视频ID列表"
// @Success 200 {object} response.Response "查询成功"
// @Router /favorites/batch/status [post]
func (h *FavoriteHandler) BatchStatus(c *gin.Context) {
	var req dto.BatchFavoriteStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	userID := middleware.ResolveUserID(c, req.UserID)

	statusMap, err := h.favoriteService.BatchStatus(c.Request.Context(), userID, req.VideoIDs)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "批量查询收藏状态成功", statusMap)
}
