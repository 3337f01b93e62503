package handler

import (
	"edufleex-go/internal/api/dto"
	"edufleex-go/internal/api/response"
	"edufleex-go/internal/service"
	"edufleex-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SearchHandler struct {
	searchService *service.SearchService
}

func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// SearchVideos 搜索视频
// @Summary 搜索视频
// @Description 按关键词搜索标题、简介和学科，优先使用 Elasticsearch，不可用时回退数据库
// @Tags 搜索
// @Produce json
// @Param q query string false "搜索关键词"
// @Param subject query string false "学科"
// @Param grade query string false "年级"
// @Param page query int false "页码" default(1)
// @Param pageSize query int false "每页数量" default(20)
// @Success 200 {object} response.Response{data=dto.SearchVideoData} "搜索成功"
// @Failure 400 {object} response.ErrorResponse "请求参数无效"
// @Router /search/videos [get]
func (h *SearchHandler) SearchVideos(c *gin.Context) {
	var req dto.SearchVideoRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 || req.PageSize > 100 {
		req.PageSize = 20
	}

	data, err := h.searchService.SearchVideos(c.Request.Context(), &req)
	if err != nil {
		logger.Error("Search videos failed", zap.Error(err))
		response.Error(c, err)
		return
	}

	response.OK(c, "搜索成功", data)
}

// SyncVideosToES 同步视频到ES
// @Summary 同步视频到ES
// @Description 将数据库中的视频全量同步到 Elasticsearch
// @Tags 搜索
// @Produce json
// @Success 200 {object} response.Response{data=dto.SyncResult} "同步成功"
// @Failure 500 {object} response.ErrorResponse "同步失败"
// @Router /search/sync [post]
func (h *SearchHandler) SyncVideosToES(c *gin.Context) {
	result, err := h.searchService.SyncVideosToES(c.Request.Context())
	if err != nil {
		logger.Error("Sync videos to ES failed", zap.Error(err))
		response.Error(c, err)
		return
	}

	response.OK(c, "同步完成", result)
}
