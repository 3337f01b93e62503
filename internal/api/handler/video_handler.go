package handler

import (
	"net/http"
	"net/url"
	"strconv"

	"edufleex-go/internal/api/dto"
	"edufleex-go/internal/api/middleware"
	"edufleex-go/internal/api/response"
	"edufleex-go/internal/apperr"
	"edufleex-go/internal/catalog"
	"edufleex-go/internal/service"

	"github.com/gin-gonic/gin"
)

// 缩略图大小上限 5MB
const maxThumbnailSize = 5 << 20

var listQueryKeys = map[string]bool{
	"subject": true, "grade": true, "featured": true,
	"excludeId": true, "sort": true, "limit": true,
}

type VideoHandler struct {
	catalogService *service.CatalogService
	videoService   *service.VideoService
}

func NewVideoHandler(catalogService *service.CatalogService, videoService *service.VideoService) *VideoHandler {
	return &VideoHandler{catalogService: catalogService, videoService: videoService}
}

// List GET /api/v1/videos?subject=&grade=&featured=&excludeId=&sort=&limit=
func (h *VideoHandler) List(c *gin.Context) {
	filter, sort, limit, err := parseListQuery(c.Request.URL.Query())
	if err != nil {
		response.Error(c, err)
		return
	}

	videos, err := h.catalogService.ListVideoInfos(c.Request.Context(), filter, sort, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "获取视频列表成功", videos)
}

// parseListQuery 解析列表查询参数，未知参数直接拒绝
func parseListQuery(q url.Values) (catalog.Filter, catalog.Sort, *int, error) {
	var filter catalog.Filter

	for key := range q {
		if !listQueryKeys[key] {
			return filter, "", nil, apperr.Invalid("unknown query parameter %q", key)
		}
	}

	if _, ok := q["subject"]; ok {
		filter = filter.WithSubject(q.Get("subject"))
	}
	if _, ok := q["grade"]; ok {
		filter = filter.WithGrade(q.Get("grade"))
	}
	if v, ok := q["featured"]; ok {
		featured, err := strconv.ParseBool(v[0])
		if err != nil {
			return filter, "", nil, apperr.Invalid("featured must be true or false")
		}
		filter = filter.WithFeatured(featured)
	}
	if v, ok := q["excludeId"]; ok {
		id, err := strconv.ParseInt(v[0], 10, 64)
		if err != nil {
			return filter, "", nil, apperr.Invalid("excludeId must be an integer")
		}
		filter = filter.Excluding(id)
	}

	sort, err := catalog.ParseSort(q.Get("sort"))
	if err != nil {
		return filter, "", nil, err
	}

	var limit *int
	if v, ok := q["limit"]; ok {
		n, err := strconv.Atoi(v[0])
		if err != nil {
			return filter, "", nil, apperr.Invalid("limit must be an integer")
		}
		limit = catalog.Limit(n)
	}

	return filter, sort, limit, nil
}

// Create POST /api/v1/videos
func (h *VideoHandler) Create(c *gin.Context) {
	var req dto.VideoCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	info, err := h.videoService.Create(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err, "分类不存在")
		return
	}

	response.Created(c, "视频创建成功", info)
}

// Update PUT /api/v1/videos/:id
func (h *VideoHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.VideoUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	info, err := h.videoService.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.Error(c, err, "视频或分类不存在")
		return
	}

	response.OK(c, "视频更新成功", info)
}

// Delete DELETE /api/v1/videos/:id
func (h *VideoHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.videoService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err, "视频不存在")
		return
	}

	response.OK(c, "视频删除成功", gin.H{"id": id})
}

// RecordView POST /api/v1/videos/:id/view（:id 为外部视频 ID）
func (h *VideoHandler) RecordView(c *gin.Context) {
	videoRef := c.Param("id")
	userID := middleware.ResolveUserID(c, c.Query("userId"))

	queued, err := h.videoService.RecordView(c.Request.Context(), videoRef, userID)
	if err != nil {
		response.Error(c, err, "视频不存在")
		return
	}

	response.Accepted(c, "播放已记录", dto.VideoViewData{VideoID: videoRef, Queued: queued})
}

// UploadThumbnail POST /api/v1/videos/:id/thumbnail（multipart，字段 file）
func (h *VideoHandler) UploadThumbnail(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "请上传缩略图文件")
		return
	}
	if file.Size == 0 || file.Size > maxThumbnailSize {
		response.BadRequest(c, "文件大小无效（不能为空，最大 5MB）")
		return
	}

	f, err := file.Open()
	if err != nil {
		response.InternalError(c, "打开上传文件失败")
		return
	}
	defer f.Close()

	contentType := file.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		head := make([]byte, 512)
		n, _ := f.Read(head)
		contentType = http.DetectContentType(head[:n])
		if _, err := f.Seek(0, 0); err != nil {
			response.InternalError(c, "读取上传文件失败")
			return
		}
	}

	data, err := h.videoService.UploadThumbnail(c.Request.Context(), id, f, file.Size, contentType)
	if err != nil {
		response.Error(c, err, "视频不存在")
		return
	}

	response.OK(c, "缩略图上传成功", data)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "无效的视频ID")
		return 0, false
	}
	return id, true
}
