package handler

import (
	"edufleex-go/internal/api/dto"
	"edufleex-go/internal/api/middleware"
	"edufleex-go/internal/api/response"
	"edufleex-go/internal/service"

	"github.com/gin-gonic/gin"
)

// BrowseHandler 浏览页数据（首页、学科、年级、详情、新上架、我的片单）
type BrowseHandler struct {
	browseService *service.BrowseService
}

func NewBrowseHandler(browseService *service.BrowseService) *BrowseHandler {
	return &BrowseHandler{browseService: browseService}
}

// Home 首页
// @Summary 首页
// @Description 主推视频、按学科分组的行、热门与新上架
// @Tags 浏览
// @Produce json
// @Success 200 {object} response.Response{data=dto.HomeData} "获取成功"
// @Router /browse/home [get]
func (h *BrowseHandler) Home(c *gin.Context) {
	data, err := h.browseService.Home(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "获取首页成功", data)
}

// Subjects 学科总览
// @Summary 学科总览
// @Tags 浏览
// @Produce json
// @Success 200 {object} response.Response{data=dto.SubjectsData} "获取成功"
// @Router /browse/subjects [get]
func (h *BrowseHandler) Subjects(c *gin.Context) {
	data, err := h.browseService.Subjects(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "获取学科列表成功", data)
}

// Subject 单个学科页
// @Summary 单个学科页
// @Tags 浏览
// @Produce json
// @Param subject path string true "学科"
// @Success 200 {object} response.Response{data=dto.SubjectData} "获取成功"
// @Router /browse/subjects/{subject} [get]
func (h *BrowseHandler) Subject(c *gin.Context) {
	data, err := h.browseService.Subject(c.Request.Context(), c.Param("subject"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "获取学科页成功", data)
}

// Grades 年级总览
// @Summary 年级总览
// @Tags 浏览
// @Produce json
// @Success 200 {object} response.Response{data=dto.GradesData} "获取成功"
// @Router /browse/grades [get]
func (h *BrowseHandler) Grades(c *gin.Context) {
	data, err := h.browseService.Grades(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "获取年级列表成功", data)
}

// Grade 单个年级页
// @Summary 单个年级页
// @Tags 浏览
// @Produce json
// @Param grade path string true "年级"
// @Success 200 {object} response.Response{data=dto.GradeData} "获取成功"
// @Router /browse/grades/{grade} [get]
func (h *BrowseHandler) Grade(c *gin.Context) {
	data, err := h.browseService.Grade(c.Request.Context(), c.Param("grade"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "获取年级页成功", data)
}

// Video 视频详情
// @Summary 视频详情
// @Description 视频信息、是否已收藏以及同学科相关推荐
// @Tags 浏览
// @Produce json
// @Param videoId path string true "视频ID"
// @Param userId query string false "用户ID"
// @Success 200 {object} response.Response{data=dto.VideoDetailData} "获取成功"
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Router /browse/videos/{videoId} [get]
func (h *BrowseHandler) Video(c *gin.Context) {
	userID := middleware.ResolveUserID(c, c.Query("userId"))

	data, err := h.browseService.VideoDetail(c.Request.Context(), c.Param("videoId"), userID)
	if err != nil {
		response.Error(c, err, "视频不存在")
		return
	}
	response.OK(c, "获取视频详情成功", data)
}

// New 新上架
// @Summary 新上架
// @Tags 浏览
// @Produce json
// @Success 200 {object} response.Response{data=dto.NewData} "获取成功"
// @Router /browse/new [get]
func (h *BrowseHandler) New(c *gin.Context) {
	data, err := h.browseService.New(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "获取新上架成功", data)
}

// MyList 我的片单
// @Summary 我的片单
// @Description 收藏的视频，可按学科、关键词筛选并排序
// @Tags 浏览
// @Produce json
// @Param subject query string false "学科"
// @Param q query string false "关键词"
// @Param sort query string false "排序: recent, title, subject" default(recent)
// @Param userId query string false "用户ID"
// @Success 200 {object} response.Response{data=dto.MyListData} "获取成功"
// @Router /browse/mylist [get]
func (h *BrowseHandler) MyList(c *gin.Context) {
	var q dto.MyListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	userID := middleware.ResolveUserID(c, q.UserID)

	data, err := h.browseService.MyList(c.Request.Context(), userID, &q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "获取我的片单成功", data)
}
