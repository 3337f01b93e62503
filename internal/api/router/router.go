package router

import (
	"edufleex-go/internal/api/handler"

	"github.com/gin-gonic/gin"
)

// Setup 注册所有业务路由
func Setup(
	r *gin.Engine,
	videoHandler *handler.VideoHandler,
	categoryHandler *handler.CategoryHandler,
	favoriteHandler *handler.FavoriteHandler,
	browseHandler *handler.BrowseHandler,
	searchHandler *handler.SearchHandler,
	favoriteWriteLimit gin.HandlerFunc,
) {
	v1 := r.Group("/api/v1")

	// --- 视频模块 ---
	videos := v1.Group("/videos")
	{
		videos.GET("", videoHandler.List)
		videos.POST("", videoHandler.Create)
		videos.PUT("/:id", videoHandler.Update)
		videos.DELETE("/:id", videoHandler.Delete)
		videos.POST("/:id/thumbnail", videoHandler.UploadThumbnail)
		// :id 为外部视频 ID
		videos.POST("/:id/view", videoHandler.RecordView)
	}

	// --- 分类模块 ---
	categories := v1.Group("/categories")
	{
		categories.GET("", categoryHandler.List)
		categories.POST("", categoryHandler.Create)
	}

	// --- 收藏模块 ---
	favorites := v1.Group("/favorites")
	{
		favorites.GET("", favoriteHandler.List)
		favorites.GET("/:videoId/status", favoriteHandler.GetStatus)
		favorites.POST("/batch/status", favoriteHandler.BatchStatus)

		writes := favorites.Group("", favoriteWriteLimit)
		{
			writes.POST("", favoriteHandler.Add)
			writes.DELETE("", favoriteHandler.Remove)
		}
	}

	// --- 浏览页 ---
	browse := v1.Group("/browse")
	{
		browse.GET("/home", browseHandler.Home)
		browse.GET("/subjects", browseHandler.Subjects)
		browse.GET("/subjects/:subject", browseHandler.Subject)
		browse.GET("/grades", browseHandler.Grades)
		browse.GET("/grades/:grade", browseHandler.Grade)
		browse.GET("/videos/:videoId", browseHandler.Video)
		browse.GET("/new", browseHandler.New)
		browse.GET("/mylist", browseHandler.MyList)
	}

	// --- 搜索模块 ---
	search := v1.Group("/search")
	{
		search.GET("/videos", searchHandler.SearchVideos)
		search.POST("/sync", searchHandler.SyncVideosToES)
	}
}
