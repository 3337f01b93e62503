package dto

import "time"

// FavoriteRequest 收藏 / 取消收藏请求
type FavoriteRequest struct {
	VideoID string `json:"videoId" binding:"required,videoref"`
	UserID  string `json:"userId" binding:"omitempty,max=128"`
}

// FavoriteInfo 收藏记录（含视频与分类）
type FavoriteInfo struct {
	UserID    string     `json:"userId"`
	VideoID   string     `json:"videoId"`
	CreatedAt time.Time  `json:"createdAt"`
	Video     *VideoInfo `json:"video,omitempty"`
}

// FavoriteRemoveData 取消收藏结果，removed=false 表示原本就未收藏
type FavoriteRemoveData struct {
	Removed bool `json:"removed"`
}

// BatchFavoriteStatusRequest 批量查询收藏状态请求
type BatchFavoriteStatusRequest struct {
	VideoIDs []string `json:"videoIds" binding:"required,min=1,max=100,dive,videoref"`
	UserID   string   `json:"userId" binding:"omitempty,max=128"`
}
