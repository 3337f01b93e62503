package dto

import "time"

// CategoryInfo 分类信息
type CategoryInfo struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// CategoryCreateRequest 创建分类请求
type CategoryCreateRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// VideoInfo 视频详情（含分类）
type VideoInfo struct {
	ID          int64         `json:"id"`
	VideoID     string        `json:"videoId"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Thumbnail   string        `json:"thumbnail"`
	Subject     string        `json:"subject"`
	Grade       string        `json:"grade"`
	Duration    string        `json:"duration"`
	Views       int64         `json:"views"`
	IsFeatured  bool          `json:"isFeatured"`
	CategoryID  int64         `json:"categoryId"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
	Category    *CategoryInfo `json:"category,omitempty"`
}

// VideoCreateRequest 创建视频请求
type VideoCreateRequest struct {
	VideoID     string `json:"videoId" binding:"required,videoref"`
	Title       string `json:"title" binding:"required,min=1,max=200"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail" binding:"omitempty,max=500"`
	Subject     string `json:"subject" binding:"required,min=1,max=100"`
	Grade       string `json:"grade" binding:"required,min=1,max=100"`
	Duration    string `json:"duration" binding:"omitempty,duration"`
	Views       int64  `json:"views" binding:"omitempty,min=0"`
	IsFeatured  bool   `json:"isFeatured"`
	CategoryID  int64  `json:"categoryId" binding:"required,min=1"`
}

// VideoUpdateRequest 视频部分更新请求，nil 字段不修改
type VideoUpdateRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description"`
	Thumbnail   *string `json:"thumbnail" binding:"omitempty,max=500"`
	Subject     *string `json:"subject" binding:"omitempty,min=1,max=100"`
	Grade       *string `json:"grade" binding:"omitempty,min=1,max=100"`
	Duration    *string `json:"duration" binding:"omitempty,duration"`
	Views       *int64  `json:"views" binding:"omitempty,min=0"`
	IsFeatured  *bool   `json:"isFeatured"`
	CategoryID  *int64  `json:"categoryId" binding:"omitempty,min=1"`
}

// VideoViewData 播放上报结果
type VideoViewData struct {
	VideoID string `json:"videoId"`
	Queued  bool   `json:"queued"`
}

// ThumbnailData 缩略图上传结果
type ThumbnailData struct {
	Thumbnail string `json:"thumbnail"`
}
