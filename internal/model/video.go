package model

import "time"

// Video 教学视频模型
// VideoID 是第三方平台的视频标识，对外 URL 使用；ID 仅用于表关联
type Video struct {
	ID          int64     `gorm:"primaryKey;autoIncrement;comment:视频标识" json:"id"`
	VideoID     string    `gorm:"size:64;not null;uniqueIndex:uq_videos_video_id;comment:外部视频ID" json:"videoId"`
	Title       string    `gorm:"size:200;not null;comment:视频标题" json:"title"`
	Description string    `gorm:"type:text;comment:视频描述" json:"description"`
	Thumbnail   string    `gorm:"size:500;comment:缩略图地址" json:"thumbnail"`
	Subject     string    `gorm:"size:100;not null;index:idx_videos_subject;index:idx_videos_subject_grade,priority:1;comment:学科" json:"subject"`
	Grade       string    `gorm:"size:100;not null;index:idx_videos_grade;index:idx_videos_subject_grade,priority:2;comment:年级" json:"grade"`
	Duration    string    `gorm:"size:20;comment:时长（展示用，如 10:30）" json:"duration"`
	ViewCount   int64     `gorm:"not null;default:0;index:idx_videos_view_count;comment:播放量" json:"views"`
	IsFeatured  bool      `gorm:"not null;default:false;index:idx_videos_featured;comment:是否精选" json:"isFeatured"`
	CategoryID  int64     `gorm:"not null;index:idx_videos_category_id;comment:分类ID" json:"categoryId"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index:idx_videos_created_at;comment:创建时间" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updatedAt"`

	// 关联关系
	Category Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT" json:"category"`
}

func (Video) TableName() string {
	return "videos"
}
