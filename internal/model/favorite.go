package model

import "time"

// Favorite 用户收藏（片单）模型
// (UserID, VideoID) 组成联合主键，保证同一用户对同一视频最多一条记录
type Favorite struct {
	UserID    string    `gorm:"primaryKey;size:128;index:idx_favorites_user_created,priority:1;comment:用户标识" json:"userId"`
	VideoID   int64     `gorm:"primaryKey;autoIncrement:false;index:idx_favorites_video_id;comment:视频内部ID" json:"videoId"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_favorites_user_created,priority:2;comment:收藏时间" json:"createdAt"`

	// 关联关系
	Video Video `gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE" json:"video"`
}

func (Favorite) TableName() string {
	return "favorites"
}
