package model

import "time"

// Category 视频分类模型
type Category struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;comment:分类标识" json:"id"`
	Name      string    `gorm:"size:100;not null;uniqueIndex:uq_categories_name;comment:分类名称" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime;comment:创建时间" json:"createdAt"`
}

func (Category) TableName() string {
	return "categories"
}
