// Package testutil 提供测试用的内存数据库和数据构造函数。
package testutil

import (
	"testing"
	"time"

	"edufleex-go/internal/infra/database"
	"edufleex-go/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NewDB 打开一个开启外键约束的 SQLite 内存库并完成迁移。
// 单连接保证同一个内存库在整个测试中可见。
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), database.GormConfig(0))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

// Category 写入一个分类
func Category(t testing.TB, db *gorm.DB, name string) model.Category {
	t.Helper()
	c := model.Category{Name: name}
	require.NoError(t, db.Create(&c).Error)
	return c
}

// Base 测试数据的起始时间，Video 按 offset 递增，保证排序稳定
var Base = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// VideoOpt 修改待写入的视频
type VideoOpt func(*model.Video)

func Views(n int64) VideoOpt          { return func(v *model.Video) { v.ViewCount = n } }
func Featured() VideoOpt              { return func(v *model.Video) { v.IsFeatured = true } }
func Title(s string) VideoOpt         { return func(v *model.Video) { v.Title = s } }
func Duration(s string) VideoOpt      { return func(v *model.Video) { v.Duration = s } }
func Description(s string) VideoOpt   { return func(v *model.Video) { v.Description = s } }
func CreatedAt(ts time.Time) VideoOpt { return func(v *model.Video) { v.CreatedAt = ts } }

// Video 写入一个视频。CreatedAt 默认为 Base + minutes 分钟。
func Video(t testing.TB, db *gorm.DB, categoryID int64, ref, subject, grade string, minutes int, opts ...VideoOpt) model.Video {
	t.Helper()
	v := model.Video{
		VideoID:    ref,
		Title:      ref,
		Subject:    subject,
		Grade:      grade,
		Duration:   "10:00",
		CategoryID: categoryID,
		CreatedAt:  Base.Add(time.Duration(minutes) * time.Minute),
	}
	for _, opt := range opts {
		opt(&v)
	}
	require.NoError(t, db.Omit(clause.Associations).Create(&v).Error)
	return v
}
