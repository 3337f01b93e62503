package repository

import (
	"context"

	"edufleex-go/internal/apperr"
	"edufleex-go/internal/model"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// ListByName 按名称升序列出分类
func (r *CategoryRepository) ListByName(ctx context.Context) ([]model.Category, error) {
	categories := make([]model.Category, 0)
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, apperr.Store("list categories", err)
	}
	return categories, nil
}

// ListByCreation 按创建顺序列出分类（首页分类行的展示顺序）
func (r *CategoryRepository) ListByCreation(ctx context.Context) ([]model.Category, error) {
	categories := make([]model.Category, 0)
	if err := r.db.WithContext(ctx).Order("created_at ASC").Order("id ASC").Find(&categories).Error; err != nil {
		return nil, apperr.Store("list categories", err)
	}
	return categories, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, apperr.Store("get category", err)
	}
	return &category, nil
}

func (r *CategoryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Category{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return false, apperr.Store("check category name", err)
	}
	return count > 0, nil
}

func (r *CategoryRepository) Create(ctx context.Context, category *model.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return apperr.Store("create category", err)
	}
	return nil
}
