package catalog

import (
	"edufleex-go/internal/apperr"
)

// Sort 列表排序方式
type Sort string

const (
	// SortRecency 按创建时间倒序（新上架、默认列表）
	SortRecency Sort = "recency"
	// SortPopularity 按播放量倒序（热门）
	SortPopularity Sort = "popularity"
)

// ParseSort 解析排序参数，空字符串返回默认的 recency
func ParseSort(s string) (Sort, error) {
	switch Sort(s) {
	case "":
		return SortRecency, nil
	case SortRecency, SortPopularity:
		return Sort(s), nil
	default:
		return "", apperr.Invalid("unknown sort %q", s)
	}
}

// Filter 视频列表筛选条件，nil 字段表示不筛选
type Filter struct {
	Subject    *string
	Grade      *string
	IsFeatured *bool
	ExcludeID  *int64
}

// Validate 校验筛选条件。显式设置的空学科/年级视为调用方错误，
// 以区分“未设置”和“按空字符串筛选”。
func (f Filter) Validate() error {
	if f.Subject != nil && *f.Subject == "" {
		return apperr.Invalid("subject filter is set but empty")
	}
	if f.Grade != nil && *f.Grade == "" {
		return apperr.Invalid("grade filter is set but empty")
	}
	if f.ExcludeID != nil && *f.ExcludeID <= 0 {
		return apperr.Invalid("excludeId must be positive, got %d", *f.ExcludeID)
	}
	return nil
}

// ValidateLimit 校验条数限制，nil 表示不限制
func ValidateLimit(limit *int) error {
	if limit != nil && *limit < 1 {
		return apperr.Invalid("limit must be at least 1, got %d", *limit)
	}
	return nil
}

// WithSubject 返回附加学科条件的副本
func (f Filter) WithSubject(subject string) Filter {
	f.Subject = &subject
	return f
}

// WithGrade 返回附加年级条件的副本
func (f Filter) WithGrade(grade string) Filter {
	f.Grade = &grade
	return f
}

// WithFeatured 返回附加精选条件的副本
func (f Filter) WithFeatured(featured bool) Filter {
	f.IsFeatured = &featured
	return f
}

// Excluding 返回排除指定视频的副本
func (f Filter) Excluding(id int64) Filter {
	f.ExcludeID = &id
	return f
}

// Limit 便捷构造 limit 指针
func Limit(n int) *int {
	return &n
}
