package catalog

import (
	"sort"

	"edufleex-go/internal/model"
)

// KeyFunc 从视频中提取分组键
type KeyFunc func(v model.Video) string

// BySubject 按学科分组
func BySubject(v model.Video) string { return v.Subject }

// ByGrade 按年级分组
func ByGrade(v model.Video) string { return v.Grade }

// ByCategory 按分类名称分组（需预加载 Category）
func ByCategory(v model.Video) string { return v.Category.Name }

// KeyOrder 分组展示顺序策略：输入为按首次出现排列的键，返回展示顺序
type KeyOrder func(firstSeen []string) []string

// SortedKeys 按键的字典序排列（学科、年级）
func SortedKeys() KeyOrder {
	return func(keys []string) []string {
		out := append([]string(nil), keys...)
		sort.Strings(out)
		return out
	}
}

// FirstSeen 按键在输入序列中首次出现的顺序排列
func FirstSeen() KeyOrder {
	return func(keys []string) []string {
		return append([]string(nil), keys...)
	}
}

// ExplicitOrder 按给定顺序排列（分类按创建顺序），
// 未列出的键按字典序追加在末尾
func ExplicitOrder(order ...string) KeyOrder {
	return func(keys []string) []string {
		present := make(map[string]bool, len(keys))
		for _, k := range keys {
			present[k] = true
		}

		out := make([]string, 0, len(keys))
		for _, k := range order {
			if present[k] {
				out = append(out, k)
				delete(present, k)
			}
		}

		rest := make([]string, 0, len(present))
		for _, k := range keys {
			if present[k] {
				rest = append(rest, k)
			}
		}
		sort.Strings(rest)
		return append(out, rest...)
	}
}

// Group 一个分组
type Group struct {
	Key    string        `json:"key"`
	Videos []model.Video `json:"videos"`
}

// GroupBy 将视频按 key 分组。每个视频恰好出现在一个分组中，
// 组内保持输入的相对顺序；分组顺序由 order 决定（nil 时使用字典序）。
func GroupBy(videos []model.Video, key KeyFunc, order KeyOrder) []Group {
	if len(videos) == 0 {
		return []Group{}
	}
	if order == nil {
		order = SortedKeys()
	}

	buckets := make(map[string][]model.Video)
	seen := make([]string, 0)
	for _, v := range videos {
		k := key(v)
		if _, ok := buckets[k]; !ok {
			seen = append(seen, k)
		}
		buckets[k] = append(buckets[k], v)
	}

	groups := make([]Group, 0, len(seen))
	for _, k := range order(seen) {
		if vs, ok := buckets[k]; ok {
			groups = append(groups, Group{Key: k, Videos: vs})
			delete(buckets, k)
		}
	}
	// order 策略漏掉的键也要保留，保证完整性
	for _, k := range seen {
		if vs, ok := buckets[k]; ok {
			groups = append(groups, Group{Key: k, Videos: vs})
		}
	}
	return groups
}

// Truncate 将每个分组截断到最多 n 个视频，返回新切片
func Truncate(groups []Group, n int) []Group {
	out := make([]Group, 0, len(groups))
	for _, g := range groups {
		vs := g.Videos
		if n >= 0 && len(vs) > n {
			vs = vs[:n]
		}
		out = append(out, Group{Key: g.Key, Videos: vs})
	}
	return out
}

// Keys 返回分组键列表
func Keys(groups []Group) []string {
	keys := make([]string, 0, len(groups))
	for _, g := range groups {
		keys = append(keys, g.Key)
	}
	return keys
}
