package catalog

import (
	"strconv"
	"strings"
	"time"

	"edufleex-go/internal/model"
)

// ParseDuration 解析 "mm:ss" 或 "h:mm:ss" 形式的展示时长，格式不合法时返回 false
func ParseDuration(s string) (time.Duration, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}

	var total time.Duration
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, false
		}
		total = total*60 + time.Duration(n)
	}
	return total * time.Second, true
}

// TotalDuration 累加所有视频的时长，无法解析的时长忽略
func TotalDuration(videos []model.Video) time.Duration {
	var total time.Duration
	for _, v := range videos {
		if d, ok := ParseDuration(v.Duration); ok {
			total += d
		}
	}
	return total
}

// Facet 某个分组键的统计信息
type Facet struct {
	Name      string `json:"name"`
	Count     int    `json:"count"`
	Thumbnail string `json:"thumbnail"`
}

// Facets 按 key 统计视频数，缩略图取该键下第一个视频的缩略图。
// 结果按键的字典序排列。
func Facets(videos []model.Video, key KeyFunc) []Facet {
	groups := GroupBy(videos, key, SortedKeys())
	facets := make([]Facet, 0, len(groups))
	for _, g := range groups {
		facets = append(facets, Facet{
			Name:      g.Key,
			Count:     len(g.Videos),
			Thumbnail: g.Videos[0].Thumbnail,
		})
	}
	return facets
}
