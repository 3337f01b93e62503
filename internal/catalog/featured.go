package catalog

import (
	"strings"

	"edufleex-go/internal/model"
)

// PickFeatured 从视频序列中选出首页大图视频：
//  1. 精选视频中标题包含 preferredTitle 的（区分大小写，preferredTitle 为空时跳过）
//  2. 第一个精选视频
//  3. 序列中的第一个视频
//  4. 输入为空时返回 false
func PickFeatured(videos []model.Video, preferredTitle string) (model.Video, bool) {
	if len(videos) == 0 {
		return model.Video{}, false
	}

	first := -1
	for i := range videos {
		if !videos[i].IsFeatured {
			continue
		}
		if preferredTitle != "" && strings.Contains(videos[i].Title, preferredTitle) {
			return videos[i], true
		}
		if first < 0 {
			first = i
		}
	}

	if first >= 0 {
		return videos[first], true
	}
	return videos[0], true
}

// Featured 返回精选视频子集，最多 limit 个（limit <= 0 不限制）
func Featured(videos []model.Video, limit int) []model.Video {
	out := make([]model.Video, 0)
	for _, v := range videos {
		if !v.IsFeatured {
			continue
		}
		out = append(out, v)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
