package catalog

import "edufleex-go/internal/model"

// RelatedBy 返回与 ref 具有相同 key 的视频（不含 ref 本身），最多 limit 个。
// ref 可能来自另一次查询，因此按 ID / VideoID 匹配而不是按对象比较。
func RelatedBy(videos []model.Video, ref model.Video, key KeyFunc, limit int) []model.Video {
	out := make([]model.Video, 0)
	if limit <= 0 {
		return out
	}

	want := key(ref)
	for _, v := range videos {
		if sameVideo(v, ref) || key(v) != want {
			continue
		}
		out = append(out, v)
		if len(out) == limit {
			break
		}
	}
	return out
}

func sameVideo(a, b model.Video) bool {
	if a.ID != 0 && a.ID == b.ID {
		return true
	}
	return a.VideoID != "" && a.VideoID == b.VideoID
}
