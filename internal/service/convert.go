package service

import (
	"edufleex-go/internal/api/dto"
	"edufleex-go/internal/catalog"
	"edufleex-go/internal/model"
)

func toCategoryInfo(c *model.Category) dto.CategoryInfo {
	return dto.CategoryInfo{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt}
}

func toVideoInfo(v *model.Video) dto.VideoInfo {
	info := dto.VideoInfo{
		ID:          v.ID,
		VideoID:     v.VideoID,
		Title:       v.Title,
		Description: v.Description,
		Thumbnail:   v.Thumbnail,
		Subject:     v.Subject,
		Grade:       v.Grade,
		Duration:    v.Duration,
		Views:       v.ViewCount,
		IsFeatured:  v.IsFeatured,
		CategoryID:  v.CategoryID,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
	if v.Category.ID != 0 {
		c := toCategoryInfo(&v.Category)
		info.Category = &c
	}
	return info
}

func toVideoInfos(videos []model.Video) []dto.VideoInfo {
	items := make([]dto.VideoInfo, 0, len(videos))
	for i := range videos {
		items = append(items, toVideoInfo(&videos[i]))
	}
	return items
}

func toVideoInfoPtr(v model.Video, ok bool) *dto.VideoInfo {
	if !ok {
		return nil
	}
	info := toVideoInfo(&v)
	return &info
}

func toVideoRows(groups []catalog.Group) []dto.VideoRow {
	rows := make([]dto.VideoRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, dto.VideoRow{Title: g.Key, Videos: toVideoInfos(g.Videos)})
	}
	return rows
}

func toFacetInfos(facets []catalog.Facet) []dto.FacetInfo {
	items := make([]dto.FacetInfo, 0, len(facets))
	for _, f := range facets {
		items = append(items, dto.FacetInfo{Name: f.Name, Count: f.Count, Thumbnail: f.Thumbnail})
	}
	return items
}

func toFavoriteInfo(f *model.Favorite, v *model.Video) dto.FavoriteInfo {
	info := dto.FavoriteInfo{
		UserID:    f.UserID,
		CreatedAt: f.CreatedAt,
	}
	if v != nil && v.ID != 0 {
		vi := toVideoInfo(v)
		info.VideoID = v.VideoID
		info.Video = &vi
	}
	return info
}
