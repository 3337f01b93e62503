package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"edufleex-go/internal/api/dto"
	"edufleex-go/internal/apperr"
	"edufleex-go/internal/catalog"
	"edufleex-go/internal/config"
	"edufleex-go/internal/model"
)

// 年级总览页展示的精选视频数
const gradesFeaturedLimit = 12

// BrowseService 组装各浏览页的数据
type BrowseService struct {
	catalog   *CatalogService
	videos    *VideoService
	favorites *FavoriteService
	cfg       config.BrowseConfig
}

func NewBrowseService(catalogSvc *CatalogService, videoSvc *VideoService, favoriteSvc *FavoriteService, cfg config.BrowseConfig) *BrowseService {
	return &BrowseService{
		catalog:   catalogSvc,
		videos:    videoSvc,
		favorites: favoriteSvc,
		cfg:       cfg,
	}
}

func (s *BrowseService) allVideos(ctx context.Context) ([]model.Video, error) {
	return s.catalog.ListVideos(ctx, catalog.Filter{}, catalog.SortRecency, nil)
}

// Home 首页：主推视频、同学科剧集、按分类分行
func (s *BrowseService) Home(ctx context.Context) (*dto.HomeData, error) {
	all, err := s.allVideos(ctx)
	if err != nil {
		return nil, err
	}

	order, err := s.catalog.CategoryOrder(ctx)
	if err != nil {
		return nil, err
	}

	data := &dto.HomeData{
		Episodes: []dto.VideoInfo{},
		Rows:     toVideoRows(catalog.GroupBy(all, catalog.ByCategory, catalog.ExplicitOrder(order...))),
	}

	hero, ok := catalog.PickFeatured(all, s.cfg.PreferredFeaturedTitle)
	if ok {
		data.Hero = toVideoInfoPtr(hero, true)
		data.Episodes = toVideoInfos(catalog.RelatedBy(all, hero, catalog.BySubject, s.cfg.RelatedLimit))
	}
	return data, nil
}

// Subjects 学科总览
func (s *BrowseService) Subjects(ctx context.Context) (*dto.SubjectsData, error) {
	all, err := s.allVideos(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.SubjectsData{
		Subjects:    toFacetInfos(catalog.Facets(all, catalog.BySubject)),
		TotalVideos: len(all),
	}, nil
}

// Subject 单个学科页，学科下没有视频时返回 NotFound
func (s *BrowseService) Subject(ctx context.Context, subject string) (*dto.SubjectData, error) {
	videos, err := s.catalog.ListVideos(ctx, catalog.Filter{}.WithSubject(subject), catalog.SortRecency, nil)
	if err != nil {
		return nil, err
	}
	if len(videos) == 0 {
		return nil, apperr.NotFound("subject %q", subject)
	}

	return &dto.SubjectData{
		Subject:  subject,
		Featured: toVideoInfoPtr(catalog.PickFeatured(videos, "")),
		Videos:   toVideoInfos(videos),
		Grades:   toVideoRows(catalog.GroupBy(videos, catalog.ByGrade, catalog.SortedKeys())),
	}, nil
}

// Grades 年级总览
func (s *BrowseService) Grades(ctx context.Context) (*dto.GradesData, error) {
	all, err := s.allVideos(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.GradesData{
		Grades:      toFacetInfos(catalog.Facets(all, catalog.ByGrade)),
		Featured:    toVideoInfos(catalog.Featured(all, gradesFeaturedLimit)),
		TotalVideos: len(all),
	}, nil
}

// Grade 单个年级页，年级下没有视频时返回 NotFound
func (s *BrowseService) Grade(ctx context.Context, grade string) (*dto.GradeData, error) {
	videos, err := s.catalog.ListVideos(ctx, catalog.Filter{}.WithGrade(grade), catalog.SortRecency, nil)
	if err != nil {
		return nil, err
	}
	if len(videos) == 0 {
		return nil, apperr.NotFound("grade %q", grade)
	}

	return &dto.GradeData{
		Grade:    grade,
		Hero:     toVideoInfoPtr(catalog.PickFeatured(videos, "")),
		Videos:   toVideoInfos(videos),
		Subjects: toVideoRows(catalog.GroupBy(videos, catalog.BySubject, catalog.SortedKeys())),
	}, nil
}

// VideoDetail 视频详情页：同学科、同年级推荐（不含自身）及当前用户的收藏状态
func (s *BrowseService) VideoDetail(ctx context.Context, videoRef, userID string) (*dto.VideoDetailData, error) {
	video, err := s.videos.GetByRef(ctx, videoRef)
	if err != nil {
		return nil, err
	}

	limit := catalog.Limit(s.cfg.RelatedLimit)
	bySubject, err := s.catalog.ListVideos(ctx, catalog.Filter{}.WithSubject(video.Subject).Excluding(video.ID), catalog.SortRecency, limit)
	if err != nil {
		return nil, err
	}
	byGrade, err := s.catalog.ListVideos(ctx, catalog.Filter{}.WithGrade(video.Grade).Excluding(video.ID), catalog.SortRecency, limit)
	if err != nil {
		return nil, err
	}

	favorited := false
	if userID != "" {
		if favorited, err = s.favorites.IsFavorited(ctx, userID, videoRef); err != nil {
			return nil, err
		}
	}

	return &dto.VideoDetailData{
		Video:            toVideoInfo(video),
		RelatedBySubject: toVideoInfos(bySubject),
		RelatedByGrade:   toVideoInfos(byGrade),
		IsFavorited:      favorited,
	}, nil
}

// New 新上架页
func (s *BrowseService) New(ctx context.Context) (*dto.NewData, error) {
	newReleases, err := s.catalog.ListVideos(ctx, catalog.Filter{}, catalog.SortRecency, catalog.Limit(s.cfg.NewReleasesLimit))
	if err != nil {
		return nil, err
	}
	popular, err := s.catalog.ListVideos(ctx, catalog.Filter{}, catalog.SortPopularity, catalog.Limit(s.cfg.PopularLimit))
	if err != nil {
		return nil, err
	}
	featured, err := s.catalog.ListVideos(ctx, catalog.Filter{}.WithFeatured(true), catalog.SortRecency, catalog.Limit(s.cfg.FeaturedLimit))
	if err != nil {
		return nil, err
	}
	top, err := s.catalog.ListVideos(ctx, catalog.Filter{}, catalog.SortPopularity, catalog.Limit(s.cfg.TopLimit))
	if err != nil {
		return nil, err
	}
	all, err := s.allVideos(ctx)
	if err != nil {
		return nil, err
	}

	bySubject := catalog.Truncate(catalog.GroupBy(all, catalog.BySubject, catalog.SortedKeys()), s.cfg.PerSubjectLimit)

	return &dto.NewData{
		NewReleases:  toVideoInfos(newReleases),
		Popular:      toVideoInfos(popular),
		Featured:     toVideoInfos(featured),
		Top10:        toVideoInfos(top),
		NewBySubject: toVideoRows(bySubject),
	}, nil
}

// MyList 我的片单：按学科筛选、关键词过滤、排序，并统计总时长
func (s *BrowseService) MyList(ctx context.Context, userID string, q *dto.MyListQuery) (*dto.MyListData, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperr.Invalid("userId is required")
	}

	saved, err := s.favorites.FavoriteVideos(ctx, userID)
	if err != nil {
		return nil, err
	}

	videos := filterMyList(saved, q.Subject, q.Q)
	sortMyList(videos, q.Sort)

	total := catalog.TotalDuration(videos)
	return &dto.MyListData{
		Videos:        toVideoInfos(videos),
		Total:         len(videos),
		TotalSeconds:  int64(total / time.Second),
		TotalDuration: formatWatchTime(total),
		Subjects:      toFacetInfos(catalog.Facets(saved, catalog.BySubject)),
		BySubject:     toVideoRows(catalog.GroupBy(videos, catalog.BySubject, catalog.SortedKeys())),
		ByGrade:       toVideoRows(catalog.GroupBy(videos, catalog.ByGrade, catalog.SortedKeys())),
	}, nil
}

func filterMyList(videos []model.Video, subject, query string) []model.Video {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]model.Video, 0, len(videos))
	for _, v := range videos {
		if subject != "" && v.Subject != subject {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(v.Title), query) &&
			!strings.Contains(strings.ToLower(v.Description), query) &&
			!strings.Contains(strings.ToLower(v.Subject), query) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// sortMyList 默认 recent 保持收藏时间倒序
func sortMyList(videos []model.Video, by string) {
	switch by {
	case "title":
		sort.SliceStable(videos, func(i, j int) bool {
			return strings.ToLower(videos[i].Title) < strings.ToLower(videos[j].Title)
		})
	case "subject":
		sort.SliceStable(videos, func(i, j int) bool {
			if videos[i].Subject != videos[j].Subject {
				return videos[i].Subject < videos[j].Subject
			}
			return strings.ToLower(videos[i].Title) < strings.ToLower(videos[j].Title)
		})
	}
}

func formatWatchTime(d time.Duration) string {
	d = d.Round(time.Minute)
	h := int(d / time.Hour)
	m := int((d % time.Hour) / time.Minute)
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
