package service

import (
	"context"
	"strings"

	"edufleex-go/internal/api/dto"
	"edufleex-go/internal/catalog"
	"edufleex-go/internal/metrics"
	"edufleex-go/internal/model"
	"edufleex-go/internal/repository"
	"edufleex-go/pkg/logger"

	"go.uber.org/zap"
)

const (
	defaultSearchPageSize = 20
	maxSearchPageSize     = 100
)

type SearchService struct {
	videoRepo *repository.VideoRepository
	index     SearchIndex
}

// NewSearchService index 为 nil 时只走数据库搜索
func NewSearchService(videoRepo *repository.VideoRepository, index SearchIndex) *SearchService {
	return &SearchService{videoRepo: videoRepo, index: index}
}

// SearchVideos 搜索视频（ES 优先，失败则降级到 DB）
func (s *SearchService) SearchVideos(ctx context.Context, req *dto.SearchVideoRequest) (*dto.SearchVideoData, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 || req.PageSize > maxSearchPageSize {
		req.PageSize = defaultSearchPageSize
	}

	if s.index != nil {
		data, err := s.searchFromES(ctx, req)
		if err == nil {
			metrics.SearchRequests.WithLabelValues("elasticsearch").Inc()
			return data, nil
		}
		logger.Warn("ES search failed, fallback to DB", zap.Error(err))
	}

	metrics.SearchRequests.WithLabelValues("database").Inc()
	return s.searchFromDB(ctx, req)
}

func (s *SearchService) searchFromES(ctx context.Context, req *dto.SearchVideoRequest) (*dto.SearchVideoData, error) {
	ids, total, err := s.index.Search(ctx, buildESQuery(req))
	if err != nil {
		return nil, err
	}

	videos, err := s.videoRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	// 保持 ES 的相关度顺序，已从库中删除的命中直接跳过
	byID := make(map[int64]*model.Video, len(videos))
	for i := range videos {
		byID[videos[i].ID] = &videos[i]
	}
	ordered := make([]model.Video, 0, len(ids))
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			ordered = append(ordered, *v)
		}
	}

	return buildSearchData(ordered, total, req, "elasticsearch"), nil
}

func buildESQuery(req *dto.SearchVideoRequest) map[string]interface{} {
	filters := []interface{}{}
	if subject := strings.TrimSpace(req.Subject); subject != "" {
		filters = append(filters, map[string]interface{}{"term": map[string]interface{}{"subject": subject}})
	}
	if grade := strings.TrimSpace(req.Grade); grade != "" {
		filters = append(filters, map[string]interface{}{"term": map[string]interface{}{"grade": grade}})
	}

	boolQ := map[string]interface{}{"filter": filters}
	sortConfig := []interface{}{}

	if q := strings.TrimSpace(req.Q); q != "" {
		boolQ["must"] = []interface{}{
			map[string]interface{}{
				"multi_match": map[string]interface{}{
					"query":     q,
					"fields":    []string{"title^3", "subject^2", "description"},
					"type":      "best_fields",
					"operator":  "or",
					"fuzziness": "AUTO",
				},
			},
		}
		sortConfig = append(sortConfig, map[string]interface{}{"_score": map[string]string{"order": "desc"}})
	}
	sortConfig = append(sortConfig,
		map[string]interface{}{"views": map[string]string{"order": "desc"}},
		map[string]interface{}{"createdAt": map[string]string{"order": "desc"}},
	)

	return map[string]interface{}{
		"query":   map[string]interface{}{"bool": boolQ},
		"_source": []string{"id"},
		"from":    (req.Page - 1) * req.PageSize,
		"size":    req.PageSize,
		"sort":    sortConfig,
	}
}

func (s *SearchService) searchFromDB(ctx context.Context, req *dto.SearchVideoRequest) (*dto.SearchVideoData, error) {
	var filter catalog.Filter
	if subject := strings.TrimSpace(req.Subject); subject != "" {
		filter = filter.WithSubject(subject)
	}
	if grade := strings.TrimSpace(req.Grade); grade != "" {
		filter = filter.WithGrade(grade)
	}

	skip := (req.Page - 1) * req.PageSize
	videos, total, err := s.videoRepo.Search(ctx, req.Q, filter, skip, req.PageSize)
	if err != nil {
		return nil, err
	}
	return buildSearchData(videos, total, req, "database"), nil
}

func buildSearchData(videos []model.Video, total int64, req *dto.SearchVideoRequest, source string) *dto.SearchVideoData {
	totalPages := (total + int64(req.PageSize) - 1) / int64(req.PageSize)
	return &dto.SearchVideoData{
		Videos:     toVideoInfos(videos),
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: totalPages,
		Source:     source,
	}
}

// SyncVideosToES 全量重建索引
func (s *SearchService) SyncVideosToES(ctx context.Context) (*dto.SyncResult, error) {
	if s.index == nil {
		return &dto.SyncResult{}, nil
	}

	videos, err := s.videoRepo.List(ctx, catalog.Filter{}, catalog.SortRecency, nil)
	if err != nil {
		return nil, err
	}

	success, failed, err := s.index.BulkSync(ctx, videos)
	if err != nil {
		return nil, err
	}
	return &dto.SyncResult{Success: success, Failed: failed}, nil
}
