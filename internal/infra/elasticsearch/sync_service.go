package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"edufleex-go/internal/model"
	"edufleex-go/pkg/logger"

	"go.uber.org/zap"
)

// VideoDoc ES 视频文档结构
type VideoDoc struct {
	ID          int64  `json:"id"`
	VideoID     string `json:"videoId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Subject     string `json:"subject"`
	Grade       string `json:"grade"`
	Category    string `json:"category"`
	Views       int64  `json:"views"`
	IsFeatured  bool   `json:"isFeatured"`
	CreatedAt   string `json:"createdAt"`
}

func videoToDoc(v *model.Video) *VideoDoc {
	return &VideoDoc{
		ID:          v.ID,
		VideoID:     v.VideoID,
		Title:       v.Title,
		Description: v.Description,
		Subject:     v.Subject,
		Grade:       v.Grade,
		Category:    v.Category.Name,
		Views:       v.ViewCount,
		IsFeatured:  v.IsFeatured,
		CreatedAt:   v.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// SyncVideo 同步单个视频到 ES
func SyncVideo(ctx context.Context, v *model.Video) error {
	body, err := json.Marshal(videoToDoc(v))
	if err != nil {
		return err
	}

	resp, err := Index(ctx, indexName, strconv.FormatInt(v.ID, 10), bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("index document failed: %s", resp.String())
	}

	logger.Debug("Video synced to ES", zap.Int64("video_id", v.ID))
	return nil
}

// DeleteVideo 从 ES 删除视频
func DeleteVideo(ctx context.Context, videoID int64) error {
	resp, err := Delete(ctx, indexName, strconv.FormatInt(videoID, 10))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() && resp.StatusCode != 404 {
		return fmt.Errorf("delete document failed: %s", resp.String())
	}
	return nil
}

// buildBulkBody 生成 NDJSON 格式的批量索引请求体
func buildBulkBody(index string, videos []model.Video) (string, error) {
	var buf strings.Builder
	for i := range videos {
		docBody, err := json.Marshal(videoToDoc(&videos[i]))
		if err != nil {
			return "", err
		}
		buf.WriteString(fmt.Sprintf(`{"index":{"_index":"%s","_id":"%d"}}`, index, videos[i].ID))
		buf.WriteString("\n")
		buf.Write(docBody)
		buf.WriteString("\n")
	}
	return buf.String(), nil
}

// BulkSyncVideos 批量同步视频到 ES
func BulkSyncVideos(ctx context.Context, videos []model.Video) (success, failed int, err error) {
	body, err := buildBulkBody(indexName, videos)
	if err != nil {
		return 0, len(videos), err
	}
	if body == "" {
		return 0, 0, nil
	}

	resp, err := Bulk(ctx, strings.NewReader(body))
	if err != nil {
		return 0, len(videos), err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return 0, len(videos), fmt.Errorf("bulk failed: %s", resp.String())
	}

	var bulkResp struct {
		Errors bool `json:"errors"`
		Items  []struct {
			Index struct {
				Status int `json:"status"`
			} `json:"index"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&bulkResp); err != nil {
		return len(videos), 0, nil
	}

	for _, item := range bulkResp.Items {
		if item.Index.Status >= 200 && item.Index.Status < 300 {
			success++
		} else {
			failed++
		}
	}

	logger.Info("Bulk sync to ES completed", zap.Int("success", success), zap.Int("failed", failed))
	return success, failed, nil
}

// SearchVideoIDs 执行查询，按命中顺序返回视频内部 ID 与总数
func SearchVideoIDs(ctx context.Context, query map[string]interface{}) ([]int64, int64, error) {
	queryJSON, err := json.Marshal(query)
	if err != nil {
		return nil, 0, err
	}

	resp, err := Search(ctx, indexName, bytes.NewReader(queryJSON))
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return nil, 0, fmt.Errorf("ES search error: %s", resp.String())
	}

	var esResp struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source struct {
					ID int64 `json:"id"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&esResp); err != nil {
		return nil, 0, err
	}

	ids := make([]int64, 0, len(esResp.Hits.Hits))
	for _, h := range esResp.Hits.Hits {
		ids = append(ids, h.Source.ID)
	}
	return ids, esResp.Hits.Total.Value, nil
}

// VideoIndex 把包级函数包装成可注入的搜索索引
type VideoIndex struct{}

func NewVideoIndex() *VideoIndex {
	return &VideoIndex{}
}

func (VideoIndex) Search(ctx context.Context, query map[string]interface{}) ([]int64, int64, error) {
	return SearchVideoIDs(ctx, query)
}

func (VideoIndex) Sync(ctx context.Context, v *model.Video) error {
	return SyncVideo(ctx, v)
}

func (VideoIndex) Remove(ctx context.Context, id int64) error {
	return DeleteVideo(ctx, id)
}

func (VideoIndex) BulkSync(ctx context.Context, videos []model.Video) (int, int, error) {
	return BulkSyncVideos(ctx, videos)
}
