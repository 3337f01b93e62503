package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"time"

	infraKafka "edufleex-go/internal/infra/kafka"
	"edufleex-go/internal/model"
)

type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	gets    int
	hits    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (c *memoryCache) GetJSON(_ context.Context, key string, dst interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	raw, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	c.hits++
	return true, json.Unmarshal(raw, dst)
}

func (c *memoryCache) SetJSON(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = raw
	return nil
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.entries, k)
	}
	return nil
}

type recordingPublisher struct {
	events []*infraKafka.ViewEvent
	err    error
}

func (p *recordingPublisher) PublishView(_ context.Context, ev *infraKafka.ViewEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, ev)
	return nil
}

type memoryThumbnails struct {
	objects map[string][]byte
}

func (m *memoryThumbnails) PutThumbnail(_ context.Context, objectName string, reader io.Reader, _ int64, _ string) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	if m.objects == nil {
		m.objects = map[string][]byte{}
	}
	m.objects[objectName] = data
	return "http://cdn.test/thumbnails/" + objectName, nil
}

type stubIndex struct {
	ids     []int64
	total   int64
	err     error
	synced  []int64
	removed []int64
	queries []map[string]interface{}
}

func (s *stubIndex) Search(_ context.Context, query map[string]interface{}) ([]int64, int64, error) {
	s.queries = append(s.queries, query)
	return s.ids, s.total, s.err
}

func (s *stubIndex) Sync(_ context.Context, v *model.Video) error {
	s.synced = append(s.synced, v.ID)
	return nil
}

func (s *stubIndex) Remove(_ context.Context, id int64) error {
	s.removed = append(s.removed, id)
	return nil
}

func (s *stubIndex) BulkSync(_ context.Context, videos []model.Video) (int, int, error) {
	return len(videos), 0, nil
}

var errUnavailable = errors.New("broker unavailable")
