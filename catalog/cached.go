package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rushteam/digkit/core"
)

// Cached 是目录服务的缓存装饰器：成功响应序列化后写进 core.Store，
// 命中缓存就不再打外部目录服务（配额/延迟都省下来）。
//
// 只缓存成功：查不到和瞬时错误都原样透传、不落缓存，
// 下次请求还有机会拿到真实结果。缓存层自身的读写失败同样不致命，
// 退化为直接穿透到底层目录。
type Cached struct {
	next  core.Catalog
	store core.Store

	// TTLSeconds 缓存有效期（秒），<=0 表示不过期
	TTLSeconds int
}

// NewCached 包装一个目录服务。
func NewCached(next core.Catalog, store core.Store, ttlSeconds int) *Cached {
	return &Cached{next: next, store: store, TTLSeconds: ttlSeconds}
}

// cachedArtist 是落进 Store 的序列化形态（只存档案字段，
// 特征行/打分/labels 都是运行内状态，不进缓存）。
type cachedArtist struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Popularity  int      `json:"popularity"`
	Genres      []string `json:"genres"`
	ExternalURL string   `json:"external_url,omitempty"`
}

func toCached(a *core.Artist) cachedArtist {
	return cachedArtist{
		ID:          a.ID,
		Name:        a.Name,
		Popularity:  a.Popularity,
		Genres:      a.Genres,
		ExternalURL: a.ExternalURL,
	}
}

func fromCached(c cachedArtist) *core.Artist {
	a := core.NewArtist(c.ID, c.Name)
	a.Popularity = c.Popularity
	a.Genres = c.Genres
	a.ExternalURL = c.ExternalURL
	return a
}

func (c *Cached) SearchArtist(ctx context.Context, name string) (*core.Artist, error) {
	key := "catalog:artist:" + strings.ToLower(strings.TrimSpace(name))

	if data, err := c.store.Get(ctx, key); err == nil {
		var rec cachedArtist
		if json.Unmarshal(data, &rec) == nil && rec.ID != "" {
			return fromCached(rec), nil
		}
	}

	artist, err := c.next.SearchArtist(ctx, name)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(toCached(artist)); err == nil {
		_ = c.store.Set(ctx, key, data, c.TTLSeconds)
	}
	return artist, nil
}

func (c *Cached) RelatedArtists(ctx context.Context, artistID string) ([]*core.Artist, error) {
	key := "catalog:related:" + artistID

	if data, err := c.store.Get(ctx, key); err == nil {
		if artists, ok := decodeList(data); ok {
			return artists, nil
		}
	}

	related, err := c.next.RelatedArtists(ctx, artistID)
	if err != nil {
		return nil, err
	}

	c.storeList(ctx, key, related)
	return related, nil
}

func (c *Cached) SearchByGenre(ctx context.Context, genre string, limit int) ([]*core.Artist, error) {
	key := fmt.Sprintf("catalog:genre:%s:%d", genre, limit)

	if data, err := c.store.Get(ctx, key); err == nil {
		if artists, ok := decodeList(data); ok {
			return artists, nil
		}
	}

	found, err := c.next.SearchByGenre(ctx, genre, limit)
	if err != nil {
		return nil, err
	}

	c.storeList(ctx, key, found)
	return found, nil
}

func (c *Cached) storeList(ctx context.Context, key string, artists []*core.Artist) {
	recs := make([]cachedArtist, len(artists))
	for i, a := range artists {
		recs[i] = toCached(a)
	}
	if data, err := json.Marshal(recs); err == nil {
		_ = c.store.Set(ctx, key, data, c.TTLSeconds)
	}
}

func decodeList(data []byte) ([]*core.Artist, bool) {
	var recs []cachedArtist
	if json.Unmarshal(data, &recs) != nil {
		return nil, false
	}
	out := make([]*core.Artist, len(recs))
	for i, rec := range recs {
		out[i] = fromCached(rec)
	}
	return out, true
}

var _ core.Catalog = (*Cached)(nil)
