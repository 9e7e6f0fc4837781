// Package catalog 提供 core.Catalog 的基础设施实现。
// 真实部署里目录服务是外部第三方（认证与传输由调用方自备）；
// 这里内置静态内存目录（测试/原型）与 Store 缓存装饰器。
package catalog

import (
	"context"
	"strings"
	"sync"

	"github.com/rushteam/digkit/core"
)

// Memory 是静态数据的内存目录，用于测试/原型/离线快照回放。
// 每次调用都返回记录的独立拷贝，调用方随意改写（挂特征行、打 label）
// 不会污染目录本身，这一点和真实目录服务的行为保持一致。
type Memory struct {
	mu      sync.RWMutex
	artists []*core.Artist
	related map[string][]string // artist id -> related artist ids
}

// NewMemory 创建内存目录。related 的 key/value 都是艺人 ID；
// 不在 related 里的艺人视作“无 related 数据”（查询时报 NOT_SUPPORTED）。
func NewMemory(artists []*core.Artist, related map[string][]string) *Memory {
	if related == nil {
		related = map[string][]string{}
	}
	return &Memory{artists: artists, related: related}
}

// Add 追加一条艺人记录（测试中构造数据用）。
func (m *Memory) Add(a *core.Artist, relatedIDs ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.artists = append(m.artists, a)
	if len(relatedIDs) > 0 {
		m.related[a.ID] = relatedIDs
	}
}

// SearchArtist 按名字返回最佳单个匹配：先找大小写不敏感的全等，
// 再退化为前缀匹配。查不到返回 NOT_FOUND 领域错误。
func (m *Memory) SearchArtist(ctx context.Context, name string) (*core.Artist, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	want := strings.ToLower(strings.TrimSpace(name))
	if want == "" {
		return nil, core.ErrArtistNotFound
	}

	for _, a := range m.artists {
		if strings.ToLower(strings.TrimSpace(a.Name)) == want {
			return cloneArtist(a), nil
		}
	}
	for _, a := range m.artists {
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(a.Name)), want) {
			return cloneArtist(a), nil
		}
	}
	return nil, core.ErrArtistNotFound
}

// RelatedArtists 返回关联艺人；该艺人没有 related 数据时返回
// NOT_SUPPORTED（扩张器会按空列表降级处理）。
func (m *Memory) RelatedArtists(ctx context.Context, artistID string) ([]*core.Artist, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids, ok := m.related[artistID]
	if !ok {
		return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeNotSupported,
			"catalog: no related data for artist "+artistID)
	}

	byID := make(map[string]*core.Artist, len(m.artists))
	for _, a := range m.artists {
		byID[a.ID] = a
	}

	out := make([]*core.Artist, 0, len(ids))
	for _, id := range ids {
		if a, ok := byID[id]; ok {
			out = append(out, cloneArtist(a))
		}
	}
	return out, nil
}

// SearchByGenre 返回流派集合包含该标签的艺人，最多 limit 个（按录入序）。
func (m *Memory) SearchByGenre(ctx context.Context, genre string, limit int) ([]*core.Artist, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}

	var out []*core.Artist
	for _, a := range m.artists {
		if len(out) >= limit {
			break
		}
		for _, g := range a.Genres {
			if g == genre {
				out = append(out, cloneArtist(a))
				break
			}
		}
	}
	return out, nil
}

// cloneArtist 做一份可安全改写的拷贝（Genres 切片独立，Labels 全新）。
func cloneArtist(a *core.Artist) *core.Artist {
	c := core.NewArtist(a.ID, a.Name)
	c.Popularity = a.Popularity
	c.ExternalURL = a.ExternalURL
	c.Genres = append([]string(nil), a.Genres...)
	return c
}

var _ core.Catalog = (*Memory)(nil)
