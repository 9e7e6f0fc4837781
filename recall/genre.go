package recall

import (
	"context"

	"github.com/rushteam/digkit/core"
	"github.com/rushteam/digkit/pkg/utils"
)

// Genre 是流派召回源：对每个能解析的种子乐队，
// 用它身上的每个流派标签去目录服务搜同流派艺人。
// 单个标签搜索失败不影响其余标签。
type Genre struct {
	Catalog core.Catalog

	// MaxPerGenre 每个流派标签最多取多少个艺人，<=0 时取 20
	MaxPerGenre int
}

func (r *Genre) Name() string { return "recall.genre" }

func (r *Genre) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Artist, error) {
	if r.Catalog == nil || rctx == nil {
		return nil, nil
	}

	max := r.MaxPerGenre
	if max <= 0 {
		max = 20
	}

	var out []*core.Artist
	for _, name := range rctx.UserLikes {
		seed, err := r.Catalog.SearchArtist(ctx, name)
		if err != nil || seed == nil {
			continue
		}
		// 这里用种子的原始流派列表：数据直接来自结构化接口，无需规整
		for _, g := range seed.Genres {
			found, err := r.Catalog.SearchByGenre(ctx, g, max)
			if err != nil {
				continue
			}
			for _, a := range found {
				a.PutLabel("recall_source", utils.Label{Value: "genre", Source: "recall"})
				a.PutLabel("recall_genre", utils.Label{Value: g, Source: "recall"})
				out = append(out, a)
			}
		}
	}
	return out, nil
}
