package recall

import (
	"context"

	"github.com/rushteam/digkit/core"
	"github.com/rushteam/digkit/pkg/utils"
)

// Related 是关联艺人召回源：对每个能解析的种子乐队，
// 取目录服务给出的 related artists（目录方自己的相似模型，黑盒）。
// related 数据缺失或服务报错都按零结果处理。
type Related struct {
	Catalog core.Catalog

	// MaxRelated 每个种子最多取多少个关联艺人，<=0 时取 20
	MaxRelated int
}

func (r *Related) Name() string { return "recall.related" }

func (r *Related) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Artist, error) {
	if r.Catalog == nil || rctx == nil {
		return nil, nil
	}

	max := r.MaxRelated
	if max <= 0 {
		max = 20
	}

	var out []*core.Artist
	for _, name := range rctx.UserLikes {
		seed, err := r.Catalog.SearchArtist(ctx, name)
		if err != nil || seed == nil {
			continue
		}
		related, err := r.Catalog.RelatedArtists(ctx, seed.ID)
		if err != nil {
			continue
		}
		if len(related) > max {
			related = related[:max]
		}
		for _, a := range related {
			a.PutLabel("recall_source", utils.Label{Value: "related", Source: "recall"})
			out = append(out, a)
		}
	}
	return out, nil
}
