package recall

import (
	"context"

	"github.com/rushteam/digkit/core"
	"github.com/rushteam/digkit/pkg/utils"
)

// Seed 是种子召回源：把用户给出的每个乐队名解析为目录档案。
// 解析失败（查不到 / 瞬时错误）的名字直接跳过，不中断其余名字。
type Seed struct {
	Catalog core.Catalog
}

func (r *Seed) Name() string { return "recall.seed" }

func (r *Seed) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Artist, error) {
	if r.Catalog == nil || rctx == nil {
		return nil, nil
	}

	out := make([]*core.Artist, 0, len(rctx.UserLikes))
	for _, name := range rctx.UserLikes {
		artist, err := r.Catalog.SearchArtist(ctx, name)
		if err != nil || artist == nil {
			continue
		}
		artist.PutLabel("recall_source", utils.Label{Value: "seed", Source: "recall"})
		out = append(out, artist)
	}
	return out, nil
}
