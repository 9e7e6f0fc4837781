package pipeline

import (
	"context"

	"github.com/rushteam/digkit/core"
)

// Pipeline 是 digkit 的核心抽象：把推荐逻辑拆成可组合的 Node 链。
// 典型链路：recall.expand → rank.genre → filter → rerank.topn。
type Pipeline struct {
	Nodes []Node
}

func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	artists []*core.Artist,
) ([]*core.Artist, error) {
	cur := artists
	for _, node := range p.Nodes {
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
