// Package recommend 提供开箱即用的地下艺人推荐门面：
// 扩张（recall.expand）+ 打分（rank.genre）+ 固定过滤 + top-k 截断，
// 内部就是一条标准 Pipeline，需要定制时直接自己组 Node 即可。
package recommend

import (
	"context"

	"github.com/rushteam/digkit/core"
	"github.com/rushteam/digkit/feature"
	"github.com/rushteam/digkit/filter"
	"github.com/rushteam/digkit/pipeline"
	"github.com/rushteam/digkit/rank"
	"github.com/rushteam/digkit/recall"
	"github.com/rushteam/digkit/rerank"
)

// Engine 持有目录服务与默认参数。零值不可用，至少要给 Catalog。
type Engine struct {
	Catalog core.Catalog

	// Stats 可选：打分前用特征仓库刷新 popularity（feature.EnrichNode）
	Stats feature.StatsProvider

	// MaxRelated / MaxPerGenreSearch 扩张宽度，<=0 时各取 20
	MaxRelated        int
	MaxPerGenreSearch int

	// MaxConcurrent 扩张时按喜欢名字并发的上限，<=1 串行
	MaxConcurrent int
}

// Options 是单次推荐的调用参数。
type Options struct {
	// TopK 返回条数上限，<=0 时取 20
	TopK int

	// UndergroundWeight 反流行度权重，约定 [0, 1]，不钳制；
	// 0 只看流派相似度，1 只看“多地下”
	UndergroundWeight float64
}

func (o Options) topK() int {
	if o.TopK <= 0 {
		return 20
	}
	return o.TopK
}

// Expand 从喜欢的乐队名扩张候选艺人全集，返回带流派特征行的快照投影。
// 喜欢列表为空或全部解析失败时返回空切片，调用方按“无法推荐”处理，不是错误。
func (e *Engine) Expand(ctx context.Context, userLikes []string) ([]*core.Artist, error) {
	rctx := &core.RecommendContext{UserLikes: userLikes}
	expand := &recall.Expand{
		Catalog:           e.Catalog,
		MaxRelated:        e.MaxRelated,
		MaxPerGenreSearch: e.MaxPerGenreSearch,
		MaxConcurrent:     e.MaxConcurrent,
	}
	return expand.Process(ctx, rctx, nil)
}

// Recommend 对一份已扩张好的快照投影打分并出榜：
// 口味向量 → 余弦相似度 → 反流行度混合 → 固定过滤 → top-k。
// 空表原样返回；喜欢名单在表里一行都匹配不上时返回空榜。
func (e *Engine) Recommend(
	ctx context.Context,
	artists []*core.Artist,
	userLikes []string,
	opts Options,
) ([]*core.Artist, error) {
	if len(artists) == 0 {
		return artists, nil
	}

	rctx := &core.RecommendContext{UserLikes: userLikes}
	p := &pipeline.Pipeline{
		Nodes: e.scoringNodes(opts),
	}
	return p.Run(ctx, rctx, artists)
}

// Discover 一条龙：Expand + Recommend。
// 交互层自己的“最大流行度”滑杆请作用在返回的榜单之上（它是独立于
// 内置 55 上限的第二层过滤，这里不代劳）。
func (e *Engine) Discover(ctx context.Context, userLikes []string, opts Options) ([]*core.Artist, error) {
	artists, err := e.Expand(ctx, userLikes)
	if err != nil {
		return nil, err
	}
	return e.Recommend(ctx, artists, userLikes, opts)
}

func (e *Engine) scoringNodes(opts Options) []pipeline.Node {
	nodes := make([]pipeline.Node, 0, 4)
	if e.Stats != nil {
		nodes = append(nodes, &feature.EnrichNode{Stats: e.Stats})
	}
	nodes = append(nodes,
		&rank.GenreNode{UndergroundWeight: opts.UndergroundWeight},
		filter.Default(),
		&rerank.TopNNode{N: opts.topK()},
	)
	return nodes
}
