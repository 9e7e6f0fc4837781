package filter

import (
	"context"

	"github.com/rushteam/digkit/core"
	"github.com/rushteam/digkit/pipeline"
	"github.com/rushteam/digkit/pkg/utils"
)

// FilterNode 是过滤 Node，可以组合多个过滤器进行过滤。
// 过滤器按声明顺序逐个检查，每个都只会收窄候选集；
// 任何一个过滤器返回 true，该艺人就会被过滤掉。
//
// 标准地下推荐链路的固定顺序：
//  1. PopularityCeiling（内置 55 上限）
//  2. NonPositiveSimilarity
//  3. LikedNames（绝不推荐用户自己报上来的乐队）
type FilterNode struct {
	Filters []Filter
}

func (n *FilterNode) Name() string {
	return "filter.node"
}

func (n *FilterNode) Kind() pipeline.Kind {
	return pipeline.KindFilter
}

func (n *FilterNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	artists []*core.Artist,
) ([]*core.Artist, error) {
	if len(n.Filters) == 0 || len(artists) == 0 {
		return artists, nil
	}

	out := make([]*core.Artist, 0, len(artists))

	for _, a := range artists {
		if a == nil {
			continue
		}

		shouldFilter := false
		filterReason := ""

		// 依次检查每个过滤器
		for _, f := range n.Filters {
			ok, err := f.ShouldFilter(ctx, rctx, a)
			if err != nil {
				// 过滤器错误时记录但不中断流程
				continue
			}
			if ok {
				shouldFilter = true
				filterReason = f.Name()
				break
			}
		}

		if shouldFilter {
			// 记录过滤原因（可选，用于调试/观测）
			a.PutLabel("filtered", utils.Label{
				Value:  "true",
				Source: filterReason,
			})
			continue
		}

		out = append(out, a)
	}

	return out, nil
}

// Default 返回标准地下推荐链路的过滤节点（固定顺序，55 为内置流行度上限）。
// 展示层自己的“最大流行度”滑杆是另一层独立的后置过滤，不在这里合并。
func Default() *FilterNode {
	return &FilterNode{
		Filters: []Filter{
			&PopularityCeiling{},
			&NonPositiveSimilarity{},
			&LikedNames{},
		},
	}
}
