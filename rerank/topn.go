package rerank

import (
	"context"

	"github.com/rushteam/digkit/core"
	"github.com/rushteam/digkit/pipeline"
)

// TopNNode 是一个 Top-N 截断节点，用于在排序后截取前 N 个艺人。
// 放在 rank.genre 与 filter 之后，对应推荐接口的 top_k 参数。
//
// 注意剩余候选不足 N 时返回全部，不补位也不报错；
// 展示层如果还有自己的流行度上限，是作用在这次截断结果之上的。
//
// 示例：
//
//	pipeline := &pipeline.Pipeline{
//	    Nodes: []pipeline.Node{
//	        &rank.GenreNode{UndergroundWeight: 0.3},
//	        filter.Default(),
//	        &rerank.TopNNode{N: 10},
//	    },
//	}
type TopNNode struct {
	// N 要保留的艺人数量（Top N）
	// 如果 N <= 0，则返回所有艺人（不截断）
	N int
}

func (n *TopNNode) Name() string {
	return "rerank.topn"
}

func (n *TopNNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *TopNNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	artists []*core.Artist,
) ([]*core.Artist, error) {
	if n.N <= 0 {
		return artists, nil
	}
	if len(artists) <= n.N {
		return artists, nil
	}
	return artists[:n.N], nil
}
