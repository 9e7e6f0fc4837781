package rerank

import (
	"context"

	"github.com/rushteam/digkit/core"
	"github.com/rushteam/digkit/pipeline"
)

// GenreDiversity 是一个简单的多样性 ReRank：按主流派限量，
// 避免榜单被同一个流派（比如清一色 atmospheric black metal）刷屏。
// 主流派取艺人规整后流派列表的第一个标签；无流派的艺人不受限。
//
// 不在默认链路里，想要更杂食的榜单时挂在 TopNNode 之前。
type GenreDiversity struct {
	// MaxPerGenre 每个主流派最多保留的艺人数，<=0 时取 3
	MaxPerGenre int
}

func (n *GenreDiversity) Name() string {
	return "rerank.genre_diversity"
}

func (n *GenreDiversity) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *GenreDiversity) Process(
	_ context.Context,
	_ *core.RecommendContext,
	artists []*core.Artist,
) ([]*core.Artist, error) {
	if len(artists) == 0 {
		return artists, nil
	}

	max := n.MaxPerGenre
	if max <= 0 {
		max = 3
	}

	counts := make(map[string]int, 32)
	out := make([]*core.Artist, 0, len(artists))

	for _, a := range artists {
		if a == nil {
			continue
		}

		primary := ""
		if len(a.Genres) > 0 {
			primary = a.Genres[0]
		}

		if primary == "" {
			out = append(out, a)
			continue
		}
		if counts[primary] >= max {
			continue
		}
		counts[primary]++
		out = append(out, a)
	}

	return out, nil
}
