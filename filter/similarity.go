package filter

import (
	"context"

	"github.com/rushteam/digkit/core"
)

// NonPositiveSimilarity 过滤掉与用户口味向量没有任何流派交集的艺人
// （Similarity <= 0）。需要在 rank.GenreNode 之后使用，否则全员都是 0。
type NonPositiveSimilarity struct{}

func (f *NonPositiveSimilarity) Name() string {
	return "filter.nonpositive_similarity"
}

func (f *NonPositiveSimilarity) ShouldFilter(
	_ context.Context,
	_ *core.RecommendContext,
	artist *core.Artist,
) (bool, error) {
	if artist == nil {
		return true, nil
	}
	return artist.Similarity <= 0, nil
}
