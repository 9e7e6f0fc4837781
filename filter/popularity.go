package filter

import (
	"context"

	"github.com/rushteam/digkit/core"
)

// DefaultPopularityCeiling 是打分器内置的流行度上限。
// 注意：展示层往往还会叠加一个用户可调的上限（默认 50，作用在 top-k 截断之后），
// 两层是独立的，这里不做合并。
const DefaultPopularityCeiling = 55

// PopularityCeiling 过滤掉流行度超过上限的艺人：太主流就算相似也不算“地下”。
type PopularityCeiling struct {
	// Max 上限（含）；<=0 时取 DefaultPopularityCeiling
	Max int
}

func (f *PopularityCeiling) Name() string {
	return "filter.popularity_ceiling"
}

func (f *PopularityCeiling) ShouldFilter(
	_ context.Context,
	_ *core.RecommendContext,
	artist *core.Artist,
) (bool, error) {
	if artist == nil {
		return true, nil
	}
	max := f.Max
	if max <= 0 {
		max = DefaultPopularityCeiling
	}
	return artist.Popularity > max, nil
}
