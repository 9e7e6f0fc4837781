package filter

import (
	"context"

	"github.com/rushteam/digkit/core"
	"github.com/rushteam/digkit/pkg/dsl"
)

// DSLFilter 是表达式驱动的过滤器：满足 CEL 表达式的艺人被过滤掉。
// 用于不改代码就能下发的运营策略，例如：
//   - `artist.popularity > 40` → 收紧地下程度
//   - `!label.recall_source.contains("related")` → 只留 related 路召回
//
// 表达式求值失败时保守放行（不过滤），错误交给 FilterNode 吞掉。
type DSLFilter struct {
	// Expr CEL 表达式，对要“踢掉”的艺人求值为 true
	Expr string
}

func (f *DSLFilter) Name() string {
	return "filter.dsl"
}

func (f *DSLFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	artist *core.Artist,
) (bool, error) {
	if artist == nil {
		return true, nil
	}
	if f.Expr == "" {
		return false, nil
	}
	return dsl.NewEval(artist, rctx).Evaluate(f.Expr)
}
