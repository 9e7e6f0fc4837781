package filter

import (
	"context"
	"strings"

	"github.com/rushteam/digkit/core"
)

// LikedNames 过滤掉用户自己报上来的乐队，已经喜欢的不需要再推荐。
// 名字匹配与全链路一致：小写 + 去首尾空白。
//
// ExtraNames 可以附加一份黑名单（比如用户手动拉黑的艺人名），
// 与 rctx.UserLikes 取并集。
type LikedNames struct {
	ExtraNames []string
}

func (f *LikedNames) Name() string {
	return "filter.liked_names"
}

func (f *LikedNames) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	artist *core.Artist,
) (bool, error) {
	if artist == nil {
		return true, nil
	}

	name := strings.ToLower(strings.TrimSpace(artist.Name))
	if rctx != nil {
		if _, ok := rctx.LikedSet()[name]; ok {
			return true, nil
		}
	}
	for _, extra := range f.ExtraNames {
		if name == strings.ToLower(strings.TrimSpace(extra)) {
			return true, nil
		}
	}
	return false, nil
}
