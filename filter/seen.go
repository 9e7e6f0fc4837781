package filter

import (
	"context"
	"fmt"

	"github.com/rushteam/digkit/core"
	"github.com/rushteam/digkit/pkg/conv"
)

// SeenChecker 判断某个艺人是否已经对用户曝光过。
// 典型实现是 Redis 布隆过滤器（见 ext/store/redis），曝光数据由反馈链路回写。
type SeenChecker interface {
	// Seen 返回 true 表示可能曝光过（允许误判），false 表示一定没曝光过
	Seen(ctx context.Context, key string, artistID string) (bool, error)
}

// SeenFilter 过滤掉最近已经推荐给该用户的艺人，避免榜单反复出同一批。
// 用户标识从 rctx.Params["user_id"] 取；取不到时整个过滤器不生效，
// 推荐链路允许匿名请求。
type SeenFilter struct {
	Checker SeenChecker

	// KeyPrefix 曝光集合的 key 前缀，空时用 "seen"。
	// 最终 key 形如 {prefix}:{user_id}
	KeyPrefix string
}

func (f *SeenFilter) Name() string {
	return "filter.seen"
}

func (f *SeenFilter) ShouldFilter(
	ctx context.Context,
	rctx *core.RecommendContext,
	artist *core.Artist,
) (bool, error) {
	if f.Checker == nil || artist == nil || artist.ID == "" {
		return false, nil
	}

	userID := conv.ConfigGet(rctx.Params, "user_id", "")
	if userID == "" {
		return false, nil
	}

	prefix := f.KeyPrefix
	if prefix == "" {
		prefix = "seen"
	}

	return f.Checker.Seen(ctx, fmt.Sprintf("%s:%s", prefix, userID), artist.ID)
}
