package core

import (
	"strings"

	"github.com/rushteam/digkit/pkg/utils"
)

// RecommendContext 承载一次推荐请求的用户输入与场景信息，贯穿整个 Pipeline 透传。
type RecommendContext struct {
	// UserLikes 用户给出的喜欢乐队名列表（口味锚点），匹配时大小写不敏感
	UserLikes []string

	Scene string

	// Labels 是请求级标签，可驱动整个 Pipeline 行为
	Labels map[string]utils.Label

	// Params 请求级上下文参数（top_k、underground_weight 等由节点各自读取）
	Params map[string]any
}

// LikedSet 返回规整后（小写 + 去首尾空白）的喜欢名集合，供各节点做名称匹配。
func (rctx *RecommendContext) LikedSet() map[string]struct{} {
	set := make(map[string]struct{}, len(rctx.UserLikes))
	for _, name := range rctx.UserLikes {
		n := strings.ToLower(strings.TrimSpace(name))
		if n == "" {
			continue
		}
		set[n] = struct{}{}
	}
	return set
}

// PutLabel 写入请求级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取请求级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
