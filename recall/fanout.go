package recall

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/digkit/core"
	"github.com/rushteam/digkit/pipeline"
	"github.com/rushteam/digkit/pkg/utils"
)

// Fanout 是一个 Recall Node：并发执行多个召回源，并合并结果。
// 支持超时、限流、优先级合并策略。
//
// 与 Expand 的关系：Expand 是按规格编排好的一条龙扩张器；
// Fanout 面向自由组合，比如只想要 seed + related 两路，
// 或在标准三路之外再挂一路自定义 Source。
type Fanout struct {
	Sources       []Source
	Dedup         bool
	Timeout       time.Duration // 每个召回源的超时时间
	MaxConcurrent int           // 最大并发数（0 表示无限制）
	MergeStrategy string        // 合并策略：first / union / priority（优先级按 Sources 顺序）
}

func (n *Fanout) Name() string        { return "recall.fanout" }
func (n *Fanout) Kind() pipeline.Kind { return pipeline.KindRecall }

func (n *Fanout) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Artist,
) ([]*core.Artist, error) {
	if len(n.Sources) == 0 {
		return nil, nil
	}

	var (
		mu      sync.Mutex
		results = make([][]*core.Artist, len(n.Sources))
		eg, _   = errgroup.WithContext(ctx)
	)

	if n.MaxConcurrent > 0 {
		eg.SetLimit(n.MaxConcurrent)
	}

	for i, src := range n.Sources {
		s := src
		idx := i

		eg.Go(func() error {
			// 超时控制
			recallCtx := ctx
			if n.Timeout > 0 {
				var cancel context.CancelFunc
				recallCtx, cancel = context.WithTimeout(ctx, n.Timeout)
				defer cancel()
			}

			artists, err := s.Recall(recallCtx, rctx)
			if err != nil {
				// 超时或错误时返回空结果，不中断其他召回源
				return nil
			}

			// 各 Source 自己负责打 recall_source；这里只兜底没打过的
			for _, a := range artists {
				if _, ok := a.Labels["recall_source"]; !ok {
					a.PutLabel("recall_source", utils.Label{Value: s.Name(), Source: "recall"})
				}
			}

			mu.Lock()
			results[idx] = artists
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	// 按 Sources 顺序摊平，保证合并次序确定（优先级 = 源的声明顺序）
	var all []*core.Artist
	for _, batch := range results {
		all = append(all, batch...)
	}

	switch n.MergeStrategy {
	case "union":
		return n.mergeUnion(all), nil
	default: // "first" / "priority" 或默认
		return n.mergeFirst(all), nil
	}
}

// mergeFirst 按 ID 去重，保留第一个出现的（默认策略）。
// all 已按源优先级排好，因此 first-seen 同时就是 priority 合并。
// 重复发现的 labels 合并进保留者，发现路径不丢。
func (n *Fanout) mergeFirst(all []*core.Artist) []*core.Artist {
	if !n.Dedup {
		return all
	}
	seen := make(map[string]*core.Artist, len(all))
	out := make([]*core.Artist, 0, len(all))
	for _, a := range all {
		if a == nil || a.ID == "" {
			continue
		}
		if old, ok := seen[a.ID]; ok {
			for k, v := range a.Labels {
				old.PutLabel(k, v)
			}
			continue
		}
		seen[a.ID] = a
		out = append(out, a)
	}
	return out
}

// mergeUnion 合并所有结果，不去重（用于需要保留所有来源的场景）。
func (n *Fanout) mergeUnion(all []*core.Artist) []*core.Artist {
	return all
}
