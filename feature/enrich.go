package feature

import (
	"context"
	"strconv"

	"github.com/rushteam/digkit/core"
	"github.com/rushteam/digkit/pipeline"
	"github.com/rushteam/digkit/pkg/utils"
)

// EnrichNode 是统计特征刷新节点：打分前用特征仓库里的离线统计覆盖
// 目录服务给的 popularity，并把辅助统计挂到 Labels 上供观测。
//
// 典型场景：目录响应经过 catalog.Cached 长 TTL 缓存后，popularity 可能
// 落后数周；离线管道每天把刷新值物化到 Feast，这个节点在 rank 之前兜底。
//
// 失败语义与整条链路一致：仓库整体失败或单个艺人缺数据都不致命，
// 艺人保留目录服务给的原值继续往下走。
type EnrichNode struct {
	Stats StatsProvider

	// BatchSize 单次向特征仓库批量查询的艺人数，<=0 时取 64
	BatchSize int
}

func (n *EnrichNode) Name() string {
	return "feature.enrich"
}

func (n *EnrichNode) Kind() pipeline.Kind {
	return pipeline.KindPostProcess
}

func (n *EnrichNode) Process(
	ctx context.Context,
	_ *core.RecommendContext,
	artists []*core.Artist,
) ([]*core.Artist, error) {
	if n.Stats == nil || len(artists) == 0 {
		return artists, nil
	}

	batch := n.BatchSize
	if batch <= 0 {
		batch = 64
	}

	byID := make(map[string]*core.Artist, len(artists))
	ids := make([]string, 0, len(artists))
	for _, a := range artists {
		if a == nil || a.ID == "" {
			continue
		}
		byID[a.ID] = a
		ids = append(ids, a.ID)
	}

	for start := 0; start < len(ids); start += batch {
		end := start + batch
		if end > len(ids) {
			end = len(ids)
		}
		stats, err := n.Stats.ArtistStats(ctx, ids[start:end])
		if err != nil {
			// 特征仓库不可用：保留目录值，不中断链路
			continue
		}
		for id, st := range stats {
			a := byID[id]
			if a == nil {
				continue
			}
			if st.Popularity >= 0 {
				a.Popularity = st.Popularity
				a.PutLabel("popularity_source", utils.Label{Value: "feast", Source: "feature"})
			}
			if st.MonthlyListeners >= 0 {
				a.PutLabel("monthly_listeners", utils.Label{
					Value:  strconv.FormatInt(st.MonthlyListeners, 10),
					Source: "feature",
				})
			}
		}
	}

	return artists, nil
}
