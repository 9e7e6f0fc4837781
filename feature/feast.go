package feature

import (
	"context"
	"fmt"
	"strconv"

	feastsdk "github.com/feast-dev/feast/sdk/go"
	feasttypes "github.com/feast-dev/feast/sdk/go/protos/feast/types"
)

// ArtistStats 是特征仓库中一条艺人侧统计。
// 目录服务自带 popularity，但做过缓存/限流的部署里它可能很陈旧；
// 离线管道可以把刷新后的统计物化到 Feast，在打分前覆盖。
type ArtistStats struct {
	// Popularity 刷新后的流行度 [0, 100]；<0 表示仓库里没有
	Popularity int
	// MonthlyListeners 月听众数，辅助观测用；<0 表示仓库里没有
	MonthlyListeners int64
}

// StatsProvider 是艺人统计特征的领域接口，由 Feast 等特征仓库实现。
// 返回的 map 只包含仓库里有数据的艺人；整体失败返回 error，由调用方降级。
type StatsProvider interface {
	ArtistStats(ctx context.Context, artistIDs []string) (map[string]ArtistStats, error)
}

// FeastStats 是基于官方 Feast Go SDK 的 StatsProvider 实现。
//
// 特征约定：
//   - 实体 key：artist_id
//   - 特征：artist_stats:popularity（int64）、artist_stats:monthly_listeners（int64）
//
// 注意：流派词表/矩阵绝不进特征仓库。词表每次运行重新推导，
// 物化出去的矩阵列在下一次运行就对不上了。这里只存标量统计。
type FeastStats struct {
	client  *feastsdk.GrpcClient
	Project string
}

// NewFeastStats 创建一个 Feast gRPC 统计客户端。
func NewFeastStats(host string, port int, project string) (*FeastStats, error) {
	if port == 0 {
		port = 6565 // Feast Feature Server 默认 gRPC 端口
	}
	client, err := feastsdk.NewGrpcClient(host, port)
	if err != nil {
		return nil, fmt.Errorf("create feast grpc client: %w", err)
	}
	return &FeastStats{client: client, Project: project}, nil
}

// Close 关闭底层 gRPC 连接。
func (f *FeastStats) Close() error {
	if f.client == nil {
		return nil
	}
	return f.client.Close()
}

const (
	featurePopularity       = "artist_stats:popularity"
	featureMonthlyListeners = "artist_stats:monthly_listeners"
)

// ArtistStats 批量拉取在线统计特征。
func (f *FeastStats) ArtistStats(ctx context.Context, artistIDs []string) (map[string]ArtistStats, error) {
	if len(artistIDs) == 0 {
		return map[string]ArtistStats{}, nil
	}

	entities := make([]feastsdk.Row, len(artistIDs))
	for i, id := range artistIDs {
		entities[i] = feastsdk.Row{"artist_id": feastsdk.StrVal(id)}
	}

	resp, err := f.client.GetOnlineFeatures(ctx, &feastsdk.OnlineFeaturesRequest{
		Features: []string{featurePopularity, featureMonthlyListeners},
		Entities: entities,
		Project:  f.Project,
	})
	if err != nil {
		return nil, fmt.Errorf("feast get online features: %w", err)
	}

	rows := resp.Rows()
	if len(rows) != len(artistIDs) {
		return nil, fmt.Errorf("feast response row count mismatch: expected %d, got %d", len(artistIDs), len(rows))
	}

	out := make(map[string]ArtistStats, len(artistIDs))
	for i, row := range rows {
		stats := ArtistStats{Popularity: -1, MonthlyListeners: -1}
		found := false
		if v, ok := row[featurePopularity]; ok {
			if n, ok := asInt64(v); ok {
				stats.Popularity = int(n)
				found = true
			}
		}
		if v, ok := row[featureMonthlyListeners]; ok {
			if n, ok := asInt64(v); ok {
				stats.MonthlyListeners = n
				found = true
			}
		}
		if found {
			out[artistIDs[i]] = stats
		}
	}
	return out, nil
}

// asInt64 把 SDK 返回的特征值宽松转为 int64。
// 后端物化成什么数值类型不完全可控，这里把常见变体都接住。
func asInt64(val *feasttypes.Value) (int64, bool) {
	if val == nil {
		return 0, false
	}
	switch v := val.GetVal().(type) {
	case *feasttypes.Value_Int64Val:
		return v.Int64Val, true
	case *feasttypes.Value_Int32Val:
		return int64(v.Int32Val), true
	case *feasttypes.Value_DoubleVal:
		return int64(v.DoubleVal), true
	case *feasttypes.Value_FloatVal:
		return int64(v.FloatVal), true
	case *feasttypes.Value_StringVal:
		if n, err := strconv.ParseInt(v.StringVal, 10, 64); err == nil {
			return n, true
		}
		return 0, false
	default:
		return 0, false
	}
}
