// Package builders 注册内置 Node 的配置构建器。
// 在入口处 import _ "github.com/rushteam/digkit/config/builders" 触发注册，
// 之后即可用 YAML/JSON 声明整条推荐链路。
//
// 目录服务是运行期对象，没法写进配置文件：构建 recall.expand / recall.fanout
// 之前需要先调用 UseCatalog 注入；同理 feature.enrich 依赖 UseStatsProvider。
package builders

import (
	"fmt"
	"sync"
	"time"

	"github.com/rushteam/digkit/config"
	"github.com/rushteam/digkit/core"
	"github.com/rushteam/digkit/feature"
	"github.com/rushteam/digkit/filter"
	"github.com/rushteam/digkit/pipeline"
	"github.com/rushteam/digkit/pkg/conv"
	"github.com/rushteam/digkit/rank"
	"github.com/rushteam/digkit/recall"
	"github.com/rushteam/digkit/rerank"
)

func init() {
	config.Register("recall.expand", BuildExpandNode)
	config.Register("recall.fanout", BuildFanoutNode)
	config.Register("rank.genre", BuildGenreNode)
	config.Register("filter", BuildFilterNode)
	config.Register("rerank.topn", BuildTopNNode)
	config.Register("rerank.genre_diversity", BuildGenreDiversityNode)
	config.Register("feature.enrich", BuildEnrichNode)
}

var (
	mu           sync.RWMutex
	boundCatalog core.Catalog
	boundStats   feature.StatsProvider
)

// UseCatalog 注入配置驱动链路使用的目录服务。
func UseCatalog(c core.Catalog) {
	mu.Lock()
	defer mu.Unlock()
	boundCatalog = c
}

// UseStatsProvider 注入 feature.enrich 使用的统计特征仓库。
func UseStatsProvider(p feature.StatsProvider) {
	mu.Lock()
	defer mu.Unlock()
	boundStats = p
}

func catalogOrErr() (core.Catalog, error) {
	mu.RLock()
	defer mu.RUnlock()
	if boundCatalog == nil {
		return nil, fmt.Errorf("catalog not bound: call builders.UseCatalog before building recall nodes")
	}
	return boundCatalog, nil
}

func BuildExpandNode(cfg map[string]interface{}) (pipeline.Node, error) {
	cat, err := catalogOrErr()
	if err != nil {
		return nil, err
	}
	return &recall.Expand{
		Catalog:           cat,
		MaxRelated:        conv.ConfigGetInt(cfg, "max_related", 20),
		MaxPerGenreSearch: conv.ConfigGetInt(cfg, "max_per_genre_search", 20),
		MaxConcurrent:     conv.ConfigGetInt(cfg, "max_concurrent", 0),
	}, nil
}

func BuildFanoutNode(cfg map[string]interface{}) (pipeline.Node, error) {
	cat, err := catalogOrErr()
	if err != nil {
		return nil, err
	}

	sourcesConfig, ok := cfg["sources"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("sources not found or invalid")
	}
	sources := make([]recall.Source, 0, len(sourcesConfig))
	for _, sc := range sourcesConfig {
		sourceMap, ok := sc.(map[string]interface{})
		if !ok {
			continue
		}
		switch sourceType := conv.ConfigGet(sourceMap, "type", ""); sourceType {
		case "seed":
			sources = append(sources, &recall.Seed{Catalog: cat})
		case "related":
			sources = append(sources, &recall.Related{
				Catalog:    cat,
				MaxRelated: conv.ConfigGetInt(sourceMap, "max_related", 20),
			})
		case "genre":
			sources = append(sources, &recall.Genre{
				Catalog:     cat,
				MaxPerGenre: conv.ConfigGetInt(sourceMap, "max_per_genre", 20),
			})
		default:
			return nil, fmt.Errorf("unknown source type: %s", sourceType)
		}
	}

	fanout := &recall.Fanout{
		Sources:       sources,
		Dedup:         conv.ConfigGet(cfg, "dedup", true),
		MaxConcurrent: conv.ConfigGetInt(cfg, "max_concurrent", 0),
		MergeStrategy: conv.ConfigGet(cfg, "merge_strategy", "first"),
	}
	if sec := conv.ConfigGetInt(cfg, "timeout", 0); sec > 0 {
		fanout.Timeout = time.Duration(sec) * time.Second
	}
	return fanout, nil
}

func BuildGenreNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rank.GenreNode{
		UndergroundWeight: conv.ConfigGetFloat64(cfg, "underground_weight", 0.3),
	}, nil
}

func BuildFilterNode(cfg map[string]interface{}) (pipeline.Node, error) {
	filtersConfig, ok := cfg["filters"].([]interface{})
	if !ok {
		// 未显式配置时给标准地下链路的固定过滤顺序
		return filter.Default(), nil
	}

	filters := make([]filter.Filter, 0, len(filtersConfig))
	for _, fc := range filtersConfig {
		filterMap, ok := fc.(map[string]interface{})
		if !ok {
			continue
		}
		switch filterType := conv.ConfigGet(filterMap, "type", ""); filterType {
		case "popularity_ceiling":
			filters = append(filters, &filter.PopularityCeiling{
				Max: conv.ConfigGetInt(filterMap, "max", 0),
			})
		case "nonpositive_similarity":
			filters = append(filters, &filter.NonPositiveSimilarity{})
		case "liked_names":
			filters = append(filters, &filter.LikedNames{
				ExtraNames: conv.SliceAnyToString(filterMap["extra_names"]),
			})
		case "dsl":
			filters = append(filters, &filter.DSLFilter{
				Expr: conv.ConfigGet(filterMap, "expr", ""),
			})
		default:
			return nil, fmt.Errorf("unknown filter type: %s", filterType)
		}
	}
	return &filter.FilterNode{Filters: filters}, nil
}

func BuildTopNNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rerank.TopNNode{N: conv.ConfigGetInt(cfg, "n", 0)}, nil
}

func BuildGenreDiversityNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rerank.GenreDiversity{
		MaxPerGenre: conv.ConfigGetInt(cfg, "max_per_genre", 0),
	}, nil
}

func BuildEnrichNode(cfg map[string]interface{}) (pipeline.Node, error) {
	mu.RLock()
	stats := boundStats
	mu.RUnlock()
	if stats == nil {
		return nil, fmt.Errorf("stats provider not bound: call builders.UseStatsProvider before building feature.enrich")
	}
	return &feature.EnrichNode{
		Stats:     stats,
		BatchSize: conv.ConfigGetInt(cfg, "batch_size", 0),
	}, nil
}
