package recall

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/digkit/core"
	"github.com/rushteam/digkit/feature"
	"github.com/rushteam/digkit/pipeline"
	"github.com/rushteam/digkit/pkg/utils"
)

// Expand 是一个 Recall Node：从用户喜欢的乐队出发扩张候选艺人全集。
//
// 对每个喜欢的名字，依次：
//  1. 解析成目录档案（查不到/出错 → 跳过该名字，整次运行不受影响）
//  2. 把种子本人插入 Universe
//  3. 取最多 MaxRelated 个关联艺人插入（出错按零个处理）
//  4. 对种子的每个流派标签搜最多 MaxPerGenreSearch 个艺人插入（单标签失败不中断）
//
// 全程按 ID first-seen wins 去重；同一艺人被多路发现时合并 labels。
// 循环结束后规整流派列、对当次快照做 multi-hot 编码并把特征行挂回各 Artist，
// 按插入序返回投影。喜欢列表为空或全部解析失败时返回空结果，不是错误。
//
// MaxConcurrent > 1 时按喜欢的名字并发拉取（errgroup），外部调用视作
// 阻塞、可能慢、可能失败的操作，不做内建重试与超时；拉取结果仍按
// 名字顺序合入 Universe，保证插入序（即矩阵行序）与串行一致。
type Expand struct {
	Catalog core.Catalog

	// MaxRelated 每个种子最多取的关联艺人数，<=0 时取 20
	MaxRelated int

	// MaxPerGenreSearch 每个流派标签最多搜的艺人数，<=0 时取 20
	MaxPerGenreSearch int

	// MaxConcurrent 按喜欢名字并发拉取的上限，<=1 表示串行
	MaxConcurrent int
}

func (n *Expand) Name() string        { return "recall.expand" }
func (n *Expand) Kind() pipeline.Kind { return pipeline.KindRecall }

func (n *Expand) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Artist,
) ([]*core.Artist, error) {
	if n.Catalog == nil || rctx == nil || len(rctx.UserLikes) == 0 {
		return nil, nil
	}

	universe := core.NewUniverse()

	batches := make([][]*core.Artist, len(rctx.UserLikes))
	if n.MaxConcurrent > 1 {
		eg, egCtx := errgroup.WithContext(ctx)
		eg.SetLimit(n.MaxConcurrent)
		for i, name := range rctx.UserLikes {
			eg.Go(func() error {
				batches[i] = n.collect(egCtx, name)
				return nil
			})
		}
		// collect 从不返回错误：单个名字的失败只意味着该批为空
		_ = eg.Wait()
	} else {
		for i, name := range rctx.UserLikes {
			batches[i] = n.collect(ctx, name)
		}
	}

	// 按名字顺序合入，保证插入序（矩阵行序、同分兜底次序）确定
	for _, batch := range batches {
		for _, a := range batch {
			if universe.InsertIfAbsent(a) {
				continue
			}
			// first-seen wins：档案不覆盖，labels 合并以保留全部发现路径
			if old, ok := universe.Get(a.ID); ok {
				for k, v := range a.Labels {
					old.PutLabel(k, v)
				}
			}
		}
	}

	artists := universe.Artists()
	log.Printf("recall.expand: %d likes -> %d artists", len(rctx.UserLikes), len(artists))
	if len(artists) == 0 {
		return nil, nil
	}

	// 投影后规整流派列，再对当次快照编码，特征行挂回各 Artist
	for _, a := range artists {
		a.Genres = feature.NormalizeGenres(a.Genres)
	}
	encoder := &feature.GenreEncoder{AttachRows: true}
	matrix := encoder.Encode(artists)

	// 词表随快照走，挂到请求上下文供观测/下游校验
	if rctx.Params == nil {
		rctx.Params = make(map[string]any)
	}
	rctx.Params["genre_vocabulary"] = matrix.Vocabulary

	return artists, nil
}

// collect 拉取单个喜欢名字对应的发现批次（种子 → related → 按流派），
// 批内保持发现顺序。任何子步骤失败都降级为“少一些候选”。
func (n *Expand) collect(ctx context.Context, name string) []*core.Artist {
	seed, err := n.Catalog.SearchArtist(ctx, name)
	if err != nil || seed == nil {
		return nil
	}
	seed.PutLabel("recall_source", utils.Label{Value: "seed", Source: "recall"})

	batch := []*core.Artist{seed}

	maxRelated := n.MaxRelated
	if maxRelated <= 0 {
		maxRelated = 20
	}
	related, err := n.Catalog.RelatedArtists(ctx, seed.ID)
	if err != nil {
		related = nil
	}
	if len(related) > maxRelated {
		related = related[:maxRelated]
	}
	for _, a := range related {
		a.PutLabel("recall_source", utils.Label{Value: "related", Source: "recall"})
		batch = append(batch, a)
	}

	maxPerGenre := n.MaxPerGenreSearch
	if maxPerGenre <= 0 {
		maxPerGenre = 20
	}
	// 种子流派用原始列表：直接来自结构化接口，无需走文本规整
	for _, g := range seed.Genres {
		found, err := n.Catalog.SearchByGenre(ctx, g, maxPerGenre)
		if err != nil {
			continue
		}
		for _, a := range found {
			a.PutLabel("recall_source", utils.Label{Value: "genre", Source: "recall"})
			a.PutLabel("recall_genre", utils.Label{Value: g, Source: "recall"})
			batch = append(batch, a)
		}
	}

	return batch
}
