package rank

import (
	"context"
	"log"
	"math"
	"sort"
	"strings"

	"github.com/rushteam/digkit/core"
	"github.com/rushteam/digkit/pipeline"
	"github.com/rushteam/digkit/pkg/conv"
	"github.com/rushteam/digkit/pkg/utils"
)

// GenreNode 是流派口味打分 Node：
//   - 用户口味向量 = 喜欢乐队特征行的逐列均值
//   - Similarity = 候选特征行与口味向量的余弦相似度（零向量的余弦定义为 0）
//   - PopNorm = popularity / max(1, 全集内最大 popularity)
//   - FinalScore = (1-w)*Similarity + w*(1-PopNorm)
//
// 填好四个打分字段后按 FinalScore 降序排序；必须用稳定排序，
// 同分时保持输入（插入）序，保证结果可复现。
//
// 喜欢名单与候选名按小写 + 去首尾空白匹配。一个都匹配不上时返回空结果
// （与输入为空对外语义相同，只差一条日志），不是错误。
type GenreNode struct {
	// UndergroundWeight 反流行度权重 w；约定 [0, 1]，这里不做钳制，
	// 配出界值时公式仍按线性混合计算，后果由调用方负责。
	// 可被 rctx.Params["underground_weight"] 覆盖。
	UndergroundWeight float64
}

func (n *GenreNode) Name() string        { return "rank.genre" }
func (n *GenreNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *GenreNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	artists []*core.Artist,
) ([]*core.Artist, error) {
	if len(artists) == 0 {
		return artists, nil
	}

	liked := rctx.LikedSet()
	var likedRows [][]float64
	for _, a := range artists {
		if a == nil {
			continue
		}
		if _, ok := liked[strings.ToLower(strings.TrimSpace(a.Name))]; ok {
			likedRows = append(likedRows, a.Features)
		}
	}
	if len(likedRows) == 0 {
		log.Printf("rank.genre: none of %d liked names present in universe", len(rctx.UserLikes))
		return []*core.Artist{}, nil
	}

	profile := meanRows(likedRows)

	w := n.UndergroundWeight
	if rctx.Params != nil {
		w = conv.ConfigGetFloat64(rctx.Params, "underground_weight", w)
	}

	maxPop := 0
	for _, a := range artists {
		if a != nil && a.Popularity > maxPop {
			maxPop = a.Popularity
		}
	}
	if maxPop < 1 {
		maxPop = 1 // 全员 popularity 为 0 时避免除零
	}

	for _, a := range artists {
		if a == nil {
			continue
		}
		a.Similarity = cosine(a.Features, profile)
		a.PopNorm = float64(a.Popularity) / float64(maxPop)
		a.UndergroundScore = 1 - a.PopNorm
		a.FinalScore = (1-w)*a.Similarity + w*a.UndergroundScore
		a.PutLabel("rank_model", utils.Label{Value: "genre_cosine", Source: "rank"})
	}

	sort.SliceStable(artists, func(i, j int) bool {
		if artists[i] == nil {
			return false
		}
		if artists[j] == nil {
			return true
		}
		return artists[i].FinalScore > artists[j].FinalScore
	})
	return artists, nil
}

// meanRows 逐列求均值。行可以比最长行短（防御零长特征行），缺列按 0 算。
func meanRows(rows [][]float64) []float64 {
	dim := 0
	for _, r := range rows {
		if len(r) > dim {
			dim = len(r)
		}
	}
	mean := make([]float64, dim)
	if dim == 0 {
		return mean
	}
	for _, r := range rows {
		for j, v := range r {
			mean[j] += v
		}
	}
	for j := range mean {
		mean[j] /= float64(len(rows))
	}
	return mean
}

// cosine 计算两个非负向量的余弦相似度，任一侧为零向量时定义为 0。
func cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
	}
	for _, v := range a {
		normA += v * v
	}
	for _, v := range b {
		normB += v * v
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
