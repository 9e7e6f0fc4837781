package core

import "github.com/rushteam/digkit/pkg/utils"

// Artist 是推荐链路中的统一承载结构：目录服务返回的原始档案、
// 当次快照下的流派特征行、打分结果与标签。
// Labels 用于解释与策略驱动；FinalScore 用于排序决策。
type Artist struct {
	// ID 是目录服务分配的稳定标识（主键，插入 Universe 时按它去重）
	ID string
	// Name 展示名，不保证唯一；与用户输入匹配时大小写不敏感
	Name string
	// Popularity 目录服务的流行度评分 [0, 100]，越高越主流
	Popularity int
	// Genres 自由文本流派标签；可能为空，上游可能带重复
	Genres []string
	// ExternalURL 目录服务提供的艺人主页链接，可能为空
	ExternalURL string

	// Features 是当次快照词表下的流派 multi-hot 行（与词表同批产出，勿跨快照复用）
	Features []float64

	// 打分字段，由 rank 节点填充
	Similarity       float64 // 与用户口味向量的余弦相似度 [0, 1]
	PopNorm          float64 // popularity / max(1, 快照内最大 popularity)
	UndergroundScore float64 // 1 - PopNorm，越地下越高
	FinalScore       float64 // (1-w)*Similarity + w*UndergroundScore

	Labels map[string]utils.Label
}

func NewArtist(id, name string) *Artist {
	return &Artist{
		ID:     id,
		Name:   name,
		Labels: make(map[string]utils.Label),
	}
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (a *Artist) PutLabel(key string, lbl utils.Label) {
	if a.Labels == nil {
		a.Labels = make(map[string]utils.Label)
	}
	if old, ok := a.Labels[key]; ok {
		a.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	a.Labels[key] = lbl
}

// GenreSet 把 Genres 视作集合返回（上游可能给出重复标签，编码时按成员关系处理）。
func (a *Artist) GenreSet() map[string]struct{} {
	set := make(map[string]struct{}, len(a.Genres))
	for _, g := range a.Genres {
		set[g] = struct{}{}
	}
	return set
}
