package feature

import (
	"sort"

	"github.com/rushteam/digkit/core"
)

// GenreMatrix 是一次快照的流派 multi-hot 编码结果：词表 + 矩阵。
//
// 词表由当次输入数据重新推导（不是全局固定分类学），按字典序排序保证
// 同一批输入重复编码逐位一致。不同运行的候选池不同，词表就不同，
// 矩阵之间不可比：编码器与打分器必须在同一次运行内配套调用，
// 绝不能拿 A 快照的矩阵去配 B 快照的词表。
type GenreMatrix struct {
	// Vocabulary 当次快照内出现过的全部流派，字典序
	Vocabulary []string
	// Rows 每个艺人一行（行序 = 输入序），每列 ∈ {0,1}
	Rows [][]float64

	index map[string]int // genre -> 列号
}

// Column 返回流派对应的列号。
func (m *GenreMatrix) Column(genre string) (int, bool) {
	i, ok := m.index[genre]
	return i, ok
}

// GenreEncoder 把一批艺人的流派标签编码为定宽 multi-hot 矩阵。
// 同一艺人重复出现的流派按集合处理（成员关系，不计次数）。
type GenreEncoder struct {
	// AttachRows 编码时是否把行写回各 Artist.Features（默认链路需要）
	AttachRows bool
}

// Encode 编码。输入为空时返回空词表 + 0 行矩阵，不报错。
// 输入要求各 Artist.Genres 已经过 NormalizeGenres 规整。
func (e *GenreEncoder) Encode(artists []*core.Artist) *GenreMatrix {
	vocabSet := make(map[string]struct{})
	for _, a := range artists {
		for _, g := range a.Genres {
			vocabSet[g] = struct{}{}
		}
	}

	vocab := make([]string, 0, len(vocabSet))
	for g := range vocabSet {
		vocab = append(vocab, g)
	}
	sort.Strings(vocab)

	index := make(map[string]int, len(vocab))
	for i, g := range vocab {
		index[g] = i
	}

	rows := make([][]float64, len(artists))
	for i, a := range artists {
		row := make([]float64, len(vocab))
		for g := range a.GenreSet() {
			if j, ok := index[g]; ok {
				row[j] = 1
			}
		}
		rows[i] = row
		if e.AttachRows {
			a.Features = row
		}
	}

	return &GenreMatrix{
		Vocabulary: vocab,
		Rows:       rows,
		index:      index,
	}
}
