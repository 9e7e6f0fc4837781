package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/digkit/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
)

// initCELEnv 初始化 CEL 环境，定义变量和函数
func initCELEnv() (*cel.Env, error) {
	env, err := cel.NewEnv(
		// 定义变量类型
		cel.Variable("artist", cel.DynType),
		cel.Variable("label", cel.DynType),
		cel.Variable("rctx", cel.DynType),
	)
	return env, err
}

// getCELEnv 获取或创建 CEL 环境
func getCELEnv() (*cel.Env, error) {
	var err error
	celEnvOnce.Do(func() {
		celEnv, err = initCELEnv()
	})
	return celEnv, err
}

// Eval 是艺人侧的策略 DSL 解释器，使用 CEL (Common Expression Language) 实现。
// CEL 是 Google 开发的表达式语言，具有类型安全、高性能、线程安全等特性。
//
// 表达式语法（CEL 标准语法）：
//   - 数值：artist.popularity <= 40 / artist.similarity > 0.2
//   - 字符串：artist.name != "Gojira"
//   - 逻辑：artist.underground_score > 0.5 && artist.similarity > 0.1
//   - 标签：label.recall_source.contains("genre")
//   - 包含："sludge metal" in artist.genres
//
// 示例：
//   - `artist.popularity <= 40` → 只留更地下的艺人
//   - `label.recall_source.contains("related")` → 只留 related 路召回的艺人
type Eval struct {
	artist *core.Artist
	rctx   *core.RecommendContext
	env    *cel.Env
}

// NewEval 创建一个新的 DSL 解释器。
func NewEval(artist *core.Artist, rctx *core.RecommendContext) *Eval {
	env, _ := getCELEnv()
	return &Eval{
		artist: artist,
		rctx:   rctx,
		env:    env,
	}
}

// Evaluate 解析并执行 DSL 表达式，返回布尔结果。
// 空表达式恒为 true。
//
// 注意：CEL 访问不存在的 key 会报错，存在性检查请用 label.key != null。
func (e *Eval) Evaluate(expr string) (bool, error) {
	if expr == "" {
		return true, nil
	}

	// 编译表达式
	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return false, fmt.Errorf("compile error: %v", issues.Err())
	}

	// 创建程序
	prg, err := e.env.Program(ast)
	if err != nil {
		return false, fmt.Errorf("program error: %v", err)
	}

	// 执行表达式
	out, _, err := prg.Eval(e.buildInput())
	if err != nil {
		return false, fmt.Errorf("eval error: %v", err)
	}

	// 转换为布尔值
	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}

	return result, nil
}

// buildInput 构建 CEL 表达式的输入数据
func (e *Eval) buildInput() map[string]interface{} {
	// 构建 label map（label.key 直接取 value）
	labelAccessor := make(map[string]interface{})
	labels := make(map[string]interface{})
	for k, v := range e.artist.Labels {
		labels[k] = map[string]interface{}{
			"value":  v.Value,
			"source": v.Source,
		}
		labelAccessor[k] = v.Value
	}

	// 构建 artist map
	artist := map[string]interface{}{
		"id":                e.artist.ID,
		"name":              e.artist.Name,
		"popularity":        e.artist.Popularity,
		"genres":            e.artist.Genres,
		"similarity":        e.artist.Similarity,
		"pop_norm":          e.artist.PopNorm,
		"underground_score": e.artist.UndergroundScore,
		"final_score":       e.artist.FinalScore,
		"labels":            labels,
	}

	// 构建 rctx map
	rctx := map[string]interface{}{
		"user_likes": e.rctx.UserLikes,
		"scene":      e.rctx.Scene,
		"params":     e.rctx.Params,
	}

	return map[string]interface{}{
		"artist": artist,
		"label":  labelAccessor,
		"rctx":   rctx,
	}
}
