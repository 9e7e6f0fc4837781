// Package digkit 是一个小众音乐艺人挖掘工具包（Dig Kit）。
//
// 目标：从用户喜欢的少量乐队出发，借助外部音乐目录服务（related artists +
// 按流派搜索）扩张候选艺人全集，对流派标签做 multi-hot 编码，
// 再按「流派余弦相似度 + 反流行度」加权打分，推荐相似但更地下的艺人。
//
// 设计要点：
// - Pipeline-first: 推荐逻辑通过 Node 串联（Recall → Filter → Rank → ReRank）
// - Labels-first: labels 全链路透传与标准化 merge，支持 explain / 观测 / 策略驱动
// - Snapshot-first: 流派词表每次运行由当次候选集重新推导，矩阵与词表永远同批产出
// - 失败降级: 目录服务的任何一次失败都只意味着「少一些候选」，从不中断整条链路
package digkit

import "github.com/rushteam/digkit/pipeline"

// 轻量 facade：便于用户直接 import "digkit" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindRank        = pipeline.KindRank
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
