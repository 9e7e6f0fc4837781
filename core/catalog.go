package core

import "context"

// Catalog 是外部音乐目录服务的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（catalog）实现
//   - 遵循依赖倒置原则：扩张器只面向接口，便于 mock 测试
//   - 认证/传输/配额属于实现细节，调用方持有已构建好的客户端生命周期
//
// 失败语义（扩张器的约定）：
//   - 查不到与瞬时错误在扩张器眼里等价：跳过该子步骤，继续跑
//   - 任何实现都不应在内部重试；需要重试/限流请在实现层自行包装
//
// 实现：
//   - catalog.Memory 实现此接口（静态数据，测试/原型用）
//   - catalog.Cached 实现此接口（在任意 Catalog 外加一层 Store 缓存）
type Catalog interface {
	// SearchArtist 按名字检索最佳单个匹配；查不到返回 NOT_FOUND 领域错误
	SearchArtist(ctx context.Context, name string) (*Artist, error)

	// RelatedArtists 返回目录服务认定的关联艺人；无关联数据返回错误（调用方按空处理）
	RelatedArtists(ctx context.Context, artistID string) ([]*Artist, error)

	// SearchByGenre 按流派标签检索艺人，最多 limit 个
	SearchByGenre(ctx context.Context, genre string, limit int) ([]*Artist, error)
}
