package store

// 注意：此包只包含实现，接口定义在 core 包。
// 使用 core.Store 接口。
//
// 示例（给 catalog.Cached 做目录响应缓存）：
//   var s core.Store = NewMemoryStore()
//   cached := catalog.NewCached(realCatalog, s, 24*3600)
