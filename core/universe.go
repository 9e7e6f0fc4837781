package core

import "sync"

// Universe 是一次扩张运行内累积的艺人全集：按 ID 去重、保持插入序。
//
// 设计原则：
//   - first-seen wins：同一 ID 后续再被发现是 no-op，已有档案永不被覆盖
//   - 只增不删：一次运行内只通过 InsertIfAbsent 变化，返回后视作不可变快照
//   - 并发安全：扩张器可以并发调用外部目录服务，插入侧由读写锁保护
//
// Artists() 的插入序即后续特征矩阵的行序，也是同分时 stable sort 的兜底次序。
type Universe struct {
	mu    sync.RWMutex
	index map[string]*Artist
	order []*Artist
}

func NewUniverse() *Universe {
	return &Universe{
		index: make(map[string]*Artist),
	}
}

// InsertIfAbsent 插入一个艺人；若 ID 已存在则不做任何事。
// 返回是否真正发生了插入。ID 为空的档案直接丢弃。
func (u *Universe) InsertIfAbsent(a *Artist) bool {
	if a == nil || a.ID == "" {
		return false
	}
	u.mu.Lock()
	defer u.mu.Unlock()

	if _, ok := u.index[a.ID]; ok {
		return false
	}
	u.index[a.ID] = a
	u.order = append(u.order, a)
	return true
}

// Get 按 ID 查找。
func (u *Universe) Get(id string) (*Artist, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	a, ok := u.index[id]
	return a, ok
}

// Len 返回当前收录的艺人数量。
func (u *Universe) Len() int {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return len(u.index)
}

// Artists 按插入序投影为切片（扩张后交给编码器/打分器消费的「表」）。
func (u *Universe) Artists() []*Artist {
	u.mu.RLock()
	defer u.mu.RUnlock()
	out := make([]*Artist, len(u.order))
	copy(out, u.order)
	return out
}
