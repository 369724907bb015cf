// Package cache 提供候选池 Embedding 的进程内时效缓存。
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/recflow/recflow/core"
)

// DefaultTTL 是缓存的默认新鲜度窗口。
const DefaultTTL = 5 * time.Minute

// EmbeddingCache 按候选池 key 缓存 (ID, Embedding) 记录，时效由一个全局共享的
// lastFetch 时间戳控制。
//
// 新鲜度语义（共享时钟设计）：
//   - 命中条件：key 存在于 pools 且 now - lastFetch < TTL
//   - lastFetch 对当前所有 key 统一生效：任意一个 key 触发刷新后，
//     所有已缓存 key 的剩余窗口都被重置为满窗口，而不是各自独立计时。
//     这是刻意保留的粗粒度设计，换取实现与状态的简单；需要逐 key 时效时
//     应作为单独的行为变更来做，而不是顺手"修掉"。
//
// 并发语义：
//   - 刷新通过"合并进新 map 后整体替换"完成，持锁窗口内不做外部调用，
//     两次刷新的写入不会互相丢失条目
//   - 同一个 key 的两个并发 miss 会各自调用一次 loader（不做 single-flight
//     去重）。两条路径最终收敛到同一缓存状态，这是已知的低效而非正确性问题。
//
// 生命周期：进程启动时为空，随进程存活，不提供显式清理。
type EmbeddingCache struct {
	mu        sync.RWMutex
	pools     map[string][]core.EmbeddingRecord
	lastFetch time.Time

	// TTL 新鲜度窗口，零值时使用 DefaultTTL
	TTL time.Duration

	// Now 时钟注入点，测试中替换为假时钟；零值时使用 time.Now
	Now func() time.Time
}

// New 创建一个空的 EmbeddingCache。
func New(ttl time.Duration) *EmbeddingCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &EmbeddingCache{
		pools: make(map[string][]core.EmbeddingRecord),
		TTL:   ttl,
	}
}

func (c *EmbeddingCache) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *EmbeddingCache) ttl() time.Duration {
	if c.TTL > 0 {
		return c.TTL
	}
	return DefaultTTL
}

// Get 返回 key 对应的候选池。
//
// 命中时直接返回缓存中的切片（不拷贝），调用方不得修改其中的记录。
// miss 时调用 loader 加载，成功后把结果合并进新的池快照并刷新 lastFetch；
// loader 失败时错误原样向上传递，缓存保持不变（不会写入半成品条目）。
func (c *EmbeddingCache) Get(ctx context.Context, key string, loader core.CandidateLoader) ([]core.EmbeddingRecord, error) {
	c.mu.RLock()
	records, ok := c.pools[key]
	fresh := ok && c.now().Sub(c.lastFetch) < c.ttl()
	c.mu.RUnlock()

	if fresh {
		return records, nil
	}

	loaded, err := loader.Fetch(ctx, key)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	next := make(map[string][]core.EmbeddingRecord, len(c.pools)+1)
	for k, v := range c.pools {
		next[k] = v
	}
	next[key] = loaded
	c.pools = next
	c.lastFetch = c.now()
	c.mu.Unlock()

	return loaded, nil
}

// Len 返回当前缓存的候选池数量（观测用）。
func (c *EmbeddingCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.pools)
}
