package cache

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/recflow/recflow/core"
)

// WarmUp 并发预加载多个候选池，通常在进程启动时调用，
// 避免首批请求都落在冷缓存上。
//
// maxConcurrent 控制同时在途的加载数（<=0 表示不限制）。
// 任意一个池加载失败会使整个预热返回错误；已成功的池仍然留在缓存中。
func (c *EmbeddingCache) WarmUp(ctx context.Context, keys []string, loader core.CandidateLoader, maxConcurrent int) error {
	if len(keys) == 0 {
		return nil
	}

	eg, ctx := errgroup.WithContext(ctx)
	if maxConcurrent > 0 {
		eg.SetLimit(maxConcurrent)
	}

	for _, key := range keys {
		k := key
		eg.Go(func() error {
			_, err := c.Get(ctx, k, loader)
			return err
		})
	}

	return eg.Wait()
}
