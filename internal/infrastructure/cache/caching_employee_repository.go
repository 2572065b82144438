package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"hrm_backend/internal/feature/employee/domain/entity"
	"hrm_backend/internal/feature/employee/usecase"
)

type CachingEmployeeRepository struct {
	inner     usecase.EmployeeRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.EmployeeRepository = (*CachingEmployeeRepository)(nil)

// NewCachingEmployeeRepository は EmployeeRepository を Redis キャッシュでデコレートします。
// ttl=0 の場合は 5分にフォールバックします。namespace が空なら "employees" を使います。
func NewCachingEmployeeRepository(rdb *redis.Client, ttl time.Duration, inner usecase.EmployeeRepository, namespace string) *CachingEmployeeRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "employees"
	}
	return &CachingEmployeeRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// FindByID は常に本体（MySQL）から読みます。単一行の読み出しはキャッシュの
// 鮮度リスクに見合わないためです。
func (c *CachingEmployeeRepository) FindByID(ctx context.Context, id uint) (*entity.Employee, error) {
	return c.inner.FindByID(ctx, id)
}

func (c *CachingEmployeeRepository) List(ctx context.Context, f usecase.Filter) ([]entity.Employee, error) {
	// Redis 未設定なら素通し
	if c.rdb == nil {
		return c.inner.List(ctx, f)
	}

	key := c.cacheKey(f)

	// 1) キャッシュヒット確認
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Employee
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// 壊れていたら落とす
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) DB へフォールバック
	out, err := c.inner.List(ctx, f)
	if err != nil {
		return nil, err
	}

	// 3) キャッシュ保存（ベストエフォート）
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

func (c *CachingEmployeeRepository) Save(ctx context.Context, e *entity.Employee) error {
	// まず本体（MySQL）へ
	if err := c.inner.Save(ctx, e); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

func (c *CachingEmployeeRepository) Delete(ctx context.Context, id uint) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// ---- 補助 ----

// invalidate はネームスペース配下の一覧キャッシュを全て破棄します。
// 失敗しても本処理は成功させます（次のTTL失効で回復するため）。
func (c *CachingEmployeeRepository) invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	_ = c.deleteByPattern(ctx, c.namespace+":*")
}

func (c *CachingEmployeeRepository) cacheKey(f usecase.Filter) string {
	return fmt.Sprintf("%s:%s:%s",
		c.namespace,
		safe(f.Position),
		safe(f.Search),
	)
}

func (c *CachingEmployeeRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

func safe(s string) string {
	// Redis キーに使いづらい記号の簡易エスケープ
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
