// Package brands 维护本地品牌注册表：品牌名、千川账户 aadvid 与云图看板地址。
// 存储是数据目录下的一个 JSON 文件，写入走原子替换。
package brands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/clawbot/dysync/internal/domain"
	"github.com/clawbot/dysync/internal/infra/fsx"
)

const fileName = "brands_config.json"

// Registry 是加载进内存的品牌表。没有文件锁：单机单进程使用。
type Registry struct {
	dir     string
	entries map[string]domain.BrandEntry
}

// Load 从 dir 读注册表。文件不存在视为空表，不报错。
func Load(dir string) (*Registry, error) {
	r := &Registry{dir: dir, entries: map[string]domain.BrandEntry{}}

	b, err := os.ReadFile(filepath.Join(dir, fileName))
	if errors.Is(err, os.ErrNotExist) {
		return r, nil
	}
	if err != nil {
		return nil, fmt.Errorf("读取品牌注册表失败：%w", err)
	}
	if err := json.Unmarshal(b, &r.entries); err != nil {
		return nil, fmt.Errorf("品牌注册表损坏：%w", err)
	}
	return r, nil
}

func (r *Registry) Get(key string) (domain.BrandEntry, bool) {
	e, ok := r.entries[key]
	return e, ok
}

// Keys 返回排序后的品牌键，列表输出保持稳定。
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Add 新增或覆盖一个品牌并立即落盘。
// YuntuURL 为空时按 aadvid 推导看板地址。
func (r *Registry) Add(key string, e domain.BrandEntry) error {
	if key == "" || e.Name == "" || e.Aadvid == "" {
		return errors.New("品牌键、名称与 aadvid 不能为空")
	}
	if e.YuntuURL == "" {
		e.YuntuURL = domain.YuntuURLFor(e.Aadvid)
	}
	r.entries[key] = e
	return r.save()
}

// URL 返回品牌的云图看板地址。
func (r *Registry) URL(key string) (string, bool) {
	e, ok := r.entries[key]
	if !ok {
		return "", false
	}
	if e.YuntuURL != "" {
		return e.YuntuURL, true
	}
	return domain.YuntuURLFor(e.Aadvid), true
}

func (r *Registry) save() error {
	b, err := json.MarshalIndent(r.entries, "", "  ")
	if err != nil {
		return err
	}
	return fsx.WriteFileAtomicReplace(r.dir, fileName, b)
}
