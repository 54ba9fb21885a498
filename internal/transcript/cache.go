// Package transcript 负责拿到视频的文字脚本：优先查云图脚本缓存，
// 缓存未命中时走"下载 → 抽音轨 → 语音转写"的完整管线。
package transcript

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/clawbot/dysync/internal/domain"
	"github.com/clawbot/dysync/internal/infra/fsx"
)

const cacheFileName = "yuntu_scripts.json"

// Cache 是本地的云图脚本缓存（yuntu 命令写入、script 命令读取）。
type Cache struct {
	dir     string
	scripts []domain.VideoScript
}

type cacheFile struct {
	Videos []domain.VideoScript `json:"videos"`
}

// LoadCache 读数据目录下的脚本缓存。文件不存在视为空缓存。
func LoadCache(dir string) (*Cache, error) {
	c := &Cache{dir: dir}

	b, err := os.ReadFile(filepath.Join(dir, cacheFileName))
	if errors.Is(err, os.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("读取脚本缓存失败：%w", err)
	}

	var f cacheFile
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("脚本缓存损坏：%w", err)
	}
	c.scripts = f.Videos
	return c, nil
}

// Find 按视频 ID 查缓存：先精确匹配 video_id，再退到
// "ID 是缓存条目标题的子串"（云图页标题里常带原始 ID）。
func (c *Cache) Find(id domain.VideoID) (domain.VideoScript, bool) {
	for i := range c.scripts {
		if c.scripts[i].VideoID == string(id) {
			return c.scripts[i], true
		}
	}
	for i := range c.scripts {
		if strings.Contains(c.scripts[i].Title, string(id)) {
			return c.scripts[i], true
		}
	}
	return domain.VideoScript{}, false
}

// Put 写入或按 video_id 覆盖一条脚本。
func (c *Cache) Put(s domain.VideoScript) {
	for i := range c.scripts {
		if c.scripts[i].VideoID == s.VideoID && s.VideoID != "" {
			c.scripts[i] = s
			return
		}
	}
	c.scripts = append(c.scripts, s)
}

func (c *Cache) Len() int { return len(c.scripts) }

// Save 原子落盘。
func (c *Cache) Save() error {
	b, err := json.MarshalIndent(cacheFile{Videos: c.scripts}, "", "  ")
	if err != nil {
		return err
	}
	return fsx.WriteFileAtomicReplace(c.dir, cacheFileName, b)
}
