// Package config 提供 YAML 配置加载与 Recommender 装配。
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/recflow/recflow/cache"
	"github.com/recflow/recflow/core"
	"github.com/recflow/recflow/embed"
	"github.com/recflow/recflow/filter"
	"github.com/recflow/recflow/loader"
	"github.com/recflow/recflow/rank"
	"github.com/recflow/recflow/recommend"
	"github.com/recflow/recflow/store"
)

// Config 是推荐服务的完整配置（YAML）。
//
// 示例：
//
//	recommender:
//	  top_k: 5
//	  cache_ttl: 300
//	  categories:
//	    pets: pets
//	    movies: films
//	  filters:
//	    - "item.score <= 0.0"
//	  store:
//	    type: redis
//	    addr: "127.0.0.1:6379"
//	  loader:
//	    type: store
//	  embedder:
//	    type: http
//	    base_url: "https://api.openai.com/v1"
//	    model: text-embedding-3-small
type Config struct {
	Recommender RecommenderConfig `yaml:"recommender"`
}

// RecommenderConfig 对应 recommender 配置段。
type RecommenderConfig struct {
	TopK       int               `yaml:"top_k"`
	CacheTTL   int               `yaml:"cache_ttl"` // 秒，0 表示默认 5 分钟
	Categories map[string]string `yaml:"categories"`
	Filters    []string          `yaml:"filters"` // CEL 剔除表达式
	Store      StoreConfig       `yaml:"store"`
	Loader     LoaderConfig      `yaml:"loader"`
	Embedder   EmbedderConfig    `yaml:"embedder"`
}

// StoreConfig 对应存储后端配置。
type StoreConfig struct {
	Type string `yaml:"type"` // memory / redis
	Addr string `yaml:"addr"`
	DB   int    `yaml:"db"`
}

// LoaderConfig 对应候选加载配置。
type LoaderConfig struct {
	Type      string      `yaml:"type"`       // store / feast
	KeyPrefix string      `yaml:"key_prefix"` // store 模式下的池 key 前缀
	Feast     FeastConfig `yaml:"feast"`
}

// FeastConfig 对应 Feast 在线特征存储配置。
type FeastConfig struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	Project     string `yaml:"project"`
	Feature     string `yaml:"feature"`
	EntityKey   string `yaml:"entity_key"`
	IDKeyPrefix string `yaml:"id_key_prefix"`
}

// EmbedderConfig 对应查询向量化配置。
type EmbedderConfig struct {
	Type      string `yaml:"type"` // hash / http
	Dimension int    `yaml:"dimension"`
	BaseURL   string `yaml:"base_url"`
	Model     string `yaml:"model"`
	APIKey    string `yaml:"api_key"`
}

// Load 从 YAML 文件加载配置。
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return &cfg, nil
}

// Build 根据配置装配一个可用的 Recommender。
// 返回的 closer 负责释放底层存储连接，进程退出前调用。
func (c *Config) Build() (*recommend.Recommender, func() error, error) {
	rc := c.Recommender
	if len(rc.Categories) == 0 {
		return nil, nil, fmt.Errorf("config: at least one category is required")
	}

	backing, err := buildStore(rc.Store)
	if err != nil {
		return nil, nil, err
	}

	candLoader, err := buildLoader(rc.Loader, backing)
	if err != nil {
		backing.Close()
		return nil, nil, err
	}

	embedder, err := buildEmbedder(rc.Embedder)
	if err != nil {
		backing.Close()
		return nil, nil, err
	}

	filters := make([]filter.Filter, 0, len(rc.Filters))
	for _, expr := range rc.Filters {
		f, err := filter.NewExprFilter(expr)
		if err != nil {
			backing.Close()
			return nil, nil, fmt.Errorf("config: filter: %w", err)
		}
		filters = append(filters, f)
	}

	ttl := time.Duration(rc.CacheTTL) * time.Second
	k := rc.TopK
	if k <= 0 {
		k = rank.DefaultTopK
	}

	r := &recommend.Recommender{
		Cache:      cache.New(ttl),
		Loader:     candLoader,
		Embedder:   embedder,
		Categories: rc.Categories,
		K:          k,
		Filters:    filters,
	}
	return r, backing.Close, nil
}

func buildStore(sc StoreConfig) (core.KeyValueStore, error) {
	switch sc.Type {
	case "", "memory":
		return store.NewMemoryStore(), nil
	case "redis":
		return store.NewRedisStore(sc.Addr, sc.DB)
	default:
		return nil, fmt.Errorf("config: unknown store type: %s", sc.Type)
	}
}

func buildLoader(lc LoaderConfig, backing core.KeyValueStore) (core.CandidateLoader, error) {
	switch lc.Type {
	case "", "store":
		return &loader.StoreLoader{Store: backing, KeyPrefix: lc.KeyPrefix}, nil
	case "feast":
		fc := lc.Feast
		fl, err := loader.NewFeastLoader(fc.Host, fc.Port, fc.Project, fc.Feature, fc.EntityKey, backing)
		if err != nil {
			return nil, fmt.Errorf("config: feast loader: %w", err)
		}
		fl.IDKeyPrefix = fc.IDKeyPrefix
		return fl, nil
	default:
		return nil, fmt.Errorf("config: unknown loader type: %s", lc.Type)
	}
}

func buildEmbedder(ec EmbedderConfig) (core.QueryEmbedder, error) {
	switch ec.Type {
	case "", "hash":
		return &embed.HashEmbedder{Dim: ec.Dimension}, nil
	case "http":
		if ec.BaseURL == "" {
			return nil, fmt.Errorf("config: http embedder requires base_url")
		}
		return embed.NewHTTPEmbedder(ec.BaseURL, ec.Model, ec.APIKey), nil
	default:
		return nil, fmt.Errorf("config: unknown embedder type: %s", ec.Type)
	}
}
