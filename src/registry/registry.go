// 站点注册表：顺序即抓取顺序，构造后只读
// 默认表写在代码中，也可以通过yaml文件整体替换
package registry

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

const (
	KindFunMooc        = "fun_mooc"
	KindWikiversity    = "wikiversity"
	KindMITOCW         = "mit_ocw"
	KindOpenClassrooms = "openclassrooms"
	KindFranceIOI      = "france_ioi"
)

// 每个字段是按优先级排列的选择器，第一个命中的生效
type Selectors struct {
	CourseCards []string `yaml:"course_cards"`
	Title       []string `yaml:"title"`
	Link        []string `yaml:"link"`
	Description []string `yaml:"description"`
	CourseLinks []string `yaml:"course_links"`
	Free        []string `yaml:"free"`
}

type Source struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Kind    string `yaml:"kind"`
	BaseURL string `yaml:"base_url"`
	Allowed bool   `yaml:"allowed"`
	License string `yaml:"license"`

	SearchEndpoints []string `yaml:"search_endpoints"`
	Categories      []string `yaml:"categories"`
	Sections        []string `yaml:"sections"`
	CourseSearches  []string `yaml:"course_searches"`
	SearchTerms     []string `yaml:"search_terms"`

	Selectors Selectors `yaml:"selectors"`

	EntryLimit  int           `yaml:"entry_limit"`  // 每个目标页最多保留的条目数
	TargetDelay time.Duration `yaml:"target_delay"` // 每个目标页之后的等待
}

var knownKinds = []string{KindFunMooc, KindWikiversity, KindMITOCW, KindOpenClassrooms, KindFranceIOI}

// 未声明kind时按id前缀推断，例如wikiversity_fr对应wikiversity
func kindFromID(id string) string {
	for _, k := range knownKinds {
		if strings.HasPrefix(id, k) {
			return k
		}
	}
	return id
}

func (s Source) withDefaults() Source {
	if s.Kind == "" {
		s.Kind = kindFromID(s.ID)
	}

	limit, delay := 10, 3*time.Second
	switch s.Kind {
	case KindFunMooc:
		limit, delay = 8, 4*time.Second
	case KindWikiversity:
		limit, delay = 12, 3*time.Second
	case KindMITOCW:
		limit, delay = 5, 3*time.Second
	case KindOpenClassrooms:
		limit, delay = 6, 4*time.Second
	}
	if s.EntryLimit <= 0 {
		s.EntryLimit = limit
	}
	if s.TargetDelay <= 0 {
		s.TargetDelay = delay
	}
	return s
}

type Registry struct {
	sources []Source
}

func New(sources ...Source) *Registry {
	r := &Registry{}
	for _, s := range sources {
		r.sources = append(r.sources, s.withDefaults())
	}
	return r
}

// Sources 按注册顺序返回副本
func (r *Registry) Sources() []Source {
	return append([]Source(nil), r.sources...)
}

func (r *Registry) Get(id string) (Source, bool) {
	for _, s := range r.sources {
		if s.ID == id {
			return s, true
		}
	}
	return Source{}, false
}

type fileLayout struct {
	Sources []Source `yaml:"sources"`
}

func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fail to read registry file %s: %w", path, err)
	}

	var layout fileLayout
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return nil, fmt.Errorf("fail to parse registry file %s: %w", path, err)
	}
	if len(layout.Sources) == 0 {
		return nil, fmt.Errorf("registry file %s declares no sources", path)
	}

	seen := make(map[string]struct{}, len(layout.Sources))
	for _, s := range layout.Sources {
		if s.ID == "" || s.BaseURL == "" {
			return nil, fmt.Errorf("registry file %s: source needs id and base_url", path)
		}
		if _, ok := seen[s.ID]; ok {
			return nil, fmt.Errorf("registry file %s: duplicated source %s", path, s.ID)
		}
		seen[s.ID] = struct{}{}
	}
	return New(layout.Sources...), nil
}
