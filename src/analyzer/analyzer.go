package analyzer

import (
	"github.com/andrewyi/educrawler/src/entity"
	"github.com/andrewyi/educrawler/src/registry"
)

// Analyzer 抓取并解析一个站点的全部目标页，返回已分类、已过滤的记录
// 只有站点配置本身有问题时才返回error，单个页面或条目的失败只记录日志
type Analyzer interface {
	Analyze(registry.Source) ([]entity.CourseRecord, error)
}

// Table 以registry.Source.Kind为key选择解析策略
type Table map[string]Analyzer

func (t Table) Lookup(kind string) (Analyzer, bool) {
	a, ok := t[kind]
	return a, ok
}
