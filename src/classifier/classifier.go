// 多标签分类：标题+描述小写后按子串匹配关键词
// 不做分词，"base"同样会命中"database"
package classifier

import (
	"strings"

	"github.com/andrewyi/educrawler/src/enum"
	"github.com/andrewyi/educrawler/src/taxonomy"
	"github.com/andrewyi/educrawler/src/util"
)

type Classifier struct {
	taxonomy *taxonomy.Taxonomy
	topics   map[string]struct{} // 为空时不限制
}

type Option func(*Classifier)

// WithTopics 只允许返回给定的主题，其余命中一律忽略
func WithTopics(topics ...string) Option {
	return func(c *Classifier) {
		for _, t := range topics {
			if t == "" {
				continue
			}
			if c.topics == nil {
				c.topics = make(map[string]struct{})
			}
			c.topics[t] = struct{}{}
		}
	}
}

func New(tax *taxonomy.Taxonomy, opts ...Option) *Classifier {
	c := &Classifier{taxonomy: tax}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify 结果按主题表顺序排列，至少包含一个标签
func (c *Classifier) Classify(title string, description string) []string {
	text := strings.ToLower(title + " " + description)

	var categories []string
	for _, topic := range c.taxonomy.Names() {
		if !c.enabled(topic) {
			continue
		}
		for _, kw := range c.taxonomy.Keywords(topic) {
			if strings.Contains(text, kw) {
				categories = append(categories, topic)
				break
			}
		}
	}

	if len(categories) == 0 {
		return []string{enum.TopicOther}
	}
	return categories
}

func (c *Classifier) enabled(topic string) bool {
	if len(c.topics) == 0 {
		return true
	}
	_, ok := c.topics[topic]
	return ok
}

// Topics 返回分类器可能输出的主题（不含other）
func (c *Classifier) Topics() []string {
	var out []string
	for _, topic := range c.taxonomy.Names() {
		if c.enabled(topic) {
			out = append(out, topic)
		}
	}
	return out
}

func IsOther(categories []string) bool {
	return util.StringSliceEqual(categories, []string{enum.TopicOther})
}
