// 主题关键词表，启动时构造一次，之后只读
// 关键词统一转为小写，匹配时按子串比较
package taxonomy

import (
	"strings"
)

type Topic struct {
	Name    string   `yaml:"name"`
	French  []string `yaml:"fr"`
	English []string `yaml:"en"`
}

type Taxonomy struct {
	topics []Topic
}

func New(topics ...Topic) *Taxonomy {
	t := &Taxonomy{}
	for _, topic := range topics {
		t.topics = append(t.topics, Topic{
			Name:    topic.Name,
			French:  normalize(topic.French),
			English: normalize(topic.English),
		})
	}
	return t
}

func normalize(words []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// 按声明顺序返回主题名
func (t *Taxonomy) Names() []string {
	names := make([]string, 0, len(t.topics))
	for _, topic := range t.topics {
		names = append(names, topic.Name)
	}
	return names
}

func (t *Taxonomy) Topics() []Topic {
	out := make([]Topic, 0, len(t.topics))
	for _, topic := range t.topics {
		out = append(out, Topic{
			Name:    topic.Name,
			French:  append([]string(nil), topic.French...),
			English: append([]string(nil), topic.English...),
		})
	}
	return out
}

// Keywords 返回某主题的法语+英语关键词，主题不存在时返回nil
func (t *Taxonomy) Keywords(name string) []string {
	for _, topic := range t.topics {
		if topic.Name == name {
			words := make([]string, 0, len(topic.French)+len(topic.English))
			words = append(words, topic.French...)
			words = append(words, topic.English...)
			return words
		}
	}
	return nil
}

func (t *Taxonomy) Has(name string) bool {
	for _, topic := range t.topics {
		if topic.Name == name {
			return true
		}
	}
	return false
}

// Merge 生成新的表：已有主题追加关键词，新主题追加到末尾，原表不变
func (t *Taxonomy) Merge(other *Taxonomy) *Taxonomy {
	merged := t.Topics()
	index := make(map[string]int, len(merged))
	for i, topic := range merged {
		index[topic.Name] = i
	}
	for _, topic := range other.Topics() {
		if i, ok := index[topic.Name]; ok {
			merged[i].French = append(merged[i].French, topic.French...)
			merged[i].English = append(merged[i].English, topic.English...)
			continue
		}
		index[topic.Name] = len(merged)
		merged = append(merged, topic)
	}
	return New(merged...)
}
