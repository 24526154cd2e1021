package entity

import (
	"strings"
	"time"
)

// 保存了下载的内容
type PageInfo struct {
	URL     string
	State   uint32 // 1/success 2/fail
	Remark  string // error description, if any
	Content string
}

// 从页面中直接提取出的条目，尚未分类
type RawEntry struct {
	Title       string
	URL         string
	Description string
}

type Material struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Type  string `json:"type"`
}

// CourseRecord 构造后不再修改，所有slice字段在构造时复制
type CourseRecord struct {
	Source      string     `json:"source"`
	Title       string     `json:"title"`
	URL         string     `json:"url"`
	Description string     `json:"description"`
	Categories  []string   `json:"categories"`
	License     string     `json:"license"`
	Materials   []Material `json:"materials,omitempty"`
	IsFree      *bool      `json:"is_free,omitempty"`
	ScrapedAt   time.Time  `json:"scraped_at"`
}

type RecordOption func(*CourseRecord)

func WithMaterials(materials []Material) RecordOption {
	return func(r *CourseRecord) {
		if len(materials) == 0 {
			return
		}
		r.Materials = append([]Material(nil), materials...)
	}
}

func WithFree(free bool) RecordOption {
	return func(r *CourseRecord) {
		r.IsFree = &free
	}
}

func NewCourseRecord(source string, entry RawEntry, categories []string, license string, scrapedAt time.Time, opts ...RecordOption) CourseRecord {
	r := CourseRecord{
		Source:      source,
		Title:       strings.TrimSpace(entry.Title),
		URL:         strings.TrimSpace(entry.URL),
		Description: strings.TrimSpace(entry.Description),
		Categories:  append([]string(nil), categories...),
		License:     license,
		ScrapedAt:   scrapedAt.UTC(),
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}
