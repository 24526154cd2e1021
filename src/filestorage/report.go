package filestorage

import (
	"time"

	"github.com/andrewyi/educrawler/src/entity"
	"github.com/andrewyi/educrawler/src/enum"
)

type Metadata struct {
	ScrapedAt      time.Time      `json:"scraped_at"`
	RunID          string         `json:"run_id"`
	TotalCourses   int            `json:"total_courses"`
	Sources        map[string]int `json:"sources"`
	Topics         map[string]int `json:"topics"`
	TargetTopics   []string       `json:"target_topics"`
	ScraperVersion string         `json:"scraper_version"`
}

type Report struct {
	Metadata       Metadata                         `json:"scraping_metadata"`
	CoursesByTopic map[string][]entity.CourseRecord `json:"courses_by_topic"`
	AllCourses     []entity.CourseRecord            `json:"all_courses"`
}

// TopicGroups 每条记录在它的每个主题下各出现一次，keys保持首次出现的顺序
type TopicGroups struct {
	Keys   []string
	Groups map[string][]entity.CourseRecord
}

func GroupByTopic(records []entity.CourseRecord) TopicGroups {
	g := TopicGroups{Groups: make(map[string][]entity.CourseRecord)}
	for _, r := range records {
		categories := r.Categories
		if len(categories) == 0 {
			categories = []string{enum.TopicOther}
		}
		for _, c := range categories {
			if _, ok := g.Groups[c]; !ok {
				g.Keys = append(g.Keys, c)
			}
			g.Groups[c] = append(g.Groups[c], r)
		}
	}
	return g
}

func BuildReport(records []entity.CourseRecord, targetTopics []string, scrapedAt time.Time, runID string) Report {
	groups := GroupByTopic(records)

	sources := make(map[string]int)
	for _, r := range records {
		sources[r.Source]++
	}
	topics := make(map[string]int, len(groups.Groups))
	for k, v := range groups.Groups {
		topics[k] = len(v)
	}

	all := make([]entity.CourseRecord, 0, len(records))
	all = append(all, records...)

	return Report{
		Metadata: Metadata{
			ScrapedAt:      scrapedAt,
			RunID:          runID,
			TotalCourses:   len(records),
			Sources:        sources,
			Topics:         topics,
			TargetTopics:   append([]string{}, targetTopics...),
			ScraperVersion: enum.ScraperVersion,
		},
		CoursesByTopic: groups.Groups,
		AllCourses:     all,
	}
}
