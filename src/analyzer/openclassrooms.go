package analyzer

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/andrewyi/educrawler/src/entity"
	"github.com/andrewyi/educrawler/src/registry"
)

var (
	ocCards = []string{".course-card", ".courseCard", ".search-result"}
	ocTitle = []string{"h3", ".title", ".course-title"}
	ocLink  = []string{"a"}
	ocFree  = []string{".free", ".gratuit", ".premium-free"}
)

// OpenClassroomsAnalyzer 只保留带有免费标识的课程
type OpenClassroomsAnalyzer struct {
	*base
}

func (a *OpenClassroomsAnalyzer) Analyze(src registry.Source) ([]entity.CourseRecord, error) {
	var paths []string
	for _, term := range src.SearchTerms {
		paths = append(paths, "/search/?q="+url.QueryEscape(term))
	}
	targets, err := resolveTargets(src.BaseURL, paths)
	if err != nil {
		return nil, err
	}

	// 与其他站点共用标题/链接选择器，但默认值不同
	cardSrc := src
	cardSrc.Selectors.Title = pick(src.Selectors.Title, ocTitle)
	cardSrc.Selectors.Link = pick(src.Selectors.Link, ocLink)

	return a.run(src, targets, func(target string, _ entity.PageInfo, doc *goquery.Document) []entity.CourseRecord {
		var records []entity.CourseRecord
		cards := limit(firstMatch(doc.Selection, pick(src.Selectors.CourseCards, ocCards)), src.EntryLimit)
		a.eachEntry(src, target, cards, func(i int, card *goquery.Selection) {
			entry, err := cardEntry(card, cardSrc)
			if err != nil {
				a.skipEntry(src, target, i, err)
				return
			}
			if !isFree(card, pick(src.Selectors.Free, ocFree)) {
				return
			}
			categories, ok := a.classify(entry.Title, "")
			if !ok {
				return
			}
			entry.Description = "Free course: " + entry.Title
			records = append(records, entity.NewCourseRecord(src.Name, entry, categories, src.License, a.now(), entity.WithFree(true)))
		})
		return records
	})
}

func isFree(card *goquery.Selection, selectors []string) bool {
	if firstMatch(card, selectors).Length() > 0 {
		return true
	}
	return strings.Contains(strings.ToLower(card.Text()), "gratuit")
}
