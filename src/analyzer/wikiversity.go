package analyzer

import (
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/andrewyi/educrawler/src/entity"
	"github.com/andrewyi/educrawler/src/registry"
	"github.com/andrewyi/educrawler/src/util"
)

// 过短的链接文字多为导航，不当作课程
const minWikiTitleLength = 6

var wikiCourseLinks = []string{"a"}

// WikiversityAnalyzer 解析分类页、系/院页中的链接列表，只按标题分类
type WikiversityAnalyzer struct {
	*base
}

func (a *WikiversityAnalyzer) Analyze(src registry.Source) ([]entity.CourseRecord, error) {
	paths := append(append([]string(nil), src.Categories...), src.Sections...)
	targets, err := resolveTargets(src.BaseURL, paths)
	if err != nil {
		return nil, err
	}

	return a.run(src, targets, func(target string, _ entity.PageInfo, doc *goquery.Document) []entity.CourseRecord {
		var records []entity.CourseRecord
		links := limit(firstMatch(doc.Selection, pick(src.Selectors.CourseLinks, wikiCourseLinks)), src.EntryLimit)
		a.eachEntry(src, target, links, func(i int, link *goquery.Selection) {
			entry, err := wikiEntry(link, src)
			if err != nil {
				a.skipEntry(src, target, i, err)
				return
			}
			categories, ok := a.classify(entry.Title, "")
			if !ok {
				return
			}
			records = append(records, entity.NewCourseRecord(src.Name, entry, categories, src.License, a.now()))
		})
		return records
	})
}

func wikiEntry(link *goquery.Selection, src registry.Source) (entity.RawEntry, error) {
	title := util.CleanText(link.Text())
	if utf8.RuneCountInString(title) < minWikiTitleLength {
		return entity.RawEntry{}, errMissingTitle
	}
	href, ok := link.Attr("href")
	if !ok || href == "" {
		return entity.RawEntry{}, errMissingLink
	}
	u, err := util.ResolveURL(src.BaseURL, href)
	if err != nil {
		return entity.RawEntry{}, err
	}
	return entity.RawEntry{
		Title:       title,
		URL:         u,
		Description: "Wikiversity resource: " + title,
	}, nil
}
