package analyzer

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/andrewyi/educrawler/src/entity"
	"github.com/andrewyi/educrawler/src/enum"
	"github.com/andrewyi/educrawler/src/registry"
	"github.com/andrewyi/educrawler/src/util"
)

var (
	funMoocCards       = []string{".course-glimpse", ".course-card", ".course-item"}
	funMoocTitle       = []string{".course-glimpse-content h3", "h3", ".course-title"}
	funMoocLink        = []string{"a"}
	funMoocDescription = []string{".course-glimpse-content__description", ".description"}
)

// FunMoocAnalyzer 解析搜索结果页中的课程卡片
type FunMoocAnalyzer struct {
	*base
}

func (a *FunMoocAnalyzer) Analyze(src registry.Source) ([]entity.CourseRecord, error) {
	targets, err := resolveTargets(src.BaseURL, src.SearchEndpoints)
	if err != nil {
		return nil, err
	}

	return a.run(src, targets, func(target string, _ entity.PageInfo, doc *goquery.Document) []entity.CourseRecord {
		var records []entity.CourseRecord
		cards := limit(firstMatch(doc.Selection, pick(src.Selectors.CourseCards, funMoocCards)), src.EntryLimit)
		a.eachEntry(src, target, cards, func(i int, card *goquery.Selection) {
			entry, err := cardEntry(card, src)
			if err != nil {
				a.skipEntry(src, target, i, err)
				return
			}
			// 用完整描述分类，保存时才截断
			categories, ok := a.classify(entry.Title, entry.Description)
			if !ok {
				return
			}
			entry.Description = util.Truncate(entry.Description, enum.DescriptionLimit)
			records = append(records, entity.NewCourseRecord(src.Name, entry, categories, src.License, a.now()))
		})
		return records
	})
}

func cardEntry(card *goquery.Selection, src registry.Source) (entity.RawEntry, error) {
	title := text(firstMatch(card, pick(src.Selectors.Title, funMoocTitle)))
	if title == "" {
		return entity.RawEntry{}, errMissingTitle
	}

	href, ok := cardHref(card, pick(src.Selectors.Link, funMoocLink))
	if !ok {
		return entity.RawEntry{}, errMissingLink
	}
	link, err := util.ResolveURL(src.BaseURL, href)
	if err != nil {
		return entity.RawEntry{}, err
	}

	description := text(firstMatch(card, pick(src.Selectors.Description, funMoocDescription)))
	return entity.RawEntry{
		Title:       title,
		URL:         link,
		Description: description,
	}, nil
}

// 卡片本身是<a>时直接使用它的href
func cardHref(card *goquery.Selection, selectors []string) (string, bool) {
	if href, ok := firstMatch(card, selectors).First().Attr("href"); ok && href != "" {
		return href, true
	}
	if goquery.NodeName(card) == "a" {
		if href, ok := card.Attr("href"); ok && href != "" {
			return href, true
		}
	}
	return "", false
}
