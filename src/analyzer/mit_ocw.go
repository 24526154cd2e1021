package analyzer

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"github.com/andrewyi/educrawler/src/entity"
	"github.com/andrewyi/educrawler/src/enum"
	"github.com/andrewyi/educrawler/src/registry"
	"github.com/andrewyi/educrawler/src/util"
)

const mitDescriptionLimit = 400

var (
	mitSearchLinks = []string{".course-title a", ".search-result h3 a"}
	mitTitle       = []string{"h1", ".course-title", ".course-header--title"}
	mitDescription = []string{".course-description", ".course-info"}

	materialSelector = `a[href*=".pdf"], a[href*="download"]`
	materialKeywords = []string{"lecture", "assignment", "reading"}
)

// MITOCWAnalyzer 目标既可能是搜索页（多门课程），也可能是单个课程页（附带讲义等材料）
type MITOCWAnalyzer struct {
	*base
}

func (a *MITOCWAnalyzer) Analyze(src registry.Source) ([]entity.CourseRecord, error) {
	targets, err := resolveTargets(src.BaseURL, src.CourseSearches)
	if err != nil {
		return nil, err
	}

	return a.run(src, targets, func(target string, page entity.PageInfo, doc *goquery.Document) []entity.CourseRecord {
		if strings.Contains(target, "/search/") {
			return a.searchPage(src, target, doc)
		}
		if record, ok := a.coursePage(src, target, page, doc); ok {
			return []entity.CourseRecord{record}
		}
		return nil
	})
}

func (a *MITOCWAnalyzer) searchPage(src registry.Source, target string, doc *goquery.Document) []entity.CourseRecord {
	var records []entity.CourseRecord
	links := limit(firstMatch(doc.Selection, pick(src.Selectors.CourseLinks, mitSearchLinks)), src.EntryLimit)
	a.eachEntry(src, target, links, func(i int, link *goquery.Selection) {
		title := util.CleanText(link.Text())
		if title == "" {
			a.skipEntry(src, target, i, errMissingTitle)
			return
		}
		href, ok := link.Attr("href")
		if !ok || href == "" {
			a.skipEntry(src, target, i, errMissingLink)
			return
		}
		u, err := util.ResolveURL(src.BaseURL, href)
		if err != nil {
			a.skipEntry(src, target, i, err)
			return
		}

		categories, ok := a.classify(title, "")
		if !ok {
			return
		}
		entry := entity.RawEntry{Title: title, URL: u, Description: "MIT OCW Course: " + title}
		records = append(records, entity.NewCourseRecord(src.Name, entry, categories, src.License, a.now()))
	})
	return records
}

func (a *MITOCWAnalyzer) coursePage(src registry.Source, target string, page entity.PageInfo, doc *goquery.Document) (entity.CourseRecord, bool) {
	title := text(firstMatch(doc.Selection, pick(src.Selectors.Title, mitTitle)))
	if title == "" {
		a.skipEntry(src, target, 0, errMissingTitle)
		return entity.CourseRecord{}, false
	}

	description := text(firstMatch(doc.Selection, pick(src.Selectors.Description, mitDescription)))
	if description == "" {
		description = a.excerpt(target, page.Content)
	}
	description = util.Truncate(description, mitDescriptionLimit)

	categories, ok := a.classify(title, description)
	if !ok {
		return entity.CourseRecord{}, false
	}

	entry := entity.RawEntry{Title: title, URL: target, Description: description}
	return entity.NewCourseRecord(src.Name, entry, categories, src.License, a.now(),
		entity.WithMaterials(materials(target, doc))), true
}

// 页面没有描述块时，使用正文摘要代替
func (a *MITOCWAnalyzer) excerpt(target string, content string) string {
	pageURL, err := url.Parse(target)
	if err != nil {
		return ""
	}
	article, err := readability.FromReader(strings.NewReader(content), pageURL)
	if err != nil {
		a.logger.WithError(err).WithField("url", target).Debug("no readable excerpt")
		return ""
	}
	return util.CleanText(article.Excerpt)
}

func materials(pageURL string, doc *goquery.Document) []entity.Material {
	var out []entity.Material
	doc.Find(materialSelector).Each(func(_ int, link *goquery.Selection) {
		href, ok := link.Attr("href")
		if !ok || href == "" {
			return
		}
		lower := strings.ToLower(href)
		matched := false
		for _, kw := range materialKeywords {
			if strings.Contains(lower, kw) {
				matched = true
				break
			}
		}
		if !matched {
			return
		}
		u, err := util.ResolveURL(pageURL, href)
		if err != nil {
			return
		}
		out = append(out, entity.Material{
			Title: util.CleanText(link.Text()),
			URL:   u,
			Type:  enum.MaterialTypePDF,
		})
	})
	return out
}
