// 各站点解析器共享的流程：robots检查、目标页下载、选择器回退、限量、分类过滤、礼貌等待
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"

	"github.com/andrewyi/educrawler/src/classifier"
	"github.com/andrewyi/educrawler/src/downloader"
	"github.com/andrewyi/educrawler/src/entity"
	"github.com/andrewyi/educrawler/src/enum"
	"github.com/andrewyi/educrawler/src/registry"
	"github.com/andrewyi/educrawler/src/util"
)

var (
	errMissingTitle = errors.New("missing title")
	errMissingLink  = errors.New("missing link")
)

type base struct {
	ctx        context.Context
	downloader downloader.Downloader
	classifier *classifier.Classifier
	logger     *log.Logger

	now   func() time.Time
	sleep func(context.Context, time.Duration)
}

type Option func(*base)

func WithClock(now func() time.Time) Option {
	return func(b *base) {
		b.now = now
	}
}

// WithSleeper 替换目标页之间的等待，测试中使用
func WithSleeper(sleep func(context.Context, time.Duration)) Option {
	return func(b *base) {
		b.sleep = sleep
	}
}

func NewTable(ctx context.Context, d downloader.Downloader, c *classifier.Classifier, logger *log.Logger, opts ...Option) Table {
	b := &base{
		ctx:        ctx,
		downloader: d,
		classifier: c,
		logger:     logger,
		now:        time.Now,
		sleep:      sleepContext,
	}
	for _, opt := range opts {
		opt(b)
	}

	return Table{
		registry.KindFunMooc:        &FunMoocAnalyzer{base: b},
		registry.KindWikiversity:    &WikiversityAnalyzer{base: b},
		registry.KindMITOCW:         &MITOCWAnalyzer{base: b},
		registry.KindOpenClassrooms: &OpenClassroomsAnalyzer{base: b},
	}
}

func sleepContext(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// 每个目标页处理完（无论成功与否）都等待TargetDelay
type pageFunc func(target string, page entity.PageInfo, doc *goquery.Document) []entity.CourseRecord

func (b *base) run(src registry.Source, targets []string, fn pageFunc) ([]entity.CourseRecord, error) {
	if !b.downloader.Allowed(src.BaseURL) {
		b.logger.WithFields(log.Fields{
			"source": src.Name,
			"url":    src.BaseURL,
		}).Warn("robots.txt disallows crawling, source skipped")
		return nil, nil
	}

	var records []entity.CourseRecord
	for _, target := range targets {
		page, doc, ok := b.fetchDocument(src, target)
		if ok {
			records = append(records, fn(target, page, doc)...)
		}
		b.sleep(b.ctx, src.TargetDelay)
	}
	return records, nil
}

func (b *base) fetchDocument(src registry.Source, target string) (entity.PageInfo, *goquery.Document, bool) {
	page := b.downloader.Download(target, src.Name)
	if page.State != enum.PageStateSuccess {
		return page, nil, false
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.Content))
	if err != nil {
		b.logger.WithError(err).WithField("url", target).Error("fail to parse page")
		return page, nil, false
	}
	return page, doc, true
}

// 将相对路径补全为绝对url，去重并保持顺序
func resolveTargets(baseURL string, paths []string) ([]string, error) {
	var targets []string
	seen := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		u, err := util.ResolveURL(baseURL, p)
		if err != nil {
			return nil, err
		}
		u = util.EscapeQuery(u)
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		targets = append(targets, u)
	}
	return targets, nil
}

// 按优先级尝试选择器，返回第一个非空结果
func firstMatch(s *goquery.Selection, selectors []string) *goquery.Selection {
	for _, sel := range selectors {
		if found := s.Find(sel); found.Length() > 0 {
			return found
		}
	}
	return s.Slice(0, 0)
}

func limit(s *goquery.Selection, n int) *goquery.Selection {
	if n > 0 && s.Length() > n {
		return s.Slice(0, n)
	}
	return s
}

func pick(configured []string, fallback []string) []string {
	if len(configured) > 0 {
		return configured
	}
	return fallback
}

// 分类后命中other的条目直接丢弃
func (b *base) classify(title string, description string) ([]string, bool) {
	categories := b.classifier.Classify(title, description)
	if classifier.IsOther(categories) {
		return nil, false
	}
	return categories, true
}

// 单个条目处理中的panic只丢弃该条目，同一页面的其他条目照常保留
func (b *base) eachEntry(src registry.Source, target string, s *goquery.Selection, fn func(int, *goquery.Selection)) {
	s.Each(func(i int, item *goquery.Selection) {
		defer func() {
			if r := recover(); r != nil {
				b.skipEntry(src, target, i, fmt.Errorf("panic while processing entry: %v", r))
			}
		}()
		fn(i, item)
	})
}

func (b *base) skipEntry(src registry.Source, target string, index int, err error) {
	entry := b.logger.WithError(err).WithFields(log.Fields{
		"source": src.Name,
		"url":    target,
		"index":  index,
	})
	if errors.Is(err, errMissingTitle) || errors.Is(err, errMissingLink) {
		entry.Debug("entry skipped")
		return
	}
	entry.Error("fail to process entry")
}

func text(s *goquery.Selection) string {
	return util.CleanText(s.First().Text())
}
