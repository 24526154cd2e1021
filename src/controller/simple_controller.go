// 按注册顺序逐个站点抓取，任何一个站点失败都不影响后续站点
package controller

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/andrewyi/educrawler/src/analyzer"
	"github.com/andrewyi/educrawler/src/entity"
	"github.com/andrewyi/educrawler/src/registry"
	"github.com/andrewyi/educrawler/src/util"
)

type SimpleController struct {
	ctx         context.Context
	logger      *log.Logger
	analyzers   analyzer.Table
	sourceDelay time.Duration

	sleep func(context.Context, time.Duration)
}

type Option func(*SimpleController)

func WithSleeper(sleep func(context.Context, time.Duration)) Option {
	return func(c *SimpleController) {
		c.sleep = sleep
	}
}

func NewSimpleController(ctx context.Context, analyzers analyzer.Table, sourceDelay time.Duration, logger *log.Logger, opts ...Option) Controller {
	c := &SimpleController{
		ctx:         ctx,
		logger:      logger,
		analyzers:   analyzers,
		sourceDelay: sourceDelay,
		sleep: func(ctx context.Context, d time.Duration) {
			t := time.NewTimer(d)
			defer t.Stop()
			select {
			case <-ctx.Done():
			case <-t.C:
			}
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *SimpleController) Run(reg *registry.Registry) []entity.CourseRecord {
	var all []entity.CourseRecord

	c.logger.Info("start scraping for computer basics, programming and english learning")
	attempted := 0
	for _, src := range reg.Sources() {
		entry := c.logger.WithField("source", src.Name)
		if !src.Allowed {
			entry.Info("source disabled, skipped")
			continue
		}

		// 站点之间等待，第一个站点前不等待
		if attempted > 0 {
			c.sleep(c.ctx, c.sourceDelay)
		}
		attempted++

		if domain, err := util.GetDomain(src.BaseURL); err == nil {
			entry = entry.WithField("domain", domain)
		}
		entry.Info("scraping source")
		records, err := c.runSource(src)
		if err != nil {
			// 非致命错误，继续下一个站点
			entry.WithError(err).Error("fail to scrape source")
		} else {
			all = append(all, records...)
			entry.WithField("count", len(records)).Info("found relevant courses")
		}
	}

	return all
}

func (c *SimpleController) runSource(src registry.Source) (records []entity.CourseRecord, err error) {
	a, ok := c.analyzers.Lookup(src.Kind)
	if !ok {
		c.logger.WithFields(log.Fields{
			"source": src.Name,
			"kind":   src.Kind,
		}).Info("scraper not implemented yet")
		return nil, nil
	}

	// 页面结构不可控，解析中的panic也只影响当前站点
	defer func() {
		if r := recover(); r != nil {
			records, err = nil, fmt.Errorf("panic while scraping %s: %v", src.ID, r)
		}
	}()
	return a.Analyze(src)
}
