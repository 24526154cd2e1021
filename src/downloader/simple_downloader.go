// 串行下载：所有请求共用一个限速器，失败后指数退避重试
// 非2xx状态码与网络错误一样视为可重试
package downloader

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/andrewyi/educrawler/src/entity"
	"github.com/andrewyi/educrawler/src/enum"
)

const maxBodySize = 8 << 20

type Settings struct {
	Timeout     time.Duration
	Retry       int           // 总尝试次数
	BackoffBase time.Duration // 第n次失败后等待 base*2^(n-1)
	RateCalls   int           // 每个RatePeriod内最多请求次数
	RatePeriod  time.Duration
	UserAgent   string
	RobotsAgent string
}

type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
}

type SimpleDownloader struct {
	ctx      context.Context
	settings Settings
	logger   *log.Logger

	client  *http.Client
	limiter *rate.Limiter
	robots  *robotsCache
}

func NewSimpleDownloader(ctx context.Context, settings Settings, logger *log.Logger) Downloader {
	if settings.Retry <= 0 {
		settings.Retry = 1
	}
	if settings.RateCalls <= 0 {
		settings.RateCalls = 1
	}

	client := &http.Client{
		Timeout: settings.Timeout,
	}

	// 请求均匀分布在窗口内，任意一个RatePeriod内不超过RateCalls次
	limit := rate.Inf
	if settings.RatePeriod > 0 {
		limit = rate.Every(settings.RatePeriod / time.Duration(settings.RateCalls))
	}

	return &SimpleDownloader{
		ctx:      ctx,
		settings: settings,
		logger:   logger,
		client:   client,
		limiter:  rate.NewLimiter(limit, 1),
		robots:   newRobotsCache(client, settings.UserAgent, settings.RobotsAgent, logger),
	}
}

func (s *SimpleDownloader) Download(url string, source string) entity.PageInfo {
	var lastErr error

	for attempt := 1; attempt <= s.settings.Retry; attempt++ {
		entry := s.logger.WithFields(log.Fields{
			"url":     url,
			"source":  source,
			"attempt": attempt,
		})
		entry.Info("fetching page")

		content, err := s.fetch(url)
		if err == nil {
			return entity.PageInfo{
				URL:     url,
				State:   enum.PageStateSuccess,
				Content: content,
			}
		}
		lastErr = err
		entry.WithError(err).Warn("fail to fetch page")

		if attempt == s.settings.Retry {
			break
		}
		if err := s.backoff(attempt); err != nil {
			lastErr = err
			break
		}
	}

	s.logger.WithError(lastErr).WithFields(log.Fields{
		"url":    url,
		"source": source,
	}).Error("give up fetching page")

	return entity.PageInfo{
		URL:    url,
		State:  enum.PageStateFail,
		Remark: lastErr.Error(),
	}
}

func (s *SimpleDownloader) fetch(url string) (string, error) {
	if err := s.limiter.Wait(s.ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(s.ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", s.settings.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "fr-FR,fr;q=0.9,en;q=0.8")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return "", &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", err
	}
	return decodeBody(body), nil
}

func (s *SimpleDownloader) backoff(attempt int) error {
	d := s.settings.BackoffBase << uint(attempt-1)
	if d <= 0 {
		return nil
	}
	// 加入少量抖动
	d += time.Duration(rand.Int63n(int64(d)/5 + 1))

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-s.ctx.Done():
		return s.ctx.Err()
	case <-t.C:
		return nil
	}
}

func (s *SimpleDownloader) Allowed(baseURL string) bool {
	return s.robots.allowed(baseURL)
}
