// robots.txt按origin缓存，每次运行每个origin只请求一次
// 获取失败时视为允许
package downloader

import (
	"net/http"
	"net/url"

	log "github.com/sirupsen/logrus"
	"github.com/temoto/robotstxt"
)

var disallowAll, _ = robotstxt.FromString("User-agent: *\nDisallow: /\n")

type robotsCache struct {
	client    *http.Client
	userAgent string
	agent     string
	logger    *log.Logger

	data map[string]*robotstxt.RobotsData // nil表示不限制
}

func newRobotsCache(client *http.Client, userAgent string, agent string, logger *log.Logger) *robotsCache {
	return &robotsCache{
		client:    client,
		userAgent: userAgent,
		agent:     agent,
		logger:    logger,
		data:      make(map[string]*robotstxt.RobotsData),
	}
}

func (c *robotsCache) allowed(baseURL string) bool {
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		c.logger.WithField("url", baseURL).Warn("invalid base url, robots check skipped")
		return true
	}

	origin := u.Scheme + "://" + u.Host
	data, ok := c.data[origin]
	if !ok {
		data = c.load(origin)
		c.data[origin] = data
	}
	if data == nil {
		return true
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	return data.TestAgent(path, c.agent)
}

func (c *robotsCache) load(origin string) *robotstxt.RobotsData {
	robotsURL := origin + "/robots.txt"
	entry := c.logger.WithField("url", robotsURL)

	req, err := http.NewRequest(http.MethodGet, robotsURL, nil)
	if err != nil {
		entry.WithError(err).Warn("fail to build robots request, allowing")
		return nil
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		entry.WithError(err).Warn("fail to fetch robots.txt, allowing")
		return nil
	}
	defer resp.Body.Close()

	// 401/403视为全站禁止，其余4xx视为不限制
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		entry.WithField("status", resp.StatusCode).Warn("robots.txt access denied, disallowing")
		return disallowAll
	}

	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		entry.WithError(err).Warn("fail to parse robots.txt, allowing")
		return nil
	}
	return data
}
