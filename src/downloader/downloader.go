package downloader

import (
	"github.com/andrewyi/educrawler/src/entity"
)

// Downloader 返回的PageInfo.State不是PageStateSuccess时，调用方直接跳过该页面
type Downloader interface {
	Download(url string, source string) entity.PageInfo
	Allowed(baseURL string) bool
}
