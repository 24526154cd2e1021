package downloader

import (
	"unicode/utf8"

	"github.com/gogs/chardet"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
)

// 低于此置信度的探测结果不采用
const minDetectConfidence = 50

// decodeBody 不信任响应头中的charset，只根据内容判断编码
// 顺序：合法utf-8 > BOM/meta声明 > chardet探测 > windows-1252
func decodeBody(body []byte) string {
	if utf8.Valid(body) {
		return string(body)
	}

	if enc, _, certain := charset.DetermineEncoding(body, ""); certain {
		if out, err := enc.NewDecoder().Bytes(body); err == nil {
			return string(out)
		}
	}

	if res, err := chardet.NewTextDetector().DetectBest(body); err == nil && res.Confidence >= minDetectConfidence {
		if enc, err := htmlindex.Get(res.Charset); err == nil {
			if out, err := enc.NewDecoder().Bytes(body); err == nil {
				return string(out)
			}
		}
	}

	out, err := charmap.Windows1252.NewDecoder().Bytes(body)
	if err != nil {
		return string(body)
	}
	return string(out)
}
