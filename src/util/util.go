package util

import (
	"errors"
	"net/url"
	"strings"
	"unicode"

	"github.com/spf13/viper"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var errEmptyHref = errors.New("empty href")

func ReadConfig(filePath string, out interface{}) error {
	v := viper.New()
	v.SetConfigFile(filePath)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // for nested structure
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return err
	}

	if err := v.Unmarshal(out); err != nil {
		return err
	}

	return nil
}

// host中可能残留有:port信息，需要进一步移除
func GetDomain(u string) (string, error) {
	oURL, err := url.Parse(u)
	if err != nil {
		return "", err
	}
	return strings.Split(oURL.Host, ":")[0], nil
}

// 将href按照base补全为绝对地址，href为空时返回错误
func ResolveURL(base string, href string) (string, error) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", &url.Error{Op: "resolve", URL: href, Err: errEmptyHref}
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", err
	}
	return baseURL.ResolveReference(ref).String(), nil
}

// 对query重新编码，避免非ascii字符原样出现在请求行中
func EscapeQuery(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.RawQuery == "" {
		return raw
	}
	u.RawQuery = u.Query().Encode()
	return u.String()
}

// string slice equal
func StringSliceEqual(s1 []string, s2 []string) bool {
	if len(s1) != len(s2) {
		return false
	}
	for i, v := range s1 {
		if v != s2[i] {
			return false
		}
	}
	return true
}

// 按字符（rune）截断，而不是字节
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}

// 合并连续空白，相当于get_text(strip=True)之后的效果
func CleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Slugify 去掉重音后只保留字母数字，其余连续字符折叠为'-'
func Slugify(s string, limit int) string {
	// transformer有状态，每次调用都新建
	folder := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(folder, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	pendingDash := false
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}

	slug := b.String()
	if limit > 0 && len(slug) > limit {
		slug = strings.TrimRight(slug[:limit], "-")
	}
	return slug
}
