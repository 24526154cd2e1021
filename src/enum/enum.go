package enum

const (
	// 定义了page的状态，每个url只下载一次，失败后由调用方直接跳过
	PageStatePending = 0
	PageStateSuccess = 1
	PageStateFail    = 2
)

const (
	// 未命中任何主题时的唯一标签
	TopicOther = "other"

	// 写入json报告的scraper_version
	ScraperVersion = "2.1"

	MaterialTypePDF = "pdf"

	// 描述默认截断长度（按字符计）
	DescriptionLimit = 300
)
