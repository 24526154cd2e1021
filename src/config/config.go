package config

type Config struct {
	Log struct {
		Context bool   `mapstructure:"context"`
		Level   string `mapstructure:"level"`
		File    string `mapstructure:"file"`
	} `mapstructure:"log"`

	HTTP struct {
		UserAgent   string `mapstructure:"user_agent"`
		RobotsAgent string `mapstructure:"robots_agent"`
		Timeout     uint32 `mapstructure:"timeout"`      // 秒
		Retry       uint32 `mapstructure:"retry"`        // 总尝试次数
		BackoffBase uint32 `mapstructure:"backoff_base"` // 秒，第n次重试等待 base*2^(n-1)
		RateCalls   uint32 `mapstructure:"rate_calls"`
		RatePeriod  uint32 `mapstructure:"rate_period"` // 秒
	} `mapstructure:"http"`

	Crawler struct {
		RegistryFile     string   `mapstructure:"registry_file"`
		SourceDelay      uint32   `mapstructure:"source_delay"` // 秒
		Topics           []string `mapstructure:"topics"`
		ExtendedKeywords bool     `mapstructure:"extended_keywords"`
	} `mapstructure:"crawler"`

	Output struct {
		Dir           string `mapstructure:"dir"`
		JSONFile      string `mapstructure:"json_file"`
		CSVFile       string `mapstructure:"csv_file"`
		// 相对于Dir，为"-"时不生成大纲与最终报告
		CurriculumDir string `mapstructure:"curriculum_dir"`
	} `mapstructure:"output"`

	Database struct {
		Enabled bool   `mapstructure:"enabled"`
		Driver  string `mapstructure:"driver"`
		URL     string `mapstructure:"url"`
	} `mapstructure:"database"`

	Integration struct {
		XP        uint32            `mapstructure:"xp"`
		ModuleMap map[string]string `mapstructure:"module_map"`
	} `mapstructure:"integration"`
}

// 配置文件中缺省的字段使用以下默认值
func (c *Config) ApplyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.File == "" {
		c.Log.File = "scraper.log"
	}

	if c.HTTP.UserAgent == "" {
		c.HTTP.UserAgent = "Educational Content Aggregator for Open Learning Resources"
	}
	if c.HTTP.RobotsAgent == "" {
		c.HTTP.RobotsAgent = "Educational Content Aggregator"
	}
	if c.HTTP.Timeout == 0 {
		c.HTTP.Timeout = 25
	}
	if c.HTTP.Retry == 0 {
		c.HTTP.Retry = 3
	}
	if c.HTTP.BackoffBase == 0 {
		c.HTTP.BackoffBase = 2
	}
	if c.HTTP.RateCalls == 0 {
		c.HTTP.RateCalls = 2
	}
	if c.HTTP.RatePeriod == 0 {
		c.HTTP.RatePeriod = 60
	}

	if c.Crawler.SourceDelay == 0 {
		c.Crawler.SourceDelay = 6
	}

	if c.Output.Dir == "" {
		c.Output.Dir = "educational_courses"
	}
	if c.Output.JSONFile == "" {
		c.Output.JSONFile = "topic_courses.json"
	}
	if c.Output.CurriculumDir == "" {
		c.Output.CurriculumDir = "complete_curriculum"
	}

	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite3"
	}
	if c.Database.URL == "" {
		c.Database.URL = "database/app.db"
	}

	if c.Integration.XP == 0 {
		c.Integration.XP = 10
	}
	if len(c.Integration.ModuleMap) == 0 {
		c.Integration.ModuleMap = map[string]string{
			"computer_basics": "informatique",
			"programming":     "programmation",
		}
	}
}
