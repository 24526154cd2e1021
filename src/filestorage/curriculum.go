// 按主题组织的课程大纲、面向学习平台的导出以及最终文本报告
package filestorage

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/andrewyi/educrawler/src/entity"
	"github.com/andrewyi/educrawler/src/util"
)

const (
	curriculumTitle       = "Complete Digital Skills Curriculum"
	curriculumDescription = "Learn computer basics, programming, and English"
	platformVersion       = "1.0"
	lessonDescriptionMax  = 200
	lessonEstimatedTime   = "30-60 minutes"
)

type moduleTemplate struct {
	topic       string
	id          string
	title       string
	description string
	duration    string
	difficulty  string
}

// 大纲中模块的固定顺序
var curriculumModules = []moduleTemplate{
	{"computer_basics", "1_computer_basics", "💻 Computer Basics & Digital Literacy",
		"Learn fundamental computer skills and digital tools", "4-6 weeks", "Beginner"},
	{"programming", "2_programming", "🔧 Programming & Development",
		"Introduction to coding and software development", "8-12 weeks", "Beginner to Intermediate"},
	{"english_learning", "3_english", "🇬🇧 English Language Skills",
		"Improve your English for professional and personal use", "12-24 weeks", "Beginner to Intermediate"},
}

type CurriculumInfo struct {
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	TotalCourses int       `json:"total_courses"`
	CreatedAt    time.Time `json:"created_at"`
}

type CurriculumModule struct {
	ID                string                `json:"-"`
	Title             string                `json:"title"`
	Description       string                `json:"description"`
	Courses           []entity.CourseRecord `json:"courses"`
	EstimatedDuration string                `json:"estimated_duration"`
	Difficulty        string                `json:"difficulty"`
}

// Curriculum modules按id排序后序列化，Order保留模块顺序
type Curriculum struct {
	Info    CurriculumInfo              `json:"curriculum_info"`
	Modules map[string]CurriculumModule `json:"modules"`
	Order   []string                    `json:"-"`
}

// BuildCurriculum 每个固定主题一个模块，即使没有课程；其他主题的课程追加为额外模块
// 一条记录属于多个主题时在每个模块中各出现一次，total_courses按模块累加
func BuildCurriculum(records []entity.CourseRecord, createdAt time.Time) Curriculum {
	groups := GroupByTopic(records)
	cur := Curriculum{
		Info: CurriculumInfo{
			Title:       curriculumTitle,
			Description: curriculumDescription,
			CreatedAt:   createdAt.UTC(),
		},
		Modules: make(map[string]CurriculumModule),
	}

	add := func(m CurriculumModule) {
		cur.Modules[m.ID] = m
		cur.Order = append(cur.Order, m.ID)
		cur.Info.TotalCourses += len(m.Courses)
	}

	known := make(map[string]struct{}, len(curriculumModules))
	for _, t := range curriculumModules {
		known[t.topic] = struct{}{}
		add(CurriculumModule{
			ID:                t.id,
			Title:             t.title,
			Description:       t.description,
			Courses:           nonNil(groups.Groups[t.topic]),
			EstimatedDuration: t.duration,
			Difficulty:        t.difficulty,
		})
	}

	for _, topic := range groups.Keys {
		if _, ok := known[topic]; ok {
			continue
		}
		add(CurriculumModule{
			ID:          fmt.Sprintf("%d_%s", len(cur.Order)+1, topic),
			Title:       displayName(topic),
			Description: displayName(topic),
			Courses:     groups.Groups[topic],
		})
	}
	return cur
}

func nonNil(records []entity.CourseRecord) []entity.CourseRecord {
	if records == nil {
		return []entity.CourseRecord{}
	}
	return records
}

type SourceCount struct {
	Source string
	Count  int
}

// SourceBreakdown 各站点对每个主题贡献的课程数，按数量降序，数量相同按首次出现的顺序
func SourceBreakdown(records []entity.CourseRecord) (topics []string, breakdown map[string][]SourceCount) {
	groups := GroupByTopic(records)
	breakdown = make(map[string][]SourceCount, len(groups.Keys))
	for _, topic := range groups.Keys {
		breakdown[topic] = countSources(groups.Groups[topic])
	}
	return groups.Keys, breakdown
}

func countSources(records []entity.CourseRecord) []SourceCount {
	var out []SourceCount
	index := make(map[string]int)
	for _, r := range records {
		i, ok := index[r.Source]
		if !ok {
			i = len(out)
			index[r.Source] = i
			out = append(out, SourceCount{Source: r.Source})
		}
		out[i].Count++
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Count > out[b].Count })
	return out
}

// WriteSourceAnalysis 输出每个主题下各站点的课程数
func WriteSourceAnalysis(w io.Writer, records []entity.CourseRecord) {
	topics, breakdown := SourceBreakdown(records)
	fmt.Fprintln(w, "\nSource effectiveness by topic:")
	for _, topic := range topics {
		fmt.Fprintf(w, "\n%s:\n", displayName(topic))
		for _, sc := range breakdown[topic] {
			fmt.Fprintf(w, "  %s: %d courses\n", sc.Source, sc.Count)
		}
	}
}

type PlatformLesson struct {
	LessonID      string   `json:"lesson_id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	SourceURL     string   `json:"source_url"`
	SourceName    string   `json:"source_name"`
	License       string   `json:"license"`
	Categories    []string `json:"categories"`
	HasMaterials  bool     `json:"has_materials"`
	XP            int      `json:"xp"`
	EstimatedTime string   `json:"estimated_time"`
}

type LearningPath struct {
	ID                string           `json:"id"`
	Title             string           `json:"title"`
	Description       string           `json:"description"`
	Difficulty        string           `json:"difficulty"`
	EstimatedDuration string           `json:"estimated_duration"`
	Lessons           []PlatformLesson `json:"lessons"`
}

type PlatformExport struct {
	AppData struct {
		Version        string    `json:"version"`
		ExportDate     time.Time `json:"export_date"`
		CurriculumName string    `json:"curriculum_name"`
	} `json:"app_data"`
	LearningPaths []LearningPath `json:"learning_paths"`
}

// BuildPlatformExport 每个模块一条学习路径，课程按模块内顺序编号
func BuildPlatformExport(cur Curriculum, exportedAt time.Time, xp int) PlatformExport {
	var out PlatformExport
	out.AppData.Version = platformVersion
	out.AppData.ExportDate = exportedAt.UTC()
	out.AppData.CurriculumName = cur.Info.Title
	out.LearningPaths = []LearningPath{}

	for _, id := range cur.Order {
		m := cur.Modules[id]
		path := LearningPath{
			ID:                id,
			Title:             m.Title,
			Description:       m.Description,
			Difficulty:        m.Difficulty,
			EstimatedDuration: m.EstimatedDuration,
			Lessons:           []PlatformLesson{},
		}
		for i, c := range m.Courses {
			path.Lessons = append(path.Lessons, PlatformLesson{
				LessonID:      fmt.Sprintf("%s_lesson_%d", id, i+1),
				Title:         c.Title,
				Description:   lessonDescription(c.Description),
				SourceURL:     c.URL,
				SourceName:    c.Source,
				License:       c.License,
				Categories:    append([]string{}, c.Categories...),
				HasMaterials:  len(c.Materials) > 0,
				XP:            xp,
				EstimatedTime: lessonEstimatedTime,
			})
		}
		out.LearningPaths = append(out.LearningPaths, path)
	}
	return out
}

func lessonDescription(s string) string {
	cut := util.Truncate(s, lessonDescriptionMax)
	if cut != s {
		return cut + "..."
	}
	return s
}

// WriteFinalReport 汇总各模块的课程数、时长、难度与来源，以及生成的文件
func WriteFinalReport(w io.Writer, cur Curriculum, files []string, generatedAt time.Time) {
	fmt.Fprintln(w, "EDUCATIONAL CONTENT SCRAPING REPORT")
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintf(w, "Generated: %s\n", generatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Total Courses: %d\n", cur.Info.TotalCourses)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "MODULES BREAKDOWN:")
	fmt.Fprintln(w, strings.Repeat("-", 20))
	for _, id := range cur.Order {
		m := cur.Modules[id]
		fmt.Fprintln(w, m.Title)
		fmt.Fprintf(w, "  Courses: %d\n", len(m.Courses))
		if m.EstimatedDuration != "" {
			fmt.Fprintf(w, "  Duration: %s\n", m.EstimatedDuration)
		}
		if m.Difficulty != "" {
			fmt.Fprintf(w, "  Difficulty: %s\n", m.Difficulty)
		}
		fmt.Fprintln(w, "  Sources:")
		for _, sc := range countSources(m.Courses) {
			fmt.Fprintf(w, "    • %s: %d courses\n", sc.Source, sc.Count)
		}
		fmt.Fprintln(w)
	}

	if len(files) > 0 {
		fmt.Fprintln(w, "FILES CREATED:")
		fmt.Fprintln(w, strings.Repeat("-", 15))
		for _, f := range files {
			fmt.Fprintf(w, "• %s\n", f)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "NEXT STEPS:")
	fmt.Fprintln(w, strings.Repeat("-", 12))
	fmt.Fprintln(w, "1. Review the courses in each category")
	fmt.Fprintln(w, "2. Import platform_ready_data.json into your learning app")
	fmt.Fprintln(w, "3. Download materials from courses with available resources")
	fmt.Fprintln(w, "4. Create quizzes and assessments for each module")
}
