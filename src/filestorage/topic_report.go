package filestorage

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/andrewyi/educrawler/src/entity"
)

const samplesPerTopic = 3

var topicDisplayNames = map[string]string{
	"computer_basics":  "🖥️  PC Basics & Computer Skills",
	"programming":      "💻 Programming & Development",
	"english_learning": "🇬🇧 English Learning",
	"other":            "📚 Other Relevant Courses",
}

func displayName(topic string) string {
	if name, ok := topicDisplayNames[topic]; ok {
		return name
	}
	return cases.Title(language.Und).String(strings.ReplaceAll(topic, "_", " "))
}

// WriteTopicReport 输出按主题、按站点的汇总，每个主题最多列出3条
func WriteTopicReport(w io.Writer, records []entity.CourseRecord) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No courses found.")
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "💻 EDUCATIONAL COURSES REPORT")
	fmt.Fprintln(w, "Topics: PC Basics, Programming, English Learning")
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintf(w, "Total courses found: %d\n", len(records))

	groups := GroupByTopic(records)

	var sources []string
	bySource := make(map[string]int)
	for _, r := range records {
		if _, ok := bySource[r.Source]; !ok {
			sources = append(sources, r.Source)
		}
		bySource[r.Source]++
	}

	fmt.Fprintln(w, "\nCourses by Topic:")
	for _, topic := range groups.Keys {
		fmt.Fprintf(w, "  %s: %d courses\n", displayName(topic), len(groups.Groups[topic]))
	}

	fmt.Fprintln(w, "\nCourses by Source:")
	for _, source := range sources {
		fmt.Fprintf(w, "  • %s: %d courses\n", source, bySource[source])
	}

	fmt.Fprintln(w, "\nSample Courses by Topic:")
	for _, topic := range groups.Keys {
		courses := groups.Groups[topic]
		fmt.Fprintf(w, "\n%s:\n", displayName(topic))
		for i, c := range courses {
			if i == samplesPerTopic {
				fmt.Fprintf(w, "     ... and %d more\n", len(courses)-samplesPerTopic)
				break
			}
			fmt.Fprintf(w, "  %d. %s\n", i+1, c.Title)
			fmt.Fprintf(w, "     Source: %s\n", c.Source)
			fmt.Fprintf(w, "     URL: %s\n", c.URL)
		}
	}
}
