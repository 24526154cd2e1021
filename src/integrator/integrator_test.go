package integrator

import (
	"encoding/json"
	"io"
	"path/filepath"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrewyi/educrawler/src/dbstorage"
	"github.com/andrewyi/educrawler/src/entity"
)

var defaultModuleMap = map[string]string{
	"computer_basics": ModuleInformatique,
	"programming":     ModuleProgrammation,
}

type stepClock struct {
	t    time.Time
	step time.Duration
}

func (c *stepClock) now() time.Time {
	now := c.t
	c.t = c.t.Add(c.step)
	return now
}

func newTestIntegrator(t *testing.T, clock func() time.Time) (*Integrator, *dbstorage.SimpleDBStorage) {
	db, err := dbstorage.NewSimpleDBStorage("sqlite3", filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	logger := log.New()
	logger.SetOutput(io.Discard)
	return NewIntegrator(db, NewResolver(defaultModuleMap), 10, logger, WithClock(clock)), db
}

func record(title string, description string, categories ...string) entity.CourseRecord {
	return entity.NewCourseRecord("FUN-MOOC (France Université Numérique)",
		entity.RawEntry{Title: title, URL: "https://www.fun-mooc.fr/c", Description: description},
		categories, "Varies", time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))
}

func TestLessonID(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 0, 7, 0, time.UTC)
	assert.Equal(t, "programmation_introduction-a-python-pour-debutants_20240501100007",
		LessonID(ModuleProgrammation, "Introduction à Python pour débutants", at))
	assert.Equal(t, "informatique_lesson_20240501100007", LessonID(ModuleInformatique, "???", at))
}

func TestResolverCategoryWinsOverKeywords(t *testing.T) {
	r := NewResolver(defaultModuleMap)

	m, ok := r.Resolve(record("Excel pour débutants", "", "computer_basics"))
	require.True(t, ok)
	assert.Equal(t, ModuleInformatique, m)

	// 第一个可映射的分类生效
	m, ok = r.Resolve(record("Grammaire et python", "", "english_learning", "programming", "computer_basics"))
	require.True(t, ok)
	assert.Equal(t, ModuleProgrammation, m)
}

func TestResolverKeywordFallback(t *testing.T) {
	r := NewResolver(defaultModuleMap)

	cases := map[string]string{
		"Maîtriser Excel":                   ModuleBureautique,
		"Choisir un bon password":           ModuleCybersecurite,
		"English for Python developers":     ModuleProgrammation,
		"Comprendre son ordinateur":         ModuleInformatique,
		"Protéger son ordinateur des virus": ModuleCybersecurite,
	}
	for title, want := range cases {
		m, ok := r.Resolve(record(title, "", "english_learning"))
		require.True(t, ok, title)
		assert.Equal(t, want, m, title)
	}

	_, ok := r.Resolve(record("Grammaire anglaise", "conversation", "english_learning"))
	assert.False(t, ok)
}

func TestIntegrate(t *testing.T) {
	clock := &stepClock{t: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), step: time.Second}
	in, db := newTestIntegrator(t, clock.now)

	records := []entity.CourseRecord{
		record("Introduction à Python pour débutants", "Apprendre la programmation avec Python", "computer_basics", "programming"),
		record("Grammaire anglaise", "conversation", "english_learning"),
		entity.NewCourseRecord("MIT OpenCourseWare",
			entity.RawEntry{Title: "Intro to CS", URL: "https://ocw.mit.edu/c"}, []string{"programming"}, "CC BY-NC-SA", time.Now(),
			entity.WithMaterials([]entity.Material{{Title: "L1", URL: "https://ocw.mit.edu/l1.pdf", Type: "pdf"}})),
	}
	res := in.Integrate(records)

	assert.False(t, res.Success)
	assert.Equal(t, 2, res.Integrated)
	assert.Equal(t, map[string]int{ModuleInformatique: 1, ModuleProgrammation: 1}, res.ModulesBreakdown)
	assert.Equal(t, []string{`no module for "Grammaire anglaise"`}, res.Errors)
	assert.Empty(t, res.Duplicates)

	tx, err := db.NewTransaction()
	require.NoError(t, err)
	defer tx.Close()

	count, err := tx.CountContent("")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// 时钟：Result时间戳占用第0秒，第一条记录为第1秒
	row, err := tx.GetContent("informatique_introduction-a-python-pour-debutants_20240501100001")
	require.NoError(t, err)
	assert.Equal(t, 10, row.XP)
	assert.True(t, row.HasQuiz)
	assert.Nil(t, row.PDFPath)
	assert.Equal(t, "FUN-MOOC (France Université Numérique)", row.SourceName)

	var quiz Quiz
	require.NoError(t, json.Unmarshal([]byte(row.QuizData), &quiz))
	assert.Equal(t, "Quiz : Introduction à Python pour débutants", quiz.Title)
	require.Len(t, quiz.Questions, 4)
	last := quiz.Questions[3]
	assert.Equal(t, "apprendre", last.Options[last.Correct])

	mit, err := tx.GetContent("programmation_intro-to-cs_20240501100002")
	require.NoError(t, err)
	require.NotNil(t, mit.PDFPath)
	assert.Equal(t, "https://ocw.mit.edu/l1.pdf", *mit.PDFPath)
}

func TestIntegrateSameTitleOneSecondApart(t *testing.T) {
	clock := &stepClock{t: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), step: time.Second}
	in, db := newTestIntegrator(t, clock.now)

	r := record("Initiation à la programmation", "", "programming")
	res := in.Integrate([]entity.CourseRecord{r, r})

	assert.True(t, res.Success)
	assert.Equal(t, 2, res.Integrated)

	tx, err := db.NewTransaction()
	require.NoError(t, err)
	defer tx.Close()
	count, err := tx.CountContent(ModuleProgrammation)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestIntegrateSameSecondCollisionIsReported(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	in, db := newTestIntegrator(t, func() time.Time { return fixed })

	r := record("Initiation à la programmation", "premier", "programming")
	res := in.Integrate([]entity.CourseRecord{r, r})

	assert.True(t, res.Success)
	assert.Equal(t, 1, res.Integrated)
	assert.Equal(t, []string{"programmation_initiation-a-la-programmation_20240501100000"}, res.Duplicates)

	tx, err := db.NewTransaction()
	require.NoError(t, err)
	defer tx.Close()
	count, err := tx.CountContent("")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestDescriptionQuestion(t *testing.T) {
	_, ok := descriptionQuestion("x", "court et net")
	assert.False(t, ok)

	q, ok := descriptionQuestion("Bases", "Voir l'algorithmique pas à pas")
	require.True(t, ok)
	assert.Len(t, q.Options, 4)
	assert.Equal(t, "algorithmique", q.Options[q.Correct])
	assert.Equal(t, len([]rune("algorithmique"))%4, q.Correct)
}

func TestQuizWithoutTemplateOrLongWord(t *testing.T) {
	quiz := buildQuiz("anglais", "Grammar", "short text")
	assert.Empty(t, quiz.Questions)
}
