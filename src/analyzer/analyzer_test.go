package analyzer

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrewyi/educrawler/src/classifier"
	"github.com/andrewyi/educrawler/src/entity"
	"github.com/andrewyi/educrawler/src/enum"
	"github.com/andrewyi/educrawler/src/registry"
	"github.com/andrewyi/educrawler/src/taxonomy"
)

type fakeDownloader struct {
	pages    map[string]string
	disallow bool
	fetched  []string
}

func (f *fakeDownloader) Download(url string, source string) entity.PageInfo {
	f.fetched = append(f.fetched, url)
	content, ok := f.pages[url]
	if !ok {
		return entity.PageInfo{URL: url, State: enum.PageStateFail, Remark: "not found"}
	}
	return entity.PageInfo{URL: url, State: enum.PageStateSuccess, Content: content}
}

func (f *fakeDownloader) Allowed(string) bool {
	return !f.disallow
}

var fixedNow = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func newTestTable(d *fakeDownloader, sleeps *[]time.Duration) Table {
	logger := log.New()
	logger.SetOutput(io.Discard)
	return NewTable(context.Background(), d, classifier.New(taxonomy.Default()), logger,
		WithClock(func() time.Time { return fixedNow }),
		WithSleeper(func(_ context.Context, d time.Duration) {
			if sleeps != nil {
				*sleeps = append(*sleeps, d)
			}
		}),
	)
}

func source(t *testing.T, id string) registry.Source {
	s, ok := registry.Default().Get(id)
	require.True(t, ok)
	return s
}

func titles(records []entity.CourseRecord) []string {
	var out []string
	for _, r := range records {
		out = append(out, r.Title)
	}
	return out
}

func TestFunMoocCards(t *testing.T) {
	src := source(t, "fun_mooc")
	src.SearchEndpoints = []string{"/courses/?search=python", "/courses/?search=missing"}

	long := strings.Repeat("é", 350)
	page := `<html><body>
<div class="course-glimpse">
  <a href="/fr/cours/python-debutant/"><div class="course-glimpse-content"><h3>Introduction à Python pour débutants</h3>
  <p class="course-glimpse-content__description">` + long + `</p></div></a>
</div>
<div class="course-glimpse"><a href="/fr/cours/histoire/"><h3>Histoire médiévale</h3></a></div>
<div class="course-glimpse"><h3>Programmation sans lien</h3></div>
<div class="course-glimpse"><a href="/fr/cours/vide/"><h3>  </h3></a></div>
</body></html>`

	d := &fakeDownloader{pages: map[string]string{
		"https://www.fun-mooc.fr/courses/?search=python": page,
	}}
	var sleeps []time.Duration
	records, err := newTestTable(d, &sleeps)[registry.KindFunMooc].Analyze(src)
	require.NoError(t, err)

	require.Len(t, records, 1)
	r := records[0]
	assert.Equal(t, "Introduction à Python pour débutants", r.Title)
	assert.Equal(t, "https://www.fun-mooc.fr/fr/cours/python-debutant/", r.URL)
	assert.Equal(t, "FUN-MOOC (France Université Numérique)", r.Source)
	assert.Equal(t, "Varies, generally open for educational use", r.License)
	assert.Contains(t, r.Categories, taxonomy.Programming)
	assert.Equal(t, []rune(long)[:300], []rune(r.Description))
	assert.Equal(t, fixedNow, r.ScrapedAt)

	// 下载失败的目标页同样等待
	assert.Equal(t, []time.Duration{4 * time.Second, 4 * time.Second}, sleeps)
}

func TestFunMoocCardLimit(t *testing.T) {
	src := source(t, "fun_mooc")
	src.SearchEndpoints = []string{"/courses/?search=python"}

	var b strings.Builder
	for i := 0; i < 12; i++ {
		b.WriteString(`<div class="course-card"><h3>Cours de python</h3><a href="/c/`)
		b.WriteString(string(rune('a' + i)))
		b.WriteString(`">voir</a></div>`)
	}
	d := &fakeDownloader{pages: map[string]string{
		"https://www.fun-mooc.fr/courses/?search=python": b.String(),
	}}
	records, err := newTestTable(d, nil)[registry.KindFunMooc].Analyze(src)
	require.NoError(t, err)
	assert.Len(t, records, 8)
}

func TestFunMoocEscapesQuery(t *testing.T) {
	src := source(t, "fun_mooc")
	src.SearchEndpoints = []string{"/courses/?search=numérique"}

	d := &fakeDownloader{}
	_, err := newTestTable(d, nil)[registry.KindFunMooc].Analyze(src)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://www.fun-mooc.fr/courses/?search=num%C3%A9rique"}, d.fetched)
}

func TestRobotsDisallowSkipsSource(t *testing.T) {
	d := &fakeDownloader{disallow: true}
	var sleeps []time.Duration
	for _, a := range newTestTable(d, &sleeps) {
		records, err := a.Analyze(source(t, "fun_mooc"))
		require.NoError(t, err)
		assert.Empty(t, records)
	}
	assert.Empty(t, d.fetched)
	assert.Empty(t, sleeps)
}

func TestWikiversityLinks(t *testing.T) {
	src := source(t, "wikiversity_fr")
	src.Categories = []string{"/wiki/Catégorie:Programmation"}
	src.Sections = []string{"/wiki/Catégorie:Programmation"}

	page := `<html><body>
<div id="mw-pages">
  <a href="/wiki/Code">Code</a>
  <a href="/wiki/Langage_Python">Programmation en Python</a>
  <a href="/wiki/Peinture">Histoire de la peinture</a>
  <a>Initiation sans lien</a>
</div>
<a href="/wiki/Accueil">Initiation au menu principal</a>
</body></html>`
	d := &fakeDownloader{pages: map[string]string{
		"https://fr.wikiversity.org/wiki/Cat%C3%A9gorie:Programmation": page,
	}}
	records, err := newTestTable(d, nil)[registry.KindWikiversity].Analyze(src)
	require.NoError(t, err)

	// 重复目标只抓取一次
	assert.Len(t, d.fetched, 1)
	require.Equal(t, []string{"Programmation en Python"}, titles(records))
	assert.Equal(t, "https://fr.wikiversity.org/wiki/Langage_Python", records[0].URL)
	assert.Equal(t, "Wikiversity resource: Programmation en Python", records[0].Description)
	assert.Equal(t, "CC BY-SA", records[0].License)
}

func TestWikiversityFallsBackToAllLinks(t *testing.T) {
	src := source(t, "wikiversity_en")
	src.Sections = []string{"/wiki/Programming"}

	page := `<ul><li><a href="/wiki/Intro">Introduction to programming</a></li>
<li><a href="https://example.org/">Gardening tips</a></li></ul>`
	d := &fakeDownloader{pages: map[string]string{
		"https://en.wikiversity.org/wiki/Programming": page,
	}}
	records, err := newTestTable(d, nil)[registry.KindWikiversity].Analyze(src)
	require.NoError(t, err)
	assert.Equal(t, []string{"Introduction to programming"}, titles(records))
}

func TestMITSearchAndCoursePages(t *testing.T) {
	src := source(t, "mit_ocw")
	src.CourseSearches = []string{
		"/search/?q=python+programming",
		"/courses/6-0001/",
	}

	search := `<div class="search-result"><h3><a href="/courses/6-0001/">Introduction to Python Programming</a></h3></div>
<div class="search-result"><h3><a href="/courses/21h/">Medieval History</a></h3></div>`
	course := `<html><body><h1>6.0001 Introduction to Computer Science and Programming in Python</h1>
<div class="course-description">` + strings.Repeat("programming ", 50) + `</div>
<a href="/courses/6-0001/resources/lecture1.pdf">Lecture 1</a>
<a href="lec2/download">Download lecture 2</a>
<a href="/courses/6-0001/syllabus.pdf">Syllabus</a>
</body></html>`

	d := &fakeDownloader{pages: map[string]string{
		"https://ocw.mit.edu/search/?q=python+programming": search,
		"https://ocw.mit.edu/courses/6-0001/":               course,
	}}
	records, err := newTestTable(d, nil)[registry.KindMITOCW].Analyze(src)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Introduction to Python Programming", records[0].Title)
	assert.Equal(t, "MIT OCW Course: Introduction to Python Programming", records[0].Description)
	assert.Empty(t, records[0].Materials)

	c := records[1]
	assert.Equal(t, "https://ocw.mit.edu/courses/6-0001/", c.URL)
	assert.Len(t, []rune(c.Description), 400)
	require.Len(t, c.Materials, 1)
	assert.Equal(t, entity.Material{
		Title: "Lecture 1",
		URL:   "https://ocw.mit.edu/courses/6-0001/resources/lecture1.pdf",
		Type:  "pdf",
	}, c.Materials[0])
}

func TestMITMaterialKeywordMatchesHref(t *testing.T) {
	src := source(t, "mit_ocw")
	src.CourseSearches = []string{"/courses/6-00/"}

	course := `<html><body><h1 class="course-title">Programming basics</h1>
<a href="readings/notes.pdf">Notes</a>
<a href="assignments/download">PS1</a>
</body></html>`
	d := &fakeDownloader{pages: map[string]string{"https://ocw.mit.edu/courses/6-00/": course}}
	records, err := newTestTable(d, nil)[registry.KindMITOCW].Analyze(src)
	require.NoError(t, err)
	require.Len(t, records, 1)

	var urls []string
	for _, m := range records[0].Materials {
		urls = append(urls, m.URL)
	}
	assert.Equal(t, []string{
		"https://ocw.mit.edu/courses/6-00/readings/notes.pdf",
		"https://ocw.mit.edu/courses/6-00/assignments/download",
	}, urls)
}

func TestOpenClassroomsFreeOnly(t *testing.T) {
	src := source(t, "openclassrooms")
	src.SearchTerms = []string{"python-debutant"}

	page := `<div class="course-card"><h3>Apprenez à programmer en Python</h3><a href="/fr/courses/python">Voir</a><span class="free">Free</span></div>
<div class="course-card"><h3>Débutez en programmation HTML</h3><a href="/fr/courses/html">Voir</a><p>Cours gratuit</p></div>
<div class="course-card"><h3>Programmation avancée Python</h3><a href="/fr/courses/premium">Voir</a><p>Premium</p></div>`
	d := &fakeDownloader{pages: map[string]string{
		"https://openclassrooms.com/search/?q=python-debutant": page,
	}}
	records, err := newTestTable(d, nil)[registry.KindOpenClassrooms].Analyze(src)
	require.NoError(t, err)

	require.Equal(t, []string{"Apprenez à programmer en Python", "Débutez en programmation HTML"}, titles(records))
	for _, r := range records {
		require.NotNil(t, r.IsFree)
		assert.True(t, *r.IsFree)
		assert.Equal(t, "Free course: "+r.Title, r.Description)
	}
	assert.Equal(t, "https://openclassrooms.com/fr/courses/python", records[0].URL)
}

func TestEveryRecordHasTitleAndLink(t *testing.T) {
	src := source(t, "fun_mooc")
	src.SearchEndpoints = []string{"/s"}
	page := `<div class="course-item"><h3>Python</h3><a>no href</a></div>
<div class="course-item"><h3></h3><a href="/x">python</a></div>
<div class="course-item"><h3>Python pour tous</h3><a href="/ok">go</a></div>`
	d := &fakeDownloader{pages: map[string]string{"https://www.fun-mooc.fr/s": page}}
	records, err := newTestTable(d, nil)[registry.KindFunMooc].Analyze(src)
	require.NoError(t, err)

	require.Len(t, records, 1)
	for _, r := range records {
		assert.NotEmpty(t, r.Title)
		assert.True(t, strings.HasPrefix(r.URL, "https://"))
		assert.False(t, classifier.IsOther(r.Categories))
	}
}

func TestFunMoocClassifiesOnFullDescription(t *testing.T) {
	src := source(t, "fun_mooc")
	src.SearchEndpoints = []string{"/courses/?search=python"}

	// 唯一的关键词位于截断位置之后
	description := strings.Repeat("z", 320) + " python"
	page := `<div class="course-glimpse"><a href="/fr/cours/histoire/"><h3>Histoire médiévale</h3></a>
<p class="course-glimpse-content__description">` + description + `</p></div>`

	d := &fakeDownloader{pages: map[string]string{
		"https://www.fun-mooc.fr/courses/?search=python": page,
	}}
	records, err := newTestTable(d, nil)[registry.KindFunMooc].Analyze(src)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, []string{taxonomy.Programming}, records[0].Categories)
	assert.Equal(t, strings.Repeat("z", 300), records[0].Description)
}

func TestEntryPanicDropsOnlyThatEntry(t *testing.T) {
	src := source(t, "fun_mooc")
	src.SearchEndpoints = []string{"/courses/?search=python"}

	var b strings.Builder
	for _, slug := range []string{"a", "b", "c"} {
		b.WriteString(`<div class="course-card"><h3>Cours de python ` + slug + `</h3><a href="/c/` + slug + `">voir</a></div>`)
	}
	d := &fakeDownloader{pages: map[string]string{
		"https://www.fun-mooc.fr/courses/?search=python": b.String(),
	}}

	calls := 0
	logger := log.New()
	logger.SetOutput(io.Discard)
	table := NewTable(context.Background(), d, classifier.New(taxonomy.Default()), logger,
		WithClock(func() time.Time {
			calls++
			if calls == 2 {
				panic("broken clock")
			}
			return fixedNow
		}),
		WithSleeper(func(context.Context, time.Duration) {}),
	)

	records, err := table[registry.KindFunMooc].Analyze(src)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cours de python a", "Cours de python c"}, titles(records))
}
