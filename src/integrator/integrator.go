// 将抓取结果写入学习应用的content表
// 每条记录单独一个事务，失败的记录不影响已经写入的记录
package integrator

import (
	"encoding/json"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/andrewyi/educrawler/src/dbstorage"
	"github.com/andrewyi/educrawler/src/dbstorage/schema"
	"github.com/andrewyi/educrawler/src/entity"
	"github.com/andrewyi/educrawler/src/util"
)

const (
	lessonSlugLength = 40
	lessonTimeLayout = "20060102150405"
)

type Result struct {
	Success          bool           `json:"success"`
	Integrated       int            `json:"integrated"`
	ModulesBreakdown map[string]int `json:"modules_breakdown"`
	Duplicates       []string       `json:"duplicates,omitempty"`
	Errors           []string       `json:"errors,omitempty"`
	Timestamp        time.Time      `json:"timestamp"`
}

type Integrator struct {
	db       *dbstorage.SimpleDBStorage
	resolver *Resolver
	xp       int
	logger   *log.Logger

	now func() time.Time
}

type Option func(*Integrator)

func WithClock(now func() time.Time) Option {
	return func(i *Integrator) {
		i.now = now
	}
}

func NewIntegrator(db *dbstorage.SimpleDBStorage, resolver *Resolver, xp int, logger *log.Logger, opts ...Option) *Integrator {
	i := &Integrator{
		db:       db,
		resolver: resolver,
		xp:       xp,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// LessonID 秒级时间戳，同一秒内同模块同标题会得到相同的id
func LessonID(module string, title string, at time.Time) string {
	slug := util.Slugify(title, lessonSlugLength)
	if slug == "" {
		slug = "lesson"
	}
	return fmt.Sprintf("%s_%s_%s", module, slug, at.Format(lessonTimeLayout))
}

func (i *Integrator) Integrate(records []entity.CourseRecord) Result {
	res := Result{
		ModulesBreakdown: make(map[string]int),
		Timestamp:        i.now(),
	}

	for _, rec := range records {
		entry := i.logger.WithFields(log.Fields{
			"title":  rec.Title,
			"source": rec.Source,
		})

		module, ok := i.resolver.Resolve(rec)
		if !ok {
			entry.Warn("no module for course, skipped")
			res.Errors = append(res.Errors, fmt.Sprintf("no module for %q", rec.Title))
			continue
		}

		row, err := i.buildRow(rec, module)
		if err != nil {
			entry.WithError(err).Error("fail to build content row")
			res.Errors = append(res.Errors, fmt.Sprintf("fail to build %q: %v", rec.Title, err))
			continue
		}

		inserted, err := i.insert(row)
		if err != nil {
			entry.WithError(err).WithField("lesson_id", row.LessonID).Error("fail to insert content")
			res.Errors = append(res.Errors, fmt.Sprintf("fail to insert %q: %v", rec.Title, err))
			continue
		}
		if !inserted {
			// lesson_id冲突，保留已有记录
			entry.WithField("lesson_id", row.LessonID).Warn("lesson id already exists, insert ignored")
			res.Duplicates = append(res.Duplicates, row.LessonID)
			continue
		}

		res.Integrated++
		res.ModulesBreakdown[module]++
	}

	res.Success = len(res.Errors) == 0
	i.logger.WithFields(log.Fields{
		"integrated": res.Integrated,
		"duplicates": len(res.Duplicates),
		"errors":     len(res.Errors),
	}).Info("integration finished")
	return res
}

func (i *Integrator) buildRow(rec entity.CourseRecord, module string) (*schema.Content, error) {
	quiz := buildQuiz(module, rec.Title, rec.Description)
	quizData, err := json.Marshal(quiz)
	if err != nil {
		return nil, err
	}

	var pdfPath *string
	if len(rec.Materials) > 0 {
		u := rec.Materials[0].URL
		pdfPath = &u
	}

	return &schema.Content{
		ModuleID:    module,
		LessonID:    LessonID(module, rec.Title, i.now()),
		Title:       rec.Title,
		Description: rec.Description,
		PDFPath:     pdfPath,
		HasQuiz:     len(quiz.Questions) > 0,
		XP:          i.xp,
		QuizData:    string(quizData),
		SourceName:  rec.Source,
		LicenseInfo: rec.License,
	}, nil
}

func (i *Integrator) insert(row *schema.Content) (bool, error) {
	t, err := i.db.NewTransaction()
	if err != nil {
		return false, err
	}
	defer t.Close()

	n, err := t.InsertContentIgnore(row)
	if err != nil {
		return false, err
	}
	if err := t.Commit(); err != nil {
		return false, err
	}
	return n > 0, nil
}
