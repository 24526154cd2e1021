package controller

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/andrewyi/educrawler/src/analyzer"
	"github.com/andrewyi/educrawler/src/entity"
	"github.com/andrewyi/educrawler/src/registry"
)

type stubAnalyzer struct {
	calls []string
	fn    func(registry.Source) ([]entity.CourseRecord, error)
}

func (s *stubAnalyzer) Analyze(src registry.Source) ([]entity.CourseRecord, error) {
	s.calls = append(s.calls, src.ID)
	return s.fn(src)
}

func recordFor(src registry.Source, title string) entity.CourseRecord {
	return entity.NewCourseRecord(src.Name, entity.RawEntry{Title: title, URL: src.BaseURL + "/c"},
		[]string{"programming"}, src.License, time.Unix(0, 0))
}

func newController(table analyzer.Table, sleeps *[]time.Duration) Controller {
	logger := log.New()
	logger.SetOutput(io.Discard)
	return NewSimpleController(context.Background(), table, 6*time.Second, logger,
		WithSleeper(func(_ context.Context, d time.Duration) { *sleeps = append(*sleeps, d) }))
}

func TestRunKeepsRegistryOrder(t *testing.T) {
	stub := &stubAnalyzer{fn: func(src registry.Source) ([]entity.CourseRecord, error) {
		return []entity.CourseRecord{recordFor(src, src.ID+" python")}, nil
	}}
	reg := registry.New(
		registry.Source{ID: "b", Name: "B", Kind: "stub", BaseURL: "https://b.example", Allowed: true},
		registry.Source{ID: "a", Name: "A", Kind: "stub", BaseURL: "https://a.example", Allowed: true},
	)

	var sleeps []time.Duration
	records := newController(analyzer.Table{"stub": stub}, &sleeps).Run(reg)

	assert.Equal(t, []string{"b", "a"}, stub.calls)
	assert.Len(t, records, 2)
	assert.Equal(t, "B", records[0].Source)
	assert.Equal(t, "A", records[1].Source)
	assert.Equal(t, []time.Duration{6 * time.Second}, sleeps)
}

func TestRunSkipsDisabledSource(t *testing.T) {
	stub := &stubAnalyzer{fn: func(src registry.Source) ([]entity.CourseRecord, error) {
		return []entity.CourseRecord{recordFor(src, "python")}, nil
	}}
	reg := registry.New(
		registry.Source{ID: "on", Name: "On", Kind: "stub", BaseURL: "https://on.example", Allowed: true},
		registry.Source{ID: "off", Name: "Off", Kind: "stub", BaseURL: "https://off.example", Allowed: false},
	)

	var sleeps []time.Duration
	records := newController(analyzer.Table{"stub": stub}, &sleeps).Run(reg)

	assert.Equal(t, []string{"on"}, stub.calls)
	for _, r := range records {
		assert.NotEqual(t, "Off", r.Source)
	}
	assert.Empty(t, sleeps)
}

func TestRunContinuesAfterFailures(t *testing.T) {
	failing := &stubAnalyzer{fn: func(registry.Source) ([]entity.CourseRecord, error) {
		return nil, errors.New("bad base url")
	}}
	panicking := &stubAnalyzer{fn: func(registry.Source) ([]entity.CourseRecord, error) {
		panic("unexpected markup")
	}}
	ok := &stubAnalyzer{fn: func(src registry.Source) ([]entity.CourseRecord, error) {
		return []entity.CourseRecord{recordFor(src, "python")}, nil
	}}
	reg := registry.New(
		registry.Source{ID: "x", Name: "X", Kind: "fail", BaseURL: "https://x.example", Allowed: true},
		registry.Source{ID: "y", Name: "Y", Kind: "panic", BaseURL: "https://y.example", Allowed: true},
		registry.Source{ID: "z", Name: "Z", Kind: "unknown", BaseURL: "https://z.example", Allowed: true},
		registry.Source{ID: "w", Name: "W", Kind: "ok", BaseURL: "https://w.example", Allowed: true},
	)

	var sleeps []time.Duration
	records := newController(analyzer.Table{"fail": failing, "panic": panicking, "ok": ok}, &sleeps).Run(reg)

	assert.Len(t, records, 1)
	assert.Equal(t, "W", records[0].Source)
	assert.Len(t, sleeps, 3)
}
