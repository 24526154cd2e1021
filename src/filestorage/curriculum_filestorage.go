package filestorage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/andrewyi/educrawler/src/entity"
)

const (
	CurriculumFile  = "digital_skills_curriculum.json"
	PlatformFile    = "platform_ready_data.json"
	FinalReportFile = "FINAL_REPORT.txt"
)

// CurriculumFileStorage 在同一目录下写出大纲、平台导出和最终报告，返回目录路径
type CurriculumFileStorage struct {
	location string
	xp       int
	related  []string // 本次运行生成的其他文件，列在最终报告中

	now func() time.Time
}

func NewCurriculumFileStorage(location string, xp int, related ...string) *CurriculumFileStorage {
	return &CurriculumFileStorage{
		location: location,
		xp:       xp,
		related:  related,
		now:      time.Now,
	}
}

func (s *CurriculumFileStorage) Store(records []entity.CourseRecord) (string, error) {
	if err := os.MkdirAll(s.location, os.ModePerm); err != nil {
		return "", err
	}

	at := s.now()
	cur := BuildCurriculum(records, at)
	curriculumPath := filepath.Join(s.location, CurriculumFile)
	if err := writeJSON(curriculumPath, cur); err != nil {
		return "", err
	}

	platformPath := filepath.Join(s.location, PlatformFile)
	if err := writeJSON(platformPath, BuildPlatformExport(cur, at, s.xp)); err != nil {
		return "", err
	}

	files := append(append([]string(nil), s.related...), curriculumPath, platformPath)
	var buf bytes.Buffer
	WriteFinalReport(&buf, cur, files, at)
	if err := os.WriteFile(filepath.Join(s.location, FinalReportFile), buf.Bytes(), 0o644); err != nil {
		return "", err
	}
	return s.location, nil
}

func writeJSON(fp string, v interface{}) error {
	f, err := os.Create(fp)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("fail to encode %s: %w", filepath.Base(fp), err)
	}
	return nil
}
