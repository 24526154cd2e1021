package filestorage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/andrewyi/educrawler/src/entity"
)

type JSONFileStorage struct {
	location     string
	fileName     string
	targetTopics []string

	now func() time.Time
}

func NewJSONFileStorage(location string, fileName string, targetTopics []string) *JSONFileStorage {
	return &JSONFileStorage{
		location:     location,
		fileName:     fileName,
		targetTopics: targetTopics,
		now:          time.Now,
	}
}

func (s *JSONFileStorage) Store(records []entity.CourseRecord) (string, error) {
	report := BuildReport(records, s.targetTopics, s.now(), uuid.NewString())

	if err := os.MkdirAll(s.location, os.ModePerm); err != nil {
		return "", err
	}
	fp := filepath.Join(s.location, s.fileName)

	f, err := os.Create(fp)
	if err != nil {
		return "", err
	}
	defer f.Close()

	// 非ascii及html字符原样输出
	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return "", fmt.Errorf("fail to encode report: %w", err)
	}
	return fp, nil
}

// LoadReport 读取之前生成的报告，用于重新导入数据库
func LoadReport(fp string) (*Report, error) {
	data, err := os.ReadFile(fp)
	if err != nil {
		return nil, err
	}
	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("fail to decode report %s: %w", fp, err)
	}
	return &report, nil
}
