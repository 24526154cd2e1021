package filestorage

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/andrewyi/educrawler/src/entity"
)

var csvHeader = []string{"Module", "Title", "Source", "URL", "Categories", "License"}

// CSVFileStorage 面向学习平台导入的扁平摘要，无法确定模块的记录Module列留空
type CSVFileStorage struct {
	location string
	fileName string
	resolver ModuleResolver
}

func NewCSVFileStorage(location string, fileName string, resolver ModuleResolver) *CSVFileStorage {
	return &CSVFileStorage{
		location: location,
		fileName: fileName,
		resolver: resolver,
	}
}

func (s *CSVFileStorage) Store(records []entity.CourseRecord) (string, error) {
	if err := os.MkdirAll(s.location, os.ModePerm); err != nil {
		return "", err
	}
	fp := filepath.Join(s.location, s.fileName)

	f, err := os.Create(fp)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return "", err
	}
	for _, r := range records {
		var module string
		if s.resolver != nil {
			module, _ = s.resolver.Resolve(r)
		}
		row := []string{module, r.Title, r.Source, r.URL, strings.Join(r.Categories, ", "), r.License}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	return fp, w.Error()
}
