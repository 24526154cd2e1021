package filestorage

import (
	"github.com/andrewyi/educrawler/src/entity"
)

// FileStorage 将本次运行的全部记录写入文件，返回文件路径
type FileStorage interface {
	Store([]entity.CourseRecord) (string, error)
}

// ModuleResolver 将记录映射到目标学习应用中的模块
type ModuleResolver interface {
	Resolve(entity.CourseRecord) (string, bool)
}
