package controller

import (
	"github.com/andrewyi/educrawler/src/entity"
	"github.com/andrewyi/educrawler/src/registry"
)

type Controller interface {
	Run(*registry.Registry) []entity.CourseRecord
}
