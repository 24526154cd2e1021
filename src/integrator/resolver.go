package integrator

import (
	"strings"

	"github.com/andrewyi/educrawler/src/entity"
)

const (
	ModuleBureautique   = "bureautique"
	ModuleInformatique  = "informatique"
	ModuleProgrammation = "programmation"
	ModuleCybersecurite = "cybersecurite"
)

type moduleKeywords struct {
	module   string
	keywords []string
}

// 按顺序匹配，越具体的模块越靠前，"password"需要先于"word"命中
var destinationKeywords = []moduleKeywords{
	{ModuleCybersecurite, []string{"cybersécurité", "sécurité", "mot de passe", "virus", "malware", "phishing", "security", "password"}},
	{ModuleBureautique, []string{"bureautique", "traitement de texte", "tableur", "word", "excel", "powerpoint", "libre office", "libreoffice", "spreadsheet"}},
	{ModuleProgrammation, []string{"programmation", "programming", "python", "javascript", "html", "css", "algorithm", "développement", "scratch", "code"}},
	{ModuleInformatique, []string{"informatique", "ordinateur", "computer", "internet", "windows", "système", "réseau", "fichier", "hardware"}},
}

// Resolver 先按分类直接映射，没有任何分类可映射时才按关键词匹配目标模块
type Resolver struct {
	moduleMap map[string]string
}

func NewResolver(moduleMap map[string]string) *Resolver {
	m := make(map[string]string, len(moduleMap))
	for k, v := range moduleMap {
		m[k] = v
	}
	return &Resolver{moduleMap: m}
}

func (r *Resolver) Resolve(rec entity.CourseRecord) (string, bool) {
	for _, c := range rec.Categories {
		if module, ok := r.moduleMap[c]; ok && module != "" {
			return module, true
		}
	}

	text := strings.ToLower(rec.Title + " " + rec.Description)
	for _, mk := range destinationKeywords {
		for _, kw := range mk.keywords {
			if strings.Contains(text, kw) {
				return mk.module, true
			}
		}
	}
	return "", false
}
