package registry

import (
	"github.com/andrewyi/educrawler/src/taxonomy"
)

// 针对单个主题补充的抓取目标，按source id归类
var topicTargets = map[string]map[string][]string{
	taxonomy.ComputerBasics: {
		"fun_mooc": {
			"/courses/?search=informatique+débutant",
			"/courses/?search=bureautique",
			"/courses/?search=ordinateur+initiation",
			"/courses/?search=numérique+formation",
			"/courses/?search=windows+débutant",
		},
		"wikiversity_fr": {
			"/wiki/Catégorie:Bureautique",
			"/wiki/Catégorie:Informatique",
			"/wiki/Département:Informatique",
		},
	},
	taxonomy.Programming: {
		"fun_mooc": {
			"/courses/?search=programmation+débutant",
			"/courses/?search=python+initiation",
			"/courses/?search=développement+web",
			"/courses/?search=javascript+cours",
			"/courses/?search=html+css",
		},
		"mit_ocw": {
			"/courses/6-0001-introduction-to-computer-science-and-programming-in-python-fall-2016/",
			"/courses/6-00-introduction-to-computer-science-and-programming-fall-2008/",
			"/courses/6-034-artificial-intelligence-fall-2010/",
		},
		"openclassrooms": {
			"python-debutant",
			"javascript-debutant",
			"html-css-debutant",
			"programmation-debutant",
		},
	},
	taxonomy.EnglishLearning: {
		"fun_mooc": {
			"/courses/?search=anglais+débutant",
			"/courses/?search=english+course",
			"/courses/?search=langue+anglaise",
			"/courses/?search=business+english",
		},
		"wikiversity_fr": {
			"/wiki/Catégorie:Anglais",
		},
		"wikiversity_en": {
			"/wiki/English_language_learning",
		},
	},
}

// Focus 返回新的注册表，为给定主题追加专门的抓取目标，重复目标只保留一次
func (r *Registry) Focus(topics []string) *Registry {
	if len(topics) == 0 {
		return r
	}
	sources := r.Sources()
	for i := range sources {
		for _, topic := range topics {
			extra := topicTargets[topic][sources[i].ID]
			if len(extra) == 0 {
				continue
			}
			sources[i] = sources[i].withTargets(extra)
		}
	}
	return &Registry{sources: sources}
}

// 按照kind追加到对应的目标列表中
func (s Source) withTargets(extra []string) Source {
	switch s.Kind {
	case KindFunMooc:
		s.SearchEndpoints = appendUnique(s.SearchEndpoints, extra)
	case KindWikiversity:
		s.Sections = appendUnique(s.Sections, extra)
	case KindMITOCW:
		s.CourseSearches = appendUnique(s.CourseSearches, extra)
	case KindOpenClassrooms:
		s.SearchTerms = appendUnique(s.SearchTerms, extra)
	}
	return s
}

func appendUnique(dst []string, extra []string) []string {
	out := append([]string(nil), dst...)
	seen := make(map[string]struct{}, len(out))
	for _, v := range out {
		seen[v] = struct{}{}
	}
	for _, v := range extra {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
