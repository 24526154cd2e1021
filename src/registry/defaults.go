package registry

func Default() *Registry {
	return New(
		Source{
			ID:      "fun_mooc",
			Name:    "FUN-MOOC (France Université Numérique)",
			Kind:    KindFunMooc,
			BaseURL: "https://www.fun-mooc.fr",
			Allowed: true,
			License: "Varies, generally open for educational use",
			SearchEndpoints: []string{
				"/courses/?search=informatique",
				"/courses/?search=programmation",
				"/courses/?search=ordinateur",
				"/courses/?search=anglais",
				"/courses/?search=english",
				"/courses/?search=numérique",
				"/courses/?search=python",
				"/courses/?search=bureautique",
			},
			Selectors: Selectors{
				CourseCards: []string{".course-glimpse", ".course-card", ".course-item"},
				Title:       []string{".course-glimpse-content h3", "h3", ".course-title"},
				Link:        []string{"a"},
				Description: []string{".course-glimpse-content__description", ".description"},
			},
		},
		Source{
			ID:      "wikiversity_fr",
			Name:    "Wikiversity French",
			Kind:    KindWikiversity,
			BaseURL: "https://fr.wikiversity.org",
			Allowed: true,
			License: "CC BY-SA",
			Categories: []string{
				"/wiki/Catégorie:Informatique",
				"/wiki/Catégorie:Programmation",
				"/wiki/Catégorie:Bureautique",
				"/wiki/Catégorie:Anglais",
				"/wiki/Catégorie:Langues",
			},
			Sections: []string{
				"/wiki/Département:Informatique",
				"/wiki/Faculté:Informatique",
			},
			Selectors: Selectors{
				CourseLinks: []string{"#mw-pages a", ".mw-category-group a", ".NavContent a"},
			},
		},
		Source{
			ID:      "wikiversity_en",
			Name:    "Wikiversity English",
			Kind:    KindWikiversity,
			BaseURL: "https://en.wikiversity.org",
			Allowed: true,
			License: "CC BY-SA",
			Sections: []string{
				"/wiki/Computer_Science",
				"/wiki/Programming",
				"/wiki/English_language_learning",
				"/wiki/Basic_computer_skills",
				"/wiki/Category:Computer_science",
				"/wiki/School:Computer_Science",
			},
		},
		Source{
			ID:      "mit_ocw",
			Name:    "MIT OpenCourseWare",
			Kind:    KindMITOCW,
			BaseURL: "https://ocw.mit.edu",
			Allowed: true,
			License: "CC BY-NC-SA",
			CourseSearches: []string{
				"/search/?q=introduction+programming",
				"/search/?q=computer+science+basics",
				"/search/?q=python+programming",
				"/courses/6-0001-introduction-to-computer-science-and-programming-in-python-fall-2016/",
				"/courses/6-00-introduction-to-computer-science-and-programming-fall-2008/",
			},
			Selectors: Selectors{
				CourseLinks: []string{".course-title a", ".search-result h3 a"},
				Title:       []string{"h1", ".course-title", ".course-header--title"},
				Description: []string{".course-description", ".course-info"},
			},
		},
		Source{
			ID:      "openclassrooms",
			Name:    "OpenClassrooms (Free Courses Only)",
			Kind:    KindOpenClassrooms,
			BaseURL: "https://openclassrooms.com",
			Allowed: true,
			License: "CC BY-SA for open courses",
			SearchTerms: []string{
				"informatique-debutant",
				"programmation-debutant",
				"python-debutant",
				"anglais-debutant",
				"bureautique",
				"ordinateur-debutant",
			},
			Selectors: Selectors{
				CourseCards: []string{".course-card", ".courseCard", ".search-result"},
				Title:       []string{"h3", ".title", ".course-title"},
				Link:        []string{"a"},
				Free:        []string{".free", ".gratuit", ".premium-free"},
			},
		},
		Source{
			ID:       "france_ioi",
			Name:     "France IOI",
			Kind:     KindFranceIOI,
			BaseURL:  "http://www.france-ioi.org",
			Allowed:  true,
			License:  "Free educational use",
			Sections: []string{"/algo/course.php", "/cours/coursAlgo.php"},
		},
	)
}
