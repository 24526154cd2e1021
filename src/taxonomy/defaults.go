package taxonomy

const (
	ComputerBasics  = "computer_basics"
	Programming     = "programming"
	EnglishLearning = "english_learning"
)

func Default() *Taxonomy {
	return New(
		Topic{
			Name: ComputerBasics,
			French: []string{
				"informatique", "ordinateur", "pc", "windows", "bureautique",
				"débutant", "initiation", "base", "fondamentaux", "découverte",
				"utilisation", "manipulation", "navigation", "internet", "email",
			},
			English: []string{
				"computer", "pc", "basic", "beginner", "introduction",
				"fundamentals", "office", "windows", "internet", "email",
			},
		},
		Topic{
			Name: Programming,
			French: []string{
				"programmation", "développement", "code", "python", "javascript",
				"html", "css", "algorithmique", "logique", "scratch", "débutant",
				"initiation", "premiers", "apprendre", "coder", "développer",
			},
			English: []string{
				"programming", "coding", "development", "python", "javascript",
				"html", "css", "algorithm", "beginner", "introduction", "learn",
			},
		},
		Topic{
			Name: EnglishLearning,
			French: []string{
				"anglais", "english", "langue", "débutant", "apprentissage",
				"conversation", "grammaire", "vocabulaire", "prononciation",
				"initiation", "niveau", "faux-débutant", "intermédiaire",
			},
			English: []string{
				"english", "language", "beginner", "learning", "conversation",
				"grammar", "vocabulary", "pronunciation", "basic", "elementary",
			},
		},
	)
}

// 补充关键词表，召回更高，误判也更多
func Supplement() *Taxonomy {
	return New(
		Topic{
			Name: ComputerBasics,
			French: []string{
				"traitement de texte", "tableur", "présentation", "office",
				"word", "excel", "powerpoint", "libre office", "open office",
				"fichier", "dossier", "système", "installation", "configuration",
			},
			English: []string{
				"word processing", "spreadsheet", "presentation", "file",
				"folder", "system", "installation", "configuration",
			},
		},
		Topic{
			Name: Programming,
			French: []string{
				"java", "c++", "premiers pas", "tutorial", "cours", "formation",
				"variables", "fonctions", "boucles", "conditions", "objets",
				"web", "site web", "application", "logiciel", "script",
			},
			English: []string{
				"java", "tutorial", "course", "variables", "functions",
				"loops", "conditions", "objects", "web", "website", "application",
			},
		},
		Topic{
			Name: EnglishLearning,
			French: []string{
				"langue anglaise", "apprendre anglais", "cours anglais", "formation",
				"business english", "anglais professionnel", "toeic", "toefl",
				"speaking", "listening", "reading", "writing", "communication",
			},
			English: []string{
				"esl", "course", "intermediate", "business english",
				"toeic", "toefl", "speaking", "listening", "reading", "writing",
			},
		},
	)
}

func Extended() *Taxonomy {
	return Default().Merge(Supplement())
}
