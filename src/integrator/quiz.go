package integrator

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// 描述中出现的长词用于生成一道额外的题目
const minQuizWordLength = 8

type Question struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Correct  int      `json:"correct"`
}

type Quiz struct {
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

var quizTemplates = map[string][]Question{
	ModuleBureautique: {
		{Question: "Quel raccourci clavier permet de sauvegarder un document Word ?", Options: []string{"Ctrl+S", "Ctrl+A", "Ctrl+Z", "Ctrl+C"}, Correct: 0},
		{Question: "Comment appelle-t-on l'intersection d'une ligne et d'une colonne ?", Options: []string{"Case", "Cellule", "Zone", "Champ"}, Correct: 1},
		{Question: "Quel symbole utilise-t-on pour commencer une formule dans Excel ?", Options: []string{"@", "#", "=", "&"}, Correct: 2},
	},
	ModuleInformatique: {
		{Question: "Que signifie l'acronyme CPU ?", Options: []string{"Computer Processing Unit", "Central Processing Unit", "Core Processing Unit", "Central Program Unit"}, Correct: 1},
		{Question: "Quel composant stocke temporairement les données en cours d'utilisation ?", Options: []string{"Disque dur", "RAM", "Processeur", "Carte graphique"}, Correct: 1},
		{Question: "Quel protocole sécurisé est utilisé pour les sites web sécurisés ?", Options: []string{"HTTP", "HTTPS", "FTP", "SMTP"}, Correct: 1},
	},
	ModuleProgrammation: {
		{Question: "Comment affiche-t-on du texte en Python ?", Options: []string{"echo()", "display()", "print()", "show()"}, Correct: 2},
		{Question: "Quel symbole utilise-t-on pour les commentaires en Python ?", Options: []string{"//", "/*", "#", "--"}, Correct: 2},
		{Question: "Scratch est un langage de programmation :", Options: []string{"Textuel", "Visuel", "Audio", "Numérique"}, Correct: 1},
	},
	ModuleCybersecurite: {
		{Question: "Quel est le meilleur type de mot de passe ?", Options: []string{"123456", "monnom", "Az3#9kL", "password"}, Correct: 2},
		{Question: "Qu'est-ce qu'un logiciel malveillant ?", Options: []string{"Un logiciel de bureautique", "Un virus informatique", "Un navigateur web", "Un éditeur de texte"}, Correct: 1},
	},
}

var distractors = []string{"photosynthèse", "gastronomie", "météorologie", "architecture", "astronomie"}

func buildQuiz(module string, title string, description string) Quiz {
	quiz := Quiz{Title: "Quiz : " + title}
	for _, q := range quizTemplates[module] {
		quiz.Questions = append(quiz.Questions, Question{
			Question: q.Question,
			Options:  append([]string(nil), q.Options...),
			Correct:  q.Correct,
		})
	}
	if q, ok := descriptionQuestion(title, description); ok {
		quiz.Questions = append(quiz.Questions, q)
	}
	return quiz
}

// 取描述中第一个足够长的词作为正确答案，位置由词长决定，保证结果可复现
func descriptionQuestion(title string, description string) (Question, bool) {
	word := longWord(description)
	if word == "" {
		return Question{}, false
	}

	var options []string
	for _, d := range distractors {
		if strings.EqualFold(d, word) {
			continue
		}
		options = append(options, d)
		if len(options) == 3 {
			break
		}
	}

	correct := utf8.RuneCountInString(word) % (len(options) + 1)
	options = append(options[:correct], append([]string{word}, options[correct:]...)...)

	return Question{
		Question: "Quel terme apparaît dans la description de « " + title + " » ?",
		Options:  options,
		Correct:  correct,
	}, true
}

func longWord(s string) string {
	for _, w := range strings.FieldsFunc(s, func(r rune) bool { return !unicode.IsLetter(r) }) {
		if utf8.RuneCountInString(w) >= minQuizWordLength {
			return strings.ToLower(w)
		}
	}
	return ""
}
