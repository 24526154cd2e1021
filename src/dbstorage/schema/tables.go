// 学习应用的content表，表结构由学习应用决定，这里只负责写入
// quiz_data以json文本存储
package schema

import (
	"time"
)

type Content struct {
	ID          int64     `xorm:"integer pk autoincr 'id'"`
	ModuleID    string    `xorm:"varchar(64) notnull 'module_id'"`
	LessonID    string    `xorm:"varchar(255) notnull unique 'lesson_id'"`
	Title       string    `xorm:"text notnull 'title'"`
	Description string    `xorm:"text 'description'"`
	VideoPath   *string   `xorm:"text 'video_path'"`
	PDFPath     *string   `xorm:"text 'pdf_path'"`
	HasQuiz     bool      `xorm:"bool 'has_quiz'"`
	XP          int       `xorm:"integer 'xp'"`
	QuizData    string    `xorm:"text 'quiz_data'"`
	SourceName  string    `xorm:"text 'source_name'"`
	LicenseInfo string    `xorm:"text 'license_info'"`
	ScrapedAt   time.Time `xorm:"datetime default CURRENT_TIMESTAMP 'scraped_at'"`
}

func (c *Content) TableName() string {
	return "content"
}
