package domain

import "time"

// Exam is the write-once archive of a completed generation job. Live job
// state stays in the in-memory registry; this record survives restarts.
type Exam struct {
	ID                  string       `gorm:"type:text;primaryKey" json:"id"`
	JobID               string       `gorm:"type:text;not null;uniqueIndex" json:"job_id"`
	QuestionLanguage    string       `gorm:"type:text;not null" json:"question_language"`
	ExplanationLanguage string       `gorm:"type:text;not null" json:"explanation_language"`
	QuestionCount       int          `gorm:"not null" json:"question_count"`
	Questions           QuestionList `gorm:"type:text" json:"questions"`
	Topics              StringArray  `gorm:"type:text" json:"topics"`
	ExcelFile           string       `gorm:"type:text" json:"excel_file,omitempty"`
	CreatedAt           time.Time    `json:"created_at"`
}

// TableName returns the database table name for Exam.
func (Exam) TableName() string {
	return "exams"
}
