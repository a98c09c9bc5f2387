package model

import "time"

// QuizAttempt 学生某一天的测验提交记录，提交后不再修改
// swagger:model QuizAttempt
type QuizAttempt struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         uint      `gorm:"not null;uniqueIndex:idx_attempt_user_date" json:"userId"`
	QuizDate       string    `gorm:"size:10;not null;uniqueIndex:idx_attempt_user_date;index" json:"quizDate"` // YYYY-MM-DD
	Level          int       `gorm:"not null" json:"level"`
	Score          int       `gorm:"not null" json:"score"`
	TotalQuestions int       `gorm:"not null" json:"totalQuestions"`
	ElapsedSeconds int       `gorm:"not null" json:"elapsedSeconds"`
	SubmittedAt    time.Time `gorm:"not null" json:"submittedAt"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}
