package service

import (
	"context"
	"encoding/json"
	"hash/fnv"
	"math/rand"
	"school_quiz_backend/internal/model"
	"school_quiz_backend/internal/util"
	"strconv"
	"strings"
	"time"
)

// QuestionRequest 题目录入
// swagger:model QuestionRequest
type QuestionRequest struct {
	Level         int      `json:"level" binding:"required,min=1"`
	Content       string   `json:"content" binding:"required"`
	Options       []string `json:"options" binding:"required"`
	CorrectOption int      `json:"correctOption"`
	Points        int      `json:"points"`
	Enabled       *bool    `json:"enabled"`
}

// PaperQuestion 下发给学生的题目，不含答案
type PaperQuestion struct {
	ID      uint     `json:"id"`
	Content string   `json:"content"`
	Options []string `json:"options"`
	Points  int      `json:"points"`
}

// DailyPaper 当天某等级的试卷
type DailyPaper struct {
	Day              string          `json:"day"`
	Level            int             `json:"level"`
	TimeLimitMinutes int             `json:"timeLimitMinutes"`
	Attempted        bool            `json:"attempted"`
	Questions        []PaperQuestion `json:"questions"`
}

type QuestionService struct {
	Questions        QuestionStore
	Attempts         AttemptStore
	Gate             *ReleaseGate
	QuestionsPerQuiz int
	TimeLimit        time.Duration
	Now              func() time.Time
}

func NewQuestionService(questions QuestionStore, attempts AttemptStore, gate *ReleaseGate, perQuiz int, timeLimit time.Duration) *QuestionService {
	return &QuestionService{
		Questions:        questions,
		Attempts:         attempts,
		Gate:             gate,
		QuestionsPerQuiz: perQuiz,
		TimeLimit:        timeLimit,
		Now:              time.Now,
	}
}

func (r QuestionRequest) validate() error {
	if strings.TrimSpace(r.Content) == "" {
		return util.Validationf("content is required")
	}
	if len(r.Options) < 2 {
		return util.Validationf("at least two options are required")
	}
	if r.CorrectOption < 0 || r.CorrectOption >= len(r.Options) {
		return util.Validationf("correctOption must be within 0-%d", len(r.Options)-1)
	}
	return nil
}

func (r QuestionRequest) apply(q *model.Question) error {
	opts, err := json.Marshal(r.Options)
	if err != nil {
		return err
	}
	q.Level = r.Level
	q.Content = strings.TrimSpace(r.Content)
	q.Options = string(opts)
	q.CorrectOption = r.CorrectOption
	q.Points = r.Points
	if q.Points <= 0 {
		q.Points = 1
	}
	if r.Enabled != nil {
		q.Enabled = *r.Enabled
	}
	return nil
}

func (s *QuestionService) Create(ctx context.Context, authorID uint, req QuestionRequest) (*model.Question, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	q := &model.Question{CreatedBy: authorID, Enabled: true}
	if err := req.apply(q); err != nil {
		return nil, err
	}
	if err := s.Questions.Create(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) Update(ctx context.Context, id uint, req QuestionRequest) (*model.Question, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	q, err := s.Questions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := req.apply(q); err != nil {
		return nil, err
	}
	if err := s.Questions.Update(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Questions.FindByID(ctx, id); err != nil {
		return err
	}
	return s.Questions.Delete(ctx, id)
}

func (s *QuestionService) ListByLevel(ctx context.Context, level int) ([]model.Question, error) {
	return s.Questions.ListByLevel(ctx, level, false)
}

// paperSeed 同一天同一等级得到相同的随机种子，保证所有学生拿到同一套题
func paperSeed(day string, level int) int64 {
	h := fnv.New64a()
	h.Write([]byte(day))
	h.Write([]byte{':'})
	h.Write([]byte(strconv.Itoa(level)))
	return int64(h.Sum64())
}

// SelectDailyQuestions 从题库中按日期确定性地抽取 n 道题
func SelectDailyQuestions(pool []model.Question, day string, level, n int) []model.Question {
	selected := make([]model.Question, len(pool))
	copy(selected, pool)

	r := rand.New(rand.NewSource(paperSeed(day, level)))
	r.Shuffle(len(selected), func(i, j int) {
		selected[i], selected[j] = selected[j], selected[i]
	})

	if n > 0 && len(selected) > n {
		selected = selected[:n]
	}
	return selected
}

// DailyPaper 返回学生当天的试卷
func (s *QuestionService) DailyPaper(ctx context.Context, userID uint, level int) (*DailyPaper, error) {
	if level < 1 {
		return nil, util.Validationf("level must be positive")
	}
	day := s.Gate.DayOf(s.Now())

	pool, err := s.Questions.ListByLevel(ctx, level, true)
	if err != nil {
		return nil, err
	}

	attempted := false
	if _, err := s.Attempts.FindByUserAndDate(ctx, userID, day); err == nil {
		attempted = true
	}

	paper := &DailyPaper{
		Day:              day,
		Level:            level,
		TimeLimitMinutes: int(s.TimeLimit.Minutes()),
		Attempted:        attempted,
		Questions:        []PaperQuestion{},
	}
	// 已提交过的学生不再下发题目
	if attempted {
		return paper, nil
	}

	for _, q := range SelectDailyQuestions(pool, day, level, s.QuestionsPerQuiz) {
		var opts []string
		if err := json.Unmarshal([]byte(q.Options), &opts); err != nil {
			return nil, err
		}
		paper.Questions = append(paper.Questions, PaperQuestion{
			ID:      q.ID,
			Content: q.Content,
			Options: opts,
			Points:  q.Points,
		})
	}
	return paper, nil
}
