package service

import (
	"context"
	"errors"
	"school_quiz_backend/internal/model"
	"school_quiz_backend/internal/util"
	"school_quiz_backend/pkg/logger"
	"school_quiz_backend/pkg/monitoring"
	"school_quiz_backend/pkg/tracing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// SubmitAttemptRequest 提交测验
// swagger:model SubmitAttemptRequest
// 0 分与 0 秒都是合法值，用指针区分缺省
type SubmitAttemptRequest struct {
	Score          *int `json:"score" binding:"required,min=0"`
	TotalQuestions int  `json:"totalQuestions" binding:"required"`
	ElapsedSeconds *int `json:"elapsedSeconds" binding:"required,min=0"`
	Level          int  `json:"level" binding:"required"`
}

// ResultView 成绩查询结果；公布前只返回公布时刻
// swagger:model ResultView
type ResultView struct {
	Available      bool           `json:"available"`
	Day            string         `json:"day"`
	Reason         string         `json:"reason,omitempty"`
	ReleaseInstant *time.Time     `json:"releaseInstant,omitempty"`
	Score          *int           `json:"score,omitempty"`
	TotalQuestions *int           `json:"totalQuestions,omitempty"`
	ElapsedSeconds *int           `json:"elapsedSeconds,omitempty"`
	Rank           *int           `json:"rank,omitempty"`
	Participants   int            `json:"participants,omitempty"`
	Tier           Tier           `json:"tier,omitempty"`
	Voucher        *model.Voucher `json:"voucher,omitempty"`
}

const rankLoadTimeout = 10 * time.Second

const (
	ReasonNotReleased = "results not yet released"
	ReasonNoAttempt   = "no attempt for this day"
)

// LeaderboardEntry 排行榜条目
type LeaderboardEntry struct {
	Rank           int    `json:"rank"`
	UserID         uint   `json:"userId"`
	Name           string `json:"name"`
	Score          int    `json:"score"`
	ElapsedSeconds int    `json:"elapsedSeconds"`
}

// LeaderboardView 某天的排行榜
type LeaderboardView struct {
	Available      bool               `json:"available"`
	Day            string             `json:"day"`
	ReleaseInstant time.Time          `json:"releaseInstant"`
	Participants   int                `json:"participants"`
	Entries        []LeaderboardEntry `json:"entries,omitempty"`
}

type QuizService struct {
	Attempts  AttemptStore
	Users     UserStore
	Vouchers  *VoucherService
	Cache     StandingsCache
	Gate      *ReleaseGate
	TimeLimit time.Duration
	Now       func() time.Time

	// 公布时刻大量并发查询同一天名次时只查一次库
	rankLoads singleflight.Group
}

func NewQuizService(attempts AttemptStore, users UserStore, vouchers *VoucherService, cache StandingsCache, gate *ReleaseGate, timeLimit time.Duration) *QuizService {
	return &QuizService{
		Attempts:  attempts,
		Users:     users,
		Vouchers:  vouchers,
		Cache:     cache,
		Gate:      gate,
		TimeLimit: timeLimit,
		Now:       time.Now,
	}
}

func (r SubmitAttemptRequest) validate(timeLimit time.Duration) error {
	if r.Level < 1 {
		return util.Validationf("level must be positive")
	}
	if r.TotalQuestions < 1 {
		return util.Validationf("totalQuestions must be positive")
	}
	if r.Score == nil {
		return util.Validationf("score is required")
	}
	if r.ElapsedSeconds == nil {
		return util.Validationf("elapsedSeconds is required")
	}
	if *r.Score < 0 || *r.Score > r.TotalQuestions {
		return util.Validationf("score must be within 0-%d", r.TotalQuestions)
	}
	if *r.ElapsedSeconds < 0 {
		return util.Validationf("elapsedSeconds must not be negative")
	}
	if timeLimit > 0 && time.Duration(*r.ElapsedSeconds)*time.Second > timeLimit {
		return util.Validationf("elapsedSeconds exceeds the %d minute time limit", int(timeLimit.Minutes()))
	}
	return nil
}

// SubmitAttempt 记录当天的测验提交，每个学生每天仅一次
func (s *QuizService) SubmitAttempt(ctx context.Context, userID uint, req SubmitAttemptRequest) (*model.QuizAttempt, error) {
	if err := req.validate(s.TimeLimit); err != nil {
		return nil, err
	}

	now := s.Now()
	day := s.Gate.DayOf(now)

	ctx, span := tracing.StartSpan(ctx, "quiz.submit_attempt",
		attribute.Int("user.id", int(userID)),
		attribute.String("quiz.day", day),
	)
	defer span.End()

	existing, err := s.Attempts.FindByUserAndDate(ctx, userID, day)
	if err == nil && existing != nil {
		return nil, util.ErrAttemptExists
	}
	if err != nil && !errors.Is(err, util.ErrAttemptNotFound) {
		tracing.RecordError(span, err)
		return nil, err
	}

	attempt := &model.QuizAttempt{
		UserID:         userID,
		QuizDate:       day,
		Level:          req.Level,
		Score:          *req.Score,
		TotalQuestions: req.TotalQuestions,
		ElapsedSeconds: *req.ElapsedSeconds,
		SubmittedAt:    now,
	}
	// 并发重复提交由唯一索引兜底
	if err := s.Attempts.Create(ctx, attempt); err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	monitoring.AttemptsSubmitted.Inc()
	logger.Log.Info("quiz attempt recorded",
		zap.Uint("userID", userID),
		zap.String("day", day),
		zap.Int("score", attempt.Score),
		zap.Int("elapsed", attempt.ElapsedSeconds),
	)
	return attempt, nil
}

// resolveDay 解析日期参数，为空时取今天
func (s *QuizService) resolveDay(day string) (string, error) {
	if day == "" {
		return s.Gate.DayOf(s.Now()), nil
	}
	if _, err := s.Gate.ParseDay(day); err != nil {
		return "", err
	}
	return day, nil
}

// standings 读取当天名次，优先走缓存；缓存异常只记录日志
func (s *QuizService) standings(ctx context.Context, day string) ([]Standing, error) {
	if s.Cache != nil {
		cached, ok, err := s.Cache.Get(ctx, day)
		if err != nil {
			logger.Log.Warn("standings cache read failed", zap.String("day", day), zap.Error(err))
		} else if ok {
			return cached, nil
		}
	}

	v, err, _ := s.rankLoads.Do(day, func() (interface{}, error) {
		// 合并后的加载不随首个请求取消
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), rankLoadTimeout)
		defer cancel()

		attempts, err := s.Attempts.ListByDate(loadCtx, day)
		if err != nil {
			return nil, err
		}
		standings := RankStandings(attempts)

		if s.Cache != nil {
			if err := s.Cache.Set(loadCtx, day, standings); err != nil {
				logger.Log.Warn("standings cache write failed", zap.String("day", day), zap.Error(err))
			}
		}
		return standings, nil
	})
	if err != nil {
		return nil, err
	}
	// 结果在并发调用方之间共享，只读
	return v.([]Standing), nil
}

// GetResult 查询学生某天的成绩、排名与奖励；公布前只返回公布时刻
func (s *QuizService) GetResult(ctx context.Context, userID uint, day string) (*ResultView, error) {
	day, err := s.resolveDay(day)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	released, instant, err := s.Gate.Released(day, now)
	if err != nil {
		return nil, err
	}
	if !released {
		return &ResultView{Available: false, Day: day, Reason: ReasonNotReleased, ReleaseInstant: &instant}, nil
	}

	ctx, span := tracing.StartSpan(ctx, "quiz.get_result",
		attribute.Int("user.id", int(userID)),
		attribute.String("quiz.day", day),
	)
	defer span.End()

	attempt, err := s.Attempts.FindByUserAndDate(ctx, userID, day)
	if errors.Is(err, util.ErrAttemptNotFound) {
		return &ResultView{Available: false, Day: day, Reason: ReasonNoAttempt}, nil
	}
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	standings, err := s.standings(ctx, day)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	rank, ok := RankOf(standings, userID)
	if !ok {
		// 缓存生成之后才提交的记录，直接从库里重新排名
		if s.Cache != nil {
			if err := s.Cache.Invalidate(ctx, day); err != nil {
				logger.Log.Warn("standings cache invalidation failed", zap.String("day", day), zap.Error(err))
			}
		}
		attempts, err := s.Attempts.ListByDate(ctx, day)
		if err != nil {
			return nil, err
		}
		standings = RankStandings(attempts)
		rank, ok = RankOf(standings, userID)
		if !ok {
			return &ResultView{Available: false, Day: day, Reason: ReasonNoAttempt}, nil
		}
	}

	// 已公布的结果字段即使为 0 也要输出
	score, total, elapsed := attempt.Score, attempt.TotalQuestions, attempt.ElapsedSeconds
	view := &ResultView{
		Available:      true,
		Day:            day,
		Score:          &score,
		TotalQuestions: &total,
		ElapsedSeconds: &elapsed,
		Rank:           &rank,
		Participants:   len(standings),
		Tier:           s.Vouchers.Policy.TierFor(rank),
	}

	if view.Tier == TierVoucher {
		voucher, err := s.Vouchers.EnsureVoucher(ctx, attempt, rank)
		if err != nil {
			tracing.RecordError(span, err)
			return nil, err
		}
		view.Voucher = voucher
	}

	return view, nil
}

// Leaderboard 公布后返回当天前 limit 名
func (s *QuizService) Leaderboard(ctx context.Context, day string, limit int) (*LeaderboardView, error) {
	day, err := s.resolveDay(day)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	released, instant, err := s.Gate.Released(day, s.Now())
	if err != nil {
		return nil, err
	}
	view := &LeaderboardView{Available: released, Day: day, ReleaseInstant: instant}
	if !released {
		return view, nil
	}

	standings, err := s.standings(ctx, day)
	if err != nil {
		return nil, err
	}
	view.Participants = len(standings)

	top := standings
	if len(top) > limit {
		top = top[:limit]
	}

	ids := make([]uint, 0, len(top))
	for _, st := range top {
		ids = append(ids, st.UserID)
	}
	names := make(map[uint]string, len(ids))
	if len(ids) > 0 {
		users, err := s.Users.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, u := range users {
			names[u.ID] = u.Name
		}
	}

	for i, st := range top {
		view.Entries = append(view.Entries, LeaderboardEntry{
			Rank:           i + 1,
			UserID:         st.UserID,
			Name:           names[st.UserID],
			Score:          st.Score,
			ElapsedSeconds: st.ElapsedSeconds,
		})
	}
	return view, nil
}

// History 学生最近的提交记录
func (s *QuizService) History(ctx context.Context, userID uint, limit int) ([]model.QuizAttempt, error) {
	if limit <= 0 || limit > 100 {
		limit = 30
	}
	return s.Attempts.ListByUser(ctx, userID, limit)
}

// WipeAttempts 管理员批量清除提交记录，day 为空时清空全部
func (s *QuizService) WipeAttempts(ctx context.Context, day string) (int64, error) {
	if day != "" {
		if _, err := s.Gate.ParseDay(day); err != nil {
			return 0, err
		}
	}

	deleted, err := s.Attempts.DeleteByDate(ctx, day)
	if err != nil {
		return 0, err
	}

	if s.Cache != nil {
		if err := s.Cache.Invalidate(ctx, day); err != nil {
			logger.Log.Warn("standings cache invalidation failed", zap.String("day", day), zap.Error(err))
		}
	}

	logger.Log.Warn("quiz attempts wiped", zap.String("day", day), zap.Int64("deleted", deleted))
	return deleted, nil
}
