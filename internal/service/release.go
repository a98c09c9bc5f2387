package service

import (
	"school_quiz_backend/internal/config"
	"school_quiz_backend/internal/util"
	"sync"
	"time"
)

// ReleaseGate 计算每日成绩公布时刻。公布时间可在运行时热更新。
type ReleaseGate struct {
	mu     sync.RWMutex
	hour   int
	minute int
	loc    *time.Location
}

func NewReleaseGate(hour, minute int, loc *time.Location) *ReleaseGate {
	if loc == nil {
		loc = time.Local
	}
	return &ReleaseGate{hour: hour, minute: minute, loc: loc}
}

func NewReleaseGateFromConfig(cfg config.QuizConfig) *ReleaseGate {
	return NewReleaseGate(cfg.ReleaseHour, cfg.ReleaseMinute, cfg.Location())
}

// Update 配置热更新时调用
func (g *ReleaseGate) Update(hour, minute int, loc *time.Location) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.hour = hour
	g.minute = minute
	if loc != nil {
		g.loc = loc
	}
}

func (g *ReleaseGate) Location() *time.Location {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.loc
}

// DayOf 返回时间点在测验时区中的日历日
func (g *ReleaseGate) DayOf(t time.Time) string {
	return t.In(g.Location()).Format(util.DateFormat)
}

// ParseDay 校验 YYYY-MM-DD 格式的日期
func (g *ReleaseGate) ParseDay(day string) (time.Time, error) {
	t, err := time.ParseInLocation(util.DateFormat, day, g.Location())
	if err != nil {
		return time.Time{}, util.Validationf("invalid day %q, expected YYYY-MM-DD", day)
	}
	return t, nil
}

// ReleaseInstant 返回指定日期的成绩公布时刻
func (g *ReleaseGate) ReleaseInstant(day string) (time.Time, error) {
	d, err := g.ParseDay(day)
	if err != nil {
		return time.Time{}, err
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	return time.Date(d.Year(), d.Month(), d.Day(), g.hour, g.minute, 0, 0, g.loc), nil
}

// Released 当前时间是否已到达公布时刻，同时返回公布时刻
func (g *ReleaseGate) Released(day string, now time.Time) (bool, time.Time, error) {
	instant, err := g.ReleaseInstant(day)
	if err != nil {
		return false, time.Time{}, err
	}
	return !now.Before(instant), instant, nil
}
