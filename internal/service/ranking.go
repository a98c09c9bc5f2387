package service

import (
	"school_quiz_backend/internal/config"
	"school_quiz_backend/internal/model"
	"sort"
)

// Standing 当日排名中的一条记录
type Standing struct {
	AttemptID      uint `json:"attemptId"`
	UserID         uint `json:"userId"`
	Score          int  `json:"score"`
	ElapsedSeconds int  `json:"elapsedSeconds"`
}

// RankStandings 按分数降序、用时升序排列同一天的提交。
// 分数和用时都相同时保持输入顺序（即存储插入顺序），不再引入其他排序键。
func RankStandings(attempts []model.QuizAttempt) []Standing {
	standings := make([]Standing, 0, len(attempts))
	for _, a := range attempts {
		standings = append(standings, Standing{
			AttemptID:      a.ID,
			UserID:         a.UserID,
			Score:          a.Score,
			ElapsedSeconds: a.ElapsedSeconds,
		})
	}

	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].Score != standings[j].Score {
			return standings[i].Score > standings[j].Score
		}
		return standings[i].ElapsedSeconds < standings[j].ElapsedSeconds
	})
	return standings
}

// RankOf 返回学生在已排序名次中的位置（从 1 开始），不存在时 ok 为 false
func RankOf(standings []Standing, userID uint) (rank int, ok bool) {
	for i, s := range standings {
		if s.UserID == userID {
			return i + 1, true
		}
	}
	return 0, false
}

// Tier 奖励档位
type Tier string

const (
	TierScholarship Tier = "scholarship"
	TierVoucher     Tier = "voucher"
	TierNone        Tier = "none"
)

// RewardPolicy 排名到奖励的映射规则
type RewardPolicy struct {
	TopTierMaxRank      int
	VoucherMaxRank      int
	VoucherValidityDays int
	DiscountPercent     int
}

func NewRewardPolicy(cfg config.RewardsConfig) RewardPolicy {
	return RewardPolicy{
		TopTierMaxRank:      cfg.TopTierMaxRank,
		VoucherMaxRank:      cfg.VoucherMaxRank,
		VoucherValidityDays: cfg.VoucherValidityDays,
		DiscountPercent:     cfg.DiscountPercent,
	}
}

// DefaultRewardPolicy 1-100 奖学金，101-10000 发代金券，有效期 30 天
func DefaultRewardPolicy() RewardPolicy {
	return RewardPolicy{
		TopTierMaxRank:      100,
		VoucherMaxRank:      10000,
		VoucherValidityDays: 30,
		DiscountPercent:     10,
	}
}

func (p RewardPolicy) TierFor(rank int) Tier {
	switch {
	case rank < 1:
		return TierNone
	case rank <= p.TopTierMaxRank:
		return TierScholarship
	case rank <= p.VoucherMaxRank:
		return TierVoucher
	default:
		return TierNone
	}
}
