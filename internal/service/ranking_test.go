package service

import (
	"testing"

	"school_quiz_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func attempt(id, user uint, score, elapsed int) model.QuizAttempt {
	return model.QuizAttempt{ID: id, UserID: user, QuizDate: "2024-03-01", Score: score, TotalQuestions: 25, ElapsedSeconds: elapsed}
}

func TestRankStandingsOrdersByScoreThenElapsed(t *testing.T) {
	standings := RankStandings([]model.QuizAttempt{
		attempt(1, 10, 18, 300),
		attempt(2, 11, 22, 500),
		attempt(3, 12, 22, 400),
		attempt(4, 13, 5, 100),
	})

	require.Len(t, standings, 4)
	got := []uint{standings[0].UserID, standings[1].UserID, standings[2].UserID, standings[3].UserID}
	assert.Equal(t, []uint{12, 11, 10, 13}, got)
}

func TestRankStandingsKeepsInsertionOrderOnFullTie(t *testing.T) {
	standings := RankStandings([]model.QuizAttempt{
		attempt(7, 30, 20, 200),
		attempt(3, 31, 20, 200),
		attempt(9, 32, 20, 200),
	})

	assert.Equal(t, uint(30), standings[0].UserID)
	assert.Equal(t, uint(31), standings[1].UserID)
	assert.Equal(t, uint(32), standings[2].UserID)
}

func TestRankIsMonotonicInScore(t *testing.T) {
	var attempts []model.QuizAttempt
	for i := 0; i < 200; i++ {
		// 分数与用时交错，检验高分总是排在低分之前
		attempts = append(attempts, attempt(uint(i+1), uint(i+1), (i*37)%26, (i*53)%900))
	}
	standings := RankStandings(attempts)

	for _, a := range attempts {
		for _, b := range attempts {
			if a.Score <= b.Score {
				continue
			}
			ra, ok := RankOf(standings, a.UserID)
			require.True(t, ok)
			rb, ok := RankOf(standings, b.UserID)
			require.True(t, ok)
			assert.Less(t, ra, rb, "score %d should outrank score %d", a.Score, b.Score)
		}
	}
}

func TestRankOfMissingUser(t *testing.T) {
	standings := RankStandings([]model.QuizAttempt{attempt(1, 10, 1, 1)})

	rank, ok := RankOf(standings, 99)
	assert.False(t, ok)
	assert.Zero(t, rank)

	rank, ok = RankOf(nil, 10)
	assert.False(t, ok)
	assert.Zero(t, rank)
}

func TestTierFor(t *testing.T) {
	policy := DefaultRewardPolicy()

	cases := []struct {
		rank int
		want Tier
	}{
		{0, TierNone},
		{1, TierScholarship},
		{50, TierScholarship},
		{100, TierScholarship},
		{101, TierVoucher},
		{5000, TierVoucher},
		{10000, TierVoucher},
		{10001, TierNone},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, policy.TierFor(tc.rank), "rank %d", tc.rank)
	}
}
