// Package stats はゲーム結果の集計ロジックを提供する。
package stats

import (
	"math"

	"github.com/hitoshi/memorymatch/internal/model"
)

// Compute はゲーム結果の集合からサマリー統計を計算する純粋関数。
// 入力が空の場合は全フィールドゼロのStatsを返す（エラーにはしない）。
// 平均値は小数第2位に丸める。丸め方式はround half away from zero。
// 可換な集計のみのため、入力の順序は結果に影響しない。
func Compute(results []model.GameResult) model.Stats {
	if len(results) == 0 {
		return model.Stats{}
	}

	var totalScore, totalMoves, totalTime, bestScore int
	for _, r := range results {
		totalScore += r.Score
		totalMoves += r.Moves
		totalTime += r.TimeTaken
		if r.Score > bestScore {
			bestScore = r.Score
		}
	}

	n := len(results)
	return model.Stats{
		TotalGames:      n,
		AverageScore:    round2(float64(totalScore) / float64(n)),
		AverageMoves:    round2(float64(totalMoves) / float64(n)),
		AverageTime:     round2(float64(totalTime) / float64(n)),
		BestScore:       bestScore,
		TotalTimePlayed: totalTime,
	}
}

// round2 は小数第2位への丸めを行う。
// math.Roundはhalf away from zeroで丸めるため、0.005は0.01になる。
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
