package lessons

import (
	"math"
)

func eloCoeff(elo int) int {
	if elo >= 2400 {
		return 10
	}
	if elo >= 2000 {
		return 20
	}
	return 40
}

func expectedScore(playerRating, puzzleRating int) float64 {
	return 1 / (1 + math.Pow(10, float64(puzzleRating-playerRating)/400))
}

// UpdateRating treats a puzzle attempt as a game against the puzzle.
func UpdateRating(playerRating, puzzleRating int, solved bool) int {
	score := 0.0
	if solved {
		score = 1
	}
	coeff := eloCoeff(playerRating)
	delta := float64(coeff) * (score - expectedScore(playerRating, puzzleRating))
	return playerRating + int(math.Round(delta))
}
