package engine

import (
	"errors"
	"fmt"

	"github.com/freeeve/uci"
	"github.com/tylervsnyc/chess-learning-tree/internal/logger"
	"github.com/tylervsnyc/chess-learning-tree/pkg/lessons"
)

var ErrNoLines = errors.New("engine returned no lines")

func compareResults(baseRes uci.ScoreResult, cmpRes uci.ScoreResult) bool {
	if baseRes.Mate {
		return cmpRes.Mate && baseRes.Score == cmpRes.Score
	}
	return !cmpRes.Mate && baseRes.Score-cmpRes.Score <= 50
}

// filterResults keeps the lines that are as good as the first one.
func filterResults(results []uci.ScoreResult) []uci.ScoreResult {
	baseRes := results[0]
	filteredResults := make([]uci.ScoreResult, 0)
	for _, item := range results {
		if len(item.BestMoves) == 0 {
			continue
		}
		if compareResults(baseRes, item) {
			filteredResults = append(filteredResults, item)
		}
	}
	return filteredResults
}

type Report struct {
	PuzzleID    string   `json:"puzzle_id"`
	Expected    string   `json:"expected"`
	EngineMoves []string `json:"engine_moves"`
	MateIn      int      `json:"mate_in,omitempty"`
	OK          bool     `json:"ok"`
}

type Verifier struct {
	analyzer Analyzer
	depth    int
	log      *logger.Logger
}

func NewVerifier(analyzer Analyzer, depth int, log *logger.Logger) *Verifier {
	return &Verifier{analyzer: analyzer, depth: depth, log: log}
}

// Verify checks that the first solution move is one of the engine's best
// answers to the setup move.
func (v *Verifier) Verify(p lessons.EmbeddedPuzzle) (Report, error) {
	report := Report{PuzzleID: p.ID}
	if err := lessons.ValidatePuzzle(p); err != nil {
		return report, err
	}
	solution := p.Solution()
	report.Expected = solution[0]

	game, err := lessons.NewGame(p)
	if err != nil {
		return report, err
	}
	if err = lessons.PlayUCI(game, p.SetupMove()); err != nil {
		return report, err
	}

	results, err := v.analyzer.Analyze(game.FEN(), v.depth)
	if err != nil {
		return report, fmt.Errorf("analyze %s: %w", p.ID, err)
	}
	if len(results) == 0 {
		return report, fmt.Errorf("%w for %s", ErrNoLines, p.ID)
	}

	if results[0].Mate {
		report.MateIn = results[0].Score
	}
	for _, res := range filterResults(results) {
		move := res.BestMoves[0]
		report.EngineMoves = append(report.EngineMoves, move)
		if move == report.Expected {
			report.OK = true
		}
	}
	v.log.Debug("verified puzzle", "puzzle_id", p.ID, "expected", report.Expected, "engine", report.EngineMoves, "ok", report.OK)
	return report, nil
}

func (v *Verifier) VerifyLesson(set lessons.LessonPuzzleSet) ([]Report, error) {
	reports := make([]Report, 0, len(set.Puzzles))
	for _, p := range set.Puzzles {
		report, err := v.Verify(p)
		if err != nil {
			return reports, fmt.Errorf("lesson %s: %w", set.LessonID, err)
		}
		reports = append(reports, report)
	}
	return reports, nil
}
