package lessons

import (
	"encoding/json"
	"strings"
)

type LessonPuzzleSet struct {
	LessonID   string           `json:"lessonId" bson:"lessonId" yaml:"lessonId"`
	LessonName string           `json:"lessonName" bson:"lessonName" yaml:"lessonName"`
	Puzzles    []EmbeddedPuzzle `json:"puzzles" bson:"puzzles" yaml:"puzzles"`
}

func (s LessonPuzzleSet) String() string {
	j, _ := json.MarshalIndent(s, "", "\t")
	return string(j)
}

// EmbeddedPuzzle follows the Lichess puzzle export: Fen is the position before
// the opponent's move, the first entry of Moves is that move and the rest is
// the solution.
type EmbeddedPuzzle struct {
	ID     string   `json:"id" bson:"id" yaml:"id"`
	Fen    string   `json:"fen" bson:"fen" yaml:"fen"`
	Moves  string   `json:"moves" bson:"moves" yaml:"moves"`
	Rating int      `json:"rating" bson:"rating" yaml:"rating"`
	Themes []string `json:"themes" bson:"themes" yaml:"themes"`
	URL    string   `json:"url" bson:"url" yaml:"url"`
}

func (p EmbeddedPuzzle) String() string {
	j, _ := json.MarshalIndent(p, "", "\t")
	return string(j)
}

func (p EmbeddedPuzzle) MoveList() []string {
	return strings.Fields(p.Moves)
}

func (p EmbeddedPuzzle) SetupMove() string {
	moves := p.MoveList()
	if len(moves) == 0 {
		return ""
	}
	return moves[0]
}

func (p EmbeddedPuzzle) Solution() []string {
	moves := p.MoveList()
	if len(moves) < 2 {
		return []string{}
	}
	return moves[1:]
}

func (p EmbeddedPuzzle) HasTheme(theme string) bool {
	for _, t := range p.Themes {
		if t == theme {
			return true
		}
	}
	return false
}

type LessonInfo struct {
	Name string `json:"name"`
}
