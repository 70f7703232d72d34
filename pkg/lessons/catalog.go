package lessons

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

var (
	ErrEmptyLessonID   = errors.New("lesson id is empty")
	ErrDuplicateLesson = errors.New("duplicate lesson id")
)

//go:embed data/lessons.json
var lessonsJSON []byte

// LessonPuzzleSets is the curriculum in display order. It is a copy of the
// default catalog's table, so writes to it never reach the lookups.
var LessonPuzzleSets []LessonPuzzleSet

var defaultCatalog *Catalog

func init() {
	sets, err := Decode(lessonsJSON)
	if err != nil {
		panic(fmt.Sprintf("lessons: embedded catalog: %v", err))
	}
	c, err := NewCatalog(sets)
	if err != nil {
		panic(fmt.Sprintf("lessons: embedded catalog: %v", err))
	}
	LessonPuzzleSets = c.Lessons()
	defaultCatalog = c
}

func Decode(data []byte) ([]LessonPuzzleSet, error) {
	var sets []LessonPuzzleSet
	if err := json.Unmarshal(data, &sets); err != nil {
		return nil, err
	}
	for i := range sets {
		if sets[i].Puzzles == nil {
			sets[i].Puzzles = []EmbeddedPuzzle{}
		}
	}
	return sets, nil
}

type Catalog struct {
	sets []LessonPuzzleSet
}

func NewCatalog(sets []LessonPuzzleSet) (*Catalog, error) {
	seen := make(map[string]bool, len(sets))
	for _, set := range sets {
		if set.LessonID == "" {
			return nil, ErrEmptyLessonID
		}
		if seen[set.LessonID] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateLesson, set.LessonID)
		}
		seen[set.LessonID] = true
	}
	return &Catalog{sets: cloneSets(sets)}, nil
}

func clonePuzzles(puzzles []EmbeddedPuzzle) []EmbeddedPuzzle {
	res := make([]EmbeddedPuzzle, len(puzzles))
	for i, p := range puzzles {
		p.Themes = slices.Clone(p.Themes)
		res[i] = p
	}
	return res
}

func cloneSets(sets []LessonPuzzleSet) []LessonPuzzleSet {
	res := make([]LessonPuzzleSet, len(sets))
	for i, set := range sets {
		set.Puzzles = clonePuzzles(set.Puzzles)
		res[i] = set
	}
	return res
}

// Default returns the catalog built from the embedded curriculum.
func Default() *Catalog {
	return defaultCatalog
}

func (c *Catalog) find(lessonID string) (LessonPuzzleSet, bool) {
	for _, set := range c.sets {
		if set.LessonID == lessonID {
			return set, true
		}
	}
	return LessonPuzzleSet{}, false
}

// PuzzlesForLesson returns a copy of the lesson's puzzles, or an empty slice
// for unknown lessons.
func (c *Catalog) PuzzlesForLesson(lessonID string) []EmbeddedPuzzle {
	set, ok := c.find(lessonID)
	if !ok {
		return []EmbeddedPuzzle{}
	}
	return clonePuzzles(set.Puzzles)
}

func (c *Catalog) GetLessonInfo(lessonID string) (LessonInfo, bool) {
	set, ok := c.find(lessonID)
	if !ok {
		return LessonInfo{}, false
	}
	return LessonInfo{Name: set.LessonName}, true
}

func (c *Catalog) Lessons() []LessonPuzzleSet {
	return cloneSets(c.sets)
}

// PuzzleByID also returns the id of the lesson holding the puzzle.
func (c *Catalog) PuzzleByID(puzzleID string) (EmbeddedPuzzle, string, bool) {
	for _, set := range c.sets {
		for _, p := range set.Puzzles {
			if p.ID == puzzleID {
				p.Themes = slices.Clone(p.Themes)
				return p, set.LessonID, true
			}
		}
	}
	return EmbeddedPuzzle{}, "", false
}

func PuzzlesForLesson(lessonID string) []EmbeddedPuzzle {
	return defaultCatalog.PuzzlesForLesson(lessonID)
}

func GetLessonInfo(lessonID string) (LessonInfo, bool) {
	return defaultCatalog.GetLessonInfo(lessonID)
}
