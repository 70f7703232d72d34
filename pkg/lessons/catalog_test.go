package lessons

import (
	"errors"
	"reflect"
	"testing"
)

func TestPuzzlesForLesson(t *testing.T) {
	for _, set := range LessonPuzzleSets {
		got := PuzzlesForLesson(set.LessonID)
		if !reflect.DeepEqual(got, set.Puzzles) {
			t.Fatalf("PuzzlesForLesson(%q): got=%v want=%v", set.LessonID, got, set.Puzzles)
		}
	}

	forks := PuzzlesForLesson("1.1.1")
	if len(forks) != 6 {
		t.Fatalf("PuzzlesForLesson(1.1.1): got %d puzzles, want 6", len(forks))
	}
	if info, _ := GetLessonInfo("1.1.1"); info.Name != "Easy Forks" {
		t.Fatalf("GetLessonInfo(1.1.1): got=%q", info.Name)
	}

	review := PuzzlesForLesson("1.1.R")
	if review == nil || len(review) != 0 {
		t.Fatalf("PuzzlesForLesson(1.1.R): got=%v want empty slice", review)
	}
}

func TestPuzzlesForUnknownLesson(t *testing.T) {
	for _, id := range []string{"", "nonexistent", "1.1", "1.1.1 ", "9.9.9"} {
		got := PuzzlesForLesson(id)
		if got == nil || len(got) != 0 {
			t.Fatalf("PuzzlesForLesson(%q): got=%v want empty slice", id, got)
		}
	}
}

func TestGetLessonInfo(t *testing.T) {
	for _, set := range LessonPuzzleSets {
		info, ok := GetLessonInfo(set.LessonID)
		if !ok {
			t.Fatalf("GetLessonInfo(%q): missing", set.LessonID)
		}
		if info.Name != set.LessonName {
			t.Fatalf("GetLessonInfo(%q): got=%q want=%q", set.LessonID, info.Name, set.LessonName)
		}
	}

	info, ok := GetLessonInfo("1.2.1")
	if !ok || info != (LessonInfo{Name: "Queen Mate in 1: Easy"}) {
		t.Fatalf("GetLessonInfo(1.2.1): got=%+v ok=%v", info, ok)
	}

	if info, ok := GetLessonInfo("nonexistent"); ok {
		t.Fatalf("GetLessonInfo(nonexistent): got=%+v, want absent", info)
	}
}

func TestLookupsAreIdempotent(t *testing.T) {
	first := PuzzlesForLesson("1.2.2")
	firstInfo, _ := GetLessonInfo("1.2.2")
	for i := 0; i < 3; i++ {
		if got := PuzzlesForLesson("1.2.2"); !reflect.DeepEqual(got, first) {
			t.Fatalf("call %d: got=%v want=%v", i, got, first)
		}
		if got, _ := GetLessonInfo("1.2.2"); got != firstInfo {
			t.Fatalf("call %d: got=%+v want=%+v", i, got, firstInfo)
		}
	}
}

func TestLessonIDsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, set := range LessonPuzzleSets {
		if seen[set.LessonID] {
			t.Fatalf("duplicate lesson id %q", set.LessonID)
		}
		seen[set.LessonID] = true
	}
}

func TestNewCatalogRejectsBadIDs(t *testing.T) {
	_, err := NewCatalog([]LessonPuzzleSet{
		{LessonID: "1.1.1", LessonName: "a"},
		{LessonID: "1.1.1", LessonName: "b"},
	})
	if !errors.Is(err, ErrDuplicateLesson) {
		t.Fatalf("duplicate ids: got err=%v", err)
	}

	_, err = NewCatalog([]LessonPuzzleSet{{LessonName: "no id"}})
	if !errors.Is(err, ErrEmptyLessonID) {
		t.Fatalf("empty id: got err=%v", err)
	}
}

func TestCatalogFirstMatchWins(t *testing.T) {
	c, err := NewCatalog([]LessonPuzzleSet{
		{LessonID: "2.1.1", LessonName: "Pins", Puzzles: []EmbeddedPuzzle{{ID: "p1"}}},
		{LessonID: "2.1.2", LessonName: "Skewers"},
	})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	if got := c.PuzzlesForLesson("2.1.2"); got == nil || len(got) != 0 {
		t.Fatalf("nil puzzles should read as empty: got=%v", got)
	}
	p, lessonID, ok := c.PuzzleByID("p1")
	if !ok || p.ID != "p1" || lessonID != "2.1.1" {
		t.Fatalf("PuzzleByID(p1): got=%+v lesson=%q ok=%v", p, lessonID, ok)
	}
	if _, _, ok := c.PuzzleByID("missing"); ok {
		t.Fatalf("PuzzleByID(missing): want absent")
	}
}

func TestLessonsReturnsCopy(t *testing.T) {
	c := Default()
	sets := c.Lessons()
	if len(sets) != len(LessonPuzzleSets) {
		t.Fatalf("Lessons: got %d want %d", len(sets), len(LessonPuzzleSets))
	}
	sets[0].LessonName = "changed"
	if info, _ := c.GetLessonInfo(LessonPuzzleSets[0].LessonID); info.Name == "changed" {
		t.Fatalf("Lessons must not expose the backing table")
	}
}

func TestReturnedPuzzlesAreCopies(t *testing.T) {
	c := Default()

	PuzzlesForLesson("1.1.1")[0].Rating = -1
	PuzzlesForLesson("1.1.1")[0].Themes[0] = "changed"
	c.Lessons()[0].Puzzles[0].Rating = -2
	c.Lessons()[0].Puzzles[0].Themes[0] = "changed"
	LessonPuzzleSets[0].Puzzles[0].Rating = -3
	defer func() { LessonPuzzleSets[0].Puzzles[0].Rating = 612 }()
	p, _, _ := c.PuzzleByID("k7Fq2")
	p.Themes[0] = "changed"

	got := PuzzlesForLesson("1.1.1")[0]
	if got.Rating != 612 || got.Themes[0] != "fork" {
		t.Fatalf("PuzzlesForLesson(1.1.1)[0]: got rating=%d themes=%v want rating=612 themes[0]=fork", got.Rating, got.Themes)
	}
	got = c.Lessons()[0].Puzzles[0]
	if got.Rating != 612 || got.Themes[0] != "fork" {
		t.Fatalf("Lessons()[0].Puzzles[0]: got rating=%d themes=%v", got.Rating, got.Themes)
	}
	got, _, _ = c.PuzzleByID("k7Fq2")
	if got.Rating != 612 || got.Themes[0] != "fork" {
		t.Fatalf("PuzzleByID(k7Fq2): got rating=%d themes=%v", got.Rating, got.Themes)
	}
}

func TestNewCatalogCopiesInput(t *testing.T) {
	sets := []LessonPuzzleSet{{
		LessonID: "2.1.1",
		Puzzles:  []EmbeddedPuzzle{{ID: "p1", Rating: 700, Themes: []string{"pin"}}},
	}}
	c, err := NewCatalog(sets)
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	sets[0].Puzzles[0].Rating = 1
	sets[0].Puzzles[0].Themes[0] = "changed"

	got := c.PuzzlesForLesson("2.1.1")[0]
	if got.Rating != 700 || got.Themes[0] != "pin" {
		t.Fatalf("PuzzlesForLesson(2.1.1)[0]: got=%+v", got)
	}
}

func TestDecode(t *testing.T) {
	sets, err := Decode([]byte(`[{"lessonId":"3.1.1","lessonName":"Deflection"}]`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(sets) != 1 || sets[0].Puzzles == nil {
		t.Fatalf("Decode: got=%+v", sets)
	}
	if _, err := Decode([]byte(`{"lessonId":`)); err == nil {
		t.Fatalf("Decode: want error on malformed input")
	}
}

func TestPuzzleMoves(t *testing.T) {
	p := EmbeddedPuzzle{Moves: "d8d2  e1e8", Themes: []string{"mate", "mateIn1"}}
	if got := p.SetupMove(); got != "d8d2" {
		t.Fatalf("SetupMove: got=%q", got)
	}
	if got := p.Solution(); !reflect.DeepEqual(got, []string{"e1e8"}) {
		t.Fatalf("Solution: got=%v", got)
	}
	if !p.HasTheme("mateIn1") || p.HasTheme("fork") {
		t.Fatalf("HasTheme: wrong answer for %v", p.Themes)
	}
	empty := EmbeddedPuzzle{}
	if empty.SetupMove() != "" || len(empty.Solution()) != 0 {
		t.Fatalf("empty move list: got setup=%q solution=%v", empty.SetupMove(), empty.Solution())
	}
}
