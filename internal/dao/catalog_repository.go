package dao

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/tylervsnyc/chess-learning-tree/pkg/lessons"
)

// catalogRepository serves a LessonRepository straight from memory. The
// backend falls back to it when no Mongo address is configured.
type catalogRepository struct {
	mu   sync.Mutex
	sets map[string]lessons.LessonPuzzleSet
	rnd  *rand.Rand
}

func NewCatalogRepository(c *lessons.Catalog, seed int64) LessonRepository {
	sets := make(map[string]lessons.LessonPuzzleSet)
	for _, set := range c.Lessons() {
		sets[set.LessonID] = set
	}
	return &catalogRepository{
		sets: sets,
		rnd:  rand.New(rand.NewSource(seed)),
	}
}

func (r *catalogRepository) UpsertLessonSet(_ context.Context, set lessons.LessonPuzzleSet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if set.Puzzles == nil {
		set.Puzzles = []lessons.EmbeddedPuzzle{}
	}
	r.sets[set.LessonID] = set
	return nil
}

func (r *catalogRepository) GetLessonSet(_ context.Context, lessonID string) (lessons.LessonPuzzleSet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.sets[lessonID]
	if !ok {
		return lessons.LessonPuzzleSet{}, fmt.Errorf("%w: %s", ErrLessonNotFound, lessonID)
	}
	return set, nil
}

func (r *catalogRepository) ListLessonIDs(_ context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.sets))
	for id := range r.sets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *catalogRepository) GetRandomPuzzleForRating(_ context.Context, rating int) (lessons.EmbeddedPuzzle, string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	type candidate struct {
		puzzle   lessons.EmbeddedPuzzle
		lessonID string
	}
	ids := make([]string, 0, len(r.sets))
	for id := range r.sets {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var candidates []candidate
	for _, id := range ids {
		for _, p := range r.sets[id].Puzzles {
			if p.Rating >= rating-ratingWindow && p.Rating <= rating+ratingWindow {
				candidates = append(candidates, candidate{p, id})
			}
		}
	}
	if len(candidates) == 0 {
		return lessons.EmbeddedPuzzle{}, "", fmt.Errorf("%w %d", ErrNoPuzzle, rating)
	}
	picked := candidates[r.rnd.Intn(len(candidates))]
	return picked.puzzle, picked.lessonID, nil
}
