package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tylervsnyc/chess-learning-tree/internal/db"
	"github.com/tylervsnyc/chess-learning-tree/pkg/lessons"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	queryTimeout = time.Second
	ratingWindow = 100
)

var (
	ErrLessonNotFound = errors.New("lesson not found")
	ErrNoPuzzle       = errors.New("no puzzle for rating")
)

type LessonRepository interface {
	UpsertLessonSet(ctx context.Context, set lessons.LessonPuzzleSet) error

	GetLessonSet(ctx context.Context, lessonID string) (lessons.LessonPuzzleSet, error)

	ListLessonIDs(ctx context.Context) ([]string, error)

	// GetRandomPuzzleForRating also returns the id of the lesson holding the puzzle.
	GetRandomPuzzleForRating(ctx context.Context, rating int) (lessons.EmbeddedPuzzle, string, error)
}

type lessonRepository struct {
	collection *mongo.Collection
}

func NewLessonRepository(dbClient *db.LessonDbClient) LessonRepository {
	return &lessonRepository{dbClient.LessonCollection}
}

func (r *lessonRepository) UpsertLessonSet(ctx context.Context, set lessons.LessonPuzzleSet) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.D{{Key: "lessonId", Value: set.LessonID}}
	_, err := r.collection.ReplaceOne(ctx, filter, set, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert lesson %s: %w", set.LessonID, err)
	}
	return nil
}

func (r *lessonRepository) GetLessonSet(ctx context.Context, lessonID string) (lessons.LessonPuzzleSet, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var set lessons.LessonPuzzleSet
	err := r.collection.FindOne(ctx, bson.D{{Key: "lessonId", Value: lessonID}}).Decode(&set)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return lessons.LessonPuzzleSet{}, fmt.Errorf("%w: %s", ErrLessonNotFound, lessonID)
	}
	if err != nil {
		return lessons.LessonPuzzleSet{}, fmt.Errorf("get lesson %s: %w", lessonID, err)
	}
	if set.Puzzles == nil {
		set.Puzzles = []lessons.EmbeddedPuzzle{}
	}
	return set, nil
}

func (r *lessonRepository) ListLessonIDs(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "lessonId", Value: 1}}).
		SetProjection(bson.D{{Key: "lessonId", Value: 1}, {Key: "_id", Value: 0}})
	cur, err := r.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}

	var docs []struct {
		LessonID string `bson:"lessonId"`
	}
	if err = cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.LessonID)
	}
	return ids, nil
}

type sampledPuzzle struct {
	LessonID string                 `bson:"lessonId"`
	Puzzle   lessons.EmbeddedPuzzle `bson:"puzzles"`
}

func randomPuzzlePipeline(rating int) mongo.Pipeline {
	unwindStage := bson.D{{Key: "$unwind", Value: "$puzzles"}}
	matchStage := bson.D{{Key: "$match", Value: bson.D{{
		Key: "puzzles.rating", Value: bson.D{
			{Key: "$gte", Value: rating - ratingWindow},
			{Key: "$lte", Value: rating + ratingWindow},
		},
	}}}}
	sampleStage := bson.D{{Key: "$sample", Value: bson.D{{Key: "size", Value: 1}}}}
	projectStage := bson.D{{Key: "$project", Value: bson.D{
		{Key: "_id", Value: 0},
		{Key: "lessonId", Value: 1},
		{Key: "puzzles", Value: 1},
	}}}
	return mongo.Pipeline{unwindStage, matchStage, sampleStage, projectStage}
}

func (r *lessonRepository) GetRandomPuzzleForRating(ctx context.Context, rating int) (lessons.EmbeddedPuzzle, string, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := r.collection.Aggregate(ctx, randomPuzzlePipeline(rating))
	if err != nil {
		return lessons.EmbeddedPuzzle{}, "", fmt.Errorf("sample puzzle: %w", err)
	}

	var sampled []sampledPuzzle
	if err = cursor.All(ctx, &sampled); err != nil {
		return lessons.EmbeddedPuzzle{}, "", fmt.Errorf("sample puzzle: %w", err)
	}
	if len(sampled) == 0 {
		return lessons.EmbeddedPuzzle{}, "", fmt.Errorf("%w %d", ErrNoPuzzle, rating)
	}
	return sampled[0].Puzzle, sampled[0].LessonID, nil
}
