package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tylervsnyc/chess-learning-tree/internal/dao"
	"github.com/tylervsnyc/chess-learning-tree/internal/logger"
	"github.com/tylervsnyc/chess-learning-tree/pkg/lessons"
)

const defaultRating = 1500

type LessonApi struct {
	Catalog          *lessons.Catalog
	LessonRepository dao.LessonRepository
	log              *logger.Logger
}

func NewLessonApi(catalog *lessons.Catalog, repo dao.LessonRepository, log *logger.Logger) *LessonApi {
	return &LessonApi{
		Catalog:          catalog,
		LessonRepository: repo,
		log:              log,
	}
}

type lessonSummary struct {
	LessonID    string `json:"lessonId"`
	LessonName  string `json:"lessonName"`
	PuzzleCount int    `json:"puzzleCount"`
}

func (a *LessonApi) Lessons(ctx *gin.Context) {
	sets := a.Catalog.Lessons()
	res := make([]lessonSummary, 0, len(sets))
	for _, set := range sets {
		res = append(res, lessonSummary{
			LessonID:    set.LessonID,
			LessonName:  set.LessonName,
			PuzzleCount: len(set.Puzzles),
		})
	}
	ctx.JSON(http.StatusOK, res)
}

func (a *LessonApi) LessonInfo(ctx *gin.Context) {
	id := ctx.Param("lesson_id")
	info, ok := a.Catalog.GetLessonInfo(id)
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{
			"error": "lesson " + id + " not found",
		})
		return
	}
	ctx.JSON(http.StatusOK, info)
}

// LessonPuzzles answers unknown lessons with an empty list, not 404.
func (a *LessonApi) LessonPuzzles(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, a.Catalog.PuzzlesForLesson(ctx.Param("lesson_id")))
}

func (a *LessonApi) RandomPuzzle(ctx *gin.Context) {
	ratingStr := ctx.DefaultQuery("rating", strconv.Itoa(defaultRating))
	rating, err := strconv.Atoi(ratingStr)
	if err != nil || rating <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "rating should be a positive integer",
		})
		return
	}

	puzzle, lessonID, err := a.LessonRepository.GetRandomPuzzleForRating(ctx.Request.Context(), rating)
	if errors.Is(err, dao.ErrNoPuzzle) {
		ctx.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}
	if err != nil {
		a.log.Error("random puzzle failed", "rating", rating, "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"lessonId": lessonID,
		"puzzle":   puzzle,
	})
}

type attemptRequest struct {
	Rating int   `json:"rating" binding:"required,gt=0"`
	Solved *bool `json:"solved" binding:"required"`
}

func (a *LessonApi) Attempt(ctx *gin.Context) {
	id := ctx.Param("puzzle_id")
	puzzle, lessonID, ok := a.Catalog.PuzzleByID(id)
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{
			"error": "puzzle " + id + " not found",
		})
		return
	}

	var req attemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	newRating := lessons.UpdateRating(req.Rating, puzzle.Rating, *req.Solved)
	a.log.Info("puzzle attempt", "puzzle_id", id, "lesson_id", lessonID, "solved", *req.Solved, "rating", newRating)
	ctx.JSON(http.StatusOK, gin.H{
		"rating": newRating,
	})
}

func HealthCheck(ctx *gin.Context) {
	ctx.String(http.StatusOK, "ok")
}
