package lessons

import (
	"errors"
	"fmt"

	"github.com/notnil/chess"
)

var ErrInvalidPuzzle = errors.New("invalid puzzle")

func invalid(p EmbeddedPuzzle, format string, args ...interface{}) error {
	return fmt.Errorf("%w %q: %s", ErrInvalidPuzzle, p.ID, fmt.Sprintf(format, args...))
}

// NewGame sets up the puzzle position before the opponent's move.
func NewGame(p EmbeddedPuzzle) (*chess.Game, error) {
	fenFunc, err := chess.FEN(p.Fen)
	if err != nil {
		return nil, err
	}
	return chess.NewGame(fenFunc), nil
}

// PlayUCI plays a coordinate move, failing if it is not legal in the
// current position.
func PlayUCI(game *chess.Game, uci string) error {
	m, err := chess.UCINotation{}.Decode(game.Position(), uci)
	if err != nil {
		return err
	}
	if err := game.Move(m); err != nil {
		return fmt.Errorf("illegal move %s in %s: %w", uci, game.FEN(), err)
	}
	return nil
}

// SolverColor is the side that answers the setup move.
func (p EmbeddedPuzzle) SolverColor() (chess.Color, error) {
	game, err := NewGame(p)
	if err != nil {
		return chess.NoColor, err
	}
	return game.Position().Turn().Other(), nil
}

func ValidatePuzzle(p EmbeddedPuzzle) error {
	if p.ID == "" {
		return invalid(p, "empty id")
	}
	if p.Rating <= 0 {
		return invalid(p, "rating %d is not positive", p.Rating)
	}
	moves := p.MoveList()
	if len(moves) < 2 {
		return invalid(p, "needs a setup move and at least one solution move, got %d moves", len(moves))
	}
	game, err := NewGame(p)
	if err != nil {
		return invalid(p, "fen: %v", err)
	}
	for i, move := range moves {
		if game.Outcome() != chess.NoOutcome {
			return invalid(p, "move %d (%s) played after the game ended", i, move)
		}
		if err := PlayUCI(game, move); err != nil {
			return invalid(p, "move %d: %v", i, err)
		}
	}
	if p.HasTheme("mate") && game.Method() != chess.Checkmate {
		return invalid(p, "tagged mate but final position %s is not checkmate", game.FEN())
	}
	return nil
}

func ValidateCatalog(c *Catalog) error {
	var errs []error
	for _, set := range c.sets {
		for _, p := range set.Puzzles {
			if err := ValidatePuzzle(p); err != nil {
				errs = append(errs, fmt.Errorf("lesson %s: %w", set.LessonID, err))
			}
		}
	}
	return errors.Join(errs...)
}
