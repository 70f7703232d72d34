package engine

import (
	"fmt"

	"github.com/freeeve/uci"
)

const multiPV = 5

// Analyzer returns the engine's principal variations at the final search
// depth, best first.
type Analyzer interface {
	Analyze(fen string, depth int) ([]uci.ScoreResult, error)
}

type Engine struct {
	e *uci.Engine
}

func NewEngine(path string, arg ...string) (*Engine, error) {
	e, err := uci.NewEngine(path, arg...)
	if err != nil {
		return nil, fmt.Errorf("start engine %s: %w", path, err)
	}

	err = e.SetOptions(uci.Options{
		MultiPV: multiPV,
		Hash:    128,
		Ponder:  false,
		OwnBook: false,
	})
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("set engine options: %w", err)
	}
	return &Engine{e}, nil
}

func (e *Engine) Analyze(fen string, depth int) ([]uci.ScoreResult, error) {
	if err := e.e.SetFEN(fen); err != nil {
		return nil, err
	}
	results, err := e.e.GoDepth(depth, uci.HighestDepthOnly)
	if err != nil {
		return nil, err
	}
	return results.Results, nil
}

func (e *Engine) Close() {
	e.e.Close()
}
