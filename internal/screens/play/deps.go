// Package play holds the screens of one quiz run: loading, answering and
// review.
package play

import (
	"github.com/abhisek/hotsquiz/internal/logger"
	"github.com/abhisek/hotsquiz/internal/quizgen"
	"github.com/abhisek/hotsquiz/internal/store"
)

// Deps are the collaborators shared by the quiz screens.
type Deps struct {
	Generator quizgen.Generator

	// Events records submitted quizzes. May be nil.
	Events store.EventRepo

	// Log may be nil.
	Log *logger.Logger
}

// Logger returns Log, or a no-op logger when it is unset.
func (d Deps) Logger() *logger.Logger {
	if d.Log == nil {
		return logger.Nop()
	}
	return d.Log
}
