package game

import "github.com/charmbracelet/log"

// Notifier receives HUD values whenever they change. Calls are
// fire-and-forget and happen synchronously inside Start and Step.
type Notifier interface {
	ScoreChanged(score int)
	LivesChanged(lives int)
	LevelChanged(level int)
}

// MultiNotifier fans every change out to all of its members. Nil members
// are skipped.
type MultiNotifier []Notifier

func (m MultiNotifier) ScoreChanged(score int) {
	for _, n := range m {
		if n != nil {
			n.ScoreChanged(score)
		}
	}
}

func (m MultiNotifier) LivesChanged(lives int) {
	for _, n := range m {
		if n != nil {
			n.LivesChanged(lives)
		}
	}
}

func (m MultiNotifier) LevelChanged(level int) {
	for _, n := range m {
		if n != nil {
			n.LevelChanged(level)
		}
	}
}

// LogNotifier writes HUD changes to a logger at debug level.
type LogNotifier struct {
	Logger *log.Logger
}

func (n LogNotifier) ScoreChanged(score int) {
	if n.Logger != nil {
		n.Logger.Debug("score changed", "score", score)
	}
}

func (n LogNotifier) LivesChanged(lives int) {
	if n.Logger != nil {
		n.Logger.Debug("lives changed", "lives", lives)
	}
}

func (n LogNotifier) LevelChanged(level int) {
	if n.Logger != nil {
		n.Logger.Debug("level changed", "level", level)
	}
}
