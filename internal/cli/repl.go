package cli

import (
	"errors"
	"io"

	"github.com/chzyer/readline"

	"go.simpledb/internal/config"
)

type lineReader interface {
	Readline() (string, error)
}

func newLineReader(cfg *config.Config) (*readline.Instance, error) {
	return readline.NewEx(&readline.Config{
		Prompt:          cfg.Prompt,
		HistoryFile:     cfg.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       ".exit",
	})
}

// Reads lines until .exit or end of input and hands each one to the session.
// A non-nil error means the database hit a fatal condition.
func runREPL(sess *Session, rl lineReader) error {
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return sess.Close()
		}
		if err != nil {
			sess.Close()
			return err
		}

		done, err := sess.Handle(line)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}
