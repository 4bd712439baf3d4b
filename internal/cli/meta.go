package cli

import (
	"fmt"

	"go.simpledb/internal/storage"
)

func (s *Session) metaCommand(line string) (bool, error) {
	switch line {
	case ".exit":
		if err := s.Close(); err != nil {
			s.log.Errorf("session: close failed: %v", err)
			return true, err
		}
		return true, nil

	case ".btree":
		fmt.Fprintln(s.out, "Tree:")
		if err := s.db.PrintTree(s.out); err != nil {
			return true, err
		}
		return false, nil

	case ".constants":
		fmt.Fprintln(s.out, "Constants:")
		storage.PrintConstants(s.out)
		return false, nil
	}

	fmt.Fprintf(s.out, "Unrecognized command '%s'\n", line)
	return false, nil
}
