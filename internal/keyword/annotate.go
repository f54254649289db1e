package keyword

import (
	"xlkeyword/internal/logger"
	"xlkeyword/internal/sheet"
)

// AnnotateResult describes a completed annotation pass
type AnnotateResult struct {
	Path    string
	Updated int
	Targets []string // Coordinates that received the message, in match order
}

// AnnotateSheet writes message into the cell right of every match of keyword.
// Matches are taken from a snapshot of the sheet before any write, so a message
// landing on a later match does not change which cells are annotated.
// The sheet is not saved.
func AnnotateSheet(s sheet.Sheet, keyword, message string) ([]string, error) {
	result, err := SearchSheet(s, keyword)
	if err != nil {
		return nil, err
	}

	targets := make([]string, 0, result.Count())
	for _, m := range result.Matches {
		target := sheet.At(m.Row, m.Col).Right()
		if err := s.SetCell(target, message); err != nil {
			return targets, err
		}
		logger.Debug("Annotated %s (next to %s) with %q", target, m.Coordinate, message)
		targets = append(targets, target.String())
	}
	return targets, nil
}

// Annotate runs AnnotateSheet on the active sheet of path and saves once.
// An empty message means DefaultMessage.
func (o *Operator) Annotate(path, keyword, message string) (*AnnotateResult, error) {
	if keyword == "" {
		return nil, ErrEmptyKeyword
	}
	if message == "" {
		message = DefaultMessage
	}

	s, err := o.store.Open(path)
	if err != nil {
		return nil, ioError("annotate", path, err)
	}
	defer s.Close()

	targets, err := AnnotateSheet(s, keyword, message)
	if err != nil {
		return nil, ioError("annotate", path, err)
	}

	if err := s.Save(); err != nil {
		return nil, ioError("annotate", path, err)
	}
	logger.Info("Updated %d cells in %s", len(targets), path)

	return &AnnotateResult{Path: path, Updated: len(targets), Targets: targets}, nil
}
