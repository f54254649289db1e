package keyword

import (
	"xlkeyword/internal/logger"
	"xlkeyword/internal/model"
	"xlkeyword/internal/sheet"
)

// SearchSheet scans s in row-major order and returns every string cell
// containing keyword. The sheet is not modified.
func SearchSheet(s sheet.Sheet, keyword string) (*model.SearchResult, error) {
	if keyword == "" {
		return nil, ErrEmptyKeyword
	}
	rows, err := s.Rows()
	if err != nil {
		return nil, err
	}
	return searchRows(s.Name(), rows, keyword), nil
}

func searchRows(name string, rows [][]model.Value, keyword string) *model.SearchResult {
	result := &model.SearchResult{
		Keyword: keyword,
		Sheet:   name,
		Matches: make([]model.Match, 0),
	}
	sheet.Each(rows, func(c sheet.Coord, v model.Value) error {
		if v.Contains(keyword) {
			result.Matches = append(result.Matches, model.Match{
				Coordinate: c.String(),
				Row:        c.Row,
				Col:        c.Col,
				Value:      v.Text,
			})
		}
		return nil
	})
	return result
}

// Search runs SearchSheet over the active sheet of path
func (o *Operator) Search(path, keyword string) (*model.SearchResult, error) {
	if keyword == "" {
		return nil, ErrEmptyKeyword
	}

	s, err := o.store.Open(path)
	if err != nil {
		return nil, ioError("search", path, err)
	}
	defer s.Close()

	result, err := SearchSheet(s, keyword)
	if err != nil {
		return nil, ioError("search", path, err)
	}

	for _, m := range result.Matches {
		logger.Debug("Match %s", m)
	}
	logger.Info("Found %d cells containing %q in %s", result.Count(), keyword, path)
	return result, nil
}
