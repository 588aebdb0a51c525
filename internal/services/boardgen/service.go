package boardgen

import (
	"sort"

	"github.com/strengthsync/strengthsync/internal/dependencies/random"
	"github.com/strengthsync/strengthsync/internal/model"
)

// Service generates fresh bingo boards from the strength theme catalog
type Service struct {
	random random.Random
}

// New creates a new board generator
func New(random random.Random) *Service {
	return &Service{
		random: random,
	}
}

// ValidateSize checks that a board size is supported. The free space sits at
// the exact center, so sizes must be odd, and the catalog's 34 themes must
// cover the board without repeats, which caps the size at 5.
func ValidateSize(size int) error {
	if size != 3 && size != 5 {
		return model.ErrInvalidBoardSize
	}
	return nil
}

// Generate builds a size x size board with unique themes drawn from the
// catalog and the pre-marked free space at the center.
func (s *Service) Generate(size int) (model.Board, error) {
	if err := ValidateSize(size); err != nil {
		return model.Board{}, err
	}

	themes := model.AllThemes()
	sort.Strings(themes) // stable base order before shuffling
	random.Shuffle(s.random, themes)

	board := model.Board{
		Size:    size,
		Squares: make([][]model.Square, size),
	}

	center := size / 2
	next := 0
	for row := 0; row < size; row++ {
		board.Squares[row] = make([]model.Square, size)
		for col := 0; col < size; col++ {
			if row == center && col == center {
				board.Squares[row][col] = model.Square{
					Theme:  model.FreeSpace,
					Domain: "",
					Marked: true,
				}
				continue
			}
			theme := themes[next]
			next++
			board.Squares[row][col] = model.Square{
				Theme:  theme,
				Domain: string(model.DomainOfTheme(theme)),
			}
		}
	}

	return board, nil
}

// NewProgress builds the initial progress blob for a participant joining a
// challenge
func (s *Service) NewProgress(size int) (model.Progress, error) {
	board, err := s.Generate(size)
	if err != nil {
		return model.Progress{}, err
	}
	return model.Progress{
		Board:          board,
		CompletedLines: []string{},
		HasWon:         false,
	}, nil
}
