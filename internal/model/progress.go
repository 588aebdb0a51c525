package model

import "fmt"

// FreeSpace is the sentinel theme for the pre-marked center square.
// It is never claimable by a member action.
const FreeSpace = "FREE"

// Square is one cell of a bingo board
type Square struct {
	Theme        string   `json:"theme"`
	Domain       string   `json:"domain"`
	Marked       bool     `json:"marked"`
	MarkedBy     MemberID `json:"markedBy,omitempty"`
	MarkedByName string   `json:"markedByName,omitempty"`
}

// IsFree reports whether this is the free space sentinel
func (sq *Square) IsFree() bool {
	return sq.Theme == FreeSpace
}

// Board is a square grid of bingo squares, row-major.
// Dimensions are immutable for the lifetime of a challenge instance.
type Board struct {
	Size    int        `json:"size"`
	Squares [][]Square `json:"squares"`
}

// InBounds reports whether (row, col) is on the board
func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.Size && col >= 0 && col < b.Size
}

// At returns the square at (row, col). Callers must bounds-check first;
// out-of-range access is a programming error.
func (b *Board) At(row, col int) *Square {
	return &b.Squares[row][col]
}

// CountMarked returns the number of marked squares, including the free space
func (b *Board) CountMarked() int {
	count := 0
	for row := 0; row < b.Size; row++ {
		for col := 0; col < b.Size; col++ {
			if b.Squares[row][col].Marked {
				count++
			}
		}
	}
	return count
}

// IsFull reports whether every square on the board is marked
func (b *Board) IsFull() bool {
	return b.CountMarked() == b.Size*b.Size
}

// CompletedLines rescans the whole board and returns the identifiers of
// every fully marked line. Emission order is fixed: rows ascending, then
// columns ascending, then the main diagonal, then the anti-diagonal.
// Recomputing from scratch keeps line state a pure function of the board.
func (b *Board) CompletedLines() []string {
	lines := []string{}

	for row := 0; row < b.Size; row++ {
		complete := true
		for col := 0; col < b.Size; col++ {
			if !b.Squares[row][col].Marked {
				complete = false
				break
			}
		}
		if complete {
			lines = append(lines, RowLine(row))
		}
	}

	for col := 0; col < b.Size; col++ {
		complete := true
		for row := 0; row < b.Size; row++ {
			if !b.Squares[row][col].Marked {
				complete = false
				break
			}
		}
		if complete {
			lines = append(lines, ColLine(col))
		}
	}

	mainComplete := true
	antiComplete := true
	for i := 0; i < b.Size; i++ {
		if !b.Squares[i][i].Marked {
			mainComplete = false
		}
		if !b.Squares[i][b.Size-1-i].Marked {
			antiComplete = false
		}
	}
	if mainComplete {
		lines = append(lines, LineDiagMain)
	}
	if antiComplete {
		lines = append(lines, LineDiagAnti)
	}

	return lines
}

// Line identifiers
const (
	LineDiagMain = "diag-main"
	LineDiagAnti = "diag-anti"
)

// RowLine returns the line identifier for row i
func RowLine(i int) string {
	return fmt.Sprintf("row-%d", i)
}

// ColLine returns the line identifier for column j
func ColLine(j int) string {
	return fmt.Sprintf("col-%d", j)
}

// Progress is a participant's board state for one challenge.
// It is persisted as a JSON document on the participant record and mutated
// incrementally; it is never reset within the engine's responsibility.
type Progress struct {
	Board          Board    `json:"board"`
	CompletedLines []string `json:"completedLines"`
	HasWon         bool     `json:"hasWon"`
}

// Validate checks the structural shape of a stored progress blob before any
// indexing into it. size is the board size the owning challenge expects.
func (p *Progress) Validate(size int) error {
	if p.Board.Size != size || len(p.Board.Squares) != size {
		return ErrMalformedProgress
	}
	for _, row := range p.Board.Squares {
		if len(row) != size {
			return ErrMalformedProgress
		}
	}
	if p.CompletedLines == nil {
		return ErrMalformedProgress
	}
	center := size / 2
	if free := p.Board.At(center, center); !free.IsFree() || !free.Marked {
		return ErrMalformedProgress
	}
	return nil
}
