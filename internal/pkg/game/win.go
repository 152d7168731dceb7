package game

const (
	CardSize        = 5
	CardSquares     = CardSize * CardSize
	FreeSquareIndex = 12
)

// HasBingo reports whether a 5x5 row-major grid of verified cells contains a
// full row, a full column, or a full diagonal.
func HasBingo(cells []bool) bool {
	if len(cells) != CardSquares {
		return false
	}

	for row := range CardSize {
		full := true

		for col := range CardSize {
			if !cells[row*CardSize+col] {
				full = false

				break
			}
		}

		if full {
			return true
		}
	}

	for col := range CardSize {
		full := true

		for row := range CardSize {
			if !cells[row*CardSize+col] {
				full = false

				break
			}
		}

		if full {
			return true
		}
	}

	mainDiagonal := true
	antiDiagonal := true

	for i := range CardSize {
		if !cells[i*CardSize+i] {
			mainDiagonal = false
		}

		if !cells[i*CardSize+(CardSize-1-i)] {
			antiDiagonal = false
		}
	}

	return mainDiagonal || antiDiagonal
}
