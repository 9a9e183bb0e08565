package board

import "fmt"

// squareLetterDigit renders a row-major 0..8 index as a Wikipedia-style
// column letter + row digit pair: 0 -> "A3", 4 -> "B2", 8 -> "C1".
func squareLetterDigit(idx int) (letter byte, digit byte) {
	return 'A' + byte(idx%3), '3' - byte(idx/3)
}

// MoveString renders cell as a four-character move notation: sub-board
// letter+digit followed by within-sub-board letter+digit, e.g. "B1c3".
// Never used on the search hot path; only the tests call it.
func MoveString(cell int) string {
	big, small := cell/9, cell%9
	bl, bd := squareLetterDigit(big)
	sl, sd := squareLetterDigit(small)
	return string([]byte{bl, bd, sl + ('a' - 'A'), sd})
}

// ParseMove is the inverse of MoveString.
func ParseMove(s string) (int, error) {
	if len(s) != 4 {
		return 0, fmt.Errorf("board: malformed move notation %q", s)
	}
	big, err := parseSquareLetterDigit(s[0], s[1], 'A')
	if err != nil {
		return 0, fmt.Errorf("board: malformed move notation %q: %w", s, err)
	}
	small, err := parseSquareLetterDigit(s[2], s[3], 'a')
	if err != nil {
		return 0, fmt.Errorf("board: malformed move notation %q: %w", s, err)
	}
	return big*9 + small, nil
}

func parseSquareLetterDigit(letter, digit, base byte) (int, error) {
	if letter < base || letter > base+2 || digit < '1' || digit > '3' {
		return 0, fmt.Errorf("out of range letter=%q digit=%q", letter, digit)
	}
	col := int(letter - base)
	row := int('3' - digit)
	return row*3 + col, nil
}
