package board

// Cell is one grid position. Adjacent is only meaningful when Mine is false.
type Cell struct {
	Mine     bool
	Revealed bool
	Flagged  bool
	Adjacent int
}

// Encode returns the two character save token: M or E, then R or H.
func (c Cell) Encode() string {
	mine, shown := byte('E'), byte('H')
	if c.Mine {
		mine = 'M'
	}
	if c.Revealed {
		shown = 'R'
	}
	return string([]byte{mine, shown})
}

// Decode applies a save token to the cell. Tokens that are not exactly two
// characters leave the cell untouched and return false. Adjacent and Flagged
// are not part of the encoding and are kept as they are.
func (c *Cell) Decode(token string) bool {
	if len(token) != 2 {
		return false
	}
	c.Mine = token[0] == 'M'
	c.Revealed = token[1] == 'R'
	return true
}

func (c *Cell) reset() {
	*c = Cell{}
}
