// Package mtp serves the Minesweeper Text Protocol, a line protocol modeled
// on GTP, so scripts can drive a game engine over a pipe.
package mtp

import (
	"fmt"
	"strconv"
	"strings"
)

// MTP coordinate system:
// - Columns: A-J (left to right)
// - Rows: 1-10 (from the top of the board)
// - Example: A1 is the top-left cell, J10 the bottom-right
//
// Board coordinate system:
// - X: 0-9 (left to right)
// - Y: 0-9 (top to bottom)

// PosToVertex converts 0-indexed board coordinates to MTP notation.
// (0, 0) -> A1, (3, 4) -> D5, (9, 9) -> J10
func PosToVertex(x, y int) string {
	return fmt.Sprintf("%c%d", 'A'+rune(x), y+1)
}

// VertexToPos converts MTP notation to board coordinates.
// Letters are case-insensitive. Vertices outside a size x size board are errors.
func VertexToPos(vertex string, size int) (int, int, error) {
	vertex = strings.TrimSpace(strings.ToUpper(vertex))
	if len(vertex) < 2 {
		return 0, 0, fmt.Errorf("invalid vertex: %s", vertex)
	}

	col := int(vertex[0]) - 'A'
	if col < 0 || col >= size {
		return 0, 0, fmt.Errorf("invalid column in vertex: %s", vertex)
	}

	row, err := strconv.Atoi(vertex[1:])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid row in vertex: %s", vertex)
	}
	if row < 1 || row > size {
		return 0, 0, fmt.Errorf("vertex out of bounds: %s", vertex)
	}
	return col, row - 1, nil
}
