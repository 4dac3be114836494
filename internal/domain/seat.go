package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	DefaultTotalSeats = 100
	SeatsPerRow       = 10
)

// Seat is one selected seat on a booking: a position in the show's seating
// grid plus the price it was sold at.
type Seat struct {
	Row    string          `json:"row"`
	Number int             `json:"number"`
	Price  decimal.Decimal `json:"price"`
}

// Label returns the seat's position as a single label, e.g. "A7".
func (s Seat) Label() string {
	return SeatLabel(s.Row, s.Number)
}

func SeatLabel(row string, number int) string {
	return fmt.Sprintf("%s%d", row, number)
}

// SeatLayout is the fixed seating grid of a show. Rows are lettered from 'A'
// upwards and each row holds SeatsPerRow numbered seats, so a 100-seat show
// spans rows A-J with seat numbers 1-10.
type SeatLayout struct {
	TotalSeats int
}

func NewSeatLayout(totalSeats int) SeatLayout {
	if totalSeats <= 0 {
		totalSeats = DefaultTotalSeats
	}

	return SeatLayout{TotalSeats: totalSeats}
}

// Rows returns the number of lettered rows in the layout, including a final
// partial row when TotalSeats is not a multiple of SeatsPerRow.
func (l SeatLayout) Rows() int {
	return (l.TotalSeats + SeatsPerRow - 1) / SeatsPerRow
}

// Contains reports whether the given row letter and seat number identify a
// physical seat in the layout.
func (l SeatLayout) Contains(row string, number int) bool {
	if len(row) != 1 || row[0] < 'A' || row[0] > 'Z' {
		return false
	}

	if number < 1 || number > SeatsPerRow {
		return false
	}

	rowIndex := int(row[0] - 'A')
	if rowIndex >= l.Rows() {
		return false
	}

	return rowIndex*SeatsPerRow+number <= l.TotalSeats
}
