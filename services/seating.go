package services

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"findyourseat/models"
)

// Showtimes offered for every movie, in display order.
var Showtimes = []string{"9:00 AM", "12:30 PM", "4:00 PM", "6:30 PM", "8:30 PM"}

// Places lists the venues a booking can be made at.
var Places = []string{
	"PVR Kurla",
	"PVR Chakala",
	"Maxus Sakinaka",
	"PVR Bandra",
	"Galaxy Cinema Bandra",
	"INOX R-City Ghatkophar",
	"INOX R-Mall Thane",
	"Nexus Cinema Seawoods",
	"MovieMax Kalyan",
	"Gem Cinema Bandra",
	"Kasturba Cinema",
}

func IsShowtime(t string) bool {
	for _, s := range Showtimes {
		if s == t {
			return true
		}
	}
	return false
}

func IsPlace(p string) bool {
	for _, s := range Places {
		if s == p {
			return true
		}
	}
	return false
}

// SeatLayout maps seat identifiers to their pricing category. Row labels are
// unique across categories, so every seat has at most one price.
type SeatLayout struct {
	categories []models.SeatCategory
	byRow      map[string]int // row label -> index into categories
}

// NewSeatLayout validates the categories and indexes them by row label.
func NewSeatLayout(categories ...models.SeatCategory) (*SeatLayout, error) {
	l := &SeatLayout{
		categories: make([]models.SeatCategory, 0, len(categories)),
		byRow:      make(map[string]int),
	}

	for i, c := range categories {
		if c.SeatsPerRow <= 0 {
			return nil, fmt.Errorf("NewSeatLayout: %q: %w: seats per row must be positive", c.Name, ErrInvalidLayout)
		}
		if c.PricePerSeat < 0 {
			return nil, fmt.Errorf("NewSeatLayout: %q: %w: negative price", c.Name, ErrInvalidLayout)
		}
		for _, row := range c.RowLabels {
			if !validRowLabel(row) {
				return nil, fmt.Errorf("NewSeatLayout: %q: %w: bad row label %q", c.Name, ErrInvalidLayout, row)
			}
			if prev, dup := l.byRow[row]; dup {
				return nil, fmt.Errorf("NewSeatLayout: row %s in %q and %q: %w",
					row, categories[prev].Name, c.Name, ErrOverlappingRows)
			}
			l.byRow[row] = i
		}

		// copy so callers cannot mutate the layout
		c.RowLabels = append([]string(nil), c.RowLabels...)
		l.categories = append(l.categories, c)
	}

	return l, nil
}

// DefaultSeatLayout is the auditorium used by every venue: ten premium rows
// and one executive row at the back.
func DefaultSeatLayout() *SeatLayout {
	l, err := NewSeatLayout(
		models.SeatCategory{
			Name:         "Premium",
			RowLabels:    []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"},
			SeatsPerRow:  10,
			PricePerSeat: 250,
		},
		models.SeatCategory{
			Name:         "Executive",
			RowLabels:    []string{"K"},
			SeatsPerRow:  18,
			PricePerSeat: 500,
		},
	)
	if err != nil {
		panic(err)
	}
	return l
}

func validRowLabel(row string) bool {
	if row == "" {
		return false
	}
	for _, r := range row {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// splitSeat splits "K12" into ("K", 12). ok is false when there is no
// letter prefix or the column is not a number.
func splitSeat(seat string) (row string, col int, ok bool) {
	i := strings.IndexFunc(seat, func(r rune) bool { return !unicode.IsLetter(r) })
	if i <= 0 {
		return "", 0, false
	}
	col, err := strconv.Atoi(seat[i:])
	if err != nil {
		return "", 0, false
	}
	return seat[:i], col, true
}

// CategoryOf returns the category owning the seat's row.
func (l *SeatLayout) CategoryOf(seat string) (models.SeatCategory, bool) {
	row, _, ok := splitSeat(seat)
	if !ok {
		return models.SeatCategory{}, false
	}
	i, ok := l.byRow[row]
	if !ok {
		return models.SeatCategory{}, false
	}
	return l.categories[i], true
}

// PriceOf returns the seat's price, or 0 when no category owns its row.
func (l *SeatLayout) PriceOf(seat string) int {
	c, ok := l.CategoryOf(seat)
	if !ok {
		return 0
	}
	return c.PricePerSeat
}

// Has reports whether seat exists in the layout, column bounds included.
func (l *SeatLayout) Has(seat string) bool {
	row, col, ok := splitSeat(seat)
	if !ok {
		return false
	}
	i, ok := l.byRow[row]
	if !ok {
		return false
	}
	return col >= 1 && col <= l.categories[i].SeatsPerRow
}

func (l *SeatLayout) Categories() []models.SeatCategory {
	out := make([]models.SeatCategory, len(l.categories))
	copy(out, l.categories)
	return out
}

// SeatRow is one rendered grid row.
type SeatRow struct {
	Category string   `json:"category"`
	Label    string   `json:"label"`
	Price    int      `json:"price"`
	Seats    []string `json:"seats"`
}

// Rows returns the grid in category order, row by row.
func (l *SeatLayout) Rows() []SeatRow {
	var rows []SeatRow
	for _, c := range l.categories {
		for _, label := range c.RowLabels {
			seats := make([]string, c.SeatsPerRow)
			for col := 1; col <= c.SeatsPerRow; col++ {
				seats[col-1] = label + strconv.Itoa(col)
			}
			rows = append(rows, SeatRow{
				Category: c.Name,
				Label:    label,
				Price:    c.PricePerSeat,
				Seats:    seats,
			})
		}
	}
	return rows
}
