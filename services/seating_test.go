package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"findyourseat/models"
)

func TestSeatLayout_PriceOf(t *testing.T) {
	layout := DefaultSeatLayout()

	tests := []struct {
		seat string
		want int
	}{
		{"A1", 250},
		{"J10", 250},
		{"K1", 500},
		{"K18", 500},
		{"L1", 0},
		{"", 0},
		{"7", 0},
		{"a1", 0},
	}

	for _, tt := range tests {
		t.Run(tt.seat, func(t *testing.T) {
			assert.Equal(t, tt.want, layout.PriceOf(tt.seat))
		})
	}
}

func TestSeatLayout_Has(t *testing.T) {
	layout := DefaultSeatLayout()

	assert.True(t, layout.Has("A1"))
	assert.True(t, layout.Has("K18"))
	assert.False(t, layout.Has("A11"), "premium rows have ten seats")
	assert.False(t, layout.Has("K19"))
	assert.False(t, layout.Has("A0"))
	assert.False(t, layout.Has("Z1"))
	assert.False(t, layout.Has("K"))
}

func TestSeatLayout_CategoryOf(t *testing.T) {
	layout := DefaultSeatLayout()

	c, ok := layout.CategoryOf("K3")
	require.True(t, ok)
	assert.Equal(t, "Executive", c.Name)

	_, ok = layout.CategoryOf("X3")
	assert.False(t, ok)
}

func TestNewSeatLayout_RejectsOverlappingRows(t *testing.T) {
	_, err := NewSeatLayout(
		models.SeatCategory{Name: "Premium", RowLabels: []string{"A", "B"}, SeatsPerRow: 10, PricePerSeat: 250},
		models.SeatCategory{Name: "Executive", RowLabels: []string{"B", "C"}, SeatsPerRow: 18, PricePerSeat: 500},
	)
	assert.ErrorIs(t, err, ErrOverlappingRows)
}

func TestNewSeatLayout_RejectsInvalidCategories(t *testing.T) {
	tests := []struct {
		name string
		cat  models.SeatCategory
	}{
		{"zero seats", models.SeatCategory{Name: "x", RowLabels: []string{"A"}, SeatsPerRow: 0}},
		{"negative price", models.SeatCategory{Name: "x", RowLabels: []string{"A"}, SeatsPerRow: 5, PricePerSeat: -1}},
		{"empty label", models.SeatCategory{Name: "x", RowLabels: []string{""}, SeatsPerRow: 5}},
		{"digit label", models.SeatCategory{Name: "x", RowLabels: []string{"1"}, SeatsPerRow: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSeatLayout(tt.cat)
			assert.ErrorIs(t, err, ErrInvalidLayout)
		})
	}
}

func TestNewSeatLayout_CopiesRowLabels(t *testing.T) {
	rows := []string{"A"}
	layout, err := NewSeatLayout(models.SeatCategory{Name: "x", RowLabels: rows, SeatsPerRow: 2, PricePerSeat: 100})
	require.NoError(t, err)

	rows[0] = "Z"
	assert.Equal(t, []string{"A"}, layout.Categories()[0].RowLabels)
}

func TestSeatLayout_Rows(t *testing.T) {
	rows := DefaultSeatLayout().Rows()

	require.Len(t, rows, 11)
	assert.Equal(t, "A", rows[0].Label)
	assert.Equal(t, "Premium", rows[0].Category)
	assert.Len(t, rows[0].Seats, 10)
	assert.Equal(t, "A1", rows[0].Seats[0])

	last := rows[len(rows)-1]
	assert.Equal(t, "K", last.Label)
	assert.Equal(t, 500, last.Price)
	assert.Len(t, last.Seats, 18)
	assert.Equal(t, "K18", last.Seats[17])
}

func TestShowtimesAndPlaces(t *testing.T) {
	assert.True(t, IsShowtime("12:30 PM"))
	assert.False(t, IsShowtime("12:30"))
	assert.True(t, IsPlace("Kasturba Cinema"))
	assert.False(t, IsPlace("Nowhere"))
	assert.Len(t, Places, 11)
}

func BenchmarkSeatLayout_PriceOf(b *testing.B) {
	layout := DefaultSeatLayout()
	for i := 0; i < b.N; i++ {
		layout.PriceOf("K12")
	}
}
