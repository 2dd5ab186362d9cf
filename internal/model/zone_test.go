package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func timePtr(t time.Time) *time.Time {
	return &t
}

func TestNewZoneCatalog_GridResolution(t *testing.T) {
	t.Run("ZoneWithOwnGrid", func(t *testing.T) {
		zone := &Zone{ID: "vip", Name: "VIP", Grid: NewSeatGrid(4, 6)}
		catalog := NewZoneCatalog(10, 12, []*Zone{zone})

		require.NotNil(t, zone.Grid)
		assert.Equal(t, 4, zone.Grid.Rows)
		assert.Equal(t, 6, zone.Grid.Cols)
		assert.Equal(t, 10, catalog.GlobalRows)
	})

	t.Run("ZoneWithoutGridInheritsGlobal", func(t *testing.T) {
		zone := &Zone{ID: "ga", Name: "GA"}
		NewZoneCatalog(10, 12, []*Zone{zone})

		require.NotNil(t, zone.Grid)
		assert.Equal(t, 10, zone.Grid.Rows)
		assert.Equal(t, 12, zone.Grid.Cols)
	})

	t.Run("ZeroDimensionGridInheritsGlobal", func(t *testing.T) {
		grid := NewSeatGrid(0, 6)
		grid.ReplaceOccupied(nil)
		zone := &Zone{ID: "ga", Name: "GA", Grid: grid}
		NewZoneCatalog(10, 12, []*Zone{zone})

		assert.Equal(t, 10, zone.Grid.Rows)
		assert.Equal(t, 12, zone.Grid.Cols)
	})

	t.Run("ResolvedOnce", func(t *testing.T) {
		// 尺寸在建立目錄時解析一次，之後改全域值不影響已解析的分區
		zone := &Zone{ID: "ga", Name: "GA"}
		catalog := NewZoneCatalog(10, 12, []*Zone{zone})
		catalog.GlobalRows = 99

		assert.Equal(t, 10, zone.Grid.Rows)
	})
}

func TestZoneCatalog_ZoneOf(t *testing.T) {
	vip := &Zone{ID: "vip", Name: "VIP", Grid: NewSeatGrid(3, 3)}
	catalog := NewZoneCatalog(3, 3, []*Zone{vip})

	found, ok := catalog.ZoneOf("vip")
	assert.True(t, ok)
	assert.Same(t, vip, found)

	_, ok = catalog.ZoneOf("nope")
	assert.False(t, ok)
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "980", FormatPrice(980))
	assert.Equal(t, "5,000", FormatPrice(5000))
	assert.Equal(t, "1,234,567", FormatPrice(1234567))
}

func TestZoneCatalog_PriceSummary(t *testing.T) {
	zones := []*Zone{
		{ID: "vip", Name: "VIP", Grid: NewSeatGrid(3, 3), Price: floatPtr(5000)},
		{ID: "ga", Name: "GA", Grid: NewSeatGrid(3, 3), Price: floatPtr(1500)},
		{ID: "standing", Name: "Standing", Grid: NewSeatGrid(3, 3)}, // 未定價
	}
	catalog := NewZoneCatalog(3, 3, zones)

	assert.Equal(t, "VIP $5,000 / GA $1,500 / Standing", catalog.PriceSummary())
}

func TestSalesWindow_Contains(t *testing.T) {
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 30, 23, 59, 0, 0, time.UTC)
	window := SalesWindow{Start: timePtr(start), End: timePtr(end)}

	t.Run("InsideWindow", func(t *testing.T) {
		assert.True(t, window.Contains(start))
		assert.True(t, window.Contains(start.Add(time.Hour)))
	})

	t.Run("OutsideWindow", func(t *testing.T) {
		assert.False(t, window.Contains(start.Add(-time.Minute)))
		assert.False(t, window.Contains(end))
	})

	t.Run("MissingEndpoint", func(t *testing.T) {
		assert.False(t, SalesWindow{Start: timePtr(start)}.Contains(start))
		assert.False(t, SalesWindow{}.Contains(start))
	})
}
