package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCellID_Deterministic(t *testing.T) {
	a := CellID(49.2827, -123.1207)
	b := CellID(49.2827, -123.1207)

	assert.NotEmpty(t, a)
	assert.Equal(t, a, b)
}

func TestCellID_DistinctForDistantPoints(t *testing.T) {
	vancouver := CellID(49.2827, -123.1207)
	miami := CellID(25.7617, -80.1918)

	assert.NotEqual(t, vancouver, miami)
}

func TestCellID_InvalidLatitude(t *testing.T) {
	assert.Empty(t, CellID(200.0, 0.0))
}
