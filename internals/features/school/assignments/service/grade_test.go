package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentage(t *testing.T) {
	pct, ok := Percentage(42.5, 50)
	require.True(t, ok)
	assert.InDelta(t, 85.0, pct, 1e-9)

	pct, ok = Percentage(0, 100)
	require.True(t, ok)
	assert.Zero(t, pct)

	pct, ok = Percentage(100, 100)
	require.True(t, ok)
	assert.InDelta(t, 100.0, pct, 1e-9)

	// extra credit stays above 100
	pct, ok = Percentage(110, 100)
	require.True(t, ok)
	assert.InDelta(t, 110.0, pct, 1e-9)
}

func TestPercentageNoMaxPoints(t *testing.T) {
	_, ok := Percentage(10, 0)
	assert.False(t, ok)

	_, ok = Percentage(10, -5)
	assert.False(t, ok)
}

func TestLetterGradeBoundaries(t *testing.T) {
	cases := []struct {
		pct  float64
		want string
	}{
		{100, "A+"},
		{97, "A+"},
		{96.99, "A"},
		{93, "A"},
		{92.99, "A-"},
		{90, "A-"},
		{89.99, "B+"},
		{87, "B+"},
		{86.99, "B"},
		{83, "B"},
		{82.99, "B-"},
		{80, "B-"},
		{79.99, "C+"},
		{77, "C+"},
		{76.99, "C"},
		{73, "C"},
		{72.99, "C-"},
		{70, "C-"},
		{69.99, "D+"},
		{67, "D+"},
		{66.99, "D"},
		{63, "D"},
		{62.99, "D-"},
		{60, "D-"},
		{59.99, "F"},
		{0, "F"},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.want, LetterGrade(tc.pct), "pct=%v", tc.pct)
	}
}

func TestLetterGradeIsTotal(t *testing.T) {
	// every input maps to some letter, including out-of-range values
	assert.Equal(t, "A+", LetterGrade(250))
	assert.Equal(t, "F", LetterGrade(-40))
}

func TestGradeFlowFortyTwoPointFiveOfFifty(t *testing.T) {
	pct, ok := Percentage(42.5, 50)
	require.True(t, ok)
	assert.InDelta(t, 85.0, pct, 1e-9)
	assert.Equal(t, "B", LetterGrade(pct))
}
