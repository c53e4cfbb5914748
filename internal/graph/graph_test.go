package graph

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sulphur/internal/grading"
	"sulphur/internal/models"
)

func idleRates(n int) []models.NetUsageRate {
	rates := make([]models.NetUsageRate, n)
	for i := range rates {
		rates[i] = models.IdleNetUsageRate
	}
	return rates
}

// sigilGrades finds the (recent, older) grades a sigil encodes.
func sigilGrades(t *testing.T, sigil rune) (grading.MeasurementGrade, grading.MeasurementGrade) {
	t.Helper()
	for recent, row := range GraphSigils {
		for older, s := range row {
			if s == sigil {
				return grading.MeasurementGrade(recent), grading.MeasurementGrade(older)
			}
		}
	}
	t.Fatalf("unknown sigil %q", sigil)
	return 0, 0
}

func TestGraphSigilsAreDistinct(t *testing.T) {
	seen := map[rune]bool{}
	for _, row := range GraphSigils {
		for _, s := range row {
			assert.False(t, seen[s], "duplicate sigil %q", s)
			seen[s] = true
		}
	}
	assert.Len(t, seen, 16)
}

func TestRenderScenario(t *testing.T) {
	// Samples inserted oldest first as 5, 20, 60, 95.
	metrics := models.Metrics{
		CPUUsage:     []models.CPUUsage{95, 60, 20, 5},
		NetUsageRate: idleRates(4),
	}

	got, err := Render(metrics, models.MeasurementCPU)
	require.NoError(t, err)

	want := string([]rune{
		GraphSigils[grading.Low][grading.Idle],
		GraphSigils[grading.High][grading.Medium],
	})
	assert.Equal(t, want, got)
	assert.Equal(t, "⣠⣾", got)
}

func TestRenderRampIncreasesLeftToRight(t *testing.T) {
	// Newest first: the highest sample is the most recent.
	metrics := models.Metrics{
		CPUUsage:     []models.CPUUsage{99, 90, 70, 50, 30, 15, 5, 0},
		NetUsageRate: idleRates(8),
	}

	got, err := Render(metrics, models.MeasurementCPU)
	require.NoError(t, err)

	runes := []rune(got)
	require.Len(t, runes, 4)

	prev := -1
	for i, r := range runes {
		recent, older := sigilGrades(t, r)
		intensity := int(recent) + int(older)
		assert.Greater(t, intensity, prev, "glyph %d (%q) is not more intense than its left neighbour", i, r)
		prev = intensity
	}
	assert.Equal(t, GraphSigils[grading.Idle][grading.Idle], runes[0])
	assert.Equal(t, GraphSigils[grading.High][grading.High], runes[3])
}

func TestRenderNetwork(t *testing.T) {
	second := time.Second
	metrics := models.Metrics{
		CPUUsage: []models.CPUUsage{0, 0},
		NetUsageRate: []models.NetUsageRate{
			models.NetUsageRateFromUsage(models.NetUsageFromBytes(125_000_000), second),
			models.NetUsageRateFromUsage(models.NetUsageFromBytes(2_000_000), second),
		},
	}

	got, err := Render(metrics, models.MeasurementNet)
	require.NoError(t, err)
	assert.Equal(t, string(GraphSigils[grading.High][grading.Low]), got)
}

func TestRenderOddLengthIgnoresTrailingSample(t *testing.T) {
	metrics := models.Metrics{CPUUsage: []models.CPUUsage{95, 95, 95}}

	got, err := Render(metrics, models.MeasurementCPU)
	require.NoError(t, err)
	assert.Equal(t, "⣿", got)
}

func TestRenderUnknownMeasurementType(t *testing.T) {
	_, err := Render(models.Metrics{}, models.MeasurementType("disk"))
	assert.ErrorIs(t, err, models.ErrUnknownMeasurementType)
}

func TestRenderColoredKeepsGlyphs(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = noColor })

	metrics := models.Metrics{
		CPUUsage:     []models.CPUUsage{95, 90, 60, 20, 5, 0},
		NetUsageRate: idleRates(6),
	}

	plain, err := Render(metrics, models.MeasurementCPU)
	require.NoError(t, err)
	colored, err := RenderColored(metrics, models.MeasurementCPU)
	require.NoError(t, err)

	assert.NotEqual(t, plain, colored)
	assert.Contains(t, colored, lowTier.Sprint("⣀"))
	assert.Contains(t, colored, mediumTier.Sprint(string(GraphSigils[grading.Medium][grading.Low])))
	assert.Contains(t, colored, highTier.Sprint("⣿"))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("sink closed")
}

func TestWrite(t *testing.T) {
	metrics := models.Metrics{CPUUsage: []models.CPUUsage{95, 60, 20, 5}, NetUsageRate: idleRates(4)}

	var sb strings.Builder
	require.NoError(t, Write(&sb, metrics, models.MeasurementCPU, false))
	assert.Equal(t, "⣠⣾\n", sb.String())

	assert.EqualError(t, Write(failingWriter{}, metrics, models.MeasurementCPU, false), "sink closed")
}

func TestCapacity(t *testing.T) {
	assert.Equal(t, 10, Capacity(5))
}
