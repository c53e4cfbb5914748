// Package graph renders a metric history as a braille sparkline.
//
// Each glyph packs two consecutive graded samples: the row of GraphSigils is
// the grade of the more recent sample and the column is the grade of the
// older one. The rendered string reads oldest on the left, newest on the right.
package graph

import (
	"io"
	"slices"

	"sulphur/internal/grading"
	"sulphur/internal/models"

	"github.com/fatih/color"
)

// GraphDensity is the number of samples packed into one glyph.
const GraphDensity = 2

// GraphSigils is indexed [more-recent grade][less-recent grade].
var GraphSigils = [grading.GradeCount][grading.GradeCount]rune{
	{'⣀', '⣄', '⣆', '⣇'},
	{'⣠', '⣤', '⣦', '⣧'},
	{'⣰', '⣴', '⣶', '⣷'},
	{'⣸', '⣼', '⣾', '⣿'},
}

// Capacity returns how many samples a graph of length glyphs consumes.
func Capacity(length int) int {
	return length * GraphDensity
}

// glyph is one rendered sigil together with the grades it encodes.
type glyph struct {
	sigil  rune
	recent grading.MeasurementGrade
	older  grading.MeasurementGrade
}

// glyphs pairs the newest-first grades of the selected metric and returns
// the glyphs in display order (oldest pair first). An odd trailing sample is
// ignored.
func glyphs(metrics models.Metrics, measurementType models.MeasurementType) ([]glyph, error) {
	grades, err := grading.Grades(metrics, measurementType)
	if err != nil {
		return nil, err
	}

	length := len(grades) / GraphDensity
	buffer := make([]glyph, 0, length)
	for i := 0; i < length; i++ {
		recent := grades[i*GraphDensity]
		older := grades[i*GraphDensity+1]
		buffer = append(buffer, glyph{
			sigil:  GraphSigils[recent][older],
			recent: recent,
			older:  older,
		})
	}

	// The buffer was built newest pair first; reversing it puts the oldest
	// sample on the left.
	slices.Reverse(buffer)

	return buffer, nil
}

// Render returns the sparkline of one metric in a snapshot.
func Render(metrics models.Metrics, measurementType models.MeasurementType) (string, error) {
	gs, err := glyphs(metrics, measurementType)
	if err != nil {
		return "", err
	}

	runes := make([]rune, len(gs))
	for i, g := range gs {
		runes[i] = g.sigil
	}
	return string(runes), nil
}

// Colour tiers keyed on the sum of both grades in a glyph (0-6).
var (
	lowTier    = color.New(color.FgGreen)
	mediumTier = color.New(color.FgYellow)
	highTier   = color.New(color.FgRed)
)

func tier(g glyph) *color.Color {
	switch combined := int(g.recent) + int(g.older); {
	case combined <= 2:
		return lowTier
	case combined <= 4:
		return mediumTier
	default:
		return highTier
	}
}

// RenderColored is Render with every glyph coloured by its combined grade.
// The glyphs are identical to Render's. Colour output follows color.NoColor.
func RenderColored(metrics models.Metrics, measurementType models.MeasurementType) (string, error) {
	gs, err := glyphs(metrics, measurementType)
	if err != nil {
		return "", err
	}

	var out []byte
	for _, g := range gs {
		out = append(out, tier(g).Sprint(string(g.sigil))...)
	}
	return string(out), nil
}

// Write renders the sparkline followed by a newline to w.
func Write(w io.Writer, metrics models.Metrics, measurementType models.MeasurementType, colored bool) error {
	render := Render
	if colored {
		render = RenderColored
	}

	line, err := render(metrics, measurementType)
	if err != nil {
		return err
	}

	_, err = io.WriteString(w, line+"\n")
	return err
}
