// Package grading classifies measurements into ordinal severity grades.
package grading

import (
	"fmt"

	"sulphur/internal/models"
)

// MeasurementGrade is the severity of a single measurement, ordered from
// Idle to High. Its integer value indexes the graph sigil table.
type MeasurementGrade int

const (
	Idle MeasurementGrade = iota
	Low
	Medium
	High
)

// GradeCount is the number of distinct grades.
const GradeCount = 4

func (g MeasurementGrade) String() string {
	switch g {
	case Idle:
		return "idle"
	case Low:
		return "low"
	case Medium:
		return "medium"
	case High:
		return "high"
	default:
		return fmt.Sprintf("grade(%d)", int(g))
	}
}

// Grading maps one kind of measurement to a grade. Implementations are
// total: every value maps to exactly one grade.
type Grading[M any] interface {
	Scale(measurement M) MeasurementGrade
}

// CPUUsageGrading grades CPU usage in percent.
type CPUUsageGrading struct{}

// NetUsageRateGrading grades network throughput in megabits per second.
type NetUsageRateGrading struct{}

func (CPUUsageGrading) Scale(measurement models.CPUUsage) MeasurementGrade {
	return bands(measurement.Percent(), 10, 45, 80)
}

func (NetUsageRateGrading) Scale(measurement models.NetUsageRate) MeasurementGrade {
	return bands(measurement.MegabitsPerSecond(), 10, 100, 800)
}

// bands places v into one of four half-open bands; a boundary value belongs
// to the higher band. NaN falls through to Idle.
func bands(v, low, medium, high float64) MeasurementGrade {
	switch {
	case v >= high:
		return High
	case v >= medium:
		return Medium
	case v >= low:
		return Low
	default:
		return Idle
	}
}

// ScaleAll grades every measurement, preserving order.
func ScaleAll[M any](g Grading[M], measurements []M) []MeasurementGrade {
	grades := make([]MeasurementGrade, len(measurements))
	for i, m := range measurements {
		grades[i] = g.Scale(m)
	}
	return grades
}

// Grades returns the grades of the selected metric in a snapshot, in the
// snapshot's order (newest first).
func Grades(metrics models.Metrics, measurementType models.MeasurementType) ([]MeasurementGrade, error) {
	switch measurementType {
	case models.MeasurementCPU:
		return ScaleAll[models.CPUUsage](CPUUsageGrading{}, metrics.CPUUsage), nil
	case models.MeasurementNet:
		return ScaleAll[models.NetUsageRate](NetUsageRateGrading{}, metrics.NetUsageRate), nil
	default:
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownMeasurementType, measurementType)
	}
}
