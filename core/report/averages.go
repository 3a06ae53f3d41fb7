package report

import (
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/gradebook/core/course"
	"github.com/trezcool/gradebook/core/grade"
	"github.com/trezcool/gradebook/core/student"
)

type (
	StudentAverage struct {
		StudentID    int64        `json:"student"`
		StudentName  string       `json:"student_name"`
		AverageScore null.Float64 `json:"average_score"` // null when there is nothing to average
	}

	CourseAverage struct {
		CourseID     int64        `json:"course"`
		CourseName   string       `json:"course_name"`
		AverageScore null.Float64 `json:"average_score"`
	}

	Averages struct {
		StudentAverages []StudentAverage `json:"studentAverages"`
		CourseAverages  []CourseAverage  `json:"courseAverages"`
	}
)

type mean struct {
	sum   float64
	count int
}

func (m *mean) add(v float64) {
	m.sum += v
	m.count++
}

func (m mean) value() null.Float64 {
	if m.count == 0 {
		return null.Float64{}
	}
	return null.Float64From(m.sum / float64(m.count))
}

// ComputeAverages returns the mean score per student and per course, in the order
// students and courses are given. Grades without a score are ignored.
func ComputeAverages(students []student.Student, courses []course.Course, grades []grade.Grade) Averages {
	byStudent := make(map[int64]*mean, len(students))
	byCourse := make(map[int64]*mean, len(courses))
	for _, grd := range grades {
		if !grd.Score.Valid {
			continue
		}
		m, ok := byStudent[grd.StudentID]
		if !ok {
			m = new(mean)
			byStudent[grd.StudentID] = m
		}
		m.add(grd.Score.Float64)

		if grd.CourseID.Valid {
			m, ok = byCourse[grd.CourseID.Int64]
			if !ok {
				m = new(mean)
				byCourse[grd.CourseID.Int64] = m
			}
			m.add(grd.Score.Float64)
		}
	}

	avgs := Averages{
		StudentAverages: make([]StudentAverage, 0, len(students)),
		CourseAverages:  make([]CourseAverage, 0, len(courses)),
	}
	for _, std := range students {
		avg := StudentAverage{StudentID: std.ID, StudentName: std.Name}
		if m, ok := byStudent[std.ID]; ok {
			avg.AverageScore = m.value()
		}
		avgs.StudentAverages = append(avgs.StudentAverages, avg)
	}
	for _, crs := range courses {
		avg := CourseAverage{CourseID: crs.ID, CourseName: crs.Name}
		if m, ok := byCourse[crs.ID]; ok {
			avg.AverageScore = m.value()
		}
		avgs.CourseAverages = append(avgs.CourseAverages, avg)
	}
	return avgs
}
