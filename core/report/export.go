package report

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/gradebook/core/grade"
)

const (
	ExportFilename = "grades.csv"
	exportHeader   = "student,course,score,created_at"
)

// WriteGradesCSV writes one line per grade after the header line.
// Names are always quoted; score and timestamp never are.
func WriteGradesCSV(w io.Writer, grades []grade.Grade) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(exportHeader + "\n"); err != nil {
		return errors.Wrap(err, "writing csv header")
	}
	for _, grd := range grades {
		line := strings.Join([]string{
			quote(grd.StudentName),
			quote(grd.CourseName),
			formatScore(grd.Score),
			grd.CreatedAt.UTC().Format(time.RFC3339Nano),
		}, ",")
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return errors.Wrapf(err, "writing csv line for grade %d", grd.ID)
		}
	}
	return errors.Wrap(bw.Flush(), "flushing csv")
}

func quote(s null.String) string {
	return `"` + strings.ReplaceAll(s.String, `"`, `""`) + `"`
}

func formatScore(score null.Float64) string {
	if !score.Valid {
		return ""
	}
	return strconv.FormatFloat(score.Float64, 'f', -1, 64)
}
