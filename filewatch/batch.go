package filewatch

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/aguxez/bmrcalc/calculator"
	"github.com/aguxez/bmrcalc/metrics"
	"github.com/aguxez/bmrcalc/models"
)

const resultSuffix = ".results.csv"

type Calculator interface {
	Compute(in models.UserMeasurement) (models.CalculationResult, error)
}

// ResultPath returns where the results for the input file are written.
func ResultPath(input, outbox string) string {
	if outbox == "" {
		outbox = filepath.Dir(input)
	}
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(outbox, base+resultSuffix)
}

func isResultFile(path string) bool {
	n := len(path) - len(resultSuffix)
	return n >= 0 && strings.EqualFold(path[n:], resultSuffix)
}

// ProcessFile computes every row of the input CSV and writes a results CSV
// to output. The output is replaced atomically.
func ProcessFile(calc Calculator, input, output string) (models.BatchRun, error) {
	run := models.BatchRun{File: input, Output: output, ProcessedAt: time.Now()}

	rows, err := ParseMeasurementsFile(input)
	if err != nil {
		return run, err
	}
	run.Rows = len(rows)

	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return run, fmt.Errorf("creating output dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(output), ".bmr-*.tmp")
	if err != nil {
		return run, fmt.Errorf("creating temp output: %w", err)
	}
	defer os.Remove(tmp.Name())

	failed, err := WriteResults(calc, rows, tmp)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return run, fmt.Errorf("writing results: %w", err)
	}
	run.Failed = failed

	if err := os.Rename(tmp.Name(), output); err != nil {
		return run, fmt.Errorf("moving results into place: %w", err)
	}
	return run, nil
}

// WriteResults writes one result line per row and returns how many rows were
// rejected. Rejected rows carry only the error message.
func WriteResults(calc Calculator, rows []Row, w io.Writer) (int, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(resultHeader); err != nil {
		return 0, err
	}

	failed := 0
	for _, row := range rows {
		in := row.Measurement
		record := []string{
			strconv.Itoa(in.Age),
			string(in.Gender),
			strconv.FormatFloat(in.WeightPounds, 'f', -1, 64),
			strconv.Itoa(in.HeightFeet),
			strconv.Itoa(in.HeightInches),
			in.ActivityLevel,
		}

		res, err := calc.Compute(in)
		if err != nil {
			failed++
			msg := "Internal error"
			var verr *calculator.ValidationError
			if errors.As(err, &verr) {
				msg = verr.Message
				metrics.ObserveCalculation(metrics.SourceBatch, metrics.OutcomeInvalid, verr.Field)
			} else {
				metrics.ObserveCalculation(metrics.SourceBatch, metrics.OutcomeError, "")
			}
			record = append(record, "", "", "", "", "", "", "", msg)
		} else {
			metrics.ObserveCalculation(metrics.SourceBatch, metrics.OutcomeOK, "")
			record = append(record,
				strconv.Itoa(res.BMR),
				strconv.Itoa(res.TDEE),
				strconv.Itoa(res.CalorieGoals.Maintain),
				strconv.Itoa(res.CalorieGoals.LoseWeight),
				strconv.Itoa(res.CalorieGoals.GainWeight),
				strconv.FormatFloat(res.Conversions.WeightKg, 'f', 1, 64),
				strconv.FormatFloat(res.Conversions.HeightCm, 'f', 1, 64),
				"",
			)
		}

		if err := cw.Write(record); err != nil {
			return failed, err
		}
	}

	cw.Flush()
	return failed, cw.Error()
}
