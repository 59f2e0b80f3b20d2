package filewatch

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/aguxez/bmrcalc/models"
)

var measurementHeader = []string{
	"Age", "Gender", "Weight (lbs)", "Height (ft)", "Height (in)", "Activity Level",
}

var resultHeader = append(append([]string{}, measurementHeader...),
	"BMR", "TDEE", "Maintain", "Lose Weight", "Gain Weight", "Weight (kg)", "Height (cm)", "Error",
)

// Row is one parsed measurement with its 1-based line number.
type Row struct {
	Line        int
	Measurement models.UserMeasurement
}

// ParseMeasurementsFile reads and parses measurements from a CSV file
func ParseMeasurementsFile(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening measurements file: %w", err)
	}
	defer f.Close()

	return ParseMeasurements(f)
}

// ParseMeasurements parses a measurements CSV. Any malformed row fails the
// whole file; range and enum checks are left to the calculator.
func ParseMeasurements(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if len(header) != len(measurementHeader) {
		return nil, fmt.Errorf("invalid header length: expected %d columns, got %d", len(measurementHeader), len(header))
	}
	for i, h := range header {
		if strings.TrimSpace(h) != measurementHeader[i] {
			return nil, fmt.Errorf("invalid header: expected %s at position %d, got %s", measurementHeader[i], i, h)
		}
	}

	var rows []Row
	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading record: %w", err)
		}

		m, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rows = append(rows, Row{Line: line, Measurement: m})
	}

	return rows, nil
}

func parseRecord(record []string) (models.UserMeasurement, error) {
	age, err := strconv.Atoi(strings.TrimSpace(record[0]))
	if err != nil {
		return models.UserMeasurement{}, fmt.Errorf("parsing age %s: %w", record[0], err)
	}

	weight, err := strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
	if err != nil {
		return models.UserMeasurement{}, fmt.Errorf("parsing weight %s: %w", record[2], err)
	}

	feet, err := strconv.Atoi(strings.TrimSpace(record[3]))
	if err != nil {
		return models.UserMeasurement{}, fmt.Errorf("parsing height feet %s: %w", record[3], err)
	}

	inches, err := strconv.Atoi(strings.TrimSpace(record[4]))
	if err != nil {
		return models.UserMeasurement{}, fmt.Errorf("parsing height inches %s: %w", record[4], err)
	}

	return models.UserMeasurement{
		Age:           age,
		Gender:        models.Gender(strings.TrimSpace(record[1])),
		WeightPounds:  weight,
		HeightFeet:    feet,
		HeightInches:  inches,
		ActivityLevel: strings.TrimSpace(record[5]),
	}, nil
}
