package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aguxez/bmrcalc/calculator"
	"github.com/aguxez/bmrcalc/models"
)

func TestRunCalc(t *testing.T) {
	var buf bytes.Buffer
	if err := runCalc(&buf, models.ExampleMeasurement()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var res models.CalculationResult
	if err := json.Unmarshal(buf.Bytes(), &res); err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if res.BMR != 1785 || res.TDEE != 2767 {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestRunCalc_Invalid(t *testing.T) {
	in := models.ExampleMeasurement()
	in.Age = 200

	var buf bytes.Buffer
	err := runCalc(&buf, in)
	if err == nil || err.Error() != "Age must be between 1 and 120" {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("no output expected on error, got %q", buf.String())
	}
}

func TestCalcCmd(t *testing.T) {
	cmd := calcCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{
		"--age", "25", "--gender", "Female", "--weight", "140",
		"--feet", "5", "--inches", "6", "--activity", models.Sedentary,
	})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), `"bmr": 1397`) {
		t.Errorf("unexpected output: %s", buf.String())
	}
}

func TestCalcCmd_UnknownGender(t *testing.T) {
	cmd := calcCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{
		"--age", "25", "--gender", "female", "--weight", "140",
		"--feet", "5", "--activity", models.Sedentary,
	})
	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected error")
	}
	if _, ok := err.(*calculator.ValidationError); !ok {
		t.Errorf("expected validation error, got %T", err)
	}
}

func TestCalcCmd_MissingRequiredFlag(t *testing.T) {
	cmd := calcCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--age", "25", "--gender", "Female", "--weight", "140", "--feet", "5"})

	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), `"activity"`) {
		t.Errorf("expected missing activity flag error, got %v", err)
	}
}

func TestRunBatch(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "people.csv")
	body := "Age,Gender,Weight (lbs),Height (ft),Height (in),Activity Level\n" +
		"30,Male,180.5,5,10,Moderately Active (moderate exercise 3-5 days/week)\n"
	if err := os.WriteFile(in, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out.csv")

	var buf bytes.Buffer
	if err := runBatch(&buf, in, out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "1 rows, 0 rejected") {
		t.Errorf("unexpected summary: %s", buf.String())
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("expected output file: %v", err)
	}
}

func TestPrintActivityLevels(t *testing.T) {
	var buf bytes.Buffer
	printActivityLevels(&buf)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 6 {
		t.Fatalf("expected header plus 5 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[2], "1.375") {
		t.Errorf("unexpected line: %s", lines[2])
	}
}
