package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"emrdash/pkg/contracts/domain"
)

func writeWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	_, err := f.NewSheet("Conc")
	require.NoError(t, err)

	header := make([]interface{}, len(domain.RequiredColumns))
	for i, col := range domain.RequiredColumns {
		header[i] = col
	}
	rows := [][]interface{}{
		header,
		{"Ogun", "Abeokuta North", "Facility A", 100, 10, 80, 60, 48, 90, 70, 3, 85},
		{"Ogun", "Ijebu Ode", "Facility B", 50, 5, 40, 40, 36, 45, 30, 1, 44},
		{"Lagos", "Ikeja", "Facility C", 20, 2, 10, 10, 9, 18, 12, 0, 17},
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Conc", cell, &rows[i]))
	}

	path := filepath.Join(t.TempDir(), "conc.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestOptionsCommand(t *testing.T) {
	source := writeWorkbook(t)

	out, err := run(t, "options", "--source", source, "--state", "Ogun")
	require.NoError(t, err)
	assert.Contains(t, out, "States (2)")
	assert.Contains(t, out, "LGAs (2)")
	assert.Contains(t, out, "  - Ijebu Ode")
	assert.NotContains(t, out, "Ikeja")
}

func TestSummaryCommand(t *testing.T) {
	source := writeWorkbook(t)

	out, err := run(t, "summary", "--source", source, "--state", "Ogun", "--json")
	require.NoError(t, err)

	var kpis []domain.KPI
	require.NoError(t, json.Unmarshal([]byte(out), &kpis))
	require.NotEmpty(t, kpis)
	assert.Equal(t, "150", kpis[0].Value)

	out, err = run(t, "summary", "--source", source, "--facility", "Facility C")
	require.NoError(t, err)
	assert.Contains(t, out, "Facilities")
	assert.Contains(t, out, "20")
}

func TestExportCommand(t *testing.T) {
	source := writeWorkbook(t)

	out, err := run(t, "export", "--source", source, "--lga", "Ikeja", "--out", "-")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(domain.RequiredColumns, ","), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Lagos,Ikeja,Facility C,20,"))

	target := filepath.Join(t.TempDir(), "out", "filtered.csv")
	out, err = run(t, "export", "--source", source, "--out", target)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 3 rows")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(data)), "\n"), 4)
}

func TestMissingSource(t *testing.T) {
	_, err := run(t, "summary", "--source", filepath.Join(t.TempDir(), "missing.xlsx"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source file not found")
}
