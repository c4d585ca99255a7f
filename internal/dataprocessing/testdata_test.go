package dataprocessing

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"emrdash/pkg/contracts/domain"
)

// sampleHeader is the full header of the concordance sheet plus one extra
// column that must survive into previews and exports.
var sampleHeader = []string{
	"S/N", "State", "LGA", "FacilityName",
	"TX_Curr_EMR", "TX_New_EMR", "VL Eligible EMR", "TX_PVLS_D_EMR", "TX_PVLS_N_EMR",
	"PBS_EMR", "PBS Recaptured_EMR", "IIT Quarter", "PBS_NDR",
}

// writeWorkbook saves rows to a new workbook under t.TempDir and returns its path.
func writeWorkbook(t *testing.T, sheet string, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName(f.GetSheetName(0), sheet)

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}

	path := filepath.Join(t.TempDir(), "EMR_NDR CONC_test.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func headerRow() []interface{} {
	row := make([]interface{}, len(sampleHeader))
	for i, h := range sampleHeader {
		row[i] = h
	}
	return row
}

// scenarioDataset is the two-state dataset used across the package tests.
func scenarioDataset() *domain.Dataset {
	return &domain.Dataset{
		Sheet:   "Conc",
		Columns: []string{"State", "LGA", "FacilityName"},
		Records: []domain.FacilityRecord{
			{State: "A", LGA: "L1", FacilityName: "F1", TxCurr: 10, VlEligible: 5, TxPvlsD: 4, TxPvlsN: 2, Cells: []string{"A", "L1", "F1"}},
			{State: "B", LGA: "L2", FacilityName: "F2", TxCurr: 20, Cells: []string{"B", "L2", "F2"}},
		},
	}
}

// cascadeDataset has several LGAs and facilities per state.
func cascadeDataset() *domain.Dataset {
	return &domain.Dataset{
		Sheet:   "Conc",
		Columns: []string{"State", "LGA", "FacilityName"},
		Records: []domain.FacilityRecord{
			{State: "Ogun", LGA: "Abeokuta North", FacilityName: "Lafenwa PHC", TxCurr: 120, VlEligible: 100, TxPvlsD: 90, TxPvlsN: 81},
			{State: "Ogun", LGA: "Abeokuta North", FacilityName: "Iberekodo PHC", TxCurr: 40, VlEligible: 30, TxPvlsD: 30, TxPvlsN: 27},
			{State: "Ogun", LGA: "Ijebu Ode", FacilityName: "Ijebu Ode GH", TxCurr: 300, VlEligible: 250, TxPvlsD: 200, TxPvlsN: 190},
			{State: "Lagos", LGA: "Ikeja", FacilityName: "LASUTH", TxCurr: 900, VlEligible: 800, TxPvlsD: 700, TxPvlsN: 680},
			{State: "Lagos", LGA: "Ikeja", FacilityName: "Ikeja GH", TxCurr: 250, VlEligible: 0, TxPvlsD: 0, TxPvlsN: 0},
			{State: "Ogun", LGA: "Abeokuta North", FacilityName: "Lafenwa PHC", TxCurr: 5, VlEligible: 5, TxPvlsD: 5, TxPvlsN: 5},
			{State: "", LGA: "", FacilityName: "Unassigned Clinic", TxCurr: 7},
		},
	}
}
