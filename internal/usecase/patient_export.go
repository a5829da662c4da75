package usecase

import (
	"bytes"
	"fmt"

	"docscript/internal/domain/entity"

	"github.com/xuri/excelize/v2"
)

const patientSheet = "Patients"

var patientExportHeader = []string{
	"Date",
	"Name",
	"Age",
	"Sex",
	"Mobile",
	"Complaints",
	"Hypertension",
	"Diabetes Mellitus",
	"Hepatitis B",
	"Hepatitis C",
	"Advice",
	"Treatment",
}

var patientColumnWidths = []float64{12, 25, 8, 8, 16, 40, 13, 17, 12, 12, 40, 40}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func patientRow(p *entity.Patient) []interface{} {
	return []interface{}{
		p.Date,
		p.Name,
		p.Age,
		p.Sex,
		p.Mobile,
		p.Complaints,
		yesNo(p.Diseases.Hypertension),
		yesNo(p.Diseases.DiabetesMellitus),
		yesNo(p.Diseases.HepatitisB),
		yesNo(p.Diseases.HepatitisC),
		p.Advice,
		p.Treatment,
	}
}

// generatePatientWorkbook writes one row per patient in the given order below a styled header.
func generatePatientWorkbook(patients []entity.Patient) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(patientSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	header := make([]interface{}, len(patientExportHeader))
	for i, h := range patientExportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(patientSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(patientExportHeader), 1)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(patientSheet, "A1", lastHeader, headerStyle); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	for i, width := range patientColumnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(patientSheet, col, col, width); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for i := range patients {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := patientRow(&patients[i])
		if err := f.SetSheetRow(patientSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
