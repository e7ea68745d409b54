// Package export writes flat report tables (header + rows) to .xlsx files.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// EscribirPlanilla creates a spreadsheet at path with a single sheet named
// hoja containing the header row followed by the data rows.
func EscribirPlanilla(path, hoja string, encabezados []string, filas [][]interface{}) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", hoja); err != nil {
		return err
	}

	header := make([]interface{}, len(encabezados))
	for i, h := range encabezados {
		header[i] = h
	}
	if err := f.SetSheetRow(hoja, "A1", &header); err != nil {
		return err
	}

	for i, fila := range filas {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(hoja, cell, &fila); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("guardar planilla %s: %w", path, err)
	}
	return nil
}
