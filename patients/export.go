package patients

import (
	"fmt"
	"io"

	"github.com/tealeg/xlsx/v3"
)

const exportSheetName = "Patients"

var exportColumns = []string{
	"ID", "Name", "Age", "Gender", "Status", "Priority", "Reason", "Schedule", "Assigned Doctor", "Email", "Phone",
}

// Export writes the patients as a single sheet xlsx workbook
func Export(w io.Writer, collection []Patient) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(exportSheetName)
	if err != nil {
		return fmt.Errorf("unable to create export sheet: %w", err)
	}

	header := sheet.AddRow()
	for _, column := range exportColumns {
		header.AddCell().SetString(column)
	}

	for _, p := range collection {
		row := sheet.AddRow()
		row.AddCell().SetString(p.Id)
		row.AddCell().SetString(p.Name)
		row.AddCell().SetInt(p.Age)
		row.AddCell().SetString(p.Gender)
		row.AddCell().SetString(p.Status)
		row.AddCell().SetString(p.Priority)
		row.AddCell().SetString(p.Reason)
		row.AddCell().SetString(p.Schedule.String())
		row.AddCell().SetString(p.AssignedDoctor)
		row.AddCell().SetString(p.Email)
		row.AddCell().SetString(p.Phone)
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("unable to write export: %w", err)
	}
	return nil
}
