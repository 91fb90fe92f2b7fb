package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/netreach/internal/core/domain"
	"github.com/custodia-labs/netreach/internal/core/ports/driven"
)

var _ driven.ReportExporter = (*XLSXExporter)(nil)

// Built-in excelize number formats.
const (
	numFmtPercent = 10 // 0.00%
	numFmtDecimal = 4  // #,##0.00
)

// XLSXExporter writes one worksheet per report section.
// Numeric cells keep their values so the workbook can be recalculated.
type XLSXExporter struct{}

// NewXLSXExporter creates an xlsx exporter.
func NewXLSXExporter() *XLSXExporter { return &XLSXExporter{} }

// Format returns domain.ExportXLSX.
func (e *XLSXExporter) Format() domain.ExportFormat { return domain.ExportXLSX }

// Export writes the workbook.
func (e *XLSXExporter) Export(w io.Writer, sc *domain.Scenario) error {
	if err := checkScenario(sc); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	styles, err := newSheetStyles(f)
	if err != nil {
		return err
	}

	for i, sec := range buildSections(sc) {
		name := sheetName(sec.title)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
		if err := writeSheet(f, name, sec, styles); err != nil {
			return fmt.Errorf("write sheet %s: %w", name, err)
		}
	}

	f.SetActiveSheet(0)
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

type sheetStyles struct {
	header  int
	percent int
	decimal int
}

func newSheetStyles(f *excelize.File) (sheetStyles, error) {
	var s sheetStyles
	var err error
	if s.header, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err != nil {
		return s, err
	}
	if s.percent, err = f.NewStyle(&excelize.Style{NumFmt: numFmtPercent}); err != nil {
		return s, err
	}
	if s.decimal, err = f.NewStyle(&excelize.Style{NumFmt: numFmtDecimal}); err != nil {
		return s, err
	}
	return s, nil
}

func writeSheet(f *excelize.File, sheet string, sec section, styles sheetStyles) error {
	for col, title := range sec.header {
		ref, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStr(sheet, ref, title); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, ref, ref, styles.header); err != nil {
			return err
		}
	}

	for r, row := range sec.rows {
		for col, c := range row {
			ref, err := excelize.CoordinatesToCellName(col+1, r+2)
			if err != nil {
				return err
			}
			switch c.kind {
			case kindPercent:
				err = f.SetCellFloat(sheet, ref, c.value, -1, 64)
				if err == nil {
					err = f.SetCellStyle(sheet, ref, ref, styles.percent)
				}
			case kindNumber:
				err = f.SetCellFloat(sheet, ref, c.value, -1, 64)
				if err == nil {
					err = f.SetCellStyle(sheet, ref, ref, styles.decimal)
				}
			default:
				err = f.SetCellStr(sheet, ref, c.text)
			}
			if err != nil {
				return err
			}
		}
	}

	return f.SetColWidth(sheet, "A", "A", 24)
}

// sheetName trims a title to the 31 characters Excel allows.
func sheetName(title string) string {
	if len(title) > 31 {
		return title[:31]
	}
	return title
}
