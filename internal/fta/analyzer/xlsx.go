package analyzer

import (
	"bytes"
	"errors"

	"github.com/xuri/excelize/v2"
)

// readXLSX returns the raw cell values of the first sheet.
func readXLSX(data []byte) (rows [][]string, err error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheet")
	}

	return f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
}
