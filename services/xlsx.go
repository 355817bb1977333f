package services

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"startup-dashboard-api/utils"
)

// ReadWorkbookRows extracts all rows from the first worksheet of an XLSX
// file without third-party dependencies. String cells (shared, inline or
// formula results) come back as text; plain value cells keep their native
// numeric value so coercion can tell the number 2019 from the label "2019".
func ReadWorkbookRows(path string) ([][]utils.CellValue, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var sheetXML, sharedXML io.ReadCloser
	for _, f := range r.File {
		switch f.Name {
		case "xl/worksheets/sheet1.xml":
			sheetXML, _ = f.Open()
		case "xl/sharedStrings.xml":
			sharedXML, _ = f.Open()
		}
	}

	if sheetXML == nil {
		return nil, fmt.Errorf("worksheet not found")
	}
	defer sheetXML.Close()
	defer func() {
		if sharedXML != nil {
			sharedXML.Close()
		}
	}()

	sharedStrings, _ := parseSharedStrings(sharedXML)
	return parseWorksheet(sheetXML, sharedStrings)
}

func parseSharedStrings(r io.Reader) ([]string, error) {
	if r == nil {
		return nil, nil
	}
	type t struct {
		XMLName xml.Name `xml:"sst"`
		Items   []struct {
			T string `xml:"t"`
		} `xml:"si"`
	}
	var data t
	if err := xml.NewDecoder(r).Decode(&data); err != nil {
		return nil, err
	}
	strs := make([]string, 0, len(data.Items))
	for _, item := range data.Items {
		strs = append(strs, item.T)
	}
	return strs, nil
}

func parseWorksheet(r io.Reader, shared []string) ([][]utils.CellValue, error) {
	decoder := xml.NewDecoder(r)
	rows := [][]utils.CellValue{}
	var currentRow []utils.CellValue
	var lastCol int

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch se := tok.(type) {
		case xml.StartElement:
			if se.Name.Local == "row" {
				currentRow = []utils.CellValue{}
				lastCol = 0
			}
			if se.Name.Local == "c" {
				var cell struct {
					R  string `xml:"r,attr"`
					T  string `xml:"t,attr"`
					V  string `xml:"v"`
					IS struct {
						T string `xml:"t"`
					} `xml:"is"`
				}
				if err := decoder.DecodeElement(&cell, &se); err != nil {
					return nil, err
				}

				colIdx := columnIndex(cell.R)
				if colIdx == 0 {
					// Cells without a reference attribute mean "next column".
					colIdx = lastCol + 1
				}
				for len(currentRow) < colIdx-1 {
					currentRow = append(currentRow, utils.CellValue{})
				}

				value := cellValue(cell.T, cell.V, cell.IS.T, shared)
				if len(currentRow) < colIdx {
					currentRow = append(currentRow, value)
				} else {
					currentRow[colIdx-1] = value
				}
				lastCol = colIdx
			}
		case xml.EndElement:
			if se.Name.Local == "row" {
				for len(currentRow) < lastCol {
					currentRow = append(currentRow, utils.CellValue{})
				}
				rows = append(rows, currentRow)
			}
		}
	}

	return rows, nil
}

func cellValue(cellType, raw, inline string, shared []string) utils.CellValue {
	switch cellType {
	case "s": // shared string
		if idx, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && idx < len(shared) {
			return utils.CellValue{Raw: shared[idx]}
		}
		return utils.CellValue{Raw: raw}
	case "inlineStr":
		return utils.CellValue{Raw: inline}
	case "str", "b": // formula string / boolean, keep as text
		return utils.CellValue{Raw: raw}
	default: // plain value cell: numeric when parseable, otherwise text
		if raw == "" {
			return utils.CellValue{}
		}
		if n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
			return utils.CellValue{Raw: raw, Number: &n}
		}
		return utils.CellValue{Raw: raw}
	}
}

func columnIndex(cellRef string) int {
	colPart := strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' {
			return r
		}
		return -1
	}, cellRef)

	col := 0
	for i := 0; i < len(colPart); i++ {
		col = col*26 + int(strings.ToUpper(string(colPart[i]))[0]-'A') + 1
	}
	return col
}
