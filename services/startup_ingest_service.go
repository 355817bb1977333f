package services

import (
	"encoding/json"
	"strings"

	"startup-dashboard-api/models"
	"startup-dashboard-api/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Sheet is a normalized spreadsheet: suffix-disambiguated column names, the
// canonical-field binding, and the data rows padded to column count.
type Sheet struct {
	Columns   []string
	Canonical map[string]string
	Rows      [][]utils.CellValue

	colIndex map[string]int
}

// NormalizeSheet validates the raw workbook rows and resolves which column
// feeds each canonical startup field. The first row is the header row.
func NormalizeSheet(rows [][]utils.CellValue) (*Sheet, error) {
	if len(rows) < 2 || len(rows[0]) == 0 {
		return nil, NewValidationError("The spreadsheet is empty.")
	}

	headers := make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		if s := utils.CoerceString(cell); s != nil {
			headers[i] = *s
		}
	}

	columns := utils.NormalizeColumns(headers)
	canonical := utils.ResolveCanonicalColumns(columns)
	if _, ok := canonical[utils.RequiredColumn]; !ok {
		return nil, NewValidationError("Missing required column: Startup")
	}

	colIndex := make(map[string]int, len(columns))
	for i, column := range columns {
		colIndex[column] = i
	}

	dataRows := make([][]utils.CellValue, 0, len(rows)-1)
	for _, row := range rows[1:] {
		padded := make([]utils.CellValue, len(columns))
		copy(padded, row)
		dataRows = append(dataRows, padded)
	}

	return &Sheet{
		Columns:   columns,
		Canonical: canonical,
		Rows:      dataRows,
		colIndex:  colIndex,
	}, nil
}

func (s *Sheet) cell(row []utils.CellValue, canonical string) utils.CellValue {
	column, ok := s.Canonical[canonical]
	if !ok {
		return utils.CellValue{}
	}
	return row[s.colIndex[column]]
}

// ExtractStartupRecords turns normalized rows into canonical startup
// records. Rows without a usable name are dropped; each kept record carries
// the complete original row as its fallback payload, empty cells included.
// Row order is preserved and nothing is deduplicated here — repeated names
// collapse at persistence time through the natural key.
func ExtractStartupRecords(sheet *Sheet) ([]models.Startup, error) {
	records := make([]models.Startup, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		name := utils.CoerceString(sheet.cell(row, "startup_name"))
		if name == nil {
			continue
		}

		payload := make(map[string]models.RawValue, len(sheet.Columns))
		for i, column := range sheet.Columns {
			payload[column] = rawValueOf(row[i])
		}
		rawJSON, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}

		records = append(records, models.Startup{
			StartupName: *name,
			Sector:      utils.CoerceString(sheet.cell(row, "sector")),
			City:        utils.CoerceString(sheet.cell(row, "city")),
			Year:        utils.CoerceInt(sheet.cell(row, "year")),
			Amount:      utils.CoerceAmount(sheet.cell(row, "amount")),
			Website:     utils.CoerceString(sheet.cell(row, "website")),
			Leadership:  utils.CoerceString(sheet.cell(row, "leadership")),
			SourceLink:  utils.CoerceString(sheet.cell(row, "source_link")),
			Address:     utils.CoerceString(sheet.cell(row, "address")),
			Contact:     utils.CoerceString(sheet.cell(row, "contact")),
			RawJSON:     string(rawJSON),
		})
	}

	if len(records) == 0 {
		return nil, NewValidationError("No valid startup records found.")
	}
	return records, nil
}

func rawValueOf(cell utils.CellValue) models.RawValue {
	if cell.Number != nil {
		return models.RawNumber(*cell.Number)
	}
	if strings.TrimSpace(cell.Raw) == "" {
		return models.RawValue{}
	}
	return models.RawString(cell.Raw)
}

// IngestService loads a startup master workbook into the store.
type IngestService struct {
	db *gorm.DB
}

func NewIngestService(db *gorm.DB) *IngestService {
	return &IngestService{db: db}
}

// startupUpdateColumns are overwritten when an ingested name already exists.
var startupUpdateColumns = []string{
	"sector", "city", "year", "amount", "website",
	"leadership", "source_link", "address", "contact", "raw_json",
}

// IngestFile reads, normalizes and extracts a workbook from disk. The store
// is untouched; callers decide whether to commit via ReplaceStartups (the
// lock flag gates that).
func (s *IngestService) IngestFile(path string) ([]models.Startup, error) {
	rows, err := ReadWorkbookRows(path)
	if err != nil {
		return nil, err
	}
	sheet, err := NormalizeSheet(rows)
	if err != nil {
		return nil, err
	}
	return ExtractStartupRecords(sheet)
}

// ReplaceStartups replaces the whole startup master in one transaction:
// delete-all, then insert with upsert-by-name for names repeated within the
// batch. Either everything lands or nothing does.
func (s *IngestService) ReplaceStartups(records []models.Startup) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM startups").Error; err != nil {
			return err
		}
		for i := range records {
			record := records[i]
			record.ID = 0
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "startup_name"}},
				DoUpdates: clause.AssignmentColumns(startupUpdateColumns),
			}).Create(&record).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
