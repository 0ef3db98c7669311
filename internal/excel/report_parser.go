package excel

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"backoffice/internal/domain"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// headerRowScanLimit bounds how far down a sheet the header row is searched
// for, so title rows above the table are tolerated.
const headerRowScanLimit = 10

var headerAliases = map[string]string{
	"date":               "date",
	"report date":        "date",
	"user name":          "userName",
	"username":           "userName",
	"user":               "userName",
	"user id":            "userName",
	"agent":              "agent",
	"agent name":         "agent",
	"origin":             "origin",
	"country":            "origin",
	"sport":              "sportName",
	"sport name":         "sportName",
	"sportname":          "sportName",
	"event":              "eventName",
	"event name":         "eventName",
	"eventname":          "eventName",
	"match":              "eventName",
	"market":             "marketName",
	"market name":        "marketName",
	"marketname":         "marketName",
	"a/c balance":        "acBalance",
	"ac balance":         "acBalance",
	"acbalance":          "acBalance",
	"account balance":    "acBalance",
	"balance":            "acBalance",
	"after void balance": "afterVoidBalance",
	"aftervoidbalance":   "afterVoidBalance",
	"after void":         "afterVoidBalance",
	"p/l":                "pl",
	"pl":                 "pl",
	"p&l":                "pl",
	"profit/loss":        "pl",
	"profit loss":        "pl",
	"odds":               "odds",
	"odd":                "odds",
	"stack":              "stack",
	"stake":              "stack",
	"time":               "time",
	"bet time":           "time",
	"catch by":           "catchBy",
	"catchby":            "catchBy",
	"caught by":          "catchBy",
	"investigator":       "catchBy",
	"proof type":         "proofType",
	"prooftype":          "proofType",
	"proof":              "proofType",
	"proof status":       "proofStatus",
	"proofstatus":        "proofStatus",
	"status":             "proofStatus",
	"remark":             "remark",
	"remarks":            "remark",
	"comment":            "remark",
	"comments":           "remark",
}

type sheetRows struct {
	name string
	rows [][]string
	// raw holds unformatted cell values when the reader can provide them.
	// Date cells are taken from here so serial numbers survive any display
	// format.
	raw [][]string
}

func (s sheetRows) dateCell(row, col int) string {
	formatted := strings.TrimSpace(readCell(readRow(s.rows, row), col))
	if raw := strings.TrimSpace(readCell(readRow(s.raw, row), col)); raw != "" {
		if _, err := strconv.ParseFloat(raw, 64); err == nil {
			return raw
		}
	}
	return formatted
}

func readRow(rows [][]string, idx int) []string {
	if idx < 0 || idx >= len(rows) {
		return nil
	}
	return rows[idx]
}

// ParseReportWorkbook reads every sheet of an .xlsx/.xlsm or legacy .xls
// workbook into raw reports. A row with a date or user name starts a report;
// following rows with only bet-detail cells add bet details to it. Sheets
// without a recognizable header row are skipped.
func ParseReportWorkbook(fileName string, reader io.Reader) ([]domain.RawReport, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("input file is empty")
	}

	var sheets []sheetRows
	switch strings.ToLower(strings.TrimSpace(filepath.Ext(fileName))) {
	case ".xlsx", ".xlsm":
		sheets, err = readXLSXSheets(data)
	case ".xls":
		sheets, err = readXLSSheets(data)
	default:
		sheets, err = readXLSXSheets(data)
		if err != nil {
			sheets, err = readXLSSheets(data)
		}
	}
	if err != nil {
		return nil, err
	}

	result := make([]domain.RawReport, 0)
	recognized := false
	for _, sheet := range sheets {
		reports, ok := parseReportSheet(sheet)
		if !ok {
			continue
		}
		recognized = true
		result = append(result, reports...)
	}
	if !recognized {
		return nil, fmt.Errorf("no sheet has a recognizable header row (expected columns such as Date and User Name)")
	}
	return result, nil
}

func readXLSXSheets(data []byte) ([]sheetRows, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open excel file: %w", err)
	}
	defer file.Close()

	names := file.GetSheetList()
	if len(names) == 0 {
		return nil, fmt.Errorf("excel file has no sheets")
	}
	sheets := make([]sheetRows, 0, len(names))
	for _, name := range names {
		rows, err := file.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q rows: %w", name, err)
		}
		raw, err := file.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("read sheet %q raw rows: %w", name, err)
		}
		sheets = append(sheets, sheetRows{name: name, rows: rows, raw: raw})
	}
	return sheets, nil
}

func readXLSSheets(data []byte) ([]sheetRows, error) {
	book, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("open xls file: %w", err)
	}
	if book.NumSheets() == 0 {
		return nil, fmt.Errorf("xls file has no sheets")
	}

	sheets := make([]sheetRows, 0, book.NumSheets())
	for i := 0; i < book.NumSheets(); i++ {
		sheet := book.GetSheet(i)
		if sheet == nil {
			continue
		}
		rows := make([][]string, 0, int(sheet.MaxRow)+1)
		for r := 0; r <= int(sheet.MaxRow); r++ {
			row := sheet.Row(r)
			if row == nil {
				rows = append(rows, nil)
				continue
			}
			cells := make([]string, 0, row.LastCol()+1)
			for c := 0; c <= row.LastCol(); c++ {
				cells = append(cells, row.Col(c))
			}
			rows = append(rows, cells)
		}
		sheets = append(sheets, sheetRows{name: sheet.Name, rows: rows})
	}
	return sheets, nil
}

func parseReportSheet(sheet sheetRows) ([]domain.RawReport, bool) {
	headerIndex := -1
	var colMap map[string]int
	for i := 0; i < len(sheet.rows) && i < headerRowScanLimit; i++ {
		mapped := mapColumns(sheet.rows[i])
		_, hasUser := mapped["userName"]
		_, hasDate := mapped["date"]
		if hasUser && hasDate {
			headerIndex = i
			colMap = mapped
			break
		}
	}
	if headerIndex < 0 {
		return nil, false
	}

	reports := make([]domain.RawReport, 0, len(sheet.rows)-headerIndex-1)
	var current *domain.RawReport
	for index := headerIndex + 1; index < len(sheet.rows); index++ {
		cells := sheet.rows[index]
		cell := func(key string) string {
			idx, ok := colMap[key]
			if !ok {
				return ""
			}
			return strings.TrimSpace(readCell(cells, idx))
		}

		date := ""
		if idx, ok := colMap["date"]; ok {
			date = sheet.dateCell(index, idx)
		}
		details := betDetailsFromCells(cell("odds"), cell("stack"), cell("time"))
		if date == "" && cell("userName") == "" {
			if current != nil && len(details) > 0 {
				current.BetDetails = append(current.BetDetails, details...)
			}
			continue
		}

		rowIndex := index + 1
		reports = append(reports, domain.RawReport{
			Date:             domain.LooseString(date),
			UserName:         domain.LooseString(cell("userName")),
			Agent:            domain.LooseString(cell("agent")),
			Origin:           domain.LooseString(cell("origin")),
			SportName:        domain.LooseString(cell("sportName")),
			EventName:        domain.LooseString(cell("eventName")),
			MarketName:       domain.LooseString(cell("marketName")),
			ACBalance:        domain.LooseString(cell("acBalance")),
			AfterVoidBalance: domain.LooseString(cell("afterVoidBalance")),
			PL:               domain.LooseString(cell("pl")),
			BetDetails:       details,
			CatchBy:          domain.LooseString(cell("catchBy")),
			ProofType:        domain.LooseString(cell("proofType")),
			ProofStatus:      domain.LooseString(cell("proofStatus")),
			Remark:           domain.LooseString(cell("remark")),
			SheetName:        sheet.name,
			RowIndex:         &rowIndex,
		})
		current = &reports[len(reports)-1]
	}
	return reports, true
}

// betDetailsFromCells splits newline-joined cells, as written by
// WriteReports, into one bet detail per line.
func betDetailsFromCells(odds, stack, clock string) []domain.RawBetDetail {
	oddsLines := splitLines(odds)
	stackLines := splitLines(stack)
	timeLines := splitLines(clock)
	count := max(len(oddsLines), len(stackLines), len(timeLines))

	details := make([]domain.RawBetDetail, 0, count)
	for i := 0; i < count; i++ {
		details = append(details, domain.RawBetDetail{
			Odds:  domain.LooseString(readCell(oddsLines, i)),
			Stack: domain.LooseString(readCell(stackLines, i)),
			Time:  domain.LooseString(readCell(timeLines, i)),
		})
	}
	return details
}

func splitLines(value string) []string {
	value = strings.TrimSpace(strings.ReplaceAll(value, "\r\n", "\n"))
	if value == "" {
		return nil
	}
	lines := strings.Split(value, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return lines
}

func mapColumns(header []string) map[string]int {
	mapped := make(map[string]int)
	for idx, col := range header {
		normalized := normalizeHeader(col)
		if normalized == "" {
			continue
		}
		canonical, ok := headerAliases[normalized]
		if !ok {
			continue
		}
		if _, exists := mapped[canonical]; !exists {
			mapped[canonical] = idx
		}
	}
	return mapped
}

func normalizeHeader(raw string) string {
	value := strings.TrimSpace(raw)
	value = strings.TrimPrefix(value, "\ufeff")
	value = strings.ToLower(value)
	value = strings.ReplaceAll(value, "_", " ")
	value = strings.Join(strings.Fields(value), " ")
	return value
}

func readCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
