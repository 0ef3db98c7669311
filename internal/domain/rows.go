package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// RawBetDetails decodes any non-array value as an empty list and any
// non-object entry as an empty detail, leaving the rejection to validation.
type RawBetDetails []RawBetDetail

func (d *RawBetDetails) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		*d = nil
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	details := make(RawBetDetails, 0, len(items))
	for _, item := range items {
		var detail RawBetDetail
		if err := json.Unmarshal(item, &detail); err != nil {
			detail = RawBetDetail{}
		}
		details = append(details, detail)
	}
	*d = details
	return nil
}

// DecodeRawReports decodes a JSON array of reports element by element. An
// element that fails to decode is returned with DecodeErr set, carrying
// whatever sheetName and rowIndex could still be read from it. Only a body
// that is not an array is an error.
func DecodeRawReports(data []byte) ([]RawReport, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal(data, &elements); err != nil {
		return nil, err
	}
	rows := make([]RawReport, 0, len(elements))
	for _, element := range elements {
		var row RawReport
		if err := json.Unmarshal(element, &row); err != nil {
			row = rowLocation(element)
			row.DecodeErr = err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func rowLocation(element json.RawMessage) RawReport {
	var row RawReport
	var fields map[string]json.RawMessage
	if json.Unmarshal(element, &fields) != nil {
		return row
	}
	var sheet LooseString
	if raw, ok := fields["sheetName"]; ok && json.Unmarshal(raw, &sheet) == nil {
		row.SheetName = sheet.Trimmed()
	}
	var index LooseString
	if raw, ok := fields["rowIndex"]; ok && json.Unmarshal(raw, &index) == nil {
		if value, err := strconv.Atoi(index.Trimmed()); err == nil {
			row.RowIndex = &value
		}
	}
	return row
}
