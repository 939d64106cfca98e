package analyzer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shandysiswandi/gofta/internal/fta/entity"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// DateTimeLayout is the timestamp layout of the date column.
const DateTimeLayout = "2006-01-02T15:04:05"

const fieldsPerRecord = 8

var columnNames = [fieldsPerRecord]string{
	"origin bank",
	"origin agency",
	"origin account",
	"destination bank",
	"destination agency",
	"destination account",
	"amount",
	"date",
}

func parseRecord(record []string) (entity.Transaction, error) {
	if len(record) != fieldsPerRecord {
		return entity.Transaction{}, fmt.Errorf("expected %d fields, got %d", fieldsPerRecord, len(record))
	}

	fields := make([]string, fieldsPerRecord)
	for i := range record {
		fields[i] = strings.TrimSpace(record[i])
		if fields[i] == "" {
			return entity.Transaction{}, fmt.Errorf("missing %s", columnNames[i])
		}
	}

	amount, err := decimal.NewFromString(fields[6])
	if err != nil {
		return entity.Transaction{}, fmt.Errorf("invalid amount: %w", err)
	}
	if !amount.IsPositive() {
		return entity.Transaction{}, errors.New("amount must be positive")
	}

	date, err := parseDate(fields[7])
	if err != nil {
		return entity.Transaction{}, err
	}

	return entity.Transaction{
		OriginBank:         fields[0],
		OriginAgency:       fields[1],
		OriginAccount:      fields[2],
		DestinationBank:    fields[3],
		DestinationAgency:  fields[4],
		DestinationAccount: fields[5],
		Amount:             amount,
		Date:               date,
	}, nil
}

// parseDate accepts the text layout and, for spreadsheets, Excel serial dates.
func parseDate(value string) (time.Time, error) {
	date, err := time.Parse(DateTimeLayout, value)
	if err == nil {
		return date, nil
	}

	serial, serr := strconv.ParseFloat(value, 64)
	if serr != nil {
		return time.Time{}, fmt.Errorf("invalid date: %w", err)
	}

	date, serr = excelize.ExcelDateToTime(serial, false)
	if serr != nil {
		return time.Time{}, fmt.Errorf("invalid date: %w", serr)
	}

	return date.Round(time.Second).UTC(), nil
}
