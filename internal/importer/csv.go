// Package importer reads transactions from CSV exports. Banks disagree on
// column names and date formats, so header matching and date parsing are
// deliberately forgiving.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/calmcoin/penny/internal/common"
	"github.com/calmcoin/penny/internal/dates"
	"github.com/calmcoin/penny/internal/model"
)

// Date layouts tried in order when a cell isn't an informal token.
var csvDateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006",
}

// CSVParser converts CSV rows to transactions.
type CSVParser struct {
	now func() time.Time
}

// NewCSVParser creates a parser. The clock resolves informal date tokens.
func NewCSVParser(now func() time.Time) *CSVParser {
	if now == nil {
		now = time.Now
	}
	return &CSVParser{now: now}
}

// Parse reads an entire CSV document. The first row must be a header naming
// at least a date, name, and amount column. Rows that cannot be parsed are
// skipped with a warning rather than failing the import.
func (p *CSVParser) Parse(reader io.Reader) ([]model.Transaction, error) {
	r := csv.NewReader(reader)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	cols, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var txns []model.Transaction
	line := 1
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			slog.Warn("skipping malformed CSV row", "line", line, "error", err)
			continue
		}

		txn, err := p.parseRow(record, cols)
		if err != nil {
			slog.Warn("skipping unparseable CSV row", "line", line, "error", err)
			continue
		}
		txns = append(txns, txn)
	}

	slog.Info("Parsed CSV file", "total_transactions", len(txns))
	return txns, nil
}

// columns maps semantic fields to header indexes. Optional fields are -1.
type columns struct {
	date     int
	name     int
	amount   int
	category int
}

func mapColumns(header []string) (columns, error) {
	cols := columns{date: -1, name: -1, amount: -1, category: -1}

	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "date", "posted", "transaction date":
			cols.date = i
		case "name", "description", "payee", "merchant":
			cols.name = i
		case "amount", "value":
			cols.amount = i
		case "category":
			cols.category = i
		}
	}

	if cols.date < 0 || cols.name < 0 || cols.amount < 0 {
		return cols, fmt.Errorf("%w: CSV header needs date, name, and amount columns", common.ErrInvalidInput)
	}
	return cols, nil
}

func (p *CSVParser) parseRow(record []string, cols columns) (model.Transaction, error) {
	if len(record) <= cols.date || len(record) <= cols.name || len(record) <= cols.amount {
		return model.Transaction{}, fmt.Errorf("%w: row too short", common.ErrInvalidInput)
	}

	name := strings.TrimSpace(record[cols.name])
	if name == "" {
		return model.Transaction{}, fmt.Errorf("%w: empty name", common.ErrInvalidInput)
	}

	amount, err := parseAmount(record[cols.amount])
	if err != nil {
		return model.Transaction{}, err
	}

	token, err := p.parseDate(record[cols.date])
	if err != nil {
		return model.Transaction{}, err
	}

	txn := model.Transaction{
		Name:   name,
		Amount: amount,
		Date:   token,
		Type:   model.DirectionType(amount),
		Source: "csv",
	}
	if cols.category >= 0 && len(record) > cols.category {
		txn.Category = strings.TrimSpace(record[cols.category])
	}
	txn.Hash = txn.GenerateHash()

	return txn, nil
}

// parseDate normalizes a cell to the informal token form. Cells that already
// hold informal tokens pass through unchanged.
func (p *CSVParser) parseDate(cell string) (string, error) {
	cell = strings.TrimSpace(cell)
	if _, ok := dates.Parse(cell, p.now()); ok {
		return cell, nil
	}

	for _, layout := range csvDateLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return dates.Token(t), nil
		}
	}
	return "", fmt.Errorf("%w: unparseable date %q", common.ErrInvalidInput, cell)
}

// parseAmount handles currency symbols, thousands separators, and the
// parenthesized-negative convention some exports use.
func parseAmount(cell string) (float64, error) {
	cell = strings.TrimSpace(cell)

	negative := false
	if strings.HasPrefix(cell, "(") && strings.HasSuffix(cell, ")") {
		negative = true
		cell = cell[1 : len(cell)-1]
	}

	cell = strings.ReplaceAll(cell, "$", "")
	cell = strings.ReplaceAll(cell, ",", "")

	amount, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: unparseable amount %q", common.ErrInvalidInput, cell)
	}
	if negative {
		amount = -amount
	}
	return amount, nil
}
