package dataprocessing

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "salespulse/internal/errors"
	"salespulse/pkg/contracts/domain"
)

// ColumnSpec lists the header names accepted for one canonical field, the
// canonical name first.
type ColumnSpec struct {
	Field    string
	Aliases  []string
	Required bool
}

// Columns is the recognised sales row layout
var Columns = []ColumnSpec{
	{Field: domain.ColumnItemName, Aliases: []string{"ITNAME", "ITEM NAME", "PRODUCT", "PRODUCT NAME"}, Required: true},
	{Field: domain.ColumnQuantity, Aliases: []string{"QTY", "QUANTITY"}, Required: true},
	{Field: domain.ColumnTaxableAmount, Aliases: []string{"TAXBLEAMT", "NAMT", "TAXABLE AMOUNT"}, Required: true},
	{Field: domain.ColumnGSTRate, Aliases: []string{"GST", "PER", "GST RATE"}, Required: true},
	{Field: domain.ColumnHSNCode, Aliases: []string{"HSNCODE", "HSN", "HSN CODE"}},
}

// structFieldColumns maps SalesRecord fields to the column reported in errors
var structFieldColumns = map[string]string{
	"ItemName":      domain.ColumnItemName,
	"Quantity":      domain.ColumnQuantity,
	"TaxableAmount": domain.ColumnTaxableAmount,
	"GSTRate":       domain.ColumnGSTRate,
	"HSNCode":       domain.ColumnHSNCode,
}

// Normalizer maps heterogeneous rows onto SalesRecord
type Normalizer struct {
	validate *validator.Validate
}

// NewNormalizer creates a normalizer
func NewNormalizer() *Normalizer {
	return &Normalizer{validate: validator.New()}
}

func headerKey(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// headerNames orders the names of row so that, among names folding to the
// same header, the one spelled exactly as the header comes first and the
// rest follow in byte order.
func headerNames(row domain.RawRow) []string {
	names := make([]string, 0, len(row))
	for name := range row {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ei, ej := names[i] == headerKey(names[i]), names[j] == headerKey(names[j])
		if ei != ej {
			return ei
		}
		return names[i] < names[j]
	})
	return names
}

// Normalize converts rows to records in input order. Rows whose cells are
// all blank are skipped. Row numbers in errors are 1-based positions in rows.
func (n *Normalizer) Normalize(rows []domain.RawRow) ([]domain.SalesRecord, error) {
	if err := checkColumns(rows); err != nil {
		return nil, err
	}

	records := make([]domain.SalesRecord, 0, len(rows))
	for i, row := range rows {
		if isBlankRow(row) {
			continue
		}
		rec, err := n.NormalizeRow(i+1, row)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// checkColumns fails when a required field has no accepted header in any row
func checkColumns(rows []domain.RawRow) error {
	if len(rows) == 0 {
		return nil
	}

	present := make(map[string]bool)
	var available []string
	for _, row := range rows {
		for _, name := range headerNames(row) {
			key := headerKey(name)
			if !present[key] {
				present[key] = true
				available = append(available, strings.TrimSpace(name))
			}
		}
	}

	for _, spec := range Columns {
		if !spec.Required {
			continue
		}
		found := false
		for _, alias := range spec.Aliases {
			if present[alias] {
				found = true
				break
			}
		}
		if !found {
			sort.Strings(available)
			return &apperrors.MissingColumnError{Field: spec.Field, Aliases: spec.Aliases, Available: available}
		}
	}
	return nil
}

// NormalizeRow converts one row. rowNum is only used in errors.
func (n *Normalizer) NormalizeRow(rowNum int, row domain.RawRow) (domain.SalesRecord, error) {
	cells := make(map[string]interface{}, len(row))
	for _, name := range headerNames(row) {
		key := headerKey(name)
		if _, dup := cells[key]; !dup {
			cells[key] = row[name]
		}
	}

	lookup := func(spec ColumnSpec) interface{} {
		for _, alias := range spec.Aliases {
			if v, ok := cells[alias]; ok {
				return v
			}
		}
		return nil
	}

	var rec domain.SalesRecord
	var err error

	rec.ItemName = strings.TrimSpace(cellString(lookup(Columns[0])))
	if rec.Quantity, err = parseNumber(rowNum, domain.ColumnQuantity, lookup(Columns[1])); err != nil {
		return rec, err
	}
	if rec.TaxableAmount, err = parseNumber(rowNum, domain.ColumnTaxableAmount, lookup(Columns[2])); err != nil {
		return rec, err
	}
	if rec.GSTRate, err = parseNumber(rowNum, domain.ColumnGSTRate, lookup(Columns[3])); err != nil {
		return rec, err
	}
	rec.HSNCode = strings.TrimSpace(cellString(lookup(Columns[4])))

	if err := n.validate.Struct(rec); err != nil {
		return rec, validationToInvalidValue(rowNum, rec, err)
	}
	return rec, nil
}

func validationToInvalidValue(rowNum int, rec domain.SalesRecord, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]

	reason := fmt.Sprintf("failed %s check", fe.Tag())
	switch fe.Tag() {
	case "required":
		reason = "must not be empty"
	case "gte":
		reason = "must not be negative"
	case "lte":
		reason = "must not exceed " + fe.Param()
	}

	value := ""
	if fe.StructField() != "ItemName" {
		value = strconv.FormatFloat(toFloat(fe.Value()), 'f', -1, 64)
	}

	return &apperrors.InvalidValueError{
		Row:    rowNum,
		Field:  structFieldColumns[fe.StructField()],
		Value:  value,
		Reason: reason,
	}
}

func toFloat(v interface{}) float64 {
	if f, ok := v.(float64); ok {
		return f
	}
	return 0
}

// parseNumber reads a numeric cell. Thousands separators and a trailing
// percent sign are accepted; an empty cell is 0.
func parseNumber(rowNum int, field string, v interface{}) (float64, error) {
	invalid := func(raw, reason string) error {
		return &apperrors.InvalidValueError{Row: rowNum, Field: field, Value: raw, Reason: reason}
	}

	var f float64
	switch val := v.(type) {
	case nil:
		return 0, nil
	case float64:
		f = val
	case float32:
		f = float64(val)
	case int:
		f = float64(val)
	case int64:
		f = float64(val)
	case json.Number:
		parsed, err := strconv.ParseFloat(val.String(), 64)
		if err != nil {
			return 0, invalid(val.String(), "not a number")
		}
		f = parsed
	case string:
		s := strings.TrimSpace(val)
		s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
		s = strings.ReplaceAll(s, ",", "")
		if s == "" {
			return 0, nil
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, invalid(val, "not a number")
		}
		f = parsed
	default:
		return 0, invalid(fmt.Sprint(val), "not a number")
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, invalid(fmt.Sprint(v), "not a finite number")
	}
	return f, nil
}

// cellString renders a cell as text. Whole numbers lose their fraction so
// numeric HSN codes and item names read back as typed.
func cellString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

func isBlankRow(row domain.RawRow) bool {
	for _, v := range row {
		if strings.TrimSpace(cellString(v)) != "" {
			return false
		}
	}
	return true
}
