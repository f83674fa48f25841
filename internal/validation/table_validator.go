package validation

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	apperrors "salescleanup/internal/errors"
	"salescleanup/pkg/contracts/domain"
)

// Rules checked on a cleaned table
const (
	RuleFieldMissing  = "field_missing"
	RuleTotalMismatch = "total_mismatch"
	RuleDuplicate     = "duplicate"
	RuleUnsorted      = "unsorted"
	RuleRowID         = "row_id"
)

// Channels are the Store_Location values produced by the location mapping
var Channels = []string{"Online", "Physical"}

// Violation is one broken rule on one row
type Violation struct {
	RowID   int    `json:"row_id"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// TableReport is the outcome of validating a cleaned table
type TableReport struct {
	Rows       int         `json:"rows"`
	Violations []Violation `json:"violations,omitempty"`
	// OtherLocations lists Store_Location values outside Channels; they are
	// passed through by the mapping and are not violations.
	OtherLocations []string `json:"other_locations,omitempty"`
}

// Valid reports whether no rule was broken
func (r *TableReport) Valid() bool {
	return len(r.Violations) == 0
}

// Err returns a VALIDATION error summarising the violations, or nil
func (r *TableReport) Err() error {
	if r.Valid() {
		return nil
	}
	counts := make(map[string]int)
	var rules []string
	for _, v := range r.Violations {
		if counts[v.Rule] == 0 {
			rules = append(rules, v.Rule)
		}
		counts[v.Rule]++
	}
	parts := make([]string, len(rules))
	for i, rule := range rules {
		parts[i] = fmt.Sprintf("%s=%d", rule, counts[rule])
	}
	return apperrors.NewValidationError(
		fmt.Sprintf("cleaned table has %d violations (%s)", len(r.Violations), strings.Join(parts, ", ")), nil).
		WithContext("first", r.Violations[0])
}

// TableValidator checks the post-conditions of a cleaned table
type TableValidator struct {
	validate *validator.Validate
	logger   *slog.Logger
}

// NewTableValidator creates a validator for cleaned tables
func NewTableValidator(logger *slog.Logger) *TableValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &TableValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

// Validate checks every row of a cleaned table
func (v *TableValidator) Validate(rows []domain.Transaction) *TableReport {
	report := &TableReport{Rows: len(rows)}
	add := func(rowID int, rule, format string, args ...any) {
		report.Violations = append(report.Violations, Violation{
			RowID:   rowID,
			Rule:    rule,
			Message: fmt.Sprintf(format, args...),
		})
	}

	seen := make(map[string]int, len(rows))
	others := make(map[string]bool)

	for i := range rows {
		tx := &rows[i]

		if err := v.validate.Struct(tx); err != nil {
			if verrs, ok := err.(validator.ValidationErrors); ok {
				for _, fe := range verrs {
					add(tx.RowID, RuleFieldMissing, "%s is empty", fe.Field())
				}
			} else {
				add(tx.RowID, RuleFieldMissing, "%v", err)
			}
		}
		for f := domain.FieldCustomerID; f <= domain.FieldTotalSales; f++ {
			if tx.IsMissing(f) {
				add(tx.RowID, RuleFieldMissing, "%s is missing", f)
			}
		}

		if !tx.UnitPrice.Equal(tx.UnitPrice.Round(2)) || !LineTotalMatches(tx.Quantity, tx.UnitPrice, tx.TotalSales) {
			add(tx.RowID, RuleTotalMismatch, "Total_Sales %s != round(%s * %s, 2)",
				tx.TotalSales.String(), tx.Quantity.String(), tx.UnitPrice.String())
		}

		key := tx.Key()
		if first, dup := seen[key]; dup {
			add(tx.RowID, RuleDuplicate, "duplicates row %d", first)
		} else {
			seen[key] = tx.RowID
		}

		if i > 0 && tx.Date.Before(rows[i-1].Date) {
			add(tx.RowID, RuleUnsorted, "date %s precedes previous row", tx.Date.Format("2006-01-02 15:04:05"))
		}
		if tx.RowID != i {
			add(tx.RowID, RuleRowID, "row id %d at position %d", tx.RowID, i)
		}

		if !isChannel(tx.StoreLocation) && !others[tx.StoreLocation] {
			others[tx.StoreLocation] = true
			report.OtherLocations = append(report.OtherLocations, tx.StoreLocation)
		}
	}

	if len(report.OtherLocations) > 0 {
		v.logger.Warn("Store locations outside the channel mapping",
			slog.Any("locations", report.OtherLocations))
	}
	v.logger.Debug("Cleaned table validated",
		slog.Int("rows", report.Rows),
		slog.Int("violations", len(report.Violations)))

	return report
}

func isChannel(location string) bool {
	for _, c := range Channels {
		if c == location {
			return true
		}
	}
	return false
}

// LineTotalMatches reports whether total equals round(quantity * price, 2)
func LineTotalMatches(quantity, price, total decimal.Decimal) bool {
	return total.Equal(quantity.Mul(price).Round(2))
}
