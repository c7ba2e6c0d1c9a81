package query

import (
	"strings"
	"time"

	"go-sales-api/internal/model"
)

// Matches evaluates a plan against one row in memory, with the same
// semantics the SQL translation produces (including SQL NULL comparison
// behavior: a NULL column never satisfies a bound or membership test).
// It backs store-free tests and any in-memory execution of a plan.
func Matches(plan Plan, row *model.SalesTransaction) bool {
	for _, p := range plan.Predicates {
		if !matchPredicate(p, row) {
			return false
		}
	}
	return true
}

func matchPredicate(p Predicate, row *model.SalesTransaction) bool {
	switch pred := p.(type) {
	case Equals:
		val, ok := stringColumn(row, pred.Field)
		return ok && val == pred.Value

	case InSet:
		val, ok := stringColumn(row, pred.Field)
		if !ok {
			return false
		}
		for _, v := range pred.Values {
			if val == v {
				return true
			}
		}
		return false

	case SubstringOr:
		term := strings.ToLower(pred.Term)
		for _, field := range pred.Fields {
			if val, ok := stringColumn(row, field); ok &&
				strings.Contains(strings.ToLower(val), term) {
				return true
			}
		}
		return false

	case SubstringAny:
		val, ok := stringColumn(row, pred.Field)
		if !ok {
			return false
		}
		for _, term := range pred.Terms {
			if strings.Contains(val, term) {
				return true
			}
		}
		return false

	case Range:
		return matchRange(pred, row)
	}
	return false
}

func matchRange(pred Range, row *model.SalesTransaction) bool {
	switch pred.Field {
	case ColAge:
		if row.Age == nil {
			return pred.Min == nil && pred.Max == nil
		}
		if pred.Min != nil && *row.Age < pred.Min.(int) {
			return false
		}
		if pred.Max != nil && *row.Age > pred.Max.(int) {
			return false
		}
		return true
	case ColTransactionDate:
		if row.TransactionDate == nil {
			return pred.Min == nil && pred.Max == nil
		}
		d := *row.TransactionDate
		if pred.Min != nil && d.Before(pred.Min.(time.Time)) {
			return false
		}
		if pred.Max != nil && d.After(pred.Max.(time.Time)) {
			return false
		}
		return true
	}
	return false
}

func stringColumn(row *model.SalesTransaction, col string) (string, bool) {
	var v *string
	switch col {
	case ColCustomerName:
		v = row.CustomerName
	case ColPhoneNumber:
		v = row.PhoneNumber
	case ColGender:
		v = row.Gender
	case ColCustomerRegion:
		v = row.CustomerRegion
	case ColProductCategory:
		v = row.ProductCategory
	case ColTags:
		v = row.Tags
	case ColPaymentMethod:
		v = row.PaymentMethod
	}
	if v == nil {
		return "", false
	}
	return *v, true
}
