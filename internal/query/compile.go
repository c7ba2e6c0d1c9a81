package query

import (
	"go-sales-api/internal/model"
)

// Compile turns a validated, normalized FilterRequest into a Plan. Pure:
// no store access, no side effects. Absent filters contribute no
// predicate; present ones are AND-combined by the executor in the order
// emitted here.
func Compile(req *model.FilterRequest) Plan {
	var preds []Predicate

	// The query is taken verbatim, whitespace included: "  " searches
	// for two literal spaces.
	if req.SearchQuery != "" {
		preds = append(preds, SubstringOr{
			Fields: []string{ColCustomerName, ColPhoneNumber},
			Term:   req.SearchQuery,
		})
	}

	if vals := dedupe(req.CustomerRegions); len(vals) > 0 {
		preds = append(preds, InSet{Field: ColCustomerRegion, Values: vals})
	}
	if vals := dedupe(req.Genders); len(vals) > 0 {
		preds = append(preds, InSet{Field: ColGender, Values: vals})
	}

	// Inverted bounds pass through untouched: they match zero rows,
	// which is correct, not an error.
	if req.AgeMin.Set || req.AgeMax.Set {
		r := Range{Field: ColAge}
		if req.AgeMin.Set {
			r.Min = req.AgeMin.Value
		}
		if req.AgeMax.Set {
			r.Max = req.AgeMax.Value
		}
		preds = append(preds, r)
	}

	if vals := dedupe(req.ProductCategories); len(vals) > 0 {
		preds = append(preds, InSet{Field: ColProductCategory, Values: vals})
	}

	// One clause for all requested tags: a row matches if ANY tag occurs
	// as a raw substring of the delimited column.
	if vals := dedupe(req.Tags); len(vals) > 0 {
		preds = append(preds, SubstringAny{Field: ColTags, Terms: vals})
	}

	if vals := dedupe(req.PaymentMethods); len(vals) > 0 {
		preds = append(preds, InSet{Field: ColPaymentMethod, Values: vals})
	}

	if req.DateStart.Set || req.DateEnd.Set {
		r := Range{Field: ColTransactionDate}
		if req.DateStart.Set {
			r.Min = req.DateStart.Value
		}
		if req.DateEnd.Set {
			r.Max = req.DateEnd.Value
		}
		preds = append(preds, r)
	}

	return Plan{
		Predicates: preds,
		Sort:       compileSort(req.SortBy, req.SortOrder),
	}
}

func compileSort(sortBy, sortOrder string) Sort {
	field := ColTransactionDate
	switch sortBy {
	case "quantity":
		field = ColQuantity
	case "customer_name":
		field = ColCustomerName
	}
	return Sort{Field: field, Desc: sortOrder != "asc"}
}

// dedupe collapses duplicates, keeps first-seen order. Empty strings are
// legal set members: a list of [""] still compiles to a membership
// clause and matches only rows whose column is the empty string.
func dedupe(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
