package repository

import (
	"fmt"
	"strings"

	"go-sales-api/internal/model"
	"go-sales-api/internal/query"

	"gorm.io/gorm"
)

type SalesRepository interface {
	// Search runs two round-trips against the same plan: a count of all
	// matching rows, then one page of rows ordered by the plan's sort.
	// The round-trips are not wrapped in a transaction; a concurrent
	// write between them may make the count disagree with the page
	// (accepted, reads stay cheap).
	Search(plan query.Plan, page, pageSize int) (int64, []model.SalesTransaction, error)
	DistinctValues(column string, limit int) ([]string, error)
	DistinctRawTags(limit int) ([]string, error)
}

type salesRepo struct {
	db *gorm.DB
}

func NewSalesRepo(db *gorm.DB) SalesRepository {
	return &salesRepo{db}
}

func (r *salesRepo) Search(plan query.Plan, page, pageSize int) (int64, []model.SalesTransaction, error) {
	filtered := func(tx *gorm.DB) *gorm.DB {
		return applyPredicates(tx, plan.Predicates)
	}

	var total int64
	if err := r.db.Model(&model.SalesTransaction{}).Scopes(filtered).Count(&total).Error; err != nil {
		return 0, nil, fmt.Errorf("count query failed: %w", err)
	}

	// id ASC tie-break keeps pagination reproducible when the primary
	// sort column has duplicates.
	direction := "ASC"
	if plan.Sort.Desc {
		direction = "DESC"
	}

	var rows []model.SalesTransaction
	err := r.db.Model(&model.SalesTransaction{}).
		Scopes(filtered).
		Order(plan.Sort.Field + " " + direction + ", id ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&rows).Error
	if err != nil {
		return 0, nil, fmt.Errorf("data query failed: %w", err)
	}

	return total, rows, nil
}

// applyPredicates translates the plan mechanically into parameterized
// Where clauses. Column names come from the query package's fixed
// constants, values always travel as bind parameters.
func applyPredicates(tx *gorm.DB, preds []query.Predicate) *gorm.DB {
	for _, p := range preds {
		switch pred := p.(type) {
		case query.Equals:
			tx = tx.Where(pred.Field+" = ?", pred.Value)

		case query.InSet:
			tx = tx.Where(pred.Field+" IN ?", pred.Values)

		case query.Range:
			if pred.Min != nil {
				tx = tx.Where(pred.Field+" >= ?", pred.Min)
			}
			if pred.Max != nil {
				tx = tx.Where(pred.Field+" <= ?", pred.Max)
			}

		case query.SubstringOr:
			// Explicit lower() on both sides; store collation is not
			// trusted to be case-insensitive.
			pattern := "%" + strings.ToLower(pred.Term) + "%"
			conds := make([]string, len(pred.Fields))
			args := make([]interface{}, len(pred.Fields))
			for i, field := range pred.Fields {
				conds[i] = "LOWER(" + field + ") LIKE ?"
				args[i] = pattern
			}
			tx = tx.Where("("+strings.Join(conds, " OR ")+")", args...)

		case query.SubstringAny:
			conds := make([]string, len(pred.Terms))
			args := make([]interface{}, len(pred.Terms))
			for i, term := range pred.Terms {
				conds[i] = pred.Field + " LIKE ?"
				args[i] = "%" + term + "%"
			}
			tx = tx.Where("("+strings.Join(conds, " OR ")+")", args...)
		}
	}
	return tx
}

func (r *salesRepo) DistinctValues(column string, limit int) ([]string, error) {
	if !facetColumns[column] {
		return nil, fmt.Errorf("column %q is not facetable", column)
	}
	var values []string
	err := r.db.Model(&model.SalesTransaction{}).
		Distinct().
		Where(column+" IS NOT NULL AND "+column+" <> ''").
		Order(column+" ASC").
		Limit(limit).
		Pluck(column, &values).Error
	if err != nil {
		return nil, fmt.Errorf("distinct query failed: %w", err)
	}
	return values, nil
}

// DistinctRawTags returns at most limit distinct raw tag strings. The
// bound keeps the facet scan from degenerating into a full-table sweep
// on high-cardinality data.
func (r *salesRepo) DistinctRawTags(limit int) ([]string, error) {
	var values []string
	err := r.db.Model(&model.SalesTransaction{}).
		Distinct().
		Where(query.ColTags+" IS NOT NULL AND "+query.ColTags+" <> ''").
		Order(query.ColTags+" ASC").
		Limit(limit).
		Pluck(query.ColTags, &values).Error
	if err != nil {
		return nil, fmt.Errorf("distinct tags query failed: %w", err)
	}
	return values, nil
}

var facetColumns = map[string]bool{
	query.ColCustomerRegion:  true,
	query.ColGender:          true,
	query.ColProductCategory: true,
	query.ColPaymentMethod:   true,
}
