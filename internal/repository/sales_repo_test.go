package repository

import (
	"fmt"
	"testing"
	"time"

	"go-sales-api/internal/model"
	"go-sales-api/internal/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// One connection, one in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.SalesTransaction{}))
	return db
}

func strPtr(s string) *string { return &s }

func seedDB(t *testing.T, db *gorm.DB, n int) {
	t.Helper()
	rows := make([]model.SalesTransaction, 0, n)
	for i := 1; i <= n; i++ {
		date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i)
		region := "North"
		if i%2 == 0 {
			region = "South"
		}
		category := "Electronics"
		if i%3 == 0 {
			category = "Grocery"
		}
		qty := i % 5
		age := 20 + i
		rows = append(rows, model.SalesTransaction{
			CustomerID:      strPtr(fmt.Sprintf("C%03d", i)),
			CustomerName:    strPtr(fmt.Sprintf("Customer %03d", i)),
			PhoneNumber:     strPtr(fmt.Sprintf("98765%05d", i)),
			Gender:          strPtr("Female"),
			Age:             &age,
			CustomerRegion:  &region,
			ProductCategory: &category,
			Tags:            strPtr("electronics, sale-2024"),
			Quantity:        &qty,
			PaymentMethod:   strPtr("UPI"),
			TransactionDate: &date,
		})
	}
	require.NoError(t, db.CreateInBatches(rows, 100).Error)
}

func TestSearchCountIgnoresPagination(t *testing.T) {
	db := setupDB(t)
	seedDB(t, db, 25)
	repo := NewSalesRepo(db)

	total, rows, err := repo.Search(query.Plan{Sort: query.Sort{Field: query.ColTransactionDate, Desc: true}}, 2, 10)
	require.NoError(t, err)

	assert.Equal(t, int64(25), total)
	assert.Len(t, rows, 10)
}

func TestSearchPageBeyondData(t *testing.T) {
	db := setupDB(t)
	seedDB(t, db, 25)
	repo := NewSalesRepo(db)

	total, rows, err := repo.Search(query.Plan{Sort: query.Sort{Field: query.ColTransactionDate, Desc: true}}, 4, 10)
	require.NoError(t, err)

	assert.Equal(t, int64(25), total)
	assert.Empty(t, rows)
}

func TestSearchTranslatesPredicates(t *testing.T) {
	db := setupDB(t)
	seedDB(t, db, 30)
	repo := NewSalesRepo(db)
	sort := query.Sort{Field: query.ColTransactionDate, Desc: true}

	tests := []struct {
		name      string
		preds     []query.Predicate
		wantTotal int64
	}{
		{
			name:      "in-set region",
			preds:     []query.Predicate{query.InSet{Field: query.ColCustomerRegion, Values: []string{"North"}}},
			wantTotal: 15,
		},
		{
			name:      "equals payment method",
			preds:     []query.Predicate{query.Equals{Field: query.ColPaymentMethod, Value: "UPI"}},
			wantTotal: 30,
		},
		{
			name:      "age range",
			preds:     []query.Predicate{query.Range{Field: query.ColAge, Min: 21, Max: 25}}, // ages 21..50
			wantTotal: 5,
		},
		{
			name:      "inverted age range matches nothing",
			preds:     []query.Predicate{query.Range{Field: query.ColAge, Min: 30, Max: 25}},
			wantTotal: 0,
		},
		{
			name: "date range",
			preds: []query.Predicate{query.Range{
				Field: query.ColTransactionDate,
				Min:   time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
				Max:   time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC),
			}}, // dates 2024-01-02..2024-01-31
			wantTotal: 10,
		},
		{
			name:      "tag substring partial label",
			preds:     []query.Predicate{query.SubstringAny{Field: query.ColTags, Terms: []string{"sale"}}},
			wantTotal: 30,
		},
		{
			name:      "tag substring no overlap",
			preds:     []query.Predicate{query.SubstringAny{Field: query.ColTags, Terms: []string{"grocery-run"}}},
			wantTotal: 0,
		},
		{
			name: "and combination",
			preds: []query.Predicate{
				query.InSet{Field: query.ColCustomerRegion, Values: []string{"North"}},
				query.InSet{Field: query.ColProductCategory, Values: []string{"Grocery"}},
			},
			wantTotal: 5, // odd multiples of 3 up to 30
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, _, err := repo.Search(query.Plan{Predicates: tt.preds, Sort: sort}, 1, 100)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, total)
		})
	}
}

func TestSearchCaseInsensitive(t *testing.T) {
	db := setupDB(t)
	seedDB(t, db, 5)
	require.NoError(t, db.Create(&model.SalesTransaction{
		CustomerName: strPtr("Jane Doe"),
		PhoneNumber:  strPtr("5550001111"),
	}).Error)
	repo := NewSalesRepo(db)

	plan := query.Plan{
		Predicates: []query.Predicate{query.SubstringOr{
			Fields: []string{query.ColCustomerName, query.ColPhoneNumber},
			Term:   "JANE",
		}},
		Sort: query.Sort{Field: query.ColCustomerName},
	}

	total, rows, err := repo.Search(plan, 1, 10)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	assert.Equal(t, "Jane Doe", *rows[0].CustomerName)
}

func TestSearchTieBreakOnID(t *testing.T) {
	db := setupDB(t)
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 6; i++ {
		require.NoError(t, db.Create(&model.SalesTransaction{
			CustomerName:    strPtr("Same Day"),
			TransactionDate: &date,
		}).Error)
	}
	repo := NewSalesRepo(db)
	plan := query.Plan{Sort: query.Sort{Field: query.ColTransactionDate, Desc: true}}

	_, pageOne, err := repo.Search(plan, 1, 3)
	require.NoError(t, err)
	_, pageTwo, err := repo.Search(plan, 2, 3)
	require.NoError(t, err)

	// All sort keys are equal; ids must still paginate without overlap.
	seen := map[uint]bool{}
	for _, row := range append(pageOne, pageTwo...) {
		assert.False(t, seen[row.ID])
		seen[row.ID] = true
	}
	assert.Len(t, seen, 6)
	assert.True(t, pageOne[0].ID < pageOne[1].ID)
}

func TestDistinctValues(t *testing.T) {
	db := setupDB(t)
	seedDB(t, db, 10)
	// Rows with NULL and empty regions must not surface as facet values.
	require.NoError(t, db.Create(&model.SalesTransaction{CustomerRegion: strPtr("")}).Error)
	require.NoError(t, db.Create(&model.SalesTransaction{}).Error)
	repo := NewSalesRepo(db)

	values, err := repo.DistinctValues(query.ColCustomerRegion, 100)
	require.NoError(t, err)
	assert.Equal(t, []string{"North", "South"}, values)
}

func TestDistinctValuesRejectsUnknownColumn(t *testing.T) {
	repo := NewSalesRepo(setupDB(t))

	_, err := repo.DistinctValues("customer_name", 100)
	assert.Error(t, err)
}

func TestDistinctRawTagsBounded(t *testing.T) {
	db := setupDB(t)
	for i := 0; i < 20; i++ {
		tags := fmt.Sprintf("label-%02d", i)
		require.NoError(t, db.Create(&model.SalesTransaction{Tags: &tags}).Error)
	}
	repo := NewSalesRepo(db)

	values, err := repo.DistinctRawTags(5)
	require.NoError(t, err)
	assert.Len(t, values, 5)
}
