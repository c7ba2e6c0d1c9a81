package service

import (
	"sort"

	"go-sales-api/internal/model"
	"go-sales-api/internal/query"
	"go-sales-api/internal/repository"
)

// Facet result caps. Facet lists are advisory input for UI dropdowns, not
// an authoritative set of valid filter values, so bounding them trades a
// little completeness on high-cardinality data for predictable cost.
const (
	facetValueCap    = 100  // per simple field
	tagVocabularyCap = 50   // exploded tag labels
	rawTagScanLimit  = 1000 // distinct raw tag strings scanned
)

type SalesService interface {
	SearchSales(req *model.FilterRequest) (*model.SearchResult, error)
	GetFilterOptions() (*model.FilterOptions, error)
}

type salesService struct {
	repo repository.SalesRepository
}

func NewSalesService(repo repository.SalesRepository) SalesService {
	return &salesService{repo: repo}
}

// SearchSales compiles the request into a predicate plan, executes the
// count and page round-trips, and shapes the rows for the response. The
// request must already be validated and normalized.
func (s *salesService) SearchSales(req *model.FilterRequest) (*model.SearchResult, error) {
	plan := query.Compile(req)
	page, pageSize := *req.Page, *req.PageSize

	total, rows, err := s.repo.Search(plan, page, pageSize)
	if err != nil {
		return nil, err
	}

	totalPages := 1
	if total > 0 {
		totalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}

	records := make([]model.SalesRecord, 0, len(rows))
	for i := range rows {
		records = append(records, shapeRecord(&rows[i]))
	}

	return &model.SearchResult{
		Data:        records,
		TotalCount:  total,
		Page:        page,
		PageSize:    pageSize,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}, nil
}

// shapeRecord maps a raw row to the response projection. Total: it never
// fails, NULL strings become "" and NULL numerics become zero.
func shapeRecord(row *model.SalesTransaction) model.SalesRecord {
	date := ""
	if row.TransactionDate != nil {
		date = row.TransactionDate.Format("2006-01-02")
	}
	return model.SalesRecord{
		ID:                 row.ID,
		CustomerID:         strOrEmpty(row.CustomerID),
		CustomerName:       strOrEmpty(row.CustomerName),
		PhoneNumber:        strOrEmpty(row.PhoneNumber),
		Gender:             strOrEmpty(row.Gender),
		Age:                intOrZero(row.Age),
		CustomerRegion:     strOrEmpty(row.CustomerRegion),
		CustomerType:       strOrEmpty(row.CustomerType),
		ProductID:          strOrEmpty(row.ProductID),
		ProductName:        strOrEmpty(row.ProductName),
		Brand:              strOrEmpty(row.Brand),
		ProductCategory:    strOrEmpty(row.ProductCategory),
		Tags:               model.SplitTags(strOrEmpty(row.Tags)),
		Quantity:           intOrZero(row.Quantity),
		PricePerUnit:       floatOrZero(row.PricePerUnit),
		DiscountPercentage: floatOrZero(row.DiscountPercentage),
		TotalAmount:        floatOrZero(row.TotalAmount),
		FinalAmount:        floatOrZero(row.FinalAmount),
		Date:               date,
		PaymentMethod:      strOrEmpty(row.PaymentMethod),
		OrderStatus:        strOrEmpty(row.OrderStatus),
		DeliveryType:       strOrEmpty(row.DeliveryType),
		StoreID:            strOrEmpty(row.StoreID),
		StoreLocation:      strOrEmpty(row.StoreLocation),
		SalespersonID:      strOrEmpty(row.SalespersonID),
		EmployeeName:       strOrEmpty(row.EmployeeName),
	}
}

// GetFilterOptions collects the distinct values for every filter
// dropdown. The tags vocabulary is built from a bounded scan of distinct
// raw tag strings, exploded and deduplicated.
func (s *salesService) GetFilterOptions() (*model.FilterOptions, error) {
	regions, err := s.repo.DistinctValues(query.ColCustomerRegion, facetValueCap)
	if err != nil {
		return nil, err
	}
	genders, err := s.repo.DistinctValues(query.ColGender, facetValueCap)
	if err != nil {
		return nil, err
	}
	categories, err := s.repo.DistinctValues(query.ColProductCategory, facetValueCap)
	if err != nil {
		return nil, err
	}
	payments, err := s.repo.DistinctValues(query.ColPaymentMethod, facetValueCap)
	if err != nil {
		return nil, err
	}
	tags, err := s.collectTagVocabulary()
	if err != nil {
		return nil, err
	}

	return &model.FilterOptions{
		CustomerRegions:   regions,
		Genders:           genders,
		ProductCategories: categories,
		PaymentMethods:    payments,
		Tags:              tags,
	}, nil
}

func (s *salesService) collectTagVocabulary() ([]string, error) {
	raw, err := s.repo.DistinctRawTags(rawTagScanLimit)
	if err != nil {
		return nil, err
	}
	unique := make(map[string]struct{})
	for _, r := range raw {
		for _, label := range model.SplitTags(r) {
			unique[label] = struct{}{}
		}
	}
	labels := make([]string, 0, len(unique))
	for label := range unique {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	if len(labels) > tagVocabularyCap {
		labels = labels[:tagVocabularyCap]
	}
	return labels, nil
}

func strOrEmpty(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
