package model

import (
	"strconv"
	"strings"
	"time"
)

// FilterRequest is the search endpoint body. All filters are optional.
// Malformed optional scalars (age, date) degrade to absent instead of
// failing the request; enum and pagination violations are rejected by
// validation before the request reaches the service.
type FilterRequest struct {
	SearchQuery string `json:"search_query"`

	CustomerRegions   []string `json:"customer_regions"`
	Genders           []string `json:"genders"`
	AgeMin            FlexInt  `json:"age_min" validate:"omitempty,gte=0,lte=150"`
	AgeMax            FlexInt  `json:"age_max" validate:"omitempty,gte=0,lte=150"`
	ProductCategories []string `json:"product_categories"`
	Tags              []string `json:"tags"`
	PaymentMethods    []string `json:"payment_methods"`
	DateStart         FlexDate `json:"date_start"`
	DateEnd           FlexDate `json:"date_end"`

	SortBy    string `json:"sort_by" validate:"omitempty,oneof=date quantity customer_name"`
	SortOrder string `json:"sort_order" validate:"omitempty,oneof=asc desc"`

	Page     *int `json:"page" validate:"omitnil,gte=1"`
	PageSize *int `json:"page_size" validate:"omitnil,gte=1,lte=100"`
}

// Normalize fills defaults for fields the client left out. Call after
// validation has passed.
func (r *FilterRequest) Normalize() {
	if r.SortBy == "" {
		r.SortBy = "date"
	}
	if r.SortOrder == "" {
		r.SortOrder = "desc"
	}
	if r.Page == nil {
		page := 1
		r.Page = &page
	}
	if r.PageSize == nil {
		size := 10
		r.PageSize = &size
	}
}

// FlexInt is an optional integer tolerant of sloppy client input: JSON
// numbers, numeric strings, "", and null are all accepted; anything
// unparseable degrades to absent rather than erroring.
type FlexInt struct {
	Value int
	Set   bool
}

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	f.Value, f.Set = 0, false
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}
	s = strings.TrimSpace(strings.Trim(s, `"`))
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	f.Value, f.Set = n, true
	return nil
}

// Ptr returns the value as *int, nil when absent.
func (f FlexInt) Ptr() *int {
	if !f.Set {
		return nil
	}
	v := f.Value
	return &v
}

// FlexDate is an optional calendar date accepted as an ISO-8601 string.
// Empty or unparseable input degrades to absent.
type FlexDate struct {
	Value time.Time
	Set   bool
}

func (f *FlexDate) UnmarshalJSON(data []byte) error {
	f.Value, f.Set = time.Time{}, false
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}
	s = strings.TrimSpace(strings.Trim(s, `"`))
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	f.Value, f.Set = t, true
	return nil
}

// Ptr returns the value as *time.Time, nil when absent.
func (f FlexDate) Ptr() *time.Time {
	if !f.Set {
		return nil
	}
	v := f.Value
	return &v
}

// SalesRecord is the response projection of a SalesTransaction. No field
// is ever null: absent strings render as "", absent numerics as zero, the
// raw tags column is exploded into labels, and the date renders as
// YYYY-MM-DD ("" when missing).
type SalesRecord struct {
	ID                 uint     `json:"id"`
	CustomerID         string   `json:"customer_id"`
	CustomerName       string   `json:"customer_name"`
	PhoneNumber        string   `json:"phone_number"`
	Gender             string   `json:"gender"`
	Age                int      `json:"age"`
	CustomerRegion     string   `json:"customer_region"`
	CustomerType       string   `json:"customer_type"`
	ProductID          string   `json:"product_id"`
	ProductName        string   `json:"product_name"`
	Brand              string   `json:"brand"`
	ProductCategory    string   `json:"product_category"`
	Tags               []string `json:"tags"`
	Quantity           int      `json:"quantity"`
	PricePerUnit       float64  `json:"price_per_unit"`
	DiscountPercentage float64  `json:"discount_percentage"`
	TotalAmount        float64  `json:"total_amount"`
	FinalAmount        float64  `json:"final_amount"`
	Date               string   `json:"date"`
	PaymentMethod      string   `json:"payment_method"`
	OrderStatus        string   `json:"order_status"`
	DeliveryType       string   `json:"delivery_type"`
	StoreID            string   `json:"store_id"`
	StoreLocation      string   `json:"store_location"`
	SalespersonID      string   `json:"salesperson_id"`
	EmployeeName       string   `json:"employee_name"`
}

// SearchResult is one page of records plus the pagination metadata the
// frontend needs for its controls.
type SearchResult struct {
	Data        []SalesRecord `json:"data"`
	TotalCount  int64         `json:"total_count"`
	Page        int           `json:"page"`
	PageSize    int           `json:"page_size"`
	TotalPages  int           `json:"total_pages"`
	HasNext     bool          `json:"has_next"`
	HasPrevious bool          `json:"has_previous"`
}

// FilterOptions lists the distinct values available for each filter
// control. The lists are advisory and capped; a value outside them can
// still be a valid filter input.
type FilterOptions struct {
	CustomerRegions   []string `json:"customer_regions"`
	Genders           []string `json:"genders"`
	ProductCategories []string `json:"product_categories"`
	PaymentMethods    []string `json:"payment_methods"`
	Tags              []string `json:"tags"`
}
