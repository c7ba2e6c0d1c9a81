package main

import (
	"encoding/csv"
	"flag"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"go-sales-api/internal/model"
	"go-sales-api/pkg/database"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

const batchSize = 500

func main() {
	appendRows := flag.Bool("append", false, "keep existing rows instead of truncating first")
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatal("Usage: load-data [--append] <path-to-csv>")
	}
	csvPath := flag.Arg(0)

	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	if err := db.AutoMigrate(&model.SalesTransaction{}); err != nil {
		log.Fatal("Failed to migrate schema: ", err)
	}

	if !*appendRows {
		if err := db.Exec("DELETE FROM sales_transactions").Error; err != nil {
			log.Fatal("Failed to clear existing data: ", err)
		}
		log.Println("Cleared existing data")
	}

	// 3. Stream the CSV in batches
	loaded, skipped, err := loadCSV(db, csvPath)
	if err != nil {
		log.Fatalf("Load failed: %v", err)
	}

	log.Printf("Done. Loaded %d rows, skipped %d", loaded, skipped)
}

func loadCSV(db *gorm.DB, path string) (loaded, skipped int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	reader := csv.NewReader(f)

	header, err := reader.Read()
	if err != nil {
		return 0, 0, err
	}
	columns := normalizeHeader(header)
	log.Printf("Columns found: %v", columns)

	var batch []model.SalesTransaction
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed record: count it, keep going.
			skipped++
			continue
		}

		batch = append(batch, buildTransaction(columns, record))
		if len(batch) >= batchSize {
			if err := db.CreateInBatches(batch, batchSize).Error; err != nil {
				return loaded, skipped, err
			}
			loaded += len(batch)
			batch = batch[:0]
			log.Printf("Inserted %d rows...", loaded)
		}
	}

	if len(batch) > 0 {
		if err := db.CreateInBatches(batch, batchSize).Error; err != nil {
			return loaded, skipped, err
		}
		loaded += len(batch)
	}
	return loaded, skipped, nil
}

// normalizeHeader maps CSV headers to column keys: lowercase, trimmed,
// spaces replaced with underscores.
func normalizeHeader(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
		columns[key] = i
	}
	return columns
}

func buildTransaction(columns map[string]int, record []string) model.SalesTransaction {
	return model.SalesTransaction{
		CustomerID:         strField(columns, record, "customer_id"),
		CustomerName:       strField(columns, record, "customer_name"),
		PhoneNumber:        strField(columns, record, "phone_number"),
		Gender:             strField(columns, record, "gender"),
		Age:                intField(columns, record, "age"),
		CustomerRegion:     strField(columns, record, "customer_region"),
		CustomerType:       strField(columns, record, "customer_type"),
		ProductID:          strField(columns, record, "product_id"),
		ProductName:        strField(columns, record, "product_name"),
		Brand:              strField(columns, record, "brand"),
		ProductCategory:    strField(columns, record, "product_category"),
		Tags:               strField(columns, record, "tags"),
		Quantity:           intField(columns, record, "quantity"),
		PricePerUnit:       floatField(columns, record, "price_per_unit"),
		DiscountPercentage: floatField(columns, record, "discount_percentage"),
		TotalAmount:        floatField(columns, record, "total_amount"),
		FinalAmount:        floatField(columns, record, "final_amount"),
		TransactionDate:    dateField(columns, record, "date"),
		PaymentMethod:      strField(columns, record, "payment_method"),
		OrderStatus:        strField(columns, record, "order_status"),
		DeliveryType:       strField(columns, record, "delivery_type"),
		StoreID:            strField(columns, record, "store_id"),
		StoreLocation:      strField(columns, record, "store_location"),
		SalespersonID:      strField(columns, record, "salesperson_id"),
		EmployeeName:       strField(columns, record, "employee_name"),
	}
}

func rawField(columns map[string]int, record []string, key string) (string, bool) {
	idx, ok := columns[key]
	if !ok || idx >= len(record) {
		return "", false
	}
	return strings.TrimSpace(record[idx]), true
}

// strField loads blank cells as NULL rather than "", so empty strings
// never show up as facet values.
func strField(columns map[string]int, record []string, key string) *string {
	v, _ := rawField(columns, record, key)
	if v == "" {
		return nil
	}
	return &v
}

// intField coerces with a safe fallback: unparseable numbers load as 0.
func intField(columns map[string]int, record []string, key string) *int {
	v, _ := rawField(columns, record, key)
	n, err := strconv.Atoi(v)
	if err != nil {
		n = 0
	}
	return &n
}

func floatField(columns map[string]int, record []string, key string) *float64 {
	v, _ := rawField(columns, record, key)
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		n = 0
	}
	return &n
}

var dateFormats = []string{"2006-01-02", "02-01-2006", "01/02/2006", "02/01/2006"}

// dateField tries the common formats; anything else loads as NULL.
func dateField(columns map[string]int, record []string, key string) *time.Time {
	v, _ := rawField(columns, record, key)
	for _, format := range dateFormats {
		if t, err := time.Parse(format, v); err == nil {
			return &t
		}
	}
	return nil
}
