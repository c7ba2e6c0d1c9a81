// Package query compiles a FilterRequest into a store-agnostic predicate
// plan. The plan is a tagged list of predicate variants that an executor
// translates mechanically into its own query facility (parameterized SQL
// in the repository, plain closures in Matches) without ever
// string-concatenating untrusted input: user values only ever travel as
// parameters, column names come from the constants below.
package query

// Columns of the sales_transactions table that predicates and sorts may
// reference. Predicates never carry a column name from user input.
const (
	ColCustomerName    = "customer_name"
	ColPhoneNumber     = "phone_number"
	ColGender          = "gender"
	ColAge             = "age"
	ColCustomerRegion  = "customer_region"
	ColProductCategory = "product_category"
	ColTags            = "tags"
	ColQuantity        = "quantity"
	ColTransactionDate = "transaction_date"
	ColPaymentMethod   = "payment_method"
)

// Predicate is one compiled filter clause. Implementations form a closed
// set; executors type-switch over them.
type Predicate interface {
	predicate()
}

// Equals matches rows whose column equals the value exactly.
type Equals struct {
	Field string
	Value string
}

// InSet matches rows whose column value is a member of Values. Set
// semantics: order irrelevant, duplicates already collapsed by the
// compiler.
type InSet struct {
	Field  string
	Values []string
}

// Range matches rows whose column lies within the optional bounds. A nil
// bound is unbounded. Bounds are int (age) or time.Time (calendar date).
// Inverted bounds are legal and match nothing.
type Range struct {
	Field string
	Min   any
	Max   any
}

// SubstringOr matches rows where the term occurs case-insensitively in
// at least one of the listed columns. Both sides are explicitly
// case-folded; the store's native collation is never relied on.
type SubstringOr struct {
	Fields []string
	Term   string
}

// SubstringAny matches rows where at least one term occurs as a raw
// substring of the column. Used for the delimited tags column: this is
// deliberately looser than label-set membership and may match partial
// label overlaps.
type SubstringAny struct {
	Field string
	Terms []string
}

func (Equals) predicate()       {}
func (InSet) predicate()        {}
func (Range) predicate()        {}
func (SubstringOr) predicate()  {}
func (SubstringAny) predicate() {}

// Sort names the primary sort column and direction. The compiler emits no
// tie-break; the executor appends a stable secondary key.
type Sort struct {
	Field string
	Desc  bool
}

// Plan is the compiled form of a FilterRequest: predicates to be
// AND-combined plus the sort descriptor.
type Plan struct {
	Predicates []Predicate
	Sort       Sort
}
