// Package validation holds the synchronous order form rules.
//
// Each control has an ordered list of rules. Every rule is a validator tag
// evaluated on its own, so a control reports all of its failures rather than
// stopping at the first one.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"orderdesk/internal/models"

	"github.com/go-playground/validator/v10"
)

const (
	// MinNameLength is the shortest accepted customer name.
	MinNameLength = 3
	// MaxTotalQuantity caps the summed quantity of all lines in an order.
	MaxTotalQuantity = 10
)

// AllowedDomains lists the accepted email domains.
var AllowedDomains = []string{"gmail.com", "hotmail.com", "yahoo.com"}

var digits = regexp.MustCompile(`[0-9]`)

type rule struct {
	tag  string
	kind Kind
}

var (
	nameRules = []rule{
		{"required", KindRequired},
		{fmt.Sprintf("omitempty,min=%d", MinNameLength), KindMinLength},
		{"nodigits", KindContainsNumbers},
	}
	emailRules = []rule{
		{"required", KindRequired},
		{"omitempty,email", KindEmail},
	}
	domainRule = rule{"oneof=" + strings.Join(AllowedDomains, " "), KindInvalidDomain}
)

// Rules evaluates the order form's synchronous rules.
type Rules struct {
	validate *validator.Validate
}

// New creates a rule set with the custom tags registered.
func New() *Rules {
	v := validator.New()
	err := v.RegisterValidation("nodigits", func(fl validator.FieldLevel) bool {
		return !digits.MatchString(fl.Field().String())
	})
	if err != nil {
		panic(fmt.Sprintf("failed to register nodigits validation: %v", err))
	}
	return &Rules{validate: v}
}

func (r *Rules) check(value interface{}, rules ...rule) Errors {
	set := make(map[Kind]bool)
	for _, ru := range rules {
		if err := r.validate.Var(value, ru.tag); err != nil {
			set[ru.kind] = true
		}
	}
	return fromSet(set)
}

// CustomerName validates the customer name control.
func (r *Rules) CustomerName(name string) Errors {
	return r.check(name, nameRules...)
}

// Email validates the email control. The order history rule is asynchronous
// and is not part of this check.
func (r *Rules) Email(email string) Errors {
	errs := r.check(email, emailRules...)
	if email == "" {
		return errs
	}
	if domain := Domain(email); r.validate.Var(domain, domainRule.tag) != nil {
		errs = errs.With(domainRule.kind)
	}
	return errs
}

// Domain returns the part of email between the first and second '@'.
func Domain(email string) string {
	parts := strings.Split(email, "@")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

// Lines validates the product lines as a collection.
func (r *Rules) Lines(lines []models.OrderLine) Errors {
	set := make(map[Kind]bool)
	if r.validate.Var(len(lines), "min=1") != nil {
		set[KindRequired] = true
	}
	if len(lines) > 0 && r.validate.Var(lines, "unique=ProductID") != nil {
		set[KindDuplicateProducts] = true
	}
	total := 0
	for _, l := range lines {
		total += l.Quantity
	}
	if r.validate.Var(total, fmt.Sprintf("lte=%d", MaxTotalQuantity)) != nil {
		set[KindMaxTotalQuantity] = true
	}
	return fromSet(set)
}

// LineProduct validates a line's product selection.
func (r *Rules) LineProduct(productID string) Errors {
	return r.check(productID, rule{"required", KindRequired})
}

// StockBound is the upper quantity limit a line carries once a product is
// selected on it.
type StockBound struct {
	Set   bool
	Stock int
}

// BoundFor derives the stock bound a line gets when product is selected on it.
func BoundFor(product models.Product) StockBound {
	return StockBound{Set: true, Stock: product.Stock}
}

// LineQuantity validates a line's quantity. A nil quantity means the control
// is blank.
func (r *Rules) LineQuantity(quantity *int, bound StockBound) Errors {
	if quantity == nil {
		return Errors{KindRequired}
	}
	set := make(map[Kind]bool)
	q := *quantity
	if r.validate.Var(q, "min=1") != nil {
		set[KindMin] = true
	}
	if bound.Set && q > 0 && r.validate.Var(q, fmt.Sprintf("lte=%d", bound.Stock)) != nil {
		set[KindInsufficientStock] = true
	}
	return fromSet(set)
}
