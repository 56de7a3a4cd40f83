package orderform

import (
	"strconv"
	"strings"
	"time"

	"orderdesk/internal/models"
)

const (
	// DiscountThreshold is the raw total above which the bulk discount applies.
	DiscountThreshold = 1000.0
	// DiscountFactor is applied to the whole total once it passes the threshold.
	DiscountFactor = 0.9
)

// Total sums quantity*price over lines and applies the bulk discount.
func Total(lines []models.OrderLine) float64 {
	total := 0.0
	for _, l := range lines {
		total += float64(l.Quantity) * l.Price
	}
	if total > DiscountThreshold {
		return total * DiscountFactor
	}
	return total
}

// OrderCode builds the order code from the first letter of name, the last
// four characters of email and the time in Unix milliseconds.
//
// Two orders from the same name initial and email suffix within the same
// millisecond get the same code.
func OrderCode(name, email string, at time.Time) string {
	var b strings.Builder
	if r := []rune(name); len(r) > 0 {
		b.WriteString(strings.ToUpper(string(r[0])))
	}
	tail := []rune(email)
	if len(tail) > 4 {
		tail = tail[len(tail)-4:]
	}
	b.WriteString(string(tail))
	b.WriteString(strconv.FormatInt(at.UnixMilli(), 10))
	return b.String()
}
