// Package orderform implements the create-order form: its state, the rules
// that validate it, the derived total and the submission flow.
//
// State values are never modified in place. Every change goes through
// Reducer.Apply, which returns a new State for the event.
package orderform

import (
	"time"

	"orderdesk/internal/models"
	"orderdesk/internal/validation"
)

// Banner texts shown for backend failures.
const (
	ErrLoadingProducts = "Error loading products"
	ErrCreatingOrder   = "Error creating order"
)

// Status is the form's position in its lifecycle. Valid, Invalid and Pending
// are the editing states; Pending means the email history check is running.
type Status string

const (
	StatusEmpty      Status = "empty"
	StatusValid      Status = "valid"
	StatusInvalid    Status = "invalid"
	StatusPending    Status = "pending"
	StatusSubmitting Status = "submitting"
)

// Control is the validation view of a single input.
type Control struct {
	Touched bool
	Errors  validation.Errors
}

// Line is one product line of the form.
type Line struct {
	ProductID string
	Quantity  *int
	Stock     int
	Price     float64
	// Bound is the stock limit taken from the product selected on this line.
	Bound validation.StockBound

	Product      Control
	QuantityCtrl Control
}

func newLine() Line {
	q := 1
	return Line{Quantity: &q}
}

// OrderLine converts the line to its submitted form.
func (l Line) OrderLine() models.OrderLine {
	q := 0
	if l.Quantity != nil {
		q = *l.Quantity
	}
	return models.OrderLine{ProductID: l.ProductID, Quantity: q, Stock: l.Stock, Price: l.Price}
}

// Valid reports whether both controls of the line pass.
func (l Line) Valid() bool {
	return l.Product.Errors.Valid() && l.QuantityCtrl.Errors.Valid()
}

// EmailCheck tracks the asynchronous order history check on the email.
// Generation increases on every email edit; only a result carrying the
// current generation is applied.
type EmailCheck struct {
	Generation    uint64
	Pending       bool
	Email         string
	TooManyOrders bool
}

// State is one revision of the form.
type State struct {
	Products []models.Product

	CustomerName string
	Email        string
	Lines        []Line

	NameCtrl  Control
	EmailCtrl Control
	LinesCtrl Control

	EmailCheck EmailCheck

	Loading    bool
	Submitting bool
	Error      string
}

func (s State) clone() State {
	next := s
	if s.Lines != nil {
		next.Lines = make([]Line, len(s.Lines))
		copy(next.Lines, s.Lines)
	}
	return next
}

// OrderLines returns the lines in their submitted form.
func (s State) OrderLines() []models.OrderLine {
	lines := make([]models.OrderLine, len(s.Lines))
	for i, l := range s.Lines {
		lines[i] = l.OrderLine()
	}
	return lines
}

// Total is the discounted total of the current lines.
func (s State) Total() float64 {
	return Total(s.OrderLines())
}

// Valid reports whether every rule passes and no check is still running.
func (s State) Valid() bool {
	if s.EmailCheck.Pending {
		return false
	}
	if !s.NameCtrl.Errors.Valid() || !s.EmailCtrl.Errors.Valid() || !s.LinesCtrl.Errors.Valid() {
		return false
	}
	for _, l := range s.Lines {
		if !l.Valid() {
			return false
		}
	}
	return true
}

// Empty reports whether the form holds no input.
func (s State) Empty() bool {
	return s.CustomerName == "" && s.Email == "" && len(s.Lines) == 0
}

// Status derives the lifecycle state.
func (s State) Status() Status {
	switch {
	case s.Submitting:
		return StatusSubmitting
	case s.Empty():
		return StatusEmpty
	case s.EmailCheck.Pending:
		return StatusPending
	case s.Valid():
		return StatusValid
	default:
		return StatusInvalid
	}
}

// Product looks up id in the catalog snapshot.
func (s State) Product(id string) (models.Product, bool) {
	for _, p := range s.Products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// BuildOrder assembles the order to submit from the current values.
func BuildOrder(s State, now time.Time) models.Order {
	lines := s.OrderLines()
	return models.Order{
		CustomerName: s.CustomerName,
		Email:        s.Email,
		Products:     lines,
		Total:        Total(lines),
		OrderCode:    OrderCode(s.CustomerName, s.Email, now),
		Timestamp:    now.UTC().Truncate(time.Millisecond),
	}
}
