package orderform

import (
	"orderdesk/internal/validation"
)

// Reducer computes the next form state for an event.
type Reducer struct {
	rules *validation.Rules
}

// NewReducer creates a reducer that validates with rules.
func NewReducer(rules *validation.Rules) *Reducer {
	return &Reducer{rules: rules}
}

// Initial returns the empty, validated form.
func (r *Reducer) Initial() State {
	var s State
	r.validate(&s)
	return s
}

// Apply returns the state that follows s after ev. s is left untouched.
func (r *Reducer) Apply(s State, ev Event) State {
	next := s.clone()

	switch e := ev.(type) {
	case LoadStarted:
		next.Loading = true
		next.Error = ""

	case ProductsLoaded:
		next.Products = e.Products
		next.Loading = false

	case ProductsFailed:
		next.Loading = false
		next.Error = ErrLoadingProducts

	case CustomerNameChanged:
		next.CustomerName = e.Value
		next.NameCtrl.Touched = true

	case EmailChanged:
		next.Email = e.Value
		next.EmailCtrl.Touched = true
		next.EmailCheck = EmailCheck{Generation: s.EmailCheck.Generation + 1}
		// The history check only runs once the synchronous rules pass.
		if e.Value != "" && r.rules.Email(e.Value).Valid() {
			next.EmailCheck.Pending = true
			next.EmailCheck.Email = e.Value
		}

	case EmailCheckCompleted:
		if e.Generation != s.EmailCheck.Generation || !s.EmailCheck.Pending {
			return s
		}
		next.EmailCheck.Pending = false
		next.EmailCheck.TooManyOrders = e.TooManyOrders

	case LineAdded:
		next.Lines = append(next.Lines, newLine())

	case LineRemoved:
		if e.Index < 0 || e.Index >= len(next.Lines) {
			return s
		}
		next.Lines = append(next.Lines[:e.Index], next.Lines[e.Index+1:]...)
		next.LinesCtrl.Touched = true

	case LineProductSelected:
		if e.Index < 0 || e.Index >= len(next.Lines) {
			return s
		}
		line := next.Lines[e.Index]
		line.ProductID = e.ProductID
		line.Product.Touched = true
		// An id missing from the catalog keeps the previous snapshot and bound.
		if p, ok := next.Product(e.ProductID); ok {
			line.Stock = p.Stock
			line.Price = p.Price
			line.Bound = validation.BoundFor(p)
		}
		next.Lines[e.Index] = line

	case LineQuantityChanged:
		if e.Index < 0 || e.Index >= len(next.Lines) {
			return s
		}
		line := next.Lines[e.Index]
		if e.Quantity != nil {
			q := *e.Quantity
			line.Quantity = &q
		} else {
			line.Quantity = nil
		}
		line.QuantityCtrl.Touched = true
		next.Lines[e.Index] = line

	case AllTouched:
		next.NameCtrl.Touched = true
		next.EmailCtrl.Touched = true
		next.LinesCtrl.Touched = true
		for i := range next.Lines {
			next.Lines[i].Product.Touched = true
			next.Lines[i].QuantityCtrl.Touched = true
		}

	case SubmitStarted:
		next.Submitting = true
		next.Loading = true
		next.Error = ""

	case SubmitSucceeded:
		next = State{
			Products:   s.Products,
			EmailCheck: EmailCheck{Generation: s.EmailCheck.Generation + 1},
		}

	case SubmitFailed:
		next.Submitting = false
		next.Loading = false
		next.Error = ErrCreatingOrder

	default:
		return s
	}

	r.validate(&next)
	return next
}

func (r *Reducer) validate(s *State) {
	s.NameCtrl.Errors = r.rules.CustomerName(s.CustomerName)

	emailErrs := r.rules.Email(s.Email)
	if s.EmailCheck.TooManyOrders && s.EmailCheck.Email == s.Email {
		emailErrs = emailErrs.With(validation.KindTooManyOrders)
	}
	s.EmailCtrl.Errors = emailErrs

	s.LinesCtrl.Errors = r.rules.Lines(s.OrderLines())

	for i := range s.Lines {
		l := &s.Lines[i]
		l.Product.Errors = r.rules.LineProduct(l.ProductID)
		l.QuantityCtrl.Errors = r.rules.LineQuantity(l.Quantity, l.Bound)
	}
}
