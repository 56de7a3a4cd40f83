package orderform_test

import (
	"testing"

	"orderdesk/internal/models"
	"orderdesk/internal/orderform"
	"orderdesk/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var catalog = []models.Product{
	{ID: "p1", Name: "Laptop", Price: 600, Stock: 3},
	{ID: "p2", Name: "Mouse", Price: 25, Stock: 50},
	{ID: "p3", Name: "Monitor", Price: 200, Stock: 0},
}

func qty(v int) *int { return &v }

func newState(r *orderform.Reducer, events ...orderform.Event) orderform.State {
	s := r.Apply(r.Initial(), orderform.ProductsLoaded{Products: catalog})
	for _, ev := range events {
		s = r.Apply(s, ev)
	}
	return s
}

func TestInitialStateIsEmptyAndInvalid(t *testing.T) {
	r := orderform.NewReducer(validation.New())
	s := r.Initial()

	assert.Equal(t, orderform.StatusEmpty, s.Status())
	assert.False(t, s.Valid())
	assert.True(t, s.NameCtrl.Errors.Has(validation.KindRequired))
	assert.True(t, s.EmailCtrl.Errors.Has(validation.KindRequired))
	assert.True(t, s.LinesCtrl.Errors.Has(validation.KindRequired))
	assert.False(t, s.NameCtrl.Touched)
}

func TestSelectingProductSnapshotsStockAndPrice(t *testing.T) {
	r := orderform.NewReducer(validation.New())
	s := newState(r,
		orderform.LineAdded{},
		orderform.LineProductSelected{Index: 0, ProductID: "p1"},
	)

	require.Len(t, s.Lines, 1)
	line := s.Lines[0]
	assert.Equal(t, 3, line.Stock)
	assert.Equal(t, 600.0, line.Price)
	assert.Equal(t, 1, *line.Quantity)
	assert.True(t, line.Valid())

	s = r.Apply(s, orderform.LineQuantityChanged{Index: 0, Quantity: qty(4)})
	assert.Equal(t, validation.Errors{validation.KindInsufficientStock}, s.Lines[0].QuantityCtrl.Errors)

	// Changing product re-derives the bound from the new product.
	s = r.Apply(s, orderform.LineProductSelected{Index: 0, ProductID: "p2"})
	assert.True(t, s.Lines[0].QuantityCtrl.Errors.Valid())
	assert.Equal(t, 50, s.Lines[0].Stock)
}

func TestSelectingUnknownProductKeepsSnapshot(t *testing.T) {
	r := orderform.NewReducer(validation.New())
	s := newState(r,
		orderform.LineAdded{},
		orderform.LineProductSelected{Index: 0, ProductID: "p1"},
		orderform.LineProductSelected{Index: 0, ProductID: "missing"},
	)

	assert.Equal(t, "missing", s.Lines[0].ProductID)
	assert.Equal(t, 3, s.Lines[0].Stock)
	assert.Equal(t, 600.0, s.Lines[0].Price)
}

func TestLineQuantityRules(t *testing.T) {
	r := orderform.NewReducer(validation.New())
	s := newState(r, orderform.LineAdded{}, orderform.LineQuantityChanged{Index: 0, Quantity: nil})

	assert.Equal(t, validation.Errors{validation.KindRequired}, s.Lines[0].QuantityCtrl.Errors)
	assert.Equal(t, validation.Errors{validation.KindRequired}, s.Lines[0].Product.Errors)

	s = r.Apply(s, orderform.LineQuantityChanged{Index: 0, Quantity: qty(0)})
	assert.Equal(t, validation.Errors{validation.KindMin}, s.Lines[0].QuantityCtrl.Errors)

	s = r.Apply(s, orderform.LineProductSelected{Index: 0, ProductID: "p3"})
	s = r.Apply(s, orderform.LineQuantityChanged{Index: 0, Quantity: qty(1)})
	assert.Equal(t, validation.Errors{validation.KindInsufficientStock}, s.Lines[0].QuantityCtrl.Errors)
}

func TestCollectionRules(t *testing.T) {
	r := orderform.NewReducer(validation.New())
	s := newState(r,
		orderform.LineAdded{},
		orderform.LineAdded{},
		orderform.LineProductSelected{Index: 0, ProductID: "p2"},
		orderform.LineProductSelected{Index: 1, ProductID: "p2"},
	)
	assert.True(t, s.LinesCtrl.Errors.Has(validation.KindDuplicateProducts))

	s = r.Apply(s, orderform.LineProductSelected{Index: 1, ProductID: "p1"})
	s = r.Apply(s, orderform.LineQuantityChanged{Index: 0, Quantity: qty(9)})
	s = r.Apply(s, orderform.LineQuantityChanged{Index: 1, Quantity: qty(2)})
	assert.Equal(t, validation.Errors{validation.KindMaxTotalQuantity}, s.LinesCtrl.Errors)

	s = r.Apply(s, orderform.LineRemoved{Index: 1})
	require.Len(t, s.Lines, 1)
	assert.True(t, s.LinesCtrl.Errors.Valid())
	assert.Equal(t, "p2", s.Lines[0].ProductID)
}

func TestOutOfRangeLineEventsAreIgnored(t *testing.T) {
	r := orderform.NewReducer(validation.New())
	s := newState(r, orderform.LineAdded{})

	assert.Equal(t, s, r.Apply(s, orderform.LineRemoved{Index: 3}))
	assert.Equal(t, s, r.Apply(s, orderform.LineProductSelected{Index: -1, ProductID: "p1"}))
	assert.Equal(t, s, r.Apply(s, orderform.LineQuantityChanged{Index: 1, Quantity: qty(2)}))
}

func TestApplyDoesNotModifyPreviousState(t *testing.T) {
	r := orderform.NewReducer(validation.New())
	before := newState(r, orderform.LineAdded{}, orderform.LineProductSelected{Index: 0, ProductID: "p1"})

	after := r.Apply(before, orderform.LineQuantityChanged{Index: 0, Quantity: qty(2)})
	after = r.Apply(after, orderform.LineProductSelected{Index: 0, ProductID: "p2"})

	assert.Equal(t, 1, *before.Lines[0].Quantity)
	assert.Equal(t, "p1", before.Lines[0].ProductID)
	assert.Equal(t, 2, *after.Lines[0].Quantity)
}

func TestEmailChangeStartsCheckOnlyWhenSyncRulesPass(t *testing.T) {
	r := orderform.NewReducer(validation.New())

	s := newState(r, orderform.EmailChanged{Value: "user@example.com"})
	assert.Equal(t, uint64(1), s.EmailCheck.Generation)
	assert.False(t, s.EmailCheck.Pending)
	assert.Equal(t, validation.Errors{validation.KindInvalidDomain}, s.EmailCtrl.Errors)

	s = r.Apply(s, orderform.EmailChanged{Value: "user@gmail.com"})
	assert.Equal(t, uint64(2), s.EmailCheck.Generation)
	assert.True(t, s.EmailCheck.Pending)
	assert.Equal(t, orderform.StatusPending, s.Status())
}

func TestEmailCheckCompletion(t *testing.T) {
	r := orderform.NewReducer(validation.New())
	s := newState(r,
		orderform.EmailChanged{Value: "a@gmail.com"},
		orderform.EmailChanged{Value: "user@gmail.com"},
	)

	// A result for the superseded email is dropped.
	stale := r.Apply(s, orderform.EmailCheckCompleted{Generation: 1, TooManyOrders: true})
	assert.Equal(t, s, stale)

	done := r.Apply(s, orderform.EmailCheckCompleted{Generation: 2, TooManyOrders: true})
	assert.False(t, done.EmailCheck.Pending)
	assert.Equal(t, validation.Errors{validation.KindTooManyOrders}, done.EmailCtrl.Errors)
	assert.Equal(t, "Too many orders in the last 24 hours", done.ErrorMessage("email"))

	// Editing the email clears the async failure until the next check.
	edited := r.Apply(done, orderform.EmailChanged{Value: "other@gmail.com"})
	assert.False(t, edited.EmailCtrl.Errors.Has(validation.KindTooManyOrders))

	// A duplicate delivery after completion changes nothing.
	assert.Equal(t, done, r.Apply(done, orderform.EmailCheckCompleted{Generation: 2}))
}

func TestInvalidDomainIndependentOfHistoryCheck(t *testing.T) {
	r := orderform.NewReducer(validation.New())
	s := newState(r, orderform.EmailChanged{Value: "user@outlook.com"})
	s = r.Apply(s, orderform.EmailCheckCompleted{Generation: 1, TooManyOrders: false})

	assert.True(t, s.EmailCtrl.Errors.Has(validation.KindInvalidDomain))
}

func TestAllTouched(t *testing.T) {
	r := orderform.NewReducer(validation.New())
	s := newState(r, orderform.LineAdded{}, orderform.AllTouched{})

	assert.True(t, s.NameCtrl.Touched)
	assert.True(t, s.EmailCtrl.Touched)
	assert.True(t, s.LinesCtrl.Touched)
	assert.True(t, s.Lines[0].Product.Touched)
	assert.True(t, s.Lines[0].QuantityCtrl.Touched)
}

func TestSubmitLifecycle(t *testing.T) {
	r := orderform.NewReducer(validation.New())
	s := newState(r,
		orderform.CustomerNameChanged{Value: "Ana"},
		orderform.LineAdded{},
		orderform.SubmitStarted{},
	)
	assert.Equal(t, orderform.StatusSubmitting, s.Status())
	assert.True(t, s.Loading)

	failed := r.Apply(s, orderform.SubmitFailed{})
	assert.Equal(t, orderform.ErrCreatingOrder, failed.Error)
	assert.False(t, failed.Loading)
	assert.Equal(t, "Ana", failed.CustomerName)
	assert.Len(t, failed.Lines, 1)

	reset := r.Apply(s, orderform.SubmitSucceeded{})
	assert.Equal(t, orderform.StatusEmpty, reset.Status())
	assert.Equal(t, catalog, reset.Products)
	assert.Empty(t, reset.Lines)
	assert.False(t, reset.NameCtrl.Touched)
}

func TestProductsFailed(t *testing.T) {
	r := orderform.NewReducer(validation.New())
	s := r.Apply(r.Apply(r.Initial(), orderform.LoadStarted{}), orderform.ProductsFailed{})

	assert.Equal(t, orderform.ErrLoadingProducts, s.Error)
	assert.False(t, s.Loading)
}
