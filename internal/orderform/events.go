package orderform

import "orderdesk/internal/models"

// Event is anything that can change the form.
type Event interface {
	isEvent()
}

type (
	LoadStarted    struct{}
	ProductsLoaded struct{ Products []models.Product }
	ProductsFailed struct{}

	CustomerNameChanged struct{ Value string }
	EmailChanged        struct{ Value string }

	// EmailCheckCompleted carries the result of the history check started
	// for Generation.
	EmailCheckCompleted struct {
		Generation    uint64
		TooManyOrders bool
	}

	LineAdded           struct{}
	LineRemoved         struct{ Index int }
	LineProductSelected struct {
		Index     int
		ProductID string
	}
	// LineQuantityChanged sets a line's quantity; a nil Quantity blanks it.
	LineQuantityChanged struct {
		Index    int
		Quantity *int
	}

	// AllTouched marks every control touched so that latent errors show.
	AllTouched      struct{}
	SubmitStarted   struct{}
	SubmitSucceeded struct{}
	SubmitFailed    struct{}
)

func (LoadStarted) isEvent()         {}
func (ProductsLoaded) isEvent()      {}
func (ProductsFailed) isEvent()      {}
func (CustomerNameChanged) isEvent() {}
func (EmailChanged) isEvent()        {}
func (EmailCheckCompleted) isEvent() {}
func (LineAdded) isEvent()           {}
func (LineRemoved) isEvent()         {}
func (LineProductSelected) isEvent() {}
func (LineQuantityChanged) isEvent() {}
func (AllTouched) isEvent()          {}
func (SubmitStarted) isEvent()       {}
func (SubmitSucceeded) isEvent()     {}
func (SubmitFailed) isEvent()        {}
