package orderform

import (
	"orderdesk/internal/models"
	"orderdesk/internal/validation"
)

// ControlView is the JSON shape of a control. Message is only set once the
// control has been touched.
type ControlView struct {
	Touched bool              `json:"touched"`
	Errors  validation.Errors `json:"errors"`
	Message string            `json:"message,omitempty"`
}

// LineView is the JSON shape of a product line.
type LineView struct {
	ProductID string      `json:"productId"`
	Quantity  *int        `json:"quantity"`
	Stock     int         `json:"stock"`
	Price     float64     `json:"price"`
	Product   ControlView `json:"productControl"`
	QtyCtrl   ControlView `json:"quantityControl"`
}

// View is what the create-order page renders.
type View struct {
	Status       Status           `json:"status"`
	Valid        bool             `json:"valid"`
	Loading      bool             `json:"loading"`
	Error        string           `json:"error,omitempty"`
	Products     []models.Product `json:"products"`
	CustomerName string           `json:"customerName"`
	Email        string           `json:"email"`
	Lines        []LineView       `json:"lines"`
	NameCtrl     ControlView      `json:"customerNameControl"`
	EmailCtrl    ControlView      `json:"emailControl"`
	LinesCtrl    ControlView      `json:"linesControl"`
	Total        float64          `json:"total"`
}

func controlView(c Control) ControlView {
	v := ControlView{Touched: c.Touched, Errors: c.Errors}
	if v.Errors == nil {
		v.Errors = validation.Errors{}
	}
	if c.Touched {
		v.Message = c.Errors.Message()
	}
	return v
}

// ErrorMessage returns the message shown under the named top-level control:
// "customerName", "email" or "products".
func (s State) ErrorMessage(control string) string {
	var c Control
	switch control {
	case "customerName":
		c = s.NameCtrl
	case "email":
		c = s.EmailCtrl
	case "products":
		c = s.LinesCtrl
	default:
		return ""
	}
	return c.Errors.Message()
}

// View renders the state for the create-order page.
func (s State) View() View {
	v := View{
		Status:       s.Status(),
		Valid:        s.Valid(),
		Loading:      s.Loading,
		Error:        s.Error,
		Products:     s.Products,
		CustomerName: s.CustomerName,
		Email:        s.Email,
		Lines:        make([]LineView, len(s.Lines)),
		NameCtrl:     controlView(s.NameCtrl),
		EmailCtrl:    controlView(s.EmailCtrl),
		LinesCtrl:    controlView(s.LinesCtrl),
		Total:        s.Total(),
	}
	if v.Products == nil {
		v.Products = []models.Product{}
	}
	for i, l := range s.Lines {
		v.Lines[i] = LineView{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			Stock:     l.Stock,
			Price:     l.Price,
			Product:   controlView(l.Product),
			QtyCtrl:   controlView(l.QuantityCtrl),
		}
	}
	return v
}
