package orderform_test

import (
	"testing"
	"time"

	"orderdesk/internal/models"
	"orderdesk/internal/orderform"

	"github.com/stretchr/testify/assert"
)

func TestTotal(t *testing.T) {
	tests := []struct {
		name  string
		lines []models.OrderLine
		want  float64
	}{
		{"no lines", nil, 0},
		{"below threshold", []models.OrderLine{{Quantity: 2, Price: 100}, {Quantity: 1, Price: 50}}, 250},
		{"exactly threshold", []models.OrderLine{{Quantity: 4, Price: 250}}, 1000},
		{"discounted", []models.OrderLine{{Quantity: 2, Price: 600}}, 1080},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, orderform.Total(tt.lines), 1e-9)
		})
	}
}

func TestOrderCode(t *testing.T) {
	at := time.UnixMilli(1700000000000)

	assert.Equal(t, "A.com1700000000000", orderform.OrderCode("Ana", "user@gmail.com", at))
	assert.Equal(t, "Aa@b1700000000000", orderform.OrderCode("ana", "a@b", at))
	assert.Equal(t, ".com1700000000000", orderform.OrderCode("", "x@yahoo.com", at))
	assert.Equal(t, "Ñ.com1700000000000", orderform.OrderCode("ñandu", "n@gmail.com", at))
}
