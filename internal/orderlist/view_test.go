package orderlist_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"os"
	"testing"
	"time"

	"orderdesk/internal/models"
	"orderdesk/internal/orderlist"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// MockOrderSource is a mock implementation of orderlist.OrderSource.
type MockOrderSource struct {
	mock.Mock
}

func (m *MockOrderSource) ListOrders(ctx context.Context) ([]models.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

var base = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

func sampleOrders() []models.Order {
	return []models.Order{
		{ID: "1", CustomerName: "Ana Lopez", Email: "ana@gmail.com", Total: 50, Timestamp: base,
			Products: []models.OrderLine{{ProductID: "p1", Quantity: 2}, {ProductID: "p2", Quantity: 3}}},
		{ID: "2", CustomerName: "Carlos", Email: "carlos@yahoo.com", Total: 300, Timestamp: base.Add(2 * time.Hour)},
		{ID: "3", CustomerName: "Beatriz", Email: "bea@hotmail.com", Total: 10, Timestamp: base.Add(time.Hour)},
	}
}

func ids(orders []models.Order) []string {
	out := make([]string, len(orders))
	for i, o := range orders {
		out[i] = o.ID
	}
	return out
}

func loadedView(t *testing.T) *orderlist.View {
	t.Helper()
	source := new(MockOrderSource)
	source.On("ListOrders", mock.Anything).Return(sampleOrders(), nil).Once()

	v := orderlist.NewView(source)
	require.NoError(t, v.Load(context.Background()))
	return v
}

func TestLoad(t *testing.T) {
	v := loadedView(t)

	assert.Equal(t, []string{"1", "2", "3"}, ids(v.Orders()))
	assert.Equal(t, v.Orders(), v.Filtered())
	assert.False(t, v.Snapshot().Loading)
}

func TestLoadFailureKeepsPreviousLists(t *testing.T) {
	source := new(MockOrderSource)
	source.On("ListOrders", mock.Anything).Return(sampleOrders(), nil).Once()
	source.On("ListOrders", mock.Anything).Return(nil, errors.New("timeout")).Once()

	v := orderlist.NewView(source)
	require.NoError(t, v.Load(context.Background()))
	require.Error(t, v.Refresh(context.Background()))

	snap := v.Snapshot()
	assert.Equal(t, orderlist.ErrLoadingOrders, snap.Error)
	assert.Len(t, snap.Orders, 3)
	source.AssertExpectations(t)
}

func TestFilterIsCaseInsensitiveOnNameOrEmail(t *testing.T) {
	v := loadedView(t)

	v.Filter("ana")
	assert.Equal(t, []string{"1"}, ids(v.Filtered()))

	v.Filter("  YAHOO ")
	assert.Equal(t, []string{"2"}, ids(v.Filtered()))

	v.Filter("nobody")
	assert.Empty(t, v.Filtered())
}

func TestFilterRecomputesFromAuthoritativeList(t *testing.T) {
	v := loadedView(t)

	v.Filter("a")
	assert.Equal(t, []string{"1", "2", "3"}, ids(v.Filtered()))
	v.Filter("carlos")
	assert.Equal(t, []string{"2"}, ids(v.Filtered()))
	v.Filter("bea")
	assert.Equal(t, []string{"3"}, ids(v.Filtered()))
}

func TestSortByTotal(t *testing.T) {
	v := loadedView(t)
	v.SortByTotal()

	totals := []float64{}
	for _, o := range v.Filtered() {
		totals = append(totals, o.Total)
	}
	assert.Equal(t, []float64{300, 50, 10}, totals)
	// The authoritative list keeps its order.
	assert.Equal(t, []string{"1", "2", "3"}, ids(v.Orders()))
}

func TestSortByDate(t *testing.T) {
	v := loadedView(t)
	v.SortByDate()
	assert.Equal(t, []string{"2", "3", "1"}, ids(v.Filtered()))
}

func TestFilterAfterSortDropsSortOrder(t *testing.T) {
	v := loadedView(t)
	v.SortByTotal()
	v.Filter("lo")
	assert.Equal(t, []string{"1", "2"}, ids(v.Filtered()))
}

func TestClearFilterRestoresAuthoritativeList(t *testing.T) {
	v := loadedView(t)
	v.Filter("ana")
	v.ClearFilter()

	assert.Equal(t, "", v.SearchTerm())
	assert.Equal(t, v.Orders(), v.Filtered())
}

func TestProductCount(t *testing.T) {
	orders := sampleOrders()
	assert.Equal(t, 5, orderlist.ProductCount(orders[0]))
	assert.Equal(t, 0, orderlist.ProductCount(orders[1]))

	snap := loadedView(t).Snapshot()
	assert.Equal(t, 5, snap.Orders[0].ProductCount)
	assert.Equal(t, 3, snap.Total)
}

func TestSnapshotRowJSON(t *testing.T) {
	row := orderlist.OrderRow{Order: sampleOrders()[0], ProductCount: 5}

	body, err := json.Marshal(row)
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &fields))
	assert.Equal(t, float64(5), fields["productCount"])
	assert.Equal(t, "Ana Lopez", fields["customerName"])
	assert.Regexp(t, `\.\d{3}Z$`, fields["timestamp"])
}
