package bizniweb

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vevoretail/orderpulse/internal/order"
)

type stubSource struct {
	pages map[int]Page
	fails map[int]error
	calls []int
}

func (s *stubSource) FetchPage(_ context.Context, _, _ time.Time, req PageRequest) (Page, error) {
	s.calls = append(s.calls, req.Index)
	if err, ok := s.fails[req.Index]; ok {
		return Page{}, err
	}
	page, ok := s.pages[req.Index]
	if !ok {
		return Page{}, fmt.Errorf("no such page %d", req.Index)
	}
	return page, nil
}

func makeOrders(n int, prefix string) []order.Order {
	orders := make([]order.Order, 0, n)
	for i := 0; i < n; i++ {
		orders = append(orders, order.Order{
			ID:     fmt.Sprintf("%s-%d", prefix, i),
			Number: fmt.Sprintf("ORD-%s-%d", prefix, i),
		})
	}
	return orders
}

func testRange() (time.Time, time.Time) {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
}

func TestFetchRangeAllPages(t *testing.T) {
	source := &stubSource{
		pages: map[int]Page{
			1: {Orders: makeOrders(30, "p1"), HasNext: true, NextCursor: "c2", TotalPages: 2},
			2: {Orders: makeOrders(12, "p2"), HasNext: false, TotalPages: 2},
		},
	}
	fetcher := NewFetcher(source, zap.NewNop())

	from, to := testRange()
	result, err := fetcher.FetchRange(context.Background(), from, to)
	require.NoError(t, err)
	assert.True(t, result.Complete())
	assert.Equal(t, 2, result.PagesFetched)
	assert.Len(t, result.Orders, 42)
}

func TestFetchRangeContinuesPastFailedPage(t *testing.T) {
	source := &stubSource{
		pages: map[int]Page{
			1: {Orders: makeOrders(20, "p1"), HasNext: true, NextCursor: "c2", TotalPages: 3},
			3: {Orders: makeOrders(10, "p3"), HasNext: false, TotalPages: 3},
		},
		fails: map[int]error{
			2: errors.New("upstream 502"),
		},
	}
	fetcher := NewFetcher(source, zap.NewNop())

	from, to := testRange()
	result, err := fetcher.FetchRange(context.Background(), from, to)
	require.NoError(t, err)

	assert.False(t, result.Complete())
	assert.Len(t, result.Orders, 30)
	assert.Equal(t, 2, result.PagesFetched)
	require.Len(t, result.PageFailures, 1)
	assert.Equal(t, 2, result.PageFailures[0].Page)
}

func TestFetchRangeFirstPageFailureIsTerminal(t *testing.T) {
	source := &stubSource{
		fails: map[int]error{1: errors.New("connection refused")},
	}
	fetcher := NewFetcher(source, zap.NewNop())

	from, to := testRange()
	_, err := fetcher.FetchRange(context.Background(), from, to)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "first page")
}

func TestFetchRangeAuthFailureIsTerminal(t *testing.T) {
	source := &stubSource{
		pages: map[int]Page{
			1: {Orders: makeOrders(30, "p1"), HasNext: true, NextCursor: "c2", TotalPages: 3},
		},
		fails: map[int]error{
			2: fmt.Errorf("%w: token rejected", ErrAuthentication),
		},
	}
	fetcher := NewFetcher(source, zap.NewNop())

	from, to := testRange()
	result, err := fetcher.FetchRange(context.Background(), from, to)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAuthentication))
	// Orders from the successful page are still returned to the caller.
	assert.Len(t, result.Orders, 30)
}

func TestFetchRangeStopsWithoutPageCount(t *testing.T) {
	// A failure before the page count is known cannot be stepped over.
	source := &stubSource{
		pages: map[int]Page{
			1: {Orders: makeOrders(30, "p1"), HasNext: true, NextCursor: "c2"},
		},
		fails: map[int]error{
			2: errors.New("upstream 500"),
		},
	}
	fetcher := NewFetcher(source, zap.NewNop())

	from, to := testRange()
	result, err := fetcher.FetchRange(context.Background(), from, to)
	require.NoError(t, err)
	assert.Len(t, result.Orders, 30)
	assert.Len(t, result.PageFailures, 1)
	assert.Equal(t, []int{1, 2}, source.calls)
}
