package rabbitmq

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"restaurant/internal/core/application/events"
	"restaurant/internal/core/domain/model/statistics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSink struct {
	mock.Mock
}

func (m *mockSink) Publish(ctx context.Context, event events.Event) error {
	return m.Called(ctx, event).Error(0)
}

func TestRelay_HandleForwardsDecodedEvent(t *testing.T) {
	sink := &mockSink{}
	relay := NewRelay(nil, "", sink, slog.New(slog.NewTextHandler(io.Discard, nil)))

	body, err := events.Encode(events.NewStatisticsUpdated(statistics.Snapshot{TotalTables: 4}, time.Now().UTC()))
	require.NoError(t, err)

	sink.On("Publish", mock.Anything, mock.MatchedBy(func(e events.Event) bool {
		return e.Type == events.StatisticsUpdated
	})).Return(nil).Once()

	relay.handle(context.Background(), body)

	sink.AssertExpectations(t)
	assert.Equal(t, DefaultExchange, relay.exchange)
}

func TestRelay_HandleSkipsGarbage(t *testing.T) {
	sink := &mockSink{}
	relay := NewRelay(nil, "custom", sink, slog.New(slog.NewTextHandler(io.Discard, nil)))

	relay.handle(context.Background(), []byte("not json"))
	relay.handle(context.Background(), []byte(`{"type":"order.deleted","payload":{}}`))

	sink.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}
