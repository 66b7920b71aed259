package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/Gobusters/ectologger"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/collably/pkg/apierrors"
	"github.com/Ramsey-B/collably/pkg/models"
	"github.com/Ramsey-B/collably/pkg/store"
)

type fakeWriter struct {
	mu       sync.Mutex
	messages []kafka.Message
	err      error
	closed   bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeWriter) written() []kafka.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]kafka.Message(nil), f.messages...)
}

func testLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}

func newTestPublisher(writer messageWriter) *Publisher {
	return &Publisher{writer: writer, logger: testLogger(), topic: "collably-actions"}
}

func decode(t *testing.T, msg kafka.Message) ActionMessage {
	t.Helper()
	var out ActionMessage
	require.NoError(t, json.Unmarshal(msg.Value, &out))
	return out
}

func TestParseConfig(t *testing.T) {
	cfg := ParseConfig(" kafka-1:9092, ,kafka-2:9092 ", "actions")
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Brokers)
	assert.Equal(t, "actions", cfg.Topic)
	assert.True(t, cfg.Enabled())

	assert.False(t, ParseConfig("", "actions").Enabled())
}

func TestPublisher_PublishesSettledActionsOnly(t *testing.T) {
	brands := store.NewSlice[models.Brand]("brands")
	s := store.NewStore(testLogger(), brands)

	writer := &fakeWriter{}
	publisher := newTestPublisher(writer)
	publisher.Attach(s)

	fetchAll := &store.AsyncAction[struct{}, []models.Brand]{
		Type:  "brands/fetchAllBrands",
		Slice: "brands",
		Op:    store.OpFetchAll,
		Run: func(ctx context.Context, _ struct{}) ([]models.Brand, error) {
			return []models.Brand{{ID: "b1"}}, nil
		},
	}
	_, err := fetchAll.Dispatch(context.Background(), s, struct{}{})
	require.NoError(t, err)

	messages := writer.written()
	require.Len(t, messages, 1)
	assert.Equal(t, "brands", string(messages[0].Key))

	msg := decode(t, messages[0])
	assert.Equal(t, "brands/fetchAllBrands", msg.Type)
	assert.Equal(t, store.PhaseFulfilled, msg.Phase)
	assert.NotEmpty(t, msg.Token)
	assert.False(t, msg.Timestamp.IsZero())
}

func TestPublisher_RejectionCarriesErrorAndKind(t *testing.T) {
	brands := store.NewSlice[models.Brand]("brands")
	s := store.NewStore(testLogger(), brands)

	writer := &fakeWriter{}
	publisher := newTestPublisher(writer)
	publisher.Attach(s)

	create := &store.AsyncAction[models.Brand, models.Brand]{
		Type:  "brands/createBrand",
		Slice: "brands",
		Op:    store.OpCreate,
		Run: func(ctx context.Context, in models.Brand) (models.Brand, error) {
			return models.Brand{}, apierrors.RequestError("create", "brand", 409, "Brand with this email already exists")
		},
	}
	_, err := create.Dispatch(context.Background(), s, models.Brand{BrandName: "Acme"})
	require.Error(t, err)

	messages := writer.written()
	require.Len(t, messages, 1)
	msg := decode(t, messages[0])
	assert.Equal(t, store.PhaseRejected, msg.Phase)
	assert.Equal(t, "Brand with this email already exists", msg.Error)
	assert.Equal(t, brands.State().ErrorKind, msg.Kind)
}

func TestPublisher_SyncActionsAreNotPublished(t *testing.T) {
	s := store.NewStore(testLogger(), store.NewSlice[models.Blog]("blogs"))

	writer := &fakeWriter{}
	newTestPublisher(writer).Attach(s)

	s.Dispatch(store.Reset("blogs/clearBlogs", "blogs"))
	assert.Empty(t, writer.written())
}

func TestPublisher_WriteError(t *testing.T) {
	publisher := newTestPublisher(&fakeWriter{err: errors.New("broker down")})

	err := publisher.Publish(context.Background(), store.Action{Type: "users/fetchAllUsers", Phase: store.PhaseFulfilled})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
}

func TestPublisher_StopDetachesAndCloses(t *testing.T) {
	s := store.NewStore(testLogger(), store.NewSlice[models.Brand]("brands"))

	writer := &fakeWriter{}
	publisher := newTestPublisher(writer)
	publisher.Attach(s)

	require.NoError(t, publisher.Stop(context.Background()))
	assert.True(t, writer.closed)

	s.Dispatch(store.Action{Type: "brands/fetchAllBrands", Slice: "brands", Op: store.OpFetchAll, Phase: store.PhaseFulfilled})
	assert.Empty(t, writer.written())
}

func TestPublisher_StartWithoutBrokers(t *testing.T) {
	publisher := newTestPublisher(&fakeWriter{})
	assert.Error(t, publisher.Start(context.Background()))
}
