package consumer

import (
	"testing"
	"time"

	"github.com/medrelay-dev/medrelay/db"
	"github.com/medrelay-dev/medrelay/internal/crypto"
	applogger "github.com/medrelay-dev/medrelay/internal/logger"
	"github.com/medrelay-dev/medrelay/internal/models"
	"github.com/medrelay-dev/medrelay/internal/services"
	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeAcknowledger struct {
	acked    bool
	nacked   bool
	requeued bool
}

func (f *fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	f.acked = true
	return nil
}

func (f *fakeAcknowledger) Nack(tag uint64, multiple bool, requeue bool) error {
	f.nacked = true
	f.requeued = requeue
	return nil
}

func (f *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	return nil
}

func TestMain(m *testing.M) {
	applogger.InitLogger()
	m.Run()
}

func setupTestDB(t *testing.T) *services.NotificationService {
	t.Helper()

	require.NoError(t, crypto.Init("0123456789abcdef"))

	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, gdb.AutoMigrate(
		&models.ChatNotification{},
		&models.ConsentRequestNotification{},
		&models.OneWayNotification{},
	))

	db.DB = gdb

	t.Cleanup(func() {
		gdb.Exec("DELETE FROM chat_notifications")
		gdb.Exec("DELETE FROM consent_request_notifications")
		gdb.Exec("DELETE FROM one_way_notifications")
	})

	return services.NewNotificationService(nil, nil)
}

func TestHandleDispatchesChatEvent(t *testing.T) {
	service := setupTestDB(t)
	c := &Consumer{service: service}

	ack := &fakeAcknowledger{}
	c.handle(amqp091.Delivery{
		Acknowledger: ack,
		Body:         []byte(`{"type":"CHAT","body":"Hello","recipientId":1}`),
	})

	assert.True(t, ack.acked)
	assert.False(t, ack.nacked)

	records, err := service.FindAllChatNotificationsByRecipient("PATIENT", 1)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestHandleDropsUnknownType(t *testing.T) {
	service := setupTestDB(t)
	c := &Consumer{service: service}

	ack := &fakeAcknowledger{}
	c.handle(amqp091.Delivery{
		Acknowledger: ack,
		Body:         []byte(`{"type":"SMOKE_SIGNAL","body":"?","recipientId":1}`),
	})

	// dropped, not retried
	assert.True(t, ack.acked)
	assert.False(t, ack.nacked)
}

func TestHandleDropsMalformedPayload(t *testing.T) {
	service := setupTestDB(t)
	c := &Consumer{service: service}

	ack := &fakeAcknowledger{}
	c.handle(amqp091.Delivery{
		Acknowledger: ack,
		Body:         []byte(`{{{not json`),
	})

	assert.True(t, ack.acked)
	assert.False(t, ack.nacked)
}

func TestCloseStopsDeliveryLoop(t *testing.T) {
	service := setupTestDB(t)
	c := &Consumer{service: service, done: make(chan struct{})}

	deliveries := make(chan amqp091.Delivery)
	stopped := make(chan struct{})
	go func() {
		c.consume(deliveries)
		close(stopped)
	}()

	ack := &fakeAcknowledger{}
	deliveries <- amqp091.Delivery{
		Acknowledger: ack,
		Body:         []byte(`{"type":"ONE_WAY","body":"Hello","recipientId":1}`),
	}

	require.NoError(t, c.Close())

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("delivery loop still running after Close")
	}

	assert.True(t, ack.acked)
}

func TestConsumeStopsWhenDeliveriesClose(t *testing.T) {
	service := setupTestDB(t)
	c := &Consumer{service: service, done: make(chan struct{})}

	deliveries := make(chan amqp091.Delivery)
	stopped := make(chan struct{})
	go func() {
		c.consume(deliveries)
		close(stopped)
	}()

	close(deliveries)

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("delivery loop still running after channel close")
	}
}

func TestHandleRequeuesOnProcessingFailure(t *testing.T) {
	service := setupTestDB(t)
	c := &Consumer{service: service}

	// break the database underneath the processor
	sqlDB, err := db.DB.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	ack := &fakeAcknowledger{}
	c.handle(amqp091.Delivery{
		Acknowledger: ack,
		Body:         []byte(`{"type":"ONE_WAY","body":"Hello","recipientId":1}`),
	})

	assert.False(t, ack.acked)
	assert.True(t, ack.nacked)
	assert.True(t, ack.requeued)
}
