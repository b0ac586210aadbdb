package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/asynctools/asyncapi"
	"github.com/erraggy/asynctools/asyncerrors"
)

const handlersSource = `package handlers

type Handler struct{}

// HandleOrder consumes new orders.
//
//asyncapi:operation channel=orders action=receive message=*events.OrderCreated protocol=kafka
func (h *Handler) HandleOrder() {}

//asyncapi:operation channel=orders action=send message=events.OrderShipped description="Ships orders"
func PublishShipment() {}

//asyncapi:operation channel=payments action=receive message=PaymentReceived protocol=amqp operation=onPayment
func HandlePayment() {}

// helper is not annotated.
func helper() {}
`

// writeModule lays out a throwaway module so the scanner can load it with go list.
func writeModule(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	files["go.mod"] = "module example.com/svc\n\ngo 1.24\n"
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	return dir
}

func TestAnnotationScanner(t *testing.T) {
	dir := writeModule(t, map[string]string{"handlers/handlers.go": handlersSource})

	t.Run("kafka", func(t *testing.T) {
		s := NewAnnotationScanner("kafka-annotations", "Kafka", dir)
		assert.Equal(t, "kafka", s.Protocol())

		src, err := s.Scan(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "kafka-annotations", src.Name)

		require.Len(t, src.Channels, 2)
		require.Len(t, src.Operations, 2)

		first := src.Operations[0]
		assert.Equal(t, "orders_receive_HandleOrder", first.Name)
		assert.Equal(t, asyncapi.ActionReceive, first.Operation.Action)
		assert.Equal(t, "#/channels/orders", first.Operation.Channel.Ref)
		assert.Equal(t, []asyncapi.MessageReference{
			asyncapi.NewChannelMessageReference("orders", "OrderCreated"),
		}, first.Operation.Messages)
		assert.Contains(t, first.Operation.Bindings, "kafka")

		msg := src.Channels[0].Channel.Messages["OrderCreated"]
		require.NotNil(t, msg)
		assert.Equal(t, "Order Created", msg.Title)
		assert.Equal(t, map[string]any{"$ref": "#/components/schemas/OrderCreated"}, msg.Payload)

		second := src.Operations[1]
		assert.Equal(t, "orders_send_PublishShipment", second.Name)
		assert.Equal(t, "Ships orders", second.Operation.Description)
	})

	t.Run("amqp", func(t *testing.T) {
		src, err := NewAnnotationScanner("amqp-annotations", "amqp", dir, "./handlers").Scan(context.Background())
		require.NoError(t, err)

		var names []string
		for _, e := range src.Operations {
			names = append(names, e.Name)
		}
		assert.Equal(t, []string{"orders_send_PublishShipment", "onPayment"}, names)
		assert.Equal(t, "payments", src.Channels[1].Name)
	})

	t.Run("protocol neutral", func(t *testing.T) {
		src, err := NewAnnotationScanner("all", "", dir).Scan(context.Background())
		require.NoError(t, err)
		require.Len(t, src.Operations, 1, "only directives without a protocol match")
		assert.Nil(t, src.Operations[0].Operation.Bindings)
	})
}

func TestAnnotationScannerInvalidDirective(t *testing.T) {
	dir := writeModule(t, map[string]string{"bad/bad.go": `package bad

//asyncapi:operation channel=orders action=publish message=Order
func Publish() {}
`})

	_, err := NewAnnotationScanner("annotations", "kafka", dir).Scan(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, asyncerrors.ErrScan)
	assert.Contains(t, err.Error(), "invalid directive on Publish")
	assert.Contains(t, err.Error(), "bad.go:3")
}

func TestAnnotationScannerBrokenPackage(t *testing.T) {
	dir := writeModule(t, map[string]string{"broken/broken.go": "package broken\n\nfunc {\n"})

	_, err := NewAnnotationScanner("annotations", "kafka", dir).Scan(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, asyncerrors.ErrScan)
}
