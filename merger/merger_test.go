package merger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/asynctools/asyncapi"
	"github.com/erraggy/asynctools/asyncerrors"
	"github.com/erraggy/asynctools/internal/severity"
	"github.com/erraggy/asynctools/internal/testutil"
)

func kafkaSource() Source {
	orders := testutil.NewChannel("orders", "OrderCreated")
	orders.Description = "Order events"
	return Source{
		Name:     "kafka",
		Channels: testutil.ChannelEntries(orders, testutil.NewChannel("payments", "PaymentReceived")),
		Operations: testutil.OperationEntries(
			testutil.NewOperation("sendOrder", asyncapi.ActionSend, "orders", "OrderCreated"),
		),
	}
}

func amqpSource() Source {
	orders := testutil.NewChannel("orders", "OrderCreated", "OrderShipped")
	orders.Messages["OrderCreated"].ContentType = "application/xml"
	orders.Description = "Order exchange"

	op := testutil.NewOperation("sendOrder", asyncapi.ActionReceive, "shipping", "OrderShipped")
	op.Description = "amqp producer"
	return Source{
		Name:       "amqp",
		Channels:   testutil.ChannelEntries(orders),
		Operations: testutil.OperationEntries(op),
	}
}

func TestMergerMerge(t *testing.T) {
	m := New(DefaultConfig())
	result, err := m.Merge(kafkaSource(), amqpSource())
	require.NoError(t, err)

	assert.Equal(t, 2, result.SourceCount)
	assert.Equal(t, 5, result.EntryCount)
	assert.Equal(t, []string{"orders", "payments"}, result.ChannelNames())
	assert.Equal(t, []string{"sendOrder"}, result.OperationNames())

	orders := result.Channels["orders"]
	assert.Equal(t, "Order events", orders.Description)
	assert.Len(t, orders.Messages, 2)
	assert.Equal(t, "application/json", orders.Messages["OrderCreated"].ContentType)

	op := result.Operations["sendOrder"]
	assert.Equal(t, asyncapi.ActionSend, op.Action)
	assert.Equal(t, []asyncapi.MessageReference{
		ref("orders", "OrderCreated"),
		ref("shipping", "OrderShipped"),
	}, op.Messages)
}

func TestMergerConflictWarnings(t *testing.T) {
	result, err := New(DefaultConfig()).Merge(kafkaSource(), amqpSource())
	require.NoError(t, err)

	ws := result.Warnings
	require.Len(t, ws.ByCategory(WarnDescriptionConflict), 1)
	require.Len(t, ws.ByCategory(WarnMessageDropped), 1)
	require.Len(t, ws.ByCategory(WarnActionConflict), 1)
	require.Len(t, ws.ByCategory(WarnChannelRefConflict), 1)
	assert.Len(t, ws, 4, "operation description is empty on the kept side")

	dropped := ws.ByCategory(WarnMessageDropped)[0]
	assert.Equal(t, "channels.orders.messages.OrderCreated", dropped.Path)
	assert.Equal(t, "kafka", dropped.FirstSource)
	assert.Equal(t, "amqp", dropped.SourceName)
	assert.Equal(t, severity.SeverityWarning, dropped.Severity)

	action := ws.ByCategory(WarnActionConflict)[0]
	assert.Equal(t, "operations.sendOrder.action", action.Path)
	assert.Contains(t, action.Message, "'receive' from amqp ignored")

	assert.Len(t, ws.BySeverity(severity.SeverityInfo), 1)
	assert.Len(t, ws.Strings(), 4)
	assert.Contains(t, ws.Summary(), "4 warning(s):")
}

func TestMergerConflictWarningsDisabled(t *testing.T) {
	result, err := New(Config{}).Merge(kafkaSource(), amqpSource())
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)
	assert.Empty(t, result.Warnings.Summary())
}

func TestMergerIdenticalMessagesNoWarning(t *testing.T) {
	a := Source{Name: "a", Channels: testutil.ChannelEntries(testutil.NewChannel("orders", "OrderCreated"))}
	b := Source{Name: "b", Channels: testutil.ChannelEntries(testutil.NewChannel("orders", "OrderCreated"))}

	result, err := New(DefaultConfig()).Merge(a, b)
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)
}

func TestMergerValidation(t *testing.T) {
	tests := []struct {
		name    string
		source  Source
		wantMsg string
	}{
		{
			name: "nil channel",
			source: Source{Name: "kafka", Channels: []asyncapi.ChannelEntry{
				{Name: "orders", Channel: testutil.NewChannel("orders")},
				{Name: "payments"},
			}},
			wantMsg: "validation error in kafka at channels.payments (entry 1): channel is nil",
		},
		{
			name:    "empty channel name",
			source:  Source{Name: "kafka", Channels: []asyncapi.ChannelEntry{{Channel: testutil.NewChannel("")}}},
			wantMsg: "validation error in kafka at channels (entry 0): channel name is empty",
		},
		{
			name:    "nil operation",
			source:  Source{Name: "amqp", Operations: []asyncapi.OperationEntry{{Name: "op"}}},
			wantMsg: "validation error in amqp at operations.op (entry 0): operation is nil",
		},
		{
			name: "empty operation name",
			source: Source{Name: "amqp", Operations: []asyncapi.OperationEntry{
				{Operation: testutil.NewOperation("", asyncapi.ActionSend, "orders")},
			}},
			wantMsg: "validation error in amqp at operations (entry 0): operation name is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := New(DefaultConfig()).Merge(kafkaSource(), tt.source)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, asyncerrors.ErrValidation)
			assert.EqualError(t, err, tt.wantMsg)
		})
	}
}

func TestMergerNoSources(t *testing.T) {
	result, err := New(DefaultConfig()).Merge()
	require.NoError(t, err)
	assert.NotNil(t, result.Channels)
	assert.NotNil(t, result.Operations)
	assert.Empty(t, result.ChannelNames())
	assert.Equal(t, 0, result.SourceCount)
}

func TestMergerLogsSharedNames(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})

	m := New(DefaultConfig())
	m.Logger = asyncapi.NewSlogAdapter(slog.New(handler))
	_, err := m.Merge(kafkaSource(), amqpSource())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "merged sources")
	assert.Contains(t, out, "name=channels.orders")
	assert.NotContains(t, out, "name=channels.payments")
}

func TestSourceFromParseResult(t *testing.T) {
	pr, err := asyncapi.ParseWithOptions(
		asyncapi.WithBytes([]byte("channels:\n  orders: {}\n")),
		asyncapi.WithSourceName("kafka"),
	)
	require.NoError(t, err)

	src := SourceFromParseResult(pr)
	assert.Equal(t, "kafka", src.Name)
	assert.Equal(t, 1, src.EntryCount())
	assert.Equal(t, "kafka (1 channels, 0 operations)", src.String())
}
