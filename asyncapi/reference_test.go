package asyncapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageReferenceIdentity(t *testing.T) {
	a := NewChannelMessageReference("orders", "OrderCreated")
	b := MessageReference{Ref: "#/channels/orders/messages/OrderCreated"}
	c := NewComponentMessageReference("OrderCreated")

	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Key(), b.Key())
	assert.Equal(t, a, b, "equal references compare equal as values")
	assert.False(t, a.Equal(c))
	assert.Equal(t, "#/components/messages/OrderCreated", c.String())

	set := map[MessageReference]struct{}{a: {}, b: {}, c: {}}
	assert.Len(t, set, 2)
}

func TestMessageReferenceParts(t *testing.T) {
	ref := NewChannelMessageReference("orders/v1", "OrderCreated")
	assert.Equal(t, "#/channels/orders~1v1/messages/OrderCreated", ref.Ref)

	channel, message, ok := ref.ChannelMessage()
	assert.True(t, ok)
	assert.Equal(t, "orders/v1", channel)
	assert.Equal(t, "OrderCreated", message)

	_, ok = ref.ComponentMessage()
	assert.False(t, ok)

	name, ok := NewComponentMessageReference("Ping").ComponentMessage()
	assert.True(t, ok)
	assert.Equal(t, "Ping", name)
}

func TestChannelReference(t *testing.T) {
	ref := NewChannelReference("orders")
	assert.Equal(t, "#/channels/orders", ref.Ref)

	name, ok := ref.ChannelName()
	assert.True(t, ok)
	assert.Equal(t, "orders", name)

	var nilRef *ChannelReference
	_, ok = nilRef.ChannelName()
	assert.False(t, ok)

	assert.True(t, ref.Equal(NewChannelReference("orders")))
	assert.False(t, ref.Equal(NewChannelReference("payments")))
	assert.False(t, ref.Equal(nil))
	assert.True(t, nilRef.Equal(nil))
}

func TestAction(t *testing.T) {
	assert.True(t, ActionSend.IsValid())
	assert.True(t, ActionReceive.IsValid())
	assert.False(t, Action("publish").IsValid())
	assert.False(t, Action("").IsValid())
}

func TestMessageEqual(t *testing.T) {
	a := &Message{Name: "OrderCreated", ContentType: "application/json"}
	b := &Message{Name: "OrderCreated", ContentType: "application/json"}
	c := &Message{Name: "OrderCreated", ContentType: "application/avro"}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))

	var nilMsg *Message
	assert.True(t, nilMsg.Equal(nil))
}

func TestNewEntries(t *testing.T) {
	ch := &Channel{Address: "orders"}
	entry := NewChannelEntry("orders", ch)
	assert.Equal(t, "orders", entry.Name)
	assert.Equal(t, "orders", ch.Name)

	named := &Channel{Name: "kept"}
	NewChannelEntry("other", named)
	assert.Equal(t, "kept", named.Name)

	op := &Operation{Action: ActionSend}
	opEntry := NewOperationEntry("sendOrder", op)
	assert.Equal(t, "sendOrder", opEntry.Name)
	assert.Equal(t, "sendOrder", op.Name)

	assert.Nil(t, NewOperationEntry("x", nil).Operation)
}
