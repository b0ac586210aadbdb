package asyncapi_test

import (
	"fmt"
	"log"

	"github.com/erraggy/asynctools/asyncapi"
)

func ExampleParseWithOptions() {
	data := []byte(`
channels:
  orders:
    messages:
      OrderCreated:
        name: OrderCreated
  payments: {}
operations:
  sendOrder:
    action: send
    channel:
      $ref: '#/channels/orders'
`)
	result, err := asyncapi.ParseWithOptions(
		asyncapi.WithBytes(data),
		asyncapi.WithSourceName("kafka"),
	)
	if err != nil {
		log.Fatal(err)
	}
	for _, entry := range result.Channels {
		fmt.Printf("channel %s: %d message(s)\n", entry.Name, len(entry.Channel.Messages))
	}
	for _, entry := range result.Operations {
		fmt.Printf("operation %s: %s\n", entry.Name, entry.Operation.Action)
	}
	// Output:
	// channel orders: 1 message(s)
	// channel payments: 0 message(s)
	// operation sendOrder: send
}

func ExampleMessageReference_Equal() {
	a := asyncapi.NewChannelMessageReference("orders", "OrderCreated")
	b := asyncapi.MessageReference{Ref: "#/channels/orders/messages/OrderCreated"}
	fmt.Println(a.Equal(b))
	// Output: true
}
