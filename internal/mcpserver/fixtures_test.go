package mcpserver

// kafkaPartial and amqpPartial describe the same "orders" channel from two
// protocols. They share OrderCreated and disagree on the description.
const kafkaPartial = `asyncapi: 3.0.0
info:
  title: Kafka
  version: 1.0.0
channels:
  orders:
    address: orders
    description: Order events on Kafka
    messages:
      OrderCreated:
        name: OrderCreated
        payload:
          $ref: '#/components/schemas/OrderCreated'
operations:
  publishOrder:
    action: send
    channel:
      $ref: '#/channels/orders'
    messages:
      - $ref: '#/channels/orders/messages/OrderCreated'
`

const amqpPartial = `asyncapi: 3.0.0
channels:
  orders:
    address: orders
    description: Order events on AMQP
    messages:
      OrderCreated:
        name: OrderCreated
        payload:
          $ref: '#/components/schemas/OrderCreated'
      OrderCancelled:
        name: OrderCancelled
        payload:
          $ref: '#/components/schemas/OrderCancelled'
operations:
  publishOrder:
    action: send
    channel:
      $ref: '#/channels/orders'
    messages:
      - $ref: '#/channels/orders/messages/OrderCreated'
      - $ref: '#/channels/orders/messages/OrderCancelled'
  consumeOrder:
    action: receive
    channel:
      $ref: '#/channels/orders'
`
