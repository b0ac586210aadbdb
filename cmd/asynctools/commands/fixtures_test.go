package commands

const kafkaPartial = `asyncapi: 3.0.0
channels:
  orders:
    address: orders
    description: Order events on Kafka
    messages:
      OrderCreated:
        name: OrderCreated
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
      OrderCancelled:
        name: OrderCancelled
operations:
  consumeOrder:
    action: receive
    channel:
      $ref: '#/channels/orders'
    messages:
      - $ref: '#/channels/orders/messages/OrderCancelled'
`
