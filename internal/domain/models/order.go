package models

import "time"

// OrderStatus marks whether the customer has settled the order.
type OrderStatus string

const (
	OrderPaid   OrderStatus = "Paid"
	OrderUnpaid OrderStatus = "Unpaid"
)

// Order records a sale. It references its product by name, not id; if the
// product is later renamed or deleted the ledger falls back to a cost
// heuristic when attributing profit.
type Order struct {
	ID          string      `bson:"_id" json:"id"`
	ProductName string      `bson:"product_name" json:"productName"`
	Quantity    int         `bson:"quantity" json:"quantity"`
	TotalAmount int64       `bson:"total_amount" json:"totalAmount"`
	Date        time.Time   `bson:"date" json:"date"`
	Status      OrderStatus `bson:"status" json:"status"`
	CreatedAt   time.Time   `bson:"created_at" json:"createdAt"`
}
