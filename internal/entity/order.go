package entity

type Order struct {
	ID            int         `json:"id"`
	OrderID       int         `json:"order_id"`
	Session       string      `json:"session"`
	Lines         []OrderLine `json:"lines"`
	Subtotal      float64     `json:"subtotal"`
	Tax           float64     `json:"tax"`
	Shipping      float64     `json:"shipping"`
	Discount      float64     `json:"discount"`
	Total         float64     `json:"total"`
	PaymentMethod string      `json:"payment_method"`
	Address       string      `json:"address"`
	Status        string      `json:"status"` // e.g., "created", "paid", "cancelled"
	IdempotentKey string      `json:"idempotent_key"`
}

type OrderLine struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	LineTotal float64 `json:"line_total"`
}

/*
Mysql Tables

CREATE TABLE orders (
	id INT AUTO_INCREMENT PRIMARY KEY,
	order_id INT NOT NULL UNIQUE,
	session VARCHAR(255) NOT NULL,
	...

CREATE TABLE order_lines (
	id INT AUTO_INCREMENT PRIMARY KEY,
	order_id INT NOT NULL REFERENCES orders(id),
	product_id VARCHAR(64) NOT NULL,
	name VARCHAR(255) NOT NULL,
	unit_price DOUBLE NOT NULL,
	quantity INT NOT NULL,
	line_total DOUBLE NOT NULL
);

*/
