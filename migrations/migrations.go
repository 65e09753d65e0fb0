package migrations

import (
	"database/sql"
	"time"
)

// AutoMigrateOrders creates the orders table if it does not exist.
func AutoMigrateOrders(retries int, dbs ...*sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS orders (
			id INT AUTO_INCREMENT PRIMARY KEY,
			order_id INT NOT NULL UNIQUE,
			session VARCHAR(255) NOT NULL,
			subtotal DOUBLE NOT NULL,
			tax DOUBLE NOT NULL,
			shipping DOUBLE NOT NULL,
			discount DOUBLE NOT NULL,
			total DOUBLE NOT NULL,
			payment_method VARCHAR(20) NOT NULL,
			address VARCHAR(255) NOT NULL,
			status VARCHAR(20) NOT NULL,
			idempotent_key VARCHAR(255) UNIQUE NOT NULL,
			INDEX session_idx (session)
		);
	`
	return execWithRetry(query, retries, dbs...)
}

// AutoMigrateOrderLines creates the order_lines table if it does not exist.
func AutoMigrateOrderLines(retries int, dbs ...*sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS order_lines (
			id INT AUTO_INCREMENT PRIMARY KEY,
			order_id INT NOT NULL,
			product_id VARCHAR(64) NOT NULL,
			name VARCHAR(255) NOT NULL,
			unit_price DOUBLE NOT NULL,
			quantity INT NOT NULL,
			line_total DOUBLE NOT NULL,
			FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE
		);
	`
	return execWithRetry(query, retries, dbs...)
}

func execWithRetry(query string, retries int, dbs ...*sql.DB) error {
	for _, db := range dbs {
		_, err := db.Exec(query)
		for i := 0; err != nil && i < retries; i++ {
			time.Sleep(1 * time.Second)
			_, err = db.Exec(query)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
