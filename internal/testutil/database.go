package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB opens the integration test database. Expects a MySQL
// instance on localhost:3306 with a database named 'coffeeshop_test';
// tests are skipped when it is not reachable.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := "root:@tcp(localhost:3306)/coffeeshop_test?parseTime=true"
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// CleanupTestDB empties the test tables and closes the connection.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{"reviews", "order_items", "orders", "products", "categories"}
	for _, table := range tables {
		_, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

// SetupTestTables creates the schema the repositories expect. The unique
// keys on (order_id, product_id) and (product_id, user_id) back the
// conflict detection under concurrent inserts.
func SetupTestTables(t *testing.T, db *sql.DB) {
	createCategoriesTable := `
	CREATE TABLE IF NOT EXISTS categories (
		id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(100) NOT NULL UNIQUE,
		description TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`

	createProductsTable := `
	CREATE TABLE IF NOT EXISTS products (
		id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(200) NOT NULL,
		description TEXT NOT NULL,
		price DECIMAL(10,2) NOT NULL,
		category_id BIGINT NOT NULL,
		roast_level VARCHAR(10) NOT NULL DEFAULT 'medium',
		origin VARCHAR(100) NOT NULL DEFAULT '',
		weight_grams INT NOT NULL DEFAULT 250,
		is_available TINYINT(1) NOT NULL DEFAULT 1,
		image VARCHAR(255),
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		FOREIGN KEY (category_id) REFERENCES categories(id) ON DELETE CASCADE,
		INDEX idx_category (category_id),
		INDEX idx_available (is_available)
	)`

	createOrdersTable := `
	CREATE TABLE IF NOT EXISTS orders (
		id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		total_amount DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		shipping_address TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_user (user_id)
	)`

	createOrderItemsTable := `
	CREATE TABLE IF NOT EXISTS order_items (
		id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		order_id BIGINT NOT NULL,
		product_id BIGINT NOT NULL,
		quantity INT NOT NULL DEFAULT 1,
		price DECIMAL(10,2) NOT NULL,
		FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE,
		FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE,
		UNIQUE KEY uq_order_product (order_id, product_id),
		INDEX idx_order (order_id)
	)`

	createReviewsTable := `
	CREATE TABLE IF NOT EXISTS reviews (
		id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		product_id BIGINT NOT NULL,
		user_id BIGINT NOT NULL,
		rating INT NOT NULL,
		comment TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE,
		UNIQUE KEY uq_product_user (product_id, user_id),
		INDEX idx_product (product_id)
	)`

	tables := []struct {
		name  string
		query string
	}{
		{"categories", createCategoriesTable},
		{"products", createProductsTable},
		{"orders", createOrdersTable},
		{"order_items", createOrderItemsTable},
		{"reviews", createReviewsTable},
	}

	for _, tbl := range tables {
		_, err := db.Exec(tbl.query)
		if err != nil {
			t.Logf("failed to create table %s: %v", tbl.name, err)
		}
	}
}

// SeedCategory inserts a category and returns its id.
func SeedCategory(t *testing.T, db *sql.DB, name string) int64 {
	result, err := db.Exec(
		`INSERT INTO categories (name, description) VALUES (?, ?)`,
		name, name+" description",
	)
	if err != nil {
		t.Fatalf("seeding category: %v", err)
	}
	id, _ := result.LastInsertId()
	return id
}

// SeedProduct inserts an available product and returns its id.
func SeedProduct(t *testing.T, db *sql.DB, categoryID int64, name, price string) int64 {
	result, err := db.Exec(
		`INSERT INTO products (name, description, price, category_id, roast_level, origin)
		 VALUES (?, ?, ?, ?, 'medium', 'Colombia')`,
		name, name+" description", price, categoryID,
	)
	if err != nil {
		t.Fatalf("seeding product: %v", err)
	}
	id, _ := result.LastInsertId()
	return id
}
