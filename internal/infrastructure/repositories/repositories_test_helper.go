package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		phone TEXT,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL,
		avatar_url TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createMerchantTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE merchants (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL UNIQUE,
		shop_name TEXT NOT NULL,
		bio TEXT,
		wilaya TEXT NOT NULL,
		phone TEXT NOT NULL,
		status TEXT NOT NULL,
		commission_rate REAL,
		verified_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createProductTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE products (
		id TEXT PRIMARY KEY,
		merchant_id TEXT NOT NULL,
		name TEXT NOT NULL,
		description TEXT,
		image_url TEXT,
		price INTEGER NOT NULL,
		stock INTEGER NOT NULL DEFAULT 0,
		category TEXT,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createCouponTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE coupons (
		id TEXT PRIMARY KEY,
		code TEXT NOT NULL UNIQUE,
		discount_type TEXT NOT NULL,
		discount_value INTEGER NOT NULL,
		min_order_amount INTEGER NOT NULL DEFAULT 0,
		max_uses INTEGER,
		used_count INTEGER NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		starts_at DATETIME,
		expires_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createOrderTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE orders (
		id TEXT PRIMARY KEY,
		order_number TEXT NOT NULL UNIQUE,
		customer_id TEXT NOT NULL,
		coupon_id TEXT,
		subtotal INTEGER NOT NULL,
		discount INTEGER NOT NULL DEFAULT 0,
		shipping_cost INTEGER NOT NULL,
		total INTEGER NOT NULL,
		recipient_name TEXT NOT NULL,
		recipient_phone TEXT NOT NULL,
		address TEXT NOT NULL,
		city TEXT,
		region TEXT NOT NULL,
		notes TEXT,
		status TEXT NOT NULL,
		current_location TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE order_items (
		id TEXT PRIMARY KEY,
		order_id TEXT NOT NULL,
		product_id TEXT NOT NULL,
		merchant_id TEXT NOT NULL,
		product_name TEXT NOT NULL,
		product_image TEXT,
		unit_price INTEGER NOT NULL,
		quantity INTEGER NOT NULL,
		line_total INTEGER NOT NULL,
		created_at DATETIME
	);`)
}

func createPaymentTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE payments (
		id TEXT PRIMARY KEY,
		order_id TEXT NOT NULL UNIQUE,
		method TEXT NOT NULL,
		amount INTEGER NOT NULL,
		status TEXT NOT NULL,
		verified_by TEXT,
		verified_at DATETIME,
		rejection_reason TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE payment_proofs (
		id TEXT PRIMARY KEY,
		payment_id TEXT NOT NULL,
		file_url TEXT NOT NULL,
		uploaded_by TEXT NOT NULL,
		created_at DATETIME
	);`)
}

func createEarningTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE merchant_earnings (
		id TEXT PRIMARY KEY,
		merchant_id TEXT NOT NULL,
		order_id TEXT NOT NULL,
		order_item_id TEXT NOT NULL UNIQUE,
		amount INTEGER NOT NULL,
		commission_rate REAL NOT NULL,
		commission_amount INTEGER NOT NULL,
		net_amount INTEGER NOT NULL,
		status TEXT NOT NULL,
		paid_at DATETIME,
		created_at DATETIME
	);`)
}

func createWithdrawalTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE withdrawal_requests (
		id TEXT PRIMARY KEY,
		merchant_id TEXT NOT NULL,
		amount INTEGER NOT NULL,
		payout_method TEXT NOT NULL,
		account_number TEXT NOT NULL,
		account_holder TEXT NOT NULL,
		account_key TEXT,
		status TEXT NOT NULL,
		admin_notes TEXT,
		processed_by TEXT,
		processed_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createTrackingTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE tracking_points (
		id TEXT PRIMARY KEY,
		order_id TEXT NOT NULL,
		status TEXT NOT NULL,
		location TEXT NOT NULL,
		latitude REAL,
		longitude REAL,
		description TEXT,
		created_at DATETIME
	);`)
}
