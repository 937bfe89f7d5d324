package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/neoconsult/booking-assistant/internal/config"
	"github.com/neoconsult/booking-assistant/internal/models"
)

type DatabaseClient struct {
	db *sql.DB
}

func NewDatabaseClient(ctx context.Context, cfg *config.Config) (DbClient, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database client configuration is nil")
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}

	dsn := cfg.DatabaseURL
	if cfg.SslCertPath != "" {
		u, err := url.Parse(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid DATABASE_URL: %w", err)
		}
		q := u.Query()
		q.Set("sslmode", "verify-ca")
		q.Set("sslrootcert", cfg.SslCertPath)
		u.RawQuery = q.Encode()
		dsn = u.String()
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetConnMaxIdleTime(10 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if err := EnsureBootstrapped(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

func (c *DatabaseClient) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

func (c *DatabaseClient) CreateAdminUser(ctx context.Context, user *models.AdminUser) error {
	if user == nil {
		return errors.New("nil admin user")
	}
	const q = `
		INSERT INTO admin_users (id, email, password_hash, created_at)
		VALUES ($1, $2, $3, COALESCE($4, now()))
	`
	_, err := c.db.ExecContext(ctx, q, user.ID, user.Email, user.PasswordHash, user.CreatedAt)
	return err
}

func (c *DatabaseClient) GetAdminUserByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	const q = `
		SELECT id, email, password_hash, created_at
		FROM admin_users WHERE email = $1
	`
	var u models.AdminUser
	err := c.db.QueryRowContext(ctx, q, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *DatabaseClient) GetOrCreateCustomer(ctx context.Context, name, email, phone, company string) (*models.Customer, error) {
	const sel = `
		SELECT customer_id, name, email, phone, COALESCE(company, '')
		FROM customers WHERE email = $1
	`
	var cu models.Customer
	err := c.db.QueryRowContext(ctx, sel, email).Scan(
		&cu.CustomerID, &cu.Name, &cu.Email, &cu.Phone, &cu.Company,
	)
	if err == nil {
		return &cu, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("lookup customer: %w", err)
	}

	const ins = `
		INSERT INTO customers (name, email, phone, company)
		VALUES ($1, $2, $3, $4)
		RETURNING customer_id
	`
	cu = models.Customer{Name: name, Email: email, Phone: phone, Company: company}
	if err := c.db.QueryRowContext(ctx, ins, name, email, phone, company).Scan(&cu.CustomerID); err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return &cu, nil
}

func (c *DatabaseClient) CreateBooking(ctx context.Context, booking *models.Booking) error {
	if booking == nil {
		return errors.New("nil booking")
	}
	if booking.Status == "" {
		booking.Status = models.BookingStatusConfirmed
	}
	const q = `
		INSERT INTO bookings (customer_id, booking_type, date, time, status)
		VALUES ($1, $2, $3::date, $4::time, $5)
		RETURNING id, created_at
	`
	return c.db.QueryRowContext(ctx, q,
		booking.CustomerID, booking.BookingType, booking.Date, booking.Time, booking.Status,
	).Scan(&booking.ID, &booking.CreatedAt)
}

const bookingRecordColumns = `
	b.id, b.customer_id, b.booking_type,
	to_char(b.date, 'YYYY-MM-DD'), to_char(b.time, 'HH24:MI'),
	b.status, b.created_at,
	c.name, COALESCE(c.company, ''), c.email, c.phone
`

func (c *DatabaseClient) GetBookingsByEmail(ctx context.Context, email string) ([]models.BookingRecord, error) {
	q := `
		SELECT ` + bookingRecordColumns + `
		FROM bookings b
		JOIN customers c ON c.customer_id = b.customer_id
		WHERE c.email = $1
		ORDER BY b.created_at DESC
	`
	rows, err := c.db.QueryContext(ctx, q, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookingRecords(rows)
}

func (c *DatabaseClient) ListAllBookings(ctx context.Context) ([]models.BookingRecord, error) {
	q := `
		SELECT ` + bookingRecordColumns + `
		FROM bookings b
		JOIN customers c ON c.customer_id = b.customer_id
		ORDER BY b.created_at DESC
	`
	rows, err := c.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookingRecords(rows)
}

func scanBookingRecords(rows *sql.Rows) ([]models.BookingRecord, error) {
	var out []models.BookingRecord
	for rows.Next() {
		var r models.BookingRecord
		if err := rows.Scan(
			&r.ID, &r.CustomerID, &r.BookingType,
			&r.Date, &r.Time,
			&r.Status, &r.CreatedAt,
			&r.CustomerName, &r.Company, &r.Email, &r.Phone,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
