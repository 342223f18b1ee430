package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/gkrishna247/lendit-p2p-market/internal/marketerrors"
	model "github.com/gkrishna247/lendit-p2p-market/internal/models"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

const itemColumns = `id, owner_id, title, description, category, daily_price_cents, status, created_at, updated_at`

const bookingColumns = `id, item_id, renter_id, start_date, end_date, total_price_cents, status, created_at`

// PostgresRepo is the Postgres implementation of Store
type PostgresRepo struct {
	db *sqlx.DB
}

// NewPostgresRepo wraps an open connection pool
func NewPostgresRepo(db *sqlx.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

// Close releases the connection pool
func (r *PostgresRepo) Close() error {
	return r.db.Close()
}

func pqCode(err error) (string, string) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code), pqErr.Constraint
	}
	return "", ""
}

// CreateUser inserts an account; a duplicate username maps to ErrUsernameTaken
func (r *PostgresRepo) CreateUser(ctx context.Context, user model.User) error {
	const query = `
		INSERT INTO users (id, username, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query, user.UserID, user.Username, user.Email, user.PasswordHash, user.CreatedAt)
	if err != nil {
		if code, _ := pqCode(err); code == pqUniqueViolation {
			return fmt.Errorf("create user %s: %w", user.Username, marketerrors.ErrUsernameTaken)
		}
		return fmt.Errorf("create user %s: %w", user.Username, err)
	}
	return nil
}

// GetUser returns an account by ID
func (r *PostgresRepo) GetUser(ctx context.Context, userID string) (model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, `SELECT id, username, email, password_hash, created_at FROM users WHERE id = $1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, fmt.Errorf("get user %s: %w", userID, marketerrors.ErrUserNotFound)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("get user %s: %w", userID, err)
	}
	return user, nil
}

// GetUserByUsername returns an account by username
func (r *PostgresRepo) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, `SELECT id, username, email, password_hash, created_at FROM users WHERE username = $1`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, fmt.Errorf("get user by username %s: %w", username, marketerrors.ErrUserNotFound)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("get user by username %s: %w", username, err)
	}
	return user, nil
}

// DeleteUser removes an account; foreign keys cascade to items and bookings
func (r *PostgresRepo) DeleteUser(ctx context.Context, userID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete user %s: %w", userID, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("delete user %s: rows affected: %w", userID, err)
	} else if n == 0 {
		return fmt.Errorf("delete user %s: %w", userID, marketerrors.ErrUserNotFound)
	}
	return nil
}

// CreateItem inserts an item for an existing owner
func (r *PostgresRepo) CreateItem(ctx context.Context, item model.Item) error {
	query := `INSERT INTO items (` + itemColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, query,
		item.ItemID,
		item.OwnerID,
		item.Title,
		item.Description,
		string(item.Category),
		int64(item.DailyPrice),
		string(item.Status),
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		if code, _ := pqCode(err); code == pqForeignKeyViolation {
			return fmt.Errorf("create item for owner %s: %w", item.OwnerID, marketerrors.ErrUserNotFound)
		}
		return fmt.Errorf("create item %s: %w", item.ItemID, err)
	}
	return nil
}

// GetItem returns an item by ID
func (r *PostgresRepo) GetItem(ctx context.Context, itemID string) (model.Item, error) {
	var item model.Item
	err := r.db.GetContext(ctx, &item, `SELECT `+itemColumns+` FROM items WHERE id = $1`, itemID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Item{}, fmt.Errorf("get item %s: %w", itemID, marketerrors.ErrItemNotFound)
	}
	if err != nil {
		return model.Item{}, fmt.Errorf("get item %s: %w", itemID, err)
	}
	return item, nil
}

// ListItems returns matching items, newest first
func (r *PostgresRepo) ListItems(ctx context.Context, filter ItemFilter) ([]model.Item, error) {
	var (
		conds []string
		args  []any
	)
	if filter.OwnerID != "" {
		args = append(args, filter.OwnerID)
		conds = append(conds, fmt.Sprintf("owner_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Category != "" {
		args = append(args, string(filter.Category))
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}

	query := `SELECT ` + itemColumns + ` FROM items`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY created_at DESC, id DESC`

	items := []model.Item{}
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// DeleteItem removes an item; bookings cascade
func (r *PostgresRepo) DeleteItem(ctx context.Context, itemID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("delete item %s: %w", itemID, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("delete item %s: rows affected: %w", itemID, err)
	} else if n == 0 {
		return fmt.Errorf("delete item %s: %w", itemID, marketerrors.ErrItemNotFound)
	}
	return nil
}

// CreateBooking inserts a booking against an existing item and renter
func (r *PostgresRepo) CreateBooking(ctx context.Context, booking model.Booking) error {
	query := `INSERT INTO bookings (` + bookingColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query,
		booking.BookingID,
		booking.ItemID,
		booking.RenterID,
		booking.StartDate,
		booking.EndDate,
		int64(booking.TotalPrice),
		string(booking.Status),
		booking.CreatedAt,
	)
	if err != nil {
		if code, constraint := pqCode(err); code == pqForeignKeyViolation {
			if strings.Contains(constraint, "renter") {
				return fmt.Errorf("create booking for renter %s: %w", booking.RenterID, marketerrors.ErrUserNotFound)
			}
			return fmt.Errorf("create booking for item %s: %w", booking.ItemID, marketerrors.ErrItemNotFound)
		}
		return fmt.Errorf("create booking %s: %w", booking.BookingID, err)
	}
	return nil
}

// GetBooking returns a booking by ID
func (r *PostgresRepo) GetBooking(ctx context.Context, bookingID string) (model.Booking, error) {
	var b model.Booking
	err := r.db.GetContext(ctx, &b, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, bookingID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Booking{}, fmt.Errorf("get booking %s: %w", bookingID, marketerrors.ErrBookingNotFound)
	}
	if err != nil {
		return model.Booking{}, fmt.Errorf("get booking %s: %w", bookingID, err)
	}
	return b, nil
}

// ListBookings returns matching bookings, newest first
func (r *PostgresRepo) ListBookings(ctx context.Context, filter BookingFilter) ([]model.Booking, error) {
	var (
		conds []string
		args  []any
	)
	if filter.ItemID != "" {
		args = append(args, filter.ItemID)
		conds = append(conds, fmt.Sprintf("b.item_id = $%d", len(args)))
	}
	if filter.RenterID != "" {
		args = append(args, filter.RenterID)
		conds = append(conds, fmt.Sprintf("b.renter_id = $%d", len(args)))
	}
	if filter.ItemOwnerID != "" {
		args = append(args, filter.ItemOwnerID)
		conds = append(conds, fmt.Sprintf("i.owner_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		conds = append(conds, fmt.Sprintf("b.status = $%d", len(args)))
	}

	query := `
		SELECT b.id, b.item_id, b.renter_id, b.start_date, b.end_date,
		       b.total_price_cents, b.status, b.created_at
		FROM bookings b
		JOIN items i ON i.id = b.item_id`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY b.created_at DESC, b.id DESC`

	bookings := []model.Booking{}
	if err := r.db.SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

// ApproveBooking flips the booking to approved and its item to rented in one transaction.
// The pending guard is re-checked inside the transaction.
func (r *PostgresRepo) ApproveBooking(ctx context.Context, bookingID string, at time.Time) (b model.Booking, item model.Item, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Booking{}, model.Item{}, fmt.Errorf("approve booking %s: begin: %w", bookingID, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	b, err = r.transition(ctx, tx, bookingID, model.BookingApproved)
	if err != nil {
		return model.Booking{}, model.Item{}, fmt.Errorf("approve booking %s: %w", bookingID, err)
	}

	query := `
		UPDATE items
		SET status = $1,
			updated_at = $2
		WHERE id = $3
		RETURNING ` + itemColumns
	err = tx.GetContext(ctx, &item, query, string(model.ItemRented), at, b.ItemID)
	if errors.Is(err, sql.ErrNoRows) {
		err = marketerrors.ErrItemNotFound
	}
	if err != nil {
		return model.Booking{}, model.Item{}, fmt.Errorf("approve booking %s: mark item rented: %w", bookingID, err)
	}

	if err = tx.Commit(); err != nil {
		return model.Booking{}, model.Item{}, fmt.Errorf("approve booking %s: commit: %w", bookingID, err)
	}
	return b, item, nil
}

// RejectBooking flips a pending booking to rejected
func (r *PostgresRepo) RejectBooking(ctx context.Context, bookingID string) (b model.Booking, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Booking{}, fmt.Errorf("reject booking %s: begin: %w", bookingID, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	b, err = r.transition(ctx, tx, bookingID, model.BookingRejected)
	if err != nil {
		return model.Booking{}, fmt.Errorf("reject booking %s: %w", bookingID, err)
	}
	if err = tx.Commit(); err != nil {
		return model.Booking{}, fmt.Errorf("reject booking %s: commit: %w", bookingID, err)
	}
	return b, nil
}

// transition moves a pending booking to status, distinguishing a missing row from a processed one
func (r *PostgresRepo) transition(ctx context.Context, tx *sqlx.Tx, bookingID string, status model.BookingStatus) (model.Booking, error) {
	query := `
		UPDATE bookings
		SET status = $1
		WHERE id = $2
		AND status = $3
		RETURNING ` + bookingColumns

	var b model.Booking
	err := tx.GetContext(ctx, &b, query, string(status), bookingID, string(model.BookingPending))
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return model.Booking{}, fmt.Errorf("update status: %w", err)
	}

	var exists bool
	if err := tx.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM bookings WHERE id = $1)`, bookingID); err != nil {
		return model.Booking{}, fmt.Errorf("check booking: %w", err)
	}
	if !exists {
		return model.Booking{}, marketerrors.ErrBookingNotFound
	}
	return model.Booking{}, marketerrors.ErrAlreadyProcessed
}
