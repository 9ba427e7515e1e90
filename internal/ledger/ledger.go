// Package ledger keeps the shift record of completed orders in an in-memory
// SQLite database. The ledger lives only as long as the process; it answers
// sales questions for the current shift and is gone on restart.
//
// Money is stored as decimal text and summed with exact decimal arithmetic,
// never as SQLite REAL.
package ledger

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/tableside/pkg/types"
)

//go:embed schema.sql
var schemaSQL string

// timeLayout is fixed width so that stored times sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// ErrAlreadyRecorded is returned when an order ID is recorded twice.
var ErrAlreadyRecorded = errors.New("order already recorded in ledger")

// Ledger records completed orders. It is safe for concurrent use.
type Ledger struct {
	db  *sql.DB
	log *zap.Logger
}

// Entry is one completed order as recorded.
type Entry struct {
	ID          string
	OrderID     types.OrderID
	Table       int
	StaffID     string
	Status      types.OrderStatus
	PlacedAt    time.Time
	CompletedAt time.Time
	Total       decimal.Decimal
	Lines       []Line
}

// Line is one recorded order line.
type Line struct {
	Item      string
	Category  string
	Quantity  int
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
}

// Sales is an aggregate over recorded orders that were not cancelled.
type Sales struct {
	Key    string
	Orders int
	Items  int
	Total  decimal.Decimal
}

// Open creates an empty ledger.
func Open(ctx context.Context, log *zap.Logger) (*Ledger, error) {
	if log == nil {
		log = zap.NewNop()
	}
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening ledger database: %w", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating ledger schema: %w", err)
	}
	return &Ledger{db: db, log: log}, nil
}

// Close releases the database. Recorded entries are discarded.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// Record stores order as completed at completedAt. The order's lines and
// total are captured as they are at the time of the call.
func (l *Ledger) Record(ctx context.Context, order *types.Order, completedAt time.Time) (Entry, error) {
	if order == nil {
		return Entry{}, types.ErrNilOrder
	}
	id, err := uuid.NewV7()
	if err != nil {
		return Entry{}, fmt.Errorf("generating UUID v7: %w", err)
	}
	entry := Entry{
		ID:          id.String(),
		OrderID:     order.ID(),
		Table:       order.TableNumber(),
		StaffID:     order.WaitStaffID(),
		Status:      order.Status(),
		PlacedAt:    order.OrderTime().UTC(),
		CompletedAt: completedAt.UTC(),
		Total:       decimal.Zero,
	}
	for _, item := range order.Items() {
		mi := item.MenuItem()
		line := Line{
			Item:      mi.Name(),
			Category:  mi.CategoryName(),
			Quantity:  item.Quantity(),
			UnitPrice: mi.Price(),
			Total:     item.TotalPrice(),
		}
		entry.Lines = append(entry.Lines, line)
		entry.Total = entry.Total.Add(line.Total)
	}

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return Entry{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRowContext(ctx,
		"SELECT 1 FROM completed_orders WHERE order_id = ?", int64(entry.OrderID),
	).Scan(&exists)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("checking ledger for order %d: %w", entry.OrderID, err)
	}
	if exists {
		return Entry{}, fmt.Errorf("%w: order %d", ErrAlreadyRecorded, entry.OrderID)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO completed_orders
		 (entry_id, order_id, table_number, staff_id, status, placed_at, completed_at, total)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, int64(entry.OrderID), entry.Table, entry.StaffID, string(entry.Status),
		entry.PlacedAt.Format(timeLayout), entry.CompletedAt.Format(timeLayout),
		entry.Total.String(),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("recording order %d: %w", entry.OrderID, err)
	}
	for i, line := range entry.Lines {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO completed_lines
			 (entry_id, position, item_name, category, quantity, unit_price, line_total)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			entry.ID, i, line.Item, line.Category, line.Quantity,
			line.UnitPrice.String(), line.Total.String(),
		)
		if err != nil {
			return Entry{}, fmt.Errorf("recording line %d of order %d: %w", i, entry.OrderID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return Entry{}, fmt.Errorf("committing order %d: %w", entry.OrderID, err)
	}

	l.log.Info("order recorded",
		zap.String("entry_id", entry.ID),
		zap.Int64("order_id", int64(entry.OrderID)),
		zap.String("status", string(entry.Status)),
		zap.String("total", entry.Total.StringFixed(2)))
	return entry, nil
}

// Entries returns every recorded order, oldest completion first.
func (l *Ledger) Entries(ctx context.Context) ([]Entry, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT entry_id, order_id, table_number, staff_id, status, placed_at, completed_at, total
		 FROM completed_orders ORDER BY completed_at, order_id`)
	if err != nil {
		return nil, fmt.Errorf("querying ledger: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	index := make(map[string]int)
	for rows.Next() {
		e, err := hydrateEntry(rows)
		if err != nil {
			return nil, err
		}
		index[e.ID] = len(entries)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ledger: %w", err)
	}

	lines, err := l.db.QueryContext(ctx,
		`SELECT entry_id, item_name, category, quantity, unit_price, line_total
		 FROM completed_lines ORDER BY entry_id, position`)
	if err != nil {
		return nil, fmt.Errorf("querying ledger lines: %w", err)
	}
	defer lines.Close()
	for lines.Next() {
		var (
			entryID, unit, total string
			line                 Line
		)
		if err := lines.Scan(&entryID, &line.Item, &line.Category, &line.Quantity, &unit, &total); err != nil {
			return nil, fmt.Errorf("scanning ledger line: %w", err)
		}
		if line.UnitPrice, err = decimal.NewFromString(unit); err != nil {
			return nil, fmt.Errorf("parsing unit price %q: %w", unit, err)
		}
		if line.Total, err = decimal.NewFromString(total); err != nil {
			return nil, fmt.Errorf("parsing line total %q: %w", total, err)
		}
		if i, ok := index[entryID]; ok {
			entries[i].Lines = append(entries[i].Lines, line)
		}
	}
	if err := lines.Err(); err != nil {
		return nil, fmt.Errorf("iterating ledger lines: %w", err)
	}
	return entries, nil
}

func hydrateEntry(rows *sql.Rows) (Entry, error) {
	var (
		e                         Entry
		orderID                   int64
		status, placed, completed string
		total                     string
	)
	if err := rows.Scan(&e.ID, &orderID, &e.Table, &e.StaffID, &status, &placed, &completed, &total); err != nil {
		return Entry{}, fmt.Errorf("scanning ledger entry: %w", err)
	}
	e.OrderID = types.OrderID(orderID)
	e.Status = types.OrderStatus(status)

	var err error
	if e.PlacedAt, err = time.Parse(timeLayout, placed); err != nil {
		return Entry{}, fmt.Errorf("parsing placed_at %q: %w", placed, err)
	}
	if e.CompletedAt, err = time.Parse(timeLayout, completed); err != nil {
		return Entry{}, fmt.Errorf("parsing completed_at %q: %w", completed, err)
	}
	if e.Total, err = decimal.NewFromString(total); err != nil {
		return Entry{}, fmt.Errorf("parsing total %q: %w", total, err)
	}
	return e, nil
}

// SalesByStaff sums non-cancelled orders per wait staff ID.
func (l *Ledger) SalesByStaff(ctx context.Context) ([]Sales, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT o.staff_id, o.order_id, l.quantity, l.line_total
		 FROM completed_orders o
		 LEFT JOIN completed_lines l ON l.entry_id = o.entry_id
		 WHERE o.status != ?`, string(types.OrderCancelled))
	if err != nil {
		return nil, fmt.Errorf("querying sales by staff: %w", err)
	}
	defer rows.Close()
	return aggregate(rows)
}

// SalesByCategory sums lines of non-cancelled orders per menu category.
func (l *Ledger) SalesByCategory(ctx context.Context) ([]Sales, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT l.category, o.order_id, l.quantity, l.line_total
		 FROM completed_lines l
		 JOIN completed_orders o ON o.entry_id = l.entry_id
		 WHERE o.status != ?`, string(types.OrderCancelled))
	if err != nil {
		return nil, fmt.Errorf("querying sales by category: %w", err)
	}
	defer rows.Close()
	return aggregate(rows)
}

// aggregate folds (key, order_id, quantity, line_total) rows into per-key
// sales sorted by key. Quantity and total may be NULL for orders without
// lines.
func aggregate(rows *sql.Rows) ([]Sales, error) {
	byKey := make(map[string]*Sales)
	orders := make(map[string]map[int64]bool)
	for rows.Next() {
		var (
			key     string
			orderID int64
			qty     sql.NullInt64
			total   sql.NullString
		)
		if err := rows.Scan(&key, &orderID, &qty, &total); err != nil {
			return nil, fmt.Errorf("scanning sales row: %w", err)
		}
		s, ok := byKey[key]
		if !ok {
			s = &Sales{Key: key, Total: decimal.Zero}
			byKey[key] = s
			orders[key] = make(map[int64]bool)
		}
		if !orders[key][orderID] {
			orders[key][orderID] = true
			s.Orders++
		}
		if qty.Valid {
			s.Items += int(qty.Int64)
		}
		if total.Valid {
			amount, err := decimal.NewFromString(total.String)
			if err != nil {
				return nil, fmt.Errorf("parsing amount %q: %w", total.String, err)
			}
			s.Total = s.Total.Add(amount)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sales rows: %w", err)
	}

	out := make([]Sales, 0, len(byKey))
	for _, s := range byKey {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}
