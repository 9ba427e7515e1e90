// Package session runs line-oriented command scripts against a floor.
//
// Each non-blank line is one command; lines starting with '#' are comments.
// Every command is echoed with a "> " prefix followed by its output. A
// failing command prints "error: ..." and the session continues.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/tableside/internal/floor"
	"github.com/mesh-intelligence/tableside/internal/ledger"
	"github.com/mesh-intelligence/tableside/pkg/types"
)

// Session errors.
var (
	ErrNoDraft        = errors.New("no open order, start one with: order <table> <staff>")
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("usage")
	ErrLedgerDisabled = errors.New("sales ledger is disabled")
)

// SalesReporter answers sales questions for the shift.
type SalesReporter interface {
	SalesByStaff(ctx context.Context) ([]ledger.Sales, error)
	SalesByCategory(ctx context.Context) ([]ledger.Sales, error)
}

// Session interprets commands against one floor. The order being built
// between "order" and "submit" is the draft. A Session is not safe for
// concurrent use; the floor it drives is.
type Session struct {
	id    string
	floor *floor.Floor
	sales SalesReporter
	out   io.Writer
	draft *types.Order
	log   *zap.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithSales enables the "sales" command.
func WithSales(r SalesReporter) Option {
	return func(s *Session) { s.sales = r }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// New creates a session writing its output to out.
func New(f *floor.Floor, out io.Writer, opts ...Option) (*Session, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generating session id: %w", err)
	}
	s := &Session{id: id.String(), floor: f, out: out, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(zap.String("session", s.id))
	return s, nil
}

// ID returns the session identifier used in logs.
func (s *Session) ID() string { return s.id }

// Draft returns the order being built, if any.
func (s *Session) Draft() (*types.Order, bool) {
	return s.draft, s.draft != nil
}

// Run executes every command read from r. Command failures are printed and
// do not stop the run; Run returns only read errors or context cancellation.
func (s *Session) Run(ctx context.Context, r io.Reader) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		s.printf("> %s\n", line)
		if err := s.Exec(ctx, line); err != nil {
			s.log.Debug("command failed", zap.String("command", line), zap.Error(err))
			s.printf("error: %v\n", err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading commands: %w", err)
	}
	return nil
}

// Exec executes a single command line.
func (s *Session) Exec(ctx context.Context, line string) error {
	verb, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)
	args := strings.Fields(rest)

	switch strings.ToLower(verb) {
	case "help":
		return s.help()
	case "menu":
		return s.menu()
	case "staff":
		return s.staff()
	case "tables":
		return s.tables()
	case "order":
		return s.order(args)
	case "add":
		return s.add(rest)
	case "drop":
		return s.drop(rest)
	case "show":
		return s.show()
	case "submit":
		return s.submit()
	case "queue":
		return s.queue()
	case "complete":
		return s.complete(ctx, args)
	case "next":
		return s.next(ctx)
	case "cancel":
		return s.cancel(ctx, args)
	case "status":
		return s.status(args)
	case "table":
		return s.table(args)
	case "clear":
		return s.clear()
	case "sales":
		return s.report(ctx)
	default:
		return fmt.Errorf("%w %q", ErrUnknownCommand, verb)
	}
}

const helpText = `commands:
  menu                              list the menu
  staff                             list the roster
  tables                            list tables and their status
  order <table> <staff>             start a new order
  add <category> | <item> [| qty]   add an item to the open order
  drop <category> | <item>          remove an item from the open order
  show                              show the open order
  submit                            queue the open order
  queue                             list queued orders
  complete <id>                     complete a queued order
  next                              complete the oldest queued order
  cancel <id>                       cancel a queued order
  status <id> <STATUS>              advance a queued order
  table <n> <STATUS>                set a table status
  clear                             discard every queued order
  sales                             sales for the shift
`

func (s *Session) help() error {
	s.printf("%s", helpText)
	return nil
}

func (s *Session) menu() error {
	for _, cat := range s.floor.Catalog().Categories() {
		s.printf("%s\n", cat.Name())
		for _, item := range cat.Items() {
			if item.Description() == "" {
				s.printf("  %s | %s\n", item.Name(), money(item.Price()))
				continue
			}
			s.printf("  %s | %s | %s\n", item.Name(), money(item.Price()), item.Description())
		}
	}
	return nil
}

func (s *Session) staff() error {
	staff := s.floor.Roster().Staff()
	if len(staff) == 0 {
		s.printf("no staff on roster\n")
		return nil
	}
	for _, ws := range staff {
		s.printf("%s (%s)\n", ws.Name, ws.ID)
	}
	return nil
}

func (s *Session) tables() error {
	for _, t := range s.floor.Tables() {
		s.printf("%s\n", t.String())
	}
	return nil
}

func (s *Session) order(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: order <table> <staff>", ErrUsage)
	}
	table, err := parseInt("table", args[0])
	if err != nil {
		return err
	}
	o, err := s.floor.NewOrder(table, args[1])
	if err != nil {
		return err
	}
	if s.draft != nil {
		s.log.Info("draft order abandoned", zap.Int64("order_id", int64(s.draft.ID())))
	}
	s.draft = o
	s.printf("order %d for table %d by %s\n", o.ID(), o.TableNumber(), o.WaitStaffID())
	return nil
}

func (s *Session) add(rest string) error {
	if s.draft == nil {
		return ErrNoDraft
	}
	parts := splitPipes(rest)
	if len(parts) < 2 || len(parts) > 3 {
		return fmt.Errorf("%w: add <category> | <item> [| qty]", ErrUsage)
	}
	qty := 1
	if len(parts) == 3 {
		n, err := parseInt("quantity", parts[2])
		if err != nil {
			return err
		}
		qty = n
	}
	mi, err := s.floor.AddItem(s.draft, parts[0], parts[1], qty)
	if err != nil {
		return err
	}
	line, _ := s.draft.Line(mi)
	s.printf("%s | total %s\n", formatLine(line), money(s.draft.TotalPrice()))
	return nil
}

func (s *Session) drop(rest string) error {
	if s.draft == nil {
		return ErrNoDraft
	}
	parts := splitPipes(rest)
	if len(parts) != 2 {
		return fmt.Errorf("%w: drop <category> | <item>", ErrUsage)
	}
	removed, err := s.floor.RemoveItem(s.draft, parts[0], parts[1])
	if err != nil {
		return err
	}
	if !removed {
		s.printf("%s is not on the order\n", parts[1])
		return nil
	}
	s.printf("dropped %s | total %s\n", parts[1], money(s.draft.TotalPrice()))
	return nil
}

func (s *Session) show() error {
	if s.draft == nil {
		return ErrNoDraft
	}
	o := s.draft
	s.printf("order %d | table %d | %s | %s\n", o.ID(), o.TableNumber(), o.WaitStaffID(), o.Status())
	for _, line := range o.Items() {
		s.printf("  %s\n", formatLine(line))
	}
	s.printf("total %s\n", money(o.TotalPrice()))
	return nil
}

func (s *Session) submit() error {
	if s.draft == nil {
		return ErrNoDraft
	}
	if err := s.floor.Submit(s.draft); err != nil {
		return err
	}
	o := s.draft
	s.draft = nil
	s.printf("submitted order %d, %s\n", o.ID(), s.tableState(o.TableNumber()))
	return nil
}

func (s *Session) queue() error {
	queued := s.floor.Queue()
	if len(queued) == 0 {
		s.printf("queue is empty\n")
		return nil
	}
	for _, o := range queued {
		s.printf("ID: %d | Tbl: %d | Staff: %s | Items: %d | Total: %s\n",
			o.ID(), o.TableNumber(), o.WaitStaffID(), o.Len(), money(o.TotalPrice()))
	}
	return nil
}

func (s *Session) complete(ctx context.Context, args []string) error {
	id, err := orderID(args, "complete <id>")
	if err != nil {
		return err
	}
	o, err := s.floor.Complete(ctx, id)
	if err != nil {
		return err
	}
	s.printf("completed order %d, %s\n", o.ID(), s.tableState(o.TableNumber()))
	return nil
}

func (s *Session) next(ctx context.Context) error {
	o, err := s.floor.CompleteNext(ctx)
	if err != nil {
		return err
	}
	s.printf("completed order %d, %s\n", o.ID(), s.tableState(o.TableNumber()))
	return nil
}

func (s *Session) cancel(ctx context.Context, args []string) error {
	id, err := orderID(args, "cancel <id>")
	if err != nil {
		return err
	}
	o, err := s.floor.Cancel(ctx, id)
	if err != nil {
		return err
	}
	s.printf("cancelled order %d, %s\n", o.ID(), s.tableState(o.TableNumber()))
	return nil
}

func (s *Session) status(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: status <id> <STATUS>", ErrUsage)
	}
	id, err := orderID(args[:1], "status <id> <STATUS>")
	if err != nil {
		return err
	}
	st, err := types.ParseOrderStatus(args[1])
	if err != nil {
		return err
	}
	if err := s.floor.SetOrderStatus(id, st); err != nil {
		return err
	}
	s.printf("order %d is %s\n", id, st)
	return nil
}

func (s *Session) table(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: table <n> <STATUS>", ErrUsage)
	}
	n, err := parseInt("table", args[0])
	if err != nil {
		return err
	}
	st, err := types.ParseTableStatus(args[1])
	if err != nil {
		return err
	}
	if err := s.floor.SetTableStatus(n, st); err != nil {
		return err
	}
	t, _ := s.floor.Table(n)
	s.printf("%s\n", t.String())
	return nil
}

func (s *Session) clear() error {
	dropped := s.floor.ClearQueue()
	s.printf("cleared %d orders\n", len(dropped))
	return nil
}

func (s *Session) report(ctx context.Context) error {
	if s.sales == nil {
		return ErrLedgerDisabled
	}
	byStaff, err := s.sales.SalesByStaff(ctx)
	if err != nil {
		return err
	}
	byCategory, err := s.sales.SalesByCategory(ctx)
	if err != nil {
		return err
	}
	s.printf("by staff\n")
	s.printSales(byStaff)
	s.printf("by category\n")
	s.printSales(byCategory)
	return nil
}

func (s *Session) printSales(rows []ledger.Sales) {
	if len(rows) == 0 {
		s.printf("  none\n")
		return
	}
	for _, r := range rows {
		s.printf("  %s | %s | %s | %s\n", r.Key, plural(r.Orders, "order"), plural(r.Items, "item"), money(r.Total))
	}
}

func (s *Session) tableState(n int) string {
	t, ok := s.floor.Table(n)
	if !ok {
		return fmt.Sprintf("table %d unknown", n)
	}
	return fmt.Sprintf("table %d %s", n, t.Status())
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func formatLine(line types.OrderItem) string {
	return fmt.Sprintf("%s x %d (%s)", line.MenuItem().Name(), line.Quantity(), money(line.TotalPrice()))
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func splitPipes(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func parseInt(what, arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a number", types.ErrInvalidArgument, what, arg)
	}
	return n, nil
}

func orderID(args []string, usage string) (types.OrderID, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%w: %s", ErrUsage, usage)
	}
	n, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: order id %q is not a number", types.ErrInvalidArgument, args[0])
	}
	return types.OrderID(n), nil
}
