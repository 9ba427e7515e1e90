package session

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/tableside/internal/floor"
	"github.com/mesh-intelligence/tableside/internal/ledger"
	"github.com/mesh-intelligence/tableside/internal/menu"
	"github.com/mesh-intelligence/tableside/internal/roster"
	"github.com/mesh-intelligence/tableside/internal/tables"
	"github.com/mesh-intelligence/tableside/pkg/types"
)

const testMenu = `
categories:
  - name: Beverages
    items:
      - name: Cola
        description: Standard cola soft drink
        price: "2.50"
      - name: Coffee
        price: "2.75"
  - name: Soups
    items:
      - name: Tomato Soup
        description: Classic creamy tomato soup
        price: "5.00"
`

func newGolden(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

// newSession builds a four-table floor with a two-person roster and a
// ledger.
func newSession(t *testing.T) (*Session, *bytes.Buffer) {
	t.Helper()
	ctx := context.Background()

	catalog, err := menu.Parse([]byte(testMenu))
	require.NoError(t, err)
	registry, err := tables.NewRegistry(4, 4)
	require.NoError(t, err)
	staff := roster.Parse(strings.NewReader("S1,Jane Doe\nS2,Bob Smith\n"), nil)
	l, err := ledger.Open(ctx, nil)
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })

	f, err := floor.New(catalog, registry,
		floor.WithRoster(staff),
		floor.WithRecorder(l),
		floor.WithClock(func() time.Time { return time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC) }),
	)
	require.NoError(t, err)

	var out bytes.Buffer
	s, err := New(f, &out, WithSales(l))
	require.NoError(t, err)
	return s, &out
}

func TestServiceTranscript(t *testing.T) {
	script, err := os.ReadFile(filepath.Join("testdata", "service.txt"))
	require.NoError(t, err)

	s, out := newSession(t)
	require.NoError(t, s.Run(context.Background(), bytes.NewReader(script)))

	newGolden(t).Assert(t, "service", out.Bytes())
}

func TestHelpTranscript(t *testing.T) {
	s, out := newSession(t)
	require.NoError(t, s.Run(context.Background(), strings.NewReader("help\n")))

	newGolden(t).Assert(t, "help", out.Bytes())
}

func TestExecErrors(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		wantErr error
	}{
		{"unknown command", "dance", ErrUnknownCommand},
		{"add without order", "add Beverages | Cola", ErrNoDraft},
		{"show without order", "show", ErrNoDraft},
		{"submit without order", "submit", ErrNoDraft},
		{"order usage", "order 1", ErrUsage},
		{"order table not a number", "order one S1", types.ErrInvalidArgument},
		{"complete usage", "complete", ErrUsage},
		{"complete id not a number", "complete x", types.ErrInvalidArgument},
		{"complete unknown", "complete 4", types.ErrOrderNotQueued},
		{"status unknown value", "status 1 COOKING", types.ErrInvalidStatus},
		{"table unknown value", "table 1 DIRTY", types.ErrInvalidStatus},
		{"table missing", "table 12 VACANT", types.ErrUnknownTable},
		{"next on empty queue", "next", floor.ErrQueueEmpty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newSession(t)
			err := s.Exec(context.Background(), tt.line)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDraftLifecycle(t *testing.T) {
	ctx := context.Background()
	s, _ := newSession(t)

	_, ok := s.Draft()
	assert.False(t, ok)

	require.NoError(t, s.Exec(ctx, "order 1 S1"))
	d, ok := s.Draft()
	require.True(t, ok)
	assert.Equal(t, types.OrderID(1), d.ID())

	require.NoError(t, s.Exec(ctx, "add Beverages | Cola | 4"))
	assert.Equal(t, "10.00", d.TotalPrice().StringFixed(2))

	err := s.Exec(ctx, "add Beverages | Cola | 1 | 2")
	assert.ErrorIs(t, err, ErrUsage)

	require.NoError(t, s.Exec(ctx, "SUBMIT"))
	_, ok = s.Draft()
	assert.False(t, ok)
}

func TestSalesWithoutLedger(t *testing.T) {
	catalog, err := menu.Default()
	require.NoError(t, err)
	registry, err := tables.NewRegistry(2, 4)
	require.NoError(t, err)
	f, err := floor.New(catalog, registry)
	require.NoError(t, err)

	var out bytes.Buffer
	s, err := New(f, &out)
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID())

	assert.ErrorIs(t, s.Exec(context.Background(), "sales"), ErrLedgerDisabled)
	require.NoError(t, s.Exec(context.Background(), "staff"))
	assert.Equal(t, "no staff on roster\n", out.String())
}

func TestClearCommand(t *testing.T) {
	ctx := context.Background()
	s, out := newSession(t)
	script := "order 1 S1\nadd Soups | Tomato Soup\nsubmit\norder 2 S2\nadd Beverages | Cola\nsubmit\n"
	require.NoError(t, s.Run(ctx, strings.NewReader(script)))

	out.Reset()
	require.NoError(t, s.Exec(ctx, "clear"))
	assert.Equal(t, "cleared 2 orders\n", out.String())
	assert.Zero(t, s.floor.QueueLen())
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	s, out := newSession(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Run(ctx, strings.NewReader("menu\n"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String())
}
