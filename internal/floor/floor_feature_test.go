package floor

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	"github.com/mesh-intelligence/tableside/internal/menu"
	"github.com/mesh-intelligence/tableside/internal/tables"
	"github.com/mesh-intelligence/tableside/pkg/types"
)

type scenarioKey struct{}

// scenarioState holds the floor and the order under construction for one
// scenario.
type scenarioState struct {
	floor  *Floor
	order  *types.Order
	result error
}

func state(ctx context.Context) *scenarioState {
	return ctx.Value(scenarioKey{}).(*scenarioState)
}

func aFloorOfTablesUsingPolicy(ctx context.Context, count int, policy string) error {
	catalog, err := menu.Default()
	if err != nil {
		return err
	}
	registry, err := tables.NewRegistry(count, 4)
	if err != nil {
		return err
	}
	f, err := New(catalog, registry, WithPolicy(policy))
	if err != nil {
		return err
	}
	s := state(ctx)
	s.floor, s.order, s.result = f, nil, nil
	return nil
}

func aNewOrderForTableBy(ctx context.Context, table int, staff string) error {
	s := state(ctx)
	o, err := s.floor.NewOrder(table, staff)
	if err != nil {
		return err
	}
	s.order = o
	return nil
}

func aSubmittedOrderForTableBy(ctx context.Context, table int, staff string) error {
	if err := aNewOrderForTableBy(ctx, table, staff); err != nil {
		return err
	}
	s := state(ctx)
	if _, err := s.floor.AddItem(s.order, "Beverages", "Cola", 1); err != nil {
		return err
	}
	return s.floor.Submit(s.order)
}

func tableIsSetTo(ctx context.Context, table int, status string) error {
	st, err := types.ParseTableStatus(status)
	if err != nil {
		return err
	}
	return state(ctx).floor.SetTableStatus(table, st)
}

func iAddFrom(ctx context.Context, qty int, item, category string) error {
	s := state(ctx)
	_, err := s.floor.AddItem(s.order, category, item, qty)
	return err
}

func iSubmitTheOrder(ctx context.Context) error {
	s := state(ctx)
	s.result = s.floor.Submit(s.order)
	return nil
}

func iCompleteTheOrder(ctx context.Context) error {
	s := state(ctx)
	_, err := s.floor.Complete(ctx, s.order.ID())
	return err
}

func iCompleteOrder(ctx context.Context, id int64) error {
	_, err := state(ctx).floor.Complete(ctx, types.OrderID(id))
	return err
}

func theSubmissionSucceeds(ctx context.Context) error {
	return state(ctx).result
}

func theSubmissionFailsWith(ctx context.Context, msg string) error {
	err := state(ctx).result
	if err == nil {
		return errors.New("expected submission to fail, it succeeded")
	}
	if !errors.Is(err, types.ErrInvalidArgument) {
		return fmt.Errorf("expected an invalid argument error, got %v", err)
	}
	if !strings.Contains(err.Error(), msg) {
		return fmt.Errorf("expected error containing %q, got %q", msg, err.Error())
	}
	return nil
}

func tableIs(ctx context.Context, table int, status string) error {
	tbl, ok := state(ctx).floor.Table(table)
	if !ok {
		return fmt.Errorf("table %d does not exist", table)
	}
	if string(tbl.Status()) != status {
		return fmt.Errorf("table %d is %s, expected %s", table, tbl.Status(), status)
	}
	return nil
}

func theQueueHoldsOrders(ctx context.Context, n int) error {
	if got := state(ctx).floor.QueueLen(); got != n {
		return fmt.Errorf("queue holds %d orders, expected %d", got, n)
	}
	return nil
}

func theQueueHoldsOrderIDs(ctx context.Context, list string) error {
	var want []types.OrderID
	for _, part := range strings.Split(list, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return err
		}
		want = append(want, types.OrderID(id))
	}
	queued := state(ctx).floor.Queue()
	if len(queued) != len(want) {
		return fmt.Errorf("queue holds %d orders, expected %d", len(queued), len(want))
	}
	for i, o := range queued {
		if o.ID() != want[i] {
			return fmt.Errorf("queue position %d holds order %d, expected %d", i, o.ID(), want[i])
		}
	}
	return nil
}

func theOrderHasLines(ctx context.Context, n int) error {
	if got := state(ctx).order.Len(); got != n {
		return fmt.Errorf("order has %d lines, expected %d", got, n)
	}
	return nil
}

func theOrderTotalIs(ctx context.Context, total string) error {
	if got := state(ctx).order.TotalPrice().StringFixed(2); got != total {
		return fmt.Errorf("order total is %s, expected %s", got, total)
	}
	return nil
}

func theOrderIDIs(ctx context.Context, id int64) error {
	if got := state(ctx).order.ID(); got != types.OrderID(id) {
		return fmt.Errorf("order id is %d, expected %d", got, id)
	}
	return nil
}

func InitializeOccupancyScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return context.WithValue(ctx, scenarioKey{}, &scenarioState{}), nil
	})

	// Given steps
	ctx.Step(`^a floor of (\d+) tables using the "([^"]*)" policy$`, aFloorOfTablesUsingPolicy)
	ctx.Step(`^a new order for table (\d+) by "([^"]*)"$`, aNewOrderForTableBy)
	ctx.Step(`^a submitted order for table (\d+) by "([^"]*)"$`, aSubmittedOrderForTableBy)
	ctx.Step(`^table (\d+) is set to "([^"]*)"$`, tableIsSetTo)

	// When steps
	ctx.Step(`^I add (\d+) "([^"]*)" from "([^"]*)"$`, iAddFrom)
	ctx.Step(`^I submit the order$`, iSubmitTheOrder)
	ctx.Step(`^I complete the order$`, iCompleteTheOrder)
	ctx.Step(`^I complete order (\d+)$`, iCompleteOrder)

	// Then steps
	ctx.Step(`^the submission succeeds$`, theSubmissionSucceeds)
	ctx.Step(`^the submission fails with "([^"]*)"$`, theSubmissionFailsWith)
	ctx.Step(`^table (\d+) is "([^"]*)"$`, tableIs)
	ctx.Step(`^the queue holds (\d+) orders?$`, theQueueHoldsOrders)
	ctx.Step(`^the queue holds orders ([\d, ]+)$`, theQueueHoldsOrderIDs)
	ctx.Step(`^the order has (\d+) lines?$`, theOrderHasLines)
	ctx.Step(`^the order total is "([^"]*)"$`, theOrderTotalIs)
	ctx.Step(`^the order id is (\d+)$`, theOrderIDIs)
}

func TestOccupancyFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeOccupancyScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"testdata/features/occupancy.feature"},
			TestingT: t,
		},
	}
	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
