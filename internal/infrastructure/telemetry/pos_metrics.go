package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/metric"

	"github.com/kitchenpos/backend/internal/domain/shared/valueobject"
)

// POSMetrics records business counters for orders, table groups and menus.
type POSMetrics struct {
	orderPlaced        *Counter
	orderAmount        *Counter
	orderLines         *Counter
	orderStatusChanged *Counter
	groupFormed        *Counter
	groupDissolved     *Counter
	tablesReleased     *Counter
	menuCreated        *Counter
}

// NewPOSMetrics creates the POS business instruments on meter.
func NewPOSMetrics(meter metric.Meter) (*POSMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	specs := []struct {
		name, desc, unit string
	}{
		{"pos_order_placed_total", "Orders placed", "{order}"},
		{"pos_order_amount_total", "Sum of placed order amounts in minor currency units", "{minor_unit}"},
		{"pos_order_line_items_total", "Order line items placed", "{line}"},
		{"pos_order_status_changed_total", "Order status transitions by target status", "{transition}"},
		{"pos_table_group_formed_total", "Table groups formed", "{group}"},
		{"pos_table_group_dissolved_total", "Table groups dissolved", "{group}"},
		{"pos_table_released_total", "Tables released by dissolving a group", "{table}"},
		{"pos_menu_created_total", "Menus created", "{menu}"},
	}

	m := &POSMetrics{}
	targets := []**Counter{
		&m.orderPlaced, &m.orderAmount, &m.orderLines, &m.orderStatusChanged,
		&m.groupFormed, &m.groupDissolved, &m.tablesReleased, &m.menuCreated,
	}
	for i := range specs {
		c, err := NewCounter(meter, specs[i].name, specs[i].desc, specs[i].unit)
		if err != nil {
			return nil, &MetricsError{Op: "create " + specs[i].name, Err: err}
		}
		*targets[i] = c
	}
	return m, nil
}

// RecordOrderPlaced counts an order, its lines and its amount.
func (m *POSMetrics) RecordOrderPlaced(ctx context.Context, amount valueobject.Price, lineCount int) {
	m.orderPlaced.Inc(ctx)
	m.orderAmount.Add(ctx, amount.MinorUnits())
	m.orderLines.Add(ctx, int64(lineCount))
}

// RecordOrderStatusChanged counts a transition labelled with both ends.
func (m *POSMetrics) RecordOrderStatusChanged(ctx context.Context, from, to string) {
	m.orderStatusChanged.Inc(ctx, AttrOrderStatus.String(to), AttrFromStatus.String(from))
}

// RecordTableGroupFormed counts a new group.
func (m *POSMetrics) RecordTableGroupFormed(ctx context.Context, tableCount int) {
	m.groupFormed.Inc(ctx)
}

// RecordTableGroupDissolved counts an ungroup and the tables it released.
func (m *POSMetrics) RecordTableGroupDissolved(ctx context.Context, releasedCount int) {
	m.groupDissolved.Inc(ctx)
	m.tablesReleased.Add(ctx, int64(releasedCount))
}

// RecordMenuCreated counts a new menu.
func (m *POSMetrics) RecordMenuCreated(ctx context.Context) {
	m.menuCreated.Inc(ctx)
}

// ErrMeterNil is returned when a nil meter is passed to NewPOSMetrics.
var ErrMeterNil = &MetricsError{Op: "init", Msg: "meter cannot be nil"}

// MetricsError represents an error in metrics operations.
type MetricsError struct {
	Op  string
	Msg string
	Err error
}

func (e *MetricsError) Error() string {
	if e.Err != nil {
		return "metrics: " + e.Op + ": " + e.Err.Error()
	}
	return "metrics: " + e.Op + ": " + e.Msg
}

func (e *MetricsError) Unwrap() error { return e.Err }
