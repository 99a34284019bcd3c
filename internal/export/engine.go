package export

import (
	"context"
	"io"
	"sort"

	"github.com/openlmis/fulfillment-backend/pkg/db/models"
)

// Engine renders an order through a file template into a delimited byte
// stream. Rendering is deterministic for unchanged inputs.
type Engine struct {
	resolver FieldResolver
	related  *RelatedResolver

	// includeZeroQuantity keeps line items with a zero ordered quantity in
	// the output. When false they are skipped and take no line number.
	includeZeroQuantity bool
}

// Option configures the engine.
type Option func(*Engine)

// WithIncludeZeroQuantity controls whether zero-quantity line items are rendered.
func WithIncludeZeroQuantity(include bool) Option {
	return func(e *Engine) {
		e.includeZeroQuantity = include
	}
}

// NewEngine builds an export engine around the reference data lookup.
func NewEngine(lookup Lookup, opts ...Option) *Engine {
	engine := &Engine{
		related:             NewRelatedResolver(lookup),
		includeZeroQuantity: true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(engine)
		}
	}
	return engine
}

// Export writes the order rendered through the template to w.
func (e *Engine) Export(ctx context.Context, order *models.Order, template *models.FileTemplate, w io.Writer) error {
	columns := includedColumns(template.Columns)
	writer := NewRecordWriter(w)

	if template.HeaderInFile {
		labels := make([]string, len(columns))
		for i, column := range columns {
			labels[i] = column.ColumnLabel
		}
		if err := writer.WriteRecord(labels); err != nil {
			return err
		}
	}

	lineNo := 0
	for i := range order.LineItems {
		lineItem := &order.LineItems[i]
		if !e.includeZeroQuantity && lineItem.OrderedQuantity == 0 {
			continue
		}
		lineNo++

		cells := make([]string, len(columns))
		for j, column := range columns {
			value, err := e.resolver.Resolve(column, order, lineItem, lineNo)
			if err != nil {
				return err
			}
			if column.Related != "" {
				value, err = e.related.Expand(ctx, value, column.Related, column.RelatedKeyPath)
				if err != nil {
					return err
				}
			}
			cells[j] = Format(value, column.Format)
		}
		if err := writer.WriteRecord(cells); err != nil {
			return err
		}
	}
	return nil
}

// includedColumns filters out excluded columns and orders the rest by
// ascending position. The template's stored slice is left untouched.
func includedColumns(columns []models.FileColumn) []models.FileColumn {
	included := make([]models.FileColumn, 0, len(columns))
	for _, column := range columns {
		if column.Include {
			included = append(included, column)
		}
	}
	sort.SliceStable(included, func(i, j int) bool {
		return included[i].Position < included[j].Position
	})
	return included
}
