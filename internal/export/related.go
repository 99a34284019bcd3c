package export

import (
	"context"

	"github.com/google/uuid"

	"github.com/openlmis/fulfillment-backend/internal/referencedata"
	"github.com/openlmis/fulfillment-backend/pkg/enums"
	pkgerrors "github.com/openlmis/fulfillment-backend/pkg/errors"
)

// Lookup fetches reference data entities by identifier. A missing entity
// is reported as nil, nil, not as an error.
type Lookup interface {
	Facility(ctx context.Context, id uuid.UUID) (*referencedata.Facility, error)
	Orderable(ctx context.Context, id uuid.UUID) (*referencedata.Orderable, error)
	ProcessingPeriod(ctx context.Context, id uuid.UUID) (*referencedata.ProcessingPeriod, error)
}

var facilityAccessors = map[string]func(*referencedata.Facility) any{
	"id":          func(f *referencedata.Facility) any { return f.ID },
	"code":        func(f *referencedata.Facility) any { return f.Code },
	"name":        func(f *referencedata.Facility) any { return f.Name },
	"description": func(f *referencedata.Facility) any { return f.Description },
}

var orderableAccessors = map[string]func(*referencedata.Orderable) any{
	"id":              func(o *referencedata.Orderable) any { return o.ID },
	"productCode":     func(o *referencedata.Orderable) any { return o.ProductCode },
	"fullProductName": func(o *referencedata.Orderable) any { return o.FullProductName },
	"netContent":      func(o *referencedata.Orderable) any { return o.NetContent },
}

var periodAccessors = map[string]func(*referencedata.ProcessingPeriod) any{
	"id":          func(p *referencedata.ProcessingPeriod) any { return p.ID },
	"name":        func(p *referencedata.ProcessingPeriod) any { return p.Name },
	"description": func(p *referencedata.ProcessingPeriod) any { return p.Description },
	"startDate":   func(p *referencedata.ProcessingPeriod) any { return p.StartDate.Time },
	"endDate":     func(p *referencedata.ProcessingPeriod) any { return p.EndDate.Time },
}

// RelatedResolver expands a resolved foreign identifier into a value from
// the referenced entity.
type RelatedResolver struct {
	lookup Lookup
}

// NewRelatedResolver builds the resolver around the given lookup collaborator.
func NewRelatedResolver(lookup Lookup) *RelatedResolver {
	return &RelatedResolver{lookup: lookup}
}

// Expand fetches the entity named by related and resolves relatedKeyPath
// against it. A nil raw value short-circuits to nil without a lookup, and an
// unrecognized related type resolves to nil rather than failing. A missing
// entity also yields nil. An unknown key path on a recognized type is a
// configuration error.
func (r *RelatedResolver) Expand(ctx context.Context, raw any, related enums.RelatedEntity, relatedKeyPath string) (any, error) {
	if raw == nil {
		return nil, nil
	}
	id, ok := raw.(uuid.UUID)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeConfiguration, "related column did not resolve to an identifier")
	}

	switch related {
	case enums.RelatedEntityFacility:
		accessor, ok := facilityAccessors[relatedKeyPath]
		if !ok {
			return nil, unknownPathError(related.String(), relatedKeyPath)
		}
		facility, err := r.lookup.Facility(ctx, id)
		if err != nil {
			return nil, err
		}
		if facility == nil {
			return nil, nil
		}
		return accessor(facility), nil
	case enums.RelatedEntityOrderable:
		accessor, ok := orderableAccessors[relatedKeyPath]
		if !ok {
			return nil, unknownPathError(related.String(), relatedKeyPath)
		}
		orderable, err := r.lookup.Orderable(ctx, id)
		if err != nil {
			return nil, err
		}
		if orderable == nil {
			return nil, nil
		}
		return accessor(orderable), nil
	case enums.RelatedEntityPeriod:
		accessor, ok := periodAccessors[relatedKeyPath]
		if !ok {
			return nil, unknownPathError(related.String(), relatedKeyPath)
		}
		period, err := r.lookup.ProcessingPeriod(ctx, id)
		if err != nil {
			return nil, err
		}
		if period == nil {
			return nil, nil
		}
		return accessor(period), nil
	default:
		return nil, nil
	}
}
