package referencedata

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Date is a calendar day without a time-of-day component, wired to the
// yyyy-MM-dd representation used by the reference data service.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

// UnmarshalJSON parses yyyy-MM-dd payloads, treating null and "" as zero.
func (d *Date) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		d.Time = time.Time{}
		return nil
	}
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return fmt.Errorf("parse date %q: %w", raw, err)
	}
	d.Time = parsed
	return nil
}

// MarshalJSON renders the date as yyyy-MM-dd, or null when zero.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

// Facility is the subset of the facility resource used in order exports.
type Facility struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

// Orderable is the subset of the orderable (product) resource used in order exports.
type Orderable struct {
	ID              uuid.UUID `json:"id"`
	ProductCode     string    `json:"productCode"`
	FullProductName string    `json:"fullProductName"`
	NetContent      int64     `json:"netContent"`
}

// ProcessingPeriod is the subset of the processing period resource used in order exports.
type ProcessingPeriod struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartDate   Date      `json:"startDate"`
	EndDate     Date      `json:"endDate"`
}
