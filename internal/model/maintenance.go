package model

import "github.com/autokuma-go/autokuma/internal/codec"

// MaintenanceStrategy mirrors kuma-client's maintenance strategy enum:
// the window can run once, on a recurring interval/cron schedule, or for
// the entire time the maintenance entry exists.
type MaintenanceStrategy string

const (
	MaintenanceStrategyManual            MaintenanceStrategy = "manual"
	MaintenanceStrategySingle            MaintenanceStrategy = "single"
	MaintenanceStrategyRecurringInterval MaintenanceStrategy = "recurring-interval"
	MaintenanceStrategyRecurringDay      MaintenanceStrategy = "recurring-day"
	MaintenanceStrategyRecurringWeek     MaintenanceStrategy = "recurring-week"
	MaintenanceStrategyRecurringMonth    MaintenanceStrategy = "recurring-month"
	MaintenanceStrategyCron              MaintenanceStrategy = "cron"
)

// Maintenance is a scheduled window during which the attached monitors'
// down events are suppressed.
type Maintenance struct {
	ID         *int64              `json:"id,omitempty"`
	Title      string              `json:"title"`
	Active     codec.Bool          `json:"active"`
	Strategy   MaintenanceStrategy `json:"strategy"`
	MonitorIDs []int64             `json:"-"`
	DateRange  []string            `json:"dateRange,omitempty"`
	Cron       *string             `json:"cron,omitempty"`
	Timezone   *string             `json:"timezone,omitempty"`
	Duration   *int64              `json:"durationMinutes,omitempty"`
	Weekdays   []int               `json:"weekdays,omitempty"`
	DaysOfMonth []int              `json:"daysOfMonth,omitempty"`
}

func (m *Maintenance) Equal(other *Maintenance) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m.Title != other.Title || m.Active != other.Active || m.Strategy != other.Strategy {
		return false
	}
	return deepEqualJSON(m, other)
}
