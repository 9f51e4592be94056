package stats

import (
	"maps"
	"time"
)

// Category names one benefit programme.
type Category string

const (
	TotalDonation    Category = "total_donation"
	VisuallyImpaired Category = "visually_impaired"
	MedicalStaff     Category = "medical_staff"
	FilialPiety      Category = "filial_piety"
	MatsuResident    Category = "matsu_resident"
	NewResident      Category = "new_resident"
	BeachCleanup     Category = "beach_cleanup"
	AllPass          Category = "allpass"
)

// Categories lists every known category in display order.
var Categories = []Category{
	TotalDonation,
	VisuallyImpaired,
	MedicalStaff,
	FilialPiety,
	MatsuResident,
	NewResident,
	BeachCleanup,
	AllPass,
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Stats is the persisted record.
type Stats struct {
	BenefitCategories map[Category]int64 `json:"benefit_categories"`
	LastUpdated       time.Time          `json:"last_updated"`
	Donation          int64              `json:"donation"`
}

// Snapshot is what readers receive: the record plus updatedAt, which
// mirrors last_updated for the browser scripts.
type Snapshot struct {
	Stats
	UpdatedAt time.Time `json:"updatedAt"`
}

// Seed returns the launch figures, stamped at.
func Seed(at time.Time) Stats {
	return Stats{
		Donation: 714649,
		BenefitCategories: map[Category]int64{
			TotalDonation:    714649,
			VisuallyImpaired: 488540,
			MedicalStaff:     133468,
			FilialPiety:      3155,
			MatsuResident:    1160,
			NewResident:      1674,
			BeachCleanup:     3780,
			AllPass:          78807,
		},
		LastUpdated: at.UTC(),
	}
}

// Clone returns a deep copy.
func (s Stats) Clone() Stats {
	s.BenefitCategories = maps.Clone(s.BenefitCategories)
	return s
}

// Snapshot wraps a copy of s for readers.
func (s Stats) Snapshot() Snapshot {
	return Snapshot{Stats: s.Clone(), UpdatedAt: s.LastUpdated}
}

// Count returns the value of c, zero when unset.
func (s Stats) Count(c Category) int64 {
	return s.BenefitCategories[c]
}
