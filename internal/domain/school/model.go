package school

import (
	"context"
	"time"
)

// Directory is the list of schools of one city.
type Directory struct {
	Province    string    `bson:"province" json:"province"`
	City        string    `bson:"city" json:"city"`
	SchoolNames []string  `bson:"schoolNames" json:"schoolNames"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Repository stores school directories keyed by (province, city).
type Repository interface {
	// Add merges names into the city's list with set-union semantics. Names
	// already present are skipped and first-insertion order is kept.
	Add(ctx context.Context, province, city string, names []string) error
	// Get returns an empty list for unknown cities.
	Get(ctx context.Context, province, city string) ([]string, error)
}
