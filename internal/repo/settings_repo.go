// Package repo – domain settings.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/frlmedia/seofeed/internal/domain"
)

// GetSettings fetches the settings row for a domain. With duplicate rows it
// returns the lowest id.
func GetSettings(ctx context.Context, db *gorm.DB, domainID int) (*domain.DomainSettings, error) {
	var s domain.DomainSettings
	err := db.WithContext(ctx).
		Where("domainid = ?", domainID).
		Order("id").
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetOrCreateSettings returns a domain's settings row, inserting a default
// one first if none exists. This read-repair is the only create operation the
// feed path performs.
//
// Two concurrent first requests can both insert a row; the legacy schema has
// no unique constraint on domainid and the legacy code never guarded against
// it, so neither do we.
func GetOrCreateSettings(ctx context.Context, db *gorm.DB, domainID int) (*domain.DomainSettings, error) {
	s, err := GetSettings(ctx, db, domainID)
	if err == nil {
		return s, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	if err := db.WithContext(ctx).Create(&domain.DomainSettings{DomainID: domainID}).Error; err != nil {
		return nil, err
	}
	return GetSettings(ctx, db, domainID)
}
