// Package repo – feed template queries.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/frlmedia/seofeed/internal/domain"
)

// GlobalTemplateID is the id of the global default template every domain
// falls back to.
const GlobalTemplateID = 2

// GetPrimaryAltTemplate returns the domain's designated primary alternate
// template, or nil when none is flagged.
func GetPrimaryAltTemplate(ctx context.Context, db *gorm.DB, domainID int) (*domain.FeedTemplate, error) {
	var t domain.FeedTemplate
	err := db.WithContext(ctx).
		Where("domainid = ? AND isprimary = 1 AND deleted != 1", domainID).
		First(&t).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

// GetDomainTemplate returns the domain's own default template, or nil.
func GetDomainTemplate(ctx context.Context, db *gorm.DB, domainID int) (*domain.FeedTemplate, error) {
	var t domain.FeedTemplate
	err := db.WithContext(ctx).
		Where("domainid = ? AND isprimary != 1 AND deleted != 1", domainID).
		Order("id").
		First(&t).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

// GetGlobalTemplate returns the global default template (id 2), or nil when
// the row is absent (fresh databases); the resolver then falls back to its
// built-in default.
func GetGlobalTemplate(ctx context.Context, db *gorm.DB) (*domain.FeedTemplate, error) {
	var t domain.FeedTemplate
	err := db.WithContext(ctx).
		Where("id = ?", GlobalTemplateID).
		First(&t).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}
