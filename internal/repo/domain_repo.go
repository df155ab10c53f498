// Package repo – domain lookups.
//
// All functions are context-aware free functions over a *gorm.DB handle,
// following the thin-repository approach: no business logic, only query
// composition. Soft deletion in the legacy schema is a plain integer column
// (deleted != 1), not a GORM DeletedAt, so every query filters it explicitly.
//
// Error semantics: a missing row returns gorm.ErrRecordNotFound (exported
// here as ErrNotFound); other DB errors propagate raw.
package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/frlmedia/seofeed/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// GetDomainByName fetches an active domain by its hostname.
func GetDomainByName(ctx context.Context, db *gorm.DB, name string) (*domain.Domain, error) {
	var d domain.Domain
	err := db.WithContext(ctx).
		Where("domain_name = ? AND deleted != 1", name).
		First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// GetService fetches a service tier row by id, or nil when the domain has no
// service assigned (id 0).
func GetService(ctx context.Context, db *gorm.DB, id int) (*domain.Service, error) {
	if id == 0 {
		return nil, nil
	}
	var s domain.Service
	err := db.WithContext(ctx).
		Where("id = ? AND deleted != 1", id).
		First(&s).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// DomainKeywords splits the domain's comma-separated keyword list, dropping
// blanks and the legacy "one way links" placeholder entry.
func DomainKeywords(d *domain.Domain) []string {
	var out []string
	for _, k := range strings.Split(d.Keywords, ",") {
		k = strings.TrimSpace(k)
		if k == "" || k == "one way links" {
			continue
		}
		out = append(out, k)
	}
	return out
}

// UpdatePluginHandshake persists the negotiation fields a plugin reports
// about itself: whether it is the WordPress variant, its spydermap support,
// and its script version.
func UpdatePluginHandshake(ctx context.Context, db *gorm.DB, domainID int, wpPlugin, spydermap int, scriptVersion string) error {
	res := db.WithContext(ctx).
		Model(&domain.Domain{}).
		Where("id = ?", domainID).
		Updates(map[string]any{
			"wp_plugin":      wpPlugin,
			"spydermap":      spydermap,
			"script_version": scriptVersion,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
