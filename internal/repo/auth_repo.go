// Package repo – API credential checks for the plugin feed endpoints.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/frlmedia/seofeed/internal/domain"
)

// ValidateAPICredentials checks an apiid/apikey pair against the register
// table and returns the account id when valid, 0 otherwise. A missing row is
// not an error; only real DB failures propagate.
func ValidateAPICredentials(ctx context.Context, db *gorm.DB, apiID, apiKey string) (int, error) {
	var r domain.Register
	err := db.WithContext(ctx).
		Where("id = ? AND apikey = ? AND deleted != 1", apiID, apiKey).
		First(&r).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, nil
		}
		return 0, err
	}
	return r.ID, nil
}
