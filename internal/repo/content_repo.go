// Package repo – content item, drip, and link-placement queries.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/frlmedia/seofeed/internal/domain"
)

// GetContentItem fetches an active content item by id, scoped to a domain.
func GetContentItem(ctx context.Context, db *gorm.DB, domainID, id int) (*domain.ContentItem, error) {
	var c domain.ContentItem
	err := db.WithContext(ctx).
		Where("id = ? AND domainid = ? AND deleted != 1", id, domainID).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// FirstContentItem returns the domain's first content item ordered by title.
// Used as the safe fallback when a request carries an unusable page id.
func FirstContentItem(ctx context.Context, db *gorm.DB, domainID int) (*domain.ContentItem, error) {
	var c domain.ContentItem
	err := db.WithContext(ctx).
		Where("domainid = ? AND deleted != 1", domainID).
		Order("restitle").
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ContentRef is the id/title projection used for slug resolution.
type ContentRef struct {
	ID       int
	ResTitle string
}

// ListContentRefs returns id and title for every active content item of a
// domain, ordered by title. Callers derive slugs from the titles to match
// pretty-URL requests that carry no page id.
func ListContentRefs(ctx context.Context, db *gorm.DB, domainID int) ([]ContentRef, error) {
	var out []ContentRef
	err := db.WithContext(ctx).
		Model(&domain.ContentItem{}).
		Select("id, restitle AS res_title").
		Where("domainid = ? AND deleted != 1", domainID).
		Order("restitle").
		Scan(&out).Error
	return out, err
}

// GetSupportContent fetches the support variant for a content item, if any.
func GetSupportContent(ctx context.Context, db *gorm.DB, domainID, contentID int) (*domain.SupportContent, error) {
	var s domain.SupportContent
	err := db.WithContext(ctx).
		Where("contentid = ? AND domainid = ? AND deleted != 1", contentID, domainID).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetCategory fetches the category attached to a content item, or nil.
func GetCategory(ctx context.Context, db *gorm.DB, categoryID int) (*domain.Category, error) {
	if categoryID == 0 {
		return nil, nil
	}
	var c domain.Category
	err := db.WithContext(ctx).
		Where("id = ? AND deleted != '1'", categoryID).
		First(&c).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// SiloPage is a content item row joined with its category and the number of
// link placements advertised on it. It backs footer navigation and the WP
// page-listing feed.
type SiloPage struct {
	ID           int    `json:"id"`
	ResTitle     string `json:"restitle"`
	LinkoutURL   string `json:"linkouturl"`
	ResFullText  string `json:"resfulltext"`
	ResShortText string `json:"resshorttext"`
	NoContent    int    `json:"NoContent"`
	Category     string `json:"category"`
	LinksPerPage int64  `json:"links_per_page"`
}

// ListSiloPages returns every active content page of a domain ordered by
// title, each carrying its category name and advertised-link count.
func ListSiloPages(ctx context.Context, db *gorm.DB, domainID int) ([]SiloPage, error) {
	var out []SiloPage
	err := db.WithContext(ctx).
		Model(&domain.ContentItem{}).
		Select(`bwp_bubblefeed.id, bwp_bubblefeed.restitle AS res_title, bwp_bubblefeed.linkouturl AS linkout_url,
			bwp_bubblefeed.resfulltext AS res_full_text, bwp_bubblefeed.resshorttext AS res_short_text,
			bwp_bubblefeed."NoContent" AS no_content,
			c.category,
			(SELECT COUNT(*) FROM bwp_link_placement p WHERE p.showonpgid = bwp_bubblefeed.id AND p.deleted != 1) AS links_per_page`).
		Joins(`LEFT JOIN bwp_bubblefeedcategory c ON c.id = bwp_bubblefeed.categoryid AND c.deleted != '1'`).
		Where("bwp_bubblefeed.domainid = ? AND bwp_bubblefeed.deleted != 1", domainID).
		Order("bwp_bubblefeed.restitle").
		Scan(&out).Error
	return out, err
}

// ListPlacements returns the content items advertised on the given page via
// link-exchange placements, joined with their owning domains.
type PlacementLink struct {
	ContentID  int    `json:"contentid"`
	ResTitle   string `json:"restitle"`
	DomainID   int    `json:"domainid"`
	DomainName string `json:"domain_name"`
	IsHTTPS    int    `json:"ishttps"`
	UseWWW     int    `json:"usewww"`
}

// ListPlacements fetches the cross-domain links to render on a business
// collective page.
func ListPlacements(ctx context.Context, db *gorm.DB, showOnPageID int) ([]PlacementLink, error) {
	var out []PlacementLink
	err := db.WithContext(ctx).
		Model(&domain.LinkPlacement{}).
		Select(`b.id AS content_id, b.restitle AS res_title, d.id AS domain_id, d.domain_name, d.ishttps AS is_https, d.usewww AS use_www`).
		Joins(`JOIN bwp_bubblefeed b ON b.id = bwp_link_placement.contentid AND b.deleted != 1`).
		Joins(`JOIN bwp_domains d ON d.id = b.domainid AND d.deleted != 1`).
		Where("bwp_link_placement.showonpgid = ? AND bwp_link_placement.deleted != 1", showOnPageID).
		Order("b.restitle").
		Scan(&out).Error
	return out, err
}

// ListDripPosts returns released drip posts for a content item, newest first.
func ListDripPosts(ctx context.Context, db *gorm.DB, domainID, contentID int, now time.Time, limit int) ([]domain.DripContent, error) {
	if limit <= 0 {
		limit = 10
	}
	var out []domain.DripContent
	err := db.WithContext(ctx).
		Where("domainid = ? AND contentid = ? AND deleted != 1 AND releasedate <= ?", domainID, contentID, now).
		Order("releasedate DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// FeedStats returns aggregate metadata for a domain's content pages: the row
// count and the greatest UpdatedAt. The HTTP layer uses it to build weak
// ETags for the WP page-listing feed.
func FeedStats(ctx context.Context, db *gorm.DB, domainID int) (count int64, maxUpdatedAt *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.ContentItem{}).Where("domainid = ? AND deleted != 1", domainID)

	// Count
	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest updated_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		UpdatedAt time.Time
	}
	if err = q.Select("updated_at").Order("updated_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.UpdatedAt, nil
}
