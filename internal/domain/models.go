// Package domain defines the persistence models for tenant domains, content
// items, templates, and related records. These types are mapped with GORM
// onto the legacy schema (table names keep the historical bwp_ prefix) and
// form the core data layer of the feed backend.
//
// The schema is owned by an external admin system; this service mostly reads.
// The exceptions are the lazily created domain settings row and the plugin
// handshake fields on Domain (WpPlugin, Spydermap, ScriptVersion).
package domain

import "time"

// Domain is a tenant site. A row is created by the admin system; this service
// reads it on every request to resolve scheme, URL conventions, service tier,
// and the contact fields rendered into footers and meta headers.
type Domain struct {
	ID         int    `json:"id"          gorm:"primaryKey"`
	DomainName string `json:"domain_name" gorm:"type:varchar(255);not null;index:idx_domain_name"`
	Status     int    `json:"status"      gorm:"not null;default:0"`
	Deleted    int    `json:"-"           gorm:"not null;default:0"`

	// URL construction flags.
	IsHTTPS   int    `json:"ishttps"    gorm:"column:ishttps;not null;default:0"`
	UseWWW    int    `json:"usewww"     gorm:"column:usewww;not null;default:0"`
	UsePURL   int    `json:"usepurl"    gorm:"column:usepurl;not null;default:1"`
	DomainURL string `json:"domain_url" gorm:"type:varchar(255)"`

	// Plugin negotiation fields, updated during handshake requests.
	WpPlugin      int    `json:"wp_plugin"      gorm:"column:wp_plugin;not null;default:0"`
	IsWin         int    `json:"iswin"          gorm:"column:iswin;not null;default:0"`
	Spydermap     int    `json:"spydermap"      gorm:"not null;default:0"`
	ScriptVersion string `json:"script_version" gorm:"column:script_version;type:varchar(16)"`

	ServiceType  int    `json:"servicetype"   gorm:"column:servicetype;index"`
	UserID       int    `json:"userid"        gorm:"column:userid;index"`
	Keywords     string `json:"keywords"      gorm:"type:text"`
	TemplateFile string `json:"template_file" gorm:"type:varchar(255)"`

	// Feature flags.
	ResourcesActive string `json:"resourcesactive" gorm:"column:resourcesactive;type:varchar(8);default:'0'"`
	LinkExchange    int    `json:"linkexchange"    gorm:"column:linkexchange;not null;default:0"`
	DripContent     int    `json:"dripcontent"     gorm:"column:dripcontent;not null;default:0"`
	ShowSnapshot    int    `json:"showsnapshot"    gorm:"column:showsnapshot;not null;default:0"`
	ShowMap         int    `json:"showmap"         gorm:"column:showmap;not null;default:0"`

	// Business contact and social fields (wr_ prefix in the legacy schema).
	WrName       string `json:"wr_name"       gorm:"column:wr_name;type:varchar(255)"`
	WrAddress    string `json:"wr_address"    gorm:"column:wr_address;type:varchar(255)"`
	WrPhone      string `json:"wr_phone"      gorm:"column:wr_phone;type:varchar(64)"`
	WrVideo      string `json:"wr_video"      gorm:"column:wr_video;type:varchar(255)"`
	WrFacebook   string `json:"wr_facebook"   gorm:"column:wr_facebook;type:varchar(255)"`
	WrGooglePlus string `json:"wr_googleplus" gorm:"column:wr_googleplus;type:varchar(255)"`
	WrTwitter    string `json:"wr_twitter"    gorm:"column:wr_twitter;type:varchar(255)"`
	WrYelp       string `json:"wr_yelp"       gorm:"column:wr_yelp;type:varchar(255)"`
	WrBing       string `json:"wr_bing"       gorm:"column:wr_bing;type:varchar(255)"`

	WriterLock int    `json:"writerlock" gorm:"column:writerlock;not null;default:0"`
	DomainIP   string `json:"domainip"   gorm:"column:domainip;type:varchar(64)"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for Domain.
func (Domain) TableName() string { return "bwp_domains" }

// DomainSettings is the 1:1 styling/configuration companion of a Domain.
// Rows are created lazily the first time a domain is served without one
// (read-repair), which is the only create this service performs.
type DomainSettings struct {
	ID       int `json:"id"       gorm:"primaryKey"`
	DomainID int `json:"domainid" gorm:"column:domainid;not null;index:idx_settings_domain"`

	UsedURL int    `json:"usedurl" gorm:"column:usedurl;not null;default:0"`
	BlogURL string `json:"blogUrl" gorm:"column:blogUrl;type:varchar(255)"`
	FaqURL  string `json:"faqUrl"  gorm:"column:faqUrl;type:varchar(255)"`

	UmamiID  string `json:"umami_id"  gorm:"column:umami_id;type:varchar(64)"`
	GmbFrame string `json:"gmb_frame" gorm:"column:gmb_frame;type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for DomainSettings.
func (DomainSettings) TableName() string { return "bwp_domain_settings" }

// ContentItem is a keyword-centric content page (historically "bubblefeed").
// It is the unit the page assembler resolves and renders.
type ContentItem struct {
	ID         int `json:"id"         gorm:"primaryKey"`
	DomainID   int `json:"domainid"   gorm:"column:domainid;not null;index:idx_content_domain"`
	CategoryID int `json:"categoryid" gorm:"column:categoryid;index"`
	Deleted    int `json:"-"          gorm:"not null;default:0"`

	ResTitle     string `json:"restitle"     gorm:"column:restitle;type:varchar(255);not null"`
	ResFullText  string `json:"resfulltext"  gorm:"column:resfulltext;type:text"`
	ResShortText string `json:"resshorttext" gorm:"column:resshorttext;type:text"`
	LinkoutURL   string `json:"linkouturl"   gorm:"column:linkouturl;type:varchar(512)"`
	NoContent    int    `json:"NoContent"    gorm:"column:NoContent;not null;default:0"`

	MetaTitle       string `json:"metatitle"       gorm:"column:metatitle;type:varchar(255)"`
	MetaDescription string `json:"metadescription" gorm:"column:metadescription;type:text"`
	MetaKeywords    string `json:"metakeywords"    gorm:"column:metakeywords;type:text"`

	VideoURL string `json:"videourl" gorm:"column:videourl;type:varchar(512)"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for ContentItem.
func (ContentItem) TableName() string { return "bwp_bubblefeed" }

// SupportContent is the "support" variant of a content item, served instead
// of the bubblefeed row for certain service tiers.
type SupportContent struct {
	ID          int       `json:"id"          gorm:"primaryKey"`
	ContentID   int       `json:"contentid"   gorm:"column:contentid;not null;index"`
	DomainID    int       `json:"domainid"    gorm:"column:domainid;not null;index"`
	Deleted     int       `json:"-"           gorm:"not null;default:0"`
	ResTitle    string    `json:"restitle"    gorm:"column:restitle;type:varchar(255)"`
	ResFullText string    `json:"resfulltext" gorm:"column:resfulltext;type:text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the database table name for SupportContent.
func (SupportContent) TableName() string { return "bwp_bubblefeedsupport" }

// DripContent is a time-released post attached to a content item, used for
// "recent posts" sections (dc pages).
type DripContent struct {
	ID          int       `json:"id"          gorm:"primaryKey"`
	ContentID   int       `json:"contentid"   gorm:"column:contentid;not null;index:idx_drip_content"`
	DomainID    int       `json:"domainid"    gorm:"column:domainid;not null;index"`
	Deleted     int       `json:"-"           gorm:"not null;default:0"`
	Title       string    `json:"title"       gorm:"type:varchar(255)"`
	Body        string    `json:"body"        gorm:"type:text"`
	ReleaseDate time.Time `json:"releasedate" gorm:"column:releasedate;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the database table name for DripContent.
func (DripContent) TableName() string { return "bwp_bubbafeed" }

// Category groups content items; it mainly affects canonical URL construction.
type Category struct {
	ID           int    `json:"id"           gorm:"primaryKey"`
	BubblefeedID int    `json:"bubblefeedid" gorm:"column:bubblefeedid;index"`
	Category     string `json:"category"     gorm:"type:varchar(255)"`
	Deleted      string `json:"-"            gorm:"type:varchar(4);default:'0'"`
}

// TableName returns the database table name for Category.
func (Category) TableName() string { return "bwp_bubblefeedcategory" }

// FeedTemplate holds a header/footer HTML pair plus the style fields used to
// build inline CSS. Template id 2 is the global default every domain falls
// back to.
type FeedTemplate struct {
	ID       int    `json:"id"       gorm:"primaryKey"`
	DomainID int    `json:"domainid" gorm:"column:domainid;index"`
	Primary  int    `json:"primary"  gorm:"column:isprimary;not null;default:0"`
	Deleted  int    `json:"-"        gorm:"not null;default:0"`
	Header   string `json:"header"   gorm:"type:text"`
	Footer   string `json:"footer"   gorm:"type:text"`
	Doctype  string `json:"doctype"  gorm:"type:text"`

	TitleColor   string `json:"titlecolor"   gorm:"column:titlecolor;type:varchar(32)"`
	DateColor    string `json:"datecolor"    gorm:"column:datecolor;type:varchar(32)"`
	ContentColor string `json:"contentcolor" gorm:"column:contentcolor;type:varchar(32)"`
	FontFamily   string `json:"fontfamily"   gorm:"column:fontfamily;type:varchar(64)"`
	FontSize     string `json:"fontsize"     gorm:"column:fontsize;type:varchar(16)"`
	FontWeight   string `json:"fontweight"   gorm:"column:fontweight;type:varchar(16)"`
	LinkColor    string `json:"linkcolor"    gorm:"column:linkcolor;type:varchar(32)"`
}

// TableName returns the database table name for FeedTemplate.
func (FeedTemplate) TableName() string { return "bwp_feedstyle" }

// LinkPlacement is a cross-domain link-exchange record: which content item of
// one domain is advertised on another domain's business-collective page.
type LinkPlacement struct {
	ID         int       `json:"id"         gorm:"primaryKey"`
	ContentID  int       `json:"contentid"  gorm:"column:contentid;not null;index"`
	ShowOnPgID int       `json:"showonpgid" gorm:"column:showonpgid;not null;index:idx_placement_page"`
	Deleted    int       `json:"-"          gorm:"not null;default:0"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName returns the database table name for LinkPlacement.
func (LinkPlacement) TableName() string { return "bwp_link_placement" }

// Service is a purchasable service tier. The ServiceType string encodes the
// legacy tier codes ("SEOM 5", "BRON 10", ...) that gate keyword counts and
// URL-building rules.
type Service struct {
	ID          int     `json:"id"          gorm:"primaryKey"`
	ServiceType string  `json:"servicetype" gorm:"column:servicetype;type:varchar(64)"`
	Keywords    int     `json:"keywords"    gorm:"not null;default:0"`
	Price       float64 `json:"price"`
	Deleted     int     `json:"-"           gorm:"not null;default:0"`
}

// TableName returns the database table name for Service.
func (Service) TableName() string { return "bwp_services" }

// Register is an API account used by the WordPress plugin handshake
// (apiid/apikey pair).
type Register struct {
	ID      int    `json:"id"    gorm:"primaryKey"`
	Email   string `json:"email" gorm:"type:varchar(255)"`
	APIKey  string `json:"-"     gorm:"column:apikey;type:varchar(64);index"`
	Deleted int    `json:"-"     gorm:"not null;default:0"`
}

// TableName returns the database table name for Register.
func (Register) TableName() string { return "bwp_register" }
