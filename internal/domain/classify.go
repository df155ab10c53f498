// Package domain – request-scoped classifications.
//
// The legacy code re-derived plugin mode and service tier from raw flags at
// every call site. Here both are resolved exactly once per request into typed
// enumerations and passed down.
package domain

import (
	"strconv"
	"strings"
)

// PluginMode says which plugin convention a domain follows. It determines URL
// shapes and whether the host CMS supplies its own header/footer.
type PluginMode int

const (
	// ModeLegacyPHP serves full HTML documents with Action/PageID URLs.
	ModeLegacyPHP PluginMode = iota
	// ModeWordPress serves bare content or JSON feeds; the WordPress host
	// wraps them, and URLs use pretty /{slug}-{id}/ paths.
	ModeWordPress
	// ModeWindows marks the old Windows-hosted variant, which keeps legacy
	// URLs regardless of script version.
	ModeWindows
)

// String implements fmt.Stringer for logging.
func (m PluginMode) String() string {
	switch m {
	case ModeWordPress:
		return "wordpress"
	case ModeWindows:
		return "windows"
	default:
		return "legacy-php"
	}
}

// ResolvePluginMode classifies a domain from its negotiation flags.
func ResolvePluginMode(d *Domain) PluginMode {
	switch {
	case d.IsWin == 1:
		return ModeWindows
	case d.WpPlugin == 1:
		return ModeWordPress
	default:
		return ModeLegacyPHP
	}
}

// ScriptVersionAtLeast reports whether the domain's negotiated script version
// string reaches min. Versions are "major" or "major.minor"; anything
// unparseable counts as 0.
func (d *Domain) ScriptVersionAtLeast(min float64) bool {
	return parseScriptVersion(d.ScriptVersion) >= min
}

func parseScriptVersion(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		s = parts[0] + "." + parts[1]
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// ServiceTier is the typed form of the legacy service-type code strings.
type ServiceTier int

const (
	// TierStandard covers every service without a special code.
	TierStandard ServiceTier = iota
	// TierSEOM marks "SEOM n" services.
	TierSEOM
	// TierBRON marks "BRON n" services, which unlock outbound resource links
	// even for NoContent pages.
	TierBRON
)

// String implements fmt.Stringer for logging.
func (t ServiceTier) String() string {
	switch t {
	case TierSEOM:
		return "seom"
	case TierBRON:
		return "bron"
	default:
		return "standard"
	}
}

// ClassifyServiceTier maps a service-type code string to its tier. The BRON
// check mirrors the legacy SQL pattern: "BRON %" but never "SEOM 5".
func ClassifyServiceTier(serviceType string) ServiceTier {
	st := strings.TrimSpace(serviceType)
	switch {
	case st == "SEOM 5":
		return TierSEOM
	case strings.HasPrefix(st, "BRON "):
		return TierBRON
	case strings.HasPrefix(st, "SEOM"):
		return TierSEOM
	default:
		return TierStandard
	}
}
