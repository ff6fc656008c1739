package propstore

import "strings"

// CriticalKeys must be present, non-empty and not "unknown" in an untampered
// build property area.
var CriticalKeys = []string{
	KeyBuildFingerprint,
	KeyBuildTags,
	KeyBuildType,
	KeyProductModel,
	KeyProductBrand,
	KeyBuildDisplayID,
	KeyBuildID,
	KeyVersionIncremental,
}

// PlaceholderValue is what spoofing tools commonly leave behind.
const PlaceholderValue = "unknown"

// TamperReason says why a critical key failed.
type TamperReason string

const (
	ReasonMissing     TamperReason = "missing"
	ReasonEmpty       TamperReason = "empty"
	ReasonPlaceholder TamperReason = "placeholder"
)

// TamperFinding is one failed critical key.
type TamperFinding struct {
	Key    string       `json:"key"`
	Reason TamperReason `json:"reason"`
}

// IsPropertyTampered reports whether key is absent or its parsed value
// differs byte-for-byte from current.
func (s *Store) IsPropertyTampered(key, current string) bool {
	v, ok := s.props[key]
	return !ok || v != current
}

// TamperFindings lists every critical key that is missing, empty, or the
// placeholder, in CriticalKeys order.
func (s *Store) TamperFindings() []TamperFinding {
	var out []TamperFinding
	for _, k := range CriticalKeys {
		v, ok := s.props[k]
		switch {
		case !ok:
			out = append(out, TamperFinding{Key: k, Reason: ReasonMissing})
		case v == "":
			out = append(out, TamperFinding{Key: k, Reason: ReasonEmpty})
		case v == PlaceholderValue:
			out = append(out, TamperFinding{Key: k, Reason: ReasonPlaceholder})
		}
	}
	return out
}

// CheckForTampering reports whether any critical key failed. An unparsed
// store fails every key.
func (s *Store) CheckForTampering() bool {
	return len(s.TamperFindings()) > 0
}

// DeviceModel returns ro.product.model.
func (s *Store) DeviceModel() string { return s.Get(KeyProductModel) }

// DeviceBrand returns ro.product.brand.
func (s *Store) DeviceBrand() string { return s.Get(KeyProductBrand) }

// BuildFingerprint returns ro.build.fingerprint.
func (s *Store) BuildFingerprint() string { return s.Get(KeyBuildFingerprint) }

// AndroidVersion returns ro.build.version.release.
func (s *Store) AndroidVersion() string { return s.Get(KeyVersionRelease) }

// BuildID returns ro.build.id.
func (s *Store) BuildID() string { return s.Get(KeyBuildID) }

// DeviceInfo bundles the identity properties.
type DeviceInfo struct {
	Model            string `json:"model"`
	Brand            string `json:"brand"`
	Manufacturer     string `json:"manufacturer"`
	Product          string `json:"product"`
	Device           string `json:"device"`
	Hardware         string `json:"hardware"`
	AndroidVersion   string `json:"android_version"`
	SDK              string `json:"sdk"`
	Incremental      string `json:"incremental"`
	BuildID          string `json:"build_id"`
	BuildFingerprint string `json:"build_fingerprint"`
}

// DeviceInfo collects the identity properties from the store.
func (s *Store) DeviceInfo() DeviceInfo {
	return DeviceInfo{
		Model:            s.Get(KeyProductModel),
		Brand:            s.Get(KeyProductBrand),
		Manufacturer:     s.Get(KeyProductManufacturer),
		Product:          s.Get(KeyProductName),
		Device:           s.Get(KeyProductDevice),
		Hardware:         s.Get(KeyHardware),
		AndroidVersion:   s.Get(KeyVersionRelease),
		SDK:              s.Get(KeyVersionSDK),
		Incremental:      s.Get(KeyVersionIncremental),
		BuildID:          s.Get(KeyBuildID),
		BuildFingerprint: s.Get(KeyBuildFingerprint),
	}
}

// Summary renders the four-line device summary.
func (d DeviceInfo) Summary() string {
	var b strings.Builder
	b.WriteString("Model: " + d.Model + "\n")
	b.WriteString("Brand: " + d.Brand + "\n")
	b.WriteString("Android: " + d.AndroidVersion + "\n")
	b.WriteString("Fingerprint: " + d.BuildFingerprint)
	return b.String()
}
