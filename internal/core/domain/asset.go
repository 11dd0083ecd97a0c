package domain

import "strings"

// TempAssetPrefix is the URL path under which temporary asset handles are served.
const TempAssetPrefix = "/assets/tmp/"

// AssetRef is an opaque image or video reference: a remote URL, an inline
// data URL, a temporary object URL, or a key into the local blob store.
type AssetRef string

// AssetKind classifies an AssetRef by its form.
type AssetKind int

// Asset reference forms.
const (
	AssetEmpty AssetKind = iota
	AssetRemote
	AssetData
	AssetTemp
	AssetLocal
)

// Kind reports the form of the reference.
func (r AssetRef) Kind() AssetKind {
	s := string(r)
	switch {
	case s == "":
		return AssetEmpty
	case strings.HasPrefix(s, "data:"):
		return AssetData
	case strings.HasPrefix(s, "blob:"), strings.HasPrefix(s, TempAssetPrefix):
		return AssetTemp
	case strings.HasPrefix(s, "http://"), strings.HasPrefix(s, "https://"), strings.HasPrefix(s, "//"):
		return AssetRemote
	default:
		return AssetLocal
	}
}

// IsDirect returns true when the reference is already displayable as-is.
func (r AssetRef) IsDirect() bool {
	switch r.Kind() {
	case AssetRemote, AssetData, AssetTemp:
		return true
	default:
		return false
	}
}

// MediaKind tags a media reference as image or video.
type MediaKind string

// Media kinds.
const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// Media is a tagged image or video reference.
type Media struct {
	Kind MediaKind `json:"kind"`
	Ref  AssetRef  `json:"ref"`
}

// Visual is the icon-or-image pair used by list items.
// When Image is set it takes precedence over Icon.
type Visual struct {
	Icon  string   `json:"icon"`
	Image AssetRef `json:"image"`
}
