package types

// BrandProfile identifies one named branding target on disk
type BrandProfile struct {
	// Name is the profile key; it matches the directory name
	Name string

	// Path is the absolute profile directory holding its assets
	Path string
}

// RequiredProfileFiles must be present in every profile directory
var RequiredProfileFiles = []string{"logo.png"}
