package models

// SEOMetadata holds optional search-engine metadata attached to casinos and pages.
type SEOMetadata struct {
	MetaTitle       string `json:"metaTitle,omitempty"`
	MetaDescription string `json:"metaDescription,omitempty"`
	Keywords        string `json:"keywords,omitempty"`
	OGImage         string `json:"ogImage,omitempty"`
	NoIndex         bool   `json:"noIndex,omitempty"`
	CanonicalURL    string `json:"canonicalUrl,omitempty"`
}

// IsZero reports whether no SEO field is set.
func (s *SEOMetadata) IsZero() bool {
	return s == nil || *s == SEOMetadata{}
}
