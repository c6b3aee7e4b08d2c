package enums

import "fmt"

// BlogStatus is the publication state of a blog post.
type BlogStatus string

const (
	BlogStatusDraft     BlogStatus = "draft"
	BlogStatusPublished BlogStatus = "published"
	BlogStatusScheduled BlogStatus = "scheduled"
)

var validBlogStatuses = []BlogStatus{
	BlogStatusDraft,
	BlogStatusPublished,
	BlogStatusScheduled,
}

// String implements fmt.Stringer.
func (s BlogStatus) String() string {
	return string(s)
}

// IsValid reports whether the status is recognized.
func (s BlogStatus) IsValid() bool {
	for _, candidate := range validBlogStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseBlogStatus converts a raw string into a BlogStatus.
func ParseBlogStatus(value string) (BlogStatus, error) {
	for _, candidate := range validBlogStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid blog status %q", value)
}
