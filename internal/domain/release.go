package domain

import "strings"

// Release holds the values reported once a tag and its reference exist.

type Release struct {
	Version    string
	TagName    string
	TagSHA     string
	TagURI     string
	TagMessage string
	TagRef     string
}

// NewRelease builds the reported values from the created tag object and reference.
func NewRelease(version string, tag *TagObject, ref *Reference) *Release {
	return &Release{
		Version:    version,
		TagName:    tag.Tag,
		TagSHA:     tag.SHA,
		TagURI:     ref.URL,
		TagMessage: strings.TrimSpace(tag.Message),
		TagRef:     ref.Ref,
	}
}
