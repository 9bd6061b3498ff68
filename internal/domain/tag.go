package domain

import "strings"

const (
	// TagRefPrefix is the fully qualified namespace of tag references.
	TagRefPrefix = "refs/tags/"
	// TagObjectType is the only object type tags are created against.
	TagObjectType = "commit"
)

// Tag is a tag as returned by the remote tag listing.
type Tag struct {
	Name   string
	Commit TagCommit
}

// TagCommit is the commit a listed tag points at.
type TagCommit struct {
	SHA string
	URL string
}

// Commit is one entry of a compared commit range.
type Commit struct {
	SHA         string
	Message     string
	AuthorLogin string
}

// Headline returns the first line of the commit message.
func (c Commit) Headline() string {
	headline, _, _ := strings.Cut(c.Message, "\n")
	return headline
}

// TagObject is an annotated tag object created on the remote.
type TagObject struct {
	Tag     string
	SHA     string
	URL     string
	Message string
}

// Reference is a git reference created or updated on the remote.
type Reference struct {
	Ref string
	URL string
	SHA string
}

// TagName joins prefix, version and suffix into the tag name.
func TagName(prefix, version, suffix string) string {
	return prefix + version + suffix
}

// FindTag returns the first tag whose name equals name.
func FindTag(tags []Tag, name string) (*Tag, bool) {
	for i := range tags {
		if tags[i].Name == name {
			return &tags[i], true
		}
	}
	return nil, false
}

// TagRef returns the fully qualified reference for a tag name.
func TagRef(name string) string {
	return TagRefPrefix + name
}

// ShortTagRef returns the reference path used by the update endpoint.
func ShortTagRef(name string) string {
	return "tags/" + name
}
