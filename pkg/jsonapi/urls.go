package jsonapi

import (
	"net/url"
	"strings"
)

// URLBuilder computes request targets from the remote host, an optional
// namespace prefix, and resource coordinates. Resource types are used as
// path segments verbatim; servers with other naming conventions are
// reached through the per-request URL override.
type URLBuilder struct {
	Host      string
	Namespace string
}

// NewURLBuilder creates a URL builder for a remote host.
func NewURLBuilder(host, namespace string) *URLBuilder {
	return &URLBuilder{Host: host, Namespace: namespace}
}

// ResourceCollectionURL targets the collection for a type.
func (u *URLBuilder) ResourceCollectionURL(recordType string) string {
	return u.join(recordType)
}

// ResourceURL targets a single resource.
func (u *URLBuilder) ResourceURL(recordType, id string) string {
	return u.join(recordType, id)
}

// ResourceRelationshipURL targets the relationship linkage of a resource.
func (u *URLBuilder) ResourceRelationshipURL(recordType, id, relationship string) string {
	return u.join(recordType, id, "relationships", relationship)
}

// RelatedResourceURL targets the related resources themselves.
func (u *URLBuilder) RelatedResourceURL(recordType, id, relationship string) string {
	return u.join(recordType, id, relationship)
}

func (u *URLBuilder) join(segments ...string) string {
	parts := []string{strings.TrimRight(u.Host, "/")}
	if u.Namespace != "" {
		parts = append(parts, strings.Trim(u.Namespace, "/"))
	}
	for _, s := range segments {
		parts = append(parts, url.PathEscape(s))
	}
	return strings.Join(parts, "/")
}

// appendInclude appends an include query parameter naming the given
// relationships. The target URL is left untouched when include is empty.
func appendInclude(target string, include []string) string {
	if len(include) == 0 {
		return target
	}
	separator := "?"
	if strings.Contains(target, "?") {
		separator = "&"
	}
	return target + separator + "include=" + url.QueryEscape(strings.Join(include, ","))
}
