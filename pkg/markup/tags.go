package markup

import "sort"

// validTags is the closed set of element names an Arena accepts.
var validTags = map[string]struct{}{
	"h1": {}, "h2": {}, "h3": {}, "h4": {}, "h5": {}, "h6": {},
	"a": {}, "p": {}, "table": {}, "tr": {}, "td": {}, "th": {},
	"href": {}, "link": {}, "label": {}, "input": {}, "button": {},
	"form": {}, "nav": {}, "body": {}, "style": {}, "script": {},
	"html": {}, "header": {}, "span": {}, "div": {},
}

// IsValidTag reports whether tag may be used as an element name.
func IsValidTag(tag string) bool {
	_, ok := validTags[tag]
	return ok
}

// Tags returns the permitted element names in sorted order.
func Tags() []string {
	tags := make([]string, 0, len(validTags))
	for tag := range validTags {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
