package platforms

import (
	"unicode"
	"unicode/utf8"
)

// Platform is a single hardware platform.
type Platform struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	Abbreviation    string `json:"abbreviation,omitempty"`
	AlternativeName string `json:"alternativeName,omitempty"`
	PlatformType    int    `json:"platformType,omitempty"`
}

// Group buckets several platforms under one filter option.
type Group struct {
	GroupKey    string     `json:"groupKey"`
	DisplayName string     `json:"displayName"`
	IDs         []int      `json:"ids"`
	Platforms   []Platform `json:"platforms"`
}

// DisplayName upper-cases the first letter of key and leaves the rest untouched.
func DisplayName(key string) string {
	r, size := utf8.DecodeRuneInString(key)
	if r == utf8.RuneError {
		return key
	}
	return string(unicode.ToUpper(r)) + key[size:]
}

// FindGroup returns the group with the given key.
func FindGroup(groups []Group, key string) (Group, bool) {
	for _, g := range groups {
		if g.GroupKey == key {
			return g, true
		}
	}
	return Group{}, false
}
