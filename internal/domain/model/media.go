package model

import (
	"fmt"
	"io"
	"path"
	"strings"
)

// MediaKind names a profile attachment slot.
type MediaKind string

const (
	// MediaProfileImage is a candidate's profile picture.
	MediaProfileImage MediaKind = "profile_image"
	// MediaResume is a candidate's résumé document.
	MediaResume MediaKind = "resume"
	// MediaLogo is an employer's logo.
	MediaLogo MediaKind = "logo"
)

// AllowedFor reports whether a principal with role may attach media of kind k.
func (k MediaKind) AllowedFor(role Role) bool {
	switch k {
	case MediaProfileImage, MediaResume:
		return role == RoleCandidate
	case MediaLogo:
		return role == RoleEmployer
	default:
		return false
	}
}

// ParseMediaKind converts a string into a MediaKind.
func ParseMediaKind(s string) (MediaKind, error) {
	k := MediaKind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case MediaProfileImage, MediaResume, MediaLogo:
		return k, nil
	default:
		return "", fmt.Errorf("invalid media kind: %q", s)
	}
}

// Blob is an upload payload.
type Blob struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Ext returns the lowercase file extension including the dot, or "".
func (b Blob) Ext() string {
	return strings.ToLower(path.Ext(b.Filename))
}
