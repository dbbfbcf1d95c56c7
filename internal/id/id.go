package id

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// NewPostingID returns a fresh ID shared by every entry of one posted tree.
func NewPostingID() string {
	return uuid.New().String()
}

// FormatEntryID returns an entry ID like "<postingID>-a" (leg 0='a',
// 1='b', ..., 25='z', 26='aa').
func FormatEntryID(postingID string, leg int) string {
	return postingID + "-" + legSuffix(leg)
}

// ParseEntryID splits an entry ID into its posting ID and leg index.
func ParseEntryID(id string) (postingID string, leg int, err error) {
	i := strings.LastIndex(id, "-")
	if i <= 0 || i == len(id)-1 {
		return "", 0, fmt.Errorf("invalid entry ID format: %q", id)
	}

	leg, err = parseLegSuffix(id[i+1:])
	if err != nil {
		return "", 0, fmt.Errorf("invalid entry ID %q: %w", id, err)
	}
	return id[:i], leg, nil
}

// legSuffix encodes a leg index in lowercase base-26: "a".."z", "aa", "ab"...
func legSuffix(leg int) string {
	var b []byte
	for {
		b = append([]byte{byte('a' + leg%26)}, b...)
		leg = leg/26 - 1
		if leg < 0 {
			break
		}
	}
	return string(b)
}

func parseLegSuffix(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("empty leg suffix")
	}
	leg := 0
	for _, c := range s {
		if c < 'a' || c > 'z' {
			return 0, fmt.Errorf("bad leg suffix %q", s)
		}
		leg = leg*26 + int(c-'a'+1)
	}
	return leg - 1, nil
}
