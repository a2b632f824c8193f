package models

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// DMRoomID derives the deterministic room id for a direct message between
// two users, with the lower id first regardless of who initiates.
func DMRoomID(a, b int) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("dm-%d-%d", a, b)
}

// ParseDMRoom extracts the two participant ids from a dm room id. It
// returns false for anything that is not exactly dm-<int>-<int>.
func ParseDMRoom(roomID string) (int, int, bool) {
	rest, ok := strings.CutPrefix(roomID, "dm-")
	if !ok {
		return 0, 0, false
	}
	parts := strings.Split(rest, "-")
	if len(parts) != 2 {
		return 0, 0, false
	}
	a, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	b, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	return a, b, true
}

// GroupRoomID maps a group directory entry onto its chat room namespace.
func GroupRoomID(name string) string {
	var sb strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(r)
			lastDash = false
		case !lastDash:
			sb.WriteByte('-')
			lastDash = true
		}
	}
	slug := strings.TrimSuffix(sb.String(), "-")
	return "group-" + slug
}
