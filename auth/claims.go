// Package auth extracts identity claims from a bearer token without
// verifying its signature. The backend enforces authorization; the decoded
// claims only drive local display and reply routing.
package auth

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/getset-tui/models"
)

// DecodeClaims parses the second dot-separated segment of token as
// base64(url) JSON. Malformed input of any kind yields the default
// identity; this function never fails.
func DecodeClaims(token string) models.Identity {
	identity := models.Identity{Role: models.RoleRenter, Name: "User"}

	parts := strings.Split(token, ".")
	if len(parts) < 2 {
		return identity
	}

	raw, err := decodeSegment(parts[1])
	if err != nil {
		return identity
	}

	var payload struct {
		Sub  string `json:"sub"`
		ID   string `json:"id"`
		Role string `json:"role"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return identity
	}

	if payload.Sub != "" {
		identity.ID = payload.Sub
	} else {
		identity.ID = payload.ID
	}
	if payload.Role != "" {
		identity.Role = payload.Role
	}
	switch {
	case payload.Name != "":
		identity.Name = payload.Name
	case payload.Sub != "":
		identity.Name = payload.Sub
	}

	return identity
}

// decodeSegment accepts both url-safe and standard alphabets, with or
// without padding, since token issuers differ on this.
func decodeSegment(seg string) ([]byte, error) {
	seg = strings.TrimRight(seg, "=")
	if b, err := base64.RawURLEncoding.DecodeString(seg); err == nil {
		return b, nil
	}
	return base64.RawStdEncoding.DecodeString(seg)
}
