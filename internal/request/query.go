// Package request holds the structural validators applied to query strings
// and JSON bodies before they reach the services.
package request

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"blogify/internal/apperr"

	"github.com/google/uuid"
)

// Lookup selects a single resource by exactly one of ID or UUID.
type Lookup struct {
	ID   uint
	UUID string
}

func (l Lookup) ByUUID() bool {
	return l.UUID != ""
}

// UserLookup selects a user by exactly one of ID, UUID or Email.
type UserLookup struct {
	Lookup
	Email string
}

// Strict rejects any query parameter not listed in allowed.
func Strict(values url.Values, allowed ...string) error {
	var unknown []string
	for key := range values {
		if !containsKey(allowed, key) {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return apperr.BadRequest("unrecognized query parameters: " + strings.Join(unknown, ", "))
	}
	return nil
}

// ParseLookup requires exactly one of id or uuid and nothing else.
func ParseLookup(values url.Values, what string) (Lookup, error) {
	if err := Strict(values, "id", "uuid"); err != nil {
		return Lookup{}, err
	}
	if len(values) != 1 {
		return Lookup{}, apperr.BadRequest("kindly provide one of " + what + " id or uuid ONLY")
	}
	return parseLookupValue(values)
}

// ParseUserLookup requires exactly one of id, uuid or email.
func ParseUserLookup(values url.Values) (UserLookup, error) {
	if err := Strict(values, "id", "uuid", "email"); err != nil {
		return UserLookup{}, err
	}
	if len(values) != 1 {
		return UserLookup{}, apperr.BadRequest("kindly provide one of id, uuid or email ONLY as a query param")
	}
	if raw, ok := values["email"]; ok {
		if len(raw) != 1 || validate.Var(raw[0], "required,email") != nil {
			return UserLookup{}, apperr.BadRequest("email must be a valid email address")
		}
		return UserLookup{Email: raw[0]}, nil
	}
	l, err := parseLookupValue(values)
	if err != nil {
		return UserLookup{}, err
	}
	return UserLookup{Lookup: l}, nil
}

func parseLookupValue(values url.Values) (Lookup, error) {
	if raw, ok := values["id"]; ok {
		id, err := PositiveID(raw)
		if err != nil {
			return Lookup{}, err
		}
		return Lookup{ID: id}, nil
	}
	raw := values["uuid"]
	if len(raw) != 1 {
		return Lookup{}, apperr.BadRequest("uuid must be supplied once")
	}
	if _, err := uuid.Parse(raw[0]); err != nil {
		return Lookup{}, apperr.BadRequest("uuid must be a valid uuid")
	}
	return Lookup{UUID: raw[0]}, nil
}

// PositiveID parses a single positive integer identifier.
func PositiveID(raw []string) (uint, error) {
	if len(raw) != 1 {
		return 0, apperr.BadRequest("id must be supplied once")
	}
	n, err := strconv.ParseUint(raw[0], 10, 32)
	if err != nil || n == 0 {
		return 0, apperr.BadRequest("expecting a positive integer id")
	}
	return uint(n), nil
}

func containsKey(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
