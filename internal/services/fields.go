package services

import (
	"encoding/json"
	"fmt"
	"slices"

	appErrors "github.com/fatukunda/partytime/pkg/errors"
)

// AllowedFields is the fixed set of entity fields a given operation may
// mutate. Any other key in a payload voids the whole update.
type AllowedFields []string

// Allow-lists per mutable entity. Identity and ownership columns are absent
// on purpose: host_id, requestor_id and party_id are immutable after creation.
var (
	UserUpdatableFields = AllowedFields{
		"first_name", "last_name", "date_of_birth", "gender",
		"phone_number", "email", "password", "bio",
	}
	PartyUpdatableFields   = AllowedFields{"title", "description", "address", "category"}
	RequestResolutionFields = AllowedFields{"status", "message"}
)

// Validate checks every payload key against the allow-list before anything is
// applied. The first unrecognised key fails the entire operation.
func (f AllowedFields) Validate(payload map[string]json.RawMessage) error {
	for key := range payload {
		if !slices.Contains(f, key) {
			return appErrors.ErrInvalidUpdateFields.
				WithMessage(fmt.Sprintf("field %q cannot be updated", key))
		}
	}
	return nil
}
