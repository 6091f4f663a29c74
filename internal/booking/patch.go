package booking

import (
	"encoding/json"
	"errors"
	"io"
	"strings"
)

// Patch lists the booking fields staff may edit.  A nil field is left
// untouched.  Decoding rejects any other field.
type Patch struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Mobile    *string `json:"mobile,omitempty"`
	Email     *string `json:"email,omitempty"`
	NumAdult  *int    `json:"numAdult,omitempty"`
	NumChild  *int    `json:"numChild,omitempty"`
}

// DecodePatch reads a single JSON object from r.  Unknown fields, trailing
// data and malformed JSON produce a ValidationError.
func DecodePatch(r io.Reader) (Patch, error) {
	var p Patch
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return Patch{}, &ValidationError{Message: "Nothing to update"}
		}
		if field, ok := strings.CutPrefix(err.Error(), "json: unknown field "); ok {
			field = strings.Trim(field, `"`)
			return Patch{}, &ValidationError{Field: field, Message: "Field " + field + " cannot be changed"}
		}
		return Patch{}, &ValidationError{Message: "invalid request body"}
	}
	if dec.More() {
		return Patch{}, &ValidationError{Message: "invalid request body"}
	}
	return p, nil
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Mobile == nil &&
		p.Email == nil && p.NumAdult == nil && p.NumChild == nil
}

// Validate enforces the same rules as the booking form on the fields
// present in the patch.
func (p Patch) Validate() error {
	if p.Empty() {
		return &ValidationError{Message: "Nothing to update"}
	}
	if p.FirstName != nil && strings.TrimSpace(*p.FirstName) == "" {
		return &ValidationError{Field: "firstName", Message: fieldMessages["FirstName.required"]}
	}
	if p.Mobile != nil && strings.TrimSpace(*p.Mobile) == "" {
		return &ValidationError{Field: "mobile", Message: fieldMessages["Mobile.required"]}
	}
	if p.NumAdult != nil && (*p.NumAdult < 1 || *p.NumAdult > 20) {
		return &ValidationError{Field: "numAdult", Message: fieldMessages["NumAdult"]}
	}
	if p.NumChild != nil && (*p.NumChild < 0 || *p.NumChild > 20) {
		return &ValidationError{Field: "numChild", Message: fieldMessages["NumChild"]}
	}
	if p.Email != nil {
		if e := strings.TrimSpace(*p.Email); e != "" {
			if err := validate.Var(e, "email"); err != nil {
				return &ValidationError{Field: "email", Message: fieldMessages["Email.email"]}
			}
		}
	}
	return nil
}

// Apply returns a copy of b with the patch applied.  b itself is not
// modified.
func (p Patch) Apply(b Booking) Booking {
	if p.FirstName != nil {
		b.FirstName = Text(strings.TrimSpace(*p.FirstName))
	}
	if p.LastName != nil {
		b.LastName = Text(strings.TrimSpace(*p.LastName))
	}
	if p.Mobile != nil {
		b.Mobile = Text(strings.TrimSpace(*p.Mobile))
	}
	if p.Email != nil {
		b.Email = Text(strings.TrimSpace(*p.Email))
	}
	if p.NumAdult != nil {
		b.NumAdult = Count(*p.NumAdult)
	}
	if p.NumChild != nil {
		b.NumChild = Count(*p.NumChild)
	}
	return b
}

// Fields returns the patch as the write payload for booking id.
func (p Patch) Fields(id ID) map[string]any {
	out := map[string]any{"id": id}
	if p.FirstName != nil {
		out["firstName"] = strings.TrimSpace(*p.FirstName)
	}
	if p.LastName != nil {
		out["lastName"] = strings.TrimSpace(*p.LastName)
	}
	if p.Mobile != nil {
		out["mobile"] = strings.TrimSpace(*p.Mobile)
	}
	if p.Email != nil {
		out["email"] = strings.TrimSpace(*p.Email)
	}
	if p.NumAdult != nil {
		out["numAdult"] = *p.NumAdult
	}
	if p.NumChild != nil {
		out["numChild"] = *p.NumChild
	}
	return out
}
