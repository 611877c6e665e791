package app

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/aradsms/contact_fetcher/internal/contact_fetcher/domain"
)

// contactPayload is the wire form of one contacts element. Pointers let
// validation tell a missing (or null) key from an empty string.
type contactPayload struct {
	Name        *string `json:"name" validate:"required"`
	PhoneNumber *string `json:"phone_number" validate:"required"`
	Address     *string `json:"address" validate:"required"`
}

// Decoder turns a response body into a ContactList.
type Decoder struct {
	validate *validator.Validate
}

// NewDecoder creates a Decoder. A nil validate gets a fresh validator.
func NewDecoder(validate *validator.Validate) *Decoder {
	if validate == nil {
		validate = validator.New()
	}
	return &Decoder{validate: validate}
}

// Decode parses body as {"contacts":[...]} and appends each element, in
// array order, to a new ContactList.
//
// Errors wrap one of domain.ErrMalformedPayload (not JSON),
// domain.ErrUnexpectedShape or domain.ErrMissingContactsField (JSON of the
// wrong shape) and domain.ErrMalformedContact (a bad element).
func (d *Decoder) Decode(body []byte) (*domain.ContactList, error) {
	if !json.Valid(body) {
		// Unmarshal again only to get a descriptive syntax error.
		var probe any
		err := json.Unmarshal(body, &probe)
		if err == nil {
			err = errors.New("invalid JSON")
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err)
	}

	var document map[string]json.RawMessage
	if err := json.Unmarshal(body, &document); err != nil {
		return nil, fmt.Errorf("%w: top level is not an object", domain.ErrUnexpectedShape)
	}

	rawContacts, ok := document["contacts"]
	if !ok {
		return nil, domain.ErrMissingContactsField
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(rawContacts, &elements); err != nil || elements == nil {
		return nil, fmt.Errorf(`%w: "contacts" is not an array`, domain.ErrUnexpectedShape)
	}

	list := domain.NewContactList()
	for i, raw := range elements {
		contact, err := d.decodeContact(raw)
		if err != nil {
			return nil, fmt.Errorf("%w at index %d: %v", domain.ErrMalformedContact, i, err)
		}
		list.Append(contact)
	}
	return list, nil
}

func (d *Decoder) decodeContact(raw json.RawMessage) (domain.Contact, error) {
	var payload *contactPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return domain.Contact{}, err
	}
	if payload == nil {
		return domain.Contact{}, errors.New("element is null")
	}
	if err := d.validate.Struct(payload); err != nil {
		return domain.Contact{}, err
	}
	return domain.NewContact(*payload.Name, *payload.PhoneNumber, *payload.Address), nil
}
