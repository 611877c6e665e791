package domain

import (
	"regexp"
	"slices"
	"strings"
)

// Contact represents one phonebook entry as served by the contact source.
type Contact struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
}

// NewContact creates a new Contact. Values are stored as given.
func NewContact(name, phoneNumber, address string) Contact {
	return Contact{
		Name:        name,
		PhoneNumber: phoneNumber,
		Address:     address,
	}
}

// SortField selects the contact field used for ordering.
type SortField string

const (
	SortByName        SortField = "name"
	SortByPhoneNumber SortField = "phone_number"
	SortByAddress     SortField = "address"
)

// SortFields lists the recognised sort fields in display order.
var SortFields = []SortField{SortByName, SortByPhoneNumber, SortByAddress}

// Valid reports whether f is one of the recognised sort fields.
func (f SortField) Valid() bool {
	return slices.Contains(SortFields, f)
}

// Normalize returns f, or SortByName when f is not recognised.
// Unknown selectors are deliberately accepted and treated as name rather
// than rejected; callers have always been able to pass anything here.
func (f SortField) Normalize() SortField {
	if f.Valid() {
		return f
	}
	return SortByName
}

func (f SortField) key(c Contact) string {
	switch f {
	case SortByPhoneNumber:
		return c.PhoneNumber
	case SortByAddress:
		return c.Address
	default:
		return c.Name
	}
}

// MatchAll is the filter applied when no pattern is requested.
var MatchAll = regexp.MustCompile(`.*`)

// ContactList is an ordered, mutable collection of contacts.
// The zero value is an empty list ready to use.
type ContactList struct {
	contacts []Contact
}

// NewContactList creates an empty ContactList.
func NewContactList() *ContactList {
	return &ContactList{}
}

// Append adds c to the end of the list and returns the list for chaining.
func (l *ContactList) Append(c Contact) *ContactList {
	l.contacts = append(l.contacts, c)
	return l
}

// Len returns the number of contacts currently held.
func (l *ContactList) Len() int {
	return len(l.contacts)
}

// Contacts returns a copy of the contacts in current order.
func (l *ContactList) Contacts() []Contact {
	return slices.Clone(l.contacts)
}

// Each calls fn for every contact in current order.
func (l *ContactList) Each(fn func(i int, c Contact)) {
	for i, c := range l.contacts {
		fn(i, c)
	}
}

// SortBy orders the list ascending by the byte-wise value of field.
// The sort is stable, so equal keys keep their insertion order.
func (l *ContactList) SortBy(field SortField) {
	field = field.Normalize()
	slices.SortStableFunc(l.contacts, func(a, b Contact) int {
		return strings.Compare(field.key(a), field.key(b))
	})
}

// Filter removes, in place, every contact whose name does not match re.
// A nil re keeps everything.
func (l *ContactList) Filter(re *regexp.Regexp) {
	if re == nil {
		return
	}
	l.contacts = slices.DeleteFunc(l.contacts, func(c Contact) bool {
		return !re.MatchString(c.Name)
	})
}

// FilterInPlace compiles pattern and filters the list by it.
// An invalid pattern leaves the list untouched and returns an error
// wrapping ErrInvalidFilterPattern.
func (l *ContactList) FilterInPlace(pattern string) error {
	re, err := CompileFilter(pattern)
	if err != nil {
		return err
	}
	l.Filter(re)
	return nil
}

// CompileFilter compiles a name filter pattern. Matching is unanchored.
func CompileFilter(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &FilterPatternError{Pattern: pattern, Err: err}
	}
	return re, nil
}

// Render returns the textual listing of the contacts, one stanza each.
func (l *ContactList) Render() string {
	var b strings.Builder
	for _, c := range l.contacts {
		b.WriteString(" - Contact:\n\n")
		b.WriteString("\t\tName: " + c.Name + "\n")
		b.WriteString("\t\tAddress: " + c.Address + "\n")
		b.WriteString("\t\tPhone Number: " + c.PhoneNumber + "\n")
		b.WriteString("\n")
	}
	return b.String()
}

// String implements fmt.Stringer.
func (l *ContactList) String() string {
	return l.Render()
}
