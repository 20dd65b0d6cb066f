package validators

import "strings"

// Contacts validates the contact fields of people records using the clinic's
// phone region and optional email domain lookup.
type Contacts struct {
	region      string
	checkDomain bool
}

func NewContacts(region string, checkDomain bool) *Contacts {
	return &Contacts{region: region, checkDomain: checkDomain}
}

func (c *Contacts) NormalizePhone(raw string) (string, error) {
	return NormalizePhone(raw, c.region)
}

func (c *Contacts) ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if !IsEmailSyntaxValid(email) {
		return ErrInvalidEmail
	}
	if c.checkDomain && !IsEmailDomainValid(email) {
		return ErrInvalidEmail
	}
	return nil
}
