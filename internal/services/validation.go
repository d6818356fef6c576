// This file holds the input rules shared by both forms. Checks run in a
// fixed order and the first failure wins, so a visitor always sees the same
// message for the same input. Lengths count runes, and input is never
// trimmed or otherwise normalized before it is stored.

package services

import (
	"regexp"
	"unicode/utf8"
)

// Field limits, counted in Unicode code points.
const (
	MaxNameRunes             = 100
	MaxGuestbookMessageRunes = 500
	MaxContactMessageRunes   = 1000
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateGuestbook applies the guestbook rules in order and returns the
// first failure, or nil. Inputs are not trimmed: "  " is a valid name.
func ValidateGuestbook(name, message string) error {
	if name == "" || message == "" {
		return &ValidationError{Kind: KindMissingField, Message: "Name and message are required"}
	}
	if utf8.RuneCountInString(name) > MaxNameRunes {
		return &ValidationError{Kind: KindFieldTooLong, Field: "name", Message: "Name must be less than 100 characters"}
	}
	if utf8.RuneCountInString(message) > MaxGuestbookMessageRunes {
		return &ValidationError{Kind: KindFieldTooLong, Field: "message", Message: "Message must be less than 500 characters"}
	}
	return nil
}

// ValidateContact applies the contact rules in order: presence, email shape,
// name length, message length.
func ValidateContact(name, email, message string) error {
	if name == "" || email == "" || message == "" {
		return &ValidationError{Kind: KindMissingField, Message: "Name, email, and message are required"}
	}
	if !emailPattern.MatchString(email) {
		return &ValidationError{Kind: KindInvalidFormat, Field: "email", Message: "Invalid email address"}
	}
	if utf8.RuneCountInString(name) > MaxNameRunes {
		return &ValidationError{Kind: KindFieldTooLong, Field: "name", Message: "Name must be less than 100 characters"}
	}
	if utf8.RuneCountInString(message) > MaxContactMessageRunes {
		return &ValidationError{Kind: KindFieldTooLong, Field: "message", Message: "Message must be less than 1000 characters"}
	}
	return nil
}
