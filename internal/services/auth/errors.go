package auth

import (
	"errors"
	"fmt"
)

// Kind classifies identity provider failures
type Kind string

const (
	KindAlreadyExists       Kind = "already_exists"
	KindWrongCredential     Kind = "wrong_credential"
	KindNotFound            Kind = "not_found"
	KindWeakCredential      Kind = "weak_credential"
	KindPopupDismissed      Kind = "popup_dismissed"
	KindPopupBlocked        Kind = "popup_blocked"
	KindProviderNotEnabled  Kind = "provider_not_enabled"
	KindDomainNotAuthorized Kind = "domain_not_authorized"
	KindUnknown             Kind = "unknown"
)

var messages = map[Kind]string{
	KindAlreadyExists:       "Email already exists",
	KindWrongCredential:     "Invalid password",
	KindNotFound:            "User not found",
	KindWeakCredential:      "Password too weak",
	KindPopupDismissed:      "Sign-in cancelled.",
	KindPopupBlocked:        "Popup blocked. Please allow popups for this site.",
	KindProviderNotEnabled:  "Sign-in provider is not configured. Please use Demo Mode.",
	KindDomainNotAuthorized: "This domain is not authorized for sign-in. Please use Demo Mode.",
	KindUnknown:             "Authentication failed",
}

// Error is an identity provider failure
type Error struct {
	Kind Kind
	Err  error // underlying cause, may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth %s: %v", e.Kind, e.Err)
	}
	return "auth " + string(e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// KindOf returns the kind of an auth error, KindUnknown for anything else
func KindOf(err error) Kind {
	var authErr *Error
	if errors.As(err, &authErr) {
		return authErr.Kind
	}
	return KindUnknown
}

// Message returns the user facing message for an error
func Message(err error) string {
	if msg, ok := messages[KindOf(err)]; ok {
		return msg
	}
	return messages[KindUnknown]
}
