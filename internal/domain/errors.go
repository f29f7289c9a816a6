package domain

import "errors"

var (
	// ErrEmptyBank is returned when a session is started without any questions to draw from.
	ErrEmptyBank = errors.New("question bank is empty")
	// ErrUnknownCategory indicates a category filter outside the fixed enumeration.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrInvalidQuestion indicates a question record that breaks its invariants.
	ErrInvalidQuestion = errors.New("invalid question")
	// ErrInvalidTransition is returned when a session operation is called in the wrong state.
	ErrInvalidTransition = errors.New("invalid session transition")
	// ErrOptionNotFound indicates a submitted option ID is not part of the current question.
	ErrOptionNotFound = errors.New("option not found")
	// ErrSessionNotFound is returned when a player has no active practice session.
	ErrSessionNotFound = errors.New("practice session not found")
	// ErrSessionNotCompleted is returned when a summary is requested before the last question.
	ErrSessionNotCompleted = errors.New("practice session not completed")
	// ErrUnauthenticated is returned when a request carries no valid sign-in token.
	ErrUnauthenticated = errors.New("not signed in")
	// ErrEmailTaken is returned when an email already belongs to another account.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials indicates a malformed login or signup form.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
