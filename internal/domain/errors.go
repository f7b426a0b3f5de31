package domain

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultErrorMessage is the primary line of every error card.
const DefaultErrorMessage = "Something went wrong"

// Sentinels matched with errors.Is. Every CardError matches exactly one of them.
var (
	ErrValidation   = errors.New("validation error")
	ErrBlocked      = errors.New("blocked identity")
	ErrUserNotFound = errors.New("user not found")
	ErrRepoNotFound = errors.New("repository not found")
	ErrFetch        = errors.New("fetch error")
)

// ErrorKind enumerates the closed set of card failures.
type ErrorKind int

const (
	KindValidation ErrorKind = iota
	KindBlocked
	KindUserNotFound
	KindRepoNotFound
	KindFetch
)

func (k ErrorKind) sentinel() error {
	switch k {
	case KindValidation:
		return ErrValidation
	case KindBlocked:
		return ErrBlocked
	case KindUserNotFound:
		return ErrUserNotFound
	case KindRepoNotFound:
		return ErrRepoNotFound
	default:
		return ErrFetch
	}
}

// CardError is a failure that can be shown on an error card. Message and
// Secondary are user-facing; Cause is only for logs.
type CardError struct {
	Kind      ErrorKind
	Message   string
	Secondary string
	Cause     error
}

func (e *CardError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Message, e.Secondary, e.Cause)
	}
	if e.Secondary == "" {
		return e.Message
	}
	return e.Message + ": " + e.Secondary
}

// Is lets errors.Is match on the kind sentinel.
func (e *CardError) Is(target error) bool {
	return target == e.Kind.sentinel()
}

func (e *CardError) Unwrap() error {
	return e.Cause
}

// Validation reports bad or disallowed input detected before fetching.
func Validation(secondary string) *CardError {
	return &CardError{Kind: KindValidation, Message: DefaultErrorMessage, Secondary: secondary}
}

// MissingParams reports absent required query parameters.
func MissingParams(example string, names ...string) *CardError {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = `"` + n + `"`
	}
	return &CardError{
		Kind:      KindValidation,
		Message:   fmt.Sprintf("Missing params %s make sure you pass the parameters in URL", strings.Join(quoted, ", ")),
		Secondary: example,
	}
}

// Blocked reports an identity on the deny-list.
func Blocked() *CardError {
	return &CardError{Kind: KindBlocked, Message: DefaultErrorMessage, Secondary: "This username is blacklisted"}
}

// UserNotFound reports that the upstream confirmed the user does not exist.
func UserNotFound(login, hint string) *CardError {
	secondary := fmt.Sprintf("Could not find a user with the login of '%s'", login)
	if hint != "" {
		secondary += ". " + hint
	}
	return &CardError{Kind: KindUserNotFound, Message: DefaultErrorMessage, Secondary: secondary}
}

// RepoNotFound reports a missing, private or inaccessible repository.
func RepoNotFound(owner, repo string) *CardError {
	return &CardError{
		Kind:      KindRepoNotFound,
		Message:   DefaultErrorMessage,
		Secondary: fmt.Sprintf("Could not find the repository '%s/%s'", owner, repo),
	}
}

// FetchFailed reports a transport or upstream-service failure. secondary is
// the upstream message as it may be shown to the user.
func FetchFailed(secondary string, cause error) *CardError {
	if secondary == "" {
		secondary = "Please try again later"
	}
	return &CardError{Kind: KindFetch, Message: DefaultErrorMessage, Secondary: secondary, Cause: cause}
}
