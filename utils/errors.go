package utils

import "errors"

var ErrServer = errors.New("there was a problem processing the request")
var ErrUuidNotFound = errors.New("the specified uuid was not found")
var ErrSlugNotFound = errors.New("the specified slug was not found")
var ErrValidationError = errors.New("the data provided was invalid")
var ErrInvalidCredentials = errors.New("the credentials provided were invalid")
var ErrEmailTaken = errors.New("an account with this email already exists")
var ErrConflict = errors.New("the resource already exists")
var ErrDuplicateVote = errors.New("a vote for this post has already been cast")
var ErrQuotaExceeded = errors.New("the model quota for this account has been reached")
var ErrInvalidImport = errors.New("the import payload did not match the model schema")
var ErrDatabaseError = errors.New("an internal database error occurred")

// Permission / access errors
var ErrUnauthorized = errors.New("authentication is required for this request")
var ErrTokenInvalid = errors.New("the provided token was invalid or has expired")
var ErrForbidden = errors.New("no permission to perform this action")
var ErrAdminOnly = errors.New("this action requires admin privileges")
var ErrOpenIDError = errors.New("the OpenID authentication failed")
var ErrOpenIDAuthDisabled = errors.New("OpenID authentication is disabled on this server")
var ErrNativeAuthDisabled = errors.New("native authentication is disabled on this server")
var ErrPaymentNotVerified = errors.New("the payment could not be verified")
