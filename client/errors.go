package client

import (
	"errors"

	clienterrors "github.com/redema/records/client/internal/errors"
)

// APIError is returned by every operation that fails. Kind says whether the
// request never completed, the server rejected it, or the reply was not JSON.
type APIError = clienterrors.APIError

// Kind classifies an APIError.
type Kind = clienterrors.Kind

const (
	KindTransport = clienterrors.KindTransport
	KindStatus    = clienterrors.KindStatus
	KindDecode    = clienterrors.KindDecode
)

// IsNotFound reports whether the server answered 404.
func IsNotFound(err error) bool { return clienterrors.IsNotFound(err) }

// IsKind reports whether err is an *APIError of the given kind.
func IsKind(err error, kind Kind) bool { return clienterrors.IsKind(err, kind) }

// AsAPIError finds the first *APIError in err's chain.
func AsAPIError(err error, target **APIError) bool { return errors.As(err, target) }
