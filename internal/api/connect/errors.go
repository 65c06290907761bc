package connect

import (
	"context"

	"connectrpc.com/connect"
	"github.com/cockroachdb/errors"

	"github.com/osa030/mixtape/internal/app/session"
)

// ErrorCodeHeader carries the session error code on failed calls.
const ErrorCodeHeader = "Mixtape-Error-Code"

// toConnectError converts a session error into a connect error whose message
// is the user-facing text.
func toConnectError(mgr *session.Manager, err error) error {
	if err == nil {
		return nil
	}
	var code connect.Code
	sessionCode := session.ErrorCode(err)
	switch {
	case errors.Is(err, context.Canceled):
		code = connect.CodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		code = connect.CodeDeadlineExceeded
	case errors.Is(err, session.ErrClosed):
		code = connect.CodeUnavailable
	default:
		code = connectCode(sessionCode)
	}

	cerr := connect.NewError(code, errors.New(mgr.Describe(err)))
	cerr.Meta().Set(ErrorCodeHeader, sessionCode)
	return cerr
}

func connectCode(sessionCode string) connect.Code {
	switch sessionCode {
	case session.CodeDuplicateTrack:
		return connect.CodeAlreadyExists
	case session.CodeIndexOutOfRange:
		return connect.CodeOutOfRange
	case session.CodeValidation, session.CodeQueryTooShort, session.CodeShareInvalid, session.CodeUnreadableFile:
		return connect.CodeInvalidArgument
	case session.CodeEmptyPlaylist, session.CodeShareNotEmpty, session.CodePlaybackFailed:
		return connect.CodeFailedPrecondition
	case session.CodeSuperseded:
		return connect.CodeAborted
	case session.CodeInternal:
		return connect.CodeInternal
	default:
		// Filter rejections carry the filter's own code.
		return connect.CodeFailedPrecondition
	}
}
