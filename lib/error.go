package s3thumbnail

type Errtype int

const (
	Unhandled Errtype = iota
	InvalidConfig
	BucketNotFound
	ListFailed
	GetFailed
	DecodeFailed
	WriteFailed
)

func (t Errtype) String() string {
	switch t {
	case InvalidConfig:
		return "InvalidConfig"
	case BucketNotFound:
		return "BucketNotFound"
	case ListFailed:
		return "ListFailed"
	case GetFailed:
		return "GetFailed"
	case DecodeFailed:
		return "DecodeFailed"
	case WriteFailed:
		return "WriteFailed"
	default:
		return "Unhandled"
	}
}

type Error struct {
	Errtype Errtype
	Message string
	OrigErr error
}

func newError(errtype Errtype, origerr error, subject string) *Error {
	msg := errtype.String() + ": " + subject
	if origerr != nil {
		msg += ": " + origerr.Error()
	}
	return &Error{
		Errtype: errtype,
		Message: msg,
		OrigErr: origerr,
	}
}

func newErrorBucketNotFound(origerr error, bucket string) *Error {
	return newError(BucketNotFound, origerr, bucket)
}

func newErrorListFailed(origerr error, bucket string) *Error {
	return newError(ListFailed, origerr, bucket)
}

func newErrorGetFailed(origerr error, key ObjectKey) *Error {
	return newError(GetFailed, origerr, key)
}

func newErrorDecodeFailed(origerr error, key ObjectKey) *Error {
	return newError(DecodeFailed, origerr, key)
}

func newErrorWriteFailed(origerr error, key ObjectKey) *Error {
	return newError(WriteFailed, origerr, key)
}

func newErrorInvalidConfig(message string) *Error {
	return newError(InvalidConfig, nil, message)
}

func (e *Error) Error() string { return e.Message }

// Cause lets errors.Cause from github.com/pkg/errors reach the storage error.
func (e *Error) Cause() error { return e.OrigErr }

func (e *Error) Unwrap() error { return e.OrigErr }

func errtypeOf(err error) Errtype {
	for err != nil {
		if berr, ok := err.(*Error); ok {
			return berr.Errtype
		}
		cause, ok := err.(interface{ Cause() error })
		if !ok {
			break
		}
		err = cause.Cause()
	}
	return Unhandled
}

func IsBucketNotFound(err error) bool { return errtypeOf(err) == BucketNotFound }
func IsListFailed(err error) bool     { return errtypeOf(err) == ListFailed }
func IsGetFailed(err error) bool      { return errtypeOf(err) == GetFailed }
func IsDecodeFailed(err error) bool   { return errtypeOf(err) == DecodeFailed }
func IsWriteFailed(err error) bool    { return errtypeOf(err) == WriteFailed }
func IsInvalidConfig(err error) bool  { return errtypeOf(err) == InvalidConfig }

// Fatal reports whether err must stop the whole run.
func Fatal(err error) bool {
	switch errtypeOf(err) {
	case GetFailed, DecodeFailed, WriteFailed:
		return false
	}
	return err != nil
}
