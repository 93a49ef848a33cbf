package usecase

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
	ErrInternal     = errors.New("internal error")

	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrAccountDeactivated   = errors.New("account deactivated")
	ErrUserNotFound         = errors.New("user not found")
	ErrCannotDeactivateSelf = errors.New("cannot deactivate own account")

	ErrJobNotFound     = errors.New("job not found")
	ErrJobNotAccepting = errors.New("job is not accepting applications")
	ErrJobAccessDenied = errors.New("job not found or access denied")

	ErrAlreadyApplied      = errors.New("already applied")
	ErrApplicationNotFound = errors.New("application not found")
	ErrNotWithdrawable     = errors.New("application can no longer be withdrawn")
	ErrSkillNotFound       = errors.New("skill not found")
	ErrUserSkillNotFound   = errors.New("skill not in profile")
	ErrSavedJobNotFound    = errors.New("saved job not found")
	ErrCompanyNotFound     = errors.New("company not found")
	ErrFileTooLarge        = errors.New("file too large")
	ErrUnsupportedFileType = errors.New("unsupported file type")
)

// InputError is an ErrInvalidInput with a message safe to show the client.
type InputError struct {
	Message string
}

func (e *InputError) Error() string { return e.Message }

func (e *InputError) Is(target error) bool { return target == ErrInvalidInput }

func invalid(msg string) error { return &InputError{Message: msg} }
