package errors

// Category is the user-facing message class an error is presented under.
type Category string

const (
	CategorySignIn       Category = "sign_in_required"
	CategoryNotAllowed   Category = "not_allowed"
	CategoryMissing      Category = "not_found"
	CategoryDuplicate    Category = "already_applied"
	CategoryStatusChange Category = "status_change_not_allowed"
	CategoryUnavailable  Category = "not_available"
	CategoryProfile      Category = "profile_unavailable"
	CategoryRetry        Category = "try_again"
	CategoryInput        Category = "check_input"
	CategoryUnknown      Category = "unexpected"
)

var categoryByCode = map[ErrorCode]Category{
	ErrCodeUnauthenticated:   CategorySignIn,
	ErrCodeForbidden:         CategoryNotAllowed,
	ErrCodeNotFound:          CategoryMissing,
	ErrCodeAlreadyApplied:    CategoryDuplicate,
	ErrCodeInvalidTransition: CategoryStatusChange,
	ErrCodeInvalidState:      CategoryUnavailable,
	ErrCodeProfileResolution: CategoryProfile,
	ErrCodeTransientIO:       CategoryRetry,
	ErrCodeTimeout:           CategoryRetry,
	ErrCodeCanceled:          CategoryRetry,
	ErrCodeConflict:          CategoryInput,
	ErrCodeValidation:        CategoryInput,
	ErrCodeForeignKey:        CategoryInput,
}

var categoryMessages = map[Category]string{
	CategorySignIn:       "Please sign in to continue.",
	CategoryNotAllowed:   "You do not have permission to do that.",
	CategoryMissing:      "We could not find what you were looking for.",
	CategoryDuplicate:    "You have already applied for this job.",
	CategoryStatusChange: "This application cannot be moved to that status.",
	CategoryUnavailable:  "This action is not available right now.",
	CategoryProfile:      "We could not load your profile. Please try again.",
	CategoryRetry:        "Something went wrong. Please try again.",
	CategoryInput:        "Please check your input and try again.",
	CategoryUnknown:      "An unexpected error occurred.",
}

// CategoryOf maps err to its user-facing category. Nil maps to "".
func CategoryOf(err error) Category {
	if err == nil {
		return ""
	}
	if c, ok := categoryByCode[GetCode(err)]; ok {
		return c
	}
	return CategoryUnknown
}

// UserMessage returns the display text for err's category.
func UserMessage(err error) string {
	return categoryMessages[CategoryOf(err)]
}

// Retryable reports whether the caller may retry the same operation unchanged.
func Retryable(err error) bool {
	switch GetCode(err) {
	case ErrCodeTransientIO, ErrCodeTimeout, ErrCodeProfileResolution:
		return true
	default:
		return false
	}
}
