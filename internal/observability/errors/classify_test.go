package errors

import (
	"context"
	goerrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	apperrors "github.com/workvortex/vortex-api/internal/errors"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Classify(nil))
	assert.Equal(t, "forbidden", Classify(fmt.Errorf("set status: %w", apperrors.Forbidden("not owner"))))
	assert.Equal(t, "errors_errorstring", Classify(fmt.Errorf("wrap: %w", goerrors.New("x"))))
	assert.Equal(t, "context_deadlineexceedederror", Classify(context.DeadlineExceeded))
}
