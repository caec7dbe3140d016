package format_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/format"
	"github.com/stretchr/testify/assert"
)

func TestFormatError(t *testing.T) {
	validation := &domain.ValidationError{}
	validation.Add("email", "Invalid email")

	twoFields := &domain.ValidationError{}
	twoFields.Add("name", "Name is required")
	twoFields.Add("qty", "Quantity must be positive")

	tests := []struct {
		name     string
		in       any
		wantKind format.ErrorKind
		want     string
	}{
		{
			name:     "validation error",
			in:       validation,
			wantKind: format.KindValidation,
			want:     "Invalid email",
		},
		{
			name:     "validation error joins fields",
			in:       twoFields,
			wantKind: format.KindValidation,
			want:     "Name is required. Quantity must be positive",
		},
		{
			name:     "wrapped validation error",
			in:       fmt.Errorf("addItem: %w", validation),
			wantKind: format.KindValidation,
			want:     "Invalid email",
		},
		{
			name:     "unique constraint",
			in:       &domain.UniqueConstraintError{Target: []string{"email"}},
			wantKind: format.KindUniqueConstraint,
			want:     "Email already exists",
		},
		{
			name:     "unique constraint without target",
			in:       &domain.UniqueConstraintError{},
			wantKind: format.KindUniqueConstraint,
			want:     "Field already exists",
		},
		{
			name:     "generic error",
			in:       errors.New("connection refused"),
			wantKind: format.KindGeneric,
			want:     "connection refused",
		},
		{
			name:     "string",
			in:       "something broke",
			wantKind: format.KindString,
			want:     "something broke",
		},
		{
			name:     "unknown value is serialized",
			in:       map[string]int{"code": 7},
			wantKind: format.KindUnknown,
			want:     `{"code":7}`,
		},
		{
			name:     "nil",
			in:       nil,
			wantKind: format.KindUnknown,
			want:     "null",
		},
		{
			name:     "unserializable value falls back to fmt",
			in:       make(chan int),
			wantKind: format.KindUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantKind, format.Classify(tt.in))

			got := format.FormatError(tt.in)
			if tt.want != "" {
				assert.Equal(t, tt.want, got)
			} else {
				assert.NotEmpty(t, got)
			}
		})
	}
}

type nilUnsafeError struct{ msg string }

func (e *nilUnsafeError) Error() string { return e.msg }

type explodingJSON struct{}

func (explodingJSON) MarshalJSON() ([]byte, error) { panic("marshal exploded") }

func TestFormatError_TypedNilAndPanickingValues(t *testing.T) {
	tests := []struct {
		name     string
		in       any
		wantKind format.ErrorKind
		want     string
	}{
		{
			name:     "nil validation error",
			in:       (*domain.ValidationError)(nil),
			wantKind: format.KindGeneric,
			want:     "validation failed",
		},
		{
			name:     "nil unique constraint error",
			in:       (*domain.UniqueConstraintError)(nil),
			wantKind: format.KindGeneric,
			want:     "unique constraint violated",
		},
		{
			name:     "wrapped nil validation error",
			in:       fmt.Errorf("addItem: %w", (*domain.ValidationError)(nil)),
			wantKind: format.KindGeneric,
			want:     "addItem: validation failed",
		},
		{
			name:     "nil error whose Error method panics",
			in:       (*nilUnsafeError)(nil),
			wantKind: format.KindGeneric,
			want:     "<nil>",
		},
		{
			name:     "value whose MarshalJSON panics",
			in:       explodingJSON{},
			wantKind: format.KindUnknown,
			want:     "{}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.Equal(t, tt.wantKind, format.Classify(tt.in))
				assert.Equal(t, tt.want, format.FormatError(tt.in))
			})
		})
	}
}
