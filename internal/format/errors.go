package format

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/nikolayk812/storefront-cart/internal/domain"
)

// ErrorKind is the closed set of error shapes FormatError knows how to present.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindValidation
	KindUniqueConstraint
	KindGeneric
	KindString
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "ValidationError"
	case KindUniqueConstraint:
		return "UniqueConstraintError"
	case KindGeneric:
		return "GenericError"
	case KindString:
		return "StringError"
	default:
		return "Unknown"
	}
}

// Classify reports which shape err has. Wrapped domain errors are found
// through the error chain.
func Classify(err any) ErrorKind {
	switch v := err.(type) {
	case nil:
		return KindUnknown
	case string:
		return KindString
	case error:
		if _, ok := asValidation(v); ok {
			return KindValidation
		}
		if _, ok := asUniqueConstraint(v); ok {
			return KindUniqueConstraint
		}
		return KindGeneric
	default:
		return KindUnknown
	}
}

// FormatError extracts a message fit for showing to a shopper. It never panics.
func FormatError(err any) string {
	switch Classify(err) {
	case KindValidation:
		verr, _ := asValidation(err.(error))
		messages := make([]string, 0, len(verr.Fields))
		for _, f := range verr.Fields {
			messages = append(messages, f.Message)
		}
		return strings.Join(messages, ". ")

	case KindUniqueConstraint:
		uerr, _ := asUniqueConstraint(err.(error))
		field := "Field"
		if len(uerr.Target) > 0 && uerr.Target[0] != "" {
			field = uerr.Target[0]
		}
		return capitalize(field) + " already exists"

	case KindGeneric:
		return safely(err.(error).Error, err)

	case KindString:
		return err.(string)

	default:
		return safely(func() string {
			b, jerr := json.Marshal(err)
			if jerr != nil {
				return fmt.Sprintf("%v", err)
			}
			return string(b)
		}, err)
	}
}

// asValidation finds a non-nil *domain.ValidationError in err's chain.
func asValidation(err error) (verr *domain.ValidationError, ok bool) {
	defer func() {
		if recover() != nil {
			verr, ok = nil, false
		}
	}()
	ok = errors.As(err, &verr) && verr != nil
	return verr, ok
}

func asUniqueConstraint(err error) (uerr *domain.UniqueConstraintError, ok bool) {
	defer func() {
		if recover() != nil {
			uerr, ok = nil, false
		}
	}()
	ok = errors.As(err, &uerr) && uerr != nil
	return uerr, ok
}

// safely runs message, falling back to fmt's rendering of v when a foreign
// Error or MarshalJSON method panics, as typed nil pointers often do.
func safely(message func() string, v any) (out string) {
	defer func() {
		if recover() != nil {
			out = fmt.Sprintf("%v", v)
		}
	}()
	return message()
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
