// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/olegiv/events-explorer/internal/model"
)

// urlSegmentRegex matches ids that can be used as a single URL path segment
// and as a directory name in static exports.
var urlSegmentRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._~-]*$`)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func recordValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("urlsegment", func(fl validator.FieldLevel) bool {
			return urlSegmentRegex.MatchString(fl.Field().String())
		})
	})
	return validate
}

// Validate checks every record and the uniqueness of ids. All problems are
// reported together.
func Validate(events []model.Event) error {
	v := recordValidator()
	seen := make(map[string]int, len(events))

	var errs []error
	for i, e := range events {
		if err := v.Struct(e); err != nil {
			errs = append(errs, fmt.Errorf("record %d (id %q): %s", i, e.ID, describe(err)))
		}
		if e.ID == "" {
			continue
		}
		if first, ok := seen[e.ID]; ok {
			errs = append(errs, fmt.Errorf("%w %q at records %d and %d", ErrDuplicateID, e.ID, first, i))
			continue
		}
		seen[e.ID] = i
	}
	return errors.Join(errs...)
}

// describe flattens validator errors into "field rule" pairs.
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fe.Field()+" failed "+fe.Tag())
	}
	return strings.Join(parts, ", ")
}
