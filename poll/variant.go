// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poll

import "fmt"

// Kind tags the poll variant.
type Kind string

const (
	KindSingleChoice   Kind = "single_choice"
	KindMultipleChoice Kind = "multiple_choice"
	KindYesNo          Kind = "yes_no"
)

// ParseKind validates a persisted or user supplied poll type.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindSingleChoice, KindMultipleChoice, KindYesNo:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidKind, s)
}

// Variant is the tagged union of poll types. MaxSelect is only
// meaningful for KindMultipleChoice.
type Variant struct {
	Kind      Kind
	MaxSelect int
}

// SingleChoice returns the single choice variant.
func SingleChoice() Variant { return Variant{Kind: KindSingleChoice} }

// YesNo returns the yes/no variant.
func YesNo() Variant { return Variant{Kind: KindYesNo} }

// MultipleChoice returns a multiple choice variant with max clamped to
// [2, optionCount].
func MultipleChoice(max, optionCount int) Variant {
	return Variant{Kind: KindMultipleChoice, MaxSelect: clampMaxSelect(max, optionCount)}
}

func clampMaxSelect(max, optionCount int) int {
	if max > optionCount {
		max = optionCount
	}
	if max < 2 {
		max = 2
	}
	return max
}

// MaxSelectableOptions returns how many options one ballot may select.
func (v Variant) MaxSelectableOptions() int {
	if v.Kind == KindMultipleChoice {
		return v.MaxSelect
	}
	return 1
}

// AllowsMultipleSelections reports whether a ballot may hold more than one option.
func (v Variant) AllowsMultipleSelections() bool {
	return v.Kind == KindMultipleChoice
}

// DisplayName is the human label for the variant.
func (v Variant) DisplayName() string {
	switch v.Kind {
	case KindMultipleChoice:
		return fmt.Sprintf("Multiple Choice Poll (up to %d selections)", v.MaxSelect)
	case KindYesNo:
		return "Yes/No Poll"
	default:
		return "Single Choice Poll"
	}
}

// validate checks a non-empty selection against the variant rules.
// Cardinality and duplicates fail with ErrInvalidSelection, ids not in
// options fail with ErrOptionNotFound.
func (v Variant) validate(ids []string, options []Option) error {
	switch v.Kind {
	case KindMultipleChoice:
		if len(ids) < 1 || len(ids) > v.MaxSelect {
			return fmt.Errorf("%w: %d selected, between 1 and %d allowed", ErrInvalidSelection, len(ids), v.MaxSelect)
		}
	default:
		if len(ids) != 1 {
			return fmt.Errorf("%w: exactly one option must be selected", ErrInvalidSelection)
		}
	}

	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return fmt.Errorf("%w: option %q selected twice", ErrInvalidSelection, id)
		}
		seen[id] = true
	}

	for _, id := range ids {
		if !hasOption(options, id) {
			return fmt.Errorf("%w: %q", ErrOptionNotFound, id)
		}
	}
	return nil
}

func hasOption(options []Option, id string) bool {
	for _, o := range options {
		if o.ID == id {
			return true
		}
	}
	return false
}
