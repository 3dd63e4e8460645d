package commands

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseTaskRefs_Single(t *testing.T) {
	refs, err := ParseTaskRefs([]string{"5"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(refs, []int{5}) {
		t.Errorf("expected [5], got %v", refs)
	}
}

func TestParseTaskRefs_SeveralKeepOrderAndDedupe(t *testing.T) {
	refs, err := ParseTaskRefs([]string{"3", "1", "3", "12"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(refs, []int{3, 1, 12}) {
		t.Errorf("expected [3 1 12], got %v", refs)
	}
}

func TestParseTaskRefs_Empty(t *testing.T) {
	_, err := ParseTaskRefs(nil)
	if !errors.Is(err, ErrTaskRefRequired) {
		t.Errorf("expected ErrTaskRefRequired, got %v", err)
	}
}

func TestParseTaskRefs_Invalid(t *testing.T) {
	tests := []struct {
		name string
		arg  string
		want string
	}{
		{"letters", "abc", "invalid task reference: abc"},
		{"mixed", "a1", "invalid task reference: a1"},
		{"negative", "-1", "invalid task reference: -1"},
		{"unicode digits", "١٢", "invalid task reference: ١٢"},
		{"zero", "0", "task number out of range: 0"},
		{"overflow", "99999999999999999999999", "invalid task reference: 99999999999999999999999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTaskRefs([]string{tt.arg})
			if err == nil {
				t.Fatal("expected error")
			}
			var uerr *userError
			if !errors.As(err, &uerr) {
				t.Errorf("expected a user error, got %T", err)
			}
			if err.Error() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, err.Error())
			}
		})
	}
}

func TestParseTaskRef_ExactlyOne(t *testing.T) {
	ref, err := ParseTaskRef([]string{"7"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref != 7 {
		t.Errorf("expected 7, got %d", ref)
	}

	if _, err := ParseTaskRef([]string{"1", "2"}); err == nil {
		t.Error("expected error for two refs")
	}
}

func TestIsAllDigits(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"", false},
		{"0", true},
		{"123", true},
		{"12a", false},
		{" 1", false},
	}
	for _, tt := range tests {
		if got := isAllDigits(tt.input); got != tt.want {
			t.Errorf("isAllDigits(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
