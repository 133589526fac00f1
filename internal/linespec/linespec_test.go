package linespec

import (
	"errors"
	"reflect"
	"testing"
)

func TestResolveSingle(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		fileLen  int
		expected []int
		wantErr  error
	}{
		{"first line", 1, 5, []int{1}, nil},
		{"last line", 5, 5, []int{5}, nil},
		{"zero", 0, 5, nil, ErrOutOfRange},
		{"past end", 6, 5, nil, ErrOutOfRange},
		{"negative", -1, 5, nil, ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Single(tt.n).Resolve(tt.fileLen)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Resolve = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestResolveLines(t *testing.T) {
	tests := []struct {
		name     string
		lines    []int
		fileLen  int
		expected []int
		wantErr  error
	}{
		{"sorted ascending", []int{4, 1, 3}, 5, []int{1, 3, 4}, nil},
		{"duplicates collapsed", []int{2, 2, 2}, 5, []int{2}, nil},
		{"one out of range fails all", []int{1, 6}, 5, nil, ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Lines(tt.lines).Resolve(tt.fileLen)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Resolve = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestResolveRange(t *testing.T) {
	tests := []struct {
		name     string
		a, b     int
		fileLen  int
		expected []int
		wantErr  error
	}{
		{"inclusive endpoints", 2, 4, 5, []int{2, 3, 4}, nil},
		{"single line range", 3, 3, 5, []int{3}, nil},
		{"reversed", 4, 2, 5, nil, ErrInvalidRange},
		{"start below one", 0, 3, 5, nil, ErrInvalidRange},
		{"end past file", 1, 6, 5, nil, ErrInvalidRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Range(tt.a, tt.b).Resolve(tt.fileLen)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Resolve = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestResolveAll(t *testing.T) {
	got, err := All().Resolve(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Errorf("Resolve = %v, want [1 2 3]", got)
	}

	// An empty file resolves to the empty sequence, not an error.
	got, err = All().Resolve(0)
	if err != nil {
		t.Fatalf("unexpected error on empty file: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Resolve on empty file = %v, want empty", got)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		fileLen int
		want    []int
		wantErr error
	}{
		{"float64 number", float64(3), 5, []int{3}, nil},
		{"int number", 2, 5, []int{2}, nil},
		{"numeric string", "4", 5, []int{4}, nil},
		{"all literal", "all", 3, []int{1, 2, 3}, nil},
		{"all uppercase", "ALL", 2, []int{1, 2}, nil},
		{"range string", "1-3", 5, []int{1, 2, 3}, nil},
		{"range with spaces", " 2 - 4 ", 5, []int{2, 3, 4}, nil},
		{"list of numbers", []any{float64(3), float64(1)}, 5, []int{1, 3}, nil},
		{"malformed range", "1-x", 5, nil, ErrInvalidRange},
		{"garbage string", "abc", 5, nil, ErrInvalidSpec},
		{"empty list", []any{}, 5, nil, ErrInvalidSpec},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := Parse(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got, err := spec.Resolve(tt.fileLen)
			if err != nil {
				t.Fatalf("unexpected resolve error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("resolved = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseNilIsZero(t *testing.T) {
	spec, err := Parse(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !spec.IsZero() {
		t.Error("Parse(nil) should produce the zero spec")
	}
}
