package matchid

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lox/shadowgov/internal/randutil"
)

func TestGenerate(t *testing.T) {
	id := Generate()

	if len(id) != Length {
		t.Errorf("expected %d characters, got %d", Length, len(id))
	}
	if err := Validate(id); err != nil {
		t.Errorf("generated ID failed validation: %v", err)
	}
}

func TestGenerateUnique(t *testing.T) {
	gen := NewGenerator(randutil.New(1))
	ids := make(map[string]bool)

	for i := 0; i < 200; i++ {
		id := gen.Generate()
		if ids[id] {
			t.Errorf("duplicate ID generated: %s", id)
		}
		ids[id] = true
	}
}

func TestGenerateTimeSorted(t *testing.T) {
	var ids []string
	for i := 0; i < 10; i++ {
		ids = append(ids, Generate())
		time.Sleep(time.Millisecond)
	}

	for i := 1; i < len(ids); i++ {
		if strings.Compare(ids[i-1], ids[i]) >= 0 {
			t.Errorf("IDs not sorted: %s >= %s", ids[i-1], ids[i])
		}
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	gen := NewGenerator(randutil.New(99))
	for i := 0; i < 20; i++ {
		id := gen.Generate()
		u, err := Decode(id)
		if err != nil {
			t.Fatalf("Decode(%s): %v", id, err)
		}
		if u.Version() != 7 {
			t.Errorf("expected version 7, got %d", u.Version())
		}
		if Encode(u) != id {
			t.Errorf("round trip mismatch: %s -> %s", id, Encode(u))
		}
	}

	if got := Encode(uuid.UUID{}); got != strings.Repeat("0", Length) {
		t.Errorf("zero uuid encoded as %s", got)
	}
	var full uuid.UUID
	for i := range full {
		full[i] = 0xff
	}
	if got := Encode(full); got != "7"+strings.Repeat("z", Length-1) {
		t.Errorf("max uuid encoded as %s", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"valid ID", "01h5n0et5q6mt3v7ms1234abcd", false},
		{"too short", "01h5n0et5q6mt3v7ms123", true},
		{"too long", "01h5n0et5q6mt3v7ms1234abcdef", true},
		{"first char too high", "81h5n0et5q6mt3v7ms1234abcd", true},
		{"invalid character", "01h5n0et5q6mt3v7ms1234abci", true},
		{"uppercase not allowed", "01H5N0ET5Q6MT3V7MS1234ABCD", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
