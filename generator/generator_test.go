package generator

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/MrEthical07/goCred/strength"
)

func TestGenerateCoversEverySelectedClass(t *testing.T) {
	policies := []Policy{
		{Length: 4, UseUpper: true, UseLower: true, UseDigits: true, UseSpecial: true},
		{Length: 12, UseUpper: true, UseDigits: true, ExcludeSimilar: true},
		{Length: 3, UseLower: true, UseSpecial: true, ExcludeAmbiguous: true},
		{Length: 32, UseUpper: true, UseLower: true, UseDigits: true, UseSpecial: true, ExcludeSimilar: true, ExcludeAmbiguous: true},
	}

	for _, policy := range policies {
		for i := 0; i < 500; i++ {
			pw, err := Generate(policy)
			if err != nil {
				t.Fatalf("Generate(%+v) failed: %v", policy, err)
			}
			if len(pw) != policy.Length {
				t.Fatalf("expected length %d, got %d", policy.Length, len(pw))
			}
			for _, c := range policy.classes() {
				if !strings.ContainsAny(pw, c.alphabet) {
					t.Fatalf("%q missing %s class for %+v", pw, c.name, policy)
				}
			}
		}
	}
}

func TestGenerateHonoursExclusions(t *testing.T) {
	policy := Policy{Length: 64, UseUpper: true, UseLower: true, UseDigits: true, UseSpecial: true, ExcludeSimilar: true, ExcludeAmbiguous: true}
	for i := 0; i < 200; i++ {
		pw, err := Generate(policy)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if strings.ContainsAny(pw, SimilarCharacters) {
			t.Fatalf("%q contains a similar character", pw)
		}
		if strings.ContainsAny(pw, AmbiguousCharacters) {
			t.Fatalf("%q contains an ambiguous character", pw)
		}
	}
}

func TestGenerateOnlyUsesPool(t *testing.T) {
	policy := Policy{Length: 40, UseDigits: true, UseSpecial: true}
	pool := policy.Pool()
	for i := 0; i < 100; i++ {
		pw, err := Generate(policy)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		for _, r := range pw {
			if !strings.ContainsRune(pool, r) {
				t.Fatalf("%q outside pool", r)
			}
		}
	}
}

func TestPolicyPoolOrderAndFilter(t *testing.T) {
	policy := Policy{UseUpper: true, UseDigits: true, ExcludeSimilar: true}
	want := "ABCDEFGHIJKMNPQRSTUVWXYZ" + "23456789"
	if got := policy.Pool(); got != want {
		t.Fatalf("expected pool %q, got %q", want, got)
	}

	special := Policy{UseSpecial: true, ExcludeAmbiguous: true}
	if got := special.Pool(); got != "!@#$%^&*_+-=|:?" {
		t.Fatalf("unexpected filtered special pool %q", got)
	}
}

func TestGenerateInvalidPolicy(t *testing.T) {
	tests := []struct {
		name   string
		policy Policy
	}{
		{name: "no classes", policy: Policy{Length: 12}},
		{name: "no classes with exclusions", policy: Policy{Length: 12, ExcludeSimilar: true, ExcludeAmbiguous: true}},
		{name: "negative length", policy: Policy{Length: -1, UseLower: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Generate(tt.policy); !errors.Is(err, ErrInvalidPolicy) {
				t.Fatalf("expected ErrInvalidPolicy, got %v", err)
			}
			if _, err := GenerateMany(tt.policy, 3); !errors.Is(err, ErrInvalidPolicy) {
				t.Fatalf("expected ErrInvalidPolicy from GenerateMany, got %v", err)
			}
		})
	}
}

func TestGenerateZeroAndShortLength(t *testing.T) {
	pw, err := Generate(Policy{Length: 0, UseLower: true})
	if err != nil || pw != "" {
		t.Fatalf("expected empty password, got %q %v", pw, err)
	}

	pw, err = Generate(Policy{Length: 2, UseUpper: true, UseLower: true, UseDigits: true, UseSpecial: true})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(pw) != 2 {
		t.Fatalf("expected 2 characters, got %q", pw)
	}
}

func TestGenerateMany(t *testing.T) {
	policy := DefaultPolicy()
	out, err := GenerateMany(policy, 5)
	if err != nil {
		t.Fatalf("GenerateMany failed: %v", err)
	}
	if len(out) != 5 {
		t.Fatalf("expected 5 passwords, got %d", len(out))
	}
	for _, pw := range out {
		if len(pw) != policy.Length {
			t.Fatalf("unexpected length for %q", pw)
		}
		for _, c := range policy.classes() {
			if !strings.ContainsAny(pw, c.alphabet) {
				t.Fatalf("%q missing %s class", pw, c.name)
			}
		}
	}

	empty, err := GenerateMany(policy, 0)
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v %v", empty, err)
	}

	if _, err := GenerateMany(policy, -1); !errors.Is(err, ErrInvalidCount) {
		t.Fatalf("expected ErrInvalidCount, got %v", err)
	}
}

func TestGenerateModuloMappingWithFixedSource(t *testing.T) {
	src := bytes.NewReader([]byte{
		7, 0, 0, 0, // position 0 -> '7'
		17, 0, 0, 0, // position 1 -> 17 mod 10 = '7'
		0xff, 0xff, 0xff, 0xff, // position 2 -> 4294967295 mod 10 = '5'
		2, 0, 0, 0, // coverage digit -> '2'
		2, 0, 0, 0, // coverage position -> 2
	})

	pw, err := New(src).Generate(Policy{Length: 3, UseDigits: true})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if pw != "772" {
		t.Fatalf("expected 772, got %q", pw)
	}
}

func TestGenerateSourceFailure(t *testing.T) {
	_, err := New(bytes.NewReader([]byte{1, 2, 3})).Generate(DefaultPolicy())
	if err == nil {
		t.Fatal("expected error from exhausted source")
	}
}

func TestGenerateWithReport(t *testing.T) {
	report, err := New(nil).GenerateWithReport(DefaultPolicy())
	if err != nil {
		t.Fatalf("GenerateWithReport failed: %v", err)
	}
	if !reflect.DeepEqual(report.Strength, strength.Analyze(report.Password)) {
		t.Fatal("report strength must match a direct analysis")
	}
	if !report.Strength.HasUpper || !report.Strength.HasLower || !report.Strength.HasDigit {
		t.Fatalf("expected class coverage in report, got %+v", report.Strength)
	}
}
