package denylist

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedisStore(t *testing.T) (*miniredis.Miniredis, *RedisStore) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, NewRedisStore(client, "")
}

func TestFingerprintIgnoresCase(t *testing.T) {
	if Fingerprint("Hunter2") != Fingerprint("hunter2") {
		t.Fatal("fingerprint must fold case")
	}
	if len(Fingerprint("")) != 64 {
		t.Fatal("expected 64 hex chars")
	}
}

func TestMemory(t *testing.T) {
	ctx := context.Background()
	m := NewMemory("Hunter2", "correcthorse")

	tests := []struct {
		candidate string
		want      bool
	}{
		{"hunter2", true},
		{"HUNTER2", true},
		{"correctHorse", true},
		{"hunter3", false},
		{"", false},
	}
	for _, tt := range tests {
		got, err := m.Contains(ctx, tt.candidate)
		if err != nil {
			t.Fatalf("Contains(%q) failed: %v", tt.candidate, err)
		}
		if got != tt.want {
			t.Fatalf("Contains(%q): expected %v, got %v", tt.candidate, tt.want, got)
		}
	}

	m.Add("HUNTER2")
	if m.Size() != 2 {
		t.Fatalf("expected case-folded duplicate to collapse, size %d", m.Size())
	}

	m.Remove("hunter2")
	if ok, _ := m.Contains(ctx, "Hunter2"); ok {
		t.Fatal("expected entry to be removed")
	}
}

func TestMemoryZeroValue(t *testing.T) {
	var m Memory
	if ok, err := m.Contains(context.Background(), "x"); ok || err != nil {
		t.Fatalf("zero value should be empty, got %v %v", ok, err)
	}
	m.Add("x")
	if m.Size() != 1 {
		t.Fatalf("expected size 1, got %d", m.Size())
	}
}

func TestReadWords(t *testing.T) {
	in := "# leaked list\n\nhunter2\n  trustno1  \r\n#comment\niloveyou"
	words, err := ReadWords(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadWords failed: %v", err)
	}
	want := []string{"hunter2", "trustno1", "iloveyou"}
	if len(words) != len(want) {
		t.Fatalf("expected %v, got %v", want, words)
	}
	for i := range want {
		if words[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, words)
		}
	}
}

func TestRedisStore(t *testing.T) {
	mr, s := newTestRedisStore(t)
	ctx := context.Background()

	if err := s.Add(ctx, "Hunter2", "trustno1"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	ok, err := s.Contains(ctx, "HUNTER2")
	if err != nil || !ok {
		t.Fatalf("expected case-insensitive hit, got %v %v", ok, err)
	}
	ok, err = s.Contains(ctx, "letmein")
	if err != nil || ok {
		t.Fatalf("expected miss, got %v %v", ok, err)
	}

	members, err := mr.Members(DefaultRedisKey)
	if err != nil {
		t.Fatalf("Members failed: %v", err)
	}
	for _, m := range members {
		if strings.Contains(strings.ToLower(m), "hunter") {
			t.Fatalf("plaintext leaked into redis: %q", m)
		}
	}

	n, err := s.Size(ctx)
	if err != nil || n != 2 {
		t.Fatalf("expected size 2, got %d %v", n, err)
	}

	if err := s.Remove(ctx, "hunter2"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if ok, _ := s.Contains(ctx, "hunter2"); ok {
		t.Fatal("expected entry to be removed")
	}
}

func TestRedisStoreAddsInBatches(t *testing.T) {
	_, s := newTestRedisStore(t)
	ctx := context.Background()

	words := make([]string, addBatchSize*2+7)
	for i := range words {
		words[i] = "leaked-" + strings.Repeat("x", i%5) + string(rune('a'+i%26)) + string(rune('A'+i/26%26)) + string(rune('0'+i/676))
	}
	if err := s.Add(ctx, words...); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	memory := NewMemory(words...)
	n, err := s.Size(ctx)
	if err != nil {
		t.Fatalf("Size failed: %v", err)
	}
	if n != int64(memory.Size()) {
		t.Fatalf("redis and memory disagree: %d vs %d", n, memory.Size())
	}
}

func TestRedisStoreUnavailable(t *testing.T) {
	mr, s := newTestRedisStore(t)
	mr.Close()

	if _, err := s.Contains(context.Background(), "x"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if err := s.Add(context.Background(), "x"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable from Add, got %v", err)
	}
}
