package edgehash

import "testing"

func TestPutGet(t *testing.T) {
	h, err := New(4)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := h.Put(3, 7, 100); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	tests := []struct {
		name   string
		p0, p1 int
		want   int
	}{
		{"forward order", 3, 7, 100},
		{"reversed order", 7, 3, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := h.Get(tt.p0, tt.p1)
			if !ok {
				t.Fatalf("Get(%d,%d) not found", tt.p0, tt.p1)
			}
			if got != tt.want {
				t.Errorf("Get(%d,%d) = %d, want %d", tt.p0, tt.p1, got, tt.want)
			}
		})
	}
}

func TestGetMissing(t *testing.T) {
	h, err := New(4)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, ok := h.Get(1, 2); ok {
		t.Error("Get() on empty hash reported found")
	}
}

func TestPutDuplicateRejected(t *testing.T) {
	h, _ := New(4)
	if err := h.Put(1, 2, 10); err != nil {
		t.Fatalf("first Put() error = %v", err)
	}
	if err := h.Put(2, 1, 20); err == nil {
		t.Error("expected error inserting a key already present (even reordered)")
	}
}

func TestPutZeroIsValidID(t *testing.T) {
	h, _ := New(4)
	if err := h.Put(0, 1, 0); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	got, ok := h.Get(1, 0)
	if !ok || got != 0 {
		t.Errorf("Get(1,0) = (%d,%v), want (0,true)", got, ok)
	}
}

func TestCollisionsDoNotLoseEntries(t *testing.T) {
	h, err := New(20)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	n := 20
	for i := 0; i < n; i++ {
		if err := h.Put(i, i+1000, i*10); err != nil {
			t.Fatalf("Put(%d) error = %v", i, err)
		}
	}
	for i := 0; i < n; i++ {
		got, ok := h.Get(i, i+1000)
		if !ok {
			t.Fatalf("Get(%d) not found after %d insertions", i, n)
		}
		if got != i*10 {
			t.Errorf("Get(%d) = %d, want %d", i, got, i*10)
		}
	}
}

func TestNewRejectsNegative(t *testing.T) {
	if _, err := New(-1); err == nil {
		t.Error("expected error for negative size hint")
	}
}

func TestFreeThenEmpty(t *testing.T) {
	h, _ := New(4)
	_ = h.Put(1, 2, 5)
	h.Free()
	if h.Len() != 0 {
		t.Errorf("Len() after Free() = %d, want 0", h.Len())
	}
	if _, ok := h.Get(1, 2); ok {
		t.Error("Get() after Free() should report not found")
	}
}
