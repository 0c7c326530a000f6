package cache

import (
	"errors"
	"testing"
)

func TestCache_GetSet(t *testing.T) {
	c := New[string, int](0)

	if _, ok := c.Get("a"); ok {
		t.Fatal("Get() on empty cache returned ok")
	}

	c.Set("a", 1, 1)
	c.Set("b", 2, 1)

	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %d, %v, want 1, true", v, ok)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}

	c.Set("a", 10, 5)
	if v, _ := c.Get("a"); v != 10 {
		t.Errorf("Get(a) after replace = %d, want 10", v)
	}
	if s := c.Stats(); s.Cost != 6 {
		t.Errorf("Cost = %d, want 6", s.Cost)
	}
}

func TestCache_SetDoesNotEvict(t *testing.T) {
	c := New[int, int](2)
	for i := 0; i < 10; i++ {
		c.Set(i, i, 1)
	}
	if c.Len() != 10 {
		t.Errorf("Len() = %d, want 10 before Evict", c.Len())
	}
}

func TestCache_EvictLeastRecentlyUsed(t *testing.T) {
	c := New[int, int](3)
	for i := 0; i < 5; i++ {
		c.Set(i, i, 1)
	}
	// Touch 0 so 1 and 2 are the oldest.
	c.Get(0)

	if n := c.Evict(); n != 2 {
		t.Fatalf("Evict() = %d, want 2", n)
	}
	for _, k := range []int{1, 2} {
		if _, ok := c.Get(k); ok {
			t.Errorf("key %d survived eviction", k)
		}
	}
	for _, k := range []int{0, 3, 4} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("key %d was evicted", k)
		}
	}
	if s := c.Stats(); s.Evictions != 2 {
		t.Errorf("Evictions = %d, want 2", s.Evictions)
	}
}

func TestCache_EvictByCost(t *testing.T) {
	c := New[string, int](100)
	c.Set("big", 1, 90)
	c.Set("small", 2, 20)

	if n := c.Evict(); n != 1 {
		t.Fatalf("Evict() = %d, want 1", n)
	}
	if _, ok := c.Get("small"); !ok {
		t.Error("newest entry evicted")
	}
}

func TestCache_GetOrCreate(t *testing.T) {
	c := New[string, int](0)
	calls := 0
	create := func() (int, int, error) {
		calls++
		return 42, 1, nil
	}

	for i := 0; i < 3; i++ {
		v, err := c.GetOrCreate("k", create)
		if err != nil || v != 42 {
			t.Fatalf("GetOrCreate() = %d, %v", v, err)
		}
	}
	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}

	errBoom := errors.New("boom")
	_, err := c.GetOrCreate("bad", func() (int, int, error) { return 0, 0, errBoom })
	if !errors.Is(err, errBoom) {
		t.Errorf("err = %v, want %v", err, errBoom)
	}
	if _, ok := c.Get("bad"); ok {
		t.Error("failed creation was stored")
	}

	s := c.Stats()
	if s.Hits != 2 || s.Misses != 3 {
		t.Errorf("hits/misses = %d/%d, want 2/3", s.Hits, s.Misses)
	}
}

func TestCache_DeleteClear(t *testing.T) {
	c := New[int, int](0)
	c.Set(1, 1, 1)
	c.Set(2, 2, 1)

	if !c.Delete(1) {
		t.Error("Delete(1) = false")
	}
	if c.Delete(1) {
		t.Error("second Delete(1) = true")
	}

	c.Clear()
	if c.Len() != 0 || c.Stats().Cost != 0 {
		t.Error("Clear() left entries")
	}
	if n := c.Evict(); n != 0 {
		t.Errorf("Evict() on unlimited cache = %d", n)
	}
}
