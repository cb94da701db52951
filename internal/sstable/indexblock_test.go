package sstable

import "testing"

// S4: index routing.
func TestIndexRouting(t *testing.T) {
	b := NewIndexBlockBuilder()
	dividers := []struct {
		key    string
		handle BlockHandle
	}{
		{"apple", BlockHandle{Offset: 0, Size: 10}},
		{"banana", BlockHandle{Offset: 10, Size: 10}},
		{"carrot", BlockHandle{Offset: 20, Size: 10}},
	}
	for _, d := range dividers {
		if err := b.Add([]byte(d.key), d.handle); err != nil {
			t.Fatalf("Add(%q): %v", d.key, err)
		}
	}
	r, err := NewIndexBlockReader(b.Finish())
	if err != nil {
		t.Fatalf("NewIndexBlockReader: %v", err)
	}

	if _, ok, err := r.Find([]byte("aardvark")); err != nil || ok {
		t.Fatalf("Find(aardvark) = (%v, %v), want before-first", ok, err)
	}
	cases := []struct {
		target string
		want   BlockHandle
	}{
		{"apricot", dividers[0].handle},
		{"blueberry", dividers[1].handle},
		{"zzz", dividers[2].handle},
	}
	for _, c := range cases {
		got, ok, err := r.Find([]byte(c.target))
		if err != nil || !ok || got != c.want {
			t.Fatalf("Find(%q) = (%+v, %v, %v), want (%+v, true, nil)", c.target, got, ok, err, c.want)
		}
	}
}

func TestIndexBuilderOutOfOrder(t *testing.T) {
	b := NewIndexBlockBuilder()
	_ = b.Add([]byte("m"), BlockHandle{})
	if err := b.Add([]byte("a"), BlockHandle{}); err != ErrOutOfOrder {
		t.Fatalf("Add(out-of-order) = %v, want ErrOutOfOrder", err)
	}
}

func TestIndexEmptyReturnsBeforeFirst(t *testing.T) {
	b := NewIndexBlockBuilder()
	r, err := NewIndexBlockReader(b.Finish())
	if err != nil {
		t.Fatalf("NewIndexBlockReader: %v", err)
	}
	if _, ok, err := r.Find([]byte("anything")); err != nil || ok {
		t.Fatalf("Find on empty index = (%v, %v), want (false, nil)", ok, err)
	}
}

func TestIndexReaderRejectsTruncatedTrailer(t *testing.T) {
	b := NewIndexBlockBuilder()
	_ = b.Add([]byte("a"), BlockHandle{Offset: 1, Size: 2})
	block := b.Finish()
	if _, err := NewIndexBlockReader(block[:len(block)-1]); err != ErrCorrupt {
		t.Fatalf("NewIndexBlockReader(truncated) = %v, want ErrCorrupt", err)
	}
}
