package cache

import "testing"

func TestDiskPutGetRoundTrip(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	c, err := Open()
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	key := HashSource([]byte("DECLARE X : INTEGER\n"))
	payload := &Payload{
		Success:    true,
		PythonCode: "X = 0\n",
		Diagnostics: []DiagnosticPayload{
			{Severity: 2, Code: 1001, Message: "keyword must be uppercase", StartLine: 1, StartCol: 1},
		},
	}
	if err := c.Put(key, payload); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := c.Get(key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatalf("expected cache hit")
	}
	if got.PythonCode != payload.PythonCode {
		t.Fatalf("PythonCode = %q, want %q", got.PythonCode, payload.PythonCode)
	}
	if len(got.Diagnostics) != 1 || got.Diagnostics[0].Code != 1001 {
		t.Fatalf("unexpected diagnostics: %+v", got.Diagnostics)
	}
}

func TestDiskGetMiss(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	c, err := Open()
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	_, ok, err := c.Get(HashSource([]byte("nothing here")))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatalf("expected cache miss")
	}
}
