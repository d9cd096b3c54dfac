package identity

import "testing"

func TestUserAgentRotation(t *testing.T) {
	r := NewRotator([]string{"ua-1", "ua-2"}, nil)

	got := []string{r.UserAgent(), r.UserAgent(), r.UserAgent()}
	want := []string{"ua-1", "ua-2", "ua-1"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDefaultUserAgents(t *testing.T) {
	r := NewRotator(nil, nil)
	if r.UserAgent() == "" {
		t.Error("expected a built-in user agent")
	}
}

func TestProxyRotation(t *testing.T) {
	r := NewRotator(nil, []string{"http://p1:8000", "http://p2:8000"})
	if got := r.Proxy(); got != "http://p1:8000" {
		t.Errorf("first proxy = %q", got)
	}
	if got := r.Proxy(); got != "http://p2:8000" {
		t.Errorf("second proxy = %q", got)
	}
	if got := r.Proxy(); got != "http://p1:8000" {
		t.Errorf("rotation should wrap, got %q", got)
	}
}

func TestNoProxies(t *testing.T) {
	if got := NewRotator(nil, nil).Proxy(); got != "" {
		t.Errorf("expected empty proxy, got %q", got)
	}
}
