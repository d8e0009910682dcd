package api

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/ledhub/ledhub-core/internal/auth"
)

func TestLogin_Success(t *testing.T) {
	ts := newTestServer(t)
	ts.createUser(t, "alice", "secret123", auth.RoleUser)

	cookie := ts.login(t, "alice", "secret123")

	rec := ts.get("/", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET / with session = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "alice") {
		t.Error("home page does not show the signed-in username")
	}
}

func TestLogin_SameMessageForUnknownUserAndWrongPassword(t *testing.T) {
	ts := newTestServer(t)
	ts.createUser(t, "alice", "secret123", auth.RoleUser)

	attempt := func(username, password string) string {
		form := url.Values{"username": {username}, "password": {password}}
		rec := ts.postForm("/login", form)
		if rec.Code != http.StatusOK {
			t.Fatalf("failed login = %d, want 200 with form re-render", rec.Code)
		}
		return rec.Body.String()
	}

	wrongPassword := attempt("alice", "nope")
	unknownUser := attempt("mallory", "nope")

	if !strings.Contains(wrongPassword, loginFailedMessage) {
		t.Error("wrong password response missing generic failure message")
	}
	if !strings.Contains(unknownUser, loginFailedMessage) {
		t.Error("unknown user response missing generic failure message")
	}
	// Neither response may hint which part was wrong.
	for _, body := range []string{wrongPassword, unknownUser} {
		for _, leak := range []string{"user not found", "no such user", "wrong password"} {
			if strings.Contains(strings.ToLower(body), leak) {
				t.Errorf("login failure leaks %q", leak)
			}
		}
	}
}

func TestLogin_PageRedirectsWhenSignedIn(t *testing.T) {
	ts := newTestServer(t)
	ts.createUser(t, "alice", "secret123", auth.RoleUser)
	cookie := ts.login(t, "alice", "secret123")

	rec := ts.get("/login", cookie)
	if rec.Code != http.StatusSeeOther {
		t.Errorf("GET /login with session = %d, want redirect", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("redirect Location = %q, want /", loc)
	}
}

func TestProtectedPages_RedirectWithoutSession(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/", "/history", "/change-password", "/manage-users"} {
		rec := ts.get(path)
		if rec.Code != http.StatusSeeOther {
			t.Errorf("GET %s without session = %d, want redirect", path, rec.Code)
			continue
		}
		if loc := rec.Header().Get("Location"); loc != "/login" {
			t.Errorf("GET %s redirects to %q, want /login", path, loc)
		}
	}
}

func TestSession_TamperedCookieRejected(t *testing.T) {
	ts := newTestServer(t)
	ts.createUser(t, "alice", "secret123", auth.RoleUser)
	cookie := ts.login(t, "alice", "secret123")

	forged := &http.Cookie{Name: sessionCookieName, Value: cookie.Value + "x"}
	rec := ts.get("/", forged)
	if rec.Code != http.StatusSeeOther {
		t.Errorf("GET / with tampered cookie = %d, want redirect", rec.Code)
	}
}

func TestLogout_InvalidatesSession(t *testing.T) {
	ts := newTestServer(t)
	ts.createUser(t, "alice", "secret123", auth.RoleUser)
	cookie := ts.login(t, "alice", "secret123")

	rec := ts.get("/logout", cookie)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("logout = %d, want redirect", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("logout redirects to %q, want /login", loc)
	}

	// The server-side session row is gone, so the old cookie is dead
	// even if the browser kept it.
	rec = ts.get("/", cookie)
	if rec.Code != http.StatusSeeOther {
		t.Errorf("GET / with stale cookie = %d, want redirect", rec.Code)
	}
}

func TestChangePassword(t *testing.T) {
	t.Run("mismatched confirmation", func(t *testing.T) {
		ts := newTestServer(t)
		ts.createUser(t, "alice", "oldpass", auth.RoleUser)
		cookie := ts.login(t, "alice", "oldpass")

		rec := ts.postForm("/change-password", url.Values{
			"old_password":     {"oldpass"},
			"new_password":     {"newpass"},
			"confirm_password": {"different"},
		}, cookie)

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("status = %d, want redirect", rec.Code)
		}
		if loc := rec.Header().Get("Location"); loc != "/change-password" {
			t.Errorf("redirect to %q, want /change-password", loc)
		}
		if flashCookie(rec) == nil {
			t.Error("no flash message set")
		}

		// Password unchanged.
		ts.login(t, "alice", "oldpass")
	})

	t.Run("wrong current password", func(t *testing.T) {
		ts := newTestServer(t)
		ts.createUser(t, "alice", "oldpass", auth.RoleUser)
		cookie := ts.login(t, "alice", "oldpass")

		rec := ts.postForm("/change-password", url.Values{
			"old_password":     {"wrong"},
			"new_password":     {"newpass"},
			"confirm_password": {"newpass"},
		}, cookie)

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("status = %d, want redirect", rec.Code)
		}
		if loc := rec.Header().Get("Location"); loc != "/change-password" {
			t.Errorf("redirect to %q, want /change-password", loc)
		}
		ts.login(t, "alice", "oldpass")
	})

	t.Run("success", func(t *testing.T) {
		ts := newTestServer(t)
		ts.createUser(t, "alice", "oldpass", auth.RoleUser)
		cookie := ts.login(t, "alice", "oldpass")

		rec := ts.postForm("/change-password", url.Values{
			"old_password":     {"oldpass"},
			"new_password":     {"newpass"},
			"confirm_password": {"newpass"},
		}, cookie)

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("status = %d, want redirect", rec.Code)
		}
		if loc := rec.Header().Get("Location"); loc != "/" {
			t.Errorf("redirect to %q, want /", loc)
		}

		// New password works.
		ts.login(t, "alice", "newpass")
	})
}

func TestHistoryPage_RendersEntries(t *testing.T) {
	ts := newTestServer(t)
	ts.createUser(t, "alice", "secret123", auth.RoleUser)
	cookie := ts.login(t, "alice", "secret123")

	ts.postJSON("/report-status", `{"status":"ON"}`)
	ts.postJSON("/report-status", `{"status":"OFF"}`)

	rec := ts.get("/history", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("history = %d, want 200", rec.Code)
	}

	body := rec.Body.String()
	onIdx := strings.Index(body, `class="status-on"`)
	offIdx := strings.Index(body, `class="status-off"`)
	if onIdx < 0 || offIdx < 0 {
		t.Fatal("history page missing recorded statuses")
	}
	// OFF was reported last, so it renders first.
	if offIdx > onIdx {
		t.Error("history not rendered newest first")
	}
}
