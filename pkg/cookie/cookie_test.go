package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/simplefw/pkg/cookie"
)

const testSecret = "this-is-a-32-byte-or-longer-key!"

// replay copies the cookies written to w onto a fresh request.
func replay(t *testing.T, w *httptest.ResponseRecorder) *http.Request {
	t.Helper()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestManagerDefaults(t *testing.T) {
	t.Parallel()

	m := cookie.New()
	assert.False(t, m.HasSecret())

	w := httptest.NewRecorder()
	m.Set(w, "theme", "dark", 60)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "/", cookies[0].Path)
	assert.True(t, cookies[0].HttpOnly)
	assert.False(t, cookies[0].Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
	assert.Equal(t, 60, cookies[0].MaxAge)
}

func TestManagerOptions(t *testing.T) {
	t.Parallel()

	m := cookie.New(
		cookie.WithDomain("example.com"),
		cookie.WithPath("/admin"),
		cookie.WithSecure(true),
		cookie.WithHTTPOnly(false),
		cookie.WithSameSite(http.SameSiteStrictMode),
	)

	w := httptest.NewRecorder()
	m.Set(w, "theme", "dark", 0)

	c := w.Result().Cookies()[0]
	assert.Equal(t, "example.com", c.Domain)
	assert.Equal(t, "/admin", c.Path)
	assert.True(t, c.Secure)
	assert.False(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
}

func TestSecret(t *testing.T) {
	t.Parallel()

	t.Run("short secret is ignored", func(t *testing.T) {
		t.Parallel()
		assert.False(t, cookie.New(cookie.WithSecret("short")).HasSecret())
	})

	t.Run("ephemeral secret fills the gap", func(t *testing.T) {
		t.Parallel()
		assert.True(t, cookie.New(cookie.WithEphemeralSecret()).HasSecret())
	})

	t.Run("ephemeral secret keeps a configured one", func(t *testing.T) {
		t.Parallel()

		configured := cookie.New(cookie.WithSecret(testSecret), cookie.WithEphemeralSecret())
		w := httptest.NewRecorder()
		require.NoError(t, configured.SetSigned(w, "id", "42", 0))

		// A manager with the same secret verifies the signature.
		got, err := cookie.New(cookie.WithSecret(testSecret)).GetSigned(replay(t, w), "id")
		require.NoError(t, err)
		assert.Equal(t, "42", got)
	})
}

func TestPlainCookies(t *testing.T) {
	t.Parallel()

	m := cookie.New()

	_, err := m.Get(httptest.NewRequest(http.MethodGet, "/", nil), "missing")
	require.ErrorIs(t, err, cookie.ErrNotFound)

	w := httptest.NewRecorder()
	m.Set(w, "lang", "fr", 0)
	got, err := m.Get(replay(t, w), "lang")
	require.NoError(t, err)
	assert.Equal(t, "fr", got)

	w = httptest.NewRecorder()
	m.Delete(w, "lang")
	require.Len(t, w.Result().Cookies(), 1)
	assert.Negative(t, w.Result().Cookies()[0].MaxAge)
}

func TestSignedCookies(t *testing.T) {
	t.Parallel()

	m := cookie.New(cookie.WithSecret(testSecret))

	w := httptest.NewRecorder()
	require.NoError(t, m.SetSigned(w, "user", "Marie", 0))

	got, err := m.GetSigned(replay(t, w), "user")
	require.NoError(t, err)
	assert.Equal(t, "Marie", got)

	t.Run("tampered value", func(t *testing.T) {
		t.Parallel()

		raw := w.Result().Cookies()[0].Value
		value, sig, _ := strings.Cut(raw, ".")
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "user", Value: value + "x." + sig})

		_, err := m.GetSigned(r, "user")
		require.ErrorIs(t, err, cookie.ErrBadSig)
	})

	t.Run("malformed value", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "user", Value: "no-signature"})

		_, err := m.GetSigned(r, "user")
		require.ErrorIs(t, err, cookie.ErrBadSig)
	})

	t.Run("other secret", func(t *testing.T) {
		t.Parallel()

		other := cookie.New(cookie.WithSecret(strings.Repeat("k", 32)))
		_, err := other.GetSigned(replay(t, w), "user")
		require.ErrorIs(t, err, cookie.ErrBadSig)
	})

	t.Run("no secret", func(t *testing.T) {
		t.Parallel()

		plain := cookie.New()
		require.ErrorIs(t, plain.SetSigned(httptest.NewRecorder(), "user", "x", 0), cookie.ErrNoSecret)
		_, err := plain.GetSigned(replay(t, w), "user")
		require.ErrorIs(t, err, cookie.ErrNoSecret)
	})
}

func TestEncryptedCookies(t *testing.T) {
	t.Parallel()

	m := cookie.New(cookie.WithSecret(testSecret))

	w := httptest.NewRecorder()
	require.NoError(t, m.SetEncrypted(w, "cart", "catégorie=3", 0))
	assert.NotContains(t, w.Result().Cookies()[0].Value, "cat")

	got, err := m.GetEncrypted(replay(t, w), "cart")
	require.NoError(t, err)
	assert.Equal(t, "catégorie=3", got)

	// Each write uses a fresh nonce.
	w2 := httptest.NewRecorder()
	require.NoError(t, m.SetEncrypted(w2, "cart", "catégorie=3", 0))
	assert.NotEqual(t, w.Result().Cookies()[0].Value, w2.Result().Cookies()[0].Value)

	t.Run("garbage", func(t *testing.T) {
		t.Parallel()

		for _, value := range []string{"!!!", "YQ", strings.Repeat("A", 80)} {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.AddCookie(&http.Cookie{Name: "cart", Value: value})
			_, err := m.GetEncrypted(r, "cart")
			require.ErrorIs(t, err, cookie.ErrDecrypt, value)
		}
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()

		_, err := m.GetEncrypted(httptest.NewRequest(http.MethodGet, "/", nil), "cart")
		require.ErrorIs(t, err, cookie.ErrNotFound)
	})

	t.Run("no secret", func(t *testing.T) {
		t.Parallel()

		_, err := cookie.New().GetEncrypted(replay(t, w), "cart")
		require.ErrorIs(t, err, cookie.ErrNoSecret)
	})
}
