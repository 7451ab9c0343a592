package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/getset-tui/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "test-token", time.Second)
}

func TestReceivedMessagesContentEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/messages/received", r.URL.Path)
		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Write([]byte(`{"content":[{"id":"a","senderId":"u1","recipientId":"me","content":"Hi"}]}`))
	})

	msgs, err := c.ReceivedMessages(context.Background())
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	require.Equal(t, "a", msgs[0].ID)
}

func TestSentMessagesBareArray(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/messages/sent", r.URL.Path)
		w.Write([]byte(`[{"id":"b","senderId":"me","recipientId":"u1","content":"Hello back"}]`))
	})

	msgs, err := c.SentMessages(context.Background())
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	require.Equal(t, "b", msgs[0].ID)
}

func TestCollectionUnknownShape(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"unexpected":true}`))
	})

	msgs, err := c.ReceivedMessages(context.Background())
	require.NoError(t, err)
	require.Empty(t, msgs)
}

func TestUnauthenticatedFailsFast(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, "", time.Second)
	require.False(t, c.Authenticated())

	_, err := c.ReceivedMessages(context.Background())
	require.ErrorIs(t, err, ErrUnauthenticated)
	require.False(t, called, "no request may be issued without a token")
}

func TestMarkMessageRead(t *testing.T) {
	var gotMethod, gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
	})

	require.NoError(t, c.MarkMessageRead(context.Background(), "m1"))
	require.Equal(t, http.MethodPut, gotMethod)
	require.Equal(t, "/api/v1/messages/m1/read", gotPath)
}

func TestSendMessage(t *testing.T) {
	var body []byte
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/messages", r.URL.Path)
		body, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
	})

	err := c.SendMessage(context.Background(), models.Outgoing{
		RecipientID: "u1",
		Content:     "hello",
		PropertyID:  "p1",
	})
	require.NoError(t, err)
	require.JSONEq(t, `{"recipientId":"u1","content":"hello","propertyId":"p1"}`, string(body))
}

func TestSendMessageServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"recipient not found"}`))
	})

	err := c.SendMessage(context.Background(), models.Outgoing{RecipientID: "nope", Content: "hi"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "recipient not found")
}

func TestUnreadCount(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/messages/unread-count", r.URL.Path)
		w.Write([]byte(`{"count":7}`))
	})

	n, err := c.UnreadCount(context.Background())
	require.NoError(t, err)
	require.Equal(t, 7, n)
}

func TestLogin(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/auth/login", r.URL.Path)
		require.Empty(t, r.Header.Get("Authorization"), "login must not send a bearer token")
		w.Write([]byte(`{"accessToken":"fresh.jwt.token"}`))
	})

	token, err := c.Login(context.Background(), "a@b.c", "secret")
	require.NoError(t, err)
	require.Equal(t, "fresh.jwt.token", token)
}

func TestLoginMissingToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	_, err := c.Login(context.Background(), "a@b.c", "secret")
	require.Error(t, err)
}

func TestEnquiriesEndpointPerRole(t *testing.T) {
	var paths []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Write([]byte(`{"content":[]}`))
	})

	_, err := c.Enquiries(context.Background(), models.Identity{Role: models.RoleRenter})
	require.NoError(t, err)
	_, err = c.Enquiries(context.Background(), models.Identity{Role: models.RoleOwner})
	require.NoError(t, err)

	require.Equal(t, []string{"/api/v1/enquiries/my", "/api/v1/enquiries/received"}, paths)
}

func TestMyProperties(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/properties/owner/my-properties", r.URL.Path)
		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Write([]byte(`{"content":[{"id":"p9","title":"Cabin","pricePerMonth":800}]}`))
	})

	props, err := c.MyProperties(context.Background())
	require.NoError(t, err)
	require.Len(t, props, 1)
	require.Equal(t, "Cabin", props[0].Title)
}

func TestPing(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/properties", r.URL.Path)
		w.Write([]byte(`[]`))
	})
	require.NoError(t, c.Ping(context.Background()))
}

func TestPingUnreachable(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	err := c.Ping(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "backend unreachable")
}

func TestFavoritesRoundtrip(t *testing.T) {
	var calls []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		switch r.URL.Path {
		case "/api/v1/favorites":
			w.Write([]byte(`{"content":[{"id":"p1","title":"Loft","pricePerMonth":1200}]}`))
		case "/api/v1/favorites/check/p1":
			w.Write([]byte(`{"favorite":true}`))
		default:
			w.Write([]byte(`{}`))
		}
	})

	props, err := c.Favorites(context.Background())
	require.NoError(t, err)
	require.Len(t, props, 1)
	require.Equal(t, "Loft", props[0].Title)

	fav, err := c.IsFavorite(context.Background(), "p1")
	require.NoError(t, err)
	require.True(t, fav)

	require.NoError(t, c.AddFavorite(context.Background(), "p1"))
	require.NoError(t, c.RemoveFavorite(context.Background(), "p1"))

	require.Equal(t, []string{
		"GET /api/v1/favorites",
		"GET /api/v1/favorites/check/p1",
		"POST /api/v1/favorites/p1",
		"DELETE /api/v1/favorites/p1",
	}, calls)
}
