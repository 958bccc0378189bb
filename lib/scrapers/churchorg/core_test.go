package churchorg

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoginFailed(t *testing.T) {
	// a failed sign-in echoes the form back
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == loginPath {
			w.Write([]byte(`<form><input name="IDToken1"><input name="IDToken2"></form>`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client, err := NewClient(context.Background(), ClientOptions{BaseUrl: srv.URL})
	if err != nil {
		t.Fatal(err)
	}
	err = client.Login(context.Background(), "user", "bad-password")
	require.ErrorIs(t, err, ErrLoginFailed)
}

func TestEndpointUrlSubstitution(t *testing.T) {
	client := &Client{
		UnitNumber: "12345",
		endpoints: map[string]string{
			"unit-members-and-callings": "https://portal.example.com/mobile/members?unit=%@",
		},
	}

	link, err := client.endpointUrl("unit-members-and-callings")
	require.NoError(t, err)
	require.Equal(t, "https://portal.example.com/mobile/members?unit=12345", link)

	_, err = client.endpointUrl("no-such-endpoint")
	require.ErrorContains(t, err, "no-such-endpoint")
}
