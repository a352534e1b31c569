package internal

import (
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studynotes/studynotes/internal/config"
	"github.com/studynotes/studynotes/internal/filestore"
	"github.com/studynotes/studynotes/internal/instrumentation"
)

func TestRouterSetup(t *testing.T) {
	diskStore, err := filestore.NewDiskStore(t.TempDir())
	require.NoError(t, err)

	s := &Server{
		config:    &config.Config{},
		diskStore: diskStore,
		instr:     instrumentation.NewTestInstrumentation(),
	}
	r := s.routerSetup()
	require.NotNil(t, r)

	cases := []struct {
		method    string
		path      string
		routeName string
	}{
		{method: "GET", path: "/api/notes", routeName: "list-notes"},
		{method: "POST", path: "/api/notes", routeName: "new-note"},
		{method: "DELETE", path: "/api/notes/11", routeName: "remove-note"},
		{method: "GET", path: "/api/notes/1st%20Paper/3", routeName: "list-chapter-notes"},
		{method: "GET", path: "/api/chapters/2nd%20Paper", routeName: "list-chapters"},
		{method: "GET", path: "/uploads/image-123-000000001.jpg", routeName: "get-upload"},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, "http://studynotes.test"+tc.path, nil)
		var match mux.RouteMatch
		require.True(t, r.Match(req, &match), "no route for [%s %s]", tc.method, tc.path)
		assert.Equal(t, tc.routeName, match.Route.GetName())
	}
}
