package events

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialTestHub(t *testing.T, hub *Hub, userID int64) *websocket.Conn {
	t.Helper()

	up := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Register(userID, conn)
	}))
	t.Cleanup(srv.Close)

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.Eventually(t, func() bool {
		return hub.OnlineCount() == 1
	}, time.Second, 10*time.Millisecond)

	return client
}

// Many workflow requests may broadcast to the same reviewer socket at
// once; every frame must arrive intact.
func TestHub_ConcurrentPublish(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	client := dialTestHub(t, hub, 1)

	const publishers = 16
	const perPublisher = 50

	var wg sync.WaitGroup
	for i := 0; i < publishers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perPublisher; j++ {
				hub.Publish(New(TypeDocumentReviewed, map[string]int{"doc": j}))
			}
		}()
	}

	require.NoError(t, client.SetReadDeadline(time.Now().Add(5*time.Second)))
	for received := 0; received < publishers*perPublisher; received++ {
		var ev Event
		require.NoError(t, client.ReadJSON(&ev))
		assert.Equal(t, TypeDocumentReviewed, ev.Type)
	}
	wg.Wait()

	assert.Equal(t, 1, hub.OnlineCount())
}

func TestHub_PublishDropsDeadConnection(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	client := dialTestHub(t, hub, 1)
	require.NoError(t, client.Close())

	require.Eventually(t, func() bool {
		hub.Publish(New(TypeProductReviewed, nil))
		return hub.OnlineCount() == 0
	}, time.Second, 10*time.Millisecond)
}

func TestHub_RegisterReplacesConnection(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	_ = dialTestHub(t, hub, 1)
	second := dialTestHub(t, hub, 1)

	assert.Equal(t, 1, hub.OnlineCount())

	hub.Publish(New(TypeVendorStatusChanged, nil))
	require.NoError(t, second.SetReadDeadline(time.Now().Add(time.Second)))
	var ev Event
	require.NoError(t, second.ReadJSON(&ev))
	assert.Equal(t, TypeVendorStatusChanged, ev.Type)
}
