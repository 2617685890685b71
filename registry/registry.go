package registry

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/calvinmclean/babyapi"
)

// Board is a camera board that announced its stream
type Board struct {
	babyapi.DefaultResource

	Name      string    `json:"name"`
	StreamURL string    `json:"stream_url"`
	Session   string    `json:"session,omitempty"`
	LastEvent string    `json:"last_event,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Board) Bind(r *http.Request) error {
	err := b.DefaultResource.Bind(r)
	if err != nil {
		return err
	}

	if r.Method == http.MethodPatch {
		return nil
	}

	if b.Name == "" {
		return errors.New("missing required name field")
	}

	return nil
}

// Patch updates the fields that are set on newBoard
func (b *Board) Patch(newBoard *Board) *babyapi.ErrResponse {
	if newBoard.Name != "" {
		b.Name = newBoard.Name
	}
	if newBoard.StreamURL != "" {
		b.StreamURL = newBoard.StreamURL
	}
	if newBoard.Session != "" {
		b.Session = newBoard.Session
	}
	if newBoard.LastEvent != "" {
		b.LastEvent = newBoard.LastEvent
	}
	if !newBoard.UpdatedAt.IsZero() {
		b.UpdatedAt = newBoard.UpdatedAt
	}
	return nil
}

// NewAPI creates the /boards API
func NewAPI() *babyapi.API[*Board] {
	return babyapi.NewAPI("Boards", "/boards", func() *Board { return &Board{} })
}

// Client announces boards to a registry. A board that was already announced by this Client is patched
// instead of created again
type Client struct {
	client *babyapi.Client[*Board]

	mtx sync.Mutex
	ids map[string]string
}

func NewClient(addr string) *Client {
	return &Client{
		client: babyapi.NewClient[*Board](addr, "/boards"),
		ids:    map[string]string{},
	}
}

// Announce records the stream URL of the named board
func (c *Client) Announce(ctx context.Context, name, streamURL, session string) (string, error) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	board := &Board{
		Name:      name,
		StreamURL: streamURL,
		Session:   session,
		LastEvent: "CameraReady",
		UpdatedAt: time.Now(),
	}

	if id, ok := c.ids[name]; ok {
		_, err := c.client.Patch(ctx, id, board)
		if err != nil {
			return "", err
		}
		return id, nil
	}

	resp, err := c.client.Post(ctx, board)
	if err != nil {
		return "", err
	}

	id := resp.Data.GetID()
	c.ids[name] = id

	return id, nil
}

// Get returns a board by ID
func (c *Client) Get(ctx context.Context, id string) (*Board, error) {
	resp, err := c.client.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}
