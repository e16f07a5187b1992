package ipc

import (
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"
)

// Client provides RPC access to the daemon.
type Client struct {
	conn   net.Conn
	client *rpc.Client
}

// Dial connects to the IPC server at the given socket path.
func Dial(path string) (*Client, error) {
	conn, err := net.DialTimeout("unix", path, 2*time.Second)
	if err != nil {
		return nil, err
	}
	rpcClient := rpc.NewClientWithCodec(jsonrpc.NewClientCodec(conn))
	return &Client{conn: conn, client: rpcClient}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if c.client != nil {
		_ = c.client.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Status retrieves the daemon status.
func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.client.Call("Pokedex.Status", StatusRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Stop requests the daemon to shut down.
func (c *Client) Stop() (*StopResponse, error) {
	var resp StopResponse
	if err := c.client.Call("Pokedex.Stop", StopRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Show resolves a record by numeric identifier or name.
func (c *Client) Show(ref string) (*ShowResponse, error) {
	var resp ShowResponse
	if err := c.client.Call("Pokedex.Show", ShowRequest{Ref: ref}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// List returns cached records matching the filter.
func (c *Client) List(req ListRequest) (*ListResponse, error) {
	var resp ListResponse
	if err := c.client.Call("Pokedex.List", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// FavouriteToggle flips favourite membership for a cached record.
func (c *Client) FavouriteToggle(id int64) (*FavouriteToggleResponse, error) {
	var resp FavouriteToggleResponse
	if err := c.client.Call("Pokedex.FavouriteToggle", FavouriteToggleRequest{ID: id}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Favourites returns favourite records in identifier order.
func (c *Client) Favourites() (*FavouritesResponse, error) {
	var resp FavouritesResponse
	if err := c.client.Call("Pokedex.Favourites", FavouritesRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Press injects a logical button press.
func (c *Client) Press(button string) (*PressResponse, error) {
	var resp PressResponse
	if err := c.client.Call("Pokedex.Press", PressRequest{Button: button}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PopulateStart launches a background populate job.
func (c *Client) PopulateStart() (*PopulateStartResponse, error) {
	var resp PopulateStartResponse
	if err := c.client.Call("Pokedex.PopulateStart", PopulateStartRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DatabaseHealth retrieves detailed database diagnostics.
func (c *Client) DatabaseHealth() (*DatabaseHealthResponse, error) {
	var resp DatabaseHealthResponse
	if err := c.client.Call("Pokedex.DatabaseHealth", DatabaseHealthRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TestNotification triggers a notification test via the daemon.
func (c *Client) TestNotification() (*TestNotificationResponse, error) {
	var resp TestNotificationResponse
	if err := c.client.Call("Pokedex.TestNotification", TestNotificationRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
