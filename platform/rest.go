package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Client talks to the platform's REST API. It implements Session.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{},
	}
}

func (c *Client) Guilds(ctx context.Context) ([]Guild, error) {
	guilds := []Guild{}
	if err := c.getJSON(ctx, c.baseURL+"/bot/guilds", &guilds); err != nil {
		return nil, err
	}
	return guilds, nil
}

func (c *Client) GuildInvites(ctx context.Context, guildID uint64) ([]Invite, error) {
	invites := []Invite{}
	url := fmt.Sprintf("%s/guilds/%d/invites", c.baseURL, guildID)
	if err := c.getJSON(ctx, url, &invites); err != nil {
		return nil, err
	}
	// The platform omits guild_id on nested invite payloads
	for n := range invites {
		invites[n].GuildID = guildID
	}
	return invites, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bot "+c.token)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	switch resp.StatusCode {
	case http.StatusOK:
		return json.NewDecoder(resp.Body).Decode(out)
	case http.StatusForbidden:
		return ErrMissingPermission
	case http.StatusNotFound:
		// Treated as "nothing there", the zero value of out stands
		return nil
	default:
		return fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	}
}
