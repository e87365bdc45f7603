package platforms

import (
	"context"
	"encoding/json"
	"fmt"
)

// FetchGithub fetches a public GitHub user profile, passed through opaque.
func (c *Client) FetchGithub(ctx context.Context, username string) (json.RawMessage, error) {
	return c.getJSON(ctx, fmt.Sprintf("%s/users/%s", c.githubBaseURL, username))
}
