package platforms

import (
	"context"
	"encoding/json"
	"fmt"
)

// FetchCodechef fetches a public CodeChef profile. The response is passed
// through opaque; the dashboard renders whatever the API returns.
func (c *Client) FetchCodechef(ctx context.Context, username string) (json.RawMessage, error) {
	return c.getJSON(ctx, fmt.Sprintf("%s/%s", c.codechefBaseURL, username))
}
