package resolve

import (
	"fmt"
	"net/url"
	"strings"
)

// Fixed action names of the host's action endpoint contract.
const (
	ActionDeletePost   = "user.posts.delete_post"
	ActionRepublish    = "user.posts.republish_post"
	ActionUnpublish    = "user.posts.unpublish_post"
	ActionFollowPost   = "user.follow_post"
	ActionFollowAuthor = "user.follow_user"
)

// ID parameter names per action family.
const (
	paramPostID = "post_id"
	paramUserID = "user_id"
)

// placeholderURL is the neutral destination used whenever a real URL cannot
// be constructed (no post context, e.g. in the authoring preview).
const placeholderURL = "#"

// actionURL builds GET/POST <endpoint>?vx=1&action=<name>&<idParam>=<id>&_wpnonce=<token>.
// The nonce is looked up by action name; a missing nonce still produces a
// URL (the endpoint rejects it), but a missing endpoint yields the neutral
// placeholder.
func actionURL(endpoint, action, idParam string, id int64, nonce string) string {
	if endpoint == "" {
		return placeholderURL
	}
	v := url.Values{}
	v.Set("vx", "1")
	v.Set("action", action)
	v.Set(idParam, fmt.Sprintf("%d", id))
	v.Set("_wpnonce", nonce)
	sep := "?"
	if strings.Contains(endpoint, "?") {
		sep = "&"
	}
	return endpoint + sep + v.Encode()
}
