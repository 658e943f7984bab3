package identity

import (
	"fmt"
	"strconv"
	"strings"
)

// The reference checks run synchronously before a send is accepted. They
// fail closed: an unrecognized role, a transport error, or anything other
// than a literal "true" body rejects the reference.

// IsRecipientValid asks the service owning recipientType whether the id
// exists and is visible to the caller.
func (c *Client) IsRecipientValid(recipientType string, recipientID int64, caller Caller) bool {
	endpoints, ok := roles[recipientType]
	if !ok {
		return false
	}

	url := c.UserManagementURL + endpoints.Validate + strconv.FormatInt(recipientID, 10)
	return c.getBool(url, caller.Token)
}

// IsChatValid asks the collaboration service whether the chat reference is
// real.
func (c *Client) IsChatValid(chatType string, chatID int64, caller Caller) bool {
	url := fmt.Sprintf("%s/collaboration/validateMessage/%s/%d", c.CollaborationURL, chatType, chatID)
	return c.getBool(url, caller.Token)
}

// IsConsentRequestValid asks the consent service whether the consent
// request exists.
func (c *Client) IsConsentRequestValid(consentRequestID int64, caller Caller) bool {
	url := fmt.Sprintf("%s/consent/validateConsentRequestById/%d", c.ConsentURL, consentRequestID)
	return c.getBool(url, caller.Token)
}

func (c *Client) getBool(url, token string) bool {
	body, ok := c.get(url, token)
	if !ok {
		return false
	}

	valid, err := strconv.ParseBool(strings.TrimSpace(string(body)))
	if err != nil {
		return false
	}

	return valid
}
