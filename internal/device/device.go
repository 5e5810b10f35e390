// Package device resolves the caller's device descriptor.
//
// Clients that run the instrumented mobile/web SDK send an X-Device-Token
// header: base64-encoded JSON carrying the device id and collected attributes.
// When the header is absent the descriptor is derived from the User-Agent,
// so the audit trail always carries something about the originating device.
package device

import (
	"encoding/base64"
	"encoding/json"

	"github.com/mssola/useragent"

	dErrors "emend/pkg/domain-errors"
)

// Descriptor identifies the device that originated an update request.
type Descriptor struct {
	DeviceID   string            `json:"device_id,omitempty"`
	Platform   string            `json:"platform,omitempty"`
	Browser    string            `json:"browser,omitempty"`
	Mobile     bool              `json:"mobile"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// token is the decoded X-Device-Token payload.
type token struct {
	DeviceID   string            `json:"device_id"`
	Attributes map[string]string `json:"attributes"`
}

// Decode resolves a device descriptor from the device token header and the
// User-Agent. An empty header is not an error; a malformed one is, since it
// signals a broken or tampering client.
func Decode(header, userAgentString string) (Descriptor, error) {
	desc := fromUserAgent(userAgentString)

	if header == "" {
		return desc, nil
	}

	raw, err := base64.StdEncoding.DecodeString(header)
	if err != nil {
		return Descriptor{}, dErrors.Wrap(err, dErrors.CodeBadRequest, "malformed device token")
	}

	var t token
	if err := json.Unmarshal(raw, &t); err != nil {
		return Descriptor{}, dErrors.Wrap(err, dErrors.CodeBadRequest, "malformed device token")
	}
	if t.DeviceID == "" {
		return Descriptor{}, dErrors.New(dErrors.CodeBadRequest, "device token without device id")
	}

	desc.DeviceID = t.DeviceID
	desc.Attributes = t.Attributes
	return desc, nil
}

func fromUserAgent(userAgentString string) Descriptor {
	if userAgentString == "" {
		return Descriptor{}
	}
	ua := useragent.New(userAgentString)
	browser, _ := ua.Browser()
	return Descriptor{
		Platform: ua.OS(),
		Browser:  browser,
		Mobile:   ua.Mobile(),
	}
}
