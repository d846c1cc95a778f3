// Package domain contains core concepts of the relay.
// This file defines inbound message events and the outbound body format.
// Messages are immutable once received.
package domain

import (
	"fmt"
	"time"
)

// InboundMessage is one message event handed over by the SMS gateway.
type InboundMessage struct {
	From       string
	Body       string
	ReceivedAt time.Time
}

// FormatBody prefixes the text with the sender display name: "[Alice] Ready?".
func FormatBody(senderName, text string) string {
	return fmt.Sprintf("[%s] %s", senderName, text)
}
