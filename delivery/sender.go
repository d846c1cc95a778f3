//go:generate go run go.uber.org/mock/mockgen -source=sender.go -destination=../mocks/mock_sender.go -package=mocks
package delivery

import "context"

// Sender delivers one text message. Implementations own retries, if any.
type Sender interface {
	Send(ctx context.Context, to, from, body string) error
}
