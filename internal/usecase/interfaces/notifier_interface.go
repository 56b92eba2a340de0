package interfaces

import "context"

//go:generate mockgen -source=notifier_interface.go -destination=mocks/notifier_interface_mock.go -package=mock_interfaces

// INotifier delivers one templated message to one recipient.
//
// Any returned error is an *entities.NotificationError; the caller decides
// how loudly to report it, and never fails the surrounding operation on it.
type INotifier interface {
	Send(ctx context.Context, templateID, recipient string, vars map[string]string) error
}
