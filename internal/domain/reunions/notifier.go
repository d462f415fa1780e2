package reunions

import "context"

// Notice es lo que recibe el notificador; To* ya viene resuelto.
type Notice struct {
	Request Request
	PetName string
	ToEmail string
	ToName  string
}

// Notifier avisa por fuera del sistema. Los errores se loguean y no cortan la operación.
type Notifier interface {
	RequestOpened(ctx context.Context, n Notice) error
	RequestResolved(ctx context.Context, n Notice) error
}

type NopNotifier struct{}

func (NopNotifier) RequestOpened(context.Context, Notice) error   { return nil }
func (NopNotifier) RequestResolved(context.Context, Notice) error { return nil }
