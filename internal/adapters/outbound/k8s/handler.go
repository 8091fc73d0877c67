package k8s

import (
	"log/slog"

	"k8s.io/client-go/tools/cache"

	"github.com/skillcoder/clusterwatch/internal/logic/watcher"
)

// eventHandler turns informer callbacks into notifications for sink.
// Delete tombstones are unwrapped to the last known object.
func eventHandler[T any](logger *slog.Logger, sink watcher.Sink[T]) cache.ResourceEventHandlerFuncs {
	return cache.ResourceEventHandlerFuncs{
		AddFunc: func(obj any) {
			if o, ok := obj.(T); ok {
				sink.Enqueue(watcher.Notification[T]{Type: watcher.EventAdded, Object: o})
			}
		},
		UpdateFunc: func(_, newObj any) {
			if o, ok := newObj.(T); ok {
				sink.Enqueue(watcher.Notification[T]{Type: watcher.EventUpdated, Object: o})
			}
		},
		DeleteFunc: func(obj any) {
			o, ok := obj.(T)
			if !ok {
				tomb, _ := obj.(cache.DeletedFinalStateUnknown)

				o, ok = tomb.Obj.(T)
				if !ok {
					logger.Warn("unexpected object in delete notification", "key", tomb.Key)

					return
				}
			}

			sink.Enqueue(watcher.Notification[T]{Type: watcher.EventDeleted, Object: o})
		},
	}
}
